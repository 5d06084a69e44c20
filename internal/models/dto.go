package models

type CreateProjectRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Area        float64 `json:"area" validate:"gte=0"`
	Type        string  `json:"type" validate:"required,oneof=residential commercial mixed-use hospitality"`
	Location    string  `json:"location"`
	StartDate   string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string  `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type CreateTenderRequest struct {
	Name        string  `json:"name" validate:"required"`
	Discipline  string  `json:"discipline"`
	Value       float64 `json:"value" validate:"gte=0"`
	Currency    string  `json:"currency"`
	StartDate   string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Description string  `json:"description"`
	Status      string  `json:"status" validate:"omitempty,oneof=draft open closed awarded"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Weight      int    `json:"weight" validate:"gte=0,lte=100"`
	Required    *bool  `json:"required"`
	Description string `json:"description"`
}

type UpdateScoringMatrixRequest struct {
	Criteria map[string]int `json:"criteria" validate:"required,dive,gte=0,lte=100"`
}

type CreateBidderRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"omitempty,email"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	City            string `json:"city"`
	Country         string `json:"country"`
	ContactPerson   string `json:"contact_person"`
	ContactPosition string `json:"contact_position"`
	CompanySize     string `json:"company_size"`
	YearEstablished string `json:"year_established"`
	Website         string `json:"website" validate:"omitempty,url"`
}

type EvaluateResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type EvaluationResultResponse struct {
	ID           string         `json:"id"`
	BidderID     string         `json:"bidder_id"`
	CategoryID   string         `json:"category_id"`
	Status       string         `json:"status"`
	Result       *CategoryScore `json:"result,omitempty"`
	ErrorMessage *string        `json:"error_message,omitempty"`
}

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	CategoryID   string `json:"category_id"`
}

type WeightSummaryResponse struct {
	Total    int  `json:"total"`
	Balanced bool `json:"balanced"`
}

type ComparisonRow struct {
	BidderID     string  `json:"bidder_id"`
	Name         string  `json:"name"`
	OverallScore int     `json:"overall_score"`
	SortScore    float64 `json:"sort_score"`
	Delta        float64 `json:"delta"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token,omitempty"`
	User    *UserInfo `json:"user,omitempty"`
}

type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type ItemRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}
