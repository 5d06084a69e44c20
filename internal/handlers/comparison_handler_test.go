package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zepth/tender-evaluator/internal/models"
)

type stubTenderRepo struct {
	tenders map[uuid.UUID]*models.Tender
}

func (s *stubTenderRepo) Create(tender *models.Tender) error { return nil }
func (s *stubTenderRepo) FindByID(id uuid.UUID) (*models.Tender, error) {
	if t, ok := s.tenders[id]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("tender not found")
}
func (s *stubTenderRepo) AddCategory(category *models.DocumentCategory) error { return nil }
func (s *stubTenderRepo) FindCategories(tenderID uuid.UUID) ([]models.DocumentCategory, error) {
	return nil, nil
}
func (s *stubTenderRepo) UpsertScoringMatrix(tenderID uuid.UUID, criteria models.WeightCriteria) (*models.ScoringMatrix, error) {
	return nil, nil
}
func (s *stubTenderRepo) FindScoringMatrix(tenderID uuid.UUID) (*models.ScoringMatrix, error) {
	return nil, nil
}
func (s *stubTenderRepo) AddDocument(doc *models.TenderDocument) error { return nil }
func (s *stubTenderRepo) FindDocuments(tenderID uuid.UUID) ([]models.TenderDocument, error) {
	return nil, nil
}
func (s *stubTenderRepo) RemoveDocument(tenderID, docID uuid.UUID) error { return nil }

type stubBidderRepo struct {
	bidders []models.Bidder
}

func (s *stubBidderRepo) Create(bidder *models.Bidder) error { return nil }
func (s *stubBidderRepo) FindByID(id uuid.UUID) (*models.Bidder, error) {
	for i := range s.bidders {
		if s.bidders[i].ID == id {
			return &s.bidders[i], nil
		}
	}
	return nil, fmt.Errorf("bidder not found")
}
func (s *stubBidderRepo) FindByTender(tenderID uuid.UUID) ([]models.Bidder, error) {
	return s.bidders, nil
}
func (s *stubBidderRepo) AddDocument(doc *models.BidderDocument) error { return nil }
func (s *stubBidderRepo) FindDocuments(bidderID uuid.UUID) ([]models.BidderDocument, error) {
	return nil, nil
}
func (s *stubBidderRepo) FindDocumentsByCategory(bidderID, categoryID uuid.UUID) ([]models.BidderDocument, error) {
	return nil, nil
}
func (s *stubBidderRepo) RemoveDocument(bidderID, docID uuid.UUID) (*models.BidderDocument, error) {
	return nil, nil
}

func evaluatedBidder(name string, overall int) models.Bidder {
	return models.Bidder{
		ID:   uuid.New(),
		Name: name,
		Evaluation: &models.BidderEvaluation{
			OverallScore: overall,
		},
	}
}

func newComparisonApp(tenderID uuid.UUID, bidders []models.Bidder) *fiber.App {
	tenderRepo := &stubTenderRepo{
		tenders: map[uuid.UUID]*models.Tender{tenderID: {ID: tenderID}},
	}
	bidderRepo := &stubBidderRepo{bidders: bidders}

	app := fiber.New()
	handler := NewComparisonHandler(tenderRepo, bidderRepo)
	app.Get("/api/v1/tenders/:id/comparison", handler.HandleComparison)
	return app
}

type comparisonResponse struct {
	Sort      string                 `json:"sort"`
	Direction string                 `json:"direction"`
	Bidders   []models.ComparisonRow `json:"bidders"`
}

func TestHandleComparison(t *testing.T) {
	tenderID := uuid.New()
	bidders := []models.Bidder{
		evaluatedBidder("Apex Construction", 72),
		evaluatedBidder("BuildRight Ltd", 88),
		{ID: uuid.New(), Name: "Unscored Co"},
		evaluatedBidder("Cornerstone JV", 61),
	}
	app := newComparisonApp(tenderID, bidders)

	t.Run("default sort ranks by overall score descending", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/tenders/"+tenderID.String()+"/comparison", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body comparisonResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

		require.Len(t, body.Bidders, 3, "unevaluated bidders are excluded")
		assert.Equal(t, "BuildRight Ltd", body.Bidders[0].Name)
		assert.Equal(t, "Apex Construction", body.Bidders[1].Name)
		assert.Equal(t, "Cornerstone JV", body.Bidders[2].Name)

		assert.Equal(t, 0.0, body.Bidders[0].Delta)
		assert.Equal(t, -16.0, body.Bidders[1].Delta)
		assert.Equal(t, -27.0, body.Bidders[2].Delta)
	})

	t.Run("ascending order flips the leader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/tenders/"+tenderID.String()+"/comparison?direction=asc", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body comparisonResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

		require.Len(t, body.Bidders, 3)
		assert.Equal(t, "Cornerstone JV", body.Bidders[0].Name)
		assert.Equal(t, 0.0, body.Bidders[0].Delta)
	})

	t.Run("invalid direction is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/tenders/"+tenderID.String()+"/comparison?direction=sideways", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown tender is a 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/tenders/"+uuid.NewString()+"/comparison", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("malformed tender id is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/tenders/not-a-uuid/comparison", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
