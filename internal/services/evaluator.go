package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"zepth/tender-evaluator/internal/models"
	"zepth/tender-evaluator/internal/repositories"
	"zepth/tender-evaluator/internal/scoring"
)

// EvaluatorService runs the AI evaluation of a single (bidder, category)
// pair and the finalization that aggregates category scores into one
// BidderEvaluation.
type EvaluatorService interface {
	EvaluateCategory(ctx context.Context, jobID uuid.UUID) error
	FinalizeBidder(bidderID uuid.UUID) (*models.BidderEvaluation, error)
}

type evaluatorService struct {
	evalRepo      repositories.EvaluationRepository
	bidderRepo    repositories.BidderRepository
	tenderRepo    repositories.TenderRepository
	geminiService GeminiService
	qdrantService QdrantService
	pdfParser     PDFParserService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewEvaluatorService(
	evalRepo repositories.EvaluationRepository,
	bidderRepo repositories.BidderRepository,
	tenderRepo repositories.TenderRepository,
	geminiService GeminiService,
	qdrantService QdrantService,
	pdfParser PDFParserService,
	maxRetries int,
) EvaluatorService {
	return &evaluatorService{
		evalRepo:      evalRepo,
		bidderRepo:    bidderRepo,
		tenderRepo:    tenderRepo,
		geminiService: geminiService,
		qdrantService: qdrantService,
		pdfParser:     pdfParser,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

// EvaluateCategory implements EvaluatorService. It drives one evaluation job
// end to end: extract the bidder's documents for the category, retrieve
// tender reference context, score with the LLM, and store the CategoryScore
// on the job.
func (e *evaluatorService) EvaluateCategory(ctx context.Context, jobID uuid.UUID) error {
	if err := e.evalRepo.UpdateJobStatus(jobID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Printf("🔄 Starting evaluation for job ID: %s\n", jobID)

	job, err := e.evalRepo.FindJobByID(jobID)
	if err != nil {
		e.evalRepo.UpdateJobError(jobID, err.Error())
		return fmt.Errorf("failed to get evaluation job: %w", err)
	}

	bidder, err := e.bidderRepo.FindByID(job.BidderID)
	if err != nil {
		e.evalRepo.UpdateJobError(jobID, fmt.Sprintf("Bidder not found: %v", err))
		return fmt.Errorf("failed to get bidder: %w", err)
	}

	category, err := e.findCategory(bidder.TenderID, job.CategoryID)
	if err != nil {
		e.evalRepo.UpdateJobError(jobID, fmt.Sprintf("Category not found: %v", err))
		return fmt.Errorf("failed to get category: %w", err)
	}

	docs, err := e.bidderRepo.FindDocumentsByCategory(job.BidderID, job.CategoryID)
	if err != nil {
		e.evalRepo.UpdateJobError(jobID, fmt.Sprintf("Failed to load documents: %v", err))
		return fmt.Errorf("failed to load documents: %w", err)
	}
	if len(docs) == 0 {
		msg := fmt.Sprintf("bidder has no documents for category %s", category.Name)
		e.evalRepo.UpdateJobError(jobID, msg)
		return fmt.Errorf("%s", msg)
	}

	log.Printf("📄 Parsing %d documents for category %q...\n", len(docs), category.Name)
	documentsText, err := e.extractDocumentsText(docs)
	if err != nil {
		e.evalRepo.UpdateJobError(jobID, fmt.Sprintf("Failed to parse documents: %v", err))
		return fmt.Errorf("failed to parse documents: %w", err)
	}

	log.Println("🔍 Retrieving tender reference context...")
	ragContext, err := e.retrieveContext(ctx, bidder.TenderID.String(), category.Name)
	if err != nil {
		log.Printf("⚠️  Warning: Failed to retrieve context: %v\n", err)
		ragContext = "No relevant context found."
	}

	log.Printf("🤖 Evaluating category %q with LLM...\n", category.Name)
	score, err := e.scoreCategory(ctx, category, documentsText, ragContext)
	if err != nil {
		e.evalRepo.UpdateJobError(jobID, fmt.Sprintf("Failed to evaluate category: %v", err))
		return err
	}

	log.Println("💾 Saving evaluation result...")
	if err := e.evalRepo.UpdateJobResult(jobID, score); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	log.Printf("✅ Evaluation completed successfully for job ID: %s\n", jobID)
	return nil
}

// FinalizeBidder implements EvaluatorService. It aggregates the bidder's
// current category scores under the tender's effective weight table and
// replaces the stored BidderEvaluation. Fails fast if the weight
// configuration is unbalanced or a required category is still unscored.
func (e *evaluatorService) FinalizeBidder(bidderID uuid.UUID) (*models.BidderEvaluation, error) {
	bidder, err := e.bidderRepo.FindByID(bidderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bidder: %w", err)
	}

	categories, err := e.tenderRepo.FindCategories(bidder.TenderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	matrix, err := e.tenderRepo.FindScoringMatrix(bidder.TenderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scoring matrix: %w", err)
	}

	var criteria models.WeightCriteria
	if matrix != nil {
		criteria = matrix.Criteria
	}

	weights, err := scoring.EffectiveWeights(categories, criteria)
	if err != nil {
		return nil, err
	}
	if err := scoring.ValidateForScoring(weights); err != nil {
		return nil, err
	}

	scores, err := e.evalRepo.LatestScores(bidderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load category scores: %w", err)
	}

	if missing := scoring.MissingRequired(categories, scores); len(missing) > 0 {
		return nil, &scoring.MissingScoreError{
			BidderID:   bidderID.String(),
			CategoryID: missing[0].String(),
		}
	}

	eval, err := scoring.BuildEvaluation(bidder, scores, weights)
	if err != nil {
		return nil, err
	}
	eval.ID = uuid.New()

	if err := e.evalRepo.ReplaceEvaluation(eval); err != nil {
		return nil, err
	}

	log.Printf("✅ Bidder %s finalized with overall score %d\n", bidder.Name, eval.OverallScore)
	return eval, nil
}

func (e *evaluatorService) findCategory(tenderID, categoryID uuid.UUID) (*models.DocumentCategory, error) {
	categories, err := e.tenderRepo.FindCategories(tenderID)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].ID == categoryID {
			return &categories[i], nil
		}
	}
	return nil, fmt.Errorf("category %s does not belong to tender %s", categoryID, tenderID)
}

func (e *evaluatorService) extractDocumentsText(docs []models.BidderDocument) (string, error) {
	var parts []string
	for _, doc := range docs {
		text, err := e.pdfParser.ExtractText(doc.FilePath)
		if err != nil {
			log.Printf("⚠️  Skipping unreadable document %s: %v\n", doc.Name, err)
			continue
		}
		parts = append(parts, fmt.Sprintf("--- %s ---\n%s", doc.Name, CleanText(text)))
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no readable documents")
	}
	return strings.Join(parts, "\n\n"), nil
}

func (e *evaluatorService) retrieveContext(ctx context.Context, tenderID, categoryName string) (string, error) {
	query := e.promptBuilder.BuildRetrievalQuery(categoryName)

	embedding, err := e.geminiService.GenerateEmbedding(ctx, query)
	if err != nil {
		return "", fmt.Errorf("failed to generate query embedding: %w", err)
	}

	results, err := e.qdrantService.SearchSimilar(ctx, embedding, tenderID, 3)
	if err != nil {
		return "", fmt.Errorf("failed to search reference material: %w", err)
	}

	return FormatRAGContext(results), nil
}

func (e *evaluatorService) scoreCategory(ctx context.Context, category *models.DocumentCategory, documentsText, ragContext string) (*models.CategoryScore, error) {
	prompt := e.promptBuilder.BuildCategoryEvaluationPrompt(
		category.Name,
		category.Description,
		documentsText,
		ragContext,
	)

	response, err := e.geminiService.GenerateTextWithRetry(ctx, prompt, 0.3, e.maxRetries)
	if err != nil {
		return nil, &scoring.ExternalEvaluationError{Stage: "generation", Err: err}
	}

	score, err := ParseCategoryScore(response)
	if err != nil {
		return nil, &scoring.ExternalEvaluationError{Stage: "parsing", Err: err}
	}

	return score, nil
}

// ParseCategoryScore decodes the evaluator's JSON response, tolerating
// markdown fences around the payload. A missing or out-of-range score is
// malformed output, not a zero.
func ParseCategoryScore(response string) (*models.CategoryScore, error) {
	jsonStr := extractJSON(response)

	var score models.CategoryScore
	if err := json.Unmarshal([]byte(jsonStr), &score); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	if score.Score < 0 || score.Score > 100 {
		return nil, fmt.Errorf("score %.1f outside [0,100]", score.Score)
	}

	return &score, nil
}

// extractJSON tries to extract JSON from text that might contain markdown or
// other formatting.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}

	return text
}
