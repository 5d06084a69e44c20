package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"zepth/tender-evaluator/internal/models"
)

type EvaluationRepository interface {
	CreateJob(job *models.EvaluationJob) error
	FindJobByID(id uuid.UUID) (*models.EvaluationJob, error)
	UpdateJobStatus(id uuid.UUID, status models.EvaluationStatus) error
	UpdateJobResult(id uuid.UUID, result *models.CategoryScore) error
	UpdateJobError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.EvaluationJob, error)
	LatestScores(bidderID uuid.UUID) (models.CategoryScoreMap, error)
	ReplaceEvaluation(eval *models.BidderEvaluation) error
	FindEvaluationByBidder(bidderID uuid.UUID) (*models.BidderEvaluation, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) CreateJob(job *models.EvaluationJob) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create evaluation job: %w", err)
	}
	return nil
}

func (r *evaluationRepository) FindJobByID(id uuid.UUID) (*models.EvaluationJob, error) {
	var job models.EvaluationJob
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("evaluation job not found")
		}
		return nil, fmt.Errorf("failed to find evaluation job: %w", err)
	}
	return &job, nil
}

func (r *evaluationRepository) UpdateJobStatus(id uuid.UUID, status models.EvaluationStatus) error {
	result := r.db.Model(&models.EvaluationJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update job status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("evaluation job not found")
	}
	return nil
}

func (r *evaluationRepository) UpdateJobResult(id uuid.UUID, score *models.CategoryScore) error {
	result := r.db.Model(&models.EvaluationJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     models.StatusCompleted,
			"result":     score,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update job result: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("evaluation job not found")
	}
	return nil
}

func (r *evaluationRepository) UpdateJobError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.EvaluationJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update job error: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("evaluation job not found")
	}
	return nil
}

func (r *evaluationRepository) FindPendingJobs(limit int) ([]models.EvaluationJob, error) {
	var jobs []models.EvaluationJob
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&jobs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}
	return jobs, nil
}

// LatestScores assembles the bidder's current CategoryScore set: the most
// recently completed job per category wins, so re-evaluation overwrites.
func (r *evaluationRepository) LatestScores(bidderID uuid.UUID) (models.CategoryScoreMap, error) {
	var jobs []models.EvaluationJob
	err := r.db.
		Where("bidder_id = ? AND status = ?", bidderID, models.StatusCompleted).
		Order("updated_at ASC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load completed jobs: %w", err)
	}

	scores := make(models.CategoryScoreMap, len(jobs))
	for _, job := range jobs {
		if job.Result == nil {
			continue
		}
		scores[job.CategoryID.String()] = *job.Result
	}
	return scores, nil
}

// ReplaceEvaluation persists a freshly aggregated BidderEvaluation, replacing
// any prior record for the bidder rather than merging into it.
func (r *evaluationRepository) ReplaceEvaluation(eval *models.BidderEvaluation) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bidder_id = ?", eval.BidderID).
			Delete(&models.BidderEvaluation{}).Error; err != nil {
			return err
		}
		return tx.Create(eval).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace bidder evaluation: %w", err)
	}
	return nil
}

func (r *evaluationRepository) FindEvaluationByBidder(bidderID uuid.UUID) (*models.BidderEvaluation, error) {
	var eval models.BidderEvaluation
	if err := r.db.Where("bidder_id = ?", bidderID).First(&eval).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("bidder evaluation not found")
		}
		return nil, fmt.Errorf("failed to find bidder evaluation: %w", err)
	}
	return &eval, nil
}
