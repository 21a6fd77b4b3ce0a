package services

import (
	"context"
	"fmt"
	"strings"

	"hiring-api/internal/models"
	"hiring-api/internal/notify"
	"hiring-api/internal/storage"
	"hiring-api/internal/storage/postgres"
	"hiring-api/internal/transport/dto"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type scoringService struct {
	db         *gorm.DB
	scoreRepo  storage.ScoreRepository
	rubricRepo storage.RubricRepository
	appRepo    storage.ApplicationRepository
	userRepo   storage.UserRepository
	dispatcher notify.Dispatcher
	threshold  float64
	log        *zap.SugaredLogger
}

// NewScoringService creates a new instance of ScoringService. passingThreshold
// is the percentage cutoff separating PASS from FAIL (boundary equality passes).
func NewScoringService(db *gorm.DB, dispatcher notify.Dispatcher, passingThreshold float64, log *zap.SugaredLogger) ScoringService {
	return &scoringService{
		db:         db,
		scoreRepo:  postgres.NewScoreRepo(db, log),
		rubricRepo: postgres.NewRubricRepo(db, log),
		appRepo:    postgres.NewApplicationRepo(db, log),
		userRepo:   postgres.NewUserRepo(db, log),
		dispatcher: dispatcher,
		threshold:  passingThreshold,
		log:        log.With("service", "ScoringService"),
	}
}

// RecordScore upserts one rubric score for an approved application.
// Re-submission overwrites the prior value; no history is kept.
func (s *scoringService) RecordScore(ctx context.Context, req *dto.RecordScoreRequest) (*models.Score, error) {
	app, err := s.appRepo.GetByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, MapRepoError(err, fmt.Sprintf("fetching application %s", req.ApplicationID))
	}
	rubric, err := s.rubricRepo.GetByID(ctx, req.RubricID)
	if err != nil {
		return nil, MapRepoError(err, fmt.Sprintf("fetching rubric %s", req.RubricID))
	}

	if app.Status != models.StatusApproved {
		s.log.Infof("RecordScore: attempt to score non-approved application %s (status: %s)", app.ID, app.Status)
		return nil, fmt.Errorf("%w: can only score approved applications", ErrValidation)
	}
	if !rubric.IsActive {
		return nil, fmt.Errorf("%w: rubric is archived and cannot be scored", ErrValidation)
	}
	if req.ScoreValue < 0 || req.ScoreValue > rubric.MaxScore {
		return nil, fmt.Errorf("%w: score must be between 0 and %g", ErrValidation, rubric.MaxScore)
	}

	score, err := s.scoreRepo.Upsert(ctx, &models.Score{
		ApplicationID: req.ApplicationID,
		RubricID:      req.RubricID,
		ScoreValue:    req.ScoreValue,
		Comments:      req.Comments,
	})
	if err != nil {
		return nil, MapRepoError(err, "recording score")
	}
	s.log.Infof("Score recorded for application %s rubric %s: %g/%g", app.ID, rubric.ID, req.ScoreValue, rubric.MaxScore)
	return score, nil
}

// Calculate aggregates the current score set into a weighted percentage and
// derives PASS/FAIL. Pure over the stored scores; safe to call repeatedly.
func (s *scoringService) Calculate(ctx context.Context, applicationID uuid.UUID) (*dto.ScoreCalculation, error) {
	scores, err := s.scoreRepo.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, MapRepoError(err, fmt.Sprintf("listing scores for application %s", applicationID))
	}
	if len(scores) == 0 {
		return nil, fmt.Errorf("%w: no scores recorded for this application", ErrValidation)
	}
	return s.aggregate(applicationID, scores), nil
}

func (s *scoringService) aggregate(applicationID uuid.UUID, scores []*models.Score) *dto.ScoreCalculation {
	var total, maxPossible float64
	breakdown := make([]dto.RubricBreakdownEntry, 0, len(scores))
	for _, score := range scores {
		if score.Rubric == nil {
			// Rubric rows are preloaded; a missing one means the score is orphaned.
			s.log.Errorf("Score %s has no rubric loaded, skipping in aggregation", score.ID)
			continue
		}
		weighted := score.ScoreValue * score.Rubric.Weight
		total += weighted
		maxPossible += score.Rubric.MaxScore * score.Rubric.Weight
		breakdown = append(breakdown, dto.RubricBreakdownEntry{
			RubricID:   score.RubricID,
			Criteria:   score.Rubric.Criteria,
			ScoreValue: score.ScoreValue,
			MaxScore:   score.Rubric.MaxScore,
			Weight:     score.Rubric.Weight,
			Weighted:   weighted,
		})
	}

	var percentage float64
	if maxPossible > 0 {
		percentage = total / maxPossible * 100
	}
	result := models.ResultFail
	if percentage >= s.threshold {
		result = models.ResultPass
	}

	return &dto.ScoreCalculation{
		ApplicationID:    applicationID,
		TotalScore:       total,
		MaxPossibleScore: maxPossible,
		Percentage:       percentage,
		PassingThreshold: s.threshold,
		Result:           result,
		Breakdown:        breakdown,
	}
}

// Complete finalizes the application: stores the calculated percentage and
// result, sets status COMPLETED and dispatches the results notification.
func (s *scoringService) Complete(ctx context.Context, applicationID uuid.UUID) (*models.Application, *dto.ScoreCalculation, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, nil, MapRepoError(err, fmt.Sprintf("fetching application %s", applicationID))
	}

	calc, err := s.Calculate(ctx, applicationID)
	if err != nil {
		return nil, nil, err
	}

	app.TotalScore = ptrFloat64(calc.Percentage)
	result := calc.Result
	app.Result = &result
	app.Status = models.StatusCompleted
	updated, err := s.appRepo.Update(ctx, app)
	if err != nil {
		return nil, nil, MapRepoError(err, "finalizing application")
	}
	s.log.Infof("Application %s completed: %.2f%% -> %s", updated.ID, calc.Percentage, calc.Result)

	if applicant := s.applicantFor(ctx, updated); applicant != nil {
		s.dispatcher.Notify(notify.Event{
			Kind:          notify.KindResults,
			To:            applicant.Email,
			ApplicationID: &updated.ID,
			Data: map[string]string{
				"name":       applicant.Name,
				"program":    updated.Program,
				"percentage": fmt.Sprintf("%.2f", calc.Percentage),
				"result":     string(calc.Result),
				"breakdown":  renderBreakdown(calc.Breakdown),
			},
		})
	}
	return updated, calc, nil
}

// renderBreakdown formats per-rubric lines for the results email body.
func renderBreakdown(entries []dto.RubricBreakdownEntry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "- %s: %g/%g (weight %g)\n", e.Criteria, e.ScoreValue, e.MaxScore, e.Weight)
	}
	return b.String()
}

// Summary combines the application, its scores and the stored-or-computed
// calculation. Restricted to the owning applicant and HR/ADMIN callers.
func (s *scoringService) Summary(ctx context.Context, req *dto.SummaryRequest) (*dto.ScoringSummaryResponse, error) {
	app, err := s.appRepo.GetByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, MapRepoError(err, fmt.Sprintf("fetching application %s", req.ApplicationID))
	}
	if !canViewApplication(app, req.UserID, req.Role) {
		s.log.Infof("Summary: forbidden attempt by user %s on application %s", req.UserID, req.ApplicationID)
		return nil, ErrForbidden
	}

	scores, err := s.scoreRepo.ListByApplication(ctx, req.ApplicationID)
	if err != nil {
		return nil, MapRepoError(err, "listing scores for summary")
	}

	resp := &dto.ScoringSummaryResponse{
		Application: dto.NewApplicationResponse(app),
		Scores:      make([]dto.ScoreResponse, 0, len(scores)),
	}
	for _, score := range scores {
		sr := dto.ScoreResponse{
			ID:            score.ID,
			ApplicationID: score.ApplicationID,
			RubricID:      score.RubricID,
			ScoreValue:    score.ScoreValue,
			Comments:      score.Comments,
			UpdatedAt:     score.UpdatedAt,
		}
		if score.Rubric != nil {
			sr.Criteria = score.Rubric.Criteria
			sr.MaxScore = score.Rubric.MaxScore
			sr.Weight = score.Rubric.Weight
		}
		resp.Scores = append(resp.Scores, sr)
	}
	if len(scores) > 0 {
		resp.Calculation = s.aggregate(req.ApplicationID, scores)
	}
	return resp, nil
}

// CreateRubric inserts a new scoring criterion with default max score and weight.
func (s *scoringService) CreateRubric(ctx context.Context, req *dto.CreateRubricRequest) (*models.Rubric, error) {
	rubric := &models.Rubric{
		Criteria: req.Criteria,
		MaxScore: 10,
		Weight:   1.0,
		IsActive: true,
	}
	if req.MaxScore != nil {
		rubric.MaxScore = *req.MaxScore
	}
	if req.Weight != nil {
		rubric.Weight = *req.Weight
	}
	created, err := s.rubricRepo.Create(ctx, rubric)
	if err != nil {
		return nil, MapRepoError(err, "creating rubric")
	}
	return created, nil
}

func (s *scoringService) GetRubric(ctx context.Context, id uuid.UUID) (*models.Rubric, error) {
	rubric, err := s.rubricRepo.GetByID(ctx, id)
	if err != nil {
		return nil, MapRepoError(err, fmt.Sprintf("fetching rubric %s", id))
	}
	return rubric, nil
}

func (s *scoringService) ListRubrics(ctx context.Context, activeOnly bool) ([]*models.Rubric, error) {
	rubrics, err := s.rubricRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, MapRepoError(err, "listing rubrics")
	}
	return rubrics, nil
}

func (s *scoringService) UpdateRubric(ctx context.Context, req *dto.UpdateRubricRequest) (*models.Rubric, error) {
	rubric, err := s.rubricRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, MapRepoError(err, fmt.Sprintf("fetching rubric %s", req.ID))
	}
	if req.Criteria != nil {
		rubric.Criteria = *req.Criteria
	}
	if req.MaxScore != nil {
		rubric.MaxScore = *req.MaxScore
	}
	if req.Weight != nil {
		rubric.Weight = *req.Weight
	}
	if req.IsActive != nil {
		rubric.IsActive = *req.IsActive
	}
	updated, err := s.rubricRepo.Update(ctx, rubric)
	if err != nil {
		return nil, MapRepoError(err, "updating rubric")
	}
	return updated, nil
}

// DeleteRubric archives the rubric when scores reference it and hard-deletes
// it otherwise. The branch is decided inside one transaction.
func (s *scoringService) DeleteRubric(ctx context.Context, id uuid.UUID) (bool, error) {
	var archived bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRubricRepo := s.rubricRepo.WithTx(tx)

		rubric, err := txRubricRepo.GetByID(ctx, id)
		if err != nil {
			return MapRepoError(err, fmt.Sprintf("fetching rubric %s", id))
		}

		hasScores, err := txRubricRepo.HasScores(ctx, id)
		if err != nil {
			return MapRepoError(err, "checking rubric score references")
		}

		if hasScores {
			rubric.IsActive = false
			if _, err := txRubricRepo.Update(ctx, rubric); err != nil {
				return MapRepoError(err, "archiving rubric")
			}
			archived = true
			s.log.Infof("Rubric %s archived (scores reference it)", id)
			return nil
		}
		if err := txRubricRepo.Delete(ctx, id); err != nil {
			return MapRepoError(err, "deleting rubric")
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return archived, nil
}

// applicantFor resolves the owning applicant for notification purposes.
func (s *scoringService) applicantFor(ctx context.Context, app *models.Application) *models.User {
	if app.Applicant != nil {
		return app.Applicant
	}
	applicant, err := s.userRepo.GetByID(ctx, app.ApplicantID)
	if err != nil {
		s.log.Errorf("Failed to resolve applicant %s for notification: %v", app.ApplicantID, err)
		return nil
	}
	return applicant
}
