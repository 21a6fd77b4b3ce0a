package services

import (
	"context"
	"encoding/json"
	"fmt"

	"hiring-api/internal/models"
	"hiring-api/internal/notify"
	"hiring-api/internal/storage"
	"hiring-api/internal/storage/postgres"
	"hiring-api/internal/transport/dto"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type requirementService struct {
	repo       storage.RequirementRepository
	appRepo    storage.ApplicationRepository
	userRepo   storage.UserRepository
	dispatcher notify.Dispatcher
	log        *zap.SugaredLogger
}

// NewRequirementService creates a new instance of RequirementService.
func NewRequirementService(db *gorm.DB, dispatcher notify.Dispatcher, log *zap.SugaredLogger) RequirementService {
	return &requirementService{
		repo:       postgres.NewRequirementRepo(db, log),
		appRepo:    postgres.NewApplicationRepo(db, log),
		userRepo:   postgres.NewUserRepo(db, log),
		dispatcher: dispatcher,
		log:        log.With("service", "RequirementService"),
	}
}

// Create requests one document from an applicant. Only completed
// applications that passed evaluation can collect requirements.
func (s *requirementService) Create(ctx context.Context, req *dto.CreateRequirementRequest) (*models.PreEmploymentRequirement, error) {
	app, err := s.appRepo.GetByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, MapRepoError(err, fmt.Sprintf("fetching application %s", req.ApplicationID))
	}
	if app.Status != models.StatusCompleted || app.Result == nil || *app.Result != models.ResultPass {
		return nil, fmt.Errorf("%w: requirements can only be requested for passed applications", ErrInvalidState)
	}

	created, err := s.repo.Create(ctx, &models.PreEmploymentRequirement{
		ApplicationID: req.ApplicationID,
		Name:          req.Name,
		Status:        models.RequirementPending,
	})
	if err != nil {
		return nil, MapRepoError(err, "creating requirement")
	}
	s.log.Infof("Requirement %q requested for application %s", created.Name, app.ID)

	if applicant := s.applicantFor(ctx, app); applicant != nil {
		s.dispatcher.Notify(notify.Event{
			Kind:          notify.KindRequirementRequested,
			To:            applicant.Email,
			ApplicationID: &app.ID,
			Data: map[string]string{
				"name":        applicant.Name,
				"program":     app.Program,
				"requirement": created.Name,
			},
		})
	}
	return created, nil
}

func (s *requirementService) ListByApplication(ctx context.Context, req *dto.ListRequirementsRequest) ([]*models.PreEmploymentRequirement, error) {
	app, err := s.appRepo.GetByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, MapRepoError(err, fmt.Sprintf("fetching application %s", req.ApplicationID))
	}
	if !canViewApplication(app, req.UserID, req.Role) {
		return nil, ErrForbidden
	}
	reqs, err := s.repo.ListByApplication(ctx, req.ApplicationID)
	if err != nil {
		return nil, MapRepoError(err, "listing requirements")
	}
	return reqs, nil
}

// Submit attaches the applicant's document and moves the requirement to
// SUBMITTED. Rejected requirements may be resubmitted; verified ones are final.
func (s *requirementService) Submit(ctx context.Context, req *dto.SubmitRequirementRequest) (*models.PreEmploymentRequirement, error) {
	requirement, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, MapRepoError(err, fmt.Sprintf("fetching requirement %s", req.ID))
	}
	app, err := s.appRepo.GetByID(ctx, requirement.ApplicationID)
	if err != nil {
		return nil, MapRepoError(err, "fetching requirement's application")
	}
	if app.ApplicantID != req.UserID {
		return nil, ErrForbidden
	}
	if requirement.Status == models.RequirementVerified {
		return nil, fmt.Errorf("%w: requirement is already verified", ErrInvalidState)
	}

	doc, err := json.Marshal(req.Document)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid document descriptor", ErrValidation)
	}
	requirement.Document = datatypes.JSON(doc)
	requirement.Status = models.RequirementSubmitted
	requirement.Remarks = nil

	updated, err := s.repo.Update(ctx, requirement)
	if err != nil {
		return nil, MapRepoError(err, "submitting requirement")
	}
	s.log.Infof("Requirement %s submitted for application %s", updated.ID, app.ID)
	return updated, nil
}

// Verify records the HR decision over a submitted requirement and notifies
// the applicant.
func (s *requirementService) Verify(ctx context.Context, req *dto.VerifyRequirementRequest) (*models.PreEmploymentRequirement, error) {
	requirement, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, MapRepoError(err, fmt.Sprintf("fetching requirement %s", req.ID))
	}
	if requirement.Status != models.RequirementSubmitted {
		return nil, fmt.Errorf("%w: only submitted requirements can be verified", ErrInvalidState)
	}

	if req.Approved {
		requirement.Status = models.RequirementVerified
	} else {
		requirement.Status = models.RequirementRejected
	}
	requirement.Remarks = req.Remarks

	updated, err := s.repo.Update(ctx, requirement)
	if err != nil {
		return nil, MapRepoError(err, "verifying requirement")
	}
	s.log.Infof("Requirement %s reviewed: %s", updated.ID, updated.Status)

	app, err := s.appRepo.GetByID(ctx, updated.ApplicationID)
	if err != nil {
		s.log.Errorf("Failed to load application %s for notification: %v", updated.ApplicationID, err)
		return updated, nil
	}
	if applicant := s.applicantFor(ctx, app); applicant != nil {
		remarks := ""
		if updated.Remarks != nil {
			remarks = *updated.Remarks
		}
		s.dispatcher.Notify(notify.Event{
			Kind:          notify.KindRequirementReviewed,
			To:            applicant.Email,
			ApplicationID: &app.ID,
			Data: map[string]string{
				"name":        applicant.Name,
				"requirement": updated.Name,
				"status":      string(updated.Status),
				"remarks":     remarks,
			},
		})
	}
	return updated, nil
}

func (s *requirementService) applicantFor(ctx context.Context, app *models.Application) *models.User {
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
