package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"hiring-api/internal/models"
	"hiring-api/internal/notify"
	"hiring-api/internal/storage"
	"hiring-api/internal/storage/postgres"
	"hiring-api/internal/transport/dto"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type applicationService struct {
	db         *gorm.DB
	appRepo    storage.ApplicationRepository
	userRepo   storage.UserRepository
	notifRepo  storage.NotificationRepository
	dispatcher notify.Dispatcher
	log        *zap.SugaredLogger
}

// NewApplicationService creates a new instance of ApplicationService.
func NewApplicationService(db *gorm.DB, dispatcher notify.Dispatcher, log *zap.SugaredLogger) ApplicationService {
	return &applicationService{
		db:         db,
		appRepo:    postgres.NewApplicationRepo(db, log),
		userRepo:   postgres.NewUserRepo(db, log),
		notifRepo:  postgres.NewNotificationRepo(db, log),
		dispatcher: dispatcher,
		log:        log.With("service", "ApplicationService"),
	}
}

// Create submits a new hiring attempt. The active-application check and the
// attempt number assignment run inside one transaction; the partial unique
// index on postgres backstops concurrent submissions that race past it.
func (s *applicationService) Create(ctx context.Context, req *dto.CreateApplicationRequest) (*models.Application, error) {
	applicant, err := s.userRepo.GetByID(ctx, req.ApplicantID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid applicant", ErrValidation)
		}
		return nil, MapRepoError(err, fmt.Sprintf("fetching applicant %s", req.ApplicantID))
	}

	documents, err := documentsToJSON(req.Documents)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var created *models.Application
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txAppRepo := s.appRepo.WithTx(tx)

		_, err := txAppRepo.GetActiveByApplicant(ctx, req.ApplicantID)
		if err == nil {
			s.log.Infof("Create: applicant %s already holds an active application", req.ApplicantID)
			return fmt.Errorf("%w: you already have an active application; wait for it to be resolved before applying again", ErrConflict)
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return MapRepoError(err, "checking active application")
		}

		lastAttempt, err := txAppRepo.LastAttemptNumber(ctx, req.ApplicantID)
		if err != nil {
			return MapRepoError(err, "reading last attempt number")
		}

		created, err = txAppRepo.Create(ctx, &models.Application{
			ApplicantID:   req.ApplicantID,
			Program:       req.Program,
			Status:        models.StatusPending,
			AttemptNumber: lastAttempt + 1,
			Documents:     documents,
		})
		if err != nil {
			return MapRepoError(err, "creating application")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifySubmission(ctx, created, applicant)
	return created, nil
}

func (s *applicationService) notifySubmission(ctx context.Context, app *models.Application, applicant *models.User) {
	data := map[string]string{
		"name":    applicant.Name,
		"program": app.Program,
		"attempt": strconv.Itoa(app.AttemptNumber),
	}
	s.dispatcher.Notify(notify.Event{
		Kind:          notify.KindSubmitted,
		To:            applicant.Email,
		ApplicationID: &app.ID,
		Data:          data,
	})

	hrUsers, err := s.userRepo.ListByRole(ctx, models.RoleHR)
	if err != nil {
		// Alerting is best-effort; the submission already succeeded.
		s.log.Errorf("Create: failed to list HR users for alert: %v", err)
		return
	}
	for _, hr := range hrUsers {
		s.dispatcher.Notify(notify.Event{
			Kind:          notify.KindHRAlert,
			To:            hr.Email,
			ApplicationID: &app.ID,
			Data:          data,
		})
	}
}

func (s *applicationService) GetByID(ctx context.Context, req *dto.GetApplicationRequest) (*models.Application, error) {
	app, err := s.appRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, MapRepoError(err, fmt.Sprintf("fetching application %s", req.ID))
	}
	if !canViewApplication(app, req.UserID, req.Role) {
		s.log.Infof("GetByID: forbidden attempt by user %s on application %s", req.UserID, req.ID)
		return nil, ErrForbidden
	}
	return app, nil
}

// ListNotifications returns the audit trail of emails sent for an
// application, newest first.
func (s *applicationService) ListNotifications(ctx context.Context, req *dto.GetApplicationRequest) ([]*models.Notification, error) {
	app, err := s.appRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, MapRepoError(err, fmt.Sprintf("fetching application %s", req.ID))
	}
	if !canViewApplication(app, req.UserID, req.Role) {
		return nil, ErrForbidden
	}

	notifications, err := s.notifRepo.ListByApplication(ctx, req.ID)
	if err != nil {
		return nil, MapRepoError(err, fmt.Sprintf("listing notifications for application %s", req.ID))
	}
	return notifications, nil
}

func (s *applicationService) List(ctx context.Context, req *dto.ListApplicationsRequest) ([]*models.Application, int64, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 20
	}
	apps, total, err := s.appRepo.List(ctx, storage.ApplicationListFilter{
		Status:  req.Status,
		Program: req.Program,
		Limit:   limit,
		Offset:  req.Offset,
	})
	if err != nil {
		return nil, 0, MapRepoError(err, "listing applications")
	}
	return apps, total, nil
}

func (s *applicationService) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*models.Application, error) {
	apps, err := s.appRepo.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, MapRepoError(err, fmt.Sprintf("listing applications for applicant %s", applicantID))
	}
	return apps, nil
}

func (s *applicationService) GetActiveByApplicant(ctx context.Context, applicantID uuid.UUID) (*models.Application, error) {
	app, err := s.appRepo.GetActiveByApplicant(ctx, applicantID)
	if err != nil {
		return nil, MapRepoError(err, fmt.Sprintf("fetching active application for applicant %s", applicantID))
	}
	return app, nil
}

// Approve sets the application to APPROVED. The source intentionally places
// no guard on the current status, so HR can re-approve a rejected attempt.
func (s *applicationService) Approve(ctx context.Context, req *dto.ReviewApplicationRequest) (*models.Application, error) {
	return s.review(ctx, req, models.StatusApproved, notify.KindApproved)
}

// Reject sets the application to REJECTED. Same guard policy as Approve.
func (s *applicationService) Reject(ctx context.Context, req *dto.ReviewApplicationRequest) (*models.Application, error) {
	return s.review(ctx, req, models.StatusRejected, notify.KindRejected)
}

func (s *applicationService) review(ctx context.Context, req *dto.ReviewApplicationRequest, status models.ApplicationStatus, kind notify.Kind) (*models.Application, error) {
	app, err := s.appRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, MapRepoError(err, fmt.Sprintf("fetching application %s", req.ID))
	}

	app.Status = status
	if req.HRNotes != nil {
		app.HRNotes = req.HRNotes
	}
	updated, err := s.appRepo.Update(ctx, app)
	if err != nil {
		return nil, MapRepoError(err, "updating application status")
	}
	s.log.Infof("Application %s transitioned to %s", updated.ID, status)

	if applicant := s.applicantFor(ctx, updated); applicant != nil {
		data := map[string]string{
			"name":    applicant.Name,
			"program": updated.Program,
		}
		if updated.HRNotes != nil {
			data["notes"] = *updated.HRNotes
		}
		s.dispatcher.Notify(notify.Event{
			Kind:          kind,
			To:            applicant.Email,
			ApplicationID: &updated.ID,
			Data:          data,
		})
	}
	return updated, nil
}

// ScheduleDemo sets the demo slot. Unlike approve/reject this transition is
// guarded: only APPROVED applications can be scheduled.
func (s *applicationService) ScheduleDemo(ctx context.Context, req *dto.ScheduleDemoRequest) (*models.Application, error) {
	app, err := s.appRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, MapRepoError(err, fmt.Sprintf("fetching application %s", req.ID))
	}
	if app.Status != models.StatusApproved {
		s.log.Infof("ScheduleDemo: attempt to schedule non-approved application %s (status: %s)", app.ID, app.Status)
		return nil, fmt.Errorf("%w: application must be approved before scheduling demo", ErrValidation)
	}

	schedule := req.DemoSchedule
	app.DemoSchedule = &schedule
	updated, err := s.appRepo.Update(ctx, app)
	if err != nil {
		return nil, MapRepoError(err, "updating demo schedule")
	}

	if applicant := s.applicantFor(ctx, updated); applicant != nil {
		s.dispatcher.Notify(notify.Event{
			Kind:          notify.KindDemoScheduled,
			To:            applicant.Email,
			ApplicationID: &updated.ID,
			Data: map[string]string{
				"name":     applicant.Name,
				"program":  updated.Program,
				"schedule": schedule.Format(time.RFC1123),
			},
		})
	}
	return updated, nil
}

// Update is the generic HR patch used for fields outside the guarded transitions.
func (s *applicationService) Update(ctx context.Context, req *dto.UpdateApplicationRequest) (*models.Application, error) {
	app, err := s.appRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, MapRepoError(err, fmt.Sprintf("fetching application %s", req.ID))
	}

	if req.Program != nil {
		app.Program = *req.Program
	}
	if req.HRNotes != nil {
		app.HRNotes = req.HRNotes
	}
	if req.DemoSchedule != nil {
		app.DemoSchedule = req.DemoSchedule
	}
	if len(req.Documents) > 0 {
		documents, err := documentsToJSON(req.Documents)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		app.Documents = documents
	}

	updated, err := s.appRepo.Update(ctx, app)
	if err != nil {
		return nil, MapRepoError(err, "updating application")
	}
	return updated, nil
}

func (s *applicationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.appRepo.Delete(ctx, id); err != nil {
		return MapRepoError(err, fmt.Sprintf("deleting application %s", id))
	}
	return nil
}

// applicantFor resolves the owning applicant for notification purposes.
// Returns nil (and logs) when the lookup fails; notifications are best-effort.
func (s *applicationService) applicantFor(ctx context.Context, app *models.Application) *models.User {
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
