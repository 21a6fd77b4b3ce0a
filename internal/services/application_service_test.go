package services_test

import (
	"context"
	"testing"
	"time"

	"hiring-api/internal/models"
	"hiring-api/internal/notify"
	"hiring-api/internal/services"
	"hiring-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationService_Create(t *testing.T) {
	db := newTestDB(t)
	dispatcher := &recordingDispatcher{}
	svc := services.NewApplicationService(db, dispatcher, newTestLogger())
	ctx := context.Background()

	applicant := createTestUser(t, db, "applicant@example.com", models.RoleApplicant)
	hr := createTestUser(t, db, "hr@example.com", models.RoleHR)

	t.Run("First submission gets attempt number 1", func(t *testing.T) {
		app, err := svc.Create(ctx, &dto.CreateApplicationRequest{
			ApplicantID: applicant.ID,
			Program:     "Mathematics",
			Documents: []dto.DocumentDescriptor{
				{Name: "resume.pdf", URL: "https://files.example.com/resume.pdf", Type: "application/pdf", Size: 1024},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, app.Status)
		assert.Equal(t, 1, app.AttemptNumber)
		assert.NotEmpty(t, app.Documents)
	})

	t.Run("Second submission while active is a conflict", func(t *testing.T) {
		_, err := svc.Create(ctx, &dto.CreateApplicationRequest{
			ApplicantID: applicant.ID,
			Program:     "Physics",
		})
		assert.ErrorIs(t, err, services.ErrConflict)
	})

	t.Run("Submission notifies applicant and HR", func(t *testing.T) {
		submitted := dispatcher.byKind(notify.KindSubmitted)
		require.Len(t, submitted, 1)
		assert.Equal(t, applicant.Email, submitted[0].To)

		alerts := dispatcher.byKind(notify.KindHRAlert)
		require.Len(t, alerts, 1)
		assert.Equal(t, hr.Email, alerts[0].To)
	})

	t.Run("Attempt numbers keep growing across resolved attempts", func(t *testing.T) {
		active, err := svc.GetActiveByApplicant(ctx, applicant.ID)
		require.NoError(t, err)
		_, err = svc.Reject(ctx, &dto.ReviewApplicationRequest{ID: active.ID})
		require.NoError(t, err)

		second, err := svc.Create(ctx, &dto.CreateApplicationRequest{ApplicantID: applicant.ID, Program: "Physics"})
		require.NoError(t, err)
		assert.Equal(t, 2, second.AttemptNumber)

		_, err = svc.Reject(ctx, &dto.ReviewApplicationRequest{ID: second.ID})
		require.NoError(t, err)

		third, err := svc.Create(ctx, &dto.CreateApplicationRequest{ApplicantID: applicant.ID, Program: "Chemistry"})
		require.NoError(t, err)
		assert.Equal(t, 3, third.AttemptNumber)
	})

	t.Run("Unknown applicant is a validation error", func(t *testing.T) {
		_, err := svc.Create(ctx, &dto.CreateApplicationRequest{
			ApplicantID: createTestApplication(t, db, applicant.ID, models.StatusRejected).ID, // not a user ID
			Program:     "Biology",
		})
		assert.ErrorIs(t, err, services.ErrValidation)
	})
}

func TestApplicationService_Review(t *testing.T) {
	db := newTestDB(t)
	dispatcher := &recordingDispatcher{}
	svc := services.NewApplicationService(db, dispatcher, newTestLogger())
	ctx := context.Background()

	applicant := createTestUser(t, db, "applicant@example.com", models.RoleApplicant)
	app := createTestApplication(t, db, applicant.ID, models.StatusPending)

	t.Run("Approve sets status and notes", func(t *testing.T) {
		updated, err := svc.Approve(ctx, &dto.ReviewApplicationRequest{ID: app.ID, HRNotes: ptr("Solid CV")})
		require.NoError(t, err)
		assert.Equal(t, models.StatusApproved, updated.Status)
		require.NotNil(t, updated.HRNotes)
		assert.Equal(t, "Solid CV", *updated.HRNotes)

		approvals := dispatcher.byKind(notify.KindApproved)
		require.Len(t, approvals, 1)
		assert.Equal(t, applicant.Email, approvals[0].To)
	})

	t.Run("Reject after approve is allowed", func(t *testing.T) {
		updated, err := svc.Reject(ctx, &dto.ReviewApplicationRequest{ID: app.ID})
		require.NoError(t, err)
		assert.Equal(t, models.StatusRejected, updated.Status)
	})

	t.Run("Re-approve after reject is allowed", func(t *testing.T) {
		updated, err := svc.Approve(ctx, &dto.ReviewApplicationRequest{ID: app.ID})
		require.NoError(t, err)
		assert.Equal(t, models.StatusApproved, updated.Status)
	})
}

func TestApplicationService_ScheduleDemo(t *testing.T) {
	db := newTestDB(t)
	dispatcher := &recordingDispatcher{}
	svc := services.NewApplicationService(db, dispatcher, newTestLogger())
	ctx := context.Background()

	applicant := createTestUser(t, db, "applicant@example.com", models.RoleApplicant)
	slot := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)

	t.Run("Pending application cannot be scheduled", func(t *testing.T) {
		pending := createTestApplication(t, db, applicant.ID, models.StatusPending)
		_, err := svc.ScheduleDemo(ctx, &dto.ScheduleDemoRequest{ID: pending.ID, DemoSchedule: slot})
		assert.ErrorIs(t, err, services.ErrValidation)
	})

	t.Run("Approved application is scheduled and applicant notified", func(t *testing.T) {
		approved := createTestApplication(t, db, createTestUser(t, db, "second@example.com", models.RoleApplicant).ID, models.StatusApproved)
		updated, err := svc.ScheduleDemo(ctx, &dto.ScheduleDemoRequest{ID: approved.ID, DemoSchedule: slot})
		require.NoError(t, err)
		require.NotNil(t, updated.DemoSchedule)
		assert.True(t, updated.DemoSchedule.Equal(slot))

		scheduled := dispatcher.byKind(notify.KindDemoScheduled)
		require.Len(t, scheduled, 1)
		assert.Contains(t, scheduled[0].Data["schedule"], slot.Format("2006"))
	})
}

func TestApplicationService_AccessControl(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewApplicationService(db, &recordingDispatcher{}, newTestLogger())
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com", models.RoleApplicant)
	other := createTestUser(t, db, "other@example.com", models.RoleApplicant)
	app := createTestApplication(t, db, owner.ID, models.StatusPending)

	t.Run("Owner reads own application", func(t *testing.T) {
		got, err := svc.GetByID(ctx, &dto.GetApplicationRequest{ID: app.ID, UserID: owner.ID, Role: models.RoleApplicant})
		require.NoError(t, err)
		assert.Equal(t, app.ID, got.ID)
	})

	t.Run("Other applicant is forbidden", func(t *testing.T) {
		_, err := svc.GetByID(ctx, &dto.GetApplicationRequest{ID: app.ID, UserID: other.ID, Role: models.RoleApplicant})
		assert.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("HR reads any application", func(t *testing.T) {
		_, err := svc.GetByID(ctx, &dto.GetApplicationRequest{ID: app.ID, UserID: other.ID, Role: models.RoleHR})
		assert.NoError(t, err)
	})
}

func TestApplicationService_ListNotifications(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewApplicationService(db, &recordingDispatcher{}, newTestLogger())
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com", models.RoleApplicant)
	other := createTestUser(t, db, "other@example.com", models.RoleApplicant)
	app := createTestApplication(t, db, owner.ID, models.StatusPending)

	first := &models.Notification{
		ID:            uuid.New(),
		Email:         owner.Email,
		Subject:       "Application Received",
		Message:       "Dear applicant",
		Type:          string(notify.KindSubmitted),
		ApplicationID: &app.ID,
		SentAt:        time.Now().UTC().Add(-time.Hour),
	}
	second := &models.Notification{
		ID:            uuid.New(),
		Email:         owner.Email,
		Subject:       "Application Approved",
		Message:       "Dear applicant",
		Type:          string(notify.KindApproved),
		ApplicationID: &app.ID,
		SentAt:        time.Now().UTC(),
	}
	require.NoError(t, db.Create(first).Error)
	require.NoError(t, db.Create(second).Error)

	t.Run("Owner lists audit trail newest first", func(t *testing.T) {
		notifications, err := svc.ListNotifications(ctx, &dto.GetApplicationRequest{ID: app.ID, UserID: owner.ID, Role: models.RoleApplicant})
		require.NoError(t, err)
		require.Len(t, notifications, 2)
		assert.Equal(t, second.ID, notifications[0].ID)
		assert.Equal(t, first.ID, notifications[1].ID)
	})

	t.Run("Other applicant is forbidden", func(t *testing.T) {
		_, err := svc.ListNotifications(ctx, &dto.GetApplicationRequest{ID: app.ID, UserID: other.ID, Role: models.RoleApplicant})
		assert.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("HR lists any application's trail", func(t *testing.T) {
		notifications, err := svc.ListNotifications(ctx, &dto.GetApplicationRequest{ID: app.ID, UserID: other.ID, Role: models.RoleHR})
		require.NoError(t, err)
		assert.Len(t, notifications, 2)
	})
}

func TestApplicationService_List(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewApplicationService(db, &recordingDispatcher{}, newTestLogger())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		applicant := createTestUser(t, db, string(rune('a'+i))+"@example.com", models.RoleApplicant)
		createTestApplication(t, db, applicant.ID, models.StatusPending)
	}
	rejectedOwner := createTestUser(t, db, "rejected@example.com", models.RoleApplicant)
	createTestApplication(t, db, rejectedOwner.ID, models.StatusRejected)

	t.Run("Status filter", func(t *testing.T) {
		status := models.StatusPending
		apps, total, err := svc.List(ctx, &dto.ListApplicationsRequest{Status: &status})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		assert.Len(t, apps, 3)
	})

	t.Run("Pagination", func(t *testing.T) {
		apps, total, err := svc.List(ctx, &dto.ListApplicationsRequest{Limit: 2})
		require.NoError(t, err)
		assert.EqualValues(t, 4, total)
		assert.Len(t, apps, 2)
	})
}
