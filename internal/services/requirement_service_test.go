package services_test

import (
	"context"
	"testing"

	"hiring-api/internal/models"
	"hiring-api/internal/notify"
	"hiring-api/internal/services"
	"hiring-api/internal/transport/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirementService_Create(t *testing.T) {
	db := newTestDB(t)
	dispatcher := &recordingDispatcher{}
	svc := services.NewRequirementService(db, dispatcher, newTestLogger())
	ctx := context.Background()

	applicant := createTestUser(t, db, "applicant@example.com", models.RoleApplicant)
	app := createTestApplication(t, db, applicant.ID, models.StatusCompleted)
	result := models.ResultPass
	require.NoError(t, db.Model(app).UpdateColumn("result", string(result)).Error)

	t.Run("Success on passed application", func(t *testing.T) {
		requirement, err := svc.Create(ctx, &dto.CreateRequirementRequest{
			ApplicationID: app.ID,
			Name:          "Transcript of records",
		})
		require.NoError(t, err)
		assert.Equal(t, models.RequirementPending, requirement.Status)

		requested := dispatcher.byKind(notify.KindRequirementRequested)
		require.Len(t, requested, 1)
		assert.Equal(t, applicant.Email, requested[0].To)
	})

	t.Run("Failed application is rejected", func(t *testing.T) {
		failed := createTestApplication(t, db, createTestUser(t, db, "failed@example.com", models.RoleApplicant).ID, models.StatusCompleted)
		require.NoError(t, db.Model(failed).UpdateColumn("result", string(models.ResultFail)).Error)

		_, err := svc.Create(ctx, &dto.CreateRequirementRequest{ApplicationID: failed.ID, Name: "Transcript"})
		assert.ErrorIs(t, err, services.ErrInvalidState)
	})

	t.Run("Non-completed application is rejected", func(t *testing.T) {
		pending := createTestApplication(t, db, createTestUser(t, db, "pending@example.com", models.RoleApplicant).ID, models.StatusPending)
		_, err := svc.Create(ctx, &dto.CreateRequirementRequest{ApplicationID: pending.ID, Name: "Transcript"})
		assert.ErrorIs(t, err, services.ErrInvalidState)
	})
}

func TestRequirementService_SubmitAndVerify(t *testing.T) {
	db := newTestDB(t)
	dispatcher := &recordingDispatcher{}
	svc := services.NewRequirementService(db, dispatcher, newTestLogger())
	ctx := context.Background()

	applicant := createTestUser(t, db, "applicant@example.com", models.RoleApplicant)
	other := createTestUser(t, db, "other@example.com", models.RoleApplicant)
	app := createTestApplication(t, db, applicant.ID, models.StatusCompleted)
	require.NoError(t, db.Model(app).UpdateColumn("result", string(models.ResultPass)).Error)

	requirement, err := svc.Create(ctx, &dto.CreateRequirementRequest{ApplicationID: app.ID, Name: "Medical certificate"})
	require.NoError(t, err)

	document := dto.DocumentDescriptor{Name: "medcert.pdf", URL: "https://files.example.com/medcert.pdf"}

	t.Run("Only the owner can submit", func(t *testing.T) {
		_, err := svc.Submit(ctx, &dto.SubmitRequirementRequest{ID: requirement.ID, UserID: other.ID, Document: document})
		assert.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("Owner submits the document", func(t *testing.T) {
		submitted, err := svc.Submit(ctx, &dto.SubmitRequirementRequest{ID: requirement.ID, UserID: applicant.ID, Document: document})
		require.NoError(t, err)
		assert.Equal(t, models.RequirementSubmitted, submitted.Status)
		assert.NotEmpty(t, submitted.Document)
	})

	t.Run("Verify rejects with remarks and notifies", func(t *testing.T) {
		reviewed, err := svc.Verify(ctx, &dto.VerifyRequirementRequest{ID: requirement.ID, Approved: false, Remarks: ptr("Document is expired")})
		require.NoError(t, err)
		assert.Equal(t, models.RequirementRejected, reviewed.Status)

		notices := dispatcher.byKind(notify.KindRequirementReviewed)
		require.Len(t, notices, 1)
		assert.Equal(t, "REJECTED", notices[0].Data["status"])
		assert.Equal(t, "Document is expired", notices[0].Data["remarks"])
	})

	t.Run("Rejected requirement can be resubmitted and verified", func(t *testing.T) {
		_, err := svc.Submit(ctx, &dto.SubmitRequirementRequest{ID: requirement.ID, UserID: applicant.ID, Document: document})
		require.NoError(t, err)

		verified, err := svc.Verify(ctx, &dto.VerifyRequirementRequest{ID: requirement.ID, Approved: true})
		require.NoError(t, err)
		assert.Equal(t, models.RequirementVerified, verified.Status)
	})

	t.Run("Verified requirement is final", func(t *testing.T) {
		_, err := svc.Submit(ctx, &dto.SubmitRequirementRequest{ID: requirement.ID, UserID: applicant.ID, Document: document})
		assert.ErrorIs(t, err, services.ErrInvalidState)

		_, err = svc.Verify(ctx, &dto.VerifyRequirementRequest{ID: requirement.ID, Approved: true})
		assert.ErrorIs(t, err, services.ErrInvalidState)
	})

	t.Run("List enforces ownership", func(t *testing.T) {
		_, err := svc.ListByApplication(ctx, &dto.ListRequirementsRequest{ApplicationID: app.ID, UserID: other.ID, Role: models.RoleApplicant})
		assert.ErrorIs(t, err, services.ErrForbidden)

		requirements, err := svc.ListByApplication(ctx, &dto.ListRequirementsRequest{ApplicationID: app.ID, UserID: applicant.ID, Role: models.RoleApplicant})
		require.NoError(t, err)
		assert.Len(t, requirements, 1)
	})
}
