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

func TestScoringService_RecordScore(t *testing.T) {
	db := newTestDB(t)
	dispatcher := &recordingDispatcher{}
	svc := services.NewScoringService(db, dispatcher, 70, newTestLogger())
	ctx := context.Background()

	applicant := createTestUser(t, db, "applicant@example.com", models.RoleApplicant)
	app := createTestApplication(t, db, applicant.ID, models.StatusApproved)
	rubric := createTestRubric(t, db, "Subject mastery", 10, 1)

	t.Run("Success", func(t *testing.T) {
		score, err := svc.RecordScore(ctx, &dto.RecordScoreRequest{
			ApplicationID: app.ID,
			RubricID:      rubric.ID,
			ScoreValue:    8,
			Comments:      ptr("Strong fundamentals"),
		})
		require.NoError(t, err)
		assert.Equal(t, 8.0, score.ScoreValue)
		assert.Equal(t, app.ID, score.ApplicationID)
	})

	t.Run("Rescore overwrites without history", func(t *testing.T) {
		score, err := svc.RecordScore(ctx, &dto.RecordScoreRequest{
			ApplicationID: app.ID,
			RubricID:      rubric.ID,
			ScoreValue:    6,
		})
		require.NoError(t, err)
		assert.Equal(t, 6.0, score.ScoreValue)

		var count int64
		require.NoError(t, db.Model(&models.Score{}).Where("application_id = ?", app.ID).Count(&count).Error)
		assert.EqualValues(t, 1, count, "upsert must not create a second row")
	})

	t.Run("Score above max is rejected", func(t *testing.T) {
		_, err := svc.RecordScore(ctx, &dto.RecordScoreRequest{
			ApplicationID: app.ID,
			RubricID:      rubric.ID,
			ScoreValue:    11,
		})
		assert.ErrorIs(t, err, services.ErrValidation)
	})

	t.Run("Non-approved application is rejected", func(t *testing.T) {
		pending := createTestApplication(t, db, createTestUser(t, db, "pending@example.com", models.RoleApplicant).ID, models.StatusPending)
		_, err := svc.RecordScore(ctx, &dto.RecordScoreRequest{
			ApplicationID: pending.ID,
			RubricID:      rubric.ID,
			ScoreValue:    5,
		})
		assert.ErrorIs(t, err, services.ErrValidation)
	})

	t.Run("Archived rubric is rejected", func(t *testing.T) {
		archived := createTestRubric(t, db, "Old criterion", 10, 1)
		require.NoError(t, db.Model(archived).Update("is_active", false).Error)
		_, err := svc.RecordScore(ctx, &dto.RecordScoreRequest{
			ApplicationID: app.ID,
			RubricID:      archived.ID,
			ScoreValue:    5,
		})
		assert.ErrorIs(t, err, services.ErrValidation)
	})
}

func TestScoringService_Calculate(t *testing.T) {
	db := newTestDB(t)
	dispatcher := &recordingDispatcher{}
	svc := services.NewScoringService(db, dispatcher, 70, newTestLogger())
	ctx := context.Background()

	applicant := createTestUser(t, db, "applicant@example.com", models.RoleApplicant)
	app := createTestApplication(t, db, applicant.ID, models.StatusApproved)
	mastery := createTestRubric(t, db, "Subject mastery", 10, 2)
	delivery := createTestRubric(t, db, "Delivery", 10, 1)

	_, err := svc.RecordScore(ctx, &dto.RecordScoreRequest{ApplicationID: app.ID, RubricID: mastery.ID, ScoreValue: 8})
	require.NoError(t, err)
	_, err = svc.RecordScore(ctx, &dto.RecordScoreRequest{ApplicationID: app.ID, RubricID: delivery.ID, ScoreValue: 6})
	require.NoError(t, err)

	t.Run("Weighted percentage and PASS at 70", func(t *testing.T) {
		calc, err := svc.Calculate(ctx, app.ID)
		require.NoError(t, err)

		// 8*2 + 6*1 = 22 out of 10*2 + 10*1 = 30
		assert.InDelta(t, 22.0, calc.TotalScore, 1e-9)
		assert.InDelta(t, 30.0, calc.MaxPossibleScore, 1e-9)
		assert.InDelta(t, 73.3333, calc.Percentage, 0.001)
		assert.Equal(t, models.ResultPass, calc.Result)
		assert.Len(t, calc.Breakdown, 2)
	})

	t.Run("Same scores FAIL at 75", func(t *testing.T) {
		strict := services.NewScoringService(db, dispatcher, 75, newTestLogger())
		calc, err := strict.Calculate(ctx, app.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ResultFail, calc.Result)
	})

	t.Run("Boundary equality passes", func(t *testing.T) {
		boundary := services.NewScoringService(db, dispatcher, 73.0+1.0/3.0, newTestLogger())
		calc, err := boundary.Calculate(ctx, app.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ResultPass, calc.Result)
	})

	t.Run("Idempotent", func(t *testing.T) {
		first, err := svc.Calculate(ctx, app.ID)
		require.NoError(t, err)
		second, err := svc.Calculate(ctx, app.ID)
		require.NoError(t, err)
		assert.Equal(t, first.Percentage, second.Percentage)
		assert.Equal(t, first.Result, second.Result)
	})

	t.Run("No scores is a validation error", func(t *testing.T) {
		empty := createTestApplication(t, db, createTestUser(t, db, "empty@example.com", models.RoleApplicant).ID, models.StatusApproved)
		_, err := svc.Calculate(ctx, empty.ID)
		assert.ErrorIs(t, err, services.ErrValidation)
	})
}

func TestScoringService_Complete(t *testing.T) {
	db := newTestDB(t)
	dispatcher := &recordingDispatcher{}
	svc := services.NewScoringService(db, dispatcher, 70, newTestLogger())
	ctx := context.Background()

	applicant := createTestUser(t, db, "applicant@example.com", models.RoleApplicant)
	app := createTestApplication(t, db, applicant.ID, models.StatusApproved)
	rubric := createTestRubric(t, db, "Subject mastery", 10, 1)

	_, err := svc.RecordScore(ctx, &dto.RecordScoreRequest{ApplicationID: app.ID, RubricID: rubric.ID, ScoreValue: 9})
	require.NoError(t, err)

	updated, calc, err := svc.Complete(ctx, app.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, updated.Status)
	require.NotNil(t, updated.Result)
	assert.Equal(t, models.ResultPass, *updated.Result)
	require.NotNil(t, updated.TotalScore)
	assert.InDelta(t, 90.0, *updated.TotalScore, 1e-9)
	assert.InDelta(t, 90.0, calc.Percentage, 1e-9)

	results := dispatcher.byKind(notify.KindResults)
	require.Len(t, results, 1)
	assert.Equal(t, applicant.Email, results[0].To)
	assert.Equal(t, "PASS", results[0].Data["result"])
}

func TestScoringService_Summary(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewScoringService(db, &recordingDispatcher{}, 70, newTestLogger())
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com", models.RoleApplicant)
	other := createTestUser(t, db, "other@example.com", models.RoleApplicant)
	hr := createTestUser(t, db, "hr@example.com", models.RoleHR)
	app := createTestApplication(t, db, owner.ID, models.StatusApproved)
	rubric := createTestRubric(t, db, "Subject mastery", 10, 1)

	_, err := svc.RecordScore(ctx, &dto.RecordScoreRequest{ApplicationID: app.ID, RubricID: rubric.ID, ScoreValue: 7})
	require.NoError(t, err)

	t.Run("Owner can read", func(t *testing.T) {
		summary, err := svc.Summary(ctx, &dto.SummaryRequest{ApplicationID: app.ID, UserID: owner.ID, Role: models.RoleApplicant})
		require.NoError(t, err)
		require.Len(t, summary.Scores, 1)
		assert.Equal(t, "Subject mastery", summary.Scores[0].Criteria)
		require.NotNil(t, summary.Calculation)
		assert.InDelta(t, 70.0, summary.Calculation.Percentage, 1e-9)
	})

	t.Run("HR can read", func(t *testing.T) {
		_, err := svc.Summary(ctx, &dto.SummaryRequest{ApplicationID: app.ID, UserID: hr.ID, Role: models.RoleHR})
		assert.NoError(t, err)
	})

	t.Run("Other applicant is forbidden", func(t *testing.T) {
		_, err := svc.Summary(ctx, &dto.SummaryRequest{ApplicationID: app.ID, UserID: other.ID, Role: models.RoleApplicant})
		assert.ErrorIs(t, err, services.ErrForbidden)
	})
}

func TestScoringService_Rubrics(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewScoringService(db, &recordingDispatcher{}, 70, newTestLogger())
	ctx := context.Background()

	t.Run("Create applies defaults", func(t *testing.T) {
		rubric, err := svc.CreateRubric(ctx, &dto.CreateRubricRequest{Criteria: "Classroom presence"})
		require.NoError(t, err)
		assert.Equal(t, 10.0, rubric.MaxScore)
		assert.Equal(t, 1.0, rubric.Weight)
		assert.True(t, rubric.IsActive)
	})

	t.Run("Create honors explicit values", func(t *testing.T) {
		rubric, err := svc.CreateRubric(ctx, &dto.CreateRubricRequest{
			Criteria: "Subject mastery",
			MaxScore: ptrFloat64(20),
			Weight:   ptrFloat64(2.5),
		})
		require.NoError(t, err)
		assert.Equal(t, 20.0, rubric.MaxScore)
		assert.Equal(t, 2.5, rubric.Weight)
	})

	t.Run("Delete removes unreferenced rubric", func(t *testing.T) {
		rubric, err := svc.CreateRubric(ctx, &dto.CreateRubricRequest{Criteria: "Unused"})
		require.NoError(t, err)

		archived, err := svc.DeleteRubric(ctx, rubric.ID)
		require.NoError(t, err)
		assert.False(t, archived)

		_, err = svc.GetRubric(ctx, rubric.ID)
		assert.ErrorIs(t, err, services.ErrNotFound)
	})

	t.Run("Delete archives referenced rubric", func(t *testing.T) {
		applicant := createTestUser(t, db, "applicant@example.com", models.RoleApplicant)
		app := createTestApplication(t, db, applicant.ID, models.StatusApproved)
		rubric, err := svc.CreateRubric(ctx, &dto.CreateRubricRequest{Criteria: "Referenced"})
		require.NoError(t, err)
		_, err = svc.RecordScore(ctx, &dto.RecordScoreRequest{ApplicationID: app.ID, RubricID: rubric.ID, ScoreValue: 5})
		require.NoError(t, err)

		archived, err := svc.DeleteRubric(ctx, rubric.ID)
		require.NoError(t, err)
		assert.True(t, archived)

		kept, err := svc.GetRubric(ctx, rubric.ID)
		require.NoError(t, err)
		assert.False(t, kept.IsActive)
	})

	t.Run("List active only", func(t *testing.T) {
		rubrics, err := svc.ListRubrics(ctx, true)
		require.NoError(t, err)
		for _, rubric := range rubrics {
			assert.True(t, rubric.IsActive)
		}
	})
}
