package services_test

import (
	"fmt"
	"sync"
	"testing"

	"hiring-api/internal/database"
	"hiring-api/internal/models"
	"hiring-api/internal/notify"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "Failed to open test database")

	require.NoError(t, database.Migrate(db, newTestLogger()), "Failed to migrate test schema")
	return db
}

func newTestLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// recordingDispatcher captures events synchronously so tests can assert on
// what would have been emailed.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []notify.Event
}

func (d *recordingDispatcher) Notify(event notify.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
}

func (d *recordingDispatcher) Wait() {}

func (d *recordingDispatcher) kinds() []notify.Kind {
	d.mu.Lock()
	defer d.mu.Unlock()
	kinds := make([]notify.Kind, 0, len(d.events))
	for _, event := range d.events {
		kinds = append(kinds, event.Kind)
	}
	return kinds
}

func (d *recordingDispatcher) byKind(kind notify.Kind) []notify.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var matched []notify.Event
	for _, event := range d.events {
		if event.Kind == kind {
			matched = append(matched, event)
		}
	}
	return matched
}

// Helper function to create a user for tests
func createTestUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Test User",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error, "Failed to create test user %s", email)
	return user
}

// Helper function to create an application for tests
func createTestApplication(t *testing.T, db *gorm.DB, applicantID uuid.UUID, status models.ApplicationStatus) *models.Application {
	t.Helper()

	app := &models.Application{
		ID:            uuid.New(),
		ApplicantID:   applicantID,
		Program:       "Mathematics",
		Status:        status,
		AttemptNumber: 1,
	}
	require.NoError(t, db.Create(app).Error, "Failed to create test application")
	return app
}

// Helper function to create a rubric for tests
func createTestRubric(t *testing.T, db *gorm.DB, criteria string, maxScore, weight float64) *models.Rubric {
	t.Helper()

	rubric := &models.Rubric{
		ID:       uuid.New(),
		Criteria: criteria,
		MaxScore: maxScore,
		Weight:   weight,
		IsActive: true,
	}
	require.NoError(t, db.Create(rubric).Error, "Failed to create test rubric")
	return rubric
}

func ptr(s string) *string { return &s }

func ptrFloat64(f float64) *float64 { return &f }
