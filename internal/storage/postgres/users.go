package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hiring-api/internal/models"
	"hiring-api/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserRepo implements the storage.UserRepository interface using GORM.
type UserRepo struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *gorm.DB, log *zap.SugaredLogger) *UserRepo {
	return &UserRepo{db: db, log: log.With("repo", "UserRepo")}
}

func (r *UserRepo) WithTx(tx *gorm.DB) storage.UserRepository {
	return &UserRepo{db: tx, log: r.log}
}

// Compile-time check to ensure UserRepo implements UserRepository
var _ storage.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			r.log.Infof("User create rejected, email already registered: %s", user.Email)
			return nil, storage.ErrDuplicateEmail
		}
		r.log.Errorf("Error creating user: %v", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		r.log.Errorf("Error retrieving user by ID %s: %v", id, err)
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		r.log.Errorf("Error retrieving user by email %s: %v", email, err)
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *UserRepo) GetAll(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		r.log.Errorf("Error listing users: %v", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *UserRepo) ListByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	var users []*models.User
	if err := r.db.WithContext(ctx).Where("role = ?", role).Find(&users).Error; err != nil {
		r.log.Errorf("Error listing users by role %s: %v", role, err)
		return nil, fmt.Errorf("failed to list users by role %s: %w", role, err)
	}
	return users, nil
}

func (r *UserRepo) Update(ctx context.Context, user *models.User) (*models.User, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(user)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return nil, storage.ErrDuplicateEmail
		}
		r.log.Errorf("Error updating user %s: %v", user.ID, res.Error)
		return nil, fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, storage.ErrNotFound
	}
	return r.GetByID(ctx, user.ID)
}

func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		r.log.Errorf("Error deleting user %s: %v", id, res.Error)
		return fmt.Errorf("failed to delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	r.log.Infof("User deleted successfully with ID: %s", id)
	return nil
}

// isUniqueViolation inspects driver errors for unique-index violations.
// Covers postgres (SQLSTATE 23505) and sqlite (used by the test suite).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
