package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hiring-api/internal/models"
	"hiring-api/internal/storage"
	"hiring-api/internal/storage/postgres"
	"hiring-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const refreshKeyPrefix = "refresh:"

type userService struct {
	repo       storage.UserRepository
	redis      *redis.Client
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        *zap.SugaredLogger
}

// NewUserService creates a new instance of UserService. Refresh tokens are
// opaque values stored in redis under "refresh:<token>" with refreshTTL.
func NewUserService(db *gorm.DB, redisClient *redis.Client, jwtSecret string, accessTTL, refreshTTL time.Duration, log *zap.SugaredLogger) UserService {
	return &userService{
		repo:       postgres.NewUserRepo(db, log),
		redis:      redisClient,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        log.With("service", "UserService"),
	}
}

// Register creates an account. Everyone self-registers as an applicant; HR
// and admin roles are granted afterwards by an admin via Update.
func (s *userService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	user, err := s.repo.Create(ctx, &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         models.RoleApplicant,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) || errors.Is(err, storage.ErrConflict) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		s.log.Errorf("Error creating user: %v", err)
		return nil, fmt.Errorf("internal error creating user: %w", err)
	}
	s.log.Infof("User registered successfully with ID: %s", user.ID)
	return user, nil
}

func (s *userService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, string, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.log.Infof("Login attempt failed for email %s: user not found", req.Email)
			return nil, "", "", ErrInvalidCredentials
		}
		s.log.Errorf("Error fetching user by email %s during login: %v", req.Email, err)
		return nil, "", "", fmt.Errorf("internal error during login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.log.Infof("Login attempt failed for email %s: invalid password", req.Email)
		return nil, "", "", ErrInvalidCredentials
	}

	access, refresh, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

// Refresh rotates the token pair: the presented refresh token is consumed
// and a new one stored, so each refresh token is single-use.
func (s *userService) Refresh(ctx context.Context, req *dto.RefreshRequest) (string, string, error) {
	key := refreshKeyPrefix + req.RefreshToken
	userIDStr, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", "", ErrInvalidCredentials
		}
		s.log.Errorf("Error looking up refresh token: %v", err)
		return "", "", fmt.Errorf("internal error during refresh: %w", err)
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", fmt.Errorf("internal error during refresh: %w", err)
	}

	if err := s.redis.Del(ctx, key).Err(); err != nil {
		s.log.Errorf("Error revoking refresh token for user %s: %v", user.ID, err)
	}
	return s.issueTokens(ctx, user)
}

func (s *userService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	if err := s.redis.Del(ctx, refreshKeyPrefix+req.RefreshToken).Err(); err != nil {
		s.log.Errorf("Error deleting refresh token on logout: %v", err)
		return fmt.Errorf("internal error during logout: %w", err)
	}
	return nil
}

func (s *userService) issueTokens(ctx context.Context, user *models.User) (string, string, error) {
	access, err := newAccessToken(user, s.jwtSecret, s.accessTTL)
	if err != nil {
		s.log.Errorf("Error generating access token for user %s: %v", user.Email, err)
		return "", "", fmt.Errorf("failed to generate login token: %w", err)
	}
	refresh, err := newRefreshToken()
	if err != nil {
		return "", "", err
	}
	if err := s.redis.Set(ctx, refreshKeyPrefix+refresh, user.ID.String(), s.refreshTTL).Err(); err != nil {
		s.log.Errorf("Error storing refresh token for user %s: %v", user.ID, err)
		return "", "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return access, refresh, nil
}

func (s *userService) GetAll(ctx context.Context) ([]*models.User, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, MapRepoError(err, "listing users")
	}
	return users, nil
}

// GetByID returns a profile. Callers may only read themselves unless they
// are HR or admin.
func (s *userService) GetByID(ctx context.Context, req *dto.GetUserRequest) (*models.User, error) {
	if req.ActorRole != models.RoleHR && req.ActorRole != models.RoleAdmin && req.ActorID != req.ID {
		return nil, ErrForbidden
	}

	user, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, MapRepoError(err, fmt.Sprintf("fetching user %s", req.ID))
	}
	return user, nil
}

// Update patches mutable profile fields. A role change is honored only when
// the acting user is an admin; callers may otherwise only edit themselves.
func (s *userService) Update(ctx context.Context, req *dto.UpdateUserRequest) (*models.User, error) {
	if req.ActorRole != models.RoleAdmin && req.ActorID != req.ID {
		return nil, ErrForbidden
	}

	user, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, MapRepoError(err, fmt.Sprintf("fetching user %s", req.ID))
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Role != nil {
		if req.ActorRole != models.RoleAdmin {
			return nil, fmt.Errorf("%w: only admins may change roles", ErrForbidden)
		}
		user.Role = *req.Role
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, MapRepoError(err, "updating user")
	}
	return updated, nil
}

// Delete removes an account. HR and admin accounts are protected so the
// review side of the workflow cannot be emptied by accident.
func (s *userService) Delete(ctx context.Context, req *dto.DeleteUserRequest) error {
	if req.ActorRole != models.RoleAdmin && req.ActorID != req.ID {
		return ErrForbidden
	}

	user, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return MapRepoError(err, fmt.Sprintf("fetching user %s", req.ID))
	}
	if user.Role == models.RoleHR || user.Role == models.RoleAdmin {
		return fmt.Errorf("%w: staff accounts cannot be deleted", ErrValidation)
	}

	if err := s.repo.Delete(ctx, req.ID); err != nil {
		return MapRepoError(err, "deleting user")
	}
	s.log.Infof("User %s deleted", req.ID)
	return nil
}
