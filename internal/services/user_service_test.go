package services_test

import (
	"context"
	"testing"
	"time"

	"hiring-api/internal/models"
	"hiring-api/internal/services"
	"hiring-api/internal/transport/dto"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret-key"

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func newUserService(t *testing.T, db *gorm.DB) (services.UserService, *redis.Client) {
	t.Helper()
	rdb := newTestRedis(t)
	return services.NewUserService(db, rdb, testJWTSecret, 15*time.Minute, 24*time.Hour, newTestLogger()), rdb
}

func TestUserService_Register(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newUserService(t, db)
	ctx := context.Background()

	t.Run("Success defaults to applicant role", func(t *testing.T) {
		user, err := svc.Register(ctx, &dto.RegisterRequest{
			Email:    "new@example.com",
			Password: "password123",
			Name:     "New Applicant",
		})
		require.NoError(t, err)
		assert.Equal(t, models.RoleApplicant, user.Role)
		assert.NotEqual(t, "password123", user.PasswordHash, "password must be hashed")
	})

	t.Run("Duplicate email is a conflict", func(t *testing.T) {
		_, err := svc.Register(ctx, &dto.RegisterRequest{
			Email:    "new@example.com",
			Password: "password123",
			Name:     "Impostor",
		})
		assert.ErrorIs(t, err, services.ErrConflict)
	})
}

func TestUserService_LoginRefreshLogout(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newUserService(t, db)
	ctx := context.Background()

	hr := createTestUser(t, db, "hr@example.com", models.RoleHR)

	t.Run("Login returns a token pair with the role claim", func(t *testing.T) {
		user, access, refresh, err := svc.Login(ctx, &dto.LoginRequest{Email: hr.Email, Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, hr.ID, user.ID)
		assert.NotEmpty(t, refresh)

		claims := &services.AccessClaims{}
		_, err = jwt.ParseWithClaims(access, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(testJWTSecret), nil
		})
		require.NoError(t, err)
		assert.Equal(t, hr.ID.String(), claims.Subject)
		assert.Equal(t, models.RoleHR, claims.Role)
	})

	t.Run("Wrong password is rejected", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, &dto.LoginRequest{Email: hr.Email, Password: "wrong"})
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("Unknown email is rejected", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, &dto.LoginRequest{Email: "ghost@example.com", Password: "password123"})
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("Refresh rotates and consumes the token", func(t *testing.T) {
		_, _, refresh, err := svc.Login(ctx, &dto.LoginRequest{Email: hr.Email, Password: "password123"})
		require.NoError(t, err)

		access2, refresh2, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: refresh})
		require.NoError(t, err)
		assert.NotEmpty(t, access2)
		assert.NotEqual(t, refresh, refresh2)

		// The old token is single-use.
		_, _, err = svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: refresh})
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("Logout revokes the refresh token", func(t *testing.T) {
		_, _, refresh, err := svc.Login(ctx, &dto.LoginRequest{Email: hr.Email, Password: "password123"})
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, &dto.LogoutRequest{RefreshToken: refresh}))

		_, _, err = svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: refresh})
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})
}

func TestUserService_UpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newUserService(t, db)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	hr := createTestUser(t, db, "hr@example.com", models.RoleHR)
	applicant := createTestUser(t, db, "applicant@example.com", models.RoleApplicant)

	t.Run("User reads own profile", func(t *testing.T) {
		got, err := svc.GetByID(ctx, &dto.GetUserRequest{ID: applicant.ID, ActorID: applicant.ID, ActorRole: models.RoleApplicant})
		require.NoError(t, err)
		assert.Equal(t, applicant.Email, got.Email)
	})

	t.Run("User cannot read someone else's profile", func(t *testing.T) {
		_, err := svc.GetByID(ctx, &dto.GetUserRequest{ID: hr.ID, ActorID: applicant.ID, ActorRole: models.RoleApplicant})
		assert.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("HR reads any profile", func(t *testing.T) {
		got, err := svc.GetByID(ctx, &dto.GetUserRequest{ID: applicant.ID, ActorID: hr.ID, ActorRole: models.RoleHR})
		require.NoError(t, err)
		assert.Equal(t, applicant.ID, got.ID)
	})

	t.Run("User edits own profile", func(t *testing.T) {
		updated, err := svc.Update(ctx, &dto.UpdateUserRequest{
			ID:        applicant.ID,
			Name:      ptr("Renamed"),
			ActorID:   applicant.ID,
			ActorRole: models.RoleApplicant,
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Name)
	})

	t.Run("User cannot edit someone else", func(t *testing.T) {
		_, err := svc.Update(ctx, &dto.UpdateUserRequest{
			ID:        hr.ID,
			Name:      ptr("Hijacked"),
			ActorID:   applicant.ID,
			ActorRole: models.RoleApplicant,
		})
		assert.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("Only admins change roles", func(t *testing.T) {
		role := models.RoleHR
		_, err := svc.Update(ctx, &dto.UpdateUserRequest{
			ID:        applicant.ID,
			Role:      &role,
			ActorID:   applicant.ID,
			ActorRole: models.RoleApplicant,
		})
		assert.ErrorIs(t, err, services.ErrForbidden)

		updated, err := svc.Update(ctx, &dto.UpdateUserRequest{
			ID:        applicant.ID,
			Role:      &role,
			ActorID:   admin.ID,
			ActorRole: models.RoleAdmin,
		})
		require.NoError(t, err)
		assert.Equal(t, models.RoleHR, updated.Role)

		// Restore for the delete cases below.
		back := models.RoleApplicant
		_, err = svc.Update(ctx, &dto.UpdateUserRequest{ID: applicant.ID, Role: &back, ActorID: admin.ID, ActorRole: models.RoleAdmin})
		require.NoError(t, err)
	})

	t.Run("Staff accounts cannot be deleted", func(t *testing.T) {
		err := svc.Delete(ctx, &dto.DeleteUserRequest{ID: hr.ID, ActorID: admin.ID, ActorRole: models.RoleAdmin})
		assert.ErrorIs(t, err, services.ErrValidation)
	})

	t.Run("Applicant account can be deleted by admin", func(t *testing.T) {
		err := svc.Delete(ctx, &dto.DeleteUserRequest{ID: applicant.ID, ActorID: admin.ID, ActorRole: models.RoleAdmin})
		require.NoError(t, err)

		_, err = svc.GetByID(ctx, &dto.GetUserRequest{ID: applicant.ID, ActorID: admin.ID, ActorRole: models.RoleAdmin})
		assert.ErrorIs(t, err, services.ErrNotFound)
	})
}
