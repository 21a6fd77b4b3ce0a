package handlers

import (
	"net/http"

	"hiring-api/internal/services"
	"hiring-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// UserHandler holds the service dependency for account operations
type UserHandler struct {
	service   services.UserService
	validator *validator.Validate
	log       *zap.SugaredLogger
}

// NewUserHandler creates a new UserHandler with the given service
func NewUserHandler(service services.UserService, validate *validator.Validate, log *zap.SugaredLogger) *UserHandler {
	return &UserHandler{service: service, validator: validate, log: log}
}

// Register godoc
// @Summary      Register a new account
// @Description  Creates an applicant account. Staff roles are granted later by an admin.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user body      dto.RegisterRequest true  "Account to create"
// @Success      201  {object}  Response{data=dto.UserResponse} "Account created"
// @Failure      400  {object}  ErrorResponse "Bad Request - Invalid input"
// @Failure      409  {object}  ErrorResponse "Conflict - Email already registered"
// @Router       /users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidationError(c, err)
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusCreated, "Account registered successfully", dto.NewUserResponse(user))
}

// Login godoc
// @Summary      Log in
// @Description  Verifies credentials and returns an access/refresh token pair.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        credentials body dto.LoginRequest true "Login credentials"
// @Success      200  {object}  Response{data=dto.TokenResponse} "Logged in"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Router       /users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidationError(c, err)
		return
	}

	user, access, refresh, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "Logged in successfully", dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         dto.NewUserResponse(user),
	})
}

// Refresh godoc
// @Summary      Rotate the token pair
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        token body dto.RefreshRequest true "Refresh token"
// @Success      200  {object}  Response{data=dto.TokenResponse} "Tokens rotated"
// @Failure      401  {object}  ErrorResponse "Invalid or expired refresh token"
// @Router       /users/refresh [post]
func (h *UserHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidationError(c, err)
		return
	}

	access, refresh, err := h.service.Refresh(c.Request.Context(), &req)
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "Tokens refreshed successfully", dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes the presented refresh token.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        token body dto.LogoutRequest true "Refresh token to revoke"
// @Success      200  {object}  Response "Logged out"
// @Router       /users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.service.Logout(c.Request.Context(), &req); err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "Logged out successfully", nil)
}

// GetUsers godoc
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Success      200  {object}  Response{data=[]dto.UserResponse} "Users"
// @Router       /users [get]
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	resp := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, dto.NewUserResponse(user))
	}
	respond(c, http.StatusOK, "Users retrieved successfully", resp)
}

// GetUserByID godoc
// @Summary      Get a user by ID
// @Description  Users may read their own profile; HR and admins may read any.
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID" Format(uuid)
// @Success      200  {object}  Response{data=dto.UserResponse} "User"
// @Failure      403  {object}  ErrorResponse "Forbidden"
// @Failure      404  {object}  ErrorResponse "User Not Found"
// @Router       /users/{id} [get]
func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	actorID, actorRole, ok := callerIdentity(c)
	if !ok {
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), &dto.GetUserRequest{
		ID:        id,
		ActorID:   actorID,
		ActorRole: actorRole,
	})
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "User retrieved successfully", dto.NewUserResponse(user))
}

// UpdateUser godoc
// @Summary      Update a user
// @Description  Users may edit their own profile; only admins may change roles.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id   path      string                true  "User ID" Format(uuid)
// @Param        user body      dto.UpdateUserRequest true  "Fields to update"
// @Success      200  {object}  Response{data=dto.UserResponse} "User updated"
// @Failure      403  {object}  ErrorResponse "Forbidden"
// @Failure      404  {object}  ErrorResponse "User Not Found"
// @Router       /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	req.ID = id
	actorID, actorRole, ok := callerIdentity(c)
	if !ok {
		return
	}
	req.ActorID = actorID
	req.ActorRole = actorRole
	if err := h.validator.Struct(req); err != nil {
		respondValidationError(c, err)
		return
	}

	user, err := h.service.Update(c.Request.Context(), &req)
	if err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "User updated successfully", dto.NewUserResponse(user))
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  Staff accounts cannot be deleted.
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID" Format(uuid)
// @Success      200  {object}  Response "User deleted"
// @Failure      400  {object}  ErrorResponse "Staff account"
// @Failure      404  {object}  ErrorResponse "User Not Found"
// @Router       /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	actorID, actorRole, ok := callerIdentity(c)
	if !ok {
		return
	}
	req := dto.DeleteUserRequest{ID: id, ActorID: actorID, ActorRole: actorRole}

	if err := h.service.Delete(c.Request.Context(), &req); err != nil {
		mapServiceError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "User deleted successfully", nil)
}
