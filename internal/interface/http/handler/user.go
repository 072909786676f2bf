package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	appuser "github.com/javanauta/user-directory/internal/application/user"
	"github.com/javanauta/user-directory/internal/interface/http/dto"
	"github.com/javanauta/user-directory/internal/interface/http/middleware"
	apperrors "github.com/javanauta/user-directory/pkg/errors"
	"github.com/javanauta/user-directory/pkg/response"
)

// UserHandler translates HTTP requests into use-case calls. It owns shape
// validation (binding tags, password policy, id parsing); business rules
// live below it.
type UserHandler struct {
	createUseCase *appuser.CreateUserUseCase
	listUseCase   *appuser.ListUsersUseCase
	getUseCase    *appuser.GetUserUseCase
	updateUseCase *appuser.UpdateUserUseCase
	deleteUseCase *appuser.DeleteUserUseCase
	loginUseCase  *appuser.LoginUseCase
	logoutUseCase *appuser.LogoutUseCase
}

// NewUserHandler creates the user handler.
func NewUserHandler(
	createUseCase *appuser.CreateUserUseCase,
	listUseCase *appuser.ListUsersUseCase,
	getUseCase *appuser.GetUserUseCase,
	updateUseCase *appuser.UpdateUserUseCase,
	deleteUseCase *appuser.DeleteUserUseCase,
	loginUseCase *appuser.LoginUseCase,
	logoutUseCase *appuser.LogoutUseCase,
) *UserHandler {
	return &UserHandler{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		loginUseCase:  loginUseCase,
		logoutUseCase: logoutUseCase,
	}
}

// Create registers a new user.
// @Summary      Create user
// @Description  Registers a new user. Role defaults to ordinary when omitted.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateUserRequest true "user to create"
// @Success      201 {object} response.Response{data=dto.UserResponse}
// @Failure      400 {object} response.Response "invalid input"
// @Failure      409 {object} response.Response "email already registered"
// @Router       /api/v1/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "invalid request: "+err.Error())
		return
	}

	if !dto.ValidPassword(req.Password) {
		response.Error(c, apperrors.ErrWeakPassword)
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), appuser.CreateUserRequest{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toUserResponse(result))
}

// List returns all users.
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.UserResponse}
// @Router       /api/v1/users [get]
func (h *UserHandler) List(c *gin.Context) {
	result, err := h.listUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]*dto.UserResponse, 0, len(result))
	for _, u := range result {
		out = append(out, toUserResponse(u))
	}

	response.Success(c, out)
}

// GetByID returns one user by id.
// @Summary      Get user by id
// @Tags         users
// @Produce      json
// @Param        id path int true "user id"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      400 {object} response.Response "invalid id"
// @Failure      404 {object} response.Response "user not found"
// @Router       /api/v1/users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.getUseCase.ExecuteByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toUserResponse(result))
}

// GetByEmail returns one user by email (exact match).
// @Summary      Get user by email
// @Tags         users
// @Produce      json
// @Param        email query string true "user email"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      404 {object} response.Response "user not found"
// @Router       /api/v1/users/email [get]
func (h *UserHandler) GetByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "query parameter 'email' is required")
		return
	}

	result, err := h.getUseCase.ExecuteByEmail(c.Request.Context(), email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toUserResponse(result))
}

// Delete removes a user by email. Requires administrator or the owner of
// that email (enforced by middleware before this handler runs).
// @Summary      Delete user by email
// @Tags         users
// @Param        email query string true "user email"
// @Success      204
// @Failure      401 {object} response.Response "not authenticated"
// @Failure      403 {object} response.Response "insufficient permissions"
// @Failure      404 {object} response.Response "user not found"
// @Security     BearerAuth
// @Router       /api/v1/users/email [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "query parameter 'email' is required")
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), email); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Update applies a partial update to a user. Requires administrator or the
// user itself (enforced by middleware). Role and password in the payload are
// never applied.
// @Summary      Update user by id
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path int true "user id"
// @Param        request body dto.UpdateUserRequest true "fields to change"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      400 {object} response.Response "invalid input"
// @Failure      401 {object} response.Response "not authenticated"
// @Failure      403 {object} response.Response "insufficient permissions"
// @Failure      404 {object} response.Response "user not found"
// @Failure      409 {object} response.Response "email already registered"
// @Security     BearerAuth
// @Router       /api/v1/users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "invalid request: "+err.Error())
		return
	}

	// req.Role is intentionally dropped here.
	result, err := h.updateUseCase.Execute(c.Request.Context(), id, appuser.UpdateUserRequest{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toUserResponse(result))
}

// Login verifies credentials and returns a token pair.
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "credentials"
// @Success      200 {object} response.Response{data=dto.LoginResponse}
// @Failure      400 {object} response.Response "invalid input"
// @Failure      401 {object} response.Response "invalid email or password"
// @Router       /api/v1/users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "invalid request: "+err.Error())
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appuser.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.LoginResponse{
		User:         *toUserResponse(&result.User),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
	})
}

// Logout revokes the caller's access token.
// @Summary      Logout
// @Tags         users
// @Success      204
// @Failure      401 {object} response.Response "not authenticated"
// @Security     BearerAuth
// @Router       /api/v1/users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	userID := middleware.GetUserID(c)
	token := middleware.GetAccessToken(c)

	if err := h.logoutUseCase.Execute(c.Request.Context(), userID, token); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// parseID reads the id path parameter, writing a 400 on failure.
func parseID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams,
			fmt.Sprintf("'%s' is not a valid user id", raw))
		return 0, false
	}
	return uint(id), true
}

func toUserResponse(u *appuser.UserData) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
