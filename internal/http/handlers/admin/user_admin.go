package admin

import (
	"errors"
	"strconv"

	"github.com/cantina-pos/internal/http/response"
	"github.com/cantina-pos/internal/models"
	"github.com/cantina-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// UserCreateRequest creates a staff account.
type UserCreateRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
	Role     string `json:"role" binding:"required"`
}

// UserUpdateRequest updates a staff account; absent fields keep their value.
type UserUpdateRequest struct {
	Password *string `json:"password"`
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	Active   *bool   `json:"active"`
}

// UserResponse is the staff account summary.
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}

// ListUsers returns every staff account.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.UserService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error al cargar los usuarios", err)
		return
	}
	resp := make([]UserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, toUserResponse(&user))
	}
	response.Success(c, resp)
}

// CreateUser creates a staff account.
func (h *Handler) CreateUser(c *gin.Context) {
	var req UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "usuario, contraseña y rol requeridos", nil)
		return
	}
	user, err := h.UserService.Create(service.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}
	response.Success(c, toUserResponse(user))
}

// UpdateUser applies a partial update to a staff account.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	var req UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "datos inválidos", nil)
		return
	}
	user, err := h.UserService.Update(id, service.UpdateUserInput{
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
		Active:   req.Active,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}
	response.Success(c, toUserResponse(user))
}

// DeleteUser removes a staff account.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	if err := h.UserService.Delete(id); err != nil {
		respondUserError(c, err)
		return
	}
	response.Success(c, nil)
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		respondError(c, response.CodeNotFound, "usuario no encontrado", nil)
	case errors.Is(err, service.ErrUsernameTaken):
		respondError(c, response.CodeConflict, "el nombre de usuario ya existe", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, response.CodeBadRequest, "datos del usuario inválidos", nil)
	default:
		respondError(c, response.CodeInternal, "error al guardar el usuario", err)
	}
}

func toUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Role:     user.Role,
		Active:   user.Active,
	}
}

func userIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, response.CodeBadRequest, "identificador inválido", nil)
		return 0, false
	}
	return uint(id), true
}
