package staff

import (
	"errors"

	"github.com/cantina-pos/internal/http/response"
	"github.com/cantina-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest is the staff login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token and the staff profile.
type LoginResponse struct {
	Token string       `json:"token"`
	User  StaffProfile `json:"user"`
}

// StaffProfile is the staff account summary exposed to the UI.
type StaffProfile struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Login authenticates a staff member and issues a session token.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "usuario y contraseña requeridos", nil)
		return
	}

	token, user, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "usuario o contraseña incorrectos", nil)
		case errors.Is(err, service.ErrUserDisabled):
			respondError(c, response.CodeForbidden, "cuenta deshabilitada", nil)
		default:
			respondError(c, response.CodeInternal, "error al iniciar sesión", err)
		}
		return
	}

	response.Success(c, LoginResponse{
		Token: token,
		User: StaffProfile{
			ID:       user.ID,
			Username: user.Username,
			FullName: user.FullName,
			Role:     user.Role,
		},
	})
}

// Me returns the profile of the authenticated staff member.
func (h *Handler) Me(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserRepo.GetByID(uid)
	if err != nil || user == nil {
		respondError(c, response.CodeUnauthorized, "sesión inválida", err)
		return
	}
	response.Success(c, StaffProfile{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Role:     user.Role,
	})
}
