package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/society-portal/internal/api/dto"
	"github.com/spec-kit/society-portal/internal/domain"
	"github.com/spec-kit/society-portal/internal/service"
	apperrors "github.com/spec-kit/society-portal/pkg/util"
)

// AuthHandler exposes login and registration endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	account, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(principalResponse(account, token, exp))
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}

	account, token, exp, err := h.auth.Register(c.Context(), service.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Contact:    req.Contact,
		Role:       domain.Role(req.Role),
		FlatNumber: req.FlatNumber,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(principalResponse(account, token, exp))
}

func principalResponse(account *domain.Account, token string, exp time.Time) dto.PrincipalResponse {
	resp := dto.PrincipalResponse{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		Role:      string(account.Role),
		Contact:   account.Contact,
		Token:     token,
		ExpiresAt: exp,
	}
	if account.FlatNumber != nil {
		resp.FlatNumber = *account.FlatNumber
	}
	return resp
}
