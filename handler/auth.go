package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mural-studio/backend/domain"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

type resetPasswordRequest struct {
	Username     string `json:"username" validate:"required"`
	SecretAnswer string `json:"secretAnswer" validate:"required"`
	NewPassword  string `json:"newPassword" validate:"required,min=8"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type registerAdminRequest struct {
	Username       string `json:"username" validate:"required,min=3,max=64"`
	Password       string `json:"password" validate:"required,min=8"`
	SecretQuestion string `json:"secretQuestion" validate:"required"`
	SecretAnswer   string `json:"secretAnswer" validate:"required"`
}

type secretQuestionResponse struct {
	Username       string `json:"username"`
	SecretQuestion string `json:"secretQuestion"`
}

func (h *Handler) Login(c echo.Context) error {
	req := new(loginRequest)
	if err := bind(c, req); err != nil {
		return httpError(c, err)
	}

	admin, err := h.AdminRepo.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return httpError(c, err)
	}
	return h.respondToken(c, admin.Username)
}

// GetSecretQuestion returns the recovery question. Unknown usernames are
// answered like a failed login.
func (h *Handler) GetSecretQuestion(c echo.Context) error {
	username := c.Param("username")
	question, err := h.AdminRepo.GetSecretQuestion(c.Request().Context(), username)
	if errors.Is(err, domain.ErrNotFound) {
		return httpError(c, errors.Wrap(domain.ErrUnauthorized, "invalid username"))
	}
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, secretQuestionResponse{Username: username, SecretQuestion: question})
}

// ResetPassword sets a new password after the secret answer was verified and
// logs the admin in.
func (h *Handler) ResetPassword(c echo.Context) error {
	req := new(resetPasswordRequest)
	if err := bind(c, req); err != nil {
		return httpError(c, err)
	}

	err := h.AdminRepo.ResetPassword(c.Request().Context(), req.Username, req.SecretAnswer, req.NewPassword)
	if errors.Is(err, domain.ErrNotFound) {
		err = errors.Wrap(domain.ErrUnauthorized, "invalid username or secret answer")
	}
	if err != nil {
		return httpError(c, err)
	}
	return h.respondToken(c, req.Username)
}

func (h *Handler) RegisterAdmin(c echo.Context) error {
	req := new(registerAdminRequest)
	if err := bind(c, req); err != nil {
		return httpError(c, err)
	}

	admin, err := h.AdminRepo.Register(c.Request().Context(), domain.NewAdmin{
		Username:       req.Username,
		Password:       req.Password,
		SecretQuestion: req.SecretQuestion,
		SecretAnswer:   req.SecretAnswer,
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, admin)
}

func (h *Handler) ChangePassword(c echo.Context) error {
	req := new(changePasswordRequest)
	if err := bind(c, req); err != nil {
		return httpError(c, err)
	}

	claims := claimsFrom(c)
	if claims == nil || claims.Subject == "" {
		return httpError(c, errors.Wrap(domain.ErrUnauthorized, "no admin in token"))
	}
	if err := h.AdminRepo.ChangePassword(c.Request().Context(), claims.Subject, req.OldPassword, req.NewPassword); err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) respondToken(c echo.Context, username string) error {
	token, err := h.Tokens.Issue(username, true)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, loginResponse{Username: username, Token: token})
}
