package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mural-studio/backend/db"
	"github.com/mural-studio/backend/domain"
	"github.com/mural-studio/backend/notify"
)

type Handler struct {
	ItemRepo     db.ItemRepository
	OrderRepo    db.OrderRepository
	MuralRepo    db.MuralRepository
	MessageRepo  db.MessageRepository
	HomepageRepo db.HomepageRepository
	IGPostRepo   db.IGPostRepository
	AdminRepo    db.AdminRepository

	Tokens *TokenIssuer
	Images *ImageStore
	Mailer notify.Mailer
	// AdminEmail receives contact form notifications.
	AdminEmail string
}

// httpError maps repository error kinds onto HTTP status codes. Anything that
// is not a caller error is logged and reported as 500.
func httpError(c echo.Context, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
			"message": "invalid request",
			"errors":  verr.Violations,
		})
	}

	switch {
	case errors.Is(err, domain.ErrBadRequest):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	c.Logger().Errorf("%+v", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}

// bind decodes the request body into req and runs the registered validator.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errors.Wrap(domain.ErrBadRequest, "malformed request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}

func paramID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Wrapf(domain.ErrBadRequest, "invalid %s", name)
	}
	return id, nil
}

// handleID parses the :id parameter and renders whatever fn returns.
func handleID[T any](c echo.Context, status int, fn func(id int64) (T, error)) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httpError(c, err)
	}
	res, err := fn(id)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(status, res)
}

func noContent(c echo.Context, fn func(id int64) error) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httpError(c, err)
	}
	if err := fn(id); err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
