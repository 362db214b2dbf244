package identity

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/auth/register", h.Register)
	e.POST("/auth/login", h.Login)
}

type registerRequest struct {
	Role     string `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`

	Age       *int    `json:"age,omitempty"`
	Gender    *string `json:"gender,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
	Hospital  *string `json:"hospital,omitempty"`
}

type loginRequest struct {
	Role     string `json:"role"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := ParseRole(req.Role)
	if err != nil {
		return httpError(err)
	}

	creds, err := h.svc.Register(c.Request().Context(), role, req.Name, req.Email, req.Password, Profile{
		Age:       req.Age,
		Gender:    req.Gender,
		Specialty: req.Specialty,
		Hospital:  req.Hospital,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, creds)
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := ParseRole(req.Role)
	if err != nil {
		return httpError(err)
	}

	creds, err := h.svc.Login(c.Request().Context(), role, req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, creds)
}

// httpError maps domain errors onto the status codes of the API contract:
// 400 for validation, 409 for duplicate registration, 401 for failed
// credentials, 500 for storage failures.
func httpError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidRole), errors.Is(err, ErrMissingFields):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "storage failure")
	}
}
