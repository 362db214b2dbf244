package feedback

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/neuroscreen/neuroscreen/internal/domain/identity"
	"github.com/neuroscreen/neuroscreen/internal/platform/auth"
)

type Handler struct {
	svc      *Service
	resolver auth.SessionResolver
}

func NewHandler(svc *Service, resolver auth.SessionResolver) *Handler {
	return &Handler{svc: svc, resolver: resolver}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/doctor/feedback", h.SubmitFeedback,
		auth.RequireRole(h.resolver, identity.RoleDoctor.String()))
}

type feedbackRequest struct {
	AssessmentID    string   `json:"assessment_id"`
	Message         string   `json:"message"`
	Severity        string   `json:"severity,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

func (h *Handler) SubmitFeedback(c echo.Context) error {
	p, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	var req feedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	f, err := h.svc.Submit(c.Request().Context(), p.UserID, Submission{
		AssessmentID:    req.AssessmentID,
		Message:         req.Message,
		Severity:        req.Severity,
		Recommendations: req.Recommendations,
	})
	switch {
	case errors.Is(err, ErrMissingFields), errors.Is(err, ErrInvalidSeverity):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "storage failure")
	}

	return c.JSON(http.StatusOK, map[string]string{"feedback_id": f.ID})
}
