package assessment

import (
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
	e.POST("/predict", h.Predict)
	e.GET("/patient/assessments", h.PatientAssessments,
		auth.RequireRole(h.resolver, identity.RolePatient.String()))
	e.GET("/doctor/assessments", h.DoctorAssessments,
		auth.RequireRole(h.resolver, identity.RoleDoctor.String()))
}

type predictRequest struct {
	Features
	Notes string `json:"notes,omitempty"`
	// UserID tags an unverified self-report when no session token is
	// presented. It may also arrive as the user_id query parameter.
	UserID string `json:"user_id,omitempty"`
}

type predictResponse struct {
	AssessmentID string    `json:"assessment_id"`
	Probability  float64   `json:"probability"`
	Label        RiskLabel `json:"label"`
}

// Predict scores a questionnaire. The caller must present either a session
// token (which has to resolve, and owns the assessment only when issued for
// a patient) or an explicit user id, recorded as an unverified self-report.
func (h *Handler) Predict(c echo.Context) error {
	var req predictRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.UserID == "" {
		req.UserID = c.QueryParam("user_id")
	}

	token := auth.TokenFromRequest(c)
	if token == "" && req.UserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var subject Subject
	switch {
	case token != "":
		p, err := h.resolver.Resolve(c.Request().Context(), token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
		}
		if p.Role == identity.RolePatient.String() {
			subject = VerifiedPatient(p.UserID)
		} else {
			subject = Anonymous()
		}
	default:
		subject = SelfReport(req.UserID)
	}

	a, err := h.svc.Submit(c.Request().Context(), subject, req.Features, req.Notes)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "storage failure")
	}

	return c.JSON(http.StatusOK, predictResponse{
		AssessmentID: a.ID,
		Probability:  a.Probability,
		Label:        a.ResultLabel,
	})
}

func (h *Handler) PatientAssessments(c echo.Context) error {
	p, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	items, err := h.svc.ListByPatient(c.Request().Context(), p.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "storage failure")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) DoctorAssessments(c echo.Context) error {
	items, err := h.svc.ListAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "storage failure")
	}
	return c.JSON(http.StatusOK, items)
}
