package explain

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/interactions/explain", h.ExplainInteraction)
}

type explainRequest struct {
	Drug1    string `json:"drug1"`
	Drug2    string `json:"drug2"`
	Severity string `json:"severity"`
}

// ExplainInteraction returns a bilingual narrative for a flagged drug pair.
func (h *Handler) ExplainInteraction(c echo.Context) error {
	var req explainRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Drug1 == "" || req.Drug2 == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "drug1 and drug2 are required")
	}
	return c.JSON(http.StatusOK, Explain(req.Drug1, req.Drug2, req.Severity))
}
