package interaction

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rxguard/rxguard/internal/domain/conditions"
	"github.com/rxguard/rxguard/internal/domain/dietary"
	"github.com/rxguard/rxguard/pkg/pagination"
)

type Handler struct {
	reconciler   *Reconciler
	repo         RecordRepository
	nomenclature Nomenclature
}

func NewHandler(reconciler *Reconciler, repo RecordRepository, nomenclature Nomenclature) *Handler {
	return &Handler{reconciler: reconciler, repo: repo, nomenclature: nomenclature}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/interactions/check", h.CheckInteractions)
	api.GET("/interactions", h.ListRecords)
	api.POST("/interactions", h.CreateRecord)
	api.DELETE("/interactions/:id", h.DeleteRecord)
}

type checkRequest struct {
	RxCUIs     []string `json:"rxcuis"`
	Conditions []string `json:"conditions"`
}

type checkResponse struct {
	Interactions          []Finding            `json:"interactions"`
	FoodInteractions      []dietary.Warning    `json:"food_interactions"`
	ConditionInteractions []conditions.Warning `json:"condition_interactions"`
	Partial               bool                 `json:"partial,omitempty"`
}

// CheckInteractions reconciles drug-drug interactions for the medication list
// and runs the food and health-condition rule checks on the resolved names.
func (h *Handler) CheckInteractions(c echo.Context) error {
	var req checkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(req.RxCUIs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "rxcuis is required")
	}

	ctx := c.Request().Context()

	result, err := h.reconciler.Check(ctx, req.RxCUIs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// The rule tables key on names, not identifiers. Unresolvable ids are
	// left out; they cannot match a name keyword anyway.
	var drugNames []string
	for _, rxcui := range req.RxCUIs {
		if name, err := h.nomenclature.DisplayName(ctx, rxcui); err == nil && name != "" {
			drugNames = append(drugNames, name)
		}
	}

	return c.JSON(http.StatusOK, checkResponse{
		Interactions:          result.Interactions,
		FoodInteractions:      dietary.Check(drugNames),
		ConditionInteractions: conditions.Check(drugNames, req.Conditions),
		Partial:               result.Partial,
	})
}

func (h *Handler) ListRecords(c echo.Context) error {
	pg := pagination.FromContext(c)
	records, total, err := h.repo.List(c.Request().Context(), pg)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(records, total, pg.Limit, pg.Offset))
}

func (h *Handler) CreateRecord(c echo.Context) error {
	var rec Record
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if rec.Drug1RxCUI == "" || rec.Drug2RxCUI == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "both drug_1_rxcui and drug_2_rxcui are required")
	}
	if rec.Severity == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "severity is required")
	}
	if err := h.repo.Create(c.Request().Context(), &rec); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) DeleteRecord(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "interaction not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
