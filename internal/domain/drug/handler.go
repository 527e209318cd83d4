package drug

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rxguard/rxguard/pkg/pagination"
)

type Handler struct {
	resolver *Resolver
	repo     ConceptRepository
}

func NewHandler(resolver *Resolver, repo ConceptRepository) *Handler {
	return &Handler{resolver: resolver, repo: repo}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/drugs/search", h.SearchDrugs)
	api.GET("/drugs", h.ListDrugs)
}

// SearchDrugs resolves a free-text drug name to ranked canonical concepts.
func (h *Handler) SearchDrugs(c echo.Context) error {
	name := c.QueryParam("name")

	result, err := h.resolver.Resolve(c.Request().Context(), name)
	if err != nil {
		if errors.Is(err, ErrEmptyQuery) {
			return echo.NewHTTPError(http.StatusBadRequest, "name query parameter is required")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

// ListDrugs pages through the locally cached drug concepts.
func (h *Handler) ListDrugs(c echo.Context) error {
	pg := pagination.FromContext(c)
	drugs, total, err := h.repo.List(c.Request().Context(), pg)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(drugs, total, pg.Limit, pg.Offset))
}
