package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/layer2/project-tracker/internal/api/metrics"
	"github.com/layer2/project-tracker/internal/core/domain"
	"github.com/layer2/project-tracker/internal/core/ports"
)

// ProjectHandler handles HTTP requests for project operations.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// conflictCounted counts concurrency conflicts before letting the error
// propagate to the central error handler.
func conflictCounted(err error, entity string) error {
	if errors.Is(err, domain.ErrConflict) {
		metrics.UpdateConflictsTotal.WithLabelValues(entity).Inc()
	}
	return err
}

// List handles GET /api/Project.
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, toProjectResponse(p))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/Project/:id.
func (h *ProjectHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	project, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponse(project))
}

// Create handles POST /api/Project. The referenced customer must exist.
func (h *ProjectHandler) Create(c echo.Context) error {
	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.service.Create(c.Request().Context(), ports.ProjectInput{
		Description:       req.Description,
		ResponsiblePerson: req.ResponsiblePerson,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		CustomerID:        req.CustomerID,
	})
	if err != nil {
		return err
	}

	metrics.ProjectsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toProjectResponse(project))
}

// Update handles PUT /api/Project/:id.
func (h *ProjectHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Update(c.Request().Context(), id, ports.ProjectInput{
		ID:                req.ID,
		Description:       req.Description,
		ResponsiblePerson: req.ResponsiblePerson,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		CustomerID:        req.CustomerID,
		Version:           req.Version,
	}); err != nil {
		return conflictCounted(err, "project")
	}

	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /api/Project/:id. Deleting a project has no
// cascading consequences upward.
func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
