package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/layer2/project-tracker/internal/api/metrics"
	"github.com/layer2/project-tracker/internal/core/ports"
)

// CustomerHandler handles HTTP requests for customer operations. Role checks
// happen in middleware before any of these run.
type CustomerHandler struct {
	service ports.CustomerService
}

func NewCustomerHandler(service ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// List handles GET /api/Customer.
func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]customerResponse, 0, len(customers))
	for _, customer := range customers {
		resp = append(resp, toCustomerResponse(customer))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/Customer/:id.
func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	customer, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCustomerResponse(customer))
}

// Create handles POST /api/Customer. The id is store-assigned; any
// client-supplied id in the body is ignored.
func (h *CustomerHandler) Create(c echo.Context) error {
	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	customer, err := h.service.Create(c.Request().Context(), ports.CustomerInput{
		Name:              req.Name,
		Code:              req.Code,
		ResponsiblePerson: req.ResponsiblePerson,
		StartDate:         req.StartDate,
	})
	if err != nil {
		return err
	}

	metrics.CustomersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toCustomerResponse(customer))
}

// Update handles PUT /api/Customer/:id.
func (h *CustomerHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Update(c.Request().Context(), id, ports.CustomerInput{
		ID:                req.ID,
		Name:              req.Name,
		Code:              req.Code,
		ResponsiblePerson: req.ResponsiblePerson,
		StartDate:         req.StartDate,
		Version:           req.Version,
	}); err != nil {
		return conflictCounted(err, "customer")
	}

	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /api/Customer/:id. The store cascades the delete to
// all projects owned by the customer.
func (h *CustomerHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.CustomersDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}
