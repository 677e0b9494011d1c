package handler

import (
	"time"

	"github.com/layer2/project-tracker/internal/core/domain"
)

// --- Request / Response types ---
//
// Response types are owned by the transport layer and intentionally break the
// Customer/Project cycle structurally: a customer's projects are serialized
// without a customer back-pointer, and a project's customer without its
// project list.

type customerRequest struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"              validate:"required"`
	Code              string    `json:"code"              validate:"required"`
	ResponsiblePerson string    `json:"responsiblePerson" validate:"required"`
	StartDate         time.Time `json:"startDate"         validate:"required"`
	Version           int64     `json:"version"`
}

// projectSummaryResponse is the thin project view embedded in customer
// responses: scalar fields only, no customer back-reference.
type projectSummaryResponse struct {
	ID                int64     `json:"id"`
	Description       string    `json:"description"`
	ResponsiblePerson string    `json:"responsiblePerson"`
	StartDate         time.Time `json:"startDate"`
	EndDate           time.Time `json:"endDate"`
	CustomerID        int64     `json:"customerId"`
	Version           int64     `json:"version"`
}

type customerResponse struct {
	ID                int64                    `json:"id"`
	Name              string                   `json:"name"`
	Code              string                   `json:"code"`
	ResponsiblePerson string                   `json:"responsiblePerson"`
	StartDate         time.Time                `json:"startDate"`
	Version           int64                    `json:"version"`
	Projects          []projectSummaryResponse `json:"projects"`
}

func toCustomerResponse(c *domain.Customer) customerResponse {
	projects := make([]projectSummaryResponse, 0, len(c.Projects))
	for _, p := range c.Projects {
		projects = append(projects, toProjectSummary(&p))
	}
	return customerResponse{
		ID:                c.ID,
		Name:              c.Name,
		Code:              c.Code,
		ResponsiblePerson: c.ResponsiblePerson,
		StartDate:         c.StartDate,
		Version:           c.Version,
		Projects:          projects,
	}
}

func toProjectSummary(p *domain.Project) projectSummaryResponse {
	return projectSummaryResponse{
		ID:                p.ID,
		Description:       p.Description,
		ResponsiblePerson: p.ResponsiblePerson,
		StartDate:         p.StartDate,
		EndDate:           p.EndDate,
		CustomerID:        p.CustomerID,
		Version:           p.Version,
	}
}
