package handler

import (
	"time"

	"github.com/layer2/project-tracker/internal/core/domain"
)

type projectRequest struct {
	ID                int64     `json:"id"`
	Description       string    `json:"description"       validate:"required"`
	ResponsiblePerson string    `json:"responsiblePerson"`
	StartDate         time.Time `json:"startDate"         validate:"required"`
	EndDate           time.Time `json:"endDate"`
	CustomerID        int64     `json:"customerId"        validate:"required,gt=0"`
	Version           int64     `json:"version"`
}

// customerSummaryResponse is the thin customer view embedded in project
// responses: scalar fields only, no project list.
type customerSummaryResponse struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Code              string    `json:"code"`
	ResponsiblePerson string    `json:"responsiblePerson"`
	StartDate         time.Time `json:"startDate"`
	Version           int64     `json:"version"`
}

type projectResponse struct {
	ID                int64                    `json:"id"`
	Description       string                   `json:"description"`
	ResponsiblePerson string                   `json:"responsiblePerson"`
	StartDate         time.Time                `json:"startDate"`
	EndDate           time.Time                `json:"endDate"`
	CustomerID        int64                    `json:"customerId"`
	Version           int64                    `json:"version"`
	Customer          *customerSummaryResponse `json:"customer,omitempty"`
}

func toProjectResponse(p *domain.Project) projectResponse {
	resp := projectResponse{
		ID:                p.ID,
		Description:       p.Description,
		ResponsiblePerson: p.ResponsiblePerson,
		StartDate:         p.StartDate,
		EndDate:           p.EndDate,
		CustomerID:        p.CustomerID,
		Version:           p.Version,
	}
	if p.Customer != nil {
		resp.Customer = &customerSummaryResponse{
			ID:                p.Customer.ID,
			Name:              p.Customer.Name,
			Code:              p.Customer.Code,
			ResponsiblePerson: p.Customer.ResponsiblePerson,
			StartDate:         p.Customer.StartDate,
			Version:           p.Customer.Version,
		}
	}
	return resp
}
