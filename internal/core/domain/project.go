package domain

import "time"

// Project always references exactly one Customer. The store enforces the
// foreign key and cascade-deletes projects when their customer is removed.
type Project struct {
	ID                int64     `json:"id"`
	Description       string    `json:"description"`
	ResponsiblePerson string    `json:"responsiblePerson"`
	StartDate         time.Time `json:"startDate"`
	EndDate           time.Time `json:"endDate"`
	CustomerID        int64     `json:"customerId"`
	Version           int64     `json:"version"`

	// Customer is attached on reads. It is left nil inside
	// Customer.Projects so the relationship never cycles.
	Customer *Customer `json:"customer,omitempty"`
}
