package domain

import "time"

// Customer is the owning side of the customer/project relationship.
// ID is store-assigned and immutable; Version is the optimistic concurrency
// token, bumped on every successful update.
type Customer struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Code              string    `json:"code"`
	ResponsiblePerson string    `json:"responsiblePerson"`
	StartDate         time.Time `json:"startDate"`
	Version           int64     `json:"version"`
	Projects          []Project `json:"projects"`
}
