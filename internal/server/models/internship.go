package models

import (
	"strings"
	"time"
)

// Status is the stage of an internship application. Any status may move to
// any other one; there is no enforced transition graph.
type Status string

const (
	StatusApplied      Status = "applied"
	StatusInterviewing Status = "interviewing"
	StatusOffer        Status = "offer"
	StatusRejected     Status = "rejected"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusApplied, StatusInterviewing, StatusOffer, StatusRejected}

func (s Status) Valid() bool {
	switch s {
	case StatusApplied, StatusInterviewing, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// Internship is one tracked application. UserID is the owner and is never
// serialized; ownership is implied by the authenticated caller.
type Internship struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Company   string    `json:"company"`
	Role      string    `json:"role"`
	Status    Status    `json:"status"`
	Link      *string   `json:"link"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// InternshipInput carries client-supplied fields for create and update.
type InternshipInput struct {
	Company string `json:"company"`
	Role    string `json:"role"`
	Status  string `json:"status"`
	Link    string `json:"link"`
	Notes   string `json:"notes"`
}

// InternshipFilter narrows a listing. Zero value matches everything.
type InternshipFilter struct {
	Status Status
	// Query is matched case-insensitively against company and role.
	Query string
}

// OptionalText trims s and returns nil when nothing is left.
func OptionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
