// Package models holds the client-side view of API resources.
package models

import "time"

// Statuses lists the application states the server accepts.
var Statuses = []string{"applied", "interviewing", "offer", "rejected"}

// Session is the authenticated state persisted between CLI runs.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type Internship struct {
	ID        int64     `json:"id"`
	Company   string    `json:"company"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	Link      *string   `json:"link"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

type InternshipInput struct {
	Company string `json:"company"`
	Role    string `json:"role"`
	Status  string `json:"status,omitempty"`
	Link    string `json:"link,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// Input converts a stored record back into an editable form.
func (i *Internship) Input() InternshipInput {
	in := InternshipInput{Company: i.Company, Role: i.Role, Status: i.Status}
	if i.Link != nil {
		in.Link = *i.Link
	}
	if i.Notes != nil {
		in.Notes = *i.Notes
	}
	return in
}
