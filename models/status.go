package models

import (
	"fmt"
	"strings"
)

// TicketStatus is the closed set of service ticket states. Every layer
// passes the typed value around; free-form strings only exist at the JSON
// boundary where ParseTicketStatus normalizes them.
type TicketStatus string

const (
	StatusPending    TicketStatus = "PENDING"
	StatusInProgress TicketStatus = "IN_PROGRESS"
	StatusCompleted  TicketStatus = "COMPLETED"
	StatusCancelled  TicketStatus = "CANCELLED"
)

// ValidTicketStatuses is ordered for stable error messages.
var ValidTicketStatuses = []TicketStatus{
	StatusPending,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// ParseTicketStatus matches case-insensitively and returns the canonical
// upper-case label. Any ticket may move to any of the four states, so
// parsing is the only validation a transition needs.
func ParseTicketStatus(raw string) (TicketStatus, error) {
	candidate := TicketStatus(strings.ToUpper(strings.TrimSpace(raw)))
	for _, s := range ValidTicketStatuses {
		if candidate == s {
			return s, nil
		}
	}
	labels := make([]string, len(ValidTicketStatuses))
	for i, s := range ValidTicketStatuses {
		labels[i] = string(s)
	}
	return "", fmt.Errorf("invalid status %q, must be one of: %s", raw, strings.Join(labels, ", "))
}

func (s TicketStatus) String() string {
	return string(s)
}
