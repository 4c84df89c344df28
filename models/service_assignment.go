package models

import "time"

// ServiceAssignment links a mechanic to a service ticket. The composite
// primary key is what makes duplicate assignments a constraint violation
// instead of something the handlers have to check for themselves.
type ServiceAssignment struct {
	ServiceTicketID uint       `gorm:"primaryKey;autoIncrement:false" json:"service_ticket_id"`
	MechanicID      uint       `gorm:"primaryKey;autoIncrement:false" json:"mechanic_id"`
	DateAssigned    *time.Time `json:"date_assigned,omitempty"`

	ServiceTicket ServiceTicket `gorm:"foreignKey:ServiceTicketID" json:"-"`
	Mechanic      Mechanic      `gorm:"foreignKey:MechanicID" json:"-"`
}
