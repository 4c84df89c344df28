package models

import "time"

type ServiceTicket struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"type:varchar(255);not null" json:"title"`
	VIN         string       `gorm:"column:vin;type:varchar(17);not null" json:"vin"`
	Description string       `gorm:"type:varchar(255);not null" json:"description"`
	Status      TicketStatus `gorm:"type:varchar(50);not null" json:"status"`
	Cost        float64      `gorm:"not null" json:"cost"`
	ServiceDate time.Time    `gorm:"not null" json:"service_date"`
	DateCreated time.Time    `gorm:"not null" json:"date_created"`

	CustomerID uint     `gorm:"not null;index" json:"customer_id"`
	Customer   Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	ServiceAssignments   []ServiceAssignment   `gorm:"foreignKey:ServiceTicketID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"service_assignments,omitempty"`
	InventoryAssignments []InventoryAssignment `gorm:"foreignKey:ServiceTicketID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"inventory_assignments,omitempty"`
}
