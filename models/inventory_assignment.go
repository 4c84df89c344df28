package models

// InventoryAssignment records how many units of a part a ticket consumes.
// The (ticket, inventory) pair is unique; re-adding the same part goes
// through the ledger's upsert-increment instead of creating a second row.
type InventoryAssignment struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	ServiceTicketID uint `gorm:"not null;uniqueIndex:idx_ticket_inventory" json:"service_ticket_id"`
	InventoryID     uint `gorm:"not null;uniqueIndex:idx_ticket_inventory" json:"inventory_id"`
	Quantity        int  `gorm:"not null;default:1" json:"quantity"`

	ServiceTicket ServiceTicket `gorm:"foreignKey:ServiceTicketID" json:"-"`
	Inventory     Inventory     `gorm:"foreignKey:InventoryID" json:"-"`
}
