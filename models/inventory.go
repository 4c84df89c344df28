package models

// Inventory is a catalog part. Quantity is the on-hand stock count and is
// not decremented when units are assigned to a ticket.
type Inventory struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	PartName    string  `gorm:"type:varchar(255);not null" json:"part_name"`
	Description string  `gorm:"type:varchar(255)" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Quantity    int     `gorm:"not null;default:0" json:"quantity"`
}

func (Inventory) TableName() string {
	return "inventory"
}
