package models

type Customer struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Email    string `gorm:"type:varchar(360);unique;not null" json:"email"`
	Phone    string `gorm:"type:varchar(20);not null" json:"phone"`
	Address  string `gorm:"type:varchar(255);not null" json:"address"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`

	ServiceTickets []ServiceTicket `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"service_tickets,omitempty"`
}
