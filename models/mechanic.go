package models

type Mechanic struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"type:varchar(255);not null" json:"name"`
	Email    string  `gorm:"type:varchar(360);unique;not null" json:"email"`
	Phone    string  `gorm:"type:varchar(20);not null" json:"phone"`
	Address  string  `gorm:"type:varchar(255);not null" json:"address"`
	Salary   float64 `gorm:"not null" json:"salary"`
	Password string  `gorm:"type:varchar(255);not null" json:"-"`

	ServiceAssignments []ServiceAssignment `gorm:"foreignKey:MechanicID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"service_assignments,omitempty"`
}
