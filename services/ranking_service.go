package services

import (
	"gorm.io/gorm"
)

// MechanicRanking is one row of the workload ranking.
type MechanicRanking struct {
	MechanicID  uint   `json:"id"`
	Name        string `json:"name"`
	TicketCount int    `json:"ticket_count"`
}

type RankingService struct {
	DB *gorm.DB
}

func NewRankingService(db *gorm.DB) *RankingService {
	return &RankingService{DB: db}
}

// RankMechanics counts the distinct tickets each mechanic is assigned to.
// Mechanics with no assignments appear with a count of zero. Ties break on
// ascending mechanic id so the order is deterministic.
func (rs *RankingService) RankMechanics() ([]MechanicRanking, error) {
	var rankings []MechanicRanking
	err := rs.DB.
		Table("mechanics").
		Select("mechanics.id AS mechanic_id, mechanics.name AS name, COUNT(DISTINCT service_assignments.service_ticket_id) AS ticket_count").
		Joins("LEFT JOIN service_assignments ON service_assignments.mechanic_id = mechanics.id").
		Group("mechanics.id, mechanics.name").
		Order("ticket_count DESC, mechanics.id ASC").
		Scan(&rankings).Error
	if err != nil {
		return nil, err
	}
	return rankings, nil
}
