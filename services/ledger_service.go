package services

import (
	"errors"
	"time"

	"github.com/ardiansyahdev/mechanic-shop/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerService owns the two join relationships of a service ticket:
// ticket-mechanic assignments and ticket-inventory consumption. Every
// mutation runs in a single transaction and duplicate pairs are caught by
// the store's uniqueness constraints, never by a read-then-insert check.
type LedgerService struct {
	DB *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{DB: db}
}

// AssignMechanic inserts a (ticket, mechanic) row. The pair is the table's
// composite primary key, so two concurrent inserts for the same pair race
// on the constraint and exactly one of them wins.
func (ls *LedgerService) AssignMechanic(ticketID, mechanicID uint, dateAssigned *time.Time) (*models.ServiceAssignment, error) {
	assignment := models.ServiceAssignment{
		ServiceTicketID: ticketID,
		MechanicID:      mechanicID,
		DateAssigned:    dateAssigned,
	}

	err := ls.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireTicket(tx, ticketID); err != nil {
			return err
		}
		if err := requireMechanic(tx, mechanicID); err != nil {
			return err
		}

		if err := tx.Create(&assignment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateAssignment
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// UnassignMechanic deletes the (ticket, mechanic) row outright.
func (ls *LedgerService) UnassignMechanic(ticketID, mechanicID uint) error {
	result := ls.DB.
		Where("service_ticket_id = ? AND mechanic_id = ?", ticketID, mechanicID).
		Delete(&models.ServiceAssignment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

func (ls *LedgerService) ListAssignments() ([]models.ServiceAssignment, error) {
	var assignments []models.ServiceAssignment
	if err := ls.DB.Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListMechanicsFor returns the mechanics currently assigned to a ticket.
// Order carries no meaning; callers must not rely on it.
func (ls *LedgerService) ListMechanicsFor(ticketID uint) ([]models.Mechanic, error) {
	var mechanics []models.Mechanic
	err := ls.DB.
		Joins("JOIN service_assignments ON service_assignments.mechanic_id = mechanics.id").
		Where("service_assignments.service_ticket_id = ?", ticketID).
		Find(&mechanics).Error
	if err != nil {
		return nil, err
	}
	return mechanics, nil
}

// AddPart records quantity units of a part against a ticket. If the
// (ticket, inventory) pair already exists the quantity is incremented in
// place; the ON CONFLICT clause makes insert and increment one atomic
// statement against the unique index.
func (ls *LedgerService) AddPart(ticketID, inventoryID uint, quantity int) (*models.InventoryAssignment, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var assignment models.InventoryAssignment
	err := ls.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireTicket(tx, ticketID); err != nil {
			return err
		}
		if err := requireInventory(tx, inventoryID); err != nil {
			return err
		}

		row := models.InventoryAssignment{
			ServiceTicketID: ticketID,
			InventoryID:     inventoryID,
			Quantity:        quantity,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "service_ticket_id"}, {Name: "inventory_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("quantity + ?", quantity),
			}),
		}).Create(&row).Error; err != nil {
			return err
		}

		return tx.
			Where("service_ticket_id = ? AND inventory_id = ?", ticketID, inventoryID).
			First(&assignment).Error
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// CreatePartAssignment inserts a new (ticket, inventory) row and fails on
// an existing pair. This is the strict variant used by the assignment
// endpoint; AddPart is the aggregating one.
func (ls *LedgerService) CreatePartAssignment(ticketID, inventoryID uint, quantity int) (*models.InventoryAssignment, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	assignment := models.InventoryAssignment{
		ServiceTicketID: ticketID,
		InventoryID:     inventoryID,
		Quantity:        quantity,
	}
	err := ls.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireTicket(tx, ticketID); err != nil {
			return err
		}
		if err := requireInventory(tx, inventoryID); err != nil {
			return err
		}

		if err := tx.Create(&assignment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateAssignment
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// UpdatePartQuantity replaces the quantity of an existing pair.
func (ls *LedgerService) UpdatePartQuantity(ticketID, inventoryID uint, quantity int) (*models.InventoryAssignment, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var assignment models.InventoryAssignment
	err := ls.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("service_ticket_id = ? AND inventory_id = ?", ticketID, inventoryID).
			First(&assignment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssignmentNotFound
			}
			return err
		}
		assignment.Quantity = quantity
		return tx.Save(&assignment).Error
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// RemovePart deletes the (ticket, inventory) row entirely, regardless of
// its quantity.
func (ls *LedgerService) RemovePart(ticketID, inventoryID uint) error {
	result := ls.DB.
		Where("service_ticket_id = ? AND inventory_id = ?", ticketID, inventoryID).
		Delete(&models.InventoryAssignment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

func (ls *LedgerService) ListPartAssignments() ([]models.InventoryAssignment, error) {
	var assignments []models.InventoryAssignment
	if err := ls.DB.Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// PartRequest is one add_inventory entry of a bulk edit.
type PartRequest struct {
	InventoryID uint `json:"inventory_id" binding:"required"`
	Quantity    int  `json:"quantity"`
}

// TicketEdit is the bulk-edit payload applied to a ticket as one unit.
type TicketEdit struct {
	AddMechanics    []uint        `json:"add_mechanics"`
	RemoveMechanics []uint        `json:"remove_mechanics"`
	AddInventory    []PartRequest `json:"add_inventory"`
	RemoveInventory []uint        `json:"remove_inventory"`
	Status          *string       `json:"status"`
}

// EditTicket applies a bulk edit atomically. Every mechanic and inventory
// id across all four lists is validated before any row is touched; a
// single missing reference aborts the whole edit and the transaction
// rollback leaves the ticket exactly as it was.
func (ls *LedgerService) EditTicket(ticketID uint, edit TicketEdit) (*models.ServiceTicket, error) {
	var newStatus models.TicketStatus
	if edit.Status != nil {
		parsed, err := models.ParseTicketStatus(*edit.Status)
		if err != nil {
			return nil, err
		}
		newStatus = parsed
	}

	for _, part := range edit.AddInventory {
		if part.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
	}

	var ticket models.ServiceTicket
	err := ls.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ticket, ticketID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return err
		}

		// Validate every reference before the first mutation.
		mechanicIDs := append(append([]uint{}, edit.AddMechanics...), edit.RemoveMechanics...)
		if err := requireAllMechanics(tx, mechanicIDs); err != nil {
			return err
		}
		inventoryIDs := append([]uint{}, edit.RemoveInventory...)
		for _, part := range edit.AddInventory {
			inventoryIDs = append(inventoryIDs, part.InventoryID)
		}
		if err := requireAllInventory(tx, inventoryIDs); err != nil {
			return err
		}

		for _, mechanicID := range edit.AddMechanics {
			assignment := models.ServiceAssignment{
				ServiceTicketID: ticketID,
				MechanicID:      mechanicID,
			}
			// Re-adding an assigned mechanic inside a bulk edit is a no-op.
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&assignment).Error; err != nil {
				return err
			}
		}

		if len(edit.RemoveMechanics) > 0 {
			if err := tx.
				Where("service_ticket_id = ? AND mechanic_id IN ?", ticketID, edit.RemoveMechanics).
				Delete(&models.ServiceAssignment{}).Error; err != nil {
				return err
			}
		}

		for _, part := range edit.AddInventory {
			row := models.InventoryAssignment{
				ServiceTicketID: ticketID,
				InventoryID:     part.InventoryID,
				Quantity:        part.Quantity,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "service_ticket_id"}, {Name: "inventory_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"quantity": gorm.Expr("quantity + ?", part.Quantity),
				}),
			}).Create(&row).Error; err != nil {
				return err
			}
		}

		if len(edit.RemoveInventory) > 0 {
			if err := tx.
				Where("service_ticket_id = ? AND inventory_id IN ?", ticketID, edit.RemoveInventory).
				Delete(&models.InventoryAssignment{}).Error; err != nil {
				return err
			}
		}

		if edit.Status != nil {
			ticket.Status = newStatus
			if err := tx.Save(&ticket).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := ls.DB.
		Preload("ServiceAssignments").
		Preload("InventoryAssignments").
		First(&ticket, ticketID).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// CreateTicket inserts a ticket together with its initial mechanic and
// part links as one transaction.
func (ls *LedgerService) CreateTicket(ticket *models.ServiceTicket, mechanicIDs []uint, parts []PartRequest) error {
	for _, part := range parts {
		if part.Quantity < 1 {
			return ErrInvalidQuantity
		}
	}

	return ls.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireCustomer(tx, ticket.CustomerID); err != nil {
			return err
		}
		if err := requireAllMechanics(tx, mechanicIDs); err != nil {
			return err
		}
		partIDs := make([]uint, 0, len(parts))
		for _, part := range parts {
			partIDs = append(partIDs, part.InventoryID)
		}
		if err := requireAllInventory(tx, partIDs); err != nil {
			return err
		}

		if err := tx.Create(ticket).Error; err != nil {
			return err
		}
		for _, mechanicID := range mechanicIDs {
			assignment := models.ServiceAssignment{
				ServiceTicketID: ticket.ID,
				MechanicID:      mechanicID,
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&assignment).Error; err != nil {
				return err
			}
		}
		for _, part := range parts {
			row := models.InventoryAssignment{
				ServiceTicketID: ticket.ID,
				InventoryID:     part.InventoryID,
				Quantity:        part.Quantity,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteTicket removes a ticket and every assignment row referencing it.
// The mechanics and inventory items themselves are untouched.
func (ls *LedgerService) DeleteTicket(ticketID uint) error {
	return ls.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireTicket(tx, ticketID); err != nil {
			return err
		}
		if err := tx.Where("service_ticket_id = ?", ticketID).
			Delete(&models.ServiceAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("service_ticket_id = ?", ticketID).
			Delete(&models.InventoryAssignment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ServiceTicket{}, ticketID).Error
	})
}

// DeleteCustomer removes a customer, their tickets, and those tickets'
// assignment rows.
func (ls *LedgerService) DeleteCustomer(customerID uint) error {
	return ls.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireCustomer(tx, customerID); err != nil {
			return err
		}

		var ticketIDs []uint
		if err := tx.Model(&models.ServiceTicket{}).
			Where("customer_id = ?", customerID).
			Pluck("id", &ticketIDs).Error; err != nil {
			return err
		}

		if len(ticketIDs) > 0 {
			if err := tx.Where("service_ticket_id IN ?", ticketIDs).
				Delete(&models.ServiceAssignment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("service_ticket_id IN ?", ticketIDs).
				Delete(&models.InventoryAssignment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("customer_id = ?", customerID).
				Delete(&models.ServiceTicket{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Customer{}, customerID).Error
	})
}

// DeleteMechanic removes a mechanic and its assignment rows. Tickets the
// mechanic worked on stay.
func (ls *LedgerService) DeleteMechanic(mechanicID uint) error {
	return ls.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireMechanic(tx, mechanicID); err != nil {
			return err
		}
		if err := tx.Where("mechanic_id = ?", mechanicID).
			Delete(&models.ServiceAssignment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Mechanic{}, mechanicID).Error
	})
}

func requireCustomer(tx *gorm.DB, id uint) error {
	return requireExists(tx, &models.Customer{}, []uint{id}, ErrCustomerNotFound)
}

func requireMechanic(tx *gorm.DB, id uint) error {
	return requireExists(tx, &models.Mechanic{}, []uint{id}, ErrMechanicNotFound)
}

func requireTicket(tx *gorm.DB, id uint) error {
	return requireExists(tx, &models.ServiceTicket{}, []uint{id}, ErrTicketNotFound)
}

func requireInventory(tx *gorm.DB, id uint) error {
	return requireExists(tx, &models.Inventory{}, []uint{id}, ErrInventoryNotFound)
}

func requireAllMechanics(tx *gorm.DB, ids []uint) error {
	return requireExists(tx, &models.Mechanic{}, ids, ErrMechanicNotFound)
}

func requireAllInventory(tx *gorm.DB, ids []uint) error {
	return requireExists(tx, &models.Inventory{}, ids, ErrInventoryNotFound)
}

// requireExists checks that every distinct id has a row. ids may contain
// duplicates, so the count compares against the distinct set.
func requireExists(tx *gorm.DB, model interface{}, ids []uint, notFound error) error {
	if len(ids) == 0 {
		return nil
	}
	distinct := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		distinct[id] = struct{}{}
	}

	var count int64
	if err := tx.Model(model).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(distinct)) {
		return notFound
	}
	return nil
}
