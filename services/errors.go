package services

import "errors"

var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrMechanicNotFound  = errors.New("mechanic not found")
	ErrTicketNotFound    = errors.New("service ticket not found")
	ErrInventoryNotFound = errors.New("inventory item not found")

	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrDuplicateAssignment = errors.New("assignment already exists")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
)
