package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ardiansyahdev/mechanic-shop/services"
	"github.com/ardiansyahdev/mechanic-shop/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type InventoryAssignmentController struct {
	Ledger *services.LedgerService
}

func NewInventoryAssignmentController(db *gorm.DB) *InventoryAssignmentController {
	return &InventoryAssignmentController{Ledger: services.NewLedgerService(db)}
}

// CreateAssignment links a part to a ticket, failing on an existing pair.
// The aggregating variant lives on the ticket's add-part endpoint.
func (ic *InventoryAssignmentController) CreateAssignment(c *gin.Context) {
	type request struct {
		ServiceTicketID uint `json:"service_ticket_id" binding:"required"`
		InventoryID     uint `json:"inventory_id" binding:"required"`
		Quantity        *int `json:"quantity"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// An omitted quantity means one unit; an explicit zero or negative is
	// rejected by the ledger.
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	assignment, err := ic.Ledger.CreatePartAssignment(req.ServiceTicketID, req.InventoryID, quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, assignment)
}

func (ic *InventoryAssignmentController) GetAllAssignments(c *gin.Context) {
	assignments, err := ic.Ledger.ListPartAssignments()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, assignments)
}

// UpdateAssignment replaces the quantity of an existing pair.
func (ic *InventoryAssignmentController) UpdateAssignment(c *gin.Context) {
	type request struct {
		ServiceTicketID uint `json:"service_ticket_id" binding:"required"`
		InventoryID     uint `json:"inventory_id" binding:"required"`
		Quantity        int  `json:"quantity" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	assignment, err := ic.Ledger.UpdatePartQuantity(req.ServiceTicketID, req.InventoryID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, assignment)
}

// DeleteAssignment removes the pair outright, whatever its quantity.
func (ic *InventoryAssignmentController) DeleteAssignment(c *gin.Context) {
	ticketID, err := strconv.Atoi(c.Query("service_ticket_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid service_ticket_id"))
		return
	}
	inventoryID, err := strconv.Atoi(c.Query("inventory_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid inventory_id"))
		return
	}

	if err := ic.Ledger.RemovePart(uint(ticketID), uint(inventoryID)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{"message": "Inventory assignment deleted successfully"})
}
