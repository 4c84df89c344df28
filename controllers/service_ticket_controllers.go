package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ardiansyahdev/mechanic-shop/models"
	"github.com/ardiansyahdev/mechanic-shop/services"
	"github.com/ardiansyahdev/mechanic-shop/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type ServiceTicketController struct {
	DB     *gorm.DB
	Ledger *services.LedgerService
}

func NewServiceTicketController(db *gorm.DB) *ServiceTicketController {
	return &ServiceTicketController{DB: db, Ledger: services.NewLedgerService(db)}
}

// CreateTicket creates a ticket and, in the same transaction, its initial
// mechanic assignments and part consumption rows.
func (tc *ServiceTicketController) CreateTicket(c *gin.Context) {
	type request struct {
		Title          string                 `json:"title" binding:"required"`
		VIN            string                 `json:"vin" binding:"required"`
		Description    string                 `json:"description" binding:"required"`
		Status         string                 `json:"status"`
		Cost           float64                `json:"cost"`
		ServiceDate    string                 `json:"service_date"`
		DateCreated    string                 `json:"date_created"`
		CustomerID     uint                   `json:"customer_id" binding:"required"`
		MechanicIDs    []uint                 `json:"mechanic_ids"`
		InventoryItems []services.PartRequest `json:"inventory_items"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	status := models.StatusPending
	if req.Status != "" {
		parsed, err := models.ParseTicketStatus(req.Status)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		status = parsed
	}

	serviceDate, err := parseDateOrNow(req.ServiceDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	dateCreated, err := parseDateOrNow(req.DateCreated)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ticket := models.ServiceTicket{
		Title:       req.Title,
		VIN:         req.VIN,
		Description: req.Description,
		Status:      status,
		Cost:        req.Cost,
		ServiceDate: serviceDate,
		DateCreated: dateCreated,
		CustomerID:  req.CustomerID,
	}

	if err := tc.Ledger.CreateTicket(&ticket, req.MechanicIDs, req.InventoryItems); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Service ticket %d created for customer %d", ticket.ID, ticket.CustomerID)
	utils.RespondJSON(c, http.StatusCreated, gin.H{"status": "success", "ticket": ticket})
}

func (tc *ServiceTicketController) GetAllTickets(c *gin.Context) {
	var tickets []models.ServiceTicket
	if err := tc.DB.
		Preload("ServiceAssignments").
		Preload("InventoryAssignments").
		Find(&tickets).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{"service_tickets": tickets})
}

func (tc *ServiceTicketController) GetTicketByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("ticket_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid ticket id"))
		return
	}

	var ticket models.ServiceTicket
	if err := tc.DB.
		Preload("ServiceAssignments").
		Preload("InventoryAssignments").
		First(&ticket, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, services.ErrTicketNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{"ticket": ticket})
}

// UpdateTicket applies the bulk edit: mechanic and inventory link changes
// plus an optional status change, all or nothing.
func (tc *ServiceTicketController) UpdateTicket(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("ticket_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid ticket id"))
		return
	}

	var edit services.TicketEdit
	if err := c.ShouldBindJSON(&edit); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if edit.Status != nil {
		if _, err := models.ParseTicketStatus(*edit.Status); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}

	ticket, err := tc.Ledger.EditTicket(uint(id), edit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, gin.H{
		"message": "Service ticket updated successfully",
		"ticket":  ticket,
	})
}

// AddPart is the aggregating endpoint: adding a part that is already on
// the ticket increments its quantity instead of failing.
func (tc *ServiceTicketController) AddPart(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("ticket_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid ticket id"))
		return
	}

	type request struct {
		InventoryID uint `json:"inventory_id" binding:"required"`
		Quantity    *int `json:"quantity"`
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

	assignment, err := tc.Ledger.AddPart(uint(id), req.InventoryID, quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, assignment)
}

// GetTicketMechanics lists the mechanics assigned to a ticket. The order
// of the result is not significant.
func (tc *ServiceTicketController) GetTicketMechanics(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("ticket_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid ticket id"))
		return
	}

	var ticket models.ServiceTicket
	if err := tc.DB.First(&ticket, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, services.ErrTicketNotFound)
		return
	}

	mechanics, err := tc.Ledger.ListMechanicsFor(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{"mechanics": mechanics})
}

// DeleteTicket cascades the ticket's assignment rows; the mechanics and
// inventory items referenced stay untouched.
func (tc *ServiceTicketController) DeleteTicket(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("ticket_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid ticket id"))
		return
	}

	if err := tc.Ledger.DeleteTicket(uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Service ticket %d deleted", id)
	c.Status(http.StatusNoContent)
}

func parseDateOrNow(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, errors.New("dates must use the YYYY-MM-DD format")
	}
	return t, nil
}
