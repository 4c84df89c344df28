package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ardiansyahdev/mechanic-shop/services"
	"github.com/ardiansyahdev/mechanic-shop/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ServiceAssignmentController struct {
	Ledger *services.LedgerService
}

func NewServiceAssignmentController(db *gorm.DB) *ServiceAssignmentController {
	return &ServiceAssignmentController{Ledger: services.NewLedgerService(db)}
}

// CreateAssignment assigns a mechanic to a ticket. An existing pair is a
// 400; the uniqueness comes from the store constraint, so two concurrent
// identical requests cannot both succeed.
func (sc *ServiceAssignmentController) CreateAssignment(c *gin.Context) {
	type request struct {
		ServiceTicketID uint    `json:"service_ticket_id" binding:"required"`
		MechanicID      uint    `json:"mechanic_id" binding:"required"`
		DateAssigned    *string `json:"date_assigned"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var dateAssigned *time.Time
	if req.DateAssigned != nil {
		parsed, err := time.Parse(dateLayout, *req.DateAssigned)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("date_assigned must use the YYYY-MM-DD format"))
			return
		}
		dateAssigned = &parsed
	}

	assignment, err := sc.Ledger.AssignMechanic(req.ServiceTicketID, req.MechanicID, dateAssigned)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Mechanic %d assigned to ticket %d", req.MechanicID, req.ServiceTicketID)
	utils.RespondJSON(c, http.StatusCreated, assignment)
}

func (sc *ServiceAssignmentController) GetAllAssignments(c *gin.Context) {
	assignments, err := sc.Ledger.ListAssignments()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, assignments)
}

// DeleteAssignment removes a (ticket, mechanic) pair given as query params.
func (sc *ServiceAssignmentController) DeleteAssignment(c *gin.Context) {
	ticketID, err := strconv.Atoi(c.Query("service_ticket_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid service_ticket_id"))
		return
	}
	mechanicID, err := strconv.Atoi(c.Query("mechanic_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid mechanic_id"))
		return
	}

	if err := sc.Ledger.UnassignMechanic(uint(ticketID), uint(mechanicID)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{"message": "Assignment deleted successfully"})
}
