package controllers

import (
	"errors"
	"net/http"

	"github.com/ardiansyahdev/mechanic-shop/services"
	"github.com/ardiansyahdev/mechanic-shop/utils"
	"github.com/gin-gonic/gin"
)

var (
	ErrNotYourAccount = errors.New("you may only modify your own account")
	ErrEmailExists    = errors.New("email already exists")
)

// respondServiceError maps ledger errors onto status codes. Anything not
// in the taxonomy is a storage failure and surfaces as a generic 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCustomerNotFound),
		errors.Is(err, services.ErrMechanicNotFound),
		errors.Is(err, services.ErrTicketNotFound),
		errors.Is(err, services.ErrInventoryNotFound),
		errors.Is(err, services.ErrAssignmentNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrDuplicateAssignment),
		errors.Is(err, services.ErrInvalidQuantity):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.ErrorLogger.Printf("storage error: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
	}
}
