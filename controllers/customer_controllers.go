package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ardiansyahdev/mechanic-shop/middlewares"
	"github.com/ardiansyahdev/mechanic-shop/models"
	"github.com/ardiansyahdev/mechanic-shop/services"
	"github.com/ardiansyahdev/mechanic-shop/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CustomerController struct {
	DB     *gorm.DB
	Ledger *services.LedgerService
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db, Ledger: services.NewLedgerService(db)}
}

// Register a new customer account.
func (cc *CustomerController) Register(c *gin.Context) {
	type request struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Phone    string `json:"phone" binding:"required"`
		Address  string `json:"address" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customer := models.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := customer.SetPassword(req.Password); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := cc.DB.Create(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(c, http.StatusConflict, ErrEmailExists)
			return
		}
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("New customer registered: %s", customer.Email)
	utils.RespondJSON(c, http.StatusCreated, customer)
}

// Login -> issue a 1-hour customer token.
func (cc *CustomerController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var customer models.Customer
	if err := cc.DB.Where("email = ?", input.Email).First(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}
	if !customer.CheckPassword(input.Password) {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateCustomerToken(customer.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, gin.H{"auth_token": token})
}

func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := cc.DB.Find(&customers).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{"customers": customers})
}

func (cc *CustomerController) GetCustomerByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("customer_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid customer id"))
		return
	}

	var customer models.Customer
	if err := cc.DB.First(&customer, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, services.ErrCustomerNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, customer)
}

// MyTickets lists the tickets owned by the authenticated customer.
func (cc *CustomerController) MyTickets(c *gin.Context) {
	subjectID, ok := middlewares.SubjectID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("token is missing"))
		return
	}

	var tickets []models.ServiceTicket
	if err := cc.DB.
		Preload("ServiceAssignments").
		Preload("InventoryAssignments").
		Where("customer_id = ?", subjectID).
		Find(&tickets).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, tickets)
}

// UpdateCustomer mutates the caller's own record. Ownership is checked
// before existence: a foreign id gets 403 whether or not it exists.
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("customer_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid customer id"))
		return
	}
	if !requireSelf(c, uint(id), utils.RoleCustomer) {
		return
	}

	type request struct {
		Name    *string `json:"name"`
		Email   *string `json:"email"`
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var customer models.Customer
	if err := cc.DB.First(&customer, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, services.ErrCustomerNotFound)
		return
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}

	if err := cc.DB.Save(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(c, http.StatusConflict, ErrEmailExists)
			return
		}
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, customer)
}

// DeleteCustomer removes the caller's account, their tickets, and the
// tickets' assignment rows.
func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("customer_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid customer id"))
		return
	}
	if !requireSelf(c, uint(id), utils.RoleCustomer) {
		return
	}

	if err := cc.Ledger.DeleteCustomer(uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Customer %d deleted", id)
	utils.RespondJSON(c, http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

// requireSelf enforces the self-ownership rule shared by the customer and
// mechanic profile routes. The role claim must match the route's principal
// type: customer and mechanic ids live in separate tables, so a numeric
// match alone would let a mechanic token reach a colliding customer id.
func requireSelf(c *gin.Context, resourceID uint, role string) bool {
	subjectID, ok := middlewares.SubjectID(c)
	if !ok || middlewares.Role(c) != role || subjectID != resourceID {
		utils.RespondError(c, http.StatusForbidden, ErrNotYourAccount)
		c.Abort()
		return false
	}
	return true
}
