package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ardiansyahdev/mechanic-shop/models"
	"github.com/ardiansyahdev/mechanic-shop/services"
	"github.com/ardiansyahdev/mechanic-shop/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MechanicController struct {
	DB      *gorm.DB
	Ledger  *services.LedgerService
	Ranking *services.RankingService
}

func NewMechanicController(db *gorm.DB) *MechanicController {
	return &MechanicController{
		DB:      db,
		Ledger:  services.NewLedgerService(db),
		Ranking: services.NewRankingService(db),
	}
}

func (mc *MechanicController) Register(c *gin.Context) {
	type request struct {
		Name     string  `json:"name" binding:"required"`
		Email    string  `json:"email" binding:"required,email"`
		Phone    string  `json:"phone" binding:"required"`
		Address  string  `json:"address" binding:"required"`
		Salary   float64 `json:"salary" binding:"required"`
		Password string  `json:"password" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	mechanic := models.Mechanic{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Salary:  req.Salary,
	}
	if err := mechanic.SetPassword(req.Password); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := mc.DB.Create(&mechanic).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(c, http.StatusConflict, ErrEmailExists)
			return
		}
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("New mechanic registered: %s", mechanic.Email)
	utils.RespondJSON(c, http.StatusCreated, mechanic)
}

// Login -> issue a 3-hour mechanic token carrying the role claim.
func (mc *MechanicController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var mechanic models.Mechanic
	if err := mc.DB.Where("email = ?", input.Email).First(&mechanic).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}
	if !mechanic.CheckPassword(input.Password) {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateMechanicToken(mechanic.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, gin.H{"auth_token": token})
}

func (mc *MechanicController) GetAllMechanics(c *gin.Context) {
	var mechanics []models.Mechanic
	if err := mc.DB.Find(&mechanics).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{"mechanics": mechanics})
}

func (mc *MechanicController) GetMechanicByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("mechanic_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid mechanic id"))
		return
	}

	var mechanic models.Mechanic
	if err := mc.DB.First(&mechanic, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, services.ErrMechanicNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, mechanic)
}

// UpdateMechanic mutates the caller's own record; ownership before
// existence, same as the customer route.
func (mc *MechanicController) UpdateMechanic(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("mechanic_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid mechanic id"))
		return
	}
	if !requireSelf(c, uint(id), utils.RoleMechanic) {
		return
	}

	type request struct {
		Name    *string  `json:"name"`
		Email   *string  `json:"email"`
		Phone   *string  `json:"phone"`
		Address *string  `json:"address"`
		Salary  *float64 `json:"salary"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var mechanic models.Mechanic
	if err := mc.DB.First(&mechanic, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, services.ErrMechanicNotFound)
		return
	}

	if req.Name != nil {
		mechanic.Name = *req.Name
	}
	if req.Email != nil {
		mechanic.Email = *req.Email
	}
	if req.Phone != nil {
		mechanic.Phone = *req.Phone
	}
	if req.Address != nil {
		mechanic.Address = *req.Address
	}
	if req.Salary != nil {
		mechanic.Salary = *req.Salary
	}

	if err := mc.DB.Save(&mechanic).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(c, http.StatusConflict, ErrEmailExists)
			return
		}
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, mechanic)
}

// DeleteMechanic removes the caller's account and its assignment rows.
func (mc *MechanicController) DeleteMechanic(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("mechanic_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid mechanic id"))
		return
	}
	if !requireSelf(c, uint(id), utils.RoleMechanic) {
		return
	}

	if err := mc.Ledger.DeleteMechanic(uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Mechanic %d deleted", id)
	c.Status(http.StatusNoContent)
}

// GetRankings lists mechanics by distinct assigned-ticket count.
func (mc *MechanicController) GetRankings(c *gin.Context) {
	rankings, err := mc.Ranking.RankMechanics()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, rankings)
}
