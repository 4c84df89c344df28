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

type InventoryController struct {
	DB *gorm.DB
}

func NewInventoryController(db *gorm.DB) *InventoryController {
	return &InventoryController{DB: db}
}

func (ic *InventoryController) GetAllItems(c *gin.Context) {
	var items []models.Inventory
	if err := ic.DB.Find(&items).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, items)
}

func (ic *InventoryController) GetItemByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid inventory id"))
		return
	}

	var item models.Inventory
	if err := ic.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, services.ErrInventoryNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, item)
}

func (ic *InventoryController) CreateItem(c *gin.Context) {
	type request struct {
		PartName    string  `json:"part_name" binding:"required"`
		Description string  `json:"description"`
		Price       float64 `json:"price" binding:"required"`
		Quantity    int     `json:"quantity"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item := models.Inventory{
		PartName:    req.PartName,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	}
	if err := ic.DB.Create(&item).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Inventory item created: %s", item.PartName)
	utils.RespondJSON(c, http.StatusCreated, item)
}

func (ic *InventoryController) UpdateItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid inventory id"))
		return
	}

	type request struct {
		PartName    *string  `json:"part_name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Quantity    *int     `json:"quantity"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.Inventory
	if err := ic.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, services.ErrInventoryNotFound)
		return
	}

	if req.PartName != nil {
		item.PartName = *req.PartName
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}

	if err := ic.DB.Save(&item).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, item)
}

func (ic *InventoryController) DeleteItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid inventory id"))
		return
	}

	var item models.Inventory
	if err := ic.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, services.ErrInventoryNotFound)
		return
	}

	if err := ic.DB.Delete(&item).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
