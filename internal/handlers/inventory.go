package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinica-backend/internal/models"
	"clinica-backend/internal/utils"
)

// InventoryHandler handles inventory lot requests.
type InventoryHandler struct {
	DB *gorm.DB
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(db *gorm.DB) *InventoryHandler {
	return &InventoryHandler{DB: db}
}

// GetInventory handles listing every inventory lot.
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	var lots []models.InventoryLot
	if err := h.DB.Find(&lots).Error; err != nil {
		utils.InternalServerError(c, "Error al obtener inventario", err)
		return
	}
	utils.Success(c, "Inventario obtenido con éxito", lots)
}

// CreateInventory handles registering a received lot.
func (h *InventoryHandler) CreateInventory(c *gin.Context) {
	var lot models.InventoryLot
	if !utils.BindAndValidate(c, &lot) {
		return
	}
	if lot.ReceivedAt.IsZero() {
		lot.ReceivedAt = time.Now()
	}

	if err := h.DB.Create(&lot).Error; err != nil {
		utils.InternalServerError(c, "Error al agregar inventario", err)
		return
	}
	utils.Created(c, "Inventario agregado", lot)
}
