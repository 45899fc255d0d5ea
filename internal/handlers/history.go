package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinica-backend/internal/models"
	"clinica-backend/internal/utils"
)

// HistoryHandler handles appointment audit-history requests.
type HistoryHandler struct {
	DB *gorm.DB
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(db *gorm.DB) *HistoryHandler {
	return &HistoryHandler{DB: db}
}

// GetHistory handles fetching the full audit history.
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	var records []models.HistoryRecord
	if err := h.DB.Order("date asc, hour asc").Find(&records).Error; err != nil {
		utils.InternalServerError(c, "Error al obtener el historial", err)
		return
	}
	utils.Success(c, "Historial obtenido con éxito", records)
}

// GetHistoryByPatient handles fetching a patient's audit history.
func (h *HistoryHandler) GetHistoryByPatient(c *gin.Context) {
	var records []models.HistoryRecord
	err := h.DB.Where("patient_id = ?", c.Param("id")).
		Order("date asc, hour asc").
		Find(&records).Error
	if err != nil {
		utils.InternalServerError(c, "Error al obtener el historial del paciente", err)
		return
	}
	utils.Success(c, "Historial del paciente obtenido con éxito", records)
}
