package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinica-backend/internal/models"
	"clinica-backend/internal/utils"
)

// DoctorHandler handles doctor and specialty catalog requests.
type DoctorHandler struct {
	DB *gorm.DB
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(db *gorm.DB) *DoctorHandler {
	return &DoctorHandler{DB: db}
}

// GetDoctors handles listing every doctor profile.
func (h *DoctorHandler) GetDoctors(c *gin.Context) {
	var doctors []models.Doctor
	if err := h.DB.Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Error al obtener médicos", err)
		return
	}
	utils.Success(c, "Médicos obtenidos con éxito", doctors)
}

// GetDoctorSpecialties handles listing the distinct specialties that
// doctors actually practice.
func (h *DoctorHandler) GetDoctorSpecialties(c *gin.Context) {
	var specialties []string
	if err := h.DB.Model(&models.Doctor{}).Distinct().Pluck("specialty", &specialties).Error; err != nil {
		utils.InternalServerError(c, "Error al obtener especialidades", err)
		return
	}
	utils.Success(c, "Especialidades obtenidas con éxito", specialties)
}

// GetSpecialtyCatalog handles listing the specialty catalog entries.
func (h *DoctorHandler) GetSpecialtyCatalog(c *gin.Context) {
	var specialties []models.Specialty
	if err := h.DB.Find(&specialties).Error; err != nil {
		utils.InternalServerError(c, "Error al obtener especialidades", err)
		return
	}
	utils.Success(c, "Especialidades obtenidas con éxito", specialties)
}
