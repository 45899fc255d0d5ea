package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinica-backend/internal/models"
	"clinica-backend/internal/utils"
)

// SupplierHandler handles supplier catalog requests.
type SupplierHandler struct {
	DB *gorm.DB
}

// NewSupplierHandler creates a new SupplierHandler.
func NewSupplierHandler(db *gorm.DB) *SupplierHandler {
	return &SupplierHandler{DB: db}
}

// SupplierRequest represents the request body for creating or updating
// a supplier.
type SupplierRequest struct {
	Folio   string         `json:"folioProveedor"`
	Name    string         `json:"nombre"`
	Phone   string         `json:"telefono"`
	Email   string         `json:"correo"`
	Address models.Address `json:"direccion"`
}

func (r SupplierRequest) complete() bool {
	return r.Folio != "" && r.Name != "" && r.Address.Street != ""
}

// CreateSupplier handles registering a supplier with a unique folio.
func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req SupplierRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if !req.complete() {
		utils.BadRequest(c, "Faltan datos obligatorios")
		return
	}

	var existing models.Supplier
	if err := h.DB.Where("folio = ?", req.Folio).First(&existing).Error; err == nil {
		utils.BadRequest(c, "El folio del proveedor ya existe")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InternalServerError(c, "Error al agregar proveedor", err)
		return
	}

	supplier := models.Supplier{
		Folio:   req.Folio,
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}
	if err := h.DB.Create(&supplier).Error; err != nil {
		utils.InternalServerError(c, "Error al agregar proveedor", err)
		return
	}
	utils.Created(c, "Proveedor agregado", supplier)
}

// GetSuppliers handles listing every supplier.
func (h *SupplierHandler) GetSuppliers(c *gin.Context) {
	var suppliers []models.Supplier
	if err := h.DB.Find(&suppliers).Error; err != nil {
		utils.InternalServerError(c, "Error al obtener proveedores", err)
		return
	}
	utils.Success(c, "Proveedores obtenidos con éxito", suppliers)
}

// GetSupplierByID handles fetching a single supplier.
func (h *SupplierHandler) GetSupplierByID(c *gin.Context) {
	var supplier models.Supplier
	if err := h.DB.First(&supplier, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Proveedor no encontrado")
		} else {
			utils.InternalServerError(c, "Error en el servidor", err)
		}
		return
	}
	utils.Success(c, "Proveedor obtenido con éxito", supplier)
}

// UpdateSupplier handles rewriting a supplier's fields.
func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	var req SupplierRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if !req.complete() {
		utils.BadRequest(c, "Faltan datos obligatorios para actualizar")
		return
	}

	var supplier models.Supplier
	if err := h.DB.First(&supplier, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Proveedor no encontrado para actualizar")
		} else {
			utils.InternalServerError(c, "Error en el servidor", err)
		}
		return
	}

	supplier.Folio = req.Folio
	supplier.Name = req.Name
	supplier.Phone = req.Phone
	supplier.Email = req.Email
	supplier.Address = req.Address

	if err := h.DB.Save(&supplier).Error; err != nil {
		utils.InternalServerError(c, "Error al actualizar proveedor", err)
		return
	}
	utils.Success(c, "Proveedor actualizado", supplier)
}

// DeleteSupplier handles removing a supplier.
func (h *SupplierHandler) DeleteSupplier(c *gin.Context) {
	res := h.DB.Delete(&models.Supplier{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		utils.InternalServerError(c, "Error en el servidor", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.NotFound(c, "Proveedor no encontrado")
		return
	}
	utils.Success(c, "Proveedor eliminado", nil)
}
