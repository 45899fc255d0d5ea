package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinica-backend/internal/models"
	"clinica-backend/internal/utils"
)

// ProductHandler handles retail product requests and the price-change
// log that edits feed.
type ProductHandler struct {
	DB *gorm.DB
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{DB: db}
}

// CreateProduct handles registering a product.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var product models.Product
	if !utils.BindAndValidate(c, &product) {
		return
	}

	if err := h.DB.Create(&product).Error; err != nil {
		utils.InternalServerError(c, "Error al registrar producto", err)
		return
	}
	utils.Created(c, "Producto registrado", product)
}

// UpdateProductRequest represents the editable product fields.
type UpdateProductRequest struct {
	SupplierName string   `json:"nombreProveedor"`
	BoxPrice     *float64 `json:"precioCaja"`
	PiecePrice   *float64 `json:"precioPieza"`
	Image        string   `json:"imagen"`
}

// UpdateProduct handles editing a product; when either price changes, a
// PriceChange entry is appended in the same transaction.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req UpdateProductRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var product models.Product
	if err := h.DB.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Producto no encontrado")
		} else {
			utils.InternalServerError(c, "Error al obtener el producto", err)
		}
		return
	}

	change := models.PriceChange{
		ProductName:       product.Name,
		PreviousBoxPrice:  product.BoxPrice,
		NewBoxPrice:       product.BoxPrice,
		PreviousUnitPrice: product.PiecePrice,
		NewUnitPrice:      product.PiecePrice,
		RecordedAt:        time.Now(),
	}

	if req.SupplierName != "" {
		product.SupplierName = req.SupplierName
	}
	if req.BoxPrice != nil {
		product.BoxPrice = *req.BoxPrice
		change.NewBoxPrice = *req.BoxPrice
	}
	if req.PiecePrice != nil {
		product.PiecePrice = *req.PiecePrice
		change.NewUnitPrice = *req.PiecePrice
	}
	if req.Image != "" {
		product.Image = req.Image
	}

	priceChanged := change.NewBoxPrice != change.PreviousBoxPrice ||
		change.NewUnitPrice != change.PreviousUnitPrice

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&product).Error; err != nil {
			return err
		}
		if priceChanged {
			return tx.Create(&change).Error
		}
		return nil
	})
	if err != nil {
		utils.InternalServerError(c, "Error al editar producto", err)
		return
	}
	utils.Success(c, "Producto actualizado", product)
}

// DeleteProduct handles removing a product from the catalog.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.DB.Delete(&models.Product{}, "id = ?", c.Param("id")).Error; err != nil {
		utils.InternalServerError(c, "Error al eliminar producto", err)
		return
	}
	utils.Success(c, "Producto eliminado", nil)
}

// GetProducts handles listing every product.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var products []models.Product
	if err := h.DB.Find(&products).Error; err != nil {
		utils.InternalServerError(c, "Error al obtener productos", err)
		return
	}
	utils.Success(c, "Lista de productos", products)
}

// GetProductByID handles fetching a single product.
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	var product models.Product
	if err := h.DB.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Producto no encontrado")
		} else {
			utils.InternalServerError(c, "Error al obtener el producto", err)
		}
		return
	}
	utils.Success(c, "Producto obtenido con éxito", product)
}

// GetPriceHistory handles listing the recorded price changes.
func (h *ProductHandler) GetPriceHistory(c *gin.Context) {
	var changes []models.PriceChange
	if err := h.DB.Order("recorded_at desc").Find(&changes).Error; err != nil {
		utils.InternalServerError(c, "Error al obtener el historial de precios", err)
		return
	}
	utils.Success(c, "Historial de precios obtenido con éxito", changes)
}

// CreatePriceHistory handles appending a manual price-change entry.
func (h *ProductHandler) CreatePriceHistory(c *gin.Context) {
	var change models.PriceChange
	if !utils.BindAndValidate(c, &change) {
		return
	}
	if change.RecordedAt.IsZero() {
		change.RecordedAt = time.Now()
	}

	if err := h.DB.Create(&change).Error; err != nil {
		utils.InternalServerError(c, "Error al agregar historial", err)
		return
	}
	utils.Created(c, "Historial agregado", change)
}
