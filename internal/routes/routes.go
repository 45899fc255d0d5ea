package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinica-backend/internal/handlers"
	"clinica-backend/internal/scheduler"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, sched *scheduler.Scheduler) {
	// Initialize handlers
	appointmentHandler := handlers.NewAppointmentHandler(sched)
	doctorHandler := handlers.NewDoctorHandler(db)
	historyHandler := handlers.NewHistoryHandler(db)
	productHandler := handlers.NewProductHandler(db)
	supplierHandler := handlers.NewSupplierHandler(db)
	inventoryHandler := handlers.NewInventoryHandler(db)

	api := router.Group("/api")
	{
		citas := api.Group("/citas")
		{
			citas.GET("/disponibilidad/:medicoId", appointmentHandler.GetAvailability)
			citas.GET("/usuario/:usuarioId", appointmentHandler.GetAppointmentsByPatient)
			citas.GET("/citasmedico/:medicoId", appointmentHandler.GetPendingByDoctor)
			citas.GET("/citasmedicoa/:medicoId", appointmentHandler.GetAcceptedByDoctor)
			citas.POST("/filtrar", appointmentHandler.FilterAppointments)
			citas.PATCH("/estado/:id", appointmentHandler.UpdateAppointmentStatus)
			citas.PATCH("/cancelar/:id", appointmentHandler.CancelAppointment)

			citas.GET("", appointmentHandler.GetAppointments)
			citas.POST("", appointmentHandler.CreateAppointment)
			citas.PUT("/:id", appointmentHandler.EditAppointment)
		}

		medicos := api.Group("/medicos")
		{
			medicos.GET("", doctorHandler.GetDoctors)
			medicos.GET("/especialidades", doctorHandler.GetDoctorSpecialties)
		}

		api.GET("/especialidades", doctorHandler.GetSpecialtyCatalog)

		historico := api.Group("/historico")
		{
			historico.GET("", historyHandler.GetHistory)
			historico.GET("/paciente/:id", historyHandler.GetHistoryByPatient)
		}

		productos := api.Group("/productos")
		{
			productos.GET("", productHandler.GetProducts)
			productos.GET("/:id", productHandler.GetProductByID)
			productos.POST("", productHandler.CreateProduct)
			productos.PUT("/:id", productHandler.UpdateProduct)
			productos.DELETE("/:id", productHandler.DeleteProduct)
		}

		historial := api.Group("/historial")
		{
			historial.GET("", productHandler.GetPriceHistory)
			historial.POST("", productHandler.CreatePriceHistory)
		}

		proveedores := api.Group("/proveedores")
		{
			proveedores.GET("", supplierHandler.GetSuppliers)
			proveedores.GET("/:id", supplierHandler.GetSupplierByID)
			proveedores.POST("", supplierHandler.CreateSupplier)
			proveedores.PUT("/:id", supplierHandler.UpdateSupplier)
			proveedores.DELETE("/:id", supplierHandler.DeleteSupplier)
		}

		inventario := api.Group("/inventario")
		{
			inventario.GET("", inventoryHandler.GetInventory)
			inventario.POST("", inventoryHandler.CreateInventory)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
