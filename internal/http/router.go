package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(handler *Handler, authMiddleware gin.HandlerFunc, env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{"Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := router.Group("/api/v1")
	{
		public.POST("/auth/login", handler.login)
		public.PUT("/auth/password", handler.changeFirstPassword)
	}

	protected := router.Group("/api/v1")
	protected.Use(authMiddleware)
	{
		protected.POST("/companies", handler.createCompany)
		protected.GET("/companies/:id", handler.getCompany)
		protected.GET("/companies/tax-number/:tax", handler.getCompanyByTaxNumber)
		protected.PUT("/companies/:id", handler.updateCompany)
		protected.GET("/companies/:id/clients", handler.listClientCompanies)

		protected.POST("/vehicle-models", handler.createVehicleModel)
		protected.GET("/vehicle-models", handler.listVehicleModels)

		protected.POST("/vehicles", handler.createVehicle)
		protected.GET("/vehicles", handler.listVehicles)
		protected.GET("/vehicles/plate/:plate", handler.getVehicleByPlate)
		protected.GET("/vehicles/chassis/:chassis", handler.getVehicleByChassis)
		protected.GET("/vehicles/qr/:code", handler.getVehicleByQRCode)
		protected.GET("/vehicles/:id/history", handler.getVehicleHistory)

		protected.POST("/contracts", handler.createContract)
		protected.GET("/contracts/by-client", handler.findContractByClient)
		protected.GET("/contracts/:id", handler.getContract)
		protected.PUT("/contracts/:id", handler.updateContract)

		protected.POST("/fines", handler.createFine)
		protected.GET("/fines", handler.listFines)
		protected.GET("/fines/lookup", handler.lookupFine)
		protected.GET("/fines/:id", handler.getFine)
		protected.PUT("/fines/:id", handler.updateFine)
		protected.PUT("/fines/:id/status", handler.updateFineStatus)
	}

	return router
}
