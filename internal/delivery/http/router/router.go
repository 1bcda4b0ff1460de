// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"fleet/internal/delivery/http/middleware"
	"fleet/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler        *handler.AuthHandler
	ProfileHandler     *handler.ProfileHandler
	CatalogHandler     *handler.CatalogHandler
	FleetHandler       *handler.FleetHandler
	ReservationHandler *handler.ReservationHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler        *handler.AuthHandler
	profileHandler     *handler.ProfileHandler
	catalogHandler     *handler.CatalogHandler
	fleetHandler       *handler.FleetHandler
	reservationHandler *handler.ReservationHandler
	authMiddleware     *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:        params.AuthHandler,
		profileHandler:     params.ProfileHandler,
		catalogHandler:     params.CatalogHandler,
		fleetHandler:       params.FleetHandler,
		reservationHandler: params.ReservationHandler,
		authMiddleware:     params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.Refresh)
	}

	// Self-service account routes
	profileGroup := e.Group("/profile")
	profileGroup.Use(r.authMiddleware.Authenticate)
	{
		profileGroup.GET("/me", r.profileHandler.Get)
		profileGroup.PUT("/me", r.profileHandler.Update)
		profileGroup.PATCH("/me", r.profileHandler.Update)
		profileGroup.POST("/me/change-password", r.profileHandler.ChangePassword)
		profileGroup.DELETE("/me", r.profileHandler.Delete)
	}

	// Lookup tables: anyone logged in may read, only staff may change
	catalogGroup := e.Group("/catalog/:kind")
	catalogGroup.Use(r.authMiddleware.Authenticate)
	catalogGroup.Use(r.authMiddleware.StaffOrReadOnly)
	{
		catalogGroup.GET("", r.catalogHandler.List)
		catalogGroup.POST("", r.catalogHandler.Create)
		catalogGroup.GET("/:id", r.catalogHandler.Get)
		catalogGroup.PUT("/:id", r.catalogHandler.Update)
		catalogGroup.DELETE("/:id", r.catalogHandler.Delete)
	}

	// Vehicle models and cars share the same access rule as the catalog
	fleetGroup := e.Group("/fleet")
	fleetGroup.Use(r.authMiddleware.Authenticate)
	fleetGroup.Use(r.authMiddleware.StaffOrReadOnly)
	{
		fleetGroup.GET("/models", r.fleetHandler.ListVehicleModels)
		fleetGroup.POST("/models", r.fleetHandler.CreateVehicleModel)
		fleetGroup.GET("/models/:id", r.fleetHandler.GetVehicleModel)
		fleetGroup.PUT("/models/:id", r.fleetHandler.UpdateVehicleModel)
		fleetGroup.DELETE("/models/:id", r.fleetHandler.DeleteVehicleModel)

		// Register the static segment before the :id wildcard.
		fleetGroup.GET("/cars/available", r.fleetHandler.AvailableCars)
		fleetGroup.GET("/cars", r.fleetHandler.ListCars)
		fleetGroup.POST("/cars", r.fleetHandler.CreateCar)
		fleetGroup.GET("/cars/:id", r.fleetHandler.GetCar)
		fleetGroup.PUT("/cars/:id", r.fleetHandler.UpdateCar)
		fleetGroup.DELETE("/cars/:id", r.fleetHandler.DeleteCar)
	}

	// Reservations: ownership rules are enforced inside the usecase, so the
	// routes only require authentication
	reservationGroup := e.Group("/reservations")
	reservationGroup.Use(r.authMiddleware.Authenticate)
	{
		reservationGroup.POST("", r.reservationHandler.Create)
		reservationGroup.GET("", r.reservationHandler.List)
		reservationGroup.GET("/mine", r.reservationHandler.Mine)
		reservationGroup.GET("/:id", r.reservationHandler.Get)
		reservationGroup.PUT("/:id", r.reservationHandler.Update)
		reservationGroup.DELETE("/:id", r.reservationHandler.Delete)
	}
}
