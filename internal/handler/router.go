package handler

import (
	"github.com/gin-gonic/gin"
)

// Handlers bundles every route handler the API serves.
type Handlers struct {
	Availability *AvailabilityHandler
	Rules        *AvailabilityRuleHandler
	Reservations *ReservationHandler
	Businesses   *BusinessHandler
	Settings     *SettingsHandler
	Users        *UserHandler
	Metrics      *MetricsHandler
}

// RegisterRoutes mounts the API surface under the given prefix.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers) {
	api := r.Group(prefix)

	users := api.Group("/users")
	users.POST("", h.Users.Create)
	users.GET("", h.Users.List)
	users.GET("/:id", h.Users.Get)
	users.PUT("/:id", h.Users.Update)
	users.DELETE("/:id", h.Users.Deactivate)
	users.GET("/:id/reservations", h.Reservations.ListByUser)

	businesses := api.Group("/businesses")
	businesses.POST("", h.Businesses.Create)
	businesses.GET("", h.Businesses.List)
	businesses.GET("/:id", h.Businesses.Get)
	businesses.PUT("/:id", h.Businesses.Update)
	businesses.DELETE("/:id", h.Businesses.Delete)
	businesses.GET("/:id/employees", h.Businesses.ListEmployees)
	businesses.POST("/:id/employees", h.Businesses.AddEmployee)
	businesses.PUT("/:id/employees/:userId", h.Businesses.UpdateEmployee)
	businesses.DELETE("/:id/employees/:userId", h.Businesses.RemoveEmployee)
	businesses.GET("/:id/reservations", h.Reservations.ListByBusiness)
	businesses.GET("/:id/availability-rules", h.Rules.ListByBusiness)
	businesses.GET("/:id/reservation-settings", h.Settings.GetByBusiness)
	businesses.DELETE("/:id/reservation-settings", h.Settings.Delete)

	availability := businesses.Group("/:id/availability")
	availability.GET("/date/:date", h.Availability.GetByDate)
	availability.GET("/today", h.Availability.GetToday)
	availability.GET("/tomorrow", h.Availability.GetTomorrow)
	availability.GET("/range", h.Availability.GetRange)
	availability.GET("/week", h.Availability.GetWeek)
	availability.GET("/month", h.Availability.GetMonth)
	availability.GET("/export", h.Availability.Export)

	rules := api.Group("/availability-rules")
	rules.POST("", h.Rules.Create)
	rules.GET("/:id", h.Rules.Get)
	rules.PUT("/:id", h.Rules.Update)
	rules.POST("/:id/deactivate", h.Rules.Deactivate)
	rules.DELETE("/:id", h.Rules.Delete)

	reservations := api.Group("/reservations")
	reservations.POST("", h.Reservations.Create)
	reservations.GET("/:id", h.Reservations.Get)
	reservations.PUT("/:id", h.Reservations.Update)
	reservations.POST("/:id/cancel", h.Reservations.Cancel)

	settings := api.Group("/reservation-settings")
	settings.PUT("", h.Settings.Upsert)
	settings.GET("", h.Settings.List)

	if h.Metrics != nil {
		r.GET("/metrics", h.Metrics.Prometheus)
		api.GET("/metrics/snapshot", h.Metrics.Snapshot)
	}
}
