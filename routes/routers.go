package routes

import (
	"net/http"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/constants"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/controllers"
	_ "github.com/22161183-afk/HotelOaxacaPatrones-sub001/docs"
	middlewares "github.com/22161183-afk/HotelOaxacaPatrones-sub001/middleware"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies are the services the HTTP layer is built on
type Dependencies struct {
	Tokens        middlewares.TokenVerifier
	Auth          *services.AuthService
	Rooms         *services.RoomService
	Catalog       *services.CatalogService
	Booking       *services.BookingFacade
	Notifications *services.NotificationService
	HotelConfig   *services.HotelConfigService
	Dashboards    *services.DashboardService
}

func SetupRoutes(router *gin.Engine, d Dependencies) {
	authController := controllers.NewAuthController(d.Auth)
	roomController := controllers.NewRoomController(d.Rooms)
	serviceController := controllers.NewServiceController(d.Catalog)
	reservationController := controllers.NewReservationController(d.Booking)
	paymentController := controllers.NewPaymentController(d.Booking)
	notificationController := controllers.NewNotificationController(d.Notifications)
	configController := controllers.NewHotelConfigController(d.HotelConfig)
	dashboardController := controllers.NewDashboardController(d.Dashboards)

	anyUser := middlewares.AuthMiddleware(d.Tokens)
	admin := middlewares.AuthMiddleware(d.Tokens, constants.RoleAdmin)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")

	v1.POST("/auth/register", authController.RegisterUser)
	v1.POST("/auth/login", authController.Login)
	v1.GET("/profile", anyUser, authController.GetProfile)

	v1.GET("/rooms", roomController.GetAllRooms)
	v1.GET("/rooms/:id", roomController.GetRoomDetail)
	v1.GET("/rooms/:id/availability", roomController.GetRoomAvailability)
	v1.POST("/rooms", admin, roomController.CreateRoom)
	v1.PUT("/rooms/:id", admin, roomController.UpdateRoom)
	v1.PUT("/rooms/:id/status", admin, roomController.ChangeRoomStatus)
	v1.DELETE("/rooms/:id", admin, roomController.DeleteRoom)
	v1.POST("/rooms/:id/photo", admin, roomController.UploadPhoto)

	v1.GET("/services", anyUser, serviceController.GetAllServices)
	v1.GET("/services/search", anyUser, serviceController.SearchServices)
	v1.GET("/services/:id", anyUser, serviceController.GetServiceDetail)
	v1.POST("/services", admin, serviceController.CreateService)
	v1.PUT("/services/:id", admin, serviceController.UpdateService)
	v1.DELETE("/services/:id", admin, serviceController.DeleteService)

	v1.GET("/reservations", anyUser, reservationController.GetReservations)
	v1.POST("/reservations", anyUser, reservationController.CreateReservation)
	v1.POST("/reservations/quote", anyUser, reservationController.QuoteReservation)
	v1.PUT("/reservations/batch-status", admin, reservationController.BatchChangeStatus)
	v1.GET("/reservations/:id", anyUser, reservationController.GetReservationDetail)
	v1.PUT("/reservations/:id", anyUser, reservationController.UpdateReservation)
	v1.PUT("/reservations/:id/status", anyUser, reservationController.ChangeReservationStatus)
	v1.POST("/reservations/:id/refund-request", anyUser, reservationController.RequestRefund)

	v1.GET("/payments", anyUser, paymentController.GetPayments)
	v1.GET("/payment-methods", anyUser, paymentController.GetPaymentMethods)
	v1.POST("/payments", anyUser, paymentController.RecordPayment)
	v1.POST("/payments/refund", anyUser, paymentController.Refund)
	v1.PUT("/payments/refund/:id/approve", admin, paymentController.ApproveRefund)
	v1.PUT("/payments/refund/:id/reject", admin, paymentController.RejectRefund)

	v1.GET("/notifications", anyUser, notificationController.GetNotifications)
	v1.PUT("/notifications/:id/read", anyUser, notificationController.MarkRead)
	v1.DELETE("/notifications/:id", anyUser, notificationController.DeleteNotification)
	v1.POST("/notifications", admin, notificationController.SendNotification)

	v1.GET("/hotel-configuration", configController.GetConfiguration)
	v1.PUT("/hotel-configuration", admin, configController.UpdateConfiguration)

	v1.GET("/dashboard/admin", admin, dashboardController.GetAdminDashboard)
	v1.GET("/dashboard/client", anyUser, dashboardController.GetClientDashboard)
}
