package api

import (
	"errors"
	"net/http"
	"venuebook/db"
	"venuebook/service/security"
	"venuebook/service/uploader"
	"venuebook/util"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "venuebook/docs"
)

// Server struct, holds the router, dependencies, system config and logger
type Server struct {
	// API router
	router *gin.Engine

	// Queries
	queries *db.Queries

	// Dependencies
	jwtService    *security.JWTService
	uploadService *uploader.Uploader
	config        *util.Config
}

// Constructor method for server struct
func NewServer(
	queries *db.Queries,
	jwtService *security.JWTService,
	uploadService *uploader.Uploader,
	config *util.Config,
) *Server {
	return &Server{
		router:        gin.Default(),
		queries:       queries,
		jwtService:    jwtService,
		uploadService: uploadService,
		config:        config,
	}
}

// Helper method to register handler for API
func (server *Server) RegisterHandler() {
	server.router.Use(server.CORSMiddleware())

	// Uploaded images are served straight from disk
	server.router.Static("/uploads", server.config.UploadDir)

	// Swagger UI
	server.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := server.router.Group("/api")
	{
		// Public catalog. Identity is optional: a logged-in user may see
		// extra venues they already hold bookings at.
		api.GET("/venues", server.ListVenues)
		api.GET("/venues/:id", server.GetVenue)

		// Authentication
		api.POST("/admin/login", server.AdminLogin)
		api.POST("/owner/register", server.OwnerRegister)
		api.POST("/owner/login", server.OwnerLogin)
		api.POST("/user/register", server.UserRegister)
		api.POST("/user/login", server.UserLogin)
	}

	admin := server.router.Group("/api/admin", server.Authorize(db.RoleAdmin))
	{
		admin.GET("/profile", server.GetAdminProfile)
		admin.PUT("/profile", server.UpdateAdminProfile)

		admin.GET("/admins", server.AdminListAdmins)
		admin.GET("/owners", server.AdminListOwners)
		admin.POST("/owners", server.AdminCreateOwner)
		admin.PUT("/owners/:id/status", server.AdminUpdateOwnerStatus)
		admin.GET("/users", server.AdminListUsers)

		admin.GET("/venues", server.AdminListVenues)
		admin.GET("/venues/:id", server.AdminGetVenue)
		admin.POST("/venues", server.AdminCreateVenue)
		admin.PUT("/venues/:id", server.AdminUpdateVenue)
		admin.DELETE("/venues/:id", server.AdminDeleteVenue)
		admin.PUT("/venues/:id/confirm", server.AdminConfirmVenue)
		admin.PUT("/venues/:id/owner", server.AdminAssignVenueOwner)

		admin.GET("/bookings", server.AdminListBookings)
		admin.PUT("/bookings/:id/cancel", server.AdminCancelBooking)

		admin.GET("/subscriptions", server.AdminListSubscriptions)
		admin.PUT("/subscriptions/:id/confirm", server.AdminConfirmSubscription)
		admin.PUT("/subscriptions/:id/reject", server.AdminRejectSubscription)

		admin.GET("/commissions", server.AdminListCommissions)
		admin.PUT("/commissions/:id/confirm", server.AdminConfirmCommission)
		admin.PUT("/commissions/:id/reject", server.AdminRejectCommission)
	}

	owner := server.router.Group("/api/owner", server.Authorize(db.RoleOwner))
	{
		owner.GET("/profile", server.GetOwnerProfile)
		owner.PUT("/profile", server.UpdateOwnerProfile)

		owner.GET("/venues", server.OwnerListVenues)
		owner.GET("/venues/:id", server.OwnerGetVenue)
		owner.POST("/venues", server.OwnerCreateVenue)
		owner.PUT("/venues/:id", server.OwnerUpdateVenue)
		owner.POST("/venues/:id/photos", server.OwnerUploadVenuePhoto)

		owner.GET("/bookings", server.OwnerListBookings)
		owner.PUT("/bookings/:id/confirm-payment", server.OwnerConfirmBookingPayment)
		owner.PUT("/bookings/:id/reject-payment", server.OwnerRejectBookingPayment)
		owner.PUT("/bookings/:id/cancel", server.OwnerCancelBooking)

		owner.GET("/subscriptions", server.OwnerListSubscriptions)
		owner.GET("/subscriptions/info", server.OwnerSubscriptionInfo)
		owner.POST("/subscriptions", server.OwnerCreateSubscription)
		owner.POST("/subscriptions/:id/receipt", server.OwnerUploadSubscriptionReceipt)

		owner.GET("/commissions", server.OwnerListCommissions)
		owner.POST("/commissions/:id/receipt", server.OwnerUploadCommissionReceipt)
	}

	user := server.router.Group("/api/user", server.Authorize(db.RoleUser))
	{
		user.POST("/bookings", server.UserCreateBooking)
		user.GET("/bookings", server.UserListBookings)
		user.POST("/bookings/:id/receipt", server.UserUploadBookingReceipt)
		user.PUT("/bookings/:id/cancel", server.UserCancelBooking)
	}
}

// Start server
func (server *Server) Start() error {
	server.RegisterHandler()
	return server.router.Run(":" + server.config.Port)
}

// Error response struct
type ErrorResponse struct {
	Message string `json:"error"`
}

// Success message struct
type SuccessMessage struct {
	Message string `json:"message"`
}

// StorageError translates the query layer's error taxonomy into an HTTP
// response. Absent and inaccessible records share the same 404 on purpose.
func (server *Server) StorageError(ctx *gin.Context, err error) {
	var validationErr *db.ValidationError
	var conflictErr *db.ConflictError

	switch {
	case errors.Is(err, db.ErrAccessDenied):
		ctx.JSON(http.StatusNotFound, ErrorResponse{"Record not found"})
	case errors.Is(err, db.ErrInvalidState):
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Operation not allowed in the current state"})
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, ErrorResponse{validationErr.Reason})
	case errors.As(err, &conflictErr):
		ctx.JSON(http.StatusConflict, ErrorResponse{conflictErr.Message})
	default:
		util.LOGGER.Error("unexpected storage error", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Internal server error"})
	}
}
