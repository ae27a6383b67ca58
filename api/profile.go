package api

import (
	"net/http"
	"venuebook/db"
	"venuebook/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetAdminProfile godoc
// @Summary      Admin profile
// @Description  Returns the calling admin's account including the current billing rates.
// @Tags         Admin
// @Produce      json
// @Success      200 {object} db.Admin "Admin profile"
// @Failure      404 {object} ErrorResponse "Record not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/profile [get]
func (server *Server) GetAdminProfile(ctx *gin.Context) {
	admin, err := server.queries.GetAdmin(ctx, accountID(ctx))
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, admin)
}

type UpdateAdminProfileRequest struct {
	CardNumber              string `json:"card_number" binding:"required"`
	CommissionPercentage    int    `json:"commission_percentage" binding:"required,min=0,max=100"`
	MonthlySubscriptionRate int    `json:"monthly_subscription_rate" binding:"required,min=0,max=100"`
}

// UpdateAdminProfile godoc
// @Summary      Update admin profile (admin)
// @Description  Updates the admin's card number and the platform billing rates. This is the only
// @Description  write path for the commission percentage and subscription rate.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body UpdateAdminProfileRequest true "Profile fields"
// @Success      200 {object} db.Admin "Profile updated"
// @Failure      400 {object} ErrorResponse "Invalid request body"
// @Failure      404 {object} ErrorResponse "Record not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/profile [put]
func (server *Server) UpdateAdminProfile(ctx *gin.Context) {
	// Get request body and validate
	var req UpdateAdminProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.LOGGER.Warn("PUT /api/admin/profile: failed to bind request body", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}

	admin, err := server.queries.UpdateAdminProfile(ctx, accountID(ctx), req.CardNumber, req.CommissionPercentage, req.MonthlySubscriptionRate)
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, admin)
}

// GetOwnerProfile godoc
// @Summary      Owner profile
// @Tags         Owner
// @Produce      json
// @Success      200 {object} db.VenueOwner "Owner profile"
// @Failure      404 {object} ErrorResponse "Record not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/owner/profile [get]
func (server *Server) GetOwnerProfile(ctx *gin.Context) {
	owner, err := server.queries.GetOwner(ctx, accountID(ctx))
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, owner)
}

type UpdateOwnerProfileRequest struct {
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	CardNumber string `json:"card_number" binding:"required"`
}

// UpdateOwnerProfile godoc
// @Summary      Update owner profile (owner)
// @Tags         Owner
// @Accept       json
// @Produce      json
// @Param        request body UpdateOwnerProfileRequest true "Profile fields"
// @Success      200 {object} db.VenueOwner "Profile updated"
// @Failure      400 {object} ErrorResponse "Invalid request body"
// @Failure      404 {object} ErrorResponse "Record not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/owner/profile [put]
func (server *Server) UpdateOwnerProfile(ctx *gin.Context) {
	// Get request body and validate
	var req UpdateOwnerProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.LOGGER.Warn("PUT /api/owner/profile: failed to bind request body", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}

	owner, err := server.queries.UpdateOwnerProfile(ctx, accountID(ctx), req.FirstName, req.LastName, req.CardNumber)
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, owner)
}

// AdminListAdmins godoc
// @Summary      List admin accounts (admin)
// @Tags         Admin
// @Produce      json
// @Success      200 {array} db.Admin "Admins"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/admins [get]
func (server *Server) AdminListAdmins(ctx *gin.Context) {
	admins, err := server.queries.ListAdmins(ctx)
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, admins)
}

// AdminListOwners godoc
// @Summary      List venue owners (admin)
// @Tags         Admin
// @Produce      json
// @Success      200 {array} db.VenueOwner "Owners, newest first"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/owners [get]
func (server *Server) AdminListOwners(ctx *gin.Context) {
	owners, err := server.queries.ListOwners(ctx)
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, owners)
}

// AdminCreateOwner godoc
// @Summary      Create a venue owner account (admin)
// @Description  Registers an owner on their behalf. The account gets the same 30-day trial as
// @Description  self-registration.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body OwnerRegisterRequest true "Owner information"
// @Success      200 {object} db.VenueOwner "Account created"
// @Failure      400 {object} ErrorResponse "Invalid request body"
// @Failure      409 {object} ErrorResponse "Username already exists"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/owners [post]
func (server *Server) AdminCreateOwner(ctx *gin.Context) {
	server.OwnerRegister(ctx)
}

type UpdateOwnerStatusRequest struct {
	Status db.OwnerStatus `json:"status" binding:"required,oneof=active inactive"`
}

// AdminUpdateOwnerStatus godoc
// @Summary      Activate or deactivate a venue owner (admin)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Owner ID"
// @Param        request body UpdateOwnerStatusRequest true "New status"
// @Success      200 {object} db.VenueOwner "Status updated"
// @Failure      400 {object} ErrorResponse "Invalid request body"
// @Failure      404 {object} ErrorResponse "Record not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/owners/{id}/status [put]
func (server *Server) AdminUpdateOwnerStatus(ctx *gin.Context) {
	ownerID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid ID in path"})
		return
	}

	var req UpdateOwnerStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.LOGGER.Warn("PUT /api/admin/owners/:id/status: failed to bind request body", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}

	owner, err := server.queries.UpdateOwnerStatus(ctx, ownerID, req.Status)
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, owner)
}

// AdminListUsers godoc
// @Summary      List end users (admin)
// @Tags         Admin
// @Produce      json
// @Success      200 {array} db.User "Users"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/users [get]
func (server *Server) AdminListUsers(ctx *gin.Context) {
	users, err := server.queries.ListUsers(ctx)
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, users)
}
