package api

import (
	"net/http"
	"venuebook/db"
	"venuebook/service/uploader"
	"venuebook/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VenueRequest struct {
	Name         string `json:"name" binding:"required"`
	DistrictID   string `json:"district_id" binding:"required,uuid"`
	Address      string `json:"address" binding:"required"`
	Capacity     int    `json:"capacity" binding:"required,gt=0"`
	PricePerSeat int    `json:"price_per_seat" binding:"required,gt=0"`
	PhoneNumber  string `json:"phone_number" binding:"required"`
}

func (req VenueRequest) toVenue() *db.Venue {
	return &db.Venue{
		Name:         req.Name,
		Slug:         util.GenerateSlug(req.Name),
		DistrictID:   uuid.MustParse(req.DistrictID),
		Address:      req.Address,
		Capacity:     req.Capacity,
		PricePerSeat: req.PricePerSeat,
		PhoneNumber:  req.PhoneNumber,
	}
}

// pathID parses the :id path parameter, responding 400 on failure
func pathID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid ID in path"})
		return uuid.Nil, false
	}
	return id, true
}

// AdminListVenues godoc
// @Summary      List all venues (admin)
// @Description  Lists every venue regardless of status or visibility, with filters and sorting.
// @Tags         Admin
// @Produce      json
// @Param        search query string false "Name search"
// @Param        district_id query string false "Filter by district"
// @Param        status query string false "Filter by status: confirmed or unconfirmed"
// @Param        sort_by query string false "Sort column: price_per_seat, capacity or created_at"
// @Param        order query string false "Sort direction: asc (default) or desc"
// @Success      200 {array} db.Venue "Venues"
// @Failure      400 {object} ErrorResponse "Invalid query parameters"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/venues [get]
func (server *Server) AdminListVenues(ctx *gin.Context) {
	filter, err := parseVenueFilter(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid district_id parameter"})
		return
	}
	filter.Status = db.VenueStatus(ctx.Query("status"))

	venues, err := server.queries.ListVenues(ctx, filter, nil)
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, venues)
}

// AdminGetVenue godoc
// @Summary      Venue detail (admin)
// @Description  Returns one venue with photos and its bookings including booker identity.
// @Tags         Admin
// @Produce      json
// @Param        id path string true "Venue ID"
// @Success      200 {object} db.Venue "Venue detail"
// @Failure      400 {object} ErrorResponse "Invalid ID in path"
// @Failure      404 {object} ErrorResponse "Record not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/venues/{id} [get]
func (server *Server) AdminGetVenue(ctx *gin.Context) {
	venueID, ok := pathID(ctx)
	if !ok {
		return
	}

	venue, err := server.queries.GetVenue(ctx, venueID, nil)
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, venue)
}

// AdminCreateVenue godoc
// @Summary      Create a venue (admin)
// @Description  Creates a venue on behalf of the platform. Admin-created venues are confirmed
// @Description  immediately and never gated by an owner subscription.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body VenueRequest true "Venue information"
// @Success      200 {object} db.Venue "Venue created"
// @Failure      400 {object} ErrorResponse "Invalid request body"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/venues [post]
func (server *Server) AdminCreateVenue(ctx *gin.Context) {
	// Get request body and validate
	var req VenueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.LOGGER.Warn("POST /api/admin/venues: failed to bind request body", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}

	adminID := accountID(ctx)
	venue := req.toVenue()
	venue.CreatedByAdminID = &adminID
	venue.Status = db.VenueConfirmed

	if err := server.queries.CreateVenue(ctx, venue); err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, venue)
}

// AdminUpdateVenue godoc
// @Summary      Update a venue (admin)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Venue ID"
// @Param        request body VenueRequest true "Venue information"
// @Success      200 {object} db.Venue "Venue updated"
// @Failure      400 {object} ErrorResponse "Invalid request body"
// @Failure      404 {object} ErrorResponse "Record not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/venues/{id} [put]
func (server *Server) AdminUpdateVenue(ctx *gin.Context) {
	venueID, ok := pathID(ctx)
	if !ok {
		return
	}

	var req VenueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.LOGGER.Warn("PUT /api/admin/venues/:id: failed to bind request body", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}

	venue, err := server.queries.UpdateVenue(ctx, venueID, nil, req.toVenue())
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, venue)
}

// AdminDeleteVenue godoc
// @Summary      Delete a venue (admin)
// @Tags         Admin
// @Produce      json
// @Param        id path string true "Venue ID"
// @Success      200 {object} SuccessMessage "Venue deleted"
// @Failure      400 {object} ErrorResponse "Invalid ID in path"
// @Failure      404 {object} ErrorResponse "Record not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/venues/{id} [delete]
func (server *Server) AdminDeleteVenue(ctx *gin.Context) {
	venueID, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := server.queries.DeleteVenue(ctx, venueID); err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, SuccessMessage{"Venue deleted"})
}

// AdminConfirmVenue godoc
// @Summary      Confirm a venue (admin)
// @Description  Moves an owner-registered venue to confirmed so end users can see and book it.
// @Tags         Admin
// @Produce      json
// @Param        id path string true "Venue ID"
// @Success      200 {object} db.Venue "Venue confirmed"
// @Failure      400 {object} ErrorResponse "Invalid ID in path"
// @Failure      404 {object} ErrorResponse "Record not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/venues/{id}/confirm [put]
func (server *Server) AdminConfirmVenue(ctx *gin.Context) {
	venueID, ok := pathID(ctx)
	if !ok {
		return
	}

	venue, err := server.queries.ConfirmVenue(ctx, venueID)
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, venue)
}

type AssignOwnerRequest struct {
	OwnerID string `json:"owner_id" binding:"required,uuid"`
}

// AdminAssignVenueOwner godoc
// @Summary      Assign an owner to a venue (admin)
// @Description  Hands an admin-created venue over to a venue owner. From that point the venue
// @Description  is gated by the owner's subscription.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Venue ID"
// @Param        request body AssignOwnerRequest true "Owner to assign"
// @Success      200 {object} db.Venue "Owner assigned"
// @Failure      400 {object} ErrorResponse "Invalid request body"
// @Failure      404 {object} ErrorResponse "Record not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/venues/{id}/owner [put]
func (server *Server) AdminAssignVenueOwner(ctx *gin.Context) {
	venueID, ok := pathID(ctx)
	if !ok {
		return
	}

	var req AssignOwnerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.LOGGER.Warn("PUT /api/admin/venues/:id/owner: failed to bind request body", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}

	venue, err := server.queries.AssignVenueOwner(ctx, venueID, uuid.MustParse(req.OwnerID))
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, venue)
}

// OwnerListVenues godoc
// @Summary      List own venues (owner)
// @Tags         Owner
// @Produce      json
// @Param        search query string false "Name search"
// @Param        district_id query string false "Filter by district"
// @Param        status query string false "Filter by status"
// @Param        sort_by query string false "Sort column: price_per_seat, capacity or created_at"
// @Param        order query string false "Sort direction"
// @Success      200 {array} db.Venue "Venues"
// @Failure      400 {object} ErrorResponse "Invalid query parameters"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/owner/venues [get]
func (server *Server) OwnerListVenues(ctx *gin.Context) {
	filter, err := parseVenueFilter(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid district_id parameter"})
		return
	}
	filter.Status = db.VenueStatus(ctx.Query("status"))

	ownerID := accountID(ctx)
	venues, err := server.queries.ListVenues(ctx, filter, &ownerID)
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, venues)
}

// OwnerGetVenue godoc
// @Summary      Own venue detail (owner)
// @Description  Returns one of the owner's venues with photos and bookings. Venues belonging to
// @Description  other owners are reported as not found.
// @Tags         Owner
// @Produce      json
// @Param        id path string true "Venue ID"
// @Success      200 {object} db.Venue "Venue detail"
// @Failure      400 {object} ErrorResponse "Invalid ID in path"
// @Failure      404 {object} ErrorResponse "Record not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/owner/venues/{id} [get]
func (server *Server) OwnerGetVenue(ctx *gin.Context) {
	venueID, ok := pathID(ctx)
	if !ok {
		return
	}

	ownerID := accountID(ctx)
	venue, err := server.queries.GetVenue(ctx, venueID, &ownerID)
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, venue)
}

// OwnerCreateVenue godoc
// @Summary      Register a venue (owner)
// @Description  Registers a new venue. Owner-registered venues start unconfirmed and need admin
// @Description  confirmation before users can see them.
// @Tags         Owner
// @Accept       json
// @Produce      json
// @Param        request body VenueRequest true "Venue information"
// @Success      200 {object} db.Venue "Venue created"
// @Failure      400 {object} ErrorResponse "Invalid request body"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/owner/venues [post]
func (server *Server) OwnerCreateVenue(ctx *gin.Context) {
	// Get request body and validate
	var req VenueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.LOGGER.Warn("POST /api/owner/venues: failed to bind request body", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}

	ownerID := accountID(ctx)
	venue := req.toVenue()
	venue.OwnerID = &ownerID
	venue.Status = db.VenueUnconfirmed

	if err := server.queries.CreateVenue(ctx, venue); err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, venue)
}

// OwnerUpdateVenue godoc
// @Summary      Update own venue (owner)
// @Tags         Owner
// @Accept       json
// @Produce      json
// @Param        id path string true "Venue ID"
// @Param        request body VenueRequest true "Venue information"
// @Success      200 {object} db.Venue "Venue updated"
// @Failure      400 {object} ErrorResponse "Invalid request body"
// @Failure      404 {object} ErrorResponse "Record not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/owner/venues/{id} [put]
func (server *Server) OwnerUpdateVenue(ctx *gin.Context) {
	venueID, ok := pathID(ctx)
	if !ok {
		return
	}

	var req VenueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.LOGGER.Warn("PUT /api/owner/venues/:id: failed to bind request body", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}

	ownerID := accountID(ctx)
	venue, err := server.queries.UpdateVenue(ctx, venueID, &ownerID, req.toVenue())
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, venue)
}

// OwnerUploadVenuePhoto godoc
// @Summary      Upload a venue photo (owner)
// @Description  Accepts a multipart image (max 5MB), stores it under the uploads tree and
// @Description  attaches it to the venue.
// @Tags         Owner
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Venue ID"
// @Param        photo formData file true "Image file"
// @Param        is_main formData boolean false "Mark as the venue's main photo"
// @Success      200 {object} db.VenuePhoto "Photo attached"
// @Failure      400 {object} ErrorResponse "Invalid upload"
// @Failure      404 {object} ErrorResponse "Record not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/owner/venues/{id}/photos [post]
func (server *Server) OwnerUploadVenuePhoto(ctx *gin.Context) {
	venueID, ok := pathID(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		util.LOGGER.Warn("POST /api/owner/venues/:id/photos: missing photo file", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Missing photo file"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LOGGER.Error("POST /api/owner/venues/:id/photos: failed to open upload", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Internal server error"})
		return
	}
	defer file.Close()

	url, err := server.uploadService.Save(
		uploader.CategoryVenues,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		util.LOGGER.Warn("POST /api/owner/venues/:id/photos: upload rejected", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{err.Error()})
		return
	}

	photo := &db.VenuePhoto{
		VenueID:  venueID,
		PhotoURL: url,
		IsMain:   ctx.PostForm("is_main") == "true",
	}
	if err := server.queries.AddVenuePhoto(ctx, accountID(ctx), photo); err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, photo)
}
