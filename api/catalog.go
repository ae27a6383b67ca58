package api

import (
	"net/http"
	"venuebook/db"
	"venuebook/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// parseVenueFilter reads the common venue listing query parameters
func parseVenueFilter(ctx *gin.Context) (db.VenueFilter, error) {
	filter := db.VenueFilter{
		Search: ctx.Query("search"),
		SortBy: ctx.Query("sort_by"),
		Order:  ctx.Query("order"),
	}

	if raw := ctx.Query("district_id"); raw != "" {
		districtID, err := uuid.Parse(raw)
		if err != nil {
			return db.VenueFilter{}, err
		}
		filter.DistrictID = &districtID
	}

	return filter, nil
}

// ListVenues godoc
// @Summary      Browse venues
// @Description  Lists confirmed venues visible to the caller. A venue whose owner's subscription
// @Description  has expired stays visible to users who already hold a confirmed future booking there.
// @Tags         Catalog
// @Produce      json
// @Param        search query string false "Name search (case-insensitive substring)"
// @Param        district_id query string false "Filter by district"
// @Param        sort_by query string false "Sort column: price_per_seat, capacity or created_at"
// @Param        order query string false "Sort direction: asc (default) or desc"
// @Success      200 {array} db.Venue "Visible venues"
// @Failure      400 {object} ErrorResponse "Invalid query parameters"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/venues [get]
func (server *Server) ListVenues(ctx *gin.Context) {
	filter, err := parseVenueFilter(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid district_id parameter"})
		return
	}

	venues, err := server.queries.ListVisibleVenues(ctx, server.optionalUserID(ctx), filter)
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, venues)
}

// GetVenue godoc
// @Summary      Venue detail
// @Description  Returns one visible venue with its photos and already-booked dates.
// @Description  Venues outside the caller's visibility are reported as not found.
// @Tags         Catalog
// @Produce      json
// @Param        id path string true "Venue ID"
// @Success      200 {object} db.Venue "Venue detail"
// @Failure      400 {object} ErrorResponse "Invalid venue ID"
// @Failure      404 {object} ErrorResponse "Record not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/venues/{id} [get]
func (server *Server) GetVenue(ctx *gin.Context) {
	venueID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		util.LOGGER.Warn("GET /api/venues/:id: invalid venue ID", "id", ctx.Param("id"))
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid venue ID"})
		return
	}

	venue, err := server.queries.GetVisibleVenue(ctx, venueID, server.optionalUserID(ctx))
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, venue)
}
