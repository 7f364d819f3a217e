package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tawdifak-listings/internal/listing"
	"tawdifak-listings/internal/middleware"
	"tawdifak-listings/internal/services"
	"tawdifak-listings/internal/validators"
)

type ListingHandler struct {
	listingService *services.ListingService
}

func NewListingHandler(listingService *services.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

// ShowListing godoc
// @Summary Show a listing page
// @Description Mounts the query on the session's page of the listing. Restores from the session cache when possible, otherwise fetches. A fetch failure is returned inline in the error field with the current list kept.
// @Tags Listings
// @Produce json
// @Param type path string true "Listing type" Enums(jobs, workers, competitions, immigration, articles, testimonials)
// @Param q query string false "Search text"
// @Param country query string false "Country"
// @Param city query string false "City"
// @Param category query string false "Category ID"
// @Param workType query string false "Work type" Enums(full_time, part_time, contract, freelance, remote)
// @Param page query int false "Page (discrete listings)" default(1)
// @Param mobile query bool false "Force the mobile page strip"
// @Success 200 {object} models.ListingView
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /listings/{type} [get]
func (h *ListingHandler) Show(c *gin.Context) {
	var q listing.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		c.Error(validators.InvalidQuery(err))
		return
	}
	view, err := h.listingService.Show(c.Request.Context(), middleware.SessionID(c), c.Param("type"), q.Normalize(), isMobile(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// LoadMore godoc
// @Summary Load the next batch of a cumulative listing
// @Tags Listings
// @Produce json
// @Param type path string true "Listing type"
// @Success 200 {object} models.ListingView
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /listings/{type}/more [post]
func (h *ListingHandler) LoadMore(c *gin.Context) {
	view, err := h.listingService.LoadMore(c.Request.Context(), middleware.SessionID(c), c.Param("type"), isMobile(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Retry godoc
// @Summary Retry the last failed fetch of a listing
// @Tags Listings
// @Produce json
// @Param type path string true "Listing type"
// @Success 200 {object} models.ListingView
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /listings/{type}/retry [post]
func (h *ListingHandler) Retry(c *gin.Context) {
	view, err := h.listingService.Retry(c.Request.Context(), middleware.SessionID(c), c.Param("type"), isMobile(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ClearSession godoc
// @Summary Clear the session's listing cache
// @Tags Session
// @Success 204
// @Router /session/cache [delete]
func (h *ListingHandler) ClearSession(c *gin.Context) {
	h.listingService.ClearSession(c.Request.Context(), middleware.SessionID(c))
	c.Status(http.StatusNoContent)
}
