package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tawdifak-listings/internal/services"
)

type HomeHandler struct {
	homeService *services.HomeService
}

func NewHomeHandler(homeService *services.HomeService) *HomeHandler {
	return &HomeHandler{homeService: homeService}
}

// Feed godoc
// @Summary Home page feed
// @Description First items of every section plus headline counts. Section sizes depend on the device class, detected from the User-Agent unless mobile is given.
// @Tags Home
// @Produce json
// @Param mobile query bool false "Force the device class"
// @Success 200 {object} models.HomeFeed
// @Failure 503 {object} map[string]interface{}
// @Router /home [get]
func (h *HomeHandler) Feed(c *gin.Context) {
	feed, err := h.homeService.Feed(c.Request.Context(), isMobile(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// ClearCache godoc
// @Summary Drop the cached home feeds
// @Description Operators only: requires the X-Operator-Token header.
// @Tags Home
// @Param X-Operator-Token header string true "Operator token"
// @Success 204
// @Failure 403 {object} map[string]interface{}
// @Router /home/cache [delete]
func (h *HomeHandler) ClearCache(c *gin.Context) {
	h.homeService.ClearHome(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// isMobile honours ?mobile= and falls back to the User-Agent.
func isMobile(c *gin.Context) bool {
	if raw, ok := c.GetQuery("mobile"); ok {
		if v, err := strconv.ParseBool(raw); err == nil {
			return v
		}
	}
	return services.IsMobileUserAgent(c.GetHeader("User-Agent"))
}
