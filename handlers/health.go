package handlers

import (
	"net/http"

	"campuspilot/utils"

	"github.com/gin-gonic/gin"
)

// Health handles GET /health with the latest monitor snapshot.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Mongo {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
