package healthcheck

import (
	"net/http"

	"github.com/MyelinBots/userrank-go/config"
	"github.com/gin-gonic/gin"
)

// Handler reports liveness plus the running version.
func Handler(cfg config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"name":    cfg.APPName,
			"version": cfg.Version,
		})
	}
}
