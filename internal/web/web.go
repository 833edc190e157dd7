// Package web serves the embedded single-page UI.
package web

import (
	"embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed index.html
var content embed.FS

// Register mounts the UI at the site root.
func Register(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		page, err := content.ReadFile("index.html")
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	})
}
