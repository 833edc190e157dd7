package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ats-analyzer/internal/shared/util"
)

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

// Blob writes a downloadable artifact with attachment and ETag headers.
func Blob(c *gin.Context, contentType, fileName string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Header("ETag", util.ContentETag(data))
	c.Data(http.StatusOK, contentType, data)
}
