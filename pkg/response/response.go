// Package response centralizes the flat JSON bodies of the API error
// taxonomy. Every failure is a {"message": ...} object; authentication
// failures are never more specific than "Unauthorized." and unexpected
// errors are logged server-side but reach the client as a generic 500.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}

func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized."})
}

func Forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden."})
}

func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "Not Found."})
}

func ServerError(c *gin.Context, logger *logrus.Logger, err error) {
	if logger != nil {
		logger.WithFields(logrus.Fields{
			"error":      err,
			"path":       c.FullPath(),
			"request_id": c.GetString("request_id"),
		}).Error("request failed")
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error."})
}
