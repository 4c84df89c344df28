package utils

import "github.com/gin-gonic/gin"

// RespondError writes the flat error body every failure path uses.
func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, gin.H{"error": err.Error()})
}

// RespondJSON writes a success payload as-is.
func RespondJSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}
