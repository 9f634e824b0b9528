package handler

import (
	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, errType, message string) {
	c.JSON(status, &ErrorResponse{
		Error:   errType,
		Message: message,
	})
}
