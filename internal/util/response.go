package util

import (
	"net/http"

	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/apperr"

	"github.com/gin-gonic/gin"
)

// Created writes a 201 with a message and the created record.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"message": message,
		"data":    data,
	})
}

// Message writes a 200 with a confirmation message.
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

// Fail writes the error body for a failed operation: the apperr kind picks
// the status code and the message is exposed verbatim.
func Fail(c *gin.Context, err error) {
	c.JSON(apperr.Status(err), gin.H{
		"error": err.Error(),
	})
}
