package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the envelope for every rejected request. Success responses
// write the resource JSON directly; clients consume bare objects/arrays.
type ErrorBody struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id,omitempty"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}

// JSON writes a success payload as-is.
func JSON(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, data)
}

// Created writes a 201 with a Location header pointing at the new resource.
func Created(ctx *gin.Context, location string, data interface{}) {
	ctx.Header("Location", location)
	ctx.JSON(http.StatusCreated, data)
}

// Error writes the error envelope and aborts the request.
func Error(ctx *gin.Context, status int, message string, details interface{}) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	body := ErrorBody{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Message:   message,
		Details:   details,
	}
	ctx.AbortWithStatusJSON(status, body)
}
