package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// Error writes err as a JSON error response. Errors carrying a StatusCode
// method choose their status; anything else is a 500.
func Error(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if coded, ok := err.(interface{ StatusCode() int }); ok {
		status = coded.StatusCode()
	}
	c.JSON(status, NewErrorResponse(err.Error()))
}
