package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"census-otp-service/internal/error/code"
)

// ErrorBody is the JSON shape of every failed request
type ErrorBody struct {
	Code   int                 `json:"code"`
	Error  string              `json:"error,omitempty"`
	Errors map[string][]string `json:"errors,omitempty"`
}

// Success writes 200 with {"message": message} merged with extra fields
func Success(c *gin.Context, message string, extra gin.H) {
	write(c, http.StatusOK, message, extra)
}

// Created writes 201 with {"message": message} merged with extra fields
func Created(c *gin.Context, message string, extra gin.H) {
	write(c, http.StatusCreated, message, extra)
}

// Data writes 200 with the given body as-is
func Data(c *gin.Context, body gin.H) {
	c.JSON(http.StatusOK, body)
}

func write(c *gin.Context, status int, message string, extra gin.H) {
	body := gin.H{}
	for k, v := range extra {
		body[k] = v
	}
	body["message"] = message
	c.JSON(status, body)
}

// Fail writes the default message of errorCode with its HTTP status
func Fail(c *gin.Context, errorCode int) {
	FailWithMessage(c, errorCode, code.GetMessage(errorCode))
}

// FailWithMessage writes a custom message with errorCode's HTTP status
func FailWithMessage(c *gin.Context, errorCode int, message string) {
	c.JSON(code.GetStatus(errorCode), ErrorBody{
		Code:  errorCode,
		Error: message,
	})
}

// FieldErrors writes 400 with per-field validation messages
func FieldErrors(c *gin.Context, errorCode int, errs map[string][]string) {
	c.JSON(code.GetStatus(errorCode), ErrorBody{
		Code:   errorCode,
		Errors: errs,
	})
}

// AbortWithMessage is FailWithMessage for middleware: it also stops the chain
func AbortWithMessage(c *gin.Context, errorCode int, message string) {
	FailWithMessage(c, errorCode, message)
	c.Abort()
}

// ParamError writes a 400 validation error
func ParamError(c *gin.Context, message string) {
	FailWithMessage(c, code.ErrValidation, message)
}
