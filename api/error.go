package api

import (
	"errors"

	"github.com/gin-gonic/gin"
)

var (
	ErrInternalServer      = errors.New("internal server error")
	ErrVoiceCommandUnclear = errors.New("không hiểu lệnh, vui lòng nói lại")
)

type FailedValidationResponse struct {
	Message         string            `json:"message"`
	FieldViolations []*FieldViolation `json:"field_violations"`
}

type FieldViolation struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func fieldViolation(field string, err error) *FieldViolation {
	return &FieldViolation{
		Field:       field,
		Description: err.Error(),
	}
}

func errorResponse(err error) gin.H {
	return gin.H{"error": err.Error()}
}

func failedValidationError(violations []*FieldViolation) *FailedValidationResponse {
	return &FailedValidationResponse{
		Message:         "Invalid request parameters",
		FieldViolations: violations,
	}
}
