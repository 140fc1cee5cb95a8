package apiutil

import (
	"github.com/Aidin1998/studysheets/pkg/errors"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error body written for every failed request
//
// Example:
//
//	{
//	  "status": 400,
//	  "message": "Sheet url not found, but is required",
//	  "fields": [{"kind": "required", "field": "url"}]
//	}
type ErrorResponse struct {
	Status  int                 `json:"status"`
	Message string              `json:"message"`
	Fields  []errors.FieldError `json:"fields,omitempty"`
}

// WriteErrorResponse writes a consistent error response to the client
func WriteErrorResponse(c *gin.Context, status int, err error) {
	c.JSON(status, ErrorResponse{
		Status:  status,
		Message: errors.Describe(err),
		Fields:  errors.FieldsOf(err),
	})
}
