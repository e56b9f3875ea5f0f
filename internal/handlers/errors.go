package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeConflict   ErrorType = "conflict"
	ErrorTypeInternal   ErrorType = "internal"
)

// APIError is the JSON body of every failed request.
type APIError struct {
	Type       ErrorType         `json:"type"`
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Fields     map[string]string `json:"fields,omitempty"`
	HTTPStatus int               `json:"-"`
	Err        error             `json:"-"`
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %v", e.Message, e.Code, e.Err)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

func (e *APIError) Unwrap() error { return e.Err }

func validationError(message string) *APIError {
	return &APIError{Type: ErrorTypeValidation, Code: "VALIDATION_ERROR", Message: message, HTTPStatus: http.StatusBadRequest}
}

func notFound(resource string) *APIError {
	return &APIError{Type: ErrorTypeNotFound, Code: "RESOURCE_NOT_FOUND", Message: resource + " not found", HTTPStatus: http.StatusNotFound}
}

func conflict(message string) *APIError {
	return &APIError{Type: ErrorTypeConflict, Code: "RESOURCE_CONFLICT", Message: message, HTTPStatus: http.StatusConflict}
}

func internalError(op string, err error) *APIError {
	return &APIError{
		Type:       ErrorTypeInternal,
		Code:       "DATABASE_ERROR",
		Message:    "Database operation failed: " + op,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// fieldErrors turns a binding failure into a 400 with per-field messages.
func fieldErrors(err error) *APIError {
	apiErr := validationError("Invalid request payload")

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		apiErr.Fields = make(map[string]string, len(verrs))
		for _, fe := range verrs {
			apiErr.Fields[fe.Field()] = fieldMessage(fe)
		}
		return apiErr
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		apiErr.Fields = map[string]string{typeErr.Field: "must be a " + typeErr.Type.String()}
		return apiErr
	}

	apiErr.Err = err
	return apiErr
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "oneof":
		return "Must be one of: " + fe.Param() + "."
	case "min":
		return "Ensure this field has at least " + fe.Param() + " characters."
	case "max":
		return "Ensure this field has no more than " + fe.Param() + " characters."
	case "gt", "gte":
		return "Must be greater than " + fe.Param() + "."
	}
	return "Invalid value (" + fe.Tag() + ")."
}

// respondError writes err as JSON. Unknown errors are logged and become 500.
func respondError(c *gin.Context, err error) {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
	case errors.Is(err, gorm.ErrRecordNotFound):
		apiErr = notFound("Resource")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		apiErr = conflict("Resource already exists")
	default:
		apiErr = internalError(c.Request.Method+" "+c.FullPath(), err)
	}

	if apiErr.HTTPStatus >= http.StatusInternalServerError {
		log.Error().Err(apiErr.Err).
			Str("path", c.FullPath()).
			Str("code", apiErr.Code).
			Msg("request failed")
	}
	_ = c.Error(apiErr)
	c.AbortWithStatusJSON(apiErr.HTTPStatus, apiErr)
}

func init() {
	// Field errors use the json name of the field, not the Go one.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	}
}
