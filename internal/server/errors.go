package server

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	alertdomain "github.com/smallbiznis/waterline/internal/alert/domain"
	auditdomain "github.com/smallbiznis/waterline/internal/audit/domain"
	authdomain "github.com/smallbiznis/waterline/internal/auth/domain"
	"github.com/smallbiznis/waterline/internal/authorization"
	clientdomain "github.com/smallbiznis/waterline/internal/client/domain"
	distributiondomain "github.com/smallbiznis/waterline/internal/distribution/domain"
	facilitydomain "github.com/smallbiznis/waterline/internal/facility/domain"
	feedbackdomain "github.com/smallbiznis/waterline/internal/feedback/domain"
	identitydomain "github.com/smallbiznis/waterline/internal/identity/domain"
	invoicedomain "github.com/smallbiznis/waterline/internal/invoice/domain"
	"github.com/smallbiznis/waterline/internal/observability/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Success bool         `json:"success"`
	Error   errorPayload `json:"error"`
}

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInternal           = errors.New("internal_error")
	ErrNotFound           = errors.New("not_found")
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrRateLimited        = errors.New("rate_limited")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

var validationSentinels = []error{
	ErrInvalidRequest,
	authdomain.ErrInvalidEmail,
	authdomain.ErrWeakPassword,
	clientdomain.ErrInvalidName,
	clientdomain.ErrInvalidPhone,
	facilitydomain.ErrInvalidName,
	facilitydomain.ErrInvalidType,
	facilitydomain.ErrInvalidQuality,
	facilitydomain.ErrInvalidContact,
	facilitydomain.ErrInvalidVolume,
	facilitydomain.ErrInvalidCapacity,
	facilitydomain.ErrInvalidFlowRate,
	facilitydomain.ErrInvalidState,
	facilitydomain.ErrInvalidEfficiency,
	facilitydomain.ErrInvalidEnergy,
	facilitydomain.ErrInvalidMaintenanceDay,
	distributiondomain.ErrInvalidVolume,
	distributiondomain.ErrInvalidDate,
	alertdomain.ErrInvalidMessage,
	alertdomain.ErrInvalidType,
	feedbackdomain.ErrInvalidRating,
	feedbackdomain.ErrInvalidComment,
	auditdomain.ErrInvalidAction,
	auditdomain.ErrInvalidLimit,
}

var notFoundSentinels = []error{
	ErrNotFound,
	clientdomain.ErrNotFound,
	facilitydomain.ErrWaterSourceNotFound,
	facilitydomain.ErrReservoirNotFound,
	facilitydomain.ErrPumpNotFound,
	alertdomain.ErrNotFound,
	invoicedomain.ErrNotFound,
	gorm.ErrRecordNotFound,
}

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		if status >= http.StatusInternalServerError {
			logger.FromContext(c.Request.Context()).Error("request failed", zap.Error(lastErr.Err))
		}
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Success: false, Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

var registerJSONFieldNames sync.Once

// useJSONFieldNames makes binding failures report the wire name of a field.
func useJSONFieldNames() {
	registerJSONFieldNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// bindingError converts a ShouldBind failure into a field-level validation error.
// Malformed bodies have no field to blame and map to invalid_request.
func bindingError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return invalidRequestError()
	}
	out := &ValidationErrors{Errors: make([]ValidationError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		message := fe.Field() + " is required"
		if fe.Tag() != "required" {
			message = fe.Field() + " is out of range"
		}
		out.Errors = append(out.Errors, ValidationError{
			Field:   fe.Field(),
			Code:    fe.Tag(),
			Message: message,
		})
	}
	return out
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrUserNotFound):
		return http.StatusUnauthorized, errorPayload{
			Type:    "invalid_credentials",
			Message: "invalid credentials",
		}
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidSession),
		errors.Is(err, authdomain.ErrSessionNotFound),
		errors.Is(err, authdomain.ErrSessionExpired),
		errors.Is(err, authdomain.ErrSessionRevoked):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, identitydomain.ErrUnrecognizedIdentity):
		return http.StatusForbidden, errorPayload{
			Type:    "unrecognized_identity",
			Message: "user is neither administrator nor client",
		}
	case errors.Is(err, ErrForbidden),
		errors.Is(err, authorization.ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case errors.Is(err, clientdomain.ErrEmailTaken),
		errors.Is(err, authdomain.ErrUserExists):
		return http.StatusConflict, errorPayload{
			Type:    "email_taken",
			Message: "email already registered",
		}
	case errors.Is(err, alertdomain.ErrAlreadyResolved),
		errors.Is(err, ErrConflict):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "rate_limited",
			Message: "too many requests",
		}
	case errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

// classifyErrorForLog returns the response type and code without leaking store error text.
func classifyErrorForLog(err error) (string, string) {
	_, payload := mapError(err)
	code := payload.Type
	if len(payload.Errors) > 0 {
		code = payload.Errors[0].Code
	}
	return payload.Type, code
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	for _, target := range validationSentinels {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isNotFoundError(err error) bool {
	for _, target := range notFoundSentinels {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func validationErrorCode(err error) string {
	for _, target := range validationSentinels {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return err.Error()
}

func validationErrorField(code string) string {
	switch code {
	case "invalid_request":
		return "request"
	case "invalid_rating":
		return "note"
	case "invalid_comment":
		return "commentaire"
	case "invalid_name":
		return "nom"
	case "invalid_phone":
		return "telephone"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	case "invalid_rating":
		return "note must be between 0 and 5"
	case "invalid_comment":
		return "commentaire is required"
	case "invalid_password":
		return "password must be at least 8 characters"
	case "invalid_capacity":
		return "available volume must be between 0 and the maximum volume"
	default:
		return "invalid value"
	}
}
