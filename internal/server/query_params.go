package server

import (
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

const dateOnlyLayout = "2006-01-02"

var (
	errInvalidID   = errors.New("invalid_snowflake_id")
	errInvalidDate = errors.New("invalid_time")
)

func parseOptionalSnowflakeID(value string) (*snowflake.ID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := snowflake.ParseString(trimmed)
	if err != nil || parsed <= 0 {
		return nil, errInvalidID
	}
	return &parsed, nil
}

// parseRequiredSnowflakeID reports a validation error against field when value is missing or malformed.
func parseRequiredSnowflakeID(field, value string) (snowflake.ID, error) {
	id, err := parseOptionalSnowflakeID(value)
	if err != nil {
		return 0, newValidationError(field, "invalid_id", field+" is invalid")
	}
	if id == nil {
		return 0, newValidationError(field, "required", field+" is required")
	}
	return *id, nil
}

// pathID parses the :id route segment. Malformed ids cannot name a row, so they are not found.
func pathID(c *gin.Context) (snowflake.ID, error) {
	id, err := parseOptionalSnowflakeID(c.Param("id"))
	if err != nil || id == nil {
		return 0, ErrNotFound
	}
	return *id, nil
}

// parseOptionalDate accepts a calendar date or an RFC3339 timestamp and returns UTC midnight.
func parseOptionalDate(value string) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateOnlyLayout, trimmed)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, trimmed)
		if err != nil {
			return nil, errInvalidDate
		}
	}
	parsed = parsed.UTC()
	day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
	return &day, nil
}
