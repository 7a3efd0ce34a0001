package tracing

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestSafeAttributesDropsSensitiveKeys(t *testing.T) {
	attrs := SafeAttributes(
		attribute.String("http.route", "/login/"),
		attribute.String("user.password", "x"),
		attribute.String("client.email", "a@example.com"),
	)
	assert.Len(t, attrs, 1)
	assert.Equal(t, attribute.Key("http.route"), attrs[0].Key)
}

func TestSafeErrorKeepsOuterMessage(t *testing.T) {
	err := fmt.Errorf("insert client: %w", errors.New("pq: duplicate key value"))
	assert.EqualError(t, SafeError(err), "insert client")
	assert.Nil(t, SafeError(nil))
}
