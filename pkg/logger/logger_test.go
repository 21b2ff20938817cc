package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)
	assert.NotNil(t, logger.info)
	assert.NotNil(t, logger.error)
	assert.NotNil(t, logger.warn)
}

func TestLogger_Formatting(t *testing.T) {
	logger := New()

	// Formatting with multiple args must not panic
	logger.Info("user %s requested page %d", "u-1", 2)
	logger.Warn("%s count is %d", "posts", 12)
	logger.Error("fetch failed for post %s: %v", "p-1", "not found")
}
