package domain_test

import (
	"testing"
	"time"

	"github.com/fingerprinter/fingerprinter/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings_AreValid(t *testing.T) {
	s := domain.DefaultSettings()
	assert.NoError(t, s.Validate())
	assert.Equal(t, 2500*time.Millisecond, s.Timeout)
	assert.Equal(t, 4, s.Concurrency)
	assert.Empty(t, s.Rules)
}

func TestValidate_NonPositiveTimeout(t *testing.T) {
	s := domain.DefaultSettings()
	s.Timeout = 0
	err := s.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestValidate_NonPositiveConcurrency(t *testing.T) {
	s := domain.DefaultSettings()
	s.Concurrency = -1
	err := s.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "concurrency")
}

func TestValidate_NonPositiveBodyLimit(t *testing.T) {
	s := domain.DefaultSettings()
	s.MaxBodyBytes = 0
	assert.Error(t, s.Validate())
}

func TestValidate_UnknownLogFormat(t *testing.T) {
	s := domain.DefaultSettings()
	s.Logging.Format = "xml"
	err := s.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "logging.format")
}

func TestValidate_UnknownLogLevel(t *testing.T) {
	s := domain.DefaultSettings()
	s.Logging.Level = "trace"
	err := s.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}
