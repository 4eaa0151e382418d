package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTransport(t *testing.T) {
	tests := []struct {
		in   string
		want Transport
	}{
		{"s3", TransportS3},
		{"gcs", TransportGCS},
		{"database", TransportDatabase},
		{"", TransportDatabase},
		{"azure", TransportDatabase},
		{"S3", TransportDatabase}, // values are case-sensitive
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseTransport(tt.in), "input %q", tt.in)
	}
}

func TestRequire(t *testing.T) {
	assert.NoError(t, Require("s3", TransportS3))
	assert.ErrorIs(t, Require("database", TransportS3), ErrInvalidTransport)
	assert.ErrorIs(t, Require("", TransportGCS), ErrInvalidTransport)

	// The fallback must never satisfy an explicit cloud requirement.
	assert.ErrorIs(t, Require("bogus", TransportS3), ErrInvalidTransport)
	assert.NoError(t, Require("bogus", TransportDatabase))
}
