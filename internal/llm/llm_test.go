package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_Defaults(t *testing.T) {
	o := Apply("https://example.test/v1")

	assert.Equal(t, "https://example.test/v1", o.BaseURL)
	assert.Equal(t, DefaultTimeout, o.Timeout)
	assert.Nil(t, o.Temperature)
}

func TestApply_Overrides(t *testing.T) {
	o := Apply("https://example.test/v1",
		WithBaseURL("http://localhost:9000"),
		WithTimeout(3*time.Second),
		WithTemperature(0),
	)

	assert.Equal(t, "http://localhost:9000", o.BaseURL)
	assert.Equal(t, 3*time.Second, o.Timeout)
	require.NotNil(t, o.Temperature)
	assert.Equal(t, 0.0, *o.Temperature)
	assert.Equal(t, 3*time.Second, NewHTTPClient(o).Timeout)
}

func TestWithTimeout_IgnoresNonPositive(t *testing.T) {
	o := Apply("", WithTimeout(0), WithTimeout(-time.Second))
	assert.Equal(t, DefaultTimeout, o.Timeout)
}
