// Package llm holds the message shape shared by the provider clients.
package llm

import (
	"net/http"
	"time"
)

// Message is a single chat turn sent to a provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// DefaultTimeout bounds a single completion request.
const DefaultTimeout = 120 * time.Second

// Options configures a provider client.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	Temperature *float64
}

// Option mutates Options.
type Option func(*Options)

// WithBaseURL points the client at a different endpoint, e.g. a compatible proxy.
func WithBaseURL(url string) Option {
	return func(o *Options) { o.BaseURL = url }
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.Timeout = d
		}
	}
}

// WithTemperature sets the sampling temperature. Unset leaves the provider default.
func WithTemperature(t float64) Option {
	return func(o *Options) { o.Temperature = &t }
}

// Apply builds Options starting from the given base URL.
func Apply(baseURL string, opts ...Option) Options {
	o := Options{BaseURL: baseURL, Timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewHTTPClient returns the HTTP client a provider uses for its lifetime.
func NewHTTPClient(o Options) *http.Client {
	return &http.Client{Timeout: o.Timeout}
}
