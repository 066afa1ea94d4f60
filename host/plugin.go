package host

import (
	"context"
	"errors"
	"net/http"
)

// ErrMissingCredential is returned by Capability.Validate when the plugin has
// no API credential configured. The host must not invoke Handle in that case.
var ErrMissingCredential = errors.New("api credential is not configured")

// Plugin is the extension point the host framework loads.
type Plugin interface {
	// Name returns the unique plugin name.
	Name() string
	// Version returns the plugin version string.
	Version() string
	// Init initializes the plugin. Called after registration.
	Init(ctx context.Context) error
	// Shutdown gracefully shuts down the plugin.
	Shutdown(ctx context.Context) error
}

// Capability is a named operation the host can invoke on behalf of an agent.
type Capability interface {
	// Name returns the unique capability name, e.g. "generate-image".
	Name() string
	// Description returns a human-readable description for the host's
	// capability listing.
	Description() string
	// Validate reports whether the capability can run for the given message.
	// A non-nil error blocks Handle from being called.
	Validate(ctx context.Context, msg *Message) error
	// Handle processes the message and delivers results through cb.
	// Implementations must call cb exactly once.
	Handle(ctx context.Context, msg *Message, cb Callback) error
}

// Service is a long-lived component with an explicit start/stop lifecycle,
// run by the host alongside the capabilities.
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// MessageListener observes inbound messages without handling them.
type MessageListener interface {
	OnMessage(ctx context.Context, msg *Message)
}

// Callback delivers a response back through the host's messaging system.
type Callback func(ctx context.Context, resp *Response) error

// Route is an HTTP endpoint the plugin asks the host to expose.
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
}

// Metadata holds descriptive information about a plugin.
type Metadata struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description,omitempty"`
	Author      string   `json:"author,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}
