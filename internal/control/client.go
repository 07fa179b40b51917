// Package control implements the resource control dispatch layer for a
// remote container/stack orchestration service: endpoint resolution, input
// validation, single-action dispatch, cleanup, and the stack redeploy
// workflow. Operations never return errors; failures are logged and
// reported through false/nil results so callers can stay fail-closed.
package control

import (
	"context"
	"net/url"
	"time"

	"github.com/docker/docker/api/types/container"
)

// Transport is the authenticated HTTP session the control layer issues
// calls through. It reports its own validity and returns the raw response
// payload or an error; interpretation happens here.
type Transport interface {
	IsValidated() bool
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
	Post(ctx context.Context, path string, query url.Values, body any) ([]byte, error)
	Put(ctx context.Context, path string, query url.Values, body any) ([]byte, error)
	Delete(ctx context.Context, path string, query url.Values) ([]byte, error)
}

// EndpointResolver confirms which endpoint an operation targets.
type EndpointResolver interface {
	EnsureEndpoint(ctx context.Context, explicit int) (int, bool)
}

// StackReader lists stacks across all endpoints.
type StackReader interface {
	Stacks(ctx context.Context) []Stack
}

// ContainerReader lists containers on one endpoint.
type ContainerReader interface {
	Containers(ctx context.Context, endpointID int, all bool) []container.Summary
}

// defaultSettleDelay is how long the redeploy workflow waits between the
// stop and start steps so the service can release resources.
const defaultSettleDelay = 2 * time.Second

// Config tunes a Client.
type Config struct {
	// DefaultEndpoint, when > 0, is used by the resolver before it falls
	// back to discovery.
	DefaultEndpoint int
	// SettleDelay overrides the redeploy quiescence delay. Zero keeps the
	// default.
	SettleDelay time.Duration
}

// Client is the concrete control layer: a single struct implementing every
// capability (resolution, reading, dispatch, cleanup, stack control) over
// one shared session.
type Client struct {
	session         Transport
	defaultEndpoint int
	settle          time.Duration
}

// New wires a Client onto an authenticated session.
func New(session Transport, cfg Config) *Client {
	settle := cfg.SettleDelay
	if settle == 0 {
		settle = defaultSettleDelay
	}
	return &Client{
		session:         session,
		defaultEndpoint: cfg.DefaultEndpoint,
		settle:          settle,
	}
}

var (
	_ EndpointResolver = (*Client)(nil)
	_ StackReader      = (*Client)(nil)
	_ ContainerReader  = (*Client)(nil)
)
