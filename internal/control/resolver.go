package control

import (
	"context"

	"github.com/rs/zerolog/log"
)

// EnsureEndpoint returns a confirmed endpoint id for an operation. An
// explicit positive id is returned unchanged with no network call. Otherwise
// the client's configured default applies, and failing that the first
// discoverable endpoint. ok is false when no endpoint is available; callers
// must then abort without issuing any remote call.
func (c *Client) EnsureEndpoint(ctx context.Context, explicit int) (int, bool) {
	if IsPositiveID(explicit) {
		return explicit, true
	}
	if IsPositiveID(c.defaultEndpoint) {
		return c.defaultEndpoint, true
	}

	endpoints := c.Endpoints(ctx)
	if len(endpoints) == 0 {
		log.Warn().Msg("No endpoints available to resolve against")
		return 0, false
	}

	id := endpoints[0].ID
	log.Debug().Int("endpoint", id).Msg("Resolved to first available endpoint")
	return id, true
}
