package control

import (
	"context"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"
)

// HandleContainer validates, resolves, and dispatches one container action,
// reporting whether the remote call was issued and succeeded. Validation
// happens strictly before any side effect; a request that fails any check
// returns false with zero network calls. Transport errors are caught here
// and never propagate.
func (c *Client) HandleContainer(ctx context.Context, req ActionRequest) bool {
	if !knownActions[req.Action] {
		log.Error().Str("action", string(req.Action)).Msg("Unknown container action")
		return false
	}
	if !IsNonEmptyString(req.ContainerID) {
		log.Error().Str("action", string(req.Action)).Msg("Container id is required")
		return false
	}
	if !IsOptionalEndpointID(req.EndpointID) {
		log.Error().Int("endpoint", req.EndpointID).Msg("Invalid endpoint id")
		return false
	}
	if req.TimeoutMS != nil && !IsValidTimeoutMS(*req.TimeoutMS) {
		log.Error().Float64("timeout_ms", *req.TimeoutMS).Msg("Invalid restart timeout")
		return false
	}

	endpointID, ok := c.EnsureEndpoint(ctx, req.EndpointID)
	if !ok {
		log.Error().Str("action", string(req.Action)).Msg("No endpoint available for container action")
		return false
	}

	var err error
	switch req.Action {
	case ActionStart, ActionStop, ActionPause, ActionUnpause:
		_, err = c.session.Post(ctx, containerPath(endpointID, req.ContainerID, string(req.Action)), nil, nil)

	case ActionKill:
		signal := req.Signal
		if signal == "" {
			signal = DefaultKillSignal
		}
		query := url.Values{"signal": {signal}}
		_, err = c.session.Post(ctx, containerPath(endpointID, req.ContainerID, "kill"), query, nil)

	case ActionRestart:
		query := url.Values{}
		if req.TimeoutMS != nil {
			query.Set("t", restartSeconds(*req.TimeoutMS))
		}
		_, err = c.session.Post(ctx, containerPath(endpointID, req.ContainerID, "restart"), query, nil)

	case ActionRemove:
		query := url.Values{}
		if req.Force {
			query.Set("force", "true")
		}
		if req.RemoveVolumes {
			query.Set("v", "true")
		}
		_, err = c.session.Delete(ctx, containerPath(endpointID, req.ContainerID, ""), query)
	}

	if err != nil {
		log.Error().Err(err).
			Str("action", string(req.Action)).
			Str("container", req.ContainerID).
			Int("endpoint", endpointID).
			Msg("Container action failed")
		return false
	}

	log.Info().
		Str("action", string(req.Action)).
		Str("container", req.ContainerID).
		Int("endpoint", endpointID).
		Msg("Container action completed")
	return true
}

// restartSeconds converts a millisecond timeout to the engine's seconds
// query value, rounded to two significant digits.
func restartSeconds(ms float64) string {
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(ms/1000, 'g', 2, 64), 64)
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
