package control

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/rs/zerolog/log"
)

// CleanupExistingContainer finds a container by name on the target endpoint,
// stops it when it is running, and removes it. The stop and delete are
// independent calls: a stop failure does not prevent the delete attempt.
// Reports whether a matching container existed and was removed.
func (c *Client) CleanupExistingContainer(ctx context.Context, name string, endpointID int) bool {
	if !IsNonEmptyString(name) {
		log.Error().Msg("Container name is required for cleanup")
		return false
	}
	if !IsOptionalEndpointID(endpointID) {
		log.Error().Int("endpoint", endpointID).Msg("Invalid endpoint id for cleanup")
		return false
	}

	endpointID, ok := c.EnsureEndpoint(ctx, endpointID)
	if !ok {
		log.Error().Str("name", name).Msg("No endpoint available for cleanup")
		return false
	}

	containers := c.Containers(ctx, endpointID, true)
	if containers == nil {
		log.Error().Int("endpoint", endpointID).Msg("Container list unavailable, cannot clean up")
		return false
	}

	match := findByAlias(containers, name)
	if match == nil {
		log.Debug().Str("name", name).Int("endpoint", endpointID).Msg("No container matched for cleanup")
		return false
	}

	if match.State == "running" {
		if !c.HandleContainer(ctx, ActionRequest{Action: ActionStop, ContainerID: match.ID, EndpointID: endpointID}) {
			log.Warn().Str("container", match.ID).Msg("Failed to stop container before removal, removing anyway")
		}
	}

	removed := c.HandleContainer(ctx, ActionRequest{Action: ActionRemove, ContainerID: match.ID, EndpointID: endpointID})
	if removed {
		log.Info().Str("name", name).Str("container", match.ID).Msg("Cleaned up existing container")
	}
	return removed
}

// findByAlias returns the first container whose alias set contains name as
// a substring or matches "/"+name exactly. List order breaks ties.
func findByAlias(containers []container.Summary, name string) *container.Summary {
	for i := range containers {
		for _, alias := range containers[i].Names {
			if strings.Contains(alias, name) || alias == "/"+name {
				return &containers[i]
			}
		}
	}
	return nil
}

// DeleteStack removes a stack referenced by id or name. The stack must
// exist: the reference is resolved against the stack list before any
// mutation, and an absent stack fails the call. On success the service's
// response payload is returned.
func (c *Client) DeleteStack(ctx context.Context, ref StackRef, endpointID int) (json.RawMessage, bool) {
	if !ref.Valid() {
		log.Error().Msg("Invalid stack reference for delete")
		return nil, false
	}
	if !IsOptionalEndpointID(endpointID) {
		log.Error().Int("endpoint", endpointID).Msg("Invalid endpoint id for stack delete")
		return nil, false
	}

	endpointID, ok := c.EnsureEndpoint(ctx, endpointID)
	if !ok {
		log.Error().Str("stack", ref.String()).Msg("No endpoint available for stack delete")
		return nil, false
	}

	stackID, ok := c.resolveStackID(ctx, ref)
	if !ok {
		return nil, false
	}

	query := url.Values{"endpointId": {strconv.Itoa(endpointID)}}
	payload, err := c.session.Delete(ctx, fmt.Sprintf("/api/stacks/%d", stackID), query)
	if err != nil {
		log.Error().Err(err).Int("stack", stackID).Msg("Stack delete failed")
		return nil, false
	}

	log.Info().Int("stack", stackID).Int("endpoint", endpointID).Msg("Stack deleted")
	return payload, true
}

// resolveStackID looks the reference up in the stack list, confirming
// existence before any mutation is issued.
func (c *Client) resolveStackID(ctx context.Context, ref StackRef) (int, bool) {
	stacks := c.Stacks(ctx)
	if stacks == nil {
		log.Error().Str("stack", ref.String()).Msg("Stack list unavailable")
		return 0, false
	}
	for _, stack := range stacks {
		if id, byID := ref.ByID(); byID {
			if stack.ID == id {
				return stack.ID, true
			}
		} else if stack.Name == ref.Name() {
			return stack.ID, true
		}
	}
	log.Error().Str("stack", ref.String()).Msg("Stack not found")
	return 0, false
}
