package control

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// updateStackBody is the payload for a stack update. Prune is always false:
// this layer never removes services the new definition no longer mentions.
type updateStackBody struct {
	StackFileContent string `json:"StackFileContent"`
	Prune            bool   `json:"Prune"`
	PullImage        bool   `json:"PullImage"`
}

func stackQuery(endpointID int) url.Values {
	return url.Values{"endpointId": {strconv.Itoa(endpointID)}}
}

// StartStack starts a stack, reporting whether the call was issued and
// succeeded.
func (c *Client) StartStack(ctx context.Context, stackID, endpointID int) bool {
	return c.stackAction(ctx, "start", stackID, endpointID)
}

// StopStack stops a stack, reporting whether the call was issued and
// succeeded.
func (c *Client) StopStack(ctx context.Context, stackID, endpointID int) bool {
	return c.stackAction(ctx, "stop", stackID, endpointID)
}

func (c *Client) stackAction(ctx context.Context, action string, stackID, endpointID int) bool {
	if !IsPositiveID(stackID) {
		log.Error().Int("stack", stackID).Str("action", action).Msg("Invalid stack id")
		return false
	}
	if !IsOptionalEndpointID(endpointID) {
		log.Error().Int("endpoint", endpointID).Str("action", action).Msg("Invalid endpoint id")
		return false
	}

	endpointID, ok := c.EnsureEndpoint(ctx, endpointID)
	if !ok {
		log.Error().Int("stack", stackID).Str("action", action).Msg("No endpoint available for stack action")
		return false
	}

	path := fmt.Sprintf("/api/stacks/%d/%s", stackID, action)
	if _, err := c.session.Post(ctx, path, stackQuery(endpointID), nil); err != nil {
		log.Error().Err(err).Int("stack", stackID).Str("action", action).Msg("Stack action failed")
		return false
	}

	log.Info().Int("stack", stackID).Int("endpoint", endpointID).Str("action", action).Msg("Stack action completed")
	return true
}

// UpdateStack replaces a stack's definition with the given compose content,
// sent verbatim. pullImage controls whether the service re-pulls images
// before recreating. An invalid endpoint id rejects the call outright, the
// same as every other operation here.
func (c *Client) UpdateStack(ctx context.Context, stackID int, content string, endpointID int, pullImage bool) bool {
	if !IsPositiveID(stackID) {
		log.Error().Int("stack", stackID).Msg("Invalid stack id for update")
		return false
	}
	if !IsNonEmptyString(content) {
		log.Error().Int("stack", stackID).Msg("Stack file content is required")
		return false
	}
	if !IsOptionalEndpointID(endpointID) {
		log.Error().Int("endpoint", endpointID).Msg("Invalid endpoint id for stack update")
		return false
	}

	endpointID, ok := c.EnsureEndpoint(ctx, endpointID)
	if !ok {
		log.Error().Int("stack", stackID).Msg("No endpoint available for stack update")
		return false
	}

	body := updateStackBody{
		StackFileContent: content,
		Prune:            false,
		PullImage:        pullImage,
	}
	if _, err := c.session.Put(ctx, fmt.Sprintf("/api/stacks/%d", stackID), stackQuery(endpointID), body); err != nil {
		log.Error().Err(err).Int("stack", stackID).Msg("Stack update failed")
		return false
	}

	log.Info().Int("stack", stackID).Int("endpoint", endpointID).Bool("pull_image", pullImage).Msg("Stack updated")
	return true
}

// RedeployStack restarts a stack in place: locate it, stop it, wait for the
// service to settle, then start it again. Stop-then-start is not atomic on
// the remote side, so a stop failure is tolerated (the stack may already be
// stopped) while a missing stack or a failed start fails the whole
// workflow.
func (c *Client) RedeployStack(ctx context.Context, stackID, endpointID int) bool {
	if !IsPositiveID(stackID) {
		log.Error().Int("stack", stackID).Msg("Invalid stack id for redeploy")
		return false
	}
	if !IsOptionalEndpointID(endpointID) {
		log.Error().Int("endpoint", endpointID).Msg("Invalid endpoint id for redeploy")
		return false
	}

	endpointID, ok := c.EnsureEndpoint(ctx, endpointID)
	if !ok {
		log.Error().Int("stack", stackID).Msg("No endpoint available for redeploy")
		return false
	}

	if _, found := c.locateStack(ctx, stackID); !found {
		log.Error().Int("stack", stackID).Msg("Cannot redeploy a stack that does not exist")
		return false
	}

	if !c.StopStack(ctx, stackID, endpointID) {
		log.Warn().Int("stack", stackID).Msg("Stop before redeploy failed, stack may already be stopped")
	}

	log.Debug().Int("stack", stackID).Dur("settle", c.settle).Msg("Waiting for stack to settle before restart")
	time.Sleep(c.settle)

	if !c.StartStack(ctx, stackID, endpointID) {
		log.Error().Int("stack", stackID).Msg("Start after redeploy stop failed")
		return false
	}

	log.Info().Int("stack", stackID).Int("endpoint", endpointID).Msg("Stack redeployed")
	return true
}

// locateStack confirms a stack id exists in the fetched stack list.
func (c *Client) locateStack(ctx context.Context, stackID int) (Stack, bool) {
	stacks := c.Stacks(ctx)
	if stacks == nil {
		return Stack{}, false
	}
	for _, stack := range stacks {
		if stack.ID == stackID {
			return stack, true
		}
	}
	return Stack{}, false
}
