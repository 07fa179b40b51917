package control

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/rs/zerolog/log"
)

// Read operations are independent, side-effect-free fetches. Each one
// requires a validated session, issues exactly one call, and returns nil if
// anything goes wrong. Successful calls return non-nil (possibly empty)
// collections so callers can tell "nothing there" from "unavailable".

func dockerPath(endpointID int, suffix string) string {
	return fmt.Sprintf("/api/endpoints/%d/docker%s", endpointID, suffix)
}

func containerPath(endpointID int, containerID, op string) string {
	suffix := "/containers/" + containerID
	if op != "" {
		suffix += "/" + op
	}
	return dockerPath(endpointID, suffix)
}

// readJSON performs one validated GET and decodes the payload into out.
func (c *Client) readJSON(ctx context.Context, path string, query url.Values, out any) bool {
	if !c.session.IsValidated() {
		log.Warn().Str("path", path).Msg("Session not validated, skipping read")
		return false
	}
	payload, err := c.session.Get(ctx, path, query)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Read failed")
		return false
	}
	if err := json.Unmarshal(payload, out); err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to decode response")
		return false
	}
	return true
}

// Endpoints returns all managed endpoints, or nil.
func (c *Client) Endpoints(ctx context.Context) []Endpoint {
	endpoints := []Endpoint{}
	if !c.readJSON(ctx, "/api/endpoints", nil, &endpoints) {
		return nil
	}
	return endpoints
}

// EndpointDetails returns one endpoint by id, or nil.
func (c *Client) EndpointDetails(ctx context.Context, endpointID int) *Endpoint {
	if !IsPositiveID(endpointID) {
		return nil
	}
	var endpoint Endpoint
	if !c.readJSON(ctx, fmt.Sprintf("/api/endpoints/%d", endpointID), nil, &endpoint) {
		return nil
	}
	return &endpoint
}

// Stacks returns all stacks visible to the session, or nil.
func (c *Client) Stacks(ctx context.Context) []Stack {
	stacks := []Stack{}
	if !c.readJSON(ctx, "/api/stacks", nil, &stacks) {
		return nil
	}
	return stacks
}

// Containers returns the container list for an endpoint, or nil. all=true
// includes stopped containers.
func (c *Client) Containers(ctx context.Context, endpointID int, all bool) []container.Summary {
	if !IsPositiveID(endpointID) {
		return nil
	}
	query := url.Values{}
	if all {
		query.Set("all", "true")
	}
	containers := []container.Summary{}
	if !c.readJSON(ctx, dockerPath(endpointID, "/containers/json"), query, &containers) {
		return nil
	}
	return containers
}

// Images returns the image list for an endpoint, or nil.
func (c *Client) Images(ctx context.Context, endpointID int) []image.Summary {
	if !IsPositiveID(endpointID) {
		return nil
	}
	images := []image.Summary{}
	if !c.readJSON(ctx, dockerPath(endpointID, "/images/json"), nil, &images) {
		return nil
	}
	return images
}

// Status returns the service's version document, or nil.
func (c *Client) Status(ctx context.Context) *Status {
	var status Status
	if !c.readJSON(ctx, "/api/status", nil, &status) {
		return nil
	}
	return &status
}

// ContainerDetails inspects a container by id, falling back to a name
// search when the direct lookup fails: first an exact name match over the
// full container list, then a substring match. The first hit wins. Returns
// nil when nothing matches.
func (c *Client) ContainerDetails(ctx context.Context, endpointID int, target string) *container.InspectResponse {
	if !IsNonEmptyString(target) || !IsPositiveID(endpointID) {
		return nil
	}

	if details := c.inspectContainer(ctx, endpointID, target); details != nil {
		return details
	}

	containers := c.Containers(ctx, endpointID, true)
	if containers == nil {
		return nil
	}

	if id := matchContainerName(containers, target, true); id != "" {
		return c.inspectContainer(ctx, endpointID, id)
	}
	if id := matchContainerName(containers, target, false); id != "" {
		return c.inspectContainer(ctx, endpointID, id)
	}

	log.Debug().Str("target", target).Msg("No container matched by id or name")
	return nil
}

func (c *Client) inspectContainer(ctx context.Context, endpointID int, containerID string) *container.InspectResponse {
	var details container.InspectResponse
	if !c.readJSON(ctx, containerPath(endpointID, containerID, "json"), nil, &details) {
		return nil
	}
	return &details
}

// matchContainerName returns the id of the first container whose name
// matches target. List names carry a leading slash, so exact matching
// compares against both forms.
func matchContainerName(containers []container.Summary, target string, exact bool) string {
	for _, ctr := range containers {
		for _, name := range ctr.Names {
			if exact {
				if name == target || name == "/"+target {
					return ctr.ID
				}
			} else if strings.Contains(name, target) {
				return ctr.ID
			}
		}
	}
	return ""
}
