package client

import (
	"context"
	"fmt"
	"net/http"

	"gphotos-admin/internal/types"
)

// Container operations

// ListContainers lists all sync worker containers
func (c *Client) ListContainers(ctx context.Context) ([]types.Container, error) {
	var containers []types.Container
	if err := c.getJSON(ctx, "/api/containers", &containers); err != nil {
		return nil, err
	}
	return containers, nil
}

// Stats returns the aggregate container counts
func (c *Client) Stats(ctx context.Context) (*types.Stats, error) {
	var stats types.Stats
	if err := c.getJSON(ctx, "/api/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// StartContainer starts a container
func (c *Client) StartContainer(ctx context.Context, containerID string) (*types.ActionResult, error) {
	return c.containerAction(ctx, containerID, "start")
}

// StopContainer stops a container
func (c *Client) StopContainer(ctx context.Context, containerID string) (*types.ActionResult, error) {
	return c.containerAction(ctx, containerID, "stop")
}

// RestartContainer restarts a container
func (c *Client) RestartContainer(ctx context.Context, containerID string) (*types.ActionResult, error) {
	return c.containerAction(ctx, containerID, "restart")
}

func (c *Client) containerAction(ctx context.Context, containerID, action string) (*types.ActionResult, error) {
	path := fmt.Sprintf("/api/container/%s/%s", segment(containerID), action)
	return c.doAction(ctx, http.MethodPost, path, nil)
}
