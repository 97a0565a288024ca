package client

import (
	"context"
	"net/http"

	"gphotos-admin/internal/types"
)

// AvailableProfiles lists profiles that have no running container
func (c *Client) AvailableProfiles(ctx context.Context) ([]types.Profile, error) {
	var profiles []types.Profile
	if err := c.getJSON(ctx, "/api/available-profiles", &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// GetConfig returns the stored configuration of a profile
func (c *Client) GetConfig(ctx context.Context, name string) (*types.Configuration, error) {
	var cfg types.Configuration
	if err := c.getJSON(ctx, "/api/get-config/"+segment(name), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// CreateCompose persists a profile configuration as its compose file
func (c *Client) CreateCompose(ctx context.Context, name string, cfg types.Configuration) (*types.ActionResult, error) {
	return c.doAction(ctx, http.MethodPost, "/api/create-compose/"+segment(name), cfg)
}

// StartProfile starts a configured but stopped profile
func (c *Client) StartProfile(ctx context.Context, name string) (*types.ActionResult, error) {
	return c.doAction(ctx, http.MethodPost, "/api/start-profile/"+segment(name), nil)
}

// RecreateProfile stops, removes and recreates a profile's container from its compose file
func (c *Client) RecreateProfile(ctx context.Context, name string) (*types.ActionResult, error) {
	return c.doAction(ctx, http.MethodPost, "/api/recreate-profile/"+segment(name), nil)
}

// CreateNewProfile allocates a new profile identity
func (c *Client) CreateNewProfile(ctx context.Context, displayName string) (*types.ActionResult, error) {
	return c.doAction(ctx, http.MethodPost, "/api/create-new-profile", types.CreateProfileRequest{Name: displayName})
}

// DeleteProfile removes a profile's container and compose file
func (c *Client) DeleteProfile(ctx context.Context, name string) (*types.ActionResult, error) {
	return c.doAction(ctx, http.MethodDelete, "/api/delete-profile/"+segment(name), nil)
}

// DeleteProfileFiles removes a profile's directory and compose file
func (c *Client) DeleteProfileFiles(ctx context.Context, name string) (*types.ActionResult, error) {
	return c.doAction(ctx, http.MethodDelete, "/api/delete-profile-files/"+segment(name), nil)
}

// BrowseDirectories lists the sub-directories of path on the backend host
func (c *Client) BrowseDirectories(ctx context.Context, path string) (*types.BrowseResult, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/browse-directories", types.BrowseRequest{Path: path})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result types.BrowseResult
	if err := decodeOrStatus(resp, "/api/browse-directories", &result); err != nil {
		return nil, err
	}
	return &result, nil
}
