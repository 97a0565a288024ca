package client

import (
	"context"
	"net/http"

	"gphotos-admin/internal/types"
)

// Credential capture runs a VNC-exposed browser inside the worker image.
// The backend runs one capture session at a time, so StopAuth takes no profile.

// CheckAuth reports whether a profile holds stored credentials
func (c *Client) CheckAuth(ctx context.Context, name string) (*types.AuthStatus, error) {
	var status types.AuthStatus
	if err := c.getJSON(ctx, "/api/check-auth/"+segment(name), &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// StartAuth starts a first-time credential capture session
func (c *Client) StartAuth(ctx context.Context, name string) (*types.ActionResult, error) {
	return c.doAction(ctx, http.MethodPost, "/api/start-auth/"+segment(name), nil)
}

// ReauthProfile starts a credential capture session for an existing profile
func (c *Client) ReauthProfile(ctx context.Context, name string) (*types.ActionResult, error) {
	return c.doAction(ctx, http.MethodPost, "/api/reauth-profile/"+segment(name), nil)
}

// StopAuth ends the capture session, keeping the captured credentials
func (c *Client) StopAuth(ctx context.Context) (*types.ActionResult, error) {
	return c.doAction(ctx, http.MethodPost, "/api/stop-auth", nil)
}
