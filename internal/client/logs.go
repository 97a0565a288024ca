package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"gphotos-admin/internal/constants"
	"gphotos-admin/internal/errors"
	"gphotos-admin/internal/logger"
	"gphotos-admin/internal/types"
)

// streamBuffer is how many undelivered lines a stream holds before the
// reader blocks
const streamBuffer = 256

// Logs returns the current log snapshot of a container
func (c *Client) Logs(ctx context.Context, containerID string) (string, error) {
	var snapshot types.LogsSnapshot
	path := fmt.Sprintf("/api/container/%s/logs", segment(containerID))
	if err := c.getJSON(ctx, path, &snapshot); err != nil {
		return "", err
	}
	if snapshot.Error != "" {
		return "", errors.APIStatusError(http.MethodGet, path, http.StatusOK, snapshot.Error)
	}
	return snapshot.Logs, nil
}

// StreamLogs opens the server-sent event stream of a container and returns
// a channel of log lines. The channel is closed when the stream ends or ctx
// is cancelled; cancelling ctx is the only way to stop a live stream.
func (c *Client) StreamLogs(ctx context.Context, containerID string) (<-chan string, error) {
	path := fmt.Sprintf("/api/container/%s/logs/stream", segment(containerID))
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, transportError(ctx, http.MethodGet, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		return nil, errors.APIStatusError(http.MethodGet, path, resp.StatusCode, serverMessage(data))
	}

	lines := make(chan string, streamBuffer)
	go func() {
		defer close(lines)
		defer resp.Body.Close()

		err := ReadEvents(resp.Body, func(data string) bool {
			select {
			case lines <- data:
				return true
			case <-ctx.Done():
				return false
			}
		})
		if err != nil && ctx.Err() == nil {
			logger.WithError(err).WithField("container", containerID).Warn("Log stream ended with error")
		}
	}()

	return lines, nil
}

// ReadEvents parses a text/event-stream body and calls emit with the data of
// every dispatched event. Multi-line data fields are joined with "\n".
// Reading stops when emit returns false or the body ends.
func ReadEvents(r io.Reader, emit func(data string) bool) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), constants.MaxSSELineBytes)

	var data []string
	hasData := false
	dispatch := func() bool {
		if !hasData {
			return true
		}
		payload := strings.Join(data, "\n")
		data = data[:0]
		hasData = false
		return emit(payload)
	}

	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		switch {
		case line == "":
			if !dispatch() {
				return nil
			}
		case strings.HasPrefix(line, ":"):
			// comment / keep-alive
		default:
			field, value, found := strings.Cut(line, ":")
			if !found {
				value = ""
			}
			value = strings.TrimPrefix(value, " ")
			if field == "data" {
				data = append(data, value)
				hasData = true
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	dispatch()
	return nil
}
