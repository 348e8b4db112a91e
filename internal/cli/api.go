package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

var ErrRoomNotFound = errors.New("room not found")

// StatusError is a non-200 answer from the server.
type StatusError struct {
	Path   string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %s", e.Path, e.Status)
}

type Room struct {
	ID          string `json:"roomId"`
	UserCount   int    `json:"userCount"`
	QueueLength int    `json:"queueLength"`
}

type ICEServer struct {
	URLs       []string `json:"urls"`
	Username   string   `json:"username,omitempty"`
	Credential any      `json:"credential,omitempty"`
}

type apiClient struct {
	base string
	http *http.Client
}

func newAPIClient(base string, c *http.Client) *apiClient {
	if c == nil {
		c = http.DefaultClient
	}
	return &apiClient{base: strings.TrimSuffix(base, "/"), http: c}
}

func (a *apiClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.base+path, nil)
	if err != nil {
		return err
	}
	resp, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Path: path, Code: resp.StatusCode, Status: resp.Status}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (a *apiClient) Rooms(ctx context.Context) ([]Room, error) {
	var body struct {
		Rooms []Room `json:"rooms"`
	}
	if err := a.getJSON(ctx, "/api/rooms", &body); err != nil {
		return nil, err
	}
	return body.Rooms, nil
}

func (a *apiClient) Room(ctx context.Context, id string) (Room, error) {
	var r Room
	err := a.getJSON(ctx, "/api/rooms/"+url.PathEscape(id), &r)
	var se *StatusError
	if errors.As(err, &se) && se.Code == http.StatusNotFound {
		return r, ErrRoomNotFound
	}
	return r, err
}

func (a *apiClient) ICEServers(ctx context.Context) ([]ICEServer, error) {
	var body struct {
		ICEServers []ICEServer `json:"iceServers"`
	}
	if err := a.getJSON(ctx, "/api/ice-servers", &body); err != nil {
		return nil, err
	}
	return body.ICEServers, nil
}
