package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zhouzirui/items-api/backend/internal/model/item"
	"github.com/zhouzirui/items-api/backend/internal/service/events"
	"github.com/zhouzirui/items-api/backend/pkg/utils"
)

// apiError is a non-2xx answer from the server.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

type client struct {
	base string
	http *http.Client
}

func newClient(base string) *client {
	return &client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

func itemPath(name string) string {
	return "/items/" + url.PathEscape(name)
}

func (c *client) List(ctx context.Context) ([]item.Item, error) {
	var out []item.Item
	err := c.do(ctx, http.MethodGet, "/items", nil, &out)
	return out, err
}

func (c *client) Get(ctx context.Context, name string) (item.Item, error) {
	var out item.Item
	err := c.do(ctx, http.MethodGet, itemPath(name), nil, &out)
	return out, err
}

func (c *client) Add(ctx context.Context, in item.CreateInput) (item.Item, error) {
	var out struct {
		Added item.Item `json:"added"`
	}
	err := c.do(ctx, http.MethodPost, "/items", in, &out)
	return out.Added, err
}

func (c *client) Update(ctx context.Context, name string, in item.UpdateInput) (item.Item, error) {
	var out struct {
		Updated item.Item `json:"updated"`
	}
	err := c.do(ctx, http.MethodPatch, itemPath(name), in, &out)
	return out.Updated, err
}

func (c *client) Delete(ctx context.Context, name string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, http.MethodDelete, itemPath(name), nil, &out)
	return out.Message, err
}

// Watch streams change events from the WebSocket feed until ctx is done
// or the connection drops.
func (c *client) Watch(ctx context.Context, fn func(events.Event) error) error {
	wsURL, err := websocketURL(c.base)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", wsURL, err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		var ev events.Event
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("change feed closed: %w", err)
		}
		if err := fn(ev); err != nil {
			return err
		}
	}
}

func websocketURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid address %q: %w", base, err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/events/ws"
	return u.String(), nil
}

func (c *client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload utils.ErrorBody
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Error == "" {
			payload.Error = http.StatusText(resp.StatusCode)
		}
		return &apiError{Status: resp.StatusCode, Message: payload.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
