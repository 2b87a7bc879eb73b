/*
 * Copyright (c) 2026 by the Study Bench authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package backend

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"studybench/internal/config"
	"studybench/internal/domain"
)

// Client is a minimal HTTP client for the archive API. It covers the push
// and pull operations used by the desktop app and the CLI.
type Client struct {
	BaseURL string
	Token   string // bearer token
	client  *http.Client
}

// NewClient creates a new archive client. baseURL may include a trailing
// slash; it will be normalized.
func NewClient(baseURL string, token string) *Client {
	b := strings.TrimRight(baseURL, "/")
	return &Client{
		BaseURL: b,
		Token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientFromConfig builds a client from the archive section of the app
// config plus the keyring token.
func NewClientFromConfig(cfg config.ArchiveConfig, token string) *Client {
	c := NewClient(cfg.BaseURL, token)
	if cfg.TimeoutMs > 0 {
		c.client.Timeout = time.Duration(cfg.TimeoutMs) * time.Millisecond
	}
	if cfg.TLSInsecure {
		c.client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return c
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, dest any) error {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return err
	}
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server %s %s: %s", method, u.Path, resp.Status)
	}
	if dest == nil {
		return nil
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	return dec.Decode(dest)
}

// RequestToken asks the server for a bearer token for the given subject.
func (c *Client) RequestToken(ctx context.Context, subject string, ttl time.Duration) (string, error) {
	req := map[string]any{"subject": subject, "ttl_seconds": int64(ttl / time.Second)}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/token", req, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// WorkspaceInfo is the server's listing projection.
type WorkspaceInfo struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListWorkspaces returns the workspaces known to the archive.
func (c *Client) ListWorkspaces(ctx context.Context) ([]WorkspaceInfo, error) {
	var list []WorkspaceInfo
	if err := c.doJSON(ctx, http.MethodGet, "/api/workspaces", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// RegisterWorkspace upserts a workspace by name and returns its archive id.
func (c *Client) RegisterWorkspace(ctx context.Context, name string) (int64, error) {
	var resp struct {
		ID int64 `json:"id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/workspaces", map[string]any{"name": name}, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// PushLayout uploads a layout snapshot for the workspace.
func (c *Client) PushLayout(ctx context.Context, workspaceID int64, layout domain.Layout) error {
	path := fmt.Sprintf("/api/workspaces/%d/layout", workspaceID)
	return c.doJSON(ctx, http.MethodPost, path, layout, nil)
}

// LayoutEnvelope matches the server response for the latest layout snapshot.
type LayoutEnvelope struct {
	WorkspaceID int64         `json:"workspace_id"`
	CreatedAt   string        `json:"created_at"`
	Layout      domain.Layout `json:"layout"`
}

// PullLayout fetches the latest layout snapshot for the workspace.
func (c *Client) PullLayout(ctx context.Context, workspaceID int64) (*LayoutEnvelope, error) {
	var env LayoutEnvelope
	path := fmt.Sprintf("/api/workspaces/%d/layout", workspaceID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}
