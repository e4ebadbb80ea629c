// Package publish uploads dashboards to a Grafana server.
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"dashboard-converter/internal/diagnostic"
	"dashboard-converter/node"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvURL      = "GRAFANA_URL"
	EnvUser     = "GRAFANA_USER"
	EnvPassword = "GRAFANA_PW"
)

// DefaultTimeout bounds one upload.
const DefaultTimeout = 30 * time.Second

// dashboardsPath is the dashboard create/update endpoint below the server URL.
const dashboardsPath = "/api/dashboards/db"

// ErrRejected is returned when the server answers an upload with an error status.
var ErrRejected = errors.New("dashboard rejected")

// Config locates the server and the target folder.
type Config struct {
	// URL is the Grafana base URL, sub path included.
	URL      string
	User     string
	Password string
	// FolderUID is the folder dashboards are stored in. Empty means General.
	FolderUID string
	// Overwrite replaces a dashboard with the same UID or title.
	Overwrite bool
	Timeout   time.Duration
}

// ConfigFromEnv reads the server and credentials from the environment.
func ConfigFromEnv() (Config, error) {
	c := Config{
		URL:      os.Getenv(EnvURL),
		User:     os.Getenv(EnvUser),
		Password: os.Getenv(EnvPassword),
	}

	var missing []string
	for _, v := range [][2]string{{EnvURL, c.URL}, {EnvUser, c.User}, {EnvPassword, c.Password}} {
		if v[1] == "" {
			missing = append(missing, v[0])
		}
	}

	if len(missing) > 0 {
		return c, diagnostic.NewConfigError(diagnostic.CodeConfigMissing,
			"Grafana settings not set in the environment: "+strings.Join(missing, ", "), nil)
	}

	return c, nil
}

// Client uploads dashboards.
type Client struct {
	config     Config
	httpClient *http.Client
}

// New creates a Client. A nil httpClient gets one with config.Timeout.
func New(config Config, httpClient *http.Client) (*Client, error) {
	if config.URL == "" {
		return nil, diagnostic.NewConfigError(diagnostic.CodeConfigMissing, "Grafana URL not set", nil)
	}

	config.URL = strings.TrimSuffix(config.URL, "/")

	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	return &Client{config: config, httpClient: httpClient}, nil
}

type uploadRequest struct {
	Dashboard *node.Node `json:"dashboard"`
	FolderUID string     `json:"folderUid,omitempty"`
	Message   string     `json:"message"`
	Overwrite bool       `json:"overwrite"`
}

// Result is the server's answer to an accepted upload.
type Result struct {
	ID      int    `json:"id"`
	UID     string `json:"uid"`
	URL     string `json:"url"`
	Status  string `json:"status"`
	Version int    `json:"version"`
}

type errorResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Publish uploads doc.
func (c *Client) Publish(ctx context.Context, doc *node.Node) (*Result, error) {
	if !doc.IsMap() || doc.Len() == 0 {
		return nil, diagnostic.NewTransformError(diagnostic.CodeEmptyDocument, "the dashboard to publish is empty", nil)
	}

	body, err := json.Marshal(uploadRequest{
		Dashboard: doc,
		FolderUID: c.config.FolderUID,
		Message:   "Upload of " + doc.Get("title").Text(),
		Overwrite: c.config.Overwrite,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL+dashboardsPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if c.config.User != "" {
		req.SetBasicAuth(c.config.User, c.config.Password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		if json.Unmarshal(data, &e) != nil || e.Message == "" {
			e.Message = strings.TrimSpace(string(data))
		}

		return nil, fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, e.Message)
	}

	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &res, nil
}
