package plex

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/plexdl/plexdl/internal/playlist"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "plexdl/1.0"
	clientID       = "plexdl-cli"
)

// Client is a thin Plex HTTP API client covering the playlist surface:
// identity check, playlist listing, item listing and media part streaming.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	// streamClient carries no timeout: http.Client.Timeout covers the whole
	// body read, which would truncate large media downloads mid-stream.
	streamClient *http.Client
	logger       *slog.Logger
}

func NewClient(baseURL, token string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:      baseURL,
		token:        token,
		httpClient:   &http.Client{Timeout: timeout},
		streamClient: &http.Client{},
		logger:       logger,
	}
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Plex-Token", c.token)
	req.Header.Set("X-Plex-Client-Identifier", clientID)
	req.Header.Set("X-Plex-Product", "plexdl")
	req.Header.Set("User-Agent", userAgent)
}

// doRequest performs an authenticated request and returns the response body.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	op := method + " " + path

	reqURL := c.baseURL + path
	if query != nil {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(req)

	c.logger.DebugContext(ctx, "plex request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectionError{Operation: op, Err: err}
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &ConnectionError{Operation: op, StatusCode: resp.StatusCode, Err: ErrTokenRejected}
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.ErrorContext(ctx, "plex request error", "status", resp.StatusCode, "body", string(body))

		return nil, &ConnectionError{Operation: op, StatusCode: resp.StatusCode}
	}

	return body, nil
}

func (c *Client) parseContainer(body []byte) (*MediaContainer, error) {
	var resp APIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &resp.MediaContainer, nil
}

// CheckConnection verifies the host is reachable and the token is accepted.
// Depending on server version /identity answers in XML or JSON regardless of
// the Accept header, so the body is sniffed before decoding.
func (c *Client) CheckConnection(ctx context.Context) error {
	body, err := c.doRequest(ctx, http.MethodGet, "/identity", nil)
	if err != nil {
		return err
	}

	machineIdentifier, version, err := parseIdentity(body)
	if err != nil {
		return fmt.Errorf("failed to parse identity response: %w", err)
	}

	c.logger.InfoContext(ctx, "connected to plex server",
		"machine_identifier", machineIdentifier,
		"version", version,
	)

	return nil
}

func parseIdentity(body []byte) (machineIdentifier, version string, err error) {
	trimmed := bytes.TrimSpace(body)

	if len(trimmed) > 0 && trimmed[0] == '<' {
		var identity struct {
			XMLName           xml.Name `xml:"MediaContainer"`
			MachineIdentifier string   `xml:"machineIdentifier,attr"`
			Version           string   `xml:"version,attr"`
		}

		if err := xml.Unmarshal(trimmed, &identity); err != nil {
			return "", "", err
		}

		return identity.MachineIdentifier, identity.Version, nil
	}

	var identity struct {
		MediaContainer struct {
			MachineIdentifier string `json:"machineIdentifier"`
			Version           string `json:"version"`
		} `json:"MediaContainer"`
	}

	if err := json.Unmarshal(trimmed, &identity); err != nil {
		return "", "", err
	}

	return identity.MediaContainer.MachineIdentifier, identity.MediaContainer.Version, nil
}

// Playlists returns summaries for every playlist on the server.
func (c *Client) Playlists(ctx context.Context) ([]playlist.Summary, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/playlists", nil)
	if err != nil {
		return nil, err
	}

	container, err := c.parseContainer(body)
	if err != nil {
		return nil, err
	}

	return mapSummaries(container.Metadata), nil
}

// PlaylistItems returns the playlist's items in server order. Items without
// a downloadable media part are skipped with a warning.
func (c *Client) PlaylistItems(ctx context.Context, ratingKey string) ([]playlist.Item, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/playlists/"+ratingKey+"/items", nil)
	if err != nil {
		return nil, err
	}

	container, err := c.parseContainer(body)
	if err != nil {
		return nil, err
	}

	items := make([]playlist.Item, 0, len(container.Metadata))

	for _, md := range container.Metadata {
		item, ok := mapItem(md)
		if !ok {
			c.logger.WarnContext(ctx, "skipping item with no media part", "title", md.Title, "rating_key", md.RatingKey)

			continue
		}

		items = append(items, item)
	}

	return items, nil
}

// Download streams the media part at partKey. The caller owns the returned
// reader. The reported size is -1 when the server does not announce one.
func (c *Client) Download(ctx context.Context, partKey string) (io.ReadCloser, int64, error) {
	op := "GET " + partKey

	reqURL := c.baseURL + partKey + "?download=1"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(req)

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, 0, &ConnectionError{Operation: op, Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()

		return nil, 0, &ConnectionError{Operation: op, StatusCode: resp.StatusCode, Err: ErrTokenRejected}
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()

		return nil, 0, &ConnectionError{Operation: op, StatusCode: resp.StatusCode}
	}

	return resp.Body, resp.ContentLength, nil
}
