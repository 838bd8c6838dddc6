// Package client is the data plumbing behind every screen: a generic record
// accessor against the remote table/column endpoints, the per-screen
// aggregate view fetchers, bookmark toggling, uploads, auth and payment.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
)

// Row is the column subset returned for a single record.
type Row map[string]any

type Client struct {
	BaseURL string
	HTTP    *http.Client
	log     *zerolog.Logger
}

func New(baseURL string, log *zerolog.Logger) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    http.DefaultClient,
		log:     log,
	}
}

// FetchFields returns the requested columns of the row whose idColumn equals
// id. A nil Row means "not loaded"; the failure is logged and callers are
// expected to keep rendering their previous state.
func (c *Client) FetchFields(ctx context.Context, table, id, idColumn string, fields []string) (Row, error) {
	body, err := c.postJSON(ctx, "/data/fetch", map[string]any{
		"table":         table,
		"id":            id,
		"idColumn":      idColumn,
		"columnTargets": fields,
	})
	if err != nil {
		c.log.Error().Err(err).Str("table", table).Str("id", id).Msg("fetchFields failed")
		return nil, err
	}

	row := make(Row, len(fields))
	for _, field := range fields {
		row[field] = body[field]
	}
	return row, nil
}

// SaveField updates exactly one column of exactly one row. A nil value is
// rejected locally, without touching the network, so a half-built form can
// never null out persisted data. Success is the response body's explicit
// boolean, not the HTTP status.
func (c *Client) SaveField(ctx context.Context, table, id, idColumn, field string, value any) bool {
	if value == nil {
		c.log.Warn().Str("table", table).Str("field", field).Msg("saveField rejected null value")
		return false
	}

	_, err := c.postJSON(ctx, "/data/save", map[string]any{
		"table":    table,
		"id":       id,
		"idColumn": idColumn,
		"target":   field,
		"data":     value,
	})
	if err != nil {
		c.log.Error().Err(err).Str("table", table).Str("field", field).Msg("saveField failed")
		return false
	}
	return true
}

// InsertRow inserts a whole row and returns the generated identifier.
func (c *Client) InsertRow(ctx context.Context, table string, data Row) (string, bool) {
	body, err := c.postJSON(ctx, "/data/insert", map[string]any{
		"table": table,
		"data":  data,
	})
	if err != nil {
		c.log.Error().Err(err).Str("table", table).Msg("insertRow failed")
		return "", false
	}
	id, ok := body["insertId"].(string)
	if !ok || id == "" {
		c.log.Error().Str("table", table).Msg("insertRow response missing insertId")
		return "", false
	}
	return id, true
}

func (c *Client) DeleteRow(ctx context.Context, table, id, idColumn string) bool {
	query := url.Values{}
	query.Set("table", table)
	query.Set("id", id)
	query.Set("column", idColumn)

	if _, err := c.getJSON(ctx, "/data/delete", query); err != nil {
		c.log.Error().Err(err).Str("table", table).Str("id", id).Msg("deleteRow failed")
		return false
	}
	return true
}

// envelope errors carry the body's message so call sites can log something
// more useful than a status code.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) (map[string]any, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values) (map[string]any, error) {
	target := c.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (map[string]any, error) {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	success, _ := body["success"].(bool)
	if !success {
		msg, _ := body["message"].(string)
		return nil, &apiError{Status: resp.StatusCode, Message: msg}
	}
	return body, nil
}
