package providers

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

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sethgrid/pester"

	"github.com/ja-he/rowedit/internal/model"
	"github.com/ja-he/rowedit/internal/storage"
)

// HTTPConfig configures the HTTP provider.
type HTTPConfig struct {
	// URL is the endpoint records are posted to; updates go to URL/<id>.
	URL        string
	MaxRetries int
	Timeout    time.Duration
	Header     http.Header
}

// Validate checks if the configuration is valid.
func (c *HTTPConfig) Validate() error {
	if c.URL == "" {
		return ErrMissingURL
	}
	if _, err := url.Parse(c.URL); err != nil {
		return fmt.Errorf("invalid url '%s' (%w)", c.URL, err)
	}
	return nil
}

// HTTPDoer is what HTTP uses to send requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTP persists records by posting them as JSON to a remote endpoint.
type HTTP struct {
	config HTTPConfig
	fields model.Fields
	doer   HTTPDoer
}

// NewHTTP returns an HTTP provider sending through a retrying client.
func NewHTTP(config HTTPConfig, fields model.Fields) (*HTTP, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client := pester.NewExtendedClient(&http.Client{Timeout: config.Timeout})
	client.MaxRetries = config.MaxRetries
	if client.MaxRetries < 1 {
		client.MaxRetries = 1
	}
	client.Backoff = pester.ExponentialBackoff
	client.KeepLog = true

	return &HTTP{config: config, fields: fields, doer: client}, nil
}

// WithDoer replaces the client requests are sent through.
func (p *HTTP) WithDoer(d HTTPDoer) *HTTP {
	p.doer = d
	return p
}

// Endpoint returns where the record is posted to: the configured URL for new
// records, URL/<id> for existing ones.
func (p *HTTP) Endpoint(rec model.Record) string {
	id, ok := rec.ID(p.fields.ID)
	if !ok {
		return p.config.URL
	}
	return strings.TrimRight(p.config.URL, "/") + "/" + url.PathEscape(id)
}

// Save posts the record.
// A response body holding a JSON object (optionally wrapped in "data") is
// taken as the saved record.
func (p *HTTP) Save(ctx context.Context, rec model.Record) (storage.Result, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return storage.Result{}, fmt.Errorf("could not serialize record (%w)", err)
	}

	endpoint := p.Endpoint(rec)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return storage.Result{}, fmt.Errorf("could not build request for '%s' (%w)", endpoint, err)
	}
	for k, vs := range p.config.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	log.Debug().Str("request-id", requestID).Str("url", endpoint).Msg("posting record")
	resp, err := p.doer.Do(req)
	if err != nil {
		return storage.Result{}, fmt.Errorf("could not post record to '%s' (%w)", endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return storage.Result{}, fmt.Errorf("could not read response from '%s' (%w)", endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return storage.Result{}, fmt.Errorf("%w: '%s' answered %d: %s", ErrRemote, endpoint, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	id, hadID := rec.ID(p.fields.ID)
	result := storage.Result{ID: id, Created: !hadID}
	if saved := decodeRecord(respBody); saved != nil {
		result.Data = saved
		if savedID, ok := saved.ID(p.fields.ID); ok {
			result.ID = savedID
		}
	}
	return result, nil
}

func decodeRecord(body []byte) model.Record {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil
	}
	if data, ok := obj["data"].(map[string]any); ok {
		return model.Record(data)
	}
	return model.Record(obj)
}
