package provider

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	headerAPIKey  = "X-RapidAPI-Key"
	headerAPIHost = "X-RapidAPI-Host"

	referenceParam = "code_or_id_or_url"

	// Error bodies are only kept for logging, so don't hold on to more than this
	maxDiagnosticBody = 64 << 10
)

type Client struct {
	baseURL    string
	apiKey     string
	apiHost    string
	HTTPClient *http.Client
}

func NewClient(apiKey string, apiHost string, baseURL url.URL, timeout time.Duration) *Client {
	if apiHost == "" {
		apiHost = baseURL.Host
	}
	return &Client{
		apiKey:     apiKey,
		apiHost:    apiHost,
		baseURL:    strings.TrimSuffix(baseURL.String(), "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// MediaInfo looks a post up by short code, numeric id or URL. It makes exactly
// one request; callers decide what to do with a failure.
func (c Client) MediaInfo(ctx context.Context, reference string) (*MediaInfoResponse, error) {
	url, err := url.Parse(c.baseURL + "/media_info")
	if err != nil {
		return nil, err
	}
	q := url.Query()
	q.Add(referenceParam, reference)
	url.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Add(headerAPIKey, c.apiKey)
	req.Header.Add(headerAPIHost, c.apiHost)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxDiagnosticBody))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		// The headers made it but the body didn't, which is still a transport problem
		return nil, &TransportError{Err: err}
	}

	var mir MediaInfoResponse
	if err = json.Unmarshal(body, &mir); err != nil {
		return nil, &MalformedBodyError{Err: err, Body: truncate(body)}
	}
	if mir.Status == "" {
		return nil, &MalformedBodyError{Err: errors.New("missing status field"), Body: truncate(body)}
	}
	if mir.Status == StatusOK {
		if err = checkItemsPresent(body); err != nil {
			return nil, &MalformedBodyError{Err: err, Body: truncate(body)}
		}
	}

	return &mir, nil
}

// An ok response must carry data.items, even if it's empty. Anything else
// isn't the shape we know how to read.
func checkItemsPresent(body []byte) error {
	var shape struct {
		Data *struct {
			Items json.RawMessage `json:"items"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &shape); err != nil {
		return err
	}
	if shape.Data == nil {
		return errors.New("ok response without data")
	}
	if len(shape.Data.Items) == 0 || string(shape.Data.Items) == "null" {
		return errors.New("ok response without data.items")
	}
	return nil
}

func truncate(body []byte) string {
	if len(body) > maxDiagnosticBody {
		return string(body[:maxDiagnosticBody])
	}
	return string(body)
}
