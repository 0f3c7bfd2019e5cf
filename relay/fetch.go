package relay

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	ContentTypeMP4 = "video/mp4"

	// Only bounds the wait for response headers; the body is bounded by the
	// caller's context so long videos aren't cut off mid-transfer.
	defaultResponseHeaderTimeout = 30 * time.Second

	maxRedirects = 10
)

type HTTPFetcher struct {
	HTTPClient *http.Client
}

func NewHTTPFetcher() *HTTPFetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = defaultResponseHeaderTimeout
	return &HTTPFetcher{
		HTTPClient: &http.Client{
			Transport:     transport,
			CheckRedirect: httpsOnlyRedirect,
		},
	}
}

// The variant URL is checked to be https before fetching; redirects must not
// downgrade it.
func httpsOnlyRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	if req.URL.Scheme != "https" {
		return fmt.Errorf("refusing redirect to %s URL", req.URL.Scheme)
	}
	return nil
}

// Fetch opens the media at mediaURL. The returned body must be closed by the
// caller; the declared length is -1 when upstream didn't send one.
func (f *HTTPFetcher) Fetch(ctx context.Context, mediaURL string) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, 0, err
	}

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, 0, fmt.Errorf("media responded with status %d", resp.StatusCode)
	}
	return resp.Body, resp.ContentLength, nil
}

// Media is a relay-ready video: an open upstream body plus the headers it
// should be served with.
type Media struct {
	ContentType   string
	ContentLength int64
	Filename      string

	body    io.ReadCloser
	cancel  context.CancelFunc
	metrics *Metrics
	started time.Time

	read    int64
	readErr error
	closed  bool
}

func (m *Media) Read(p []byte) (int, error) {
	n, err := m.body.Read(p)
	m.read += int64(n)
	if err != nil && m.readErr == nil {
		m.readErr = err
	}
	return n, err
}

// Close releases the upstream connection. It's safe to call more than once.
func (m *Media) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	err := m.body.Close()
	m.cancel()

	outcome := OutcomeOK
	if m.readErr != io.EOF {
		outcome = OutcomeIncomplete
	}
	m.metrics.RecordStream(outcome, m.read, time.Since(m.started))
	return err
}

// Err is the upstream read error that ended the stream early, if any.
func (m *Media) Err() error {
	if m.readErr == io.EOF {
		return nil
	}
	return m.readErr
}
