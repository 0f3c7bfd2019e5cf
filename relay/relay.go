package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/truemediaorg/reelrelay/config"
	"github.com/truemediaorg/reelrelay/model"
	"github.com/truemediaorg/reelrelay/provider"
	"github.com/truemediaorg/reelrelay/reference"

	log "github.com/sirupsen/logrus"
)

type MediaResolver interface {
	MediaInfo(ctx context.Context, reference string) (*provider.MediaInfoResponse, error)
}

type MediaFetcher interface {
	Fetch(ctx context.Context, mediaURL string) (io.ReadCloser, int64, error)
}

// Relay turns a post reference into an open video stream. It holds no
// per-request state, so a single Relay serves every request concurrently.
type Relay struct {
	resolver MediaResolver
	fetcher  MediaFetcher
	metrics  *Metrics
	validate *validator.Validate

	mediaTimeout   time.Duration
	filenamePrefix string
	now            func() time.Time
}

func NewRelay(cfg config.RelayConfig, resolver MediaResolver, fetcher MediaFetcher, metrics *Metrics) *Relay {
	if cfg.MediaTimeout <= 0 {
		cfg.MediaTimeout = config.DefaultMediaTimeout
	}
	if cfg.FilenamePrefix == "" {
		cfg.FilenamePrefix = config.DefaultFilenamePrefix
	}
	return &Relay{
		resolver:       resolver,
		fetcher:        fetcher,
		metrics:        metrics,
		validate:       NewValidator(),
		mediaTimeout:   cfg.MediaTimeout,
		filenamePrefix: cfg.FilenamePrefix,
		now:            time.Now,
	}
}

// Resolve looks the reference up and picks the variant to download.
func (r *Relay) Resolve(ctx context.Context, ref string) (model.MediaVariant, error) {
	kind, shortcode := reference.Classify(ref)
	log.WithField("referenceKind", kind).WithField("shortcode", shortcode).Debug("looking up media")

	start := time.Now()
	resp, err := r.resolver.MediaInfo(ctx, ref)
	r.metrics.RecordStage(stageLookup, time.Since(start))
	if err != nil {
		relayErr := classifyLookupError(err)
		r.metrics.RecordFailure(relayErr.Kind)
		return model.MediaVariant{}, relayErr
	}

	variant, err := SelectVariant(resp)
	if err != nil {
		r.metrics.RecordFailure(KindNoPlayableVariant)
		return model.MediaVariant{}, err
	}
	log.WithField("width", variant.Width).WithField("height", variant.Height).WithField("type", variant.Type).Debug("selected variant")
	return variant, nil
}

// Open starts the media download for a selected variant. The fetch is bound
// to ctx, so cancelling ctx (e.g. the caller hanging up) tears down the
// upstream connection. Callers must Close the returned Media.
func (r *Relay) Open(ctx context.Context, variant model.MediaVariant) (*Media, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, r.mediaTimeout)

	start := time.Now()
	body, length, err := r.fetcher.Fetch(fetchCtx, variant.URL)
	r.metrics.RecordStage(stageFetch, time.Since(start))
	if err != nil {
		cancel()
		r.metrics.RecordFailure(KindMediaFetchFailed)
		return nil, newError(KindMediaFetchFailed, err)
	}

	return &Media{
		ContentType:   ContentTypeMP4,
		ContentLength: length,
		Filename:      r.filename(),
		body:          body,
		cancel:        cancel,
		metrics:       r.metrics,
		started:       time.Now(),
	}, nil
}

// Download runs the whole pipeline: lookup, variant selection, media fetch.
func (r *Relay) Download(ctx context.Context, ref string) (*Media, error) {
	variant, err := r.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	return r.Open(ctx, variant)
}

func (r *Relay) filename() string {
	return fmt.Sprintf("%s_%d.mp4", r.filenamePrefix, r.now().UnixNano())
}

func classifyLookupError(err error) *Error {
	var httpErr *provider.HTTPError
	var malformedErr *provider.MalformedBodyError
	switch {
	case errors.As(err, &httpErr):
		return newError(KindUpstreamHTTPError, err)
	case errors.As(err, &malformedErr):
		return newError(KindUpstreamMalformedBody, err)
	default:
		return newError(KindUpstreamUnreachable, err)
	}
}
