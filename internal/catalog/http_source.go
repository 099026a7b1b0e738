package catalog

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/Lixing-Zhang/kart-challenge/storefront/internal/catalog"

var (
	ErrNoURLs      = errors.New("no catalog URLs configured")
	ErrTooLarge    = errors.New("catalog response exceeds size limit")
	ErrAllFailed   = errors.New("every catalog URL failed")
	ErrBadResponse = errors.New("unexpected catalog response")
)

// HTTPSource fetches JSON record arrays from one or more URLs concurrently.
// Files ending in .gz (or served as application/gzip) are decompressed.
type HTTPSource struct {
	urls     []string
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
	logger   *slog.Logger
	tracer   trace.Tracer
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHTTPClient overrides the default client. The client is used as is and
// never modified.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) { s.client = c }
}

// WithTimeout bounds each URL fetch, body included. Zero disables the bound.
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPSource) { s.timeout = d }
}

// WithMaxBytes caps how much of each response body is read.
func WithMaxBytes(n int64) HTTPOption {
	return func(s *HTTPSource) { s.maxBytes = n }
}

// WithLogger sets the logger used for per-URL failures and rejected records.
func WithLogger(l *slog.Logger) HTTPOption {
	return func(s *HTTPSource) { s.logger = l }
}

// NewHTTPSource creates a source for the given URLs.
func NewHTTPSource(urls []string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		urls:     urls,
		client:   &http.Client{},
		timeout:  30 * time.Second,
		maxBytes: 10 << 20,
		logger:   slog.Default(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// fetchResult holds the outcome of one URL.
type fetchResult struct {
	index   int
	records []Record
	err     error
}

// FetchCatalog loads every URL concurrently and concatenates the records in
// URL order. A failing URL is logged and skipped; the call only fails when
// no URL succeeds.
func (s *HTTPSource) FetchCatalog(ctx context.Context) ([]Record, error) {
	if len(s.urls) == 0 {
		return nil, ErrNoURLs
	}

	resultChan := make(chan fetchResult, len(s.urls))
	var wg sync.WaitGroup

	for i, url := range s.urls {
		wg.Add(1)
		go func(index int, url string) {
			defer wg.Done()

			records, err := s.fetch(ctx, url)
			resultChan <- fetchResult{index: index, records: records, err: err}
		}(i, url)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]fetchResult, len(s.urls))
	for result := range resultChan {
		results[result.index] = result
	}

	var (
		records  []Record
		firstErr error
		ok       int
	)
	for i, result := range results {
		if result.err != nil {
			s.logger.Warn("catalog url failed", "url", s.urls[i], "error", result.err)
			if firstErr == nil {
				firstErr = result.err
			}
			continue
		}
		ok++
		records = append(records, result.records...)
	}

	if ok == 0 {
		return nil, errors.Wrap(ErrAllFailed, firstErr.Error())
	}
	return records, nil
}

func (s *HTTPSource) fetch(ctx context.Context, url string) (records []Record, err error) {
	ctx, span := s.tracer.Start(ctx, "catalog.fetch", trace.WithAttributes(attribute.String("catalog.url", url)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Int("catalog.records", len(records)))
		}
		span.End()
	}()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "download catalog")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrap(ErrBadResponse, fmt.Sprintf("status code %d", resp.StatusCode))
	}

	var body io.Reader = resp.Body
	if strings.HasSuffix(url, ".gz") || resp.Header.Get("Content-Type") == "application/gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, errors.Wrap(err, "create gzip reader")
		}
		defer gz.Close()
		body = gz
	}

	data, err := io.ReadAll(io.LimitReader(body, s.maxBytes+1))
	if err != nil {
		return nil, errors.Wrap(err, "read catalog")
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrTooLarge
	}

	records, rejected, err := Decode(data)
	if err != nil {
		return nil, err
	}
	for _, r := range rejected {
		s.logger.Warn("dropping undecodable catalog record", "url", url, "index", r.Index, "error", r.Err)
	}

	return records, nil
}
