package availability

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/benithors/dotprovision/internal/metrics"
)

type Status string

const (
	// StatusActive means the domain is served by the DNS provider. A freshly
	// provisioned domain with no origin content answers 404.
	StatusActive      Status = "active"
	StatusUnavailable Status = "unavailable"
)

type Result struct {
	URL        string        `json:"url"`
	Status     Status        `json:"status"`
	HTTPStatus int           `json:"http_status,omitempty"`
	Error      string        `json:"error,omitempty"`
	Duration   time.Duration `json:"-"`
}

type Summary struct {
	Total       int `json:"total"`
	Active      int `json:"active"`
	Unavailable int `json:"unavailable"`
}

type Options struct {
	HTTPClient *http.Client
	Timeout    time.Duration
	UserAgent  string
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
}

type Checker struct {
	opts Options
	http *http.Client
	log  *slog.Logger
}

func NewChecker(opts Options) *Checker {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if strings.TrimSpace(opts.UserAgent) == "" {
		opts.UserAgent = "dotprovision"
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Checker{opts: opts, http: hc, log: opts.Logger}
}

// Check probes every URL in order, one at a time, and returns the counts.
func (c *Checker) Check(ctx context.Context, urls []string) Summary {
	s := Summary{Total: len(urls)}
	for _, u := range urls {
		r := c.Probe(ctx, u)
		if r.Status == StatusActive {
			s.Active++
		} else {
			s.Unavailable++
		}
	}
	return s
}

// Probe issues one GET. Only an exact 404 counts as active; any other status
// or a transport failure is unavailable.
func (c *Checker) Probe(ctx context.Context, url string) (r Result) {
	start := time.Now()
	r = Result{URL: url, Status: StatusUnavailable}
	defer func() {
		r.Duration = time.Since(start)
		c.opts.Metrics.IncrementProbe(string(r.Status))
		c.log.Debug("probed url", "url", url, "status", r.Status, "http_status", r.HTTPStatus, "err", r.Error, "duration", r.Duration)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))

	r.HTTPStatus = resp.StatusCode
	if resp.StatusCode == http.StatusNotFound {
		r.Status = StatusActive
	}
	return r
}
