package cloudflare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/benithors/dotprovision/internal/dnsprovider"
	"github.com/benithors/dotprovision/internal/remote"
)

const (
	defaultBaseURL = "https://api.cloudflare.com"
	providerName   = "cloudflare"
)

type Options struct {
	Email   string
	APIKey  string
	BaseURL string
	Timeout time.Duration

	UserAgent string
	Logger    *slog.Logger
}

type Client struct {
	opts Options
	http *http.Client
	log  *slog.Logger
}

var _ dnsprovider.Client = (*Client)(nil)

func NewClient(opts Options) (*Client, error) {
	opts.Email = strings.TrimSpace(opts.Email)
	opts.APIKey = strings.TrimSpace(opts.APIKey)
	if opts.Email == "" || opts.APIKey == "" {
		return nil, fmt.Errorf("cloudflare: missing credentials (set CLOUDFLARE_EMAIL and CLOUDFLARE_API_KEY)")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "dotprovision/dns-cloudflare"
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		opts: opts,
		http: &http.Client{Timeout: opts.Timeout},
		log:  opts.Logger.With("provider", providerName),
	}, nil
}

func (c *Client) Name() string { return providerName }

func (c *Client) CreateZone(ctx context.Context, domainName string) (dnsprovider.Zone, error) {
	domainName = strings.TrimSpace(domainName)
	if domainName == "" {
		return dnsprovider.Zone{}, fmt.Errorf("cloudflare: empty domain")
	}

	var z zoneResult
	raw, err := c.do(ctx, "create zone", http.MethodPost, "/client/v4/zones", map[string]string{"name": domainName}, &z)
	if err != nil {
		return dnsprovider.Zone{}, err
	}
	if strings.TrimSpace(z.ID) == "" {
		return dnsprovider.Zone{}, remote.NewEmpty(providerName, "create zone", http.StatusOK, string(raw))
	}
	return dnsprovider.Zone{
		ID:          z.ID,
		Name:        z.Name,
		Status:      z.Status,
		NameServers: z.NameServers,
	}, nil
}

// zonesPerPage is the largest page size the zones endpoint accepts.
const zonesPerPage = 50

// ListZones returns every zone on the account, following pagination.
func (c *Client) ListZones(ctx context.Context) ([]dnsprovider.Zone, error) {
	var out []dnsprovider.Zone
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("per_page", strconv.Itoa(zonesPerPage))

		var batch []zoneResult
		raw, err := c.do(ctx, "list zones", http.MethodGet, "/client/v4/zones?"+q.Encode(), nil, &batch)
		if err != nil {
			return nil, err
		}
		for _, z := range batch {
			out = append(out, dnsprovider.Zone{
				ID:          z.ID,
				Name:        z.Name,
				Status:      z.Status,
				NameServers: z.NameServers,
			})
		}

		var env envelope
		_ = json.Unmarshal(raw, &env)
		if len(batch) == 0 || env.ResultInfo == nil || page >= env.ResultInfo.TotalPages {
			return out, nil
		}
	}
}

func (c *Client) CreateRecord(ctx context.Context, zoneID string, rec dnsprovider.Record) (dnsprovider.Record, error) {
	if strings.TrimSpace(zoneID) == "" {
		return dnsprovider.Record{}, fmt.Errorf("cloudflare: empty zone id")
	}
	rec.ID = ""

	var out dnsprovider.Record
	raw, err := c.do(ctx, "create record", http.MethodPost, recordsPath(zoneID), rec, &out)
	if err != nil {
		return dnsprovider.Record{}, err
	}
	if strings.TrimSpace(out.ID) == "" {
		return dnsprovider.Record{}, remote.NewEmpty(providerName, "create record", http.StatusOK, string(raw))
	}
	return out, nil
}

func (c *Client) ListRecords(ctx context.Context, zoneID string) ([]dnsprovider.Record, error) {
	if strings.TrimSpace(zoneID) == "" {
		return nil, fmt.Errorf("cloudflare: empty zone id")
	}
	var out []dnsprovider.Record
	if _, err := c.do(ctx, "list records", http.MethodGet, recordsPath(zoneID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteRecord(ctx context.Context, zoneID, recordID string) error {
	if strings.TrimSpace(zoneID) == "" || strings.TrimSpace(recordID) == "" {
		return fmt.Errorf("cloudflare: zone id and record id are required")
	}
	_, err := c.do(ctx, "delete record", http.MethodDelete, recordsPath(zoneID)+"/"+url.PathEscape(recordID), nil, nil)
	return err
}

func recordsPath(zoneID string) string {
	return "/client/v4/zones/" + url.PathEscape(zoneID) + "/dns_records"
}

// do sends one request, unwraps the {success, errors, result} envelope and
// decodes result into out (when non-nil). It returns the raw body.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) ([]byte, error) {
	u := strings.TrimRight(c.opts.BaseURL, "/") + path

	var reqBody io.Reader
	if method == http.MethodPost {
		if in == nil {
			in = struct{}{}
		}
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("cloudflare: encode %s: %w", op, err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("cloudflare: %s: %w", op, err)
	}
	req.Header.Set("x-auth-email", c.opts.Email)
	req.Header.Set("x-auth-key", c.opts.APIKey)
	req.Header.Set("accept", "application/json")
	req.Header.Set("user-agent", c.opts.UserAgent)
	if reqBody != nil {
		req.Header.Set("content-type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("network error", "op", op, "url", u, "err", err)
		return nil, remote.NewTransport(providerName, op, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		c.log.Warn("read error", "op", op, "url", u, "err", err)
		return nil, remote.NewTransport(providerName, op, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(b, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 || (decodeErr == nil && !env.Success) {
		c.log.Warn("request failed", "op", op, "url", u, "status", resp.StatusCode)
		return nil, remote.NewApplication(providerName, op, resp.StatusCode, env.message(), string(b))
	}
	if decodeErr != nil {
		e := remote.NewEmpty(providerName, op, resp.StatusCode, string(b))
		e.Err = fmt.Errorf("decode: %w", decodeErr)
		return nil, e
	}

	if out != nil {
		if len(env.Result) == 0 || string(env.Result) == "null" {
			return nil, remote.NewEmpty(providerName, op, resp.StatusCode, string(b))
		}
		if err := json.Unmarshal(env.Result, out); err != nil {
			e := remote.NewEmpty(providerName, op, resp.StatusCode, string(b))
			e.Err = fmt.Errorf("decode result: %w", err)
			return nil, e
		}
	}
	return b, nil
}

type envelope struct {
	Success  bool            `json:"success"`
	Errors   []apiMessage    `json:"errors"`
	Messages []apiMessage    `json:"messages"`
	Result   json.RawMessage `json:"result"`

	ResultInfo *resultInfo `json:"result_info,omitempty"`
}

type resultInfo struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
	Count      int `json:"count"`
	TotalCount int `json:"total_count"`
}

type apiMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e envelope) message() string {
	parts := make([]string, 0, len(e.Errors))
	for _, m := range e.Errors {
		msg := strings.TrimSpace(m.Message)
		if msg == "" {
			continue
		}
		if m.Code != 0 {
			msg = fmt.Sprintf("%s (code %d)", msg, m.Code)
		}
		parts = append(parts, msg)
	}
	return strings.Join(parts, "; ")
}

type zoneResult struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Status      string   `json:"status"`
	NameServers []string `json:"name_servers"`
}
