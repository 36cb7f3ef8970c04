package namecom

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/benithors/dotprovision/internal/registrar"
	"github.com/benithors/dotprovision/internal/remote"
)

const (
	defaultBaseURL = "https://api.name.com"
	providerName   = "namecom"
)

type Options struct {
	Username string
	Token    string
	BaseURL  string
	Timeout  time.Duration

	UserAgent string
	Logger    *slog.Logger
}

type Client struct {
	opts Options
	http *http.Client
	auth string
	log  *slog.Logger
}

var _ registrar.Client = (*Client)(nil)

func NewClient(opts Options) (*Client, error) {
	opts.Username = strings.TrimSpace(opts.Username)
	opts.Token = strings.TrimSpace(opts.Token)
	if opts.Username == "" || opts.Token == "" {
		return nil, fmt.Errorf("namecom: missing credentials (set NAMECOM_USERNAME and NAMECOM_TOKEN)")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "dotprovision/registrar-namecom"
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		opts: opts,
		http: &http.Client{Timeout: opts.Timeout},
		auth: "Basic " + base64.StdEncoding.EncodeToString([]byte(opts.Username+":"+opts.Token)),
		log:  opts.Logger.With("provider", providerName),
	}, nil
}

func (c *Client) Name() string { return providerName }

func (c *Client) Search(ctx context.Context, keyword string) ([]registrar.Offer, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("namecom: empty keyword")
	}

	var decoded searchResponse
	if _, err := c.do(ctx, "search", http.MethodPost, "/v4/domains:search", map[string]string{"keyword": keyword}, &decoded); err != nil {
		return nil, err
	}

	offers := make([]registrar.Offer, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		if strings.TrimSpace(r.DomainName) == "" {
			continue
		}
		offers = append(offers, r)
	}
	return offers, nil
}

func (c *Client) Purchase(ctx context.Context, offer registrar.Offer) (registrar.Purchase, error) {
	if strings.TrimSpace(offer.DomainName) == "" {
		return registrar.Purchase{}, fmt.Errorf("namecom: empty domain")
	}

	body := createDomainRequest{
		PurchasePrice: offer.PurchasePrice,
		PurchaseType:  offer.PurchaseType,
	}
	body.Domain.DomainName = offer.DomainName

	var decoded createDomainResponse
	raw, err := c.do(ctx, "purchase", http.MethodPost, "/v4/domains", body, &decoded)
	if err != nil {
		return registrar.Purchase{}, err
	}
	if strings.TrimSpace(decoded.Domain.DomainName) == "" {
		return registrar.Purchase{}, remote.NewEmpty(providerName, "purchase", http.StatusOK, string(raw))
	}

	return registrar.Purchase{
		Domain:    decoded.Domain,
		Order:     decoded.Order,
		TotalPaid: decoded.TotalPaid,
		Raw:       json.RawMessage(raw),
	}, nil
}

func (c *Client) DisableAutoRenew(ctx context.Context, domainName string) error {
	return c.domainAction(ctx, "disable autorenew", domainName, ":disableAutorenew", struct{}{})
}

func (c *Client) SetNameservers(ctx context.Context, domainName string, nameservers []string) error {
	if len(nameservers) == 0 {
		return fmt.Errorf("namecom: no nameservers for %q", domainName)
	}
	return c.domainAction(ctx, "set nameservers", domainName, ":setNameservers", map[string][]string{"nameservers": nameservers})
}

// ListDomains walks every page of the account's domain list.
func (c *Client) ListDomains(ctx context.Context) ([]registrar.Domain, error) {
	var out []registrar.Domain
	page := 1
	for {
		var decoded listDomainsResponse
		path := "/v4/domains?page=" + strconv.Itoa(page)
		if _, err := c.do(ctx, "list domains", http.MethodGet, path, nil, &decoded); err != nil {
			return nil, err
		}
		out = append(out, decoded.Domains...)
		if decoded.NextPage <= page {
			return out, nil
		}
		page = decoded.NextPage
	}
}

// domainAction runs a POST /v4/domains/{name}<suffix> call whose only useful
// signal is "the API accepted it and answered with something".
func (c *Client) domainAction(ctx context.Context, op, domainName, suffix string, body any) error {
	domainName = strings.TrimSpace(domainName)
	if domainName == "" {
		return fmt.Errorf("namecom: empty domain")
	}
	raw, err := c.do(ctx, op, http.MethodPost, "/v4/domains/"+url.PathEscape(domainName)+suffix, body, nil)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return remote.NewEmpty(providerName, op, http.StatusOK, "")
	}
	return nil
}

// do sends one request and decodes a 2xx body into out (when non-nil). It
// returns the raw body so callers can keep it.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) ([]byte, error) {
	u := strings.TrimRight(c.opts.BaseURL, "/") + path

	var reqBody io.Reader
	if method == http.MethodPost {
		if in == nil {
			in = struct{}{}
		}
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("namecom: encode %s: %w", op, err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("namecom: %s: %w", op, err)
	}
	req.Header.Set("authorization", c.auth)
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

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorResponse
		_ = json.Unmarshal(b, &apiErr)
		c.log.Warn("request failed", "op", op, "url", u, "status", resp.StatusCode)
		return nil, remote.NewApplication(providerName, op, resp.StatusCode, apiErr.message(), string(b))
	}

	if out != nil && len(bytes.TrimSpace(b)) > 0 {
		if err := json.Unmarshal(b, out); err != nil {
			e := remote.NewEmpty(providerName, op, resp.StatusCode, string(b))
			e.Err = fmt.Errorf("decode: %w", err)
			return nil, e
		}
	}
	return b, nil
}

type searchResponse struct {
	Results []registrar.Offer `json:"results"`
}

type createDomainRequest struct {
	Domain struct {
		DomainName string `json:"domainName"`
	} `json:"domain"`
	PurchasePrice float64 `json:"purchasePrice,omitempty"`
	PurchaseType  string  `json:"purchaseType,omitempty"`
}

type createDomainResponse struct {
	Domain    registrar.Domain `json:"domain"`
	Order     int64            `json:"order"`
	TotalPaid float64          `json:"totalPaid"`
}

type listDomainsResponse struct {
	Domains  []registrar.Domain `json:"domains"`
	NextPage int                `json:"nextPage"`
	LastPage int                `json:"lastPage"`
}

type errorResponse struct {
	Message string `json:"message"`
	Details string `json:"details"`
}

func (e errorResponse) message() string {
	msg := strings.TrimSpace(e.Message)
	details := strings.TrimSpace(e.Details)
	switch {
	case msg != "" && details != "":
		return msg + ": " + details
	case msg != "":
		return msg
	default:
		return details
	}
}
