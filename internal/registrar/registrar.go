package registrar

import (
	"context"
	"encoding/json"
)

// Client is the registrar surface the provisioning flow depends on. Every
// method returns a *remote.Error on failure so callers can tell transport
// problems from API rejections and empty payloads.
type Client interface {
	Name() string
	Search(ctx context.Context, keyword string) ([]Offer, error)
	Purchase(ctx context.Context, offer Offer) (Purchase, error)
	DisableAutoRenew(ctx context.Context, domainName string) error
	SetNameservers(ctx context.Context, domainName string, nameservers []string) error
	ListDomains(ctx context.Context) ([]Domain, error)
}

// Offer is one search result.
type Offer struct {
	DomainName    string  `json:"domainName"`
	Purchasable   bool    `json:"purchasable"`
	Premium       bool    `json:"premium,omitempty"`
	PurchasePrice float64 `json:"purchasePrice,omitempty"`
	RenewalPrice  float64 `json:"renewalPrice,omitempty"`
	PurchaseType  string  `json:"purchaseType,omitempty"`
}

// Purchase is the result of a successful registration. Raw keeps the full
// registrar payload for logging.
type Purchase struct {
	Domain    Domain
	Order     int64
	TotalPaid float64
	Raw       json.RawMessage
}

type Domain struct {
	DomainName       string   `json:"domainName"`
	Nameservers      []string `json:"nameservers,omitempty"`
	AutorenewEnabled bool     `json:"autorenewEnabled"`
	Locked           bool     `json:"locked"`
	CreateDate       string   `json:"createDate,omitempty"`
	ExpireDate       string   `json:"expireDate,omitempty"`
}
