package dnsprovider

import "context"

// Client is the DNS/CDN surface used to host a freshly registered domain.
// Failures are returned as *remote.Error.
type Client interface {
	Name() string
	CreateZone(ctx context.Context, domainName string) (Zone, error)
	ListZones(ctx context.Context) ([]Zone, error)
	CreateRecord(ctx context.Context, zoneID string, rec Record) (Record, error)
	ListRecords(ctx context.Context, zoneID string) ([]Record, error)
	DeleteRecord(ctx context.Context, zoneID, recordID string) error
}

// Zone is the provider's unit of configuration for one domain. ID is the join
// key for every record operation; NameServers keeps provider order.
type Zone struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Status      string   `json:"status"`
	NameServers []string `json:"name_servers"`
}

// TTLAuto asks the provider to pick the TTL.
const TTLAuto = 1

type Record struct {
	ID      string `json:"id,omitempty"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	Content string `json:"content"`
	TTL     int    `json:"ttl"`
	Proxied bool   `json:"proxied"`
}
