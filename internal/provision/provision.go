package provision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/benithors/dotprovision/internal/dnsprovider"
	"github.com/benithors/dotprovision/internal/domain"
	"github.com/benithors/dotprovision/internal/generate"
	"github.com/benithors/dotprovision/internal/metrics"
	"github.com/benithors/dotprovision/internal/registrar"
	"github.com/benithors/dotprovision/internal/remote"
	"github.com/benithors/dotprovision/internal/store"
)

// Store is where fully provisioned domains are recorded. Implementations are
// not expected to guard against concurrent writers: the orchestrator is the
// only writer and appends one entry at a time.
type Store interface {
	Append(ctx context.Context, e store.Entry) (int, error)
}

type NameGenerator interface {
	Label() string
}

type Options struct {
	// ServerIP is the IPv4 address both A records point at.
	ServerIP string
	// MaxPrice is the purchase price ceiling (inclusive).
	MaxPrice float64

	Generator NameGenerator
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	RunID     string
}

// Orchestrator drives acquisition cycles over a registrar, a DNS provider and
// a result store. Cycles run strictly one after another.
type Orchestrator struct {
	reg   registrar.Client
	dns   dnsprovider.Client
	store Store

	opts    Options
	gen     NameGenerator
	log     *slog.Logger
	metrics *metrics.Metrics
}

func New(reg registrar.Client, dns dnsprovider.Client, st Store, opts Options) (*Orchestrator, error) {
	if reg == nil {
		return nil, errors.New("registrar client is required")
	}
	if dns == nil {
		return nil, errors.New("dns provider client is required")
	}
	if st == nil {
		return nil, errors.New("result store is required")
	}
	opts.ServerIP = strings.TrimSpace(opts.ServerIP)
	if ip := net.ParseIP(opts.ServerIP); ip == nil || ip.To4() == nil {
		return nil, fmt.Errorf("server ip %q is not an IPv4 address", opts.ServerIP)
	}
	if !(opts.MaxPrice > 0) || math.IsInf(opts.MaxPrice, 1) {
		return nil, fmt.Errorf("max price must be a positive finite number, got %v", opts.MaxPrice)
	}
	if opts.Generator == nil {
		opts.Generator = generate.New(generate.Options{})
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}

	return &Orchestrator{
		reg:     reg,
		dns:     dns,
		store:   st,
		opts:    opts,
		gen:     opts.Generator,
		log:     opts.Logger.With("run_id", opts.RunID),
		metrics: opts.Metrics,
	}, nil
}

// Outcome describes how far one cycle got.
type Outcome struct {
	Cycle     int
	Step      Step
	Keyword   string
	Domain    string
	URL       string
	Price     float64
	Purchased bool
	Err       error
}

func (o Outcome) Succeeded() bool { return o.Err == nil && o.Step == StepDone }

type Report struct {
	RunID     string
	Requested int
	Succeeded int
	Failed    int
	Skipped   int
	Outcomes  []Outcome
}

// Run executes n cycles. A failed cycle is logged and the loop moves on; a
// cancelled context stops the loop and counts the remaining cycles as skipped.
func (o *Orchestrator) Run(ctx context.Context, n int) Report {
	rep := Report{RunID: o.opts.RunID, Requested: n}
	o.log.Info("starting provisioning run", "cycles", n, "max_price", o.opts.MaxPrice)

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			rep.Skipped = n - i
			for j := 0; j < rep.Skipped; j++ {
				o.metrics.IncrementCycle("skipped", "")
			}
			o.log.Warn("run interrupted", "remaining", rep.Skipped, "err", err)
			break
		}

		out, err := o.RunCycle(ctx, i)
		rep.Outcomes = append(rep.Outcomes, out)
		if err != nil {
			rep.Failed++
			attrs := []any{"cycle", i, "step", out.Step, "err", err}
			if k := remote.KindOf(err); k != "" {
				attrs = append(attrs, "kind", k)
			}
			if out.Domain != "" {
				attrs = append(attrs, "domain", out.Domain)
			}
			if out.Purchased {
				// Money is spent and nothing is recorded for this domain.
				attrs = append(attrs, "purchased", true)
			}
			o.log.Error("cycle failed", attrs...)
			o.log.Info("skipping cycle", "cycle", i)
			continue
		}
		rep.Succeeded++
	}

	o.log.Info("provisioning run finished",
		"succeeded", rep.Succeeded, "failed", rep.Failed, "skipped", rep.Skipped)
	return rep
}

// RunCycle performs one acquisition end to end:
// generate name, search, select cheapest, purchase, disable auto-renew,
// create zone, set nameservers, set DNS records, persist.
// The first failing step ends the cycle; nothing is rolled back.
func (o *Orchestrator) RunCycle(ctx context.Context, cycle int) (Outcome, error) {
	out := Outcome{Cycle: cycle, Step: StepGenerateName}
	log := o.log.With("cycle", cycle)

	fail := func(step Step, kind, err error) (Outcome, error) {
		out.Step = step
		out.Err = &StepError{Cycle: cycle, Step: step, Domain: out.Domain, Kind: kind, Err: err}
		o.metrics.IncrementCycle("failed", string(step))
		return out, out.Err
	}

	out.Keyword = o.gen.Label()
	log.Info("looking for the cheapest domain", "keyword", out.Keyword, "max_price", o.opts.MaxPrice)

	out.Step = StepSearch
	var offers []registrar.Offer
	err := o.timed(StepSearch, func() (err error) {
		offers, err = o.reg.Search(ctx, out.Keyword)
		return err
	})
	if err != nil {
		return fail(StepSearch, ErrSearchFailed, err)
	}

	out.Step = StepSelectCheapest
	offer, ok := SelectCheapest(offers, o.opts.MaxPrice)
	if !ok {
		return fail(StepSearch, ErrNoPurchasableDomain,
			fmt.Errorf("keyword %q: %d offers, none purchasable at or under %.2f", out.Keyword, len(offers), o.opts.MaxPrice))
	}
	out.Domain = offer.DomainName
	out.Price = offer.PurchasePrice
	log = log.With("domain", offer.DomainName)
	log.Info("purchasable domain found", "price", offer.PurchasePrice, "renewal_price", offer.RenewalPrice)

	out.Step = StepPurchase
	var purchase registrar.Purchase
	err = o.timed(StepPurchase, func() (err error) {
		purchase, err = o.reg.Purchase(ctx, offer)
		return err
	})
	if err != nil {
		return fail(StepPurchase, ErrPurchaseFailed, err)
	}
	out.Purchased = true
	o.metrics.AddSpent(purchase.TotalPaid)
	log.Info("bought domain", "order", purchase.Order, "total_paid", purchase.TotalPaid)
	log.Debug("purchase payload", "raw", string(purchase.Raw))

	// Fatal on purpose even though the domain is already bought; see DESIGN.md.
	out.Step = StepDisableAutoRenew
	err = o.timed(StepDisableAutoRenew, func() error {
		return o.reg.DisableAutoRenew(ctx, offer.DomainName)
	})
	if err != nil {
		return fail(StepDisableAutoRenew, ErrAutoRenewDisable, err)
	}
	log.Info("disabled auto-renew")

	out.Step = StepCreateZone
	var zone dnsprovider.Zone
	err = o.timed(StepCreateZone, func() (err error) {
		zone, err = o.dns.CreateZone(ctx, offer.DomainName)
		return err
	})
	if err != nil {
		return fail(StepCreateZone, ErrZoneCreation, err)
	}
	if zone.ID == "" || len(zone.NameServers) == 0 {
		return fail(StepCreateZone, ErrZoneCreation,
			fmt.Errorf("%s returned zone %q with %d nameservers", o.dns.Name(), zone.ID, len(zone.NameServers)))
	}
	log.Info("added domain to dns provider", "zone_id", zone.ID, "nameservers", zone.NameServers)

	out.Step = StepSetNameservers
	err = o.timed(StepSetNameservers, func() error {
		return o.reg.SetNameservers(ctx, offer.DomainName, zone.NameServers)
	})
	if err != nil {
		return fail(StepSetNameservers, ErrNameserverUpdate, err)
	}
	log.Info("updated nameservers")

	out.Step = StepSetDNSRecords
	err = o.timed(StepSetDNSRecords, func() error {
		for _, rec := range Records(offer.DomainName, o.opts.ServerIP) {
			created, err := o.dns.CreateRecord(ctx, zone.ID, rec)
			if err != nil {
				return fmt.Errorf("%s record %q: %w", rec.Type, rec.Name, err)
			}
			log.Info("added dns record", "type", rec.Type, "name", rec.Name, "record_id", created.ID)
		}
		return nil
	})
	if err != nil {
		return fail(StepSetDNSRecords, ErrDNSRecord, err)
	}

	out.Step = StepPersist
	out.URL = domain.URL(offer.DomainName)
	var total int
	err = o.timed(StepPersist, func() (err error) {
		total, err = o.store.Append(ctx, store.Entry{URL: out.URL})
		return err
	})
	if err != nil {
		return fail(StepPersist, ErrPersist, err)
	}
	log.Info("wrote domain to store", "url", out.URL, "total", total)

	out.Step = StepDone
	o.metrics.IncrementCycle("succeeded", string(StepDone))
	return out, nil
}

func (o *Orchestrator) timed(step Step, fn func() error) error {
	start := time.Now()
	err := fn()
	o.metrics.ObserveStep(string(step), time.Since(start))
	return err
}

// SelectCheapest returns the lowest-priced purchasable offer at or under
// maxPrice. Equal prices keep their original order.
func SelectCheapest(offers []registrar.Offer, maxPrice float64) (registrar.Offer, bool) {
	candidates := make([]registrar.Offer, 0, len(offers))
	for _, of := range offers {
		// NaN on either side never compares true, so it never qualifies.
		if !of.Purchasable || !(of.PurchasePrice <= maxPrice) {
			continue
		}
		candidates = append(candidates, of)
	}
	if len(candidates) == 0 {
		return registrar.Offer{}, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].PurchasePrice < candidates[j].PurchasePrice
	})
	return candidates[0], true
}

// Records is the fixed record set for a new domain: apex first, then www.
// Both are proxied with an automatic TTL.
func Records(domainName, serverIP string) []dnsprovider.Record {
	return []dnsprovider.Record{
		{Type: "A", Name: domainName, Content: serverIP, TTL: dnsprovider.TTLAuto, Proxied: true},
		{Type: "A", Name: "www", Content: serverIP, TTL: dnsprovider.TTLAuto, Proxied: true},
	}
}
