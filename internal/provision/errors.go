package provision

import (
	"errors"
	"fmt"
)

// Step names one state of a provisioning cycle.
type Step string

const (
	StepGenerateName     Step = "generate_name"
	StepSearch           Step = "search"
	StepSelectCheapest   Step = "select_cheapest"
	StepPurchase         Step = "purchase"
	StepDisableAutoRenew Step = "disable_autorenew"
	StepCreateZone       Step = "create_zone"
	StepSetNameservers   Step = "set_nameservers"
	StepSetDNSRecords    Step = "set_dns_records"
	StepPersist          Step = "persist"
	StepDone             Step = "done"
)

// Sentinel errors, one per failing step. A *StepError always wraps exactly one.
var (
	ErrSearchFailed        = errors.New("domain search failed")
	ErrNoPurchasableDomain = errors.New("no purchasable domain under budget")
	ErrPurchaseFailed      = errors.New("domain purchase failed")
	ErrAutoRenewDisable    = errors.New("disabling auto-renew failed")
	ErrZoneCreation        = errors.New("zone creation failed")
	ErrNameserverUpdate    = errors.New("nameserver update failed")
	ErrDNSRecord           = errors.New("dns record creation failed")
	ErrPersist             = errors.New("persisting result failed")
)

// StepError reports where a cycle stopped. Both the step sentinel and the
// underlying cause (often a *remote.Error) are reachable via errors.Is/As.
type StepError struct {
	Cycle  int
	Step   Step
	Domain string
	Kind   error
	Err    error
}

func (e *StepError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("cycle %d: %s", e.Cycle, e.Step)
	if e.Domain != "" {
		msg += fmt.Sprintf(" (domain=%s)", e.Domain)
	}
	if e.Kind != nil {
		msg += ": " + e.Kind.Error()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StepError) Unwrap() []error {
	if e == nil {
		return nil
	}
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}
