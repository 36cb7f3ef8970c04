package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/benithors/dotprovision/internal/availability"
	"github.com/benithors/dotprovision/internal/dnsprovider"
	"github.com/benithors/dotprovision/internal/domain"
	"github.com/benithors/dotprovision/internal/provision"
	"github.com/benithors/dotprovision/internal/registrar"
)

type outputFormat int

const (
	formatTable outputFormat = iota
	formatJSON
	formatPlain
)

func resolveFormat(flagVal string, stdout io.Writer) outputFormat {
	switch strings.ToLower(strings.TrimSpace(flagVal)) {
	case "table":
		return formatTable
	case "json":
		return formatJSON
	case "plain":
		return formatPlain
	case "auto", "":
	default:
		// Unknown format: fall back to auto.
	}

	if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return formatTable
	}
	return formatPlain
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSummary(w io.Writer, format outputFormat, s availability.Summary) error {
	if format == formatJSON {
		return writeJSON(w, s)
	}
	_, err := fmt.Fprintf(w, "Active: %d; Pending: %d\n", s.Active, s.Unavailable)
	return err
}

type cycleJSON struct {
	Cycle     int     `json:"cycle"`
	Step      string  `json:"step"`
	Keyword   string  `json:"keyword,omitempty"`
	Domain    string  `json:"domain,omitempty"`
	URL       string  `json:"url,omitempty"`
	Price     float64 `json:"price,omitempty"`
	Purchased bool    `json:"purchased"`
	Error     string  `json:"error,omitempty"`
}

type reportJSON struct {
	RunID     string      `json:"run_id"`
	Requested int         `json:"requested"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Skipped   int         `json:"skipped"`
	Cycles    []cycleJSON `json:"cycles"`
}

func writeReport(w io.Writer, format outputFormat, rep provision.Report) error {
	switch format {
	case formatJSON:
		out := reportJSON{
			RunID:     rep.RunID,
			Requested: rep.Requested,
			Succeeded: rep.Succeeded,
			Failed:    rep.Failed,
			Skipped:   rep.Skipped,
			Cycles:    make([]cycleJSON, 0, len(rep.Outcomes)),
		}
		for _, o := range rep.Outcomes {
			c := cycleJSON{
				Cycle:     o.Cycle,
				Step:      string(o.Step),
				Keyword:   o.Keyword,
				Domain:    o.Domain,
				URL:       o.URL,
				Price:     o.Price,
				Purchased: o.Purchased,
			}
			if o.Err != nil {
				c.Error = o.Err.Error()
			}
			out.Cycles = append(out.Cycles, c)
		}
		return writeJSON(w, out)
	case formatPlain:
		// One URL per provisioned domain, for piping.
		for _, o := range rep.Outcomes {
			if !o.Succeeded() {
				continue
			}
			if _, err := fmt.Fprintln(w, o.URL); err != nil {
				return err
			}
		}
		return nil
	case formatTable:
		fallthrough
	default:
		tw := domain.NewTabWriter(w)
		fmt.Fprintln(tw, "CYCLE\tDOMAIN\tPRICE\tRESULT\tDETAIL")
		for _, o := range rep.Outcomes {
			result, detail := "ok", o.URL
			if !o.Succeeded() {
				result = "failed at " + string(o.Step)
				if o.Err != nil {
					detail = o.Err.Error()
				}
			}
			price := ""
			if o.Price > 0 {
				price = fmt.Sprintf("%.2f", o.Price)
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", o.Cycle, o.Domain, price, result, detail)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "\nsucceeded=%d failed=%d skipped=%d\n", rep.Succeeded, rep.Failed, rep.Skipped)
		return err
	}
}

func writeLabels(w io.Writer, format outputFormat, labels []string) error {
	if format == formatJSON {
		return writeJSON(w, labels)
	}
	for _, l := range labels {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

func writeDomains(w io.Writer, format outputFormat, domains []registrar.Domain) error {
	switch format {
	case formatJSON:
		if domains == nil {
			domains = []registrar.Domain{}
		}
		return writeJSON(w, domains)
	case formatPlain:
		for _, d := range domains {
			if _, err := fmt.Fprintf(w, "%s\t%t\t%s\t%s\n", d.DomainName, d.AutorenewEnabled, d.ExpireDate, strings.Join(d.Nameservers, ",")); err != nil {
				return err
			}
		}
		return nil
	case formatTable:
		fallthrough
	default:
		tw := domain.NewTabWriter(w)
		fmt.Fprintln(tw, "DOMAIN\tAUTORENEW\tLOCKED\tEXPIRES\tNAMESERVERS")
		for _, d := range domains {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.DomainName, yesNo(d.AutorenewEnabled), yesNo(d.Locked), d.ExpireDate, strings.Join(d.Nameservers, ", "))
		}
		return tw.Flush()
	}
}

func writeZones(w io.Writer, format outputFormat, zones []dnsprovider.Zone) error {
	switch format {
	case formatJSON:
		if zones == nil {
			zones = []dnsprovider.Zone{}
		}
		return writeJSON(w, zones)
	case formatPlain:
		for _, z := range zones {
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", z.ID, z.Name, z.Status, strings.Join(z.NameServers, ",")); err != nil {
				return err
			}
		}
		return nil
	case formatTable:
		fallthrough
	default:
		tw := domain.NewTabWriter(w)
		fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tNAMESERVERS")
		for _, z := range zones {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", z.ID, z.Name, z.Status, strings.Join(z.NameServers, ", "))
		}
		return tw.Flush()
	}
}

func writeRecords(w io.Writer, format outputFormat, records []dnsprovider.Record) error {
	switch format {
	case formatJSON:
		if records == nil {
			records = []dnsprovider.Record{}
		}
		return writeJSON(w, records)
	case formatPlain:
		for _, r := range records {
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%t\n", r.ID, r.Type, r.Name, r.Content, r.TTL, r.Proxied); err != nil {
				return err
			}
		}
		return nil
	case formatTable:
		fallthrough
	default:
		tw := domain.NewTabWriter(w)
		fmt.Fprintln(tw, "ID\tTYPE\tNAME\tCONTENT\tTTL\tPROXIED")
		for _, r := range records {
			ttl := fmt.Sprint(r.TTL)
			if r.TTL == dnsprovider.TTLAuto {
				ttl = "auto"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Type, r.Name, r.Content, ttl, yesNo(r.Proxied))
		}
		return tw.Flush()
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
