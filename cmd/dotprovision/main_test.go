package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/benithors/dotprovision/internal/store"
)

func runWithArgs(args ...string) int {
	old := os.Args
	defer func() { os.Args = old }()
	os.Args = append([]string{"dotprovision"}, args...)
	return run()
}

// execute runs the root command in-process and captures both streams.
func execute(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd("test")
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	code = exitCode(root.ExecuteContext(context.Background()), &errOut)
	return code, out.String(), errOut.String()
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"NAMECOM_USERNAME", "NAMECOM_TOKEN", "NAMECOM_BASE_URL",
		"CLOUDFLARE_EMAIL", "CLOUDFLARE_API_KEY", "CLOUDFLARE_BASE_URL",
		"SERVER_IP", "MAX_PRICE", "RESULT_STORE", "LOG_LEVEL", "LOG_FORMAT", "HTTP_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func setCredentials(t *testing.T, namecomURL, cloudflareURL string) {
	t.Helper()
	clearEnv(t)
	t.Setenv("NAMECOM_USERNAME", "alice")
	t.Setenv("NAMECOM_TOKEN", "t0k")
	t.Setenv("NAMECOM_BASE_URL", namecomURL)
	t.Setenv("CLOUDFLARE_EMAIL", "ops@example.com")
	t.Setenv("CLOUDFLARE_API_KEY", "cfkey")
	t.Setenv("CLOUDFLARE_BASE_URL", cloudflareURL)
}

func writeJSONBody(w http.ResponseWriter, v any) {
	w.Header().Set("content-type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func fakeNameCom(t *testing.T, searchStatus int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, pass, ok := r.BasicAuth(); !ok || user != "alice" || pass != "t0k" {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSONBody(w, map[string]string{"message": "Unauthenticated"})
			return
		}
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v4/domains:search":
			if searchStatus != http.StatusOK {
				w.WriteHeader(searchStatus)
				writeJSONBody(w, map[string]string{"message": "Internal Error"})
				return
			}
			var in struct {
				Keyword string `json:"keyword"`
			}
			_ = json.NewDecoder(r.Body).Decode(&in)
			writeJSONBody(w, map[string]any{"results": []map[string]any{
				{"domainName": in.Keyword + ".io", "purchasable": true, "purchasePrice": 39.99},
				{"domainName": in.Keyword + ".com", "purchasable": true, "purchasePrice": 0.99, "renewalPrice": 12.99},
				{"domainName": in.Keyword + ".net", "purchasable": false},
			}})
		case r.Method == http.MethodPost && r.URL.Path == "/v4/domains":
			var in struct {
				Domain struct {
					DomainName string `json:"domainName"`
				} `json:"domain"`
			}
			_ = json.NewDecoder(r.Body).Decode(&in)
			writeJSONBody(w, map[string]any{
				"domain":    map[string]any{"domainName": in.Domain.DomainName, "autorenewEnabled": true},
				"order":     7,
				"totalPaid": 0.99,
			})
		case r.Method == http.MethodPost && (strings.HasSuffix(r.URL.Path, ":disableAutorenew") || strings.HasSuffix(r.URL.Path, ":setNameservers")):
			name := strings.TrimPrefix(r.URL.Path, "/v4/domains/")
			name = name[:strings.LastIndexByte(name, ':')]
			writeJSONBody(w, map[string]any{"domainName": name})
		case r.Method == http.MethodGet && r.URL.Path == "/v4/domains":
			writeJSONBody(w, map[string]any{"domains": []map[string]any{
				{"domainName": "kelumo123.com", "autorenewEnabled": false, "expireDate": "2027-10-19T00:00:00Z", "nameservers": []string{"ada.ns.cloudflare.com"}},
			}})
		default:
			w.WriteHeader(http.StatusNotFound)
			writeJSONBody(w, map[string]string{"message": "Not Found"})
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

type fakeZones struct {
	mu      sync.Mutex
	records []string
	deleted []string
}

func fakeCloudflare(t *testing.T) (*httptest.Server, *fakeZones) {
	t.Helper()
	fz := &fakeZones{}
	ok := func(w http.ResponseWriter, result any) {
		writeJSONBody(w, map[string]any{"success": true, "errors": []any{}, "messages": []any{}, "result": result})
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Auth-Email") != "ops@example.com" || r.Header.Get("X-Auth-Key") != "cfkey" {
			w.WriteHeader(http.StatusForbidden)
			writeJSONBody(w, map[string]any{"success": false, "errors": []map[string]any{{"code": 9103, "message": "Unknown X-Auth-Key or X-Auth-Email"}}})
			return
		}
		fz.mu.Lock()
		defer fz.mu.Unlock()
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/client/v4/zones":
			var in struct {
				Name string `json:"name"`
			}
			_ = json.NewDecoder(r.Body).Decode(&in)
			ok(w, map[string]any{"id": "zone-" + in.Name, "name": in.Name, "status": "pending", "name_servers": []string{"ada.ns.cloudflare.com", "bob.ns.cloudflare.com"}})
		case r.Method == http.MethodGet && r.URL.Path == "/client/v4/zones":
			writeJSONBody(w, map[string]any{"success": true, "errors": []any{}, "result": []map[string]any{
				{"id": "zone-1", "name": "kelumo123.com", "status": "active", "name_servers": []string{"ada.ns.cloudflare.com", "bob.ns.cloudflare.com"}},
			}, "result_info": map[string]any{"page": 1, "per_page": 50, "total_pages": 1, "count": 1, "total_count": 1}})
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/dns_records"):
			var rec map[string]any
			_ = json.NewDecoder(r.Body).Decode(&rec)
			name, _ := rec["name"].(string)
			fz.records = append(fz.records, name)
			rec["id"] = "rec-" + name
			ok(w, rec)
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/dns_records"):
			ok(w, []map[string]any{
				{"id": "rec-1", "type": "A", "name": "kelumo123.com", "content": "203.0.113.7", "ttl": 1, "proxied": true},
				{"id": "rec-2", "type": "A", "name": "www.kelumo123.com", "content": "203.0.113.7", "ttl": 1, "proxied": true},
			})
		case r.Method == http.MethodDelete && strings.Contains(r.URL.Path, "/dns_records/"):
			id := r.URL.Path[strings.LastIndexByte(r.URL.Path, '/')+1:]
			fz.deleted = append(fz.deleted, id)
			ok(w, map[string]any{"id": id})
		default:
			w.WriteHeader(http.StatusNotFound)
			writeJSONBody(w, map[string]any{"success": false, "errors": []map[string]any{{"code": 7003, "message": "No route for that URI"}}})
		}
	}))
	t.Cleanup(srv.Close)
	return srv, fz
}

// Keep these exit codes stable: they matter in scripts/agents.
func TestRun_NoArgs_Exit2(t *testing.T) {
	if got := runWithArgs(); got != 2 {
		t.Fatalf("exit=%d, want 2", got)
	}
}

func TestRun_UnknownCommand_Exit2(t *testing.T) {
	if got := runWithArgs("nope"); got != 2 {
		t.Fatalf("exit=%d, want 2", got)
	}
}

func TestVersion(t *testing.T) {
	code, out, _ := execute(t, "--version")
	if code != 0 {
		t.Fatalf("exit=%d, want 0", code)
	}
	if !strings.HasPrefix(out, "dotprovision test (") {
		t.Fatalf("version output=%q", out)
	}
}

func TestUnknownFlag_Exit2(t *testing.T) {
	if code, _, _ := execute(t, "check", "--bogus"); code != 2 {
		t.Fatalf("exit=%d, want 2", code)
	}
}

func TestQuietVerbose_Exit2(t *testing.T) {
	if code, _, _ := execute(t, "generate", "-q", "-v"); code != 2 {
		t.Fatalf("exit=%d, want 2", code)
	}
}

func TestProvision_MissingCredentials_Exit2(t *testing.T) {
	clearEnv(t)
	code, _, stderr := execute(t, "provision", "--server-ip", "203.0.113.7", "--store", filepath.Join(t.TempDir(), "urls.json"))
	if code != 2 {
		t.Fatalf("exit=%d, want 2", code)
	}
	if !strings.Contains(stderr, "NAMECOM_USERNAME") || !strings.Contains(stderr, "CLOUDFLARE_API_KEY") {
		t.Fatalf("stderr does not name missing settings: %q", stderr)
	}
}

func TestProvision_UnusableMaxPrice_Exit2(t *testing.T) {
	setCredentials(t, "http://127.0.0.1:1", "http://127.0.0.1:1")
	for _, p := range []string{"NaN", "+Inf", "0"} {
		code, _, stderr := execute(t, "provision", "--server-ip", "203.0.113.7", "--max-price", p,
			"--store", filepath.Join(t.TempDir(), "urls.json"))
		if code != 2 {
			t.Fatalf("--max-price %s: exit=%d, want 2", p, code)
		}
		if !strings.Contains(stderr, "max price") {
			t.Fatalf("--max-price %s: stderr=%q", p, stderr)
		}
	}
}

func TestProvision_EndToEnd(t *testing.T) {
	nc := fakeNameCom(t, http.StatusOK)
	cf, zones := fakeCloudflare(t)
	setCredentials(t, nc.URL, cf.URL)
	storePath := filepath.Join(t.TempDir(), "urls.json")
	metricsPath := filepath.Join(t.TempDir(), "run.prom")

	code, out, stderr := execute(t, "provision",
		"--cycles", "2", "--server-ip", "203.0.113.7", "--seed", "5",
		"--store", storePath, "--format", "plain", "--metrics-file", metricsPath)
	if code != 0 {
		t.Fatalf("exit=%d, want 0 (stderr=%s)", code, stderr)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("stdout lines=%d, want 2: %q", len(lines), out)
	}
	for _, l := range lines {
		if !strings.HasPrefix(l, "https://") || !strings.HasSuffix(l, ".com") {
			t.Fatalf("unexpected url %q (cheapest offer is the .com)", l)
		}
	}

	stored, err := store.NewJSONFile(storePath).URLs(context.Background())
	if err != nil {
		t.Fatalf("read store: %v", err)
	}
	if strings.Join(stored, "\n") != strings.Join(lines, "\n") {
		t.Fatalf("store=%v, stdout=%v", stored, lines)
	}

	zones.mu.Lock()
	recs := append([]string(nil), zones.records...)
	zones.mu.Unlock()
	want := []string{
		strings.TrimPrefix(lines[0], "https://"), "www",
		strings.TrimPrefix(lines[1], "https://"), "www",
	}
	if strings.Join(recs, ",") != strings.Join(want, ",") {
		t.Fatalf("records=%v, want %v", recs, want)
	}

	prom, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(prom), `dotprovision_cycles_total{result="succeeded",step="done"} 2`) {
		t.Fatalf("metrics missing cycle count:\n%s", prom)
	}
}

func TestProvision_FailedCycles(t *testing.T) {
	nc := fakeNameCom(t, http.StatusInternalServerError)
	cf, zones := fakeCloudflare(t)
	setCredentials(t, nc.URL, cf.URL)
	storePath := filepath.Join(t.TempDir(), "urls.json")
	args := []string{"provision", "--cycles", "3", "--server-ip", "203.0.113.7", "--store", storePath, "--format", "plain"}

	code, out, stderr := execute(t, args...)
	if code != 0 {
		t.Fatalf("exit=%d, want 0 without --strict", code)
	}
	if strings.TrimSpace(out) != "" {
		t.Fatalf("stdout=%q, want no urls", out)
	}
	if got := strings.Count(stderr, "cycle failed"); got != 3 {
		t.Fatalf("logged %d failed cycles, want 3:\n%s", got, stderr)
	}
	if !strings.Contains(stderr, "kind=application") {
		t.Fatalf("failure kind not logged:\n%s", stderr)
	}

	if code, _, _ := execute(t, append(args, "--strict")...); code != 1 {
		t.Fatalf("exit=%d, want 1 with --strict", code)
	}

	if _, err := os.Stat(storePath); !os.IsNotExist(err) {
		t.Fatalf("store should not exist after failed cycles, stat err=%v", err)
	}
	if len(zones.records) != 0 {
		t.Fatalf("records created after failed search: %v", zones.records)
	}
}

func TestCheck(t *testing.T) {
	clearEnv(t)
	active := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(active.Close)
	pending := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(pending.Close)

	storePath := filepath.Join(t.TempDir(), "urls.json")
	st := store.NewJSONFile(storePath)
	for _, u := range []string{active.URL, pending.URL} {
		if _, err := st.Append(context.Background(), store.Entry{URL: u}); err != nil {
			t.Fatalf("seed store: %v", err)
		}
	}

	code, out, _ := execute(t, "check", "--store", storePath, "--format", "plain")
	if code != 0 {
		t.Fatalf("exit=%d, want 0", code)
	}
	if out != "Active: 1; Pending: 1\n" {
		t.Fatalf("stdout=%q", out)
	}

	code, out, _ = execute(t, "check", "--store", storePath, "--format", "json")
	if code != 0 {
		t.Fatalf("exit=%d, want 0", code)
	}
	var got struct {
		Total, Active, Unavailable int
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.Total != 2 || got.Active != 1 || got.Unavailable != 1 {
		t.Fatalf("summary=%+v", got)
	}
}

func TestCheck_MissingStoreIsEmpty(t *testing.T) {
	clearEnv(t)
	code, out, _ := execute(t, "check", "--store", filepath.Join(t.TempDir(), "none.json"), "--format", "plain")
	if code != 0 || out != "Active: 0; Pending: 0\n" {
		t.Fatalf("exit=%d stdout=%q", code, out)
	}
}

func TestCheck_CorruptStore_Exit1(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "urls.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if code, _, _ := execute(t, "check", "--store", path); code != 1 {
		t.Fatalf("exit=%d, want 1", code)
	}
}

func TestGenerate(t *testing.T) {
	clearEnv(t)
	code, out, _ := execute(t, "generate", "--count", "4", "--seed", "11", "--format", "plain")
	if code != 0 {
		t.Fatalf("exit=%d, want 0", code)
	}
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) != 4 {
		t.Fatalf("lines=%d, want 4: %q", len(lines), out)
	}

	code, out, _ = execute(t, "generate", "cloud", "pizza", "--count", "2", "--seed", "11", "--digits", "-1", "--format", "json")
	if code != 0 {
		t.Fatalf("exit=%d, want 0", code)
	}
	var labels []string
	if err := json.Unmarshal([]byte(out), &labels); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	for _, l := range labels {
		if !strings.Contains(l, "cloud") && !strings.Contains(l, "pizza") {
			t.Fatalf("label %q does not come from the phrase", l)
		}
	}

	if code, _, _ := execute(t, "generate", "--count", "0"); code != 2 {
		t.Fatalf("exit=%d, want 2 for --count 0", code)
	}
	if code, _, stderr := execute(t, "generate", "--digits", "64"); code != 2 || !strings.Contains(stderr, "--digits") {
		t.Fatalf("exit=%d, want 2 for --digits 64 (stderr=%s)", code, stderr)
	}
}

func TestDomains(t *testing.T) {
	nc := fakeNameCom(t, http.StatusOK)
	setCredentials(t, nc.URL, "http://127.0.0.1:1")

	code, out, stderr := execute(t, "domains", "--format", "plain")
	if code != 0 {
		t.Fatalf("exit=%d, want 0 (stderr=%s)", code, stderr)
	}
	if !strings.HasPrefix(out, "kelumo123.com\tfalse\t2027-10-19T00:00:00Z\tada.ns.cloudflare.com") {
		t.Fatalf("stdout=%q", out)
	}
}

func TestRecords(t *testing.T) {
	cf, zones := fakeCloudflare(t)
	setCredentials(t, "http://127.0.0.1:1", cf.URL)

	code, out, stderr := execute(t, "records", "list", "zone-1", "--format", "json")
	if code != 0 {
		t.Fatalf("exit=%d, want 0 (stderr=%s)", code, stderr)
	}
	var recs []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(out), &recs); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(recs) != 2 || recs[0].ID != "rec-1" {
		t.Fatalf("records=%+v", recs)
	}

	if code, _, stderr := execute(t, "records", "delete", "zone-1", "rec-2"); code != 0 {
		t.Fatalf("exit=%d, want 0 (stderr=%s)", code, stderr)
	}
	zones.mu.Lock()
	deleted := append([]string(nil), zones.deleted...)
	zones.mu.Unlock()
	if len(deleted) != 1 || deleted[0] != "rec-2" {
		t.Fatalf("deleted=%v, want [rec-2]", deleted)
	}

	if code, _, _ := execute(t, "records", "list"); code != 2 {
		t.Fatalf("exit=%d, want 2 without zone id", code)
	}
}

func TestZones(t *testing.T) {
	cf, _ := fakeCloudflare(t)
	setCredentials(t, "http://127.0.0.1:1", cf.URL)

	code, out, stderr := execute(t, "zones", "--format", "plain")
	if code != 0 {
		t.Fatalf("exit=%d, want 0 (stderr=%s)", code, stderr)
	}
	if out != "zone-1\tkelumo123.com\tactive\tada.ns.cloudflare.com,bob.ns.cloudflare.com\n" {
		t.Fatalf("stdout=%q", out)
	}

	code, out, _ = execute(t, "zones", "--format", "json")
	if code != 0 {
		t.Fatalf("exit=%d, want 0", code)
	}
	var zones []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(out), &zones); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(zones) != 1 || zones[0].ID != "zone-1" {
		t.Fatalf("zones=%+v", zones)
	}

	clearEnv(t)
	if code, _, _ := execute(t, "zones"); code != 2 {
		t.Fatalf("exit=%d, want 2 without cloudflare credentials", code)
	}
}
