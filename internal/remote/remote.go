package remote

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Kind classifies how a remote call failed.
type Kind string

const (
	// KindTransport covers network failures and timeouts: no usable response arrived.
	KindTransport Kind = "transport"
	// KindApplication means the API answered with a non-2xx status or an explicit
	// failure envelope.
	KindApplication Kind = "application"
	// KindEmpty means the API answered 2xx but the payload lacked what the caller needs.
	KindEmpty Kind = "empty"
)

// Error is the error returned by every provider client. Callers switch on Kind
// instead of guessing from a nil result.
type Error struct {
	Provider string
	Op       string
	Kind     Kind
	Status   int    // HTTP status, 0 for transport failures
	Message  string // provider-reported message when available
	Body     string // raw (truncated) response body
	Err      error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(e.Provider)
	if e.Op != "" {
		b.WriteString(" ")
		b.WriteString(e.Op)
	}
	fmt.Fprintf(&b, ": %s", e.Kind)
	if e.Status != 0 {
		fmt.Fprintf(&b, " (http %d)", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func NewTransport(provider, op string, err error) *Error {
	return &Error{Provider: provider, Op: op, Kind: KindTransport, Err: err}
}

func NewApplication(provider, op string, status int, message, body string) *Error {
	return &Error{Provider: provider, Op: op, Kind: KindApplication, Status: status, Message: message, Body: Truncate(body, 512)}
}

func NewEmpty(provider, op string, status int, body string) *Error {
	return &Error{Provider: provider, Op: op, Kind: KindEmpty, Status: status, Message: "empty payload", Body: Truncate(body, 512)}
}

// IsKind reports whether err (or anything it wraps) is a remote *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind == kind
	}
	return false
}

// KindOf returns the Kind of the first remote *Error in err's chain, or "".
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}

func Truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
