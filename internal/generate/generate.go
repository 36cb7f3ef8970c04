package generate

import (
	"math/rand"
	"strings"
	"time"
	"unicode"
)

type Options struct {
	// Phrase seeds labels with its words instead of random syllables.
	Phrase      string
	MinTokenLen int

	Syllables int // syllables in a random stem
	Digits    int // numeric suffix length; 0 means 3, negative means none, capped at MaxDigits

	Seed int64 // 0 = time-based
}

// Generator produces candidate domain labels such as "bavoki482". It is not
// safe for concurrent use.
type Generator struct {
	opts  Options
	rand  *rand.Rand
	stems []string
}

func New(opts Options) *Generator {
	if opts.MinTokenLen <= 0 {
		opts.MinTokenLen = 2
	}
	if opts.Syllables <= 0 {
		opts.Syllables = 3
	}
	if opts.Digits < 0 {
		opts.Digits = 0
	} else if opts.Digits == 0 {
		opts.Digits = 3
	} else if opts.Digits > MaxDigits {
		opts.Digits = MaxDigits
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	return &Generator{
		opts:  opts,
		rand:  rand.New(rand.NewSource(opts.Seed)),
		stems: Stems(opts.Phrase, opts.MinTokenLen),
	}
}

// MaxDigits keeps at least one stem character inside a 63-byte label.
const MaxDigits = 62

var (
	consonants = "bcdfghjklmnprstvz"
	vowels     = "aeiou"
)

// Label returns one candidate label. Every result is a valid DNS label.
func (g *Generator) Label() string {
	var stem string
	if len(g.stems) > 0 {
		stem = g.stems[g.rand.Intn(len(g.stems))]
	} else {
		stem = g.syllables(g.opts.Syllables)
	}

	suffix := g.digits(g.opts.Digits)
	label := fit(stem, suffix)
	if !isValidLabel(label) {
		// Only reachable with a pathological phrase; fall back to random.
		return fit(g.syllables(g.opts.Syllables), suffix)
	}
	return label
}

// fit cuts stem so that stem+suffix is at most 63 bytes.
func fit(stem, suffix string) string {
	if limit := 63 - len(suffix); len(stem) > limit {
		stem = strings.TrimRight(stem[:limit], "-")
	}
	return stem + suffix
}

// Labels returns n distinct labels, giving up after a bounded number of
// collisions (small phrase + no digits can't produce n unique values).
func (g *Generator) Labels(n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, 0, n)
	seen := make(map[string]struct{}, n)
	for attempts := 0; len(out) < n && attempts < n*20; attempts++ {
		l := g.Label()
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

func (g *Generator) syllables(n int) string {
	var b strings.Builder
	b.Grow(n * 2)
	for i := 0; i < n; i++ {
		b.WriteByte(consonants[g.rand.Intn(len(consonants))])
		b.WriteByte(vowels[g.rand.Intn(len(vowels))])
	}
	return b.String()
}

func (g *Generator) digits(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('0' + g.rand.Intn(10))
	}
	return string(b)
}

// Stems turns a phrase into label stems: the whole phrase concatenated, its
// contiguous word pairs, and each word on its own.
func Stems(phrase string, minTokenLen int) []string {
	tokens := tokenize(strings.TrimSpace(phrase), minTokenLen)
	if len(tokens) == 0 {
		return nil
	}

	var out []string
	seen := map[string]struct{}{}
	add := func(s string) {
		if !isValidLabel(s) {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(strings.Join(tokens, ""))
	for i := 0; i+1 < len(tokens); i++ {
		add(tokens[i] + tokens[i+1])
		add(tokens[i] + "-" + tokens[i+1])
	}
	for _, t := range tokens {
		add(t)
	}
	return out
}

func tokenize(s string, minLen int) []string {
	s = strings.ToLower(s)
	var tokens []string
	var cur []rune
	flush := func() {
		if len(cur) == 0 {
			return
		}
		t := string(cur)
		cur = cur[:0]
		if len(t) < minLen {
			return
		}
		tokens = append(tokens, t)
	}

	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			cur = append(cur, r)
		case r >= '0' && r <= '9':
			cur = append(cur, r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			// Drop non-ASCII letters/digits for now.
			flush()
		default:
			flush()
		}
	}
	flush()
	return tokens
}

func isValidLabel(label string) bool {
	if label == "" || len(label) > 63 {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for i := 0; i < len(label); i++ {
		c := label[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' {
			continue
		}
		return false
	}
	return true
}
