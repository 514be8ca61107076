package emailregistry

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
)

const (
	// DefaultMaxAttempts is the number of pattern/domain draws before falling back to a hash suffix
	DefaultMaxAttempts = 100

	fallbackHashLen = 8
)

// Domains are the mail providers candidate addresses are drawn from
var Domains = []string{
	"gmail.com", "yahoo.com", "outlook.com", "hotmail.com",
	"icloud.com", "protonmail.com", "aol.com", "mail.com",
	"live.com", "msn.com", "ymail.com", "inbox.com",
}

// pattern builds a local part from normalized first and last names
type pattern func(rng *rand.Rand, first, last string) string

var patterns = []pattern{
	func(_ *rand.Rand, f, l string) string { return f + "." + l },
	func(_ *rand.Rand, f, l string) string { return f + l },
	func(_ *rand.Rand, f, l string) string { return f + "_" + l },
	func(_ *rand.Rand, f, l string) string { return f[:1] + l },
	func(_ *rand.Rand, f, l string) string { return f + l[:1] },
	func(r *rand.Rand, f, l string) string { return fmt.Sprintf("%s.%s%d", f, l, 1+r.IntN(99)) },
	func(r *rand.Rand, f, _ string) string { return fmt.Sprintf("%s%d", f, 1+r.IntN(999)) },
	func(_ *rand.Rand, f, l string) string { return l + "." + f },
}

// Config holds registry tuning
type Config struct {
	// MaxAttempts bounds the pattern/domain draws per address; 0 goes straight to the hash fallback
	MaxAttempts int
	// ExpectedItems sizes the bloom filter; it keeps working past this, with more false positives
	ExpectedItems uint
	// FalsePositiveRate is the target false positive rate of the bloom filter
	FalsePositiveRate float64
	// ExactLimit caps the exact set. Once more addresses are issued the set is
	// dropped and the bloom filter alone remembers them: a false positive only
	// costs an extra draw, never a duplicate. 0 keeps every address.
	ExactLimit int
}

// DefaultConfig returns a configuration sized for long-running loops.
// The exact set stays well below the filter capacity so the filter is still
// accurate when it takes over.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:       DefaultMaxAttempts,
		ExpectedItems:     5_000_000,
		FalsePositiveRate: 0.001,
		ExactLimit:        100_000,
	}
}

// Registry owns the set of email addresses issued during the process lifetime.
// Every address goes into a bloom filter. Up to ExactLimit addresses are also
// kept in an exact set, which settles the filter's "maybe" answers; past the
// limit the set is released and "maybe" counts as issued.
//
// Registry is not safe for concurrent use.
type Registry struct {
	cfg       Config
	rng       *rand.Rand
	now       func() time.Time
	issued    map[string]struct{}
	exact     bool
	count     int
	filter    *bloom.BloomFilter
	fallbacks int
}

// New creates an empty registry drawing randomness from rng
func New(cfg Config, rng *rand.Rand) *Registry {
	if cfg.MaxAttempts < 0 {
		cfg.MaxAttempts = 0
	}
	if cfg.ExpectedItems == 0 {
		cfg.ExpectedItems = DefaultConfig().ExpectedItems
	}
	if cfg.FalsePositiveRate <= 0 || cfg.FalsePositiveRate >= 1 {
		cfg.FalsePositiveRate = DefaultConfig().FalsePositiveRate
	}
	if cfg.ExactLimit < 0 {
		cfg.ExactLimit = 0
	}

	return &Registry{
		cfg:    cfg,
		rng:    rng,
		now:    time.Now,
		issued: make(map[string]struct{}),
		exact:  true,
		filter: bloom.NewWithEstimates(cfg.ExpectedItems, cfg.FalsePositiveRate),
	}
}

// Issue returns a previously unissued address derived from the given names and records it
func (r *Registry) Issue(firstName, lastName string) string {
	first := normalize(firstName)
	last := normalize(lastName)

	for i := 0; i < r.cfg.MaxAttempts; i++ {
		p := patterns[r.rng.IntN(len(patterns))]
		email := p(r.rng, first, last) + "@" + Domains[r.rng.IntN(len(Domains))]
		if !r.Contains(email) {
			r.add(email)
			return email
		}
	}

	r.fallbacks++
	for salt := 0; ; salt++ {
		seed := fmt.Sprintf("%s%s%s", firstName, lastName, r.now().Format(time.RFC3339Nano))
		if salt > 0 {
			seed = fmt.Sprintf("%s#%d", seed, salt)
		}
		sum := md5.Sum([]byte(seed))
		suffix := hex.EncodeToString(sum[:])[:fallbackHashLen]
		email := first + "." + suffix + "@" + Domains[r.rng.IntN(len(Domains))]
		if !r.Contains(email) {
			r.add(email)
			return email
		}
	}
}

// Contains reports whether email may have been issued.
// It never reports false for an issued address. Once the exact set has been
// released it can report true for a fresh one.
func (r *Registry) Contains(email string) bool {
	if !r.filter.TestString(email) {
		return false
	}
	if !r.exact {
		return true
	}
	_, ok := r.issued[email]
	return ok
}

// Len returns the number of issued addresses
func (r *Registry) Len() int {
	return r.count
}

// Exact reports whether Contains is still backed by the exact set
func (r *Registry) Exact() bool {
	return r.exact
}

// Fallbacks returns how many addresses needed the hash suffix fallback
func (r *Registry) Fallbacks() int {
	return r.fallbacks
}

// Reset forgets every issued address
func (r *Registry) Reset() {
	r.issued = make(map[string]struct{})
	r.exact = true
	r.count = 0
	r.filter = bloom.NewWithEstimates(r.cfg.ExpectedItems, r.cfg.FalsePositiveRate)
	r.fallbacks = 0
}

func (r *Registry) add(email string) {
	r.filter.AddString(email)
	r.count++

	if !r.exact {
		return
	}
	r.issued[email] = struct{}{}
	if r.cfg.ExactLimit > 0 && len(r.issued) > r.cfg.ExactLimit {
		r.issued = nil
		r.exact = false
	}
}

// normalize lower-cases a name and keeps only characters valid in a plain local part
func normalize(name string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(name) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}
