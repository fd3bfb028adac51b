package coupon

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
)

// SuffixLength is the number of base36 characters after the prefix separator.
const SuffixLength = 6

// CodeSpace is the number of distinct suffixes: 36^6.
const CodeSpace int64 = 36 * 36 * 36 * 36 * 36 * 36

// randomGenerator draws uniformly from [0, CodeSpace) and renders base36.
type randomGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a suffix generator backed by src.
// A nil src uses the runtime's ChaCha8 source, which is seeded per process
// and safe for concurrent use. A non-nil src is serialised by the generator
// and must not be shared with other users.
func NewGenerator(src rand.Source) Generator {
	if src == nil {
		return &randomGenerator{}
	}
	return &randomGenerator{rng: rand.New(src)}
}

// Suffix returns a zero-padded, upper-case base36 string of SuffixLength characters.
func (g *randomGenerator) Suffix() string {
	var n int64
	if g.rng != nil {
		g.mu.Lock()
		n = g.rng.Int64N(CodeSpace)
		g.mu.Unlock()
	} else {
		n = rand.Int64N(CodeSpace)
	}
	return FormatSuffix(n)
}

// FormatSuffix renders n in base36, upper-cased and left-padded with zeros.
func FormatSuffix(n int64) string {
	s := strings.ToUpper(strconv.FormatInt(n, 36))
	if len(s) < SuffixLength {
		s = strings.Repeat("0", SuffixLength-len(s)) + s
	}
	return s
}

// Code joins a campaign prefix and a suffix.
func Code(prefix, suffix string) string {
	return prefix + "-" + suffix
}
