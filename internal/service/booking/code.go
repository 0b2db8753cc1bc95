package booking

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeGenerator issues reservation codes. Uniqueness is probabilistic;
// BookingService retries on a duplicate key at save time.
type CodeGenerator interface {
	Next() (string, error)
}

// RandomCodeGenerator builds codes as prefix + length characters drawn
// uniformly from A-Z0-9, using the random bits of v4 UUIDs.
type RandomCodeGenerator struct {
	prefix string
	length int
}

func NewRandomCodeGenerator(prefix string, length int) *RandomCodeGenerator {
	return &RandomCodeGenerator{prefix: strings.ToUpper(prefix), length: length}
}

func (g *RandomCodeGenerator) Next() (string, error) {
	if g.length <= 0 {
		return "", fmt.Errorf("reservation code length must be positive, got %d", g.length)
	}

	var b strings.Builder
	b.Grow(len(g.prefix) + g.length)
	b.WriteString(g.prefix)

	remaining := g.length
	for remaining > 0 {
		id, err := uuid.NewRandom()
		if err != nil {
			return "", fmt.Errorf("read entropy: %w", err)
		}
		for i, c := range id {
			// bytes 6 and 8 carry the version and variant bits
			if i == 6 || i == 8 {
				continue
			}
			// c%36 is uniform only below 252 = 7*36
			if c >= 252 {
				continue
			}
			b.WriteByte(codeAlphabet[int(c)%len(codeAlphabet)])
			remaining--
			if remaining == 0 {
				break
			}
		}
	}
	return b.String(), nil
}

var _ CodeGenerator = (*RandomCodeGenerator)(nil)
