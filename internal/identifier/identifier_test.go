package identifier_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fcsolar/pos/internal/identifier"
)

func TestGenerator_NewID_Format(t *testing.T) {
	gen := identifier.New()

	id := gen.NewID(identifier.PrefixOrder)
	assert.Regexp(t, regexp.MustCompile(`^ORD-\d+$`), id)

	id = gen.NewID(identifier.PrefixSale)
	assert.Regexp(t, regexp.MustCompile(`^SALE-\d+$`), id)
}

func TestGenerator_NewID_UniqueUnderRapidCreation(t *testing.T) {
	gen := identifier.New()

	seen := make(map[string]struct{})

	for i := 0; i < 10_000; i++ {
		id := gen.NewID(identifier.PrefixOrder)

		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}
