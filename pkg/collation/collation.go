package collation

import (
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	mu       sync.Mutex
	collator = collate.New(language.Und, collate.Numeric)
)

// Compare orders two names the way a person would read them: locale aware,
// with digit runs compared by numeric value ("Stage 2" < "Stage 10").
// Names that collate equal fall back to byte order so the result is total.
func Compare(a, b string) int {
	mu.Lock()
	c := collator.CompareString(a, b)
	mu.Unlock()

	if c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// Less reports whether a sorts before b
func Less(a, b string) bool {
	return Compare(a, b) < 0
}
