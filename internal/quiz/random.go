package quiz

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// pickRandom selects one element uniformly using crypto/rand. Question
// selection must not be predictable from previous picks.
func pickRandom[T any](items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, fmt.Errorf("pick from empty slice")
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(items))))
	if err != nil {
		return zero, fmt.Errorf("random pick: %w", err)
	}
	return items[n.Int64()], nil
}
