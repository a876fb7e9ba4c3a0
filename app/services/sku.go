package services

import (
	"crypto/rand"
	"math/big"
)

const skuAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// SKUGenerator returns a random token of n characters from [A-Z0-9].
type SKUGenerator func(n int) (string, error)

// skuPlan is tried in order: short codes first, then longer ones once the
// short space looks crowded.
var skuPlan = []struct {
	length   int
	attempts int
}{
	{8, 10},
	{12, 5},
}

// RandomSKU draws n characters from crypto/rand.
func RandomSKU(n int) (string, error) {
	max := big.NewInt(int64(len(skuAlphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = skuAlphabet[idx.Int64()]
	}
	return string(b), nil
}
