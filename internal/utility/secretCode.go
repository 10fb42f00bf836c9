package utility

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateRandomCode returns a six digit code between 100000 and 999999.
func GenerateRandomCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		panic(fmt.Sprintf("reading random source: %v", err))
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}
