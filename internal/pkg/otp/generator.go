package otp

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

const (
	// CodeLength is the number of digits in a passcode.
	CodeLength = 6

	codeMin = 100000
	codeMax = 999999
)

var codeSpan = big.NewInt(codeMax - codeMin + 1)

// Generator creates passcodes.
type Generator interface {
	Generate() (string, error)
}

// NumericGenerator draws codes uniformly from [100000, 999999] using
// crypto/rand. rand.Int rejects out-of-range samples, so there is no modulo
// bias.
type NumericGenerator struct {
	random io.Reader
}

// NewNumericGenerator returns a generator backed by crypto/rand.Reader.
func NewNumericGenerator() *NumericGenerator {
	return &NumericGenerator{random: rand.Reader}
}

// Generate returns a six digit code.
func (g *NumericGenerator) Generate() (string, error) {
	n, err := rand.Int(g.random, codeSpan)
	if err != nil {
		return "", fmt.Errorf("otp: generate code: %w", err)
	}

	return fmt.Sprintf("%0*d", CodeLength, n.Int64()+codeMin), nil
}
