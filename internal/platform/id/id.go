// Package id generates identifiers for stored records and printed receipts.
package id

import (
	"encoding/base32"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	nanoid "github.com/matoous/go-nanoid/v2"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// ReceiptAlphabet excludes characters that are easy to misread on thermal paper.
const ReceiptAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// ReceiptSuffixLength is the number of random characters in a receipt number.
const ReceiptSuffixLength = 6

// NewID returns a random UUIDv4 encoded as 26 lowercase base32 characters.
func NewID() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return strings.ToLower(encoding.EncodeToString(u[:])), nil
}

// NewReceiptNumber returns a human-friendly receipt number such as
// INV-20261015-K7PQ2M, dated in the shop's local time.
func NewReceiptNumber(now time.Time) (string, error) {
	suffix, err := nanoid.Generate(ReceiptAlphabet, ReceiptSuffixLength)
	if err != nil {
		return "", fmt.Errorf("generate receipt number: %w", err)
	}
	return "INV-" + now.Format("20060102") + "-" + suffix, nil
}
