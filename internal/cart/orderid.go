package cart

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"
	"unicode"
)

const orderIDSuffixChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewOrderID builds the human-readable order identifier that also serves as
// the order document key: a 3-letter prefix from the first item's medicine
// name, the total rounded to the nearest integer, a YYMMDD date stamp and a
// 2-character random suffix, e.g. PAR276250520X7. The suffix only guards
// against same-day collisions; callers must treat a duplicate key on insert
// as retryable.
func NewOrderID(firstItemName string, total float64, at time.Time) (string, error) {
	suffix, err := randomSuffix(2)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%d%s%s",
		orderIDPrefix(firstItemName),
		int64(math.Round(total)),
		at.Format("060102"),
		suffix,
	), nil
}

func orderIDPrefix(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		trimmed = "ORDER"
	}

	runes := []rune(strings.ToUpper(trimmed))
	if len(runes) > 3 {
		runes = runes[:3]
	}

	// Non-ASCII or punctuation in a medicine name would leak into the
	// document key; fold anything unexpected to 'X'.
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) || r > unicode.MaxASCII {
			runes[i] = 'X'
		}
	}

	return string(runes)
}

func randomSuffix(length int) (string, error) {
	out := make([]byte, length)
	max := big.NewInt(int64(len(orderIDSuffixChars)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = orderIDSuffixChars[n.Int64()]
	}
	return string(out), nil
}
