package template

import (
	cryptorand "crypto/rand"
	"encoding/hex"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// UUID functions

// funcUUIDShort returns the first 8 characters of a UUID v4
func funcUUIDShort() string {
	return uuid.New().String()[:8]
}

// funcUnix returns the current Unix timestamp in seconds
func funcUnix() string {
	return strconv.FormatInt(time.Now().Unix(), 10)
}

// Random functions

// funcRandomHex returns 8 random hex characters
func funcRandomHex() string {
	b := make([]byte, 4)
	if _, err := cryptorand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}

// funcRandomInt returns a random integer between min and max (inclusive) as a string
func funcRandomInt(min, max int) string {
	if min > max {
		return ""
	}
	// The span is computed in uint64 so ranges wider than MaxInt work.
	span := uint64(max) - uint64(min)
	var offset uint64
	if span == math.MaxUint64 {
		offset = rand.Uint64()
	} else {
		offset = rand.Uint64N(span + 1)
	}
	return strconv.Itoa(int(uint64(min) + offset))
}

// funcRandomFloat returns a random float between 0 and 1 as a string
func funcRandomFloat() string {
	return fmt.Sprintf("%f", rand.Float64())
}

// funcRandomFloatRange returns a random float in [min, max) formatted with
// the given precision (default 2).
func funcRandomFloatRange(minStr, maxStr, precisionStr string) string {
	min, err1 := strconv.ParseFloat(minStr, 64)
	max, err2 := strconv.ParseFloat(maxStr, 64)
	if err1 != nil || err2 != nil || min > max {
		return ""
	}
	precision := 2
	if precisionStr != "" {
		if p, err := strconv.Atoi(precisionStr); err == nil {
			precision = p
		}
	}
	return strconv.FormatFloat(min+rand.Float64()*(max-min), 'f', precision, 64)
}

// funcRandomString returns a random alphanumeric string of the given length
func funcRandomString(length int) string {
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(alphanumeric[rand.IntN(len(alphanumeric))])
	}
	return b.String()
}

// String functions

// funcUpper converts a string to uppercase
func funcUpper(s string) string {
	return strings.ToUpper(s)
}

// funcLower converts a string to lowercase
func funcLower(s string) string {
	return strings.ToLower(s)
}

// funcDefault returns value if non-empty, otherwise returns fallback
func funcDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

// formatValue converts an arbitrary value to a string representation.
func formatValue(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
