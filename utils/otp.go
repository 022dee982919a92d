package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

// OTPTTL is the verification window for a freshly generated code.
const OTPTTL = 10 * time.Minute

// GenerateOTP returns a 6-digit code drawn uniformly from 100000-999999
// and the instant it expires. Persisting the pair is the caller's job.
func GenerateOTP() (string, time.Time) {
	var code int64
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// fallback to a time-based code if crypto/rand fails (very rare)
		code = 100000 + time.Now().UnixNano()%900000
	} else {
		code = 100000 + n.Int64()
	}
	return strconv.FormatInt(code, 10), time.Now().UTC().Add(OTPTTL)
}
