package n8n

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// SignatureHeader carries "t=<unix_seconds>,v1=<hex_hmac_sha256>".
	SignatureHeader = "X-Webhook-Signature"

	// DefaultVerifyWindow mirrors the tolerance of the n8n receiver. The
	// receiver owns this trust decision; keep the two in sync.
	DefaultVerifyWindow = 300 * time.Second
)

var (
	ErrSignatureMalformed = errors.New("webhook signature malformed")
	ErrSignatureExpired   = errors.New("webhook signature timestamp outside tolerance")
	ErrSignatureMismatch  = errors.New("webhook signature mismatch")
)

// Sign produces the signature header value for a raw JSON body. The digest
// covers the string "<ts>.<body>".
func Sign(secret string, ts time.Time, body []byte) string {
	unix := ts.Unix()
	return fmt.Sprintf("t=%d,v1=%s", unix, computeDigest(secret, unix, body))
}

func computeDigest(secret string, unix int64, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(unix, 10)))
	mac.Write([]byte("."))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a signature header against a body. Rejects when the digest
// mismatches or when |now - ts| exceeds the window.
func Verify(secret, header string, body []byte, now time.Time, window time.Duration) error {
	if window <= 0 {
		window = DefaultVerifyWindow
	}
	var tsPart, sigPart string
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		switch {
		case strings.HasPrefix(part, "t="):
			tsPart = strings.TrimPrefix(part, "t=")
		case strings.HasPrefix(part, "v1="):
			sigPart = strings.TrimPrefix(part, "v1=")
		}
	}
	if tsPart == "" || sigPart == "" {
		return ErrSignatureMalformed
	}
	unix, err := strconv.ParseInt(tsPart, 10, 64)
	if err != nil {
		return ErrSignatureMalformed
	}
	drift := now.Unix() - unix
	if drift < 0 {
		drift = -drift
	}
	if time.Duration(drift)*time.Second > window {
		return ErrSignatureExpired
	}
	expected := computeDigest(secret, unix, body)
	if !hmac.Equal([]byte(expected), []byte(sigPart)) {
		return ErrSignatureMismatch
	}
	return nil
}
