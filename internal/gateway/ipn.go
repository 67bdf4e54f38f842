package gateway

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
)

// SignatureHeader carries the HMAC signature on inbound notifications.
const SignatureHeader = "x-nowpayments-sig"

var ErrMalformedPayload = errors.New("malformed notification payload")

// VerifyIPN authenticates an inbound payment notification: the provider
// signs the canonical form of the payload (keys sorted lexicographically,
// compact separators) with HMAC-SHA512 over the shared IPN secret.
//
// A wrong or missing signature returns false without an error; errors are
// reserved for a missing secret and for payloads that cannot be
// canonicalized at all.
func (c *Client) VerifyIPN(body []byte, signature string) (bool, error) {
	if c.cfg.IPNSecret == "" {
		return false, ErrNotConfigured
	}
	if signature == "" {
		zap.L().Warn("notification missing signature")
		return false, nil
	}

	canonical, err := canonicalize(body)
	if err != nil {
		return false, err
	}

	mac := hmac.New(sha512.New, []byte(c.cfg.IPNSecret))
	mac.Write(canonical)
	expected := hex.EncodeToString(mac.Sum(nil))

	valid := hmac.Equal([]byte(expected), []byte(signature))
	if !valid {
		zap.L().Warn("notification signature mismatch")
	}
	return valid, nil
}

// canonicalize re-encodes a JSON object deterministically. encoding/json
// marshals map keys in sorted order with compact separators, which is
// exactly the canonical form the signing side uses; json.Number keeps
// numeric literals byte-identical through the round trip. HTML escaping
// is disabled because the signer does not escape <, > or &. Non-ASCII
// runes would still diverge (the signer emits \uXXXX escapes), but the
// provider's payload fields are ASCII.
func canonicalize(body []byte) ([]byte, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var payload map[string]any
	if err := decoder.Decode(&payload); err != nil {
		return nil, ErrMalformedPayload
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(payload); err != nil {
		return nil, ErrMalformedPayload
	}
	// Encode terminates the stream with a newline the signer never sees.
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
