package gateway

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, ipnSecret string) *Client {
	client, err := NewClient(Config{
		BaseURL:           "https://gateway.test/v1",
		APIKey:            "test-key",
		IPNSecret:         ipnSecret,
		MinAmount:         decimal.NewFromInt(10),
		MaxAmount:         decimal.NewFromInt(100000),
		SupportedNetworks: []string{"btc", "eth"},
	}, nil)
	require.NoError(t, err)
	return client
}

func sign(t *testing.T, secret string, payload []byte) string {
	canonical, err := canonicalize(payload)
	require.NoError(t, err)

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(canonical)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyIPN(t *testing.T) {
	const secret = "ipn-secret"
	payload := []byte(`{"payment_id":"5077125051","payment_status":"finished","actually_paid":0.0156}`)

	tests := []struct {
		name      string
		secret    string
		body      []byte
		signature func() string
		valid     bool
		expectErr error
	}{
		{
			name:      "valid signature verifies",
			secret:    secret,
			body:      payload,
			signature: func() string { return sign(t, secret, payload) },
			valid:     true,
		},
		{
			name:   "reordered keys still verify",
			secret: secret,
			body:   []byte(`{"payment_status":"finished","payment_id":"5077125051","actually_paid":0.0156}`),
			signature: func() string {
				return sign(t, secret, payload)
			},
			valid: true,
		},
		{
			name:   "mutated payload fails",
			secret: secret,
			body:   []byte(`{"payment_id":"5077125051","payment_status":"finished","actually_paid":0.0157}`),
			signature: func() string {
				return sign(t, secret, payload)
			},
			valid: false,
		},
		{
			name:   "mutated signature fails",
			secret: secret,
			body:   payload,
			signature: func() string {
				s := sign(t, secret, payload)
				if s[0] == 'a' {
					return "b" + s[1:]
				}
				return "a" + s[1:]
			},
			valid: false,
		},
		{
			name:   "html characters are signed unescaped",
			secret: secret,
			body:   []byte(`{"order_description":"BTC <pending> & more","payment_id":"5077125051"}`),
			signature: func() string {
				// The signer emits <, > and & literally; the signature is
				// over the raw sorted-compact form, not a Go-escaped one.
				mac := hmac.New(sha512.New, []byte(secret))
				mac.Write([]byte(`{"order_description":"BTC <pending> & more","payment_id":"5077125051"}`))
				return hex.EncodeToString(mac.Sum(nil))
			},
			valid: true,
		},
		{
			name:      "missing signature is a failure, not an error",
			secret:    secret,
			body:      payload,
			signature: func() string { return "" },
			valid:     false,
		},
		{
			name:      "wrong secret fails",
			secret:    secret,
			body:      payload,
			signature: func() string { return sign(t, "other-secret", payload) },
			valid:     false,
		},
		{
			name:      "missing secret errors",
			secret:    "",
			body:      payload,
			signature: func() string { return sign(t, secret, payload) },
			valid:     false,
			expectErr: ErrNotConfigured,
		},
		{
			name:      "malformed payload errors",
			secret:    secret,
			body:      []byte(`[1,2`),
			signature: func() string { return "deadbeef" },
			valid:     false,
			expectErr: ErrMalformedPayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.secret)

			valid, err := client.VerifyIPN(tt.body, tt.signature())

			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.valid, valid)
		})
	}
}

func TestCanonicalizeDeterministic(t *testing.T) {
	a, err := canonicalize([]byte(`{"b":2,"a":1,"nested":{"y":"z","x":"w"}}`))
	require.NoError(t, err)
	b, err := canonicalize([]byte(`{"nested":{"x":"w","y":"z"},"a":1,"b":2}`))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, `{"a":1,"b":2,"nested":{"x":"w","y":"z"}}`, string(a))
}

func TestCanonicalizeKeepsHTMLCharacters(t *testing.T) {
	canonical, err := canonicalize([]byte(`{"desc":"a <b> & c"}`))
	require.NoError(t, err)

	assert.Equal(t, `{"desc":"a <b> & c"}`, string(canonical))
}
