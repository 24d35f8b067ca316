package qrcode

import (
	"encoding/base64"
	"testing"
	"time"

	"go-gin-rsvp/internal/model"
	apperrors "go-gin-rsvp/pkg/app_errors"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPayload(t *testing.T) model.QRPayload {
	t.Helper()
	p, err := NewPayload(uuid.New(), uuid.New(), uuid.New(), time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return p
}

func TestNewPayload(t *testing.T) {
	a := newTestPayload(t)
	b := newTestPayload(t)

	assert.Len(t, a.Checksum, 16)
	assert.NotEqual(t, a.Checksum, b.Checksum)
	assert.Equal(t, int64(1777658400), a.IssuedAt)
}

func TestCodec_RoundTrip(t *testing.T) {
	for _, secret := range []string{"", "qr-secret"} {
		codec := NewCodec(secret)
		payload := newTestPayload(t)

		text, err := codec.Encode(payload)
		require.NoError(t, err)
		assert.NotContains(t, text, "=")

		decoded, err := codec.Decode(text)
		require.NoError(t, err)
		assert.Equal(t, payload, *decoded)
	}
}

func TestCodec_Deterministic(t *testing.T) {
	codec := NewCodec("qr-secret")
	payload := newTestPayload(t)

	first, err := codec.Encode(payload)
	require.NoError(t, err)
	second, err := codec.Encode(payload)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCodec_InvalidFormat(t *testing.T) {
	codec := NewCodec("")

	cases := map[string]string{
		"not base64":   "not-valid-base64!!",
		"empty":        "",
		"not cbor":     base64.RawURLEncoding.EncodeToString([]byte("hello world")),
		"json payload": base64.RawURLEncoding.EncodeToString([]byte(`{"rsvp_id":"x"}`)),
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := codec.Decode(text)
			require.ErrorIs(t, err, ErrInvalidFormat)
			assert.ErrorIs(t, err, apperrors.ErrInvalidPayload)
		})
	}
}

func TestCodec_MissingIDs(t *testing.T) {
	codec := NewCodec("")
	payload := newTestPayload(t)
	payload.EventID = uuid.Nil

	text, err := codec.Encode(payload)
	require.NoError(t, err)

	_, err = codec.Decode(text)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestCodec_Signature(t *testing.T) {
	signer := NewCodec("qr-secret")
	assert.True(t, signer.Signed())
	assert.False(t, NewCodec("").Signed())

	payload := newTestPayload(t)

	t.Run("WrongSecret", func(t *testing.T) {
		text, err := NewCodec("other-secret").Encode(payload)
		require.NoError(t, err)

		_, err = signer.Decode(text)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("Unsigned", func(t *testing.T) {
		text, err := NewCodec("").Encode(payload)
		require.NoError(t, err)

		_, err = signer.Decode(text)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("TamperedPayload", func(t *testing.T) {
		text, err := signer.Encode(payload)
		require.NoError(t, err)

		raw, err := base64.RawURLEncoding.DecodeString(text)
		require.NoError(t, err)
		var env envelope
		require.NoError(t, cbor.Unmarshal(raw, &env))

		forged := payload
		forged.EventID = uuid.New()
		env.Payload, err = encMode.Marshal(forged)
		require.NoError(t, err)
		raw, err = encMode.Marshal(env)
		require.NoError(t, err)

		_, err = signer.Decode(base64.RawURLEncoding.EncodeToString(raw))
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("VerifierWithoutSecretAcceptsSigned", func(t *testing.T) {
		text, err := signer.Encode(payload)
		require.NoError(t, err)

		decoded, err := NewCodec("").Decode(text)
		require.NoError(t, err)
		assert.Equal(t, payload.RsvpID, decoded.RsvpID)
	})
}
