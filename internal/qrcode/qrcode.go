// Package qrcode encodes and decodes ticket QR payloads.
//
// A payload is CBOR (core deterministic encoding) wrapped in an envelope
// and rendered as unpadded base64url so it survives being printed as a
// QR code or pasted into a URL. When a signing secret is configured the
// envelope carries a BLAKE3 keyed MAC over the payload bytes and
// scanners reject payloads whose MAC does not verify.
package qrcode

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"go-gin-rsvp/internal/model"
	apperrors "go-gin-rsvp/pkg/app_errors"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/zeebo/blake3"
)

var (
	ErrInvalidFormat    = fmt.Errorf("%s: %w", model.CheckInReasonInvalidFormat, apperrors.ErrInvalidPayload)
	ErrInvalidSignature = fmt.Errorf("%s: %w", model.CheckInReasonInvalidSignature, apperrors.ErrInvalidPayload)
)

// macDomain separates QR MACs from any other use of the same secret.
var macDomain = []byte("go-gin-rsvp.ticket.qr.v1")

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("qrcode: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("qrcode: CBOR decoder initialization failed: " + err.Error())
	}
}

type envelope struct {
	Payload cbor.RawMessage `cbor:"1,keyasint"`
	MAC     []byte          `cbor:"2,keyasint,omitempty"`
}

// Codec is safe for concurrent use.
type Codec struct {
	key []byte
}

// NewCodec returns a Codec. An empty secret disables signing.
func NewCodec(secret string) *Codec {
	if secret == "" {
		return &Codec{}
	}
	key := blake3.Sum256([]byte(secret))
	return &Codec{key: key[:]}
}

// Signed reports whether payloads carry a MAC.
func (c *Codec) Signed() bool {
	return c.key != nil
}

// NewPayload builds the payload for a freshly issued ticket.
func NewPayload(rsvpID, userID, eventID uuid.UUID, issuedAt time.Time) (model.QRPayload, error) {
	checksum := make([]byte, 8)
	if _, err := rand.Read(checksum); err != nil {
		return model.QRPayload{}, fmt.Errorf("generate checksum: %w", err)
	}
	return model.QRPayload{
		RsvpID:   rsvpID,
		UserID:   userID,
		EventID:  eventID,
		IssuedAt: issuedAt.Unix(),
		Checksum: hex.EncodeToString(checksum),
	}, nil
}

func (c *Codec) Encode(payload model.QRPayload) (string, error) {
	body, err := encMode.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode qr payload: %w", err)
	}

	env := envelope{Payload: body}
	if c.key != nil {
		env.MAC = c.mac(body)
	}

	raw, err := encMode.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("encode qr envelope: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Decode 失敗時回傳 ErrInvalidFormat 或 ErrInvalidSignature
func (c *Codec) Decode(text string) (*model.QRPayload, error) {
	raw, err := base64.RawURLEncoding.DecodeString(text)
	if err != nil || len(raw) == 0 {
		return nil, ErrInvalidFormat
	}

	var env envelope
	if err := decMode.Unmarshal(raw, &env); err != nil || len(env.Payload) == 0 {
		return nil, ErrInvalidFormat
	}

	if c.key != nil {
		if len(env.MAC) == 0 || subtle.ConstantTimeCompare(env.MAC, c.mac(env.Payload)) != 1 {
			return nil, ErrInvalidSignature
		}
	}

	var payload model.QRPayload
	if err := decMode.Unmarshal(env.Payload, &payload); err != nil {
		return nil, ErrInvalidFormat
	}
	if payload.RsvpID == uuid.Nil || payload.EventID == uuid.Nil || payload.UserID == uuid.Nil {
		return nil, ErrInvalidFormat
	}

	return &payload, nil
}

func (c *Codec) mac(body []byte) []byte {
	hasher, err := blake3.NewKeyed(c.key)
	if err != nil {
		panic("qrcode: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(macDomain)
	hasher.Write(body)
	return hasher.Sum(nil)
}
