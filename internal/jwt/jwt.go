// Package jwt turns a compact JWT into a JSON document that can be rendered
// like any other input. The signature is never verified or decoded.
package jwt

import (
	"encoding/base64"
	"strings"

	"github.com/tidwall/sjson"

	"github.com/mcncl/jsonbeautifier/internal/errors"
	"github.com/mcncl/jsonbeautifier/internal/parser"
)

const (
	msgPartCount     = "Invalid JWT format. A JWT must have 3 parts separated by dots."
	msgIllegalBase64 = "Illegal base64url string!"
)

// Decode splits token into header, payload and signature and returns the
// document {"header": ..., "payload": ..., "signature": "..."} as compact
// JSON. Header and payload must be base64url-encoded JSON.
func Decode(token string) ([]byte, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, errors.NewFormatError(msgPartCount, errors.ErrInvalidJWT)
	}

	header, err := decodeSegment(parts[0])
	if err != nil {
		return nil, err
	}
	payload, err := decodeSegment(parts[1])
	if err != nil {
		return nil, err
	}

	doc := []byte(`{}`)
	if doc, err = sjson.SetRawBytes(doc, "header", header); err != nil {
		return nil, errors.NewFormatError("failed to assemble header", err)
	}
	if doc, err = sjson.SetRawBytes(doc, "payload", payload); err != nil {
		return nil, errors.NewFormatError("failed to assemble payload", err)
	}
	if doc, err = sjson.SetBytes(doc, "signature", parts[2]); err != nil {
		return nil, errors.NewFormatError("failed to assemble signature", err)
	}
	return doc, nil
}

// decodeSegment base64url-decodes one JWT segment and checks that it holds
// a JSON value.
func decodeSegment(segment string) ([]byte, error) {
	raw, err := DecodeBase64URL(segment)
	if err != nil {
		return nil, err
	}
	if _, err := parser.ParseBytes(raw); err != nil {
		// Report the parser's message but keep the error a JWT format
		// failure rather than a syntax error of the input.
		return nil, errors.NewFormatError(errors.InlineMessage(err), errors.ErrInvalidJWT)
	}
	return raw, nil
}

// DecodeBase64URL decodes a base64url segment whose padding may have been
// stripped. A length that leaves a remainder of 1 modulo 4 can never be
// valid and is rejected before decoding.
func DecodeBase64URL(segment string) ([]byte, error) {
	s := strings.NewReplacer("-", "+", "_", "/").Replace(segment)
	switch len(s) % 4 {
	case 0:
	case 2:
		s += "=="
	case 3:
		s += "="
	default:
		return nil, errors.NewFormatError(msgIllegalBase64, errors.ErrInvalidJWT)
	}
	out, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.NewFormatError(err.Error(), errors.ErrInvalidJWT)
	}
	return out, nil
}
