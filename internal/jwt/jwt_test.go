package jwt

import (
	"encoding/base64"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonbeautifier/internal/errors"
	"github.com/mcncl/jsonbeautifier/internal/formatter"
	"github.com/mcncl/jsonbeautifier/internal/parser"
)

func segment(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func TestDecode_ValidToken(t *testing.T) {
	token := segment(`{"alg":"HS256","typ":"JWT"}`) + "." +
		segment(`{"sub":"1234567890","name":"John Doe","iat":1516239022}`) + "." +
		"SflKxwRJSMeKKF2QT4fwpMeJf36POk6yJV_adQssw5c"

	doc, err := Decode(token)
	require.NoError(t, err)

	root, err := parser.ParseBytes(doc)
	require.NoError(t, err)

	expected := `{
  "header": {
    "alg": "HS256",
    "typ": "JWT"
  },
  "payload": {
    "sub": "1234567890",
    "name": "John Doe",
    "iat": 1516239022
  },
  "signature": "SflKxwRJSMeKKF2QT4fwpMeJf36POk6yJV_adQssw5c"
}`
	assert.Equal(t, expected, formatter.NewFormatter().Format(root))
}

func TestDecode_URLSafeAlphabet(t *testing.T) {
	// "?>?" encodes to "Pz4_" in base64url, exercising the '_' mapping.
	payload := `{"q":"?>?"}`
	encoded := base64.RawURLEncoding.EncodeToString([]byte(payload))
	require.True(t, strings.ContainsAny(encoded, "-_"), "fixture should use the url-safe alphabet: %s", encoded)

	doc, err := Decode(segment(`{}`) + "." + encoded + ".sig")
	require.NoError(t, err)
	assert.Contains(t, string(doc), `"q":"?>?"`)
}

func TestDecode_WrongPartCount(t *testing.T) {
	tests := []string{
		"",
		"onlyonepart",
		"two.parts",
		"a.b.c.d",
	}

	for _, token := range tests {
		t.Run(token, func(t *testing.T) {
			_, err := Decode(token)
			require.Error(t, err)
			assert.True(t, errors.IsFormat(err))
			assert.Equal(t, "JWT Decoding Error: Invalid JWT format. A JWT must have 3 parts separated by dots.", errors.InlineMessage(err))
		})
	}
}

func TestDecode_SegmentNotJSON(t *testing.T) {
	_, err := Decode(segment(`{"alg":"none"}`) + "." + segment(`not json`) + ".sig")
	require.Error(t, err)
	assert.True(t, errors.IsFormat(err))
	assert.False(t, errors.IsSyntax(err))
	assert.True(t, strings.HasPrefix(errors.InlineMessage(err), "JWT Decoding Error: "))
}

func TestDecode_HeaderNotBase64(t *testing.T) {
	_, err := Decode("!!!!." + segment(`{}`) + ".sig")
	require.Error(t, err)
	assert.True(t, errors.IsFormat(err))
}

func TestDecodeBase64URL_PaddingRule(t *testing.T) {
	tests := []struct {
		name    string
		plain   string
		wantLen int
	}{
		{"remainder 0 needs no padding", "abc", 0},
		{"remainder 2 gets ==", "a", 2},
		{"remainder 3 gets =", "ab", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := segment(tt.plain)
			require.Equal(t, tt.wantLen, len(encoded)%4)

			decoded, err := DecodeBase64URL(encoded)
			require.NoError(t, err)
			assert.Equal(t, tt.plain, string(decoded))
		})
	}
}

func TestDecodeBase64URL_RemainderOneFails(t *testing.T) {
	_, err := DecodeBase64URL("abcde")
	require.Error(t, err)
	assert.True(t, errors.IsFormat(err))
	assert.True(t, stderrors.Is(err, errors.ErrInvalidJWT))
	assert.Equal(t, "JWT Decoding Error: Illegal base64url string!", errors.InlineMessage(err))
}
