package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	stderrors "errors" // Standard errors package

	"github.com/tidwall/gjson"

	"github.com/mcncl/jsonbeautifier/internal/errors" // Custom errors package
	"github.com/mcncl/jsonbeautifier/internal/models"
)

// Parse reads a single JSON value from an io.Reader into an ordered value tree
func Parse(reader io.Reader) (*models.Value, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.NewInputError("failed to read input", err)
	}
	return ParseBytes(data)
}

// ParseBytes parses a single JSON value. Syntax problems are reported as
// parsing errors carrying the decoder's message and byte offset.
func ParseBytes(data []byte) (*models.Value, error) {
	if err := validate(data); err != nil {
		return nil, err
	}
	// The document is known to be valid here, so gjson can walk it in
	// source order.
	return build(gjson.ParseBytes(data)), nil
}

// validate checks that data holds exactly one well-formed JSON value.
func validate(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var raw json.RawMessage
	if err := decoder.Decode(&raw); err != nil {
		if stderrors.Is(err, io.EOF) { // io.EOF means nothing but whitespace was read
			return errors.NewSyntaxError("input is empty or contains only whitespace", errors.NoOffset, errors.ErrEmptyInput)
		}
		if stderrors.Is(err, io.ErrUnexpectedEOF) {
			return errors.NewSyntaxError("unexpected end of JSON input", int64(len(data)), errors.ErrInvalidJSON)
		}
		var syntaxError *json.SyntaxError
		if stderrors.As(err, &syntaxError) {
			return errors.NewSyntaxError(syntaxError.Error(), syntaxError.Offset, errors.ErrInvalidJSON)
		}
		return errors.NewSyntaxError("failed to decode JSON", errors.NoOffset, err)
	}

	// Anything other than whitespace after the first value is an error. The
	// full unmarshal reports it with the offset of the offending character.
	rest := data[decoder.InputOffset():]
	if len(bytes.TrimSpace(rest)) == 0 {
		return nil
	}
	cause := errors.ErrInvalidJSON
	if json.Valid(rest) {
		cause = errors.ErrMultipleJSON
	}
	var ignored json.RawMessage
	err := json.Unmarshal(data, &ignored)
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewSyntaxError(syntaxError.Error(), syntaxError.Offset, cause)
	}
	return errors.NewSyntaxError("invalid trailing data after first JSON value", decoder.InputOffset(), cause)
}

// build converts a gjson result into the model, keeping object member order.
// A repeated key keeps its first position and its last value.
func build(r gjson.Result) *models.Value {
	switch r.Type {
	case gjson.False:
		return models.Bool(false)
	case gjson.True:
		return models.Bool(true)
	case gjson.Number:
		return models.Number(CanonicalNumber(r.Raw))
	case gjson.String:
		return models.String(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			items := []*models.Value{}
			r.ForEach(func(_, value gjson.Result) bool {
				items = append(items, build(value))
				return true
			})
			return models.Array(items...)
		}
		members := []models.Member{}
		index := map[string]int{}
		r.ForEach(func(key, value gjson.Result) bool {
			child := build(value)
			if i, seen := index[key.Str]; seen {
				members[i].Value = child
				return true
			}
			index[key.Str] = len(members)
			members = append(members, models.Member{Key: key.Str, Value: child})
			return true
		})
		return models.Object(members...)
	default:
		return models.Null()
	}
}

// CanonicalNumber rewrites a JSON number literal the way a float64 is written
// back out: "1.0" becomes "1", "1E3" becomes "1000", "1e-7" stays "1e-7".
// Literals beyond float64 range are kept as written.
func CanonicalNumber(literal string) string {
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return literal
	}
	if f == 0 {
		return "0"
	}
	out, err := json.Marshal(f)
	if err != nil {
		return literal
	}
	return string(out)
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (*models.Value, error) {
	if strings.TrimSpace(jsonString) == "" {
		// Provide a specific error for truly empty or whitespace-only strings
		return nil, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return ParseBytes([]byte(jsonString))
}

// ReadFile reads the raw text of an input file, rejecting missing and empty files
func ReadFile(filePath string) (string, error) {
	if strings.TrimSpace(filePath) == "" {
		return "", errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		// Check if the file doesn't exist
		if os.IsNotExist(err) {
			return "", errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return "", errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return "", errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}
	return string(data), nil
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (*models.Value, error) {
	text, err := ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return ParseString(text)
}
