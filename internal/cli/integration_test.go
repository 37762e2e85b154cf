package cli_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCLI_FileInputOutput tests the CLI with file input and output
func TestCLI_FileInputOutput(t *testing.T) {
	tempDir := t.TempDir()

	jsonContent := `{
		"name": "John Doe",
		"age": 30,
		"address": {"street": "123 Main St", "zip": "12345"},
		"phones": [{"type": "home"}, {"type": "work"}],
		"active": true
	}`
	jsonFile := filepath.Join(tempDir, "test.json")
	require.NoError(t, os.WriteFile(jsonFile, []byte(jsonContent), 0644))

	outputFile := filepath.Join(tempDir, "output.json")

	cmd := exec.Command("go", "run", "../../main.go", "-i", jsonFile, "-o", outputFile)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "CLI command failed: %s", string(output))

	formatted, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	expected := `{
  "name": "John Doe",
  "age": 30,
  "address": {
    "street": "123 Main St",
    "zip": "12345"
  },
  "phones": [
    {
      "type": "home"
    },
    {
      "type": "work"
    }
  ],
  "active": true
}
`
	assert.Equal(t, expected, string(formatted))
}

// TestCLI_StdinStdout tests piping a document through the CLI
func TestCLI_StdinStdout(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "--no-color")
	cmd.Stdin = strings.NewReader(`{"b":1,"a":[true,null,"x"]}`)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	require.NoError(t, err, "CLI command failed: %s", stderr.String())

	assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": [\n    true,\n    null,\n    \"x\"\n  ]\n}\n", stdout.String())
}

// TestCLI_Compact tests minified output
func TestCLI_Compact(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "--compact")
	cmd.Stdin = strings.NewReader("[\n  1,\n  {\"a\": \"b\"}\n]\n")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	require.NoError(t, cmd.Run())
	assert.Equal(t, "[1,{\"a\":\"b\"}]\n", stdout.String())
}

// TestCLI_JWT tests decoding a token
func TestCLI_JWT(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "-j", "-q", "payload")
	cmd.Stdin = strings.NewReader("eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJzdWIiOiIxMjMifQ.sig\n")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	require.NoError(t, err, "CLI command failed: %s", stderr.String())
	assert.Equal(t, "{\n  \"sub\": \"123\"\n}\n", stdout.String())
}

// TestCLI_InvalidJWT tests the JWT error message
func TestCLI_InvalidJWT(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "--jwt")
	cmd.Stdin = strings.NewReader("only.two")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	assert.Error(t, err, "CLI should fail with a malformed token")
	assert.Contains(t, stderr.String(), "JWT Decoding Error")
}

// TestCLI_InvalidJSON tests the CLI with invalid JSON input
func TestCLI_InvalidJSON(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go")
	cmd.Stdin = strings.NewReader(`{"name": "Invalid JSON, "age": 30}`)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	assert.Error(t, err, "CLI should fail with invalid JSON")
	assert.Contains(t, stderr.String(), "JSON parsing error")
}

// TestCLI_EmptyInput tests the CLI with empty input
func TestCLI_EmptyInput(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go")
	cmd.Stdin = strings.NewReader("")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	assert.Error(t, err, "CLI should fail with empty input")
	assert.Contains(t, stderr.String(), "empty input")
}

// TestCLI_ConfigFile tests that an explicit config file is honored
func TestCLI_ConfigFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "jsonbeautifier.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("output:\n  indent: 4\n  color: never\n"), 0644))

	cmd := exec.Command("go", "run", "../../main.go", "-c", configFile)
	cmd.Stdin = strings.NewReader(`{"a":[1]}`)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	require.NoError(t, cmd.Run())
	assert.Equal(t, "{\n    \"a\": [\n        1\n    ]\n}\n", stdout.String())
}

// TestCLI_Version tests the version flag
func TestCLI_Version(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "-v")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err)
	assert.Contains(t, string(output), "jsonbeautifier version")
}

// TestCLI_Help tests the help output
func TestCLI_Help(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "--help")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err)

	helpOutput := string(output)
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "-i, --input")
	assert.Contains(t, helpOutput, "-o, --output")
	assert.Contains(t, helpOutput, "-j, --jwt")
	assert.Contains(t, helpOutput, "-s, --search")
	assert.Contains(t, helpOutput, "-q, --query")
	assert.Contains(t, helpOutput, "--collapse-depth")
}
