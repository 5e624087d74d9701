package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	color.NoColor = true

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_FmtFromFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doc.json", "{\n  \"b\": 1,\n  \"a\": [1.0, 2, \"x\"]\n}\n")

	res := runCLI(t, "", "fmt", path)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "{\"b\":1,\"a\":[1.0,2,\"x\"]}\n", res.stdout)
}

func TestRun_FmtIsDefaultCommand(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doc.json", `[ true , null ]`)

	res := runCLI(t, "", path)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "[true,null]\n", res.stdout)
}

func TestRun_FmtFromStdinWithOptions(t *testing.T) {
	res := runCLI(t, `{"userName": "tom", "Age": 3, "address": {"zipCode": "1"}}`, "fmt", "--sort-keys", "--key-case", "snake")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "{\"address\":{\"zip_code\":\"1\"},\"age\":3,\"user_name\":\"tom\"}\n", res.stdout)
}

func TestRun_FmtToOutputFile(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.json", `{"id": 1, "email": "test@example.com"}`)
	out := filepath.Join(dir, "out.json")

	res := runCLI(t, "", "fmt", in, "-o", out)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "Formatted JSON written to")

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "{\"id\":1,\"email\":\"test@example.com\"}\n", string(content))
}

func TestRun_FmtCompressedInput(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := io.WriteString(zw, `{"compressed": true}`)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := writeFile(t, t.TempDir(), "doc.json.gz", buf.String())

	res := runCLI(t, "", "fmt", path)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "{\"compressed\":true}\n", res.stdout)
}

func TestRun_FmtSyntaxError(t *testing.T) {
	res := runCLI(t, "{\n  \"a\": [1, 2,\n  \"b\": tru }", "fmt")
	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "JSON parsing error: failed to parse JSON")
	assert.Contains(t, res.stderr, "syntax error at line 3")
	assert.Contains(t, res.stderr, "For help, run: jsoncore --help")
}

func TestRun_FmtEmptyStdin(t *testing.T) {
	res := runCLI(t, "  \n ", "fmt")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Input error: input is empty")
}

func TestRun_FmtMissingFile(t *testing.T) {
	res := runCLI(t, "", "fmt", filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "not found")
}

func TestRun_Check(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", `{"ok": true}`)
	bad := writeFile(t, dir, "bad.json", `{"ok": true,}`)

	res := runCLI(t, "", "check", good, bad)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stdout, "ok   "+good)
	assert.Contains(t, res.stdout, "FAIL "+bad)
	assert.Less(t, strings.Index(res.stdout, good), strings.Index(res.stdout, bad), "results keep argument order")

	res = runCLI(t, "", "check", "-q", "-w", "2", good)
	assert.Equal(t, 0, res.code, res.stderr)
	assert.Empty(t, res.stdout)
}

func TestRun_Hash(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"x": 1, "y": [true, null]}`)
	b := writeFile(t, dir, "b.json", "{\n\t\"y\": [true, null],\n\t\"x\": 1\n}")
	c := writeFile(t, dir, "c.json", `{"x": 2, "y": [true, null]}`)

	res := runCLI(t, "", "hash", a, b, c)
	require.Equal(t, 0, res.code, res.stderr)

	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.Len(t, lines, 3)
	sumA, pathA, _ := strings.Cut(lines[0], "  ")
	sumB, _, _ := strings.Cut(lines[1], "  ")
	sumC, _, _ := strings.Cut(lines[2], "  ")
	assert.Equal(t, a, pathA)
	assert.Len(t, sumA, 16)
	assert.Equal(t, sumA, sumB)
	assert.NotEqual(t, sumA, sumC)
}

func TestRun_Stats(t *testing.T) {
	res := runCLI(t, `{"id": "123e4567-e89b-12d3-a456-426614174000", "items": [[1], [2, 3]]}`, "stats")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "max depth:      3\n")
	assert.Contains(t, res.stdout, "elements:       5\n")
	assert.Contains(t, res.stdout, "uuid:")
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "jsoncore.yml", "parser:\n  max_depth: 2\noutput:\n  sort_keys: true\n")

	res := runCLI(t, `{"b": 1, "a": 2}`, "--config", cfg, "fmt")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "{\"a\":2,\"b\":1}\n", res.stdout)

	res = runCLI(t, `[[[1]]]`, "--config", cfg, "fmt")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "max nesting depth exceeded")

	res = runCLI(t, `[[[1]]]`, "--config", cfg, "--max-depth", "5", "fmt")
	assert.Equal(t, 0, res.code, res.stderr)
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := writeFile(t, t.TempDir(), "jsoncore.yml", "batch:\n  workers: 0\n")

	res := runCLI(t, `1`, "-c", cfg, "fmt")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Configuration error")

	res = runCLI(t, `1`, "fmt", "--key-case", "screaming")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "output.key_case")
}

func TestRun_DebugLogging(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doc.json", `{}`)

	res := runCLI(t, "", "--debug", "check", path)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stderr, "level=debug")
	assert.Contains(t, res.stderr, "msg=parsed")
	assert.Contains(t, res.stderr, "msg=\"check finished\"")
}

func TestRun_Version(t *testing.T) {
	res := runCLI(t, "", "--version")
	assert.Equal(t, 0, res.code)
	assert.Equal(t, "jsoncore version "+Version+"\n", res.stdout)
}

func TestRun_UnknownFlag(t *testing.T) {
	res := runCLI(t, "", "check", "--bogus")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "jsoncore: error:")
}
