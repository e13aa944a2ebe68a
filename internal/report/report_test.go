package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"kotlinlex/internal/frontend/lexer"
	"kotlinlex/internal/option"
)

func analyzed(path, src string) File {
	return File{
		Path:   path,
		Source: src,
		Result: lexer.New(lexer.WithFilePath(path)).Analyze(src),
	}
}

func TestSummarize(t *testing.T) {
	files := []File{
		analyzed("ok.kt", "val x = 1"),
		analyzed("bad.kt", "f(#"),
		{Path: "skipped.kt"},
	}
	assert.Equal(t, Summary{Files: 3, Failed: 1, Tokens: 6, Diagnostics: 2}, Summarize(files))
}

func TestWriteText(t *testing.T) {
	color.NoColor = true

	src := "val s = \"open\nval n = 12345678901234567890\n"
	var buf bytes.Buffer
	err := Write(&buf, []File{analyzed("Main.kt", src)}, Options{Format: option.OutputText, ShowTokens: true})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "==> Main.kt <==")
	assert.Contains(t, out, "Position   Kind")
	assert.Contains(t, out, `"val"`)
	assert.Contains(t, out, "12345678901234567890")
	assert.Contains(t, out, "error[L002]: unterminated string literal")
	assert.Contains(t, out, "1 | val s = \"open")
	assert.Contains(t, out, "UnclosedString[L002]: 1")
	assert.Contains(t, out, "Lexical analysis failed with 1 error(s)\n")
	assert.Contains(t, out, "1 file(s) analysed, 7 token(s), 1 file(s) with problems")
	assert.Less(t, strings.Index(out, "UnclosedString[L002]: 1"), strings.Index(out, "error[L002]"))
}

func TestWriteTextCleanRunHasNoFailureSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []File{analyzed("ok.kt", "val x = 1")}, Options{}))
	assert.NotContains(t, buf.String(), "Lexical analysis failed")
	assert.Contains(t, buf.String(), "1 file(s) analysed, 4 token(s)\n")
}

func TestWriteTextDiagnosticsInFileOrder(t *testing.T) {
	color.NoColor = true

	// The second file is analysed without a path on its diagnostics.
	second := File{Path: "b.kt", Source: "val b = 'xy'", Result: lexer.New().Analyze("val b = 'xy'")}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []File{analyzed("a.kt", "f(#"), second}, Options{}))

	out := buf.String()
	a := strings.Index(out, "--> a.kt:1:3")
	b := strings.Index(out, "--> b.kt:1:9")
	require.NotEqual(t, -1, a, out)
	require.NotEqual(t, -1, b, out)
	assert.Less(t, a, b)
	assert.Contains(t, out, "1 | val b = 'xy'")
	assert.Contains(t, out, "Lexical analysis failed with 3 error(s)\n")
	assert.Empty(t, second.Result.Diagnostics[0].FilePath)
}

func TestWriteTextUnterminatedRawStringSpansToEnd(t *testing.T) {
	color.NoColor = true

	src := "val s = \"\"\"first\nsecond\nthird"
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []File{analyzed("Raw.kt", src)}, Options{}))

	out := buf.String()
	assert.Contains(t, out, "1 | val s = \"\"\"first")
	assert.Contains(t, out, "^--- starts here")
	assert.Contains(t, out, "3 | third")
	assert.Contains(t, out, "^ raw string runs to end of file")
}

func TestWriteTextWithoutTokens(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []File{analyzed("a.kt", "x")}, Options{}))
	assert.NotContains(t, buf.String(), "Position")
	assert.Contains(t, buf.String(), "identifier:")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []File{analyzed("a.kt", "val b = true )")}, Options{Format: option.OutputJSON}))

	var doc struct {
		Files []struct {
			Path   string
			Result struct {
				Tokens []struct {
					Kind   string
					Lexeme string
					Value  interface{}
				}
				Diagnostics []struct {
					Kind string
					Code string
				}
				Statistics struct {
					ByKind map[string]int
				}
			}
		}
		Summary Summary
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	require.Len(t, doc.Files, 1)
	f := doc.Files[0]
	assert.Equal(t, "a.kt", f.Path)
	assert.Equal(t, "BOOLEAN", f.Result.Tokens[3].Kind)
	assert.Equal(t, true, f.Result.Tokens[3].Value)
	assert.Equal(t, "EOF", f.Result.Tokens[len(f.Result.Tokens)-1].Kind)
	require.Len(t, f.Result.Diagnostics, 1)
	assert.Equal(t, "UnexpectedClosingDelimiter", f.Result.Diagnostics[0].Kind)
	assert.Equal(t, "L104", f.Result.Diagnostics[0].Code)
	assert.Equal(t, 1, f.Result.Statistics.ByKind["KEYWORD"])
	assert.Equal(t, 1, doc.Summary.Failed)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []File{analyzed("a.kt", "'x' + 1.5")}, Options{Format: option.OutputYAML}))

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Contains(t, buf.String(), "kind: CHAR")
	assert.Contains(t, buf.String(), "kind: DECIMAL")
	assert.Contains(t, buf.String(), "value: 1.5")
	assert.Contains(t, doc, "summary")
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, nil, Options{Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown report format "xml"`)
}
