// Package report renders analysis results for people (text) and for
// tools (json, yaml).
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"kotlinlex/internal/diagnostics"
	"kotlinlex/internal/frontend/lexer"
	"kotlinlex/internal/option"
)

// File is the analysis of one source file.
type File struct {
	Path   string                `json:"path" yaml:"path"`
	Result *lexer.AnalysisResult `json:"result" yaml:"result"`

	// Source is the analysed text, used to quote lines in diagnostics.
	Source string `json:"-" yaml:"-"`
}

// Summary totals a whole run.
type Summary struct {
	Files       int `json:"files" yaml:"files"`
	Failed      int `json:"failed" yaml:"failed"`
	Tokens      int `json:"tokens" yaml:"tokens"`
	Diagnostics int `json:"diagnostics" yaml:"diagnostics"`
}

// Document is the machine readable form of a run.
type Document struct {
	Files   []File  `json:"files" yaml:"files"`
	Summary Summary `json:"summary" yaml:"summary"`
}

// Options control rendering.
type Options struct {
	Format     string
	ShowTokens bool
	// Emitter renders diagnostics in text reports. A plain emitter on the
	// report writer is used when nil.
	Emitter *diagnostics.Emitter
}

// Summarize totals files.
func Summarize(files []File) Summary {
	s := Summary{Files: len(files)}
	for _, f := range files {
		if f.Result == nil {
			continue
		}
		s.Tokens += f.Result.Statistics.TotalTokens
		s.Diagnostics += len(f.Result.Diagnostics)
		if !f.Result.Success {
			s.Failed++
		}
	}
	return s
}

// Write renders files to w in the requested format.
func Write(w io.Writer, files []File, opts Options) error {
	doc := Document{Files: files, Summary: Summarize(files)}

	switch opts.Format {
	case option.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(doc), "unable to encode JSON report")
	case option.OutputYAML:
		out, err := yaml.Marshal(doc)
		if err != nil {
			return errors.Wrap(err, "unable to encode YAML report")
		}
		_, err = w.Write(out)
		return err
	case option.OutputText, "":
		return writeText(w, doc, opts)
	default:
		return errors.Errorf("unknown report format %q", opts.Format)
	}
}

func writeText(w io.Writer, doc Document, opts Options) error {
	bag := diagnostics.NewDiagnosticBag()
	emitter := opts.Emitter
	if emitter == nil {
		emitter = diagnostics.NewEmitterWithWriter(w)
	}

	for _, f := range doc.Files {
		if f.Result == nil {
			continue
		}
		fmt.Fprintf(w, "==> %s <==\n", f.Path)

		if opts.ShowTokens {
			if err := writeTokens(w, f.Result.Tokens); err != nil {
				return err
			}
			fmt.Fprintln(w)
		}

		writeStatistics(w, f.Result)
		fmt.Fprintln(w)

		if len(f.Result.Diagnostics) > 0 {
			emitter.SetSource(f.Path, f.Source)
			bag.AddAll(attributed(f.Path, f.Result.Diagnostics))
		}
	}

	// Diagnostics follow the per-file sections in file order, then the
	// bag's failure summary.
	bag.EmitAllToWriter(w, emitter)

	s := doc.Summary
	fmt.Fprintf(w, "%d file(s) analysed, %d token(s)", s.Files, s.Tokens)
	if s.Failed > 0 {
		fmt.Fprintf(w, ", %d file(s) with problems", s.Failed)
	}
	fmt.Fprintln(w)
	return nil
}

// attributed returns diags with every entry stamped with path, copying the
// ones that carry no file of their own.
func attributed(path string, diags []*diagnostics.Diagnostic) []*diagnostics.Diagnostic {
	out := make([]*diagnostics.Diagnostic, len(diags))
	for i, d := range diags {
		if d.FilePath == "" {
			c := *d
			d = c.WithFilePath(path)
		}
		out[i] = d
	}
	return out
}

func writeTokens(w io.Writer, tokens []lexer.Token) error {
	tw := tabwriter.NewWriter(w, 5, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "Position\tKind\tLexeme\tValue")
	for _, tok := range tokens {
		value := ""
		if tok.Value != nil {
			value = fmt.Sprint(tok.Value)
		}
		fmt.Fprintf(tw, "%d:%d\t%s\t%s\t%s\n", tok.Line, tok.Column, tok.Kind, strconv.Quote(tok.Lexeme), value)
	}
	return tw.Flush()
}

func writeStatistics(w io.Writer, r *lexer.AnalysisResult) {
	st := r.Statistics
	fmt.Fprintf(w, "Statistics: %d token(s), %d line(s), %d character(s), %d diagnostic(s) in %s\n",
		st.TotalTokens, st.TotalLines, st.TotalCharacters, len(r.Diagnostics), r.Elapsed)

	categories := make([]lexer.Category, 0, len(st.ByCategory))
	for c := range st.ByCategory {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	for _, c := range categories {
		fmt.Fprintf(w, "  %-12s %d\n", c.String()+":", st.ByCategory[c])
	}

	kinds := make([]diagnostics.Kind, 0, len(st.DiagnosticKinds))
	for k := range st.DiagnosticKinds {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, k := range kinds {
		fmt.Fprintf(w, "  %s[%s]: %d\n", k, k.Code(), st.DiagnosticKinds[k])
	}
}
