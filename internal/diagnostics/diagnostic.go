package diagnostics

import (
	"fmt"

	"kotlinlex/internal/source"
)

// Severity represents the severity level of a diagnostic. Every lexical
// problem is an error.
type Severity int

const (
	Error Severity = iota
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "unknown"
}

// MarshalText renders the severity by name in JSON and YAML reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Label represents a labeled section of code in a diagnostic
type Label struct {
	Location *source.Location `json:"location" yaml:"location"`
	Message  string           `json:"message" yaml:"message"`
	Style    LabelStyle       `json:"style" yaml:"style"`
}

type LabelStyle int

const (
	Primary   LabelStyle = iota // The main error location (uses ^^^)
	Secondary                   // Additional context (uses ---)
)

// Note represents additional information attached to a diagnostic
type Note struct {
	Message string `json:"message" yaml:"message"`
}

// Diagnostic is one lexical problem found in a source file. Line, Column and
// Lexeme locate the offending span; Help carries the suggested fix.
type Diagnostic struct {
	Kind     Kind     `json:"kind" yaml:"kind"`
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message" yaml:"message"`
	Code     string   `json:"code" yaml:"code"`
	FilePath string   `json:"file,omitempty" yaml:"file,omitempty"`
	Line     int      `json:"line" yaml:"line"`
	Column   int      `json:"column" yaml:"column"`
	Lexeme   string   `json:"lexeme" yaml:"lexeme"`
	// Offset and Length give the span the scanner skipped to recover, in
	// codepoints. Length is 0 for problems reported on an accepted token.
	Offset int     `json:"offset" yaml:"offset"`
	Length int     `json:"length" yaml:"length"`
	Labels []Label `json:"labels,omitempty" yaml:"labels,omitempty"`
	Notes  []Note  `json:"notes,omitempty" yaml:"notes,omitempty"`
	Help   string  `json:"help,omitempty" yaml:"help,omitempty"`
}

// NewError creates a new error diagnostic
func NewError(message string) *Diagnostic {
	return &Diagnostic{
		Severity: Error,
		Message:  message,
		Labels:   make([]Label, 0),
		Notes:    make([]Note, 0),
	}
}

// WithKind sets the diagnostic kind and the matching error code
func (d *Diagnostic) WithKind(kind Kind) *Diagnostic {
	d.Kind = kind
	d.Code = kind.Code()
	return d
}

// At records the position and source text of the offending span
func (d *Diagnostic) At(loc *source.Location, lexeme string) *Diagnostic {
	if loc != nil && loc.Start != nil {
		d.Line = loc.Start.Line
		d.Column = loc.Start.Column
		d.Offset = loc.Start.Offset
	}
	d.Lexeme = lexeme
	return d
}

// Consumes records how many codepoints the scanner skipped to recover
func (d *Diagnostic) Consumes(length int) *Diagnostic {
	d.Length = length
	return d
}

// WithLabel adds a labeled location to the diagnostic
func (d *Diagnostic) WithLabel(filepath string, loc *source.Location, message string, style LabelStyle) *Diagnostic {
	if d.FilePath == "" {
		d.FilePath = filepath
	}
	d.Labels = append(d.Labels, Label{
		Location: loc,
		Message:  message,
		Style:    style,
	})
	return d
}

// WithPrimaryLabel adds a primary labeled location
func (d *Diagnostic) WithPrimaryLabel(filepath string, loc *source.Location, message string) *Diagnostic {
	return d.WithLabel(filepath, loc, message, Primary)
}

// WithSecondaryLabel adds a secondary labeled location
func (d *Diagnostic) WithSecondaryLabel(filepath string, loc *source.Location, message string) *Diagnostic {
	return d.WithLabel(filepath, loc, message, Secondary)
}

// WithNote adds a note to the diagnostic
func (d *Diagnostic) WithNote(message string) *Diagnostic {
	d.Notes = append(d.Notes, Note{Message: message})
	return d
}

// WithHelp sets helpful suggestion for fixing the error
func (d *Diagnostic) WithHelp(help string) *Diagnostic {
	d.Help = help
	return d
}

// WithFilePath stamps the diagnostic with the file it belongs to
func (d *Diagnostic) WithFilePath(filepath string) *Diagnostic {
	d.FilePath = filepath
	return d
}

func (d *Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s[%s]: %s", d.Line, d.Column, d.Severity, d.Code, d.Message)
}
