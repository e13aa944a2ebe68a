package diagnostics

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
)

const (
	STR_MULTIPLIER = "%*d | "
)

var (
	boldRed = color.New(color.FgRed, color.Bold)
	red     = color.New(color.FgRed)
	blue    = color.New(color.FgBlue)
	cyan    = color.New(color.FgCyan)
	green   = color.New(color.FgGreen)
	grey    = color.New(color.FgHiBlack)
)

// SourceCache caches source file contents for error reporting
type SourceCache struct {
	files map[string][]string
}

func NewSourceCache() *SourceCache {
	return &SourceCache{
		files: make(map[string][]string),
	}
}

// Set registers the lines of a file so it is never read from disk
func (sc *SourceCache) Set(filepath string, lines []string) {
	sc.files[filepath] = lines
}

// GetLine retrieves a specific line from a source file
func (sc *SourceCache) GetLine(filepath string, line int) (string, error) {
	if lines, ok := sc.files[filepath]; ok {
		if line > 0 && line <= len(lines) {
			return lines[line-1], nil
		}
		return "", fmt.Errorf("line %d out of range", line)
	}

	// Load file
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	lines := make([]string, 0)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}

	if err := scanner.Err(); err != nil {
		return "", err
	}

	sc.files[filepath] = lines

	if line > 0 && line <= len(lines) {
		return lines[line-1], nil
	}

	return "", fmt.Errorf("line %d out of range", line)
}

// Emitter handles the rendering and output of diagnostics
type Emitter struct {
	cache *SourceCache
	w     io.Writer
}

// labelContext groups parameters for printing labels to reduce parameter count
type labelContext struct {
	filepath     string
	line         int
	startLine    int
	endLine      int
	startCol     int
	endCol       int
	label        Label
	lineNumWidth int
	severity     Severity
}

// NewEmitterWithWriter creates an emitter writing to w
func NewEmitterWithWriter(w io.Writer) *Emitter {
	return &Emitter{
		cache: NewSourceCache(),
		w:     w,
	}
}

// SetSourceLines pre-populates the source cache for filepath
func (e *Emitter) SetSourceLines(filepath string, lines []string) {
	e.cache.Set(filepath, lines)
}

// SetSource pre-populates the source cache from the raw file content
func (e *Emitter) SetSource(filepath, content string) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	e.SetSourceLines(filepath, strings.Split(content, "\n"))
}

// Emit renders a diagnostic
func (e *Emitter) Emit(filepath string, diag *Diagnostic) {
	// Use filepath from diagnostic if available, otherwise use parameter
	if diag.FilePath != "" {
		filepath = diag.FilePath
	}

	e.printHeader(diag)

	var primary *Label
	secondaries := []Label{}
	for i := range diag.Labels {
		if diag.Labels[i].Style == Primary && primary == nil {
			primary = &diag.Labels[i]
		} else {
			secondaries = append(secondaries, diag.Labels[i])
		}
	}

	switch {
	case primary == nil:
		for _, label := range diag.Labels {
			e.printLabel(filepath, label, diag.Severity)
		}
		if len(diag.Labels) == 0 {
			blue.Fprintf(e.w, "  --> %s:%d:%d\n", filepath, diag.Line, diag.Column)
		}
	case len(secondaries) == 0:
		e.printLabel(filepath, *primary, diag.Severity)
	case len(secondaries) == 1 && sameLine(*primary, secondaries[0]):
		e.printCompactDualLabel(filepath, *primary, secondaries[0], diag.Severity)
	default:
		e.printRoutedLabels(filepath, *primary, secondaries, diag.Severity)
	}

	for _, note := range diag.Notes {
		e.printNote(note)
	}

	if diag.Help != "" {
		e.printHelp(diag.Help)
	}

	fmt.Fprintln(e.w)
}

func sameLine(a, b Label) bool {
	return a.Location != nil && a.Location.Start != nil &&
		b.Location != nil && b.Location.Start != nil &&
		a.Location.Start.Line == b.Location.Start.Line
}

func (e *Emitter) printHeader(diag *Diagnostic) {
	c := e.getHeaderColor(diag.Severity)

	c.Fprint(e.w, diag.Severity.String())
	if diag.Code != "" {
		fmt.Fprintf(e.w, "[%s]", diag.Code)
	}
	fmt.Fprint(e.w, ": ")
	c.Fprintln(e.w, diag.Message)
}

func (e *Emitter) printLabel(filepath string, label Label, severity Severity) {
	if label.Location == nil || label.Location.Start == nil {
		return
	}

	start := label.Location.Start
	end := label.Location.End
	if end == nil {
		end = start
	}

	blue.Fprintf(e.w, "  --> %s:%d:%d\n", filepath, start.Line, start.Column)

	lineNumWidth := digits(start.Line)
	if end.Line > start.Line && digits(end.Line) > lineNumWidth {
		lineNumWidth = digits(end.Line)
	}

	e.printGutter(lineNumWidth)

	ctx := labelContext{
		filepath:     filepath,
		startLine:    start.Line,
		endLine:      end.Line,
		startCol:     start.Column,
		endCol:       end.Column,
		label:        label,
		lineNumWidth: lineNumWidth,
		severity:     severity,
	}

	if start.Line == end.Line {
		ctx.line = start.Line
		e.printSingleLineLabel(ctx)
	} else {
		e.printMultiLineLabel(ctx)
	}
}

func (e *Emitter) printSingleLineLabel(ctx labelContext) {
	// Previous line for context, unless it is blank
	if ctx.line > 1 {
		prevLine, err := e.cache.GetLine(ctx.filepath, ctx.line-1)
		if err == nil && strings.TrimSpace(prevLine) != "" {
			grey.Fprintf(e.w, STR_MULTIPLIER, ctx.lineNumWidth, ctx.line-1)
			grey.Fprintln(e.w, prevLine)
		}
	}

	sourceLine, err := e.cache.GetLine(ctx.filepath, ctx.line)
	if err != nil {
		return
	}

	grey.Fprintf(e.w, STR_MULTIPLIER, ctx.lineNumWidth, ctx.line)
	fmt.Fprintln(e.w, sourceLine)

	grey.Fprint(e.w, strings.Repeat(" ", ctx.lineNumWidth))
	grey.Fprint(e.w, " | ")

	padding := ctx.startCol - 1
	length := ctx.endCol - ctx.startCol
	if length <= 0 {
		length = 1
	}

	underlineColor := blue
	underlineChar := "-"
	if ctx.label.Style == Primary {
		underlineColor = e.getSeverityColor(ctx.severity)
		// Use ^ for single character, ~ for multiple
		underlineChar = "^"
		if length > 1 {
			underlineChar = "~"
		}
	}

	fmt.Fprint(e.w, strings.Repeat(" ", padding))
	underlineColor.Fprint(e.w, strings.Repeat(underlineChar, length))

	if ctx.label.Message != "" {
		underlineColor.Fprintf(e.w, " %s", ctx.label.Message)
	}
	fmt.Fprintln(e.w)

	e.printGutter(ctx.lineNumWidth)
}

func (e *Emitter) printMultiLineLabel(ctx labelContext) {
	sourceLine, err := e.cache.GetLine(ctx.filepath, ctx.startLine)
	if err != nil {
		return
	}

	blue.Fprintf(e.w, STR_MULTIPLIER, ctx.lineNumWidth, ctx.startLine)
	fmt.Fprintln(e.w, sourceLine)

	blue.Fprint(e.w, strings.Repeat(" ", ctx.lineNumWidth))
	blue.Fprint(e.w, " | ")

	underlineColor := blue
	if ctx.label.Style == Primary {
		underlineColor = e.getHeaderColor(ctx.severity)
	}

	fmt.Fprint(e.w, strings.Repeat(" ", ctx.startCol-1))
	underlineColor.Fprintln(e.w, "^--- starts here")

	// Elide the middle of long spans
	if ctx.endLine-ctx.startLine > 5 {
		blue.Fprint(e.w, strings.Repeat(" ", ctx.lineNumWidth))
		blue.Fprintln(e.w, " | ...")
	} else {
		for i := ctx.startLine + 1; i < ctx.endLine; i++ {
			line, err := e.cache.GetLine(ctx.filepath, i)
			if err != nil {
				continue
			}
			blue.Fprintf(e.w, STR_MULTIPLIER, ctx.lineNumWidth, i)
			fmt.Fprintln(e.w, line)
		}
	}

	endSourceLine, err := e.cache.GetLine(ctx.filepath, ctx.endLine)
	if err == nil {
		blue.Fprintf(e.w, STR_MULTIPLIER, ctx.lineNumWidth, ctx.endLine)
		fmt.Fprintln(e.w, endSourceLine)

		blue.Fprint(e.w, strings.Repeat(" ", ctx.lineNumWidth))
		blue.Fprint(e.w, " | ")
		endPadding := ctx.endCol - 1
		if endPadding < 0 {
			endPadding = 0
		}
		fmt.Fprint(e.w, strings.Repeat(" ", endPadding))
		underlineColor.Fprint(e.w, "^")

		if ctx.label.Message != "" {
			underlineColor.Fprintf(e.w, " %s", ctx.label.Message)
		}
		fmt.Fprintln(e.w)
	}

	blue.Fprint(e.w, strings.Repeat(" ", ctx.lineNumWidth))
	blue.Fprintln(e.w, " |")
}

func (e *Emitter) printNote(note Note) {
	cyan.Fprint(e.w, "  = note: ")
	fmt.Fprintln(e.w, note.Message)
}

func (e *Emitter) printHelp(help string) {
	green.Fprint(e.w, "  = help: ")
	fmt.Fprintln(e.w, help)
}

func (e *Emitter) printGutter(width int) {
	grey.Fprint(e.w, strings.Repeat(" ", width))
	grey.Fprintln(e.w, " |")
}

// printCompactDualLabel prints primary + one secondary label on the same line.
// Primary gets the inline message, secondary gets a connector line below.
func (e *Emitter) printCompactDualLabel(filepath string, primary Label, secondary Label, severity Severity) {
	line := primary.Location.Start.Line

	primaryStart, primaryEnd := bounds(primary)
	secondaryStart, secondaryEnd := bounds(secondary)

	blue.Fprintf(e.w, "  --> %s:%d:%d\n", filepath, line, primaryStart)

	lineNumWidth := digits(line)
	e.printGutter(lineNumWidth)

	sourceLine, err := e.cache.GetLine(filepath, line)
	if err != nil {
		return
	}

	grey.Fprintf(e.w, STR_MULTIPLIER, lineNumWidth, line)
	fmt.Fprintln(e.w, sourceLine)

	primaryPadding := primaryStart - 1
	primaryLength := max(primaryEnd-primaryStart, 1)
	secondaryPadding := secondaryStart - 1
	secondaryLength := max(secondaryEnd-secondaryStart, 1)

	primaryColor := e.getSeverityColor(severity)
	primaryChar := "^"
	if primaryLength > 1 {
		primaryChar = "~"
	}

	// Line 1: both underlines, primary message inline
	grey.Fprint(e.w, strings.Repeat(" ", lineNumWidth))
	grey.Fprint(e.w, " | ")

	if secondaryPadding < primaryPadding {
		fmt.Fprint(e.w, strings.Repeat(" ", secondaryPadding))
		blue.Fprint(e.w, strings.Repeat("-", secondaryLength))
		fmt.Fprint(e.w, strings.Repeat(" ", max(primaryPadding-secondaryPadding-secondaryLength, 0)))
		primaryColor.Fprint(e.w, strings.Repeat(primaryChar, primaryLength))
	} else {
		fmt.Fprint(e.w, strings.Repeat(" ", primaryPadding))
		primaryColor.Fprint(e.w, strings.Repeat(primaryChar, primaryLength))
		if primaryPadding < secondaryPadding {
			fmt.Fprint(e.w, strings.Repeat(" ", max(secondaryPadding-primaryPadding-primaryLength, 0)))
			blue.Fprint(e.w, strings.Repeat("-", secondaryLength))
		}
	}
	if primary.Message != "" {
		primaryColor.Fprintf(e.w, " %s", primary.Message)
	}
	fmt.Fprintln(e.w)

	// Line 2: vertical connector for secondary
	grey.Fprint(e.w, strings.Repeat(" ", lineNumWidth))
	grey.Fprint(e.w, " | ")
	fmt.Fprint(e.w, strings.Repeat(" ", secondaryPadding))
	blue.Fprintln(e.w, "|")

	// Line 3: secondary message
	grey.Fprint(e.w, strings.Repeat(" ", lineNumWidth))
	grey.Fprint(e.w, " | ")
	fmt.Fprint(e.w, strings.Repeat(" ", secondaryPadding))
	blue.Fprint(e.w, "--")
	if secondary.Message != "" {
		blue.Fprintf(e.w, " %s", secondary.Message)
	}
	fmt.Fprintln(e.w)

	e.printGutter(lineNumWidth)
}

// printRoutedLabels prints primary + secondaries spread over several lines
func (e *Emitter) printRoutedLabels(filepath string, primary Label, secondaries []Label, severity Severity) {
	if primary.Location == nil || primary.Location.Start == nil {
		return
	}

	primaryLine := primary.Location.Start.Line
	blue.Fprintf(e.w, "  --> %s:%d:%d\n", filepath, primaryLine, primary.Location.Start.Column)

	byLine := map[int]Label{primaryLine: primary}
	lineNumbers := []int{primaryLine}
	for _, sec := range secondaries {
		if sec.Location == nil || sec.Location.Start == nil {
			continue
		}
		ln := sec.Location.Start.Line
		if _, seen := byLine[ln]; !seen {
			byLine[ln] = sec
			lineNumbers = append(lineNumbers, ln)
		}
	}
	sort.Ints(lineNumbers)

	lineNumWidth := digits(lineNumbers[len(lineNumbers)-1])
	e.printGutter(lineNumWidth)

	primaryColor := e.getSeverityColor(severity)

	for idx, lineNum := range lineNumbers {
		if idx > 0 && lineNum-lineNumbers[idx-1] > 1 {
			grey.Fprint(e.w, strings.Repeat(" ", lineNumWidth))
			grey.Fprintln(e.w, " ...")
		}

		sourceLine, err := e.cache.GetLine(filepath, lineNum)
		if err != nil {
			continue
		}

		grey.Fprintf(e.w, STR_MULTIPLIER, lineNumWidth, lineNum)
		fmt.Fprintln(e.w, sourceLine)

		label := byLine[lineNum]
		start, end := bounds(label)
		length := max(end-start, 1)

		c := blue
		char := "-"
		if label.Style == Primary {
			c = primaryColor
			char = "^"
			if length > 1 {
				char = "~"
			}
		}

		grey.Fprint(e.w, strings.Repeat(" ", lineNumWidth))
		grey.Fprint(e.w, " | ")
		fmt.Fprint(e.w, strings.Repeat(" ", start-1))
		c.Fprint(e.w, strings.Repeat(char, length))
		if label.Message != "" {
			c.Fprintf(e.w, " %s", label.Message)
		}
		fmt.Fprintln(e.w)
	}

	e.printGutter(lineNumWidth)
}

// bounds returns the start and end columns of a label on its first line
func bounds(label Label) (int, int) {
	start := label.Location.Start
	end := label.Location.End
	if end == nil || end.Line != start.Line {
		return start.Column, start.Column + 1
	}
	return start.Column, end.Column
}

func digits(n int) int {
	return len(fmt.Sprintf("%d", n))
}

// getHeaderColor returns the header color for a given severity
func (e *Emitter) getHeaderColor(Severity) *color.Color {
	return boldRed
}

// getSeverityColor returns the underline color for a given severity
func (e *Emitter) getSeverityColor(Severity) *color.Color {
	return red
}
