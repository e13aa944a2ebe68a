package workspace

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"kotlinlex/internal/diagnostics"
	"kotlinlex/internal/option"
)

const (
	mainKtFile      = "Main.kt"
	mainKtContent   = "fun main() { println(\"hi\") }"
	libKtFile       = "Lib.kt"
	libKtContent    = "fun lib() = 42"
	brokenKtContent = "fun broken( { \"open\n"
	noErrorExpected = "Expected no error, got: %v"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// Helper function to create a temporary test file
func createTestFile(dir, name, content string) (string, error) {
	filePath := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", err
	}
	err := os.WriteFile(filePath, []byte(content), 0644)
	return filePath, err
}

func testOptions() *option.Config {
	opts := option.DefaultConfig
	opts.Workers = 4
	return &opts
}

// TestAddFileKeepsOrder tests that files come back in registration order
func TestAddFileKeepsOrder(t *testing.T) {
	ws := New(testOptions())

	ws.AddFile("b.kt", "")
	ws.AddFile("a.kt", "")
	ws.AddFile("./c.kt", "")

	files := ws.GetAllFiles()
	if len(files) != 3 {
		t.Fatalf("Expected 3 files, got %d", len(files))
	}
	want := []string{"b.kt", "a.kt", "c.kt"}
	for i, f := range files {
		if f.Path != want[i] {
			t.Errorf("File %d: expected %s, got %s", i, want[i], f.Path)
		}
	}
}

// TestAddFileDuplicate tests that a path is only registered once
func TestAddFileDuplicate(t *testing.T) {
	ws := New(nil)

	first := ws.AddFile("a.kt", "val a = 1")
	second := ws.AddFile("./a.kt", "val a = 2")

	if first != second {
		t.Errorf("Expected the first registration to be returned")
	}
	if len(ws.FileOrder) != 1 {
		t.Errorf("Expected 1 file, got %d", len(ws.FileOrder))
	}
	if ws.GetFile("a.kt").Content != "val a = 1" {
		t.Errorf("Expected original content to be kept")
	}
	if ws.GetFile("missing.kt") != nil {
		t.Errorf("Expected nil for unknown file")
	}
}

// TestDiscoverSingleFile tests discovery of one explicit file
func TestDiscoverSingleFile(t *testing.T) {
	tmpDir := t.TempDir()
	mainFile, err := createTestFile(tmpDir, mainKtFile, mainKtContent)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	ws := New(testOptions())
	if err := ws.Discover(context.Background(), []string{mainFile}); err != nil {
		t.Fatalf(noErrorExpected, err)
	}

	file := ws.GetFile(mainFile)
	if file == nil {
		t.Fatalf("Expected file %s in workspace", mainFile)
	}
	if file.Content != mainKtContent {
		t.Errorf("Expected content %q, got %q", mainKtContent, file.Content)
	}
	if file.Result != nil {
		t.Errorf("Expected no result before lexing")
	}
}

// TestDiscoverDirectory tests the recursive walk and the extension filter
func TestDiscoverDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	for name, content := range map[string]string{
		mainKtFile:                mainKtContent,
		"pkg/" + libKtFile:        libKtContent,
		"pkg/build.gradle.kts":    "plugins { }",
		"pkg/Notes.md":            "# not kotlin",
		".hidden/Skipped.kt":      "val skipped = true",
		"pkg/deep/nested/Deep.kt": "object Deep",
	} {
		if _, err := createTestFile(tmpDir, name, content); err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
	}

	ws := New(testOptions())
	if err := ws.Discover(context.Background(), []string{tmpDir}); err != nil {
		t.Fatalf(noErrorExpected, err)
	}

	want := []string{
		filepath.Join(tmpDir, mainKtFile),
		filepath.Join(tmpDir, "pkg", libKtFile),
		filepath.Join(tmpDir, "pkg", "build.gradle.kts"),
		filepath.Join(tmpDir, "pkg", "deep", "nested", "Deep.kt"),
	}
	if len(ws.FileOrder) != len(want) {
		t.Fatalf("Expected %d files, got %d: %v", len(want), len(ws.FileOrder), ws.FileOrder)
	}
	for i := range want {
		if ws.FileOrder[i] != want[i] {
			t.Errorf("File %d: expected %s, got %s", i, want[i], ws.FileOrder[i])
		}
	}
}

// TestDiscoverFileNotFound tests that a missing path is an error
func TestDiscoverFileNotFound(t *testing.T) {
	ws := New(testOptions())
	err := ws.Discover(context.Background(), []string{filepath.Join(t.TempDir(), "nope.kt")})
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !os.IsNotExist(errors.Unwrap(err)) && !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected a not-exist error, got: %v", err)
	}
}

// TestDiscoverCancelled tests that discovery stops on a cancelled context
func TestDiscoverCancelled(t *testing.T) {
	tmpDir := t.TempDir()
	if _, err := createTestFile(tmpDir, mainKtFile, mainKtContent); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ws := New(testOptions())
	if err := ws.Discover(ctx, []string{tmpDir}); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", err)
	}
}

// TestLexFile tests that results and diagnostics land in the workspace
func TestLexFile(t *testing.T) {
	ws := New(testOptions())
	file := ws.AddFile("Broken.kt", brokenKtContent)

	ws.LexFile(file)

	if file.Result == nil {
		t.Fatal("Expected a result after lexing")
	}
	if file.Result.Success {
		t.Errorf("Expected diagnostics for %q", brokenKtContent)
	}
	if !ws.HasErrors() {
		t.Errorf("Expected workspace to have errors")
	}
	if ws.Diagnostics.Len() != len(file.Result.Diagnostics) {
		t.Errorf("Expected %d diagnostics in bag, got %d", len(file.Result.Diagnostics), ws.Diagnostics.Len())
	}
	for _, d := range ws.Diagnostics.Diagnostics() {
		if d.FilePath != "Broken.kt" {
			t.Errorf("Expected diagnostic attributed to Broken.kt, got %q", d.FilePath)
		}
	}
}

// TestPipelineRun tests discovery and lexing end to end
func TestPipelineRun(t *testing.T) {
	tmpDir := t.TempDir()
	_, _ = createTestFile(tmpDir, mainKtFile, mainKtContent)
	_, _ = createTestFile(tmpDir, "Broken.kt", brokenKtContent)

	p := NewPipeline(testOptions())
	if err := p.Run(context.Background(), []string{tmpDir}); err != nil {
		t.Fatalf(noErrorExpected, err)
	}

	if p.Workspace.Phase() != PhaseReporting {
		t.Errorf("Expected phase %s, got %s", PhaseReporting, p.Workspace.Phase())
	}
	for _, f := range p.Workspace.GetAllFiles() {
		if f.Result == nil {
			t.Errorf("Expected %s to be lexed", f.Path)
		}
	}

	kinds := map[diagnostics.Kind]int{}
	for _, d := range p.Workspace.Diagnostics.Diagnostics() {
		kinds[d.Kind]++
	}
	if kinds[diagnostics.UnclosedString] != 1 {
		t.Errorf("Expected 1 UnclosedString, got %d", kinds[diagnostics.UnclosedString])
	}
	if kinds[diagnostics.UnmatchedOpenParen] != 1 || kinds[diagnostics.UnmatchedOpenBrace] != 1 {
		t.Errorf("Expected unmatched ( and {, got %v", kinds)
	}
}

// TestPipelineNoSourceFiles tests a directory without Kotlin files
func TestPipelineNoSourceFiles(t *testing.T) {
	tmpDir := t.TempDir()
	_, _ = createTestFile(tmpDir, "README.md", "nothing here")

	p := NewPipeline(testOptions())
	if err := p.Run(context.Background(), []string{tmpDir}); !errors.Is(err, ErrNoSourceFiles) {
		t.Errorf("Expected ErrNoSourceFiles, got: %v", err)
	}
}

// TestPipelineCustomLexPhase tests that the lex phase can be replaced
func TestPipelineCustomLexPhase(t *testing.T) {
	tmpDir := t.TempDir()
	mainFile, _ := createTestFile(tmpDir, mainKtFile, mainKtContent)

	called := false
	p := NewPipeline(testOptions())
	p.Lex = func(ctx context.Context, ws *Workspace) error {
		called = true
		if ws.Phase() != PhaseLexing {
			t.Errorf("Expected phase %s, got %s", PhaseLexing, ws.Phase())
		}
		return RunLexPhase(ctx, ws)
	}
	if err := p.Run(context.Background(), []string{mainFile}); err != nil {
		t.Fatalf(noErrorExpected, err)
	}
	if !called {
		t.Error("Expected custom lex phase to run")
	}
}

// TestRunLexPhaseCancelled tests that cancellation is honoured between files
func TestRunLexPhaseCancelled(t *testing.T) {
	ws := New(testOptions())
	ws.AddFile("a.kt", "val a = 1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := RunLexPhase(ctx, ws); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", err)
	}
	if ws.GetFile("a.kt").Result != nil {
		t.Errorf("Expected no file to be lexed after cancellation")
	}
}

// TestWorkspaceThreadSafety tests concurrent registration and lexing
func TestWorkspaceThreadSafety(t *testing.T) {
	ws := New(testOptions())

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f := ws.AddFile(filepath.Join("src", string(rune('a'+i%26))+".kt"), "val x = (1")
			_ = ws.GetAllFiles()
			_ = f
		}(i)
	}
	wg.Wait()

	if len(ws.FileOrder) != 26 {
		t.Fatalf("Expected 26 distinct files, got %d", len(ws.FileOrder))
	}

	for _, f := range ws.GetAllFiles() {
		wg.Add(1)
		go func(f *SourceFile) {
			defer wg.Done()
			ws.LexFile(f)
		}(f)
	}
	wg.Wait()

	if ws.Diagnostics.ErrorCount() != 26 {
		t.Errorf("Expected 26 errors, got %d", ws.Diagnostics.ErrorCount())
	}
}
