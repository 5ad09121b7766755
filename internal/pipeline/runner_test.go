package pipeline

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/backmassage/webpbatch/internal/config"
	"github.com/backmassage/webpbatch/internal/logging"
	"github.com/backmassage/webpbatch/internal/report"
)

// stubEncoderScript copies its input to the -o path and reports a fixed
// output size, mimicking cwebp's output format.
const stubEncoderScript = `#!/bin/sh
out=""
while [ $# -gt 0 ]; do
  case "$1" in
    -o) out="$2"; shift 2 ;;
    --) shift; break ;;
    *) shift ;;
  esac
done
cp "$1" "$out"
echo "Output: %s bytes"
`

// installStubEncoders writes cwebp and gif2webp stand-ins that report the
// given byte sizes, and prepends their directory to PATH for the test.
func installStubEncoders(t *testing.T, cwebpSize, gif2webpSize string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stub encoders not supported on windows")
	}

	dir := t.TempDir()
	stubs := map[string]string{"cwebp": cwebpSize, "gif2webp": gif2webpSize}
	for name, size := range stubs {
		script := fmt.Sprintf(stubEncoderScript, size)
		if err := os.WriteFile(filepath.Join(dir, name), []byte(script), 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func fileOfSize(t *testing.T, dir, name string, size int) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), bytes.Repeat([]byte{0x7F}, size), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	log, err := logging.NewLogger(&cfg)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	t.Cleanup(func() { log.Close() })
	return log
}

func readReport(t *testing.T, outputDir string) [][]string {
	t.Helper()
	f, err := os.Open(filepath.Join(outputDir, report.FileName))
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	return rows
}

func TestRun_EndToEnd(t *testing.T) {
	installStubEncoders(t, "2048", "3072")

	inputDir := t.TempDir()
	outputDir := t.TempDir()
	fileOfSize(t, inputDir, "a.jpg", 500*1024)
	fileOfSize(t, inputDir, "b.jpg", 10*1024)
	fileOfSize(t, inputDir, "empty.jpg", 0)
	fileOfSize(t, inputDir, "notes.txt", 100)

	cfg := config.DefaultConfig()
	cfg.InputPath = inputDir
	cfg.OutputDir = outputDir

	stats := Run(context.Background(), &cfg, true, testLogger(t))

	if stats.Converted != 2 {
		t.Errorf("Converted = %d, want 2", stats.Converted)
	}
	if len(stats.Failed) != 1 || stats.Failed[0] != "empty.jpg" {
		t.Errorf("Failed = %v, want [empty.jpg]", stats.Failed)
	}
	if stats.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1 (notes.txt)", stats.Skipped)
	}

	rows := readReport(t, outputDir)
	if len(rows) != 4 { // header + 3 images; notes.txt never dispatched
		t.Fatalf("report has %d rows, want 4", len(rows))
	}

	for _, name := range []string{"a.webp", "b.webp"} {
		if _, err := os.Stat(filepath.Join(outputDir, name)); err != nil {
			t.Errorf("missing output file %s: %v", name, err)
		}
	}
}

func TestRun_Idempotent(t *testing.T) {
	installStubEncoders(t, "2048", "3072")

	inputDir := t.TempDir()
	outputDir := t.TempDir()
	fileOfSize(t, inputDir, "a.jpg", 50*1024)
	fileOfSize(t, inputDir, "b.png", 20*1024)

	cfg := config.DefaultConfig()
	cfg.InputPath = inputDir
	cfg.OutputDir = outputDir
	log := testLogger(t)

	first := Run(context.Background(), &cfg, true, log)
	firstRows := readReport(t, outputDir)
	second := Run(context.Background(), &cfg, true, log)
	secondRows := readReport(t, outputDir)

	if first.Converted != second.Converted {
		t.Errorf("Converted differs across runs: %d vs %d", first.Converted, second.Converted)
	}
	if len(firstRows) != len(secondRows) {
		t.Errorf("report size differs across runs: %d vs %d rows", len(firstRows), len(secondRows))
	}

	// Rows are equivalent modulo completion order.
	sortRows := func(rows [][]string) {
		sort.Slice(rows[1:], func(i, j int) bool { return rows[i+1][0] < rows[j+1][0] })
	}
	sortRows(firstRows)
	sortRows(secondRows)
	for i := range firstRows {
		for j := range firstRows[i] {
			if firstRows[i][j] != secondRows[i][j] {
				t.Errorf("row %d differs: %v vs %v", i, firstRows[i], secondRows[i])
			}
		}
	}
}

func TestRun_SingleFileInput(t *testing.T) {
	installStubEncoders(t, "2048", "3072")

	inputDir := t.TempDir()
	outputDir := t.TempDir()
	fileOfSize(t, inputDir, "solo.png", 30*1024)

	cfg := config.DefaultConfig()
	cfg.InputPath = filepath.Join(inputDir, "solo.png")
	cfg.OutputDir = outputDir

	stats := Run(context.Background(), &cfg, false, testLogger(t))

	if stats.Converted != 1 {
		t.Fatalf("Converted = %d, want 1", stats.Converted)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "solo.webp")); err != nil {
		t.Errorf("output should land directly under the output root: %v", err)
	}

	rows := readReport(t, outputDir)
	if len(rows) != 2 {
		t.Fatalf("report has %d rows, want 2", len(rows))
	}
	if rows[1][0] != "solo.png" {
		t.Errorf("display name = %q, want just the file's own name", rows[1][0])
	}
}

func TestRun_BiggerClassification(t *testing.T) {
	installStubEncoders(t, "256000", "3072") // 250 KB out

	inputDir := t.TempDir()
	outputDir := t.TempDir()
	fileOfSize(t, inputDir, "art.png", 100*1024) // ratio 1.5

	cfg := config.DefaultConfig()
	cfg.InputPath = inputDir
	cfg.OutputDir = outputDir

	stats := Run(context.Background(), &cfg, true, testLogger(t))

	if stats.Converted != 1 {
		t.Errorf("Converted = %d, want 1 (bigger is advisory, not a failure)", stats.Converted)
	}
	if len(stats.Bigger) != 1 || stats.Bigger[0] != "art.png" {
		t.Errorf("Bigger = %v, want [art.png]", stats.Bigger)
	}
}

func TestRun_GifRoutedToGif2webp(t *testing.T) {
	installStubEncoders(t, "2048", "3072")

	inputDir := t.TempDir()
	outputDir := t.TempDir()
	fileOfSize(t, inputDir, "anim.gif", 10*1024)

	cfg := config.DefaultConfig()
	cfg.InputPath = inputDir
	cfg.OutputDir = outputDir

	stats := Run(context.Background(), &cfg, true, testLogger(t))
	if stats.Converted != 1 {
		t.Fatalf("Converted = %d, want 1", stats.Converted)
	}

	// The gif2webp stub reports 3072 bytes → 3 KB in the report.
	rows := readReport(t, outputDir)
	if rows[1][2] != "3" {
		t.Errorf("webp(KB) = %q, want %q (gif2webp stub size)", rows[1][2], "3")
	}
}

func TestRun_EncoderErrorOutputIsFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stub encoders not supported on windows")
	}

	// Encoders that produce no parseable size line.
	dir := t.TempDir()
	script := "#!/bin/sh\necho 'Error! Could not process file' >&2\nexit 1\n"
	for _, name := range []string{"cwebp", "gif2webp"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(script), 0o755); err != nil {
			t.Fatalf("write stub: %v", err)
		}
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	inputDir := t.TempDir()
	outputDir := t.TempDir()
	fileOfSize(t, inputDir, "bad.jpg", 10*1024)

	cfg := config.DefaultConfig()
	cfg.InputPath = inputDir
	cfg.OutputDir = outputDir

	stats := Run(context.Background(), &cfg, true, testLogger(t))
	if stats.Converted != 0 {
		t.Errorf("Converted = %d, want 0", stats.Converted)
	}
	if len(stats.Failed) != 1 || stats.Failed[0] != "bad.jpg" {
		t.Errorf("Failed = %v, want [bad.jpg]", stats.Failed)
	}
}
