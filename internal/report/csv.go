// Package report writes the per-run CSV report (details.csv). The writer
// is used only by the single aggregating goroutine, so it needs no locking.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/backmassage/webpbatch/internal/webp"
)

// FileName is the report file created under the output directory.
const FileName = "details.csv"

var header = []string{"file", "original(KB)", "webp(KB)", "changed"}

// Writer appends one CSV row per conversion outcome.
type Writer struct {
	f    *os.File
	csvw *csv.Writer
	path string
}

// Create opens <outputDir>/details.csv, truncating any previous report,
// and writes the header row.
func Create(outputDir string) (*Writer, error) {
	path := filepath.Join(outputDir, FileName)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	w := &Writer{f: f, csvw: csv.NewWriter(f), path: path}
	if err := w.csvw.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write report header: %w", err)
	}
	return w, nil
}

// Add writes one row for an outcome. Failed conversions get blank webp and
// changed cells.
func (w *Writer) Add(o *webp.Outcome) error {
	row := []string{o.DisplayName, strconv.FormatInt(o.OriginalKB, 10), "", ""}
	if o.Converted {
		row[2] = strconv.FormatInt(o.WebpKB, 10)
		row[3] = strconv.FormatFloat(o.ChangeRatio, 'f', 2, 64)
	}
	if err := w.csvw.Write(row); err != nil {
		return fmt.Errorf("write report row: %w", err)
	}
	return nil
}

// Path returns the absolute path of the report file when resolvable,
// otherwise the path it was created with.
func (w *Writer) Path() string {
	if abs, err := filepath.Abs(w.path); err == nil {
		return abs
	}
	return w.path
}

// Close flushes buffered rows and closes the file.
func (w *Writer) Close() error {
	w.csvw.Flush()
	if err := w.csvw.Error(); err != nil {
		w.f.Close()
		return fmt.Errorf("flush report: %w", err)
	}
	return w.f.Close()
}
