package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/backmassage/webpbatch/internal/webp"
)

func TestWriter_RowsAndSchema(t *testing.T) {
	dir := t.TempDir()
	w, err := Create(dir)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ok := webp.Outcome{
		DisplayName: "trips/beach.jpg",
		OriginalKB:  100,
		Converted:   true,
		WebpKB:      40,
		ChangeRatio: -0.6,
	}
	failed := webp.Outcome{DisplayName: "broken.png", OriginalKB: 5}

	if err := w.Add(&ok); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := w.Add(&failed); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read report: %v", err)
	}

	want := [][]string{
		{"file", "original(KB)", "webp(KB)", "changed"},
		{"trips/beach.jpg", "100", "40", "-0.60"},
		{"broken.png", "5", "", ""},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("report rows:\n got %v\nwant %v", rows, want)
	}
}

func TestWriter_PathIsAbsolute(t *testing.T) {
	dir := t.TempDir()
	w, err := Create(dir)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer w.Close()

	if !filepath.IsAbs(w.Path()) {
		t.Errorf("Path() = %q, want absolute", w.Path())
	}
}

func TestWriter_TruncatesPreviousReport(t *testing.T) {
	dir := t.TempDir()

	w, err := Create(dir)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	o := webp.Outcome{DisplayName: "old.jpg", OriginalKB: 1}
	w.Add(&o)
	w.Close()

	w, err = Create(dir)
	if err != nil {
		t.Fatalf("Create (second run): %v", err)
	}
	w.Close()

	b, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if string(b) != "file,original(KB),webp(KB),changed\n" {
		t.Errorf("second run should start fresh, got: %q", string(b))
	}
}
