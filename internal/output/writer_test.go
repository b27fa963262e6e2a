// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package output

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

func TestWriter_HeaderAndRecords(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.WriteHeader([]string{"slug", "member", "direct"}); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	if err := w.Write([]string{"platform", "alice", "true"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Write([]string{"platform", "bob, jr.", "false"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 records", len(rows))
	}
	if rows[0][0] != "slug" {
		t.Errorf("header row = %v", rows[0])
	}
	if rows[2][1] != "bob, jr." {
		t.Errorf("comma in field not preserved: %v", rows[2])
	}
	if w.Count() != 2 {
		t.Errorf("Count() = %d, want 2", w.Count())
	}
}

func TestWriter_DoubleHeaderRejected(t *testing.T) {
	w := NewWriter(&bytes.Buffer{})
	if err := w.WriteHeader([]string{"a"}); err != nil {
		t.Fatalf("first header: %v", err)
	}
	if err := w.WriteHeader([]string{"a"}); err == nil {
		t.Fatal("second header write should fail")
	}
}

func TestWriter_RowsFlushedImmediately(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.Write([]string{"row1"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	// Visible before Close: an interrupted export keeps completed rows.
	if buf.Len() == 0 {
		t.Error("record not flushed before Close")
	}
}

func TestNewFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")

	w, err := NewFileWriter(path)
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	if err := w.WriteHeader([]string{"name"}); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	if err := w.Write([]string{"widgets"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	want := "name\nwidgets\n"
	if string(data) != want {
		t.Errorf("file contents = %q, want %q", data, want)
	}
}

func TestNewFileWriter_BadPath(t *testing.T) {
	if _, err := NewFileWriter(filepath.Join(t.TempDir(), "missing", "export.csv")); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
