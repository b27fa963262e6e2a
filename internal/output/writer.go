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

// Package output writes exported records as CSV, to stdout or a file.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sync"
)

// Writer writes records as CSV rows. Each row is flushed immediately so an
// interrupted export leaves complete rows behind, never a torn one.
type Writer struct {
	mu        sync.Mutex
	csv       *csv.Writer
	count     int
	wroteHead bool
	closeFunc func() error
}

// NewWriter creates a CSV writer over the given output.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// NewFileWriter creates a CSV writer that writes to a file.
// The caller must call Close() when done to ensure the file is properly closed.
func NewFileWriter(filename string) (*Writer, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &Writer{
		csv:       csv.NewWriter(file),
		closeFunc: file.Close,
	}, nil
}

// WriteHeader writes the column header row. Repeated calls are rejected so a
// command bug cannot silently produce a double header.
func (w *Writer) WriteHeader(columns []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.wroteHead {
		return fmt.Errorf("header already written")
	}
	if err := w.csv.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("failed to flush header: %w", err)
	}
	w.wroteHead = true
	return nil
}

// Write writes a single record row, flushed immediately.
func (w *Writer) Write(record []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.csv.Write(record); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("failed to flush record: %w", err)
	}

	w.count++
	return nil
}

// Count returns the number of records written, excluding the header.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close flushes buffered rows and closes the underlying writer if it's a file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	if w.closeFunc != nil {
		return w.closeFunc()
	}
	return nil
}
