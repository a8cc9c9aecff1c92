// Package writer persists output tables as Parquet files.
package writer

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// Writer writes rows of one table type to a Parquet file configured for
// analytical reads.
//
// Zstd keeps the many repeated contract, state and county strings small.
// Page statistics let engines skip pages on the usual filters (contractid,
// year, month). Rows arrive in key order from the loaders and the
// reconciler, which keeps those statistics tight.
type Writer[T any] struct {
	file   *os.File
	writer *parquet.GenericWriter[T]
	count  int
}

// New creates filename and returns a writer for rows of type T.
func New[T any](filename string) (*Writer[T], error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create parquet file: %w", err)
	}

	writer := parquet.NewGenericWriter[T](file,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedDefault}),
		parquet.PageBufferSize(8*1024),
		parquet.DataPageStatistics(true),
		parquet.CreatedBy("madata", "1.0", ""),
	)

	return &Writer[T]{
		file:   file,
		writer: writer,
	}, nil
}

// Write appends a batch of rows.
func (w *Writer[T]) Write(rows []T) (int, error) {
	n, err := w.writer.Write(rows)
	w.count += n
	if err != nil {
		return n, fmt.Errorf("write parquet rows: %w", err)
	}
	return n, nil
}

// Close flushes the final row group and closes the file.
func (w *Writer[T]) Close() error {
	if err := w.writer.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return w.file.Close()
}

// Count returns the total number of rows written.
func (w *Writer[T]) Count() int {
	return w.count
}

// WriteFile writes rows to filename in one call.
func WriteFile[T any](filename string, rows []T) error {
	w, err := New[T](filename)
	if err != nil {
		return err
	}
	if _, err := w.Write(rows); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// ReadFile reads every row of a Parquet file written by Writer.
func ReadFile[T any](filename string) ([]T, error) {
	rows, err := parquet.ReadFile[T](filename)
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", filename, err)
	}
	return rows, nil
}
