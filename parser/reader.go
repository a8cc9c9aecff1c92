package parser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var (
	// ErrSchema is returned when a file does not fit its fixed column layout.
	ErrSchema = errors.New("column layout mismatch")
	// ErrMissingColumn is returned when a premium table lacks a required header.
	ErrMissingColumn = errors.New("missing column")
)

// layout describes a fixed, positional column schema. Rows narrower than
// max are padded with empty cells; wider rows are a schema failure.
type layout struct {
	name string
	min  int
	max  int
}

// newLatin1CSV wraps r in an ISO-8859-1 decoder and a permissive CSV reader.
func newLatin1CSV(r io.Reader) *csv.Reader {
	bufReader := bufio.NewReaderSize(r, 256*1024)

	// Skip UTF-8 BOM if present
	bom, err := bufReader.Peek(3)
	if err == nil && len(bom) >= 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		bufReader.Discard(3)
	}

	reader := csv.NewReader(transform.NewReader(bufReader, charmap.ISO8859_1.NewDecoder()))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader
}

// readRows reads every data row of the file at path, discarding the header
// line. Each returned row has exactly l.max cells.
func readRows(path string, l layout) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := newLatin1CSV(file)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", l.name, err)
	}
	if len(header) < l.min || len(header) > l.max {
		return nil, fmt.Errorf("%s: header has %d columns, want %d-%d: %w",
			l.name, len(header), l.min, l.max, ErrSchema)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: read line %d: %w", l.name, len(rows)+2, err)
		}
		if len(row) > l.max {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("%s: line %d has %d columns, want at most %d: %w",
				l.name, line, len(row), l.max, ErrSchema)
		}
		for len(row) < l.max {
			row = append(row, "")
		}
		rows = append(rows, row)
	}
	return rows, nil
}
