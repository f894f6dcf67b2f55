package capture

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"vkdebug/internal/record"
)

// maxLine bounds a single NDJSON line.
const maxLine = 1 << 20

// NDJSONReader decodes one record per line. Blank lines and lines starting with '#'
// are skipped.
type NDJSONReader struct {
	sc   *bufio.Scanner
	line int
}

func NewNDJSONReader(r io.Reader) *NDJSONReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	return &NDJSONReader{sc: sc}
}

// Next decodes the next record. It returns io.EOF after the last one.
func (r *NDJSONReader) Next() (record.Record, error) {
	for r.sc.Scan() {
		r.line++
		line := bytes.TrimSpace(r.sc.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		var rec record.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return record.Record{}, fmt.Errorf("line %d: %w", r.line, err)
		}
		if rec.IDName != "" {
			rec.HasIDName = true
		}
		for i := range rec.Objects {
			if rec.Objects[i].Name != "" {
				rec.Objects[i].HasName = true
			}
		}
		return rec, nil
	}
	if err := r.sc.Err(); err != nil {
		return record.Record{}, err
	}
	return record.Record{}, io.EOF
}

// ReadNDJSON decodes every record in r.
func ReadNDJSON(r io.Reader) ([]record.Record, error) {
	return ReadAll(NewNDJSONReader(r))
}
