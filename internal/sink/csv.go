package sink

import (
	"encoding/csv"
	"fmt"
	"os"

	"patterncore/internal/model"
)

// CSVSink writes PatternRecords to a CSV file, header first, in the
// canonical column order described in SPEC_FULL §6. The header is fixed
// by the first record it sees; a later record with a differing rule set
// (a different family) writes a row in its own family's column layout and
// count, with no padding and no second header.
type CSVSink struct {
	f      *os.File
	w      *csv.Writer
	header []string
}

// NewCSVSink opens (or creates) path for writing and returns a sink ready
// for Emit calls.
func NewCSVSink(path string) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("sink: create %s: %w", path, err)
	}
	return &CSVSink{f: f, w: csv.NewWriter(f)}, nil
}

func (s *CSVSink) Emit(rec *model.PatternRecord) error {
	if s.header == nil {
		s.header = header(rec)
		if err := s.w.Write(s.header); err != nil {
			return fmt.Errorf("sink: write header: %w", err)
		}
	}
	if err := s.w.Write(row(rec)); err != nil {
		return fmt.Errorf("sink: write row: %w", err)
	}
	return nil
}

func (s *CSVSink) Finalize() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return fmt.Errorf("sink: flush: %w", err)
	}
	return s.f.Close()
}
