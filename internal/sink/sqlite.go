package sink

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"patterncore/internal/model"
)

// SQLiteSink persists PatternRecords to a local SQLite database for
// queryable historical corpora, using modernc.org/sqlite's pure-Go
// driver so the binary stays cgo-free.
type SQLiteSink struct {
	db *sql.DB
}

// NewSQLiteSink opens (creating if needed) the database at path and
// ensures its schema exists.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sink: open sqlite %s: %w", path, err)
	}

	const schema = `
CREATE TABLE IF NOT EXISTS pattern_records (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ticker TEXT NOT NULL,
	timeframe TEXT NOT NULL,
	strategy TEXT NOT NULL,
	tipo TEXT NOT NULL,
	family TEXT NOT NULL,
	score_total INTEGER NOT NULL,
	start_idx INTEGER NOT NULL,
	end_idx INTEGER NOT NULL,
	key_idx INTEGER NOT NULL,
	retest_idx INTEGER NOT NULL,
	valid_flags TEXT NOT NULL,
	pivots TEXT NOT NULL
)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sink: create schema: %w", err)
	}

	return &SQLiteSink{db: db}, nil
}

func (s *SQLiteSink) Emit(rec *model.PatternRecord) error {
	validJSON, err := json.Marshal(rec.Valid)
	if err != nil {
		return fmt.Errorf("sink: marshal valid flags: %w", err)
	}

	pivots := make([]pivotJSON, len(rec.Pivots))
	for i, p := range rec.Pivots {
		pivots[i] = pivotJSON{Idx: p.Idx, Price: p.Price, Kind: p.Kind.String()}
	}
	pivotsJSON, err := json.Marshal(pivots)
	if err != nil {
		return fmt.Errorf("sink: marshal pivots: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO pattern_records
			(ticker, timeframe, strategy, tipo, family, score_total, start_idx, end_idx, key_idx, retest_idx, valid_flags, pivots)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Ticker, rec.Timeframe, rec.Strategy, string(rec.Tipo), string(rec.Family),
		rec.ScoreTotal, rec.StartIdx, rec.EndIdx, rec.KeyIdx, rec.RetestIdx,
		string(validJSON), string(pivotsJSON),
	)
	if err != nil {
		return fmt.Errorf("sink: insert record: %w", err)
	}
	return nil
}

func (s *SQLiteSink) Finalize() error {
	return s.db.Close()
}
