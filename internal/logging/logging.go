// Package logging sets up one structured zerolog logger per pattern
// family, writing to a file under debug_dir when that family's debug
// flag is set and discarding otherwise, so the cost of debug logging is
// paid only when asked for.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"patterncore/internal/config"
)

// Loggers holds one logger per family plus a general-purpose run logger.
type Loggers struct {
	Run zerolog.Logger
	HNS zerolog.Logger
	DTB zerolog.Logger
	TTB zerolog.Logger

	files []*os.File
}

// New builds Loggers from cfg.Debug, opening a file per enabled family
// under cfg.Debug.DebugDir. Callers must call Close when done.
func New(cfg *config.Config, runID string) (*Loggers, error) {
	run := zerolog.New(os.Stderr).With().Timestamp().Str("run_id", runID).Logger()

	l := &Loggers{Run: run}

	var err error
	if l.HNS, err = familyLogger(cfg.Debug.DebugDir, "hns", cfg.Debug.HNSDebug, runID, l); err != nil {
		return nil, err
	}
	if l.DTB, err = familyLogger(cfg.Debug.DebugDir, "dtb", cfg.Debug.DTBDebug, runID, l); err != nil {
		return nil, err
	}
	if l.TTB, err = familyLogger(cfg.Debug.DebugDir, "ttb", cfg.Debug.TTBDebug, runID, l); err != nil {
		return nil, err
	}
	return l, nil
}

func familyLogger(debugDir, family string, enabled bool, runID string, l *Loggers) (zerolog.Logger, error) {
	if !enabled {
		return zerolog.New(io.Discard), nil
	}

	if err := os.MkdirAll(debugDir, 0o755); err != nil {
		return zerolog.Logger{}, err
	}
	path := filepath.Join(debugDir, family+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Logger{}, err
	}
	l.files = append(l.files, f)
	return zerolog.New(f).With().Timestamp().Str("run_id", runID).Str("family", family).Logger(), nil
}

// Close closes every open debug log file.
func (l *Loggers) Close() {
	for _, f := range l.files {
		f.Close()
	}
}
