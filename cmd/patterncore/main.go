// Command patterncore runs the chart-pattern detection core over a
// requested set of tickers, intervals and zigzag strategies, emitting
// accepted PatternRecords to the configured sink.
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if ia, ok := err.(*invalidArgsError); ok {
			log.Error().Err(ia.err).Msg("invalid arguments")
			os.Exit(2)
		}
		log.Error().Err(err).Msg("patterncore run failed")
		os.Exit(1)
	}
}
