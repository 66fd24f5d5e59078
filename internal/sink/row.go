package sink

import (
	"encoding/json"
	"fmt"
	"strconv"

	"patterncore/internal/model"
)

// pivotJSON is the {idx, price, kind} shape serialized into the `pivos`
// convenience column.
type pivotJSON struct {
	Idx   int     `json:"idx"`
	Price float64 `json:"price"`
	Kind  string  `json:"kind"`
}

// header returns the canonical column order for a record's family: the
// identity/score/rule columns common to every family, followed by that
// family's pivot fields, followed by the convenience duplicates.
func header(rec *model.PatternRecord) []string {
	cols := []string{"ticker", "timeframe", "strategy", "padrao_tipo", "score_total"}
	for _, rule := range rec.RuleOrder {
		cols = append(cols, "valid_"+rule)
	}
	for i := range rec.Pivots {
		cols = append(cols, fmt.Sprintf("p%d_idx", i), fmt.Sprintf("p%d_preco", i))
	}
	cols = append(cols, "tipo", "score", "pivos")
	return cols
}

// row renders rec into the column order header(rec) produced, as strings
// ready for a CSV writer or a keyed map for SQLite/Mongo.
func row(rec *model.PatternRecord) []string {
	vals := []string{rec.Ticker, rec.Timeframe, rec.Strategy, string(rec.Tipo), strconv.Itoa(rec.ScoreTotal)}
	for _, rule := range rec.RuleOrder {
		vals = append(vals, boolStr(rec.Valid[rule]))
	}
	for _, p := range rec.Pivots {
		vals = append(vals, strconv.Itoa(p.Idx), strconv.FormatFloat(p.Price, 'f', -1, 64))
	}

	pivots := make([]pivotJSON, len(rec.Pivots))
	for i, p := range rec.Pivots {
		pivots[i] = pivotJSON{Idx: p.Idx, Price: p.Price, Kind: p.Kind.String()}
	}
	pivotsJSON, _ := json.Marshal(pivots)

	vals = append(vals, string(rec.Tipo), strconv.Itoa(rec.ScoreTotal), string(pivotsJSON))
	return vals
}

func boolStr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
