package sink

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"patterncore/internal/model"
)

// mongoRecord is the persisted document shape: PatternRecord plus a
// server-side timestamp, mirroring the reference service's own
// created_at convention.
type mongoRecord struct {
	Ticker     string           `bson:"ticker"`
	Timeframe  string           `bson:"timeframe"`
	Strategy   string           `bson:"strategy"`
	Tipo       string           `bson:"tipo"`
	Family     string           `bson:"family"`
	ScoreTotal int              `bson:"score_total"`
	StartIdx   int              `bson:"start_idx"`
	EndIdx     int              `bson:"end_idx"`
	KeyIdx     int              `bson:"key_idx"`
	RetestIdx  int              `bson:"retest_idx"`
	Valid      map[string]bool  `bson:"valid"`
	Pivots     []pivotJSON      `bson:"pivots"`
	CreatedAt  time.Time        `bson:"created_at"`
}

// MongoSink persists PatternRecords to a single collection, adapted from
// the reference database service's dial-with-timeout/ping/single-
// collection shape, repointed from trading signals to pattern records.
type MongoSink struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoSink dials uri and returns a sink writing to database.collection.
func NewMongoSink(uri, database, collection string) (*MongoSink, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("sink: connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("sink: ping mongo: %w", err)
	}

	return &MongoSink{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

func (s *MongoSink) Emit(rec *model.PatternRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pivots := make([]pivotJSON, len(rec.Pivots))
	for i, p := range rec.Pivots {
		pivots[i] = pivotJSON{Idx: p.Idx, Price: p.Price, Kind: p.Kind.String()}
	}

	doc := mongoRecord{
		Ticker:     rec.Ticker,
		Timeframe:  rec.Timeframe,
		Strategy:   rec.Strategy,
		Tipo:       string(rec.Tipo),
		Family:     string(rec.Family),
		ScoreTotal: rec.ScoreTotal,
		StartIdx:   rec.StartIdx,
		EndIdx:     rec.EndIdx,
		KeyIdx:     rec.KeyIdx,
		RetestIdx:  rec.RetestIdx,
		Valid:      rec.Valid,
		Pivots:     pivots,
		CreatedAt:  time.Now(),
	}

	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("sink: insert record: %w", err)
	}
	return nil
}

func (s *MongoSink) Finalize() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
