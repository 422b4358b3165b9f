package stats

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mcoot/dartscore-go/internal/model"
)

// MongoCollection is the subset of *mongo.Collection the sink needs
type MongoCollection interface {
	ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
}

// MongoSink stores one document per game, keyed by game id
type MongoSink struct {
	games MongoCollection
}

// NewMongoSink creates a MongoSink writing to the game_statistics collection
func NewMongoSink(db *mongo.Database) *MongoSink {
	return NewMongoSinkWithCollection(db.Collection("game_statistics"))
}

// NewMongoSinkWithCollection creates a MongoSink over an existing collection (for testing)
func NewMongoSinkWithCollection(coll MongoCollection) *MongoSink {
	return &MongoSink{games: coll}
}

func (s *MongoSink) Name() string { return "mongo" }

func (s *MongoSink) Record(ctx context.Context, stats *model.GameStatistics) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.games.ReplaceOne(ctx, bson.M{"game_id": stats.GameID}, stats, opts)
	return err
}
