package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/dartscore-go/internal/model"
	"github.com/mcoot/dartscore-go/internal/storage"
)

const maxRecordAttempts = 5

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.GameState) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, gameKey(game.ID), data, s.cfg.GameTTL)
	pipe.ZAdd(ctx, gamesIndexKey(), redis.Z{
		Score:  float64(game.UpdatedAt.UnixMilli()),
		Member: string(game.ID),
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.GameState, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.GameState
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, gameKey(id))
	pipe.ZRem(ctx, gamesIndexKey(), string(id))
	_, err := pipe.Exec(ctx)
	if err != nil {
		return err
	}

	current, err := s.client.Get(ctx, defaultGameKey()).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if current == string(id) {
		return s.client.Del(ctx, defaultGameKey()).Err()
	}
	return nil
}

func (s *Storage) ListGames(ctx context.Context) ([]model.GameInfo, error) {
	ids, err := s.client.ZRevRange(ctx, gamesIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []model.GameInfo{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = gameKey(model.GameID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	infos := make([]model.GameInfo, 0, len(values))
	var stale []any
	for i, val := range values {
		str, ok := val.(string)
		if !ok {
			stale = append(stale, ids[i]) // Snapshot expired
			continue
		}
		var game model.GameState
		if err := json.Unmarshal([]byte(str), &game); err != nil {
			continue // Skip invalid data
		}
		infos = append(infos, game.Info())
	}

	if len(stale) > 0 {
		if err := s.client.ZRem(ctx, gamesIndexKey(), stale...).Err(); err != nil {
			return nil, err
		}
	}

	return infos, nil
}

// Default game

func (s *Storage) SetDefaultGame(ctx context.Context, id model.GameID) error {
	return s.client.Set(ctx, defaultGameKey(), string(id), 0).Err()
}

func (s *Storage) GetDefaultGame(ctx context.Context) (model.GameID, error) {
	id, err := s.client.Get(ctx, defaultGameKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrGameNotFound
		}
		return "", err
	}
	return model.GameID(id), nil
}

// Statistics operations

func (s *Storage) RecordStatistics(ctx context.Context, stats *model.GameStatistics) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	key := statisticsKey()
	record := func(tx *redis.Tx) error {
		values, err := tx.LRange(ctx, key, 0, -1).Result()
		if err != nil {
			return err
		}

		idx := -1
		for i, val := range values {
			var entry model.GameStatistics
			if err := json.Unmarshal([]byte(val), &entry); err != nil {
				continue
			}
			if entry.GameID == stats.GameID {
				idx = i
				break
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if idx >= 0 {
				pipe.LSet(ctx, key, int64(idx), data)
				return nil
			}
			pipe.RPush(ctx, key, data)
			if s.cfg.MaxStatistics > 0 {
				pipe.LTrim(ctx, key, -s.cfg.MaxStatistics, -1)
			}
			return nil
		})
		return err
	}

	// Another writer touched the list between read and exec
	for range maxRecordAttempts {
		err = s.client.Watch(ctx, record, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return err
}

func (s *Storage) ListStatistics(ctx context.Context) ([]model.GameStatistics, error) {
	values, err := s.client.LRange(ctx, statisticsKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	history := make([]model.GameStatistics, 0, len(values))
	for _, val := range values {
		var entry model.GameStatistics
		if err := json.Unmarshal([]byte(val), &entry); err != nil {
			continue // Skip invalid data
		}
		history = append(history, entry)
	}
	return history, nil
}
