package redis

import (
	"fmt"

	"github.com/mcoot/dartscore-go/internal/model"
)

// Key prefix for all darts data
const keyPrefix = "darts"

// gameKey returns the Redis key for a game snapshot
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gamesIndexKey returns the Redis key for the ZSET of game ids scored by update time
func gamesIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}

// defaultGameKey returns the Redis key holding the default game id
func defaultGameKey() string {
	return fmt.Sprintf("%s:default_game", keyPrefix)
}

// statisticsKey returns the Redis key for the statistics history LIST
func statisticsKey() string {
	return fmt.Sprintf("%s:statistics", keyPrefix)
}
