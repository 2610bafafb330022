package redis

import "fmt"

// Key prefix for all game-related data
const keyPrefix = "mafia"

// defaultGamesKey returns the Redis key holding the games document
func defaultGamesKey() string {
	return fmt.Sprintf("%s:games", keyPrefix)
}
