package redis

import "fmt"

// Key prefix for all plugin data
const defaultKeyPrefix = "mixplugin"

// documentKey returns the Redis key holding an encoded document
func documentKey(prefix, name string) string {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return fmt.Sprintf("%s:doc:%s", prefix, name)
}
