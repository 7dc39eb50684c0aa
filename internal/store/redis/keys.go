package redis

const (
	// KeyPrefix namespaces every key written by the acronym store.
	KeyPrefix = "acronyms:kv:"
)

// Key returns the Redis key holding the value stored under name.
func Key(name string) string {
	return KeyPrefix + name
}
