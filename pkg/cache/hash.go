package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex-encoded SHA-256 digest of data. Dataset hashes,
// pipeline cache keys, and file cache paths all share this digest form.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds a "prefix:digest" cache key from the JSON encoding of
// parts. JSON keeps the encoding stable across runs, which is what
// makes pipeline keys reproducible.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}
