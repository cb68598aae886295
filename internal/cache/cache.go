package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Cache stores rendered settlement results keyed by a hash of the request.
// Get reports a plain miss as ok == false with a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
}

const keyPrefix = "chipsettle:"

// Key hashes the JSON encoding of v under the given namespace. Equal requests
// encode to equal bytes because encoding/json writes struct fields in
// declaration order and map keys sorted.
func Key(namespace string, v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("cache key: %w", err)
	}
	return keyPrefix + namespace + ":" + strconv.FormatUint(xxhash.Sum64(b), 16), nil
}
