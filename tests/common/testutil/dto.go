//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// Mutation edits the JSON form of a request DTO before it is sent.
type Mutation func(m map[string]any)

// DtoMap renders v the way it goes over the wire and applies muts in order.
func DtoMap(t *testing.T, v any, muts ...Mutation) map[string]any {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)

	m := map[string]any{}
	require.NoError(t, json.Unmarshal(b, &m))
	for _, mut := range muts {
		if mut != nil {
			mut(m)
		}
	}
	return m
}

// Field sets key, or drops it when value is nil.
func Field(key string, value any) Mutation {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
			return
		}
		m[key] = value
	}
}

// CustomValue sets one entry of customInputValues, creating the map if needed.
func CustomValue(fieldID string, value any) Mutation {
	return func(m map[string]any) {
		values, _ := m["customInputValues"].(map[string]any)
		if values == nil {
			values = map[string]any{}
		}
		values[fieldID] = value
		m["customInputValues"] = values
	}
}
