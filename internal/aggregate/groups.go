package aggregate

// Group keys and exact sums shared by the views. Keys are nullable strings
// so a nil username or search term can form its own group.

import (
	"math"
	"math/big"
	"sort"
)

// groupKey is a nullable string group key.
type groupKey struct {
	valid bool
	s     string
}

// keyOf maps a string cell to a valid key and anything else (nil) to the
// nil key.
func keyOf(v any) groupKey {
	if s, ok := v.(string); ok {
		return groupKey{valid: true, s: s}
	}
	return groupKey{}
}

func (k groupKey) value() any {
	if !k.valid {
		return nil
	}
	return k.s
}

// sortKeys orders keys with the nil key first, then by string.
func sortKeys(keys []groupKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].valid != keys[j].valid {
			return !keys[i].valid
		}
		return keys[i].s < keys[j].s
	})
}

// keysOf returns m's keys in output order.
func keysOf(m map[groupKey]*nullSum) []groupKey {
	keys := make([]groupKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortKeys(keys)
	return keys
}

// nullSum is an exact SUM that stays nil until a non-nil value is added.
type nullSum struct {
	sum *big.Int
}

func (n *nullSum) add(v *big.Int) {
	if n.sum == nil {
		n.sum = new(big.Int)
	}
	n.sum.Add(n.sum, v)
}

// int64Value returns the sum, nil for an all-nil group. Sums beyond int64
// saturate.
func (n *nullSum) int64Value() any {
	if n.sum == nil {
		return nil
	}
	if n.sum.IsInt64() {
		return n.sum.Int64()
	}
	if n.sum.Sign() > 0 {
		return int64(math.MaxInt64)
	}
	return int64(math.MinInt64)
}

// scaledFloat returns sum/scale rounded to the nearest float64, nil for an
// all-nil group.
func (n *nullSum) scaledFloat(scale int64) any {
	if n.sum == nil {
		return nil
	}
	f, _ := new(big.Rat).SetFrac(n.sum, big.NewInt(scale)).Float64()
	return f
}
