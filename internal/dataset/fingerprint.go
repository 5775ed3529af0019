package dataset

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/zeebo/xxh3"
)

// Fingerprint returns a digest of f's row multiset. It ignores row order and
// column order, so two frames holding the same rows under the same column
// names fingerprint equally however they were assembled.
func Fingerprint(f Frame) uint64 {
	order := make([]int, len(f.Columns))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return f.Columns[order[i]] < f.Columns[order[j]] })

	h := xxh3.New()
	var sum uint64
	var buf [9]byte
	for _, row := range f.Rows {
		h.Reset()
		for _, i := range order {
			_, _ = h.Write([]byte(f.Columns[i]))
			writeValue(h, buf[:], row[i])
		}
		// Addition is commutative, which makes the digest order independent
		// while still distinguishing duplicate rows.
		sum += h.Sum64()
	}
	return sum
}

// FingerprintHex is Fingerprint formatted for logs.
func FingerprintHex(f Frame) string {
	return fmt.Sprintf("%016x", Fingerprint(f))
}

func writeValue(h *xxh3.Hasher, buf []byte, v any) {
	switch t := v.(type) {
	case nil:
		buf[0] = 0
		_, _ = h.Write(buf[:1])
	case int64:
		buf[0] = 1
		binary.LittleEndian.PutUint64(buf[1:], uint64(t))
		_, _ = h.Write(buf[:9])
	case float64:
		buf[0] = 2
		binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(t))
		_, _ = h.Write(buf[:9])
	case string:
		buf[0] = 3
		binary.LittleEndian.PutUint64(buf[1:], uint64(len(t)))
		_, _ = h.Write(buf[:9])
		_, _ = h.Write([]byte(t))
	default:
		s := fmt.Sprint(t)
		buf[0] = 4
		_, _ = h.Write(buf[:1])
		_, _ = h.Write([]byte(s))
	}
}
