package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetReturnsCachedPointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get(KeyKillsColony)
	b := r.Ints.Get(KeyKillsColony)
	assert.Same(t, a, b)

	a.Add(3)
	assert.Equal(t, int64(3), r.IntValues()[KeyKillsColony])
}

func TestRangeSorted(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	m.Get("b").Set(2)
	m.Get("a").Set(1)

	var keys []string
	m.Range(func(key string, ptr *AtomicFloat) {
		keys = append(keys, key)
	})
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestAtomicStringTruncates(t *testing.T) {
	var s AtomicString
	assert.Equal(t, "", s.Load())
	s.Store("SPECIAL_WINDUP_WITH_A_VERY_LONG_SUFFIX")
	assert.Len(t, s.Load(), MaxStringLen)
}

func TestTotalCount(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("x")
	r.Floats.Get("y")
	r.Strings.Get("z")
	assert.Equal(t, 3, r.TotalCount())
}
