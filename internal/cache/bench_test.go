package cache

import "testing"

func BenchmarkCacheGetHit(b *testing.B) {
	c := New[int, int](8)
	for i := range 8 {
		c.Set(i, i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(i & 7)
	}
}

func BenchmarkCacheGetOrCreateChurn(b *testing.B) {
	c := New[int, int](8)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.GetOrCreate(i%16, func() int {
			return i
		})
	}
}
