package window

import (
	"strconv"
	"testing"
)

func BenchmarkGenerate(b *testing.B) {
	for _, n := range []int{256, 1024, 4096, 16384} {
		b.Run("hann/"+strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = Generate(TypeHann, n)
			}
		})
	}
}

func BenchmarkAdjustLength(b *testing.B) {
	for _, n := range []int{256, 4096, 65536} {
		in := make([]float64, n/2)
		dst := make([]float64, n)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				AdjustLengthInto(dst, in)
			}
		})
	}
}
