package renderer

import (
	"fmt"
	"testing"
)

// benchFrequencies creates a long-tailed frequency map for benchmarking
func benchFrequencies(n int) map[string]int {
	freq := make(map[string]int, n)
	for i := 0; i < n; i++ {
		freq[fmt.Sprintf("name%02d", i)] = 1000 / (i + 1)
	}
	return freq
}

// BenchmarkGenerate benchmarks layout on an open canvas
func BenchmarkGenerate(b *testing.B) {
	opts := testOptions(b)
	opts.Width, opts.Height = 600, 400
	cloud, err := New(opts)
	if err != nil {
		b.Fatal(err)
	}
	freq := benchFrequencies(40)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := cloud.Generate(freq); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkGenerateMasked benchmarks layout constrained to half the canvas
func BenchmarkGenerateMasked(b *testing.B) {
	opts := testOptions(b)
	opts.Mask = halfMask(opts.Width, opts.Height)
	cloud, err := New(opts)
	if err != nil {
		b.Fatal(err)
	}
	freq := benchFrequencies(40)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := cloud.Generate(freq); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRender benchmarks drawing a finished layout
func BenchmarkRender(b *testing.B) {
	opts := testOptions(b)
	opts.Mask = halfMask(opts.Width, opts.Height)
	opts.ContourWidth = 2
	cloud, err := New(opts)
	if err != nil {
		b.Fatal(err)
	}
	layout, err := cloud.Generate(benchFrequencies(40))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cloud.Render(layout)
	}
}
