// Package gen provides synthetic point sets for builder benchmarks.
package gen

import "math/rand"

// RandomPoints generates n uniform points in [0,1)^dim.
func RandomPoints(n, dim int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		p := make([]float64, dim)
		for d := 0; d < dim; d++ {
			p[d] = rng.Float64()
		}
		out[i] = p
	}
	return out
}

// ClusteredPoints generates n points drawn from k Gaussian clusters, a
// worst-ish case for the median interpolation search.
func ClusteredPoints(n, dim, k int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	centers := RandomPoints(k, dim, seed+1)
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		c := centers[rng.Intn(k)]
		p := make([]float64, dim)
		for d := 0; d < dim; d++ {
			p[d] = c[d] + rng.NormFloat64()*0.01
		}
		out[i] = p
	}
	return out
}
