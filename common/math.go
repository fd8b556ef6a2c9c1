// Package common holds small helpers shared by the host's presentation code.
package common

// Base resolution the host lays out against.
const (
	BaseWidth  = 1280
	BaseHeight = 720
)

type Float interface {
	~float32 | ~float64
}

func Lerp[T Float](a, b, t T) T {
	return a + t*(b-a)
}

func Clamp[T Float](v, lo, hi T) T {
	return max(lo, min(v, hi))
}
