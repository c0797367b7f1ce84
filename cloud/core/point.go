package core

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// Point3 is a single particle coordinate.
type Point3 = mgl32.Vec3

// PointSet is an immutable, ordered morph target. It is index-aligned with the
// live particle buffer, so every set generated for a session has the same length.
type PointSet struct {
	points []Point3
}

var ErrEmptyPointSet = errors.New("point set must not be empty")

// NewPointSet copies pts into a new set.
func NewPointSet(pts []Point3) (*PointSet, error) {
	if len(pts) == 0 {
		return nil, ErrEmptyPointSet
	}
	cp := make([]Point3, len(pts))
	copy(cp, pts)
	return &PointSet{points: cp}, nil
}

// adoptPointSet takes ownership of pts without copying. Callers must not keep a reference.
func adoptPointSet(pts []Point3) *PointSet {
	return &PointSet{points: pts}
}

// Len returns the number of points.
func (s *PointSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.points)
}

// At returns point i.
func (s *PointSet) At(i int) Point3 {
	return s.points[i]
}

// CopyTo copies the set into dst and returns the number of points copied.
func (s *PointSet) CopyTo(dst []Point3) int {
	return copy(dst, s.points)
}

// PointSetBuilder fills a fixed-size set in place and hands it over exactly once.
type PointSetBuilder struct {
	points []Point3
	built  bool
}

func NewPointSetBuilder(n int) *PointSetBuilder {
	return &PointSetBuilder{points: make([]Point3, n)}
}

func (b *PointSetBuilder) Len() int { return len(b.points) }

func (b *PointSetBuilder) Set(i int, p Point3) { b.points[i] = p }

// Build freezes the builder. Further use of the builder panics.
func (b *PointSetBuilder) Build() (*PointSet, error) {
	if b.built {
		panic("PointSetBuilder: Build called twice")
	}
	if len(b.points) == 0 {
		return nil, ErrEmptyPointSet
	}
	b.built = true
	pts := b.points
	b.points = nil
	return adoptPointSet(pts), nil
}
