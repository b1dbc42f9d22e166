package core

import (
	"math"
	"testing"
)

func TestBoundsIntersect(t *testing.T) {
	box := NewBounds3(NewVec3(1, 1, 1), NewVec3(-1, -1, -1))

	tests := []struct {
		name     string
		ray      Ray
		expected float64
	}{
		{"hit front", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), 4},
		{"inside", NewRay(NewVec3(0, 0, 0), NewVec3(1, 0, 0)), 0},
		{"miss beside", NewRay(NewVec3(3, 0, 5), NewVec3(0, 0, -1)), math.Inf(1)},
		{"behind", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1)), math.Inf(1)},
		{"diagonal", NewRay(NewVec3(3, 3, 0), NewVec3(-1, -1, 0)), 2},
		{"grazing face plane", NewRay(NewVec3(-5, 1, 0), NewVec3(1, 0, 0)), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Intersect(tt.ray); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}

	if got := EmptyBounds().Intersect(NewRay(Vec3{}, NewVec3(1, 0, 0))); !math.IsInf(got, 1) {
		t.Errorf("Expected empty box to miss, got %v", got)
	}
}

func TestBoundsUnion(t *testing.T) {
	a := NewBounds3(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewBounds3(NewVec3(2, -1, 0), NewVec3(3, 0, 4))
	u := a.Union(b)

	if u.Min != NewVec3(0, -1, 0) || u.Max != NewVec3(3, 1, 4) {
		t.Errorf("Expected union (0,-1,0)-(3,1,4), got %v-%v", u.Min, u.Max)
	}
	if !u.Contains(a) || !u.Contains(b) {
		t.Errorf("Expected union to contain both boxes")
	}
	if a.Contains(u) {
		t.Errorf("Expected box not to contain its larger union")
	}
	if got := EmptyBounds().Union(a); got != a {
		t.Errorf("Expected empty union to be identity, got %v", got)
	}
	if !EmptyBounds().IsEmpty() {
		t.Errorf("Expected EmptyBounds to be empty")
	}
}

func TestBoundsFromPoints(t *testing.T) {
	b := NewBounds3FromPoints(NewVec3(1, 5, -2), NewVec3(-3, 0, 4), NewVec3(0, 2, 0))
	if b.Min != NewVec3(-3, 0, -2) || b.Max != NewVec3(1, 5, 4) {
		t.Errorf("Expected (-3,0,-2)-(1,5,4), got %v-%v", b.Min, b.Max)
	}
	if c := b.Centroid(); c != NewVec3(-1, 2.5, 1) {
		t.Errorf("Expected centroid (-1,2.5,1), got %v", c)
	}
	if s := b.Size(); s != NewVec3(4, 5, 6) {
		t.Errorf("Expected size (4,5,6), got %v", s)
	}
}

func TestBoundsContainsPoint(t *testing.T) {
	b := NewBounds3(NewVec3(0, 0, 0), NewVec3(1, 1, 0))
	tests := []struct {
		name     string
		p        Vec3
		eps      float64
		expected bool
	}{
		{"inside", NewVec3(0.5, 0.5, 0), 0, true},
		{"on corner", NewVec3(1, 1, 0), 0, true},
		{"just off flat side", NewVec3(0.5, 0.5, 1e-7), 0, false},
		{"within epsilon", NewVec3(0.5, 0.5, 1e-7), 1e-6, true},
		{"outside", NewVec3(2, 0, 0), 1e-6, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.ContainsPoint(tt.p, tt.eps); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
