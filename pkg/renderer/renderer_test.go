package renderer

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// MockIntegrator returns a fixed color and counts its calls
type MockIntegrator struct {
	returnColor core.Vec3
	callCount   atomic.Int64
}

func (m *MockIntegrator) Li(core.Ray, *scene.Scene, int) core.Vec3 {
	m.callCount.Add(1)
	return m.returnColor
}

func createEmptyScene() *scene.Scene {
	return scene.New("empty", geometry.NewCamera())
}

func createSphereScene() *scene.Scene {
	s := scene.New("sphere", geometry.NewLookAtCamera(core.NewVec3(0, 0, 6), core.Vec3{}, core.NewVec3(0, 1, 0)))
	s.Add(
		geometry.NewSphere(core.Vec3{}, 1, material.NewDiffuse(core.NewVec3(0.8, 0.3, 0.3)).WithReflective(core.Splat(0.2))),
		geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), material.NewDiffuse(core.Splat(0.5))),
	)
	s.AddLight(lights.NewPointLight(core.NewVec3(3, 5, 4), core.Splat(60)))
	return s
}

func testConfig(width, height int) Config {
	config := DefaultConfig()
	config.Width = width
	config.Height = height
	config.TileSize = 8
	config.GridDim = 2
	return config
}

func TestRenderWritesEveryPixelOnce(t *testing.T) {
	for _, threads := range []int{1, 3, 8} {
		for _, mode := range []Mode{ModeThreads, ModeSingle} {
			t.Run(string(mode), func(t *testing.T) {
				config := testConfig(37, 23)
				config.NumThreads = threads
				config.Mode = mode
				config.SamplesPerPixel = 2

				mock := &MockIntegrator{returnColor: core.Splat(0.25)}
				r, err := New(createEmptyScene(), config, mock)
				if err != nil {
					t.Fatalf("New failed: %v", err)
				}
				frame, stats, err := r.Render(context.Background())
				if err != nil {
					t.Fatalf("Render failed: %v", err)
				}

				// Accumulated writes would show up as multiples of 0.25
				for i, p := range frame.Pixels {
					if math.Abs(p.X-0.25) > 1e-12 {
						t.Fatalf("Pixel %d: expected 0.25, got %v", i, p.X)
					}
				}

				wantSamples := 37 * 23 * 2 * 2 * 2
				if got := int(mock.callCount.Load()); got != wantSamples {
					t.Errorf("Expected %d integrator calls, got %d", wantSamples, got)
				}
				if stats.TotalSamples() != wantSamples {
					t.Errorf("Expected %d samples in stats, got %d", wantSamples, stats.TotalSamples())
				}
				if stats.TotalPixels() != 37*23 {
					t.Errorf("Expected %d pixels in stats, got %d", 37*23, stats.TotalPixels())
				}
			})
		}
	}
}

func TestRenderClampsSamples(t *testing.T) {
	tests := []struct {
		name  string
		color core.Vec3
		want  core.Vec3
	}{
		{"above one", core.NewVec3(3, 0.5, 1), core.NewVec3(1, 0.5, 1)},
		{"negative", core.NewVec3(-1, 0, 0.2), core.NewVec3(0, 0, 0.2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(createEmptyScene(), testConfig(4, 4), &MockIntegrator{returnColor: tt.color})
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			frame, _, err := r.Render(context.Background())
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if got := frame.At(2, 1); math.Abs(got.X-tt.want.X) > 1e-12 || math.Abs(got.Y-tt.want.Y) > 1e-12 || math.Abs(got.Z-tt.want.Z) > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRenderIsIndependentOfThreadCount(t *testing.T) {
	render := func(threads int) *Frame {
		config := testConfig(41, 29)
		config.NumThreads = threads
		r, err := New(createSphereScene(), config, nil)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		frame, _, err := r.Render(context.Background())
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		return frame
	}

	single := render(1)
	multi := render(6)
	lit := false
	for i := range single.Pixels {
		if single.Pixels[i] != multi.Pixels[i] {
			t.Fatalf("Pixel %d differs: %v vs %v", i, single.Pixels[i], multi.Pixels[i])
		}
		if !single.Pixels[i].IsZero() {
			lit = true
		}
	}
	if !lit {
		t.Errorf("Expected some lit pixels")
	}
}

func TestRenderCenterPixelSeesSphere(t *testing.T) {
	config := testConfig(21, 21)
	r, err := New(createSphereScene(), config, integrator.Normals{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	frame, _, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// The sphere faces the camera along +Z at the image center
	c := frame.At(10, 10)
	if c.Z < 0.9 {
		t.Errorf("Expected normal color close to (0.5,0.5,1), got %v", c)
	}
	if corner := frame.At(0, 0); corner != (core.Vec3{}) {
		t.Errorf("Expected black sky in the corner, got %v", corner)
	}
}

func TestRenderGradient(t *testing.T) {
	config := testConfig(512, 2)
	config.Mode = ModeGradient
	mock := &MockIntegrator{}
	r, err := New(createEmptyScene(), config, mock)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	frame, _, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if mock.callCount.Load() != 0 {
		t.Errorf("Expected no integrator calls in gradient mode")
	}
	if got := frame.At(0, 1); got != (core.Vec3{}) {
		t.Errorf("Expected black left edge, got %v", got)
	}
	if got := frame.At(511, 0); got != core.Splat(1) {
		t.Errorf("Expected white right edge, got %v", got)
	}
	if frame.At(2, 0) != frame.At(3, 0) || frame.At(3, 0) == frame.At(4, 0) {
		t.Errorf("Expected stripes two pixels wide")
	}
}

func TestRenderProgress(t *testing.T) {
	config := testConfig(30, 30)
	r, err := New(createEmptyScene(), config, &MockIntegrator{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	calls, last, total := 0, 0, 0
	r.Progress = func(done, n int) {
		calls++
		if done != last+1 {
			t.Errorf("Expected progress %d, got %d", last+1, done)
		}
		last, total = done, n
	}
	if _, _, err := r.Render(context.Background()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if total != 16 || calls != 16 || last != 16 {
		t.Errorf("Expected 16 tile steps, got calls=%d last=%d total=%d", calls, last, total)
	}
}

func TestRenderCancelled(t *testing.T) {
	for _, mode := range []Mode{ModeThreads, ModeSingle} {
		t.Run(string(mode), func(t *testing.T) {
			config := testConfig(16, 16)
			config.Mode = mode
			r, err := New(createEmptyScene(), config, &MockIntegrator{})
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			if _, _, err := r.Render(ctx); !errors.Is(err, context.Canceled) {
				t.Errorf("Expected context.Canceled, got %v", err)
			}
		})
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	bad := DefaultConfig()
	bad.TileSize = 0

	noMaterial := scene.New("bad", geometry.NewCamera())
	noMaterial.Add(geometry.NewSphere(core.Vec3{}, 1, nil))

	tests := []struct {
		name   string
		scene  *scene.Scene
		config Config
		err    error
	}{
		{"nil scene", nil, DefaultConfig(), ErrNoScene},
		{"no camera", &scene.Scene{Name: "x"}, DefaultConfig(), ErrNoCamera},
		{"bad config", createEmptyScene(), bad, ErrInvalidConfig},
		{"invalid scene", noMaterial, DefaultConfig(), scene.ErrInvalidScene},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.scene, tt.config, nil); !errors.Is(err, tt.err) {
				t.Errorf("Expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestFrameSave(t *testing.T) {
	frame := NewFrame(3, 2)
	frame.add(1, 1, core.Splat(0.5))
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := frame.Save(path); err != nil {
		t.Errorf("Save failed: %v", err)
	}
	if err := frame.Save(filepath.Join(t.TempDir(), "missing", "frame.ppm")); err == nil {
		t.Errorf("Expected error for missing directory")
	}
}
