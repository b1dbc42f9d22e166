package geometry

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestCameraPrimaryRay(t *testing.T) {
	tests := []struct {
		name           string
		camera         Camera
		u, v           float64
		expectedOrigin core.Vec3
		expectedDir    core.Vec3
	}{
		{
			name:           "default center",
			camera:         NewCamera(),
			expectedOrigin: core.Vec3{},
			expectedDir:    core.NewVec3(0, 0, -1),
		},
		{
			name:           "default right edge",
			camera:         NewCamera(),
			u:              1,
			expectedOrigin: core.Vec3{},
			expectedDir:    core.NewVec3(1, 0, -1).Normalize(),
		},
		{
			name:           "look at from +z",
			camera:         NewLookAtCamera(core.NewVec3(0, 0, 5), core.Vec3{}, core.NewVec3(0, 1, 0)),
			expectedOrigin: core.NewVec3(0, 0, 5),
			expectedDir:    core.NewVec3(0, 0, -1),
		},
		{
			name:           "look at from +x",
			camera:         NewLookAtCamera(core.NewVec3(5, 0, 0), core.Vec3{}, core.NewVec3(0, 1, 0)),
			v:              1,
			expectedOrigin: core.NewVec3(5, 0, 0),
			expectedDir:    core.NewVec3(-1, 1, 0).Normalize(),
		},
		{
			name:           "orthographic",
			camera:         NewOrthographicCamera(15),
			u:              1,
			expectedOrigin: core.NewVec3(15, 0, 0),
			expectedDir:    core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := tt.camera.PrimaryRay(tt.u, tt.v, 1)
			if !vecApprox(ray.Origin, tt.expectedOrigin, 1e-9) {
				t.Errorf("Expected origin %v, got %v", tt.expectedOrigin, ray.Origin)
			}
			if !vecApprox(ray.Direction, tt.expectedDir, 1e-9) {
				t.Errorf("Expected direction %v, got %v", tt.expectedDir, ray.Direction)
			}
		})
	}
}
