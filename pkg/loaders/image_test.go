package loaders

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestToByte(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{0, 0},
		{-1, 0},
		{1, 255},
		{4, 255},
		{0.5, 186},
	}
	for _, tt := range tests {
		if got := toByte(tt.in); got != tt.want {
			t.Errorf("toByte(%v): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestWritePPM(t *testing.T) {
	pixels := []core.Vec3{
		core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1), core.NewVec3(2, 2, 2),
		core.NewVec3(0.5, 0.5, 0.5), core.Vec3{},
	}
	var buf bytes.Buffer
	if err := WritePPM(&buf, 2, 3, pixels); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}

	header := "P6\n2 3\n255\n"
	out := buf.Bytes()
	if string(out[:len(header)]) != header {
		t.Fatalf("Expected header %q, got %q", header, out[:len(header)])
	}
	body := out[len(header):]
	want := []byte{255, 0, 0, 0, 255, 0, 0, 0, 255, 255, 255, 255, 186, 186, 186, 0, 0, 0}
	if !bytes.Equal(body, want) {
		t.Errorf("Expected body %v, got %v", want, body)
	}
}

func TestWriteDimensionMismatch(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePPM(&buf, 2, 2, make([]core.Vec3, 3)); err == nil {
		t.Errorf("Expected error for pixel count mismatch")
	}
	if err := WritePNG(&buf, 0, 0, nil); err == nil {
		t.Errorf("Expected error for empty image")
	}
}

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()
	pixels := []core.Vec3{core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1)}

	pngPath := filepath.Join(dir, "out.png")
	if err := SaveImage(pngPath, 2, 1, pixels); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}
	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatalf("Failed to open PNG: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	r, _, b, _ := img.At(1, 0).RGBA()
	if r != 0 || b != 0xffff {
		t.Errorf("Expected blue pixel, got r=%d b=%d", r, b)
	}

	ppmPath := filepath.Join(dir, "out.ppm")
	if err := SaveImage(ppmPath, 2, 1, pixels); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}
	data, err := os.ReadFile(ppmPath)
	if err != nil {
		t.Fatalf("Failed to read PPM: %v", err)
	}
	if len(data) != len("P6\n2 1\n255\n")+6 {
		t.Errorf("Unexpected PPM size %d", len(data))
	}
}

func TestLoadImageRoundTrip(t *testing.T) {
	pixels := []core.Vec3{
		core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1),
		core.NewVec3(0.5, 0.25, 0.125), core.Splat(1), core.Vec3{},
	}
	path := filepath.Join(t.TempDir(), "tex.png")
	if err := SaveImage(path, 3, 2, pixels); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	w, h, got, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if w != 3 || h != 2 || len(got) != 6 {
		t.Fatalf("Expected 3x2 image with 6 pixels, got %dx%d with %d", w, h, len(got))
	}
	// Linear values survive up to 8-bit quantization of the encoded form
	for i := range pixels {
		for axis := 0; axis < 3; axis++ {
			want, have := toByte(pixels[i].Axis(axis)), toByte(got[i].Axis(axis))
			if want != have {
				t.Errorf("Pixel %d axis %d: expected byte %d, got %d", i, axis, want, have)
			}
		}
	}
}

func TestLoadImageErrors(t *testing.T) {
	dir := t.TempDir()
	if _, _, _, err := LoadImage(filepath.Join(dir, "missing.png")); err == nil {
		t.Errorf("Expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := LoadImage(bad); err == nil {
		t.Errorf("Expected error for undecodable file")
	}
}
