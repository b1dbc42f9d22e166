package loaders

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Gamma is the display gamma applied when encoding linear colors
const Gamma = 2.2

// toByte gamma-corrects a linear channel value and quantizes it to [0, 255]
func toByte(c float64) uint8 {
	if !(c > 0) {
		return 0
	}
	v := math.Pow(math.Min(c, 1), 1/Gamma) * 255
	return uint8(math.Round(v))
}

func checkDimensions(width, height int, pixels []core.Vec3) error {
	if width <= 0 || height <= 0 || len(pixels) != width*height {
		return fmt.Errorf("image is %dx%d but has %d pixels", width, height, len(pixels))
	}
	return nil
}

// WritePPM writes row-major linear colors as a binary PPM (P6) image
func WritePPM(w io.Writer, width, height int, pixels []core.Vec3) error {
	if err := checkDimensions(width, height, pixels); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", width, height); err != nil {
		return err
	}
	for _, p := range pixels {
		if _, err := bw.Write([]byte{toByte(p.X), toByte(p.Y), toByte(p.Z)}); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ToImage converts row-major linear colors to a gamma-corrected RGBA image
func ToImage(width, height int, pixels []core.Vec3) (*image.RGBA, error) {
	if err := checkDimensions(width, height, pixels); err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := pixels[y*width+x]
			img.SetRGBA(x, y, color.RGBA{R: toByte(p.X), G: toByte(p.Y), B: toByte(p.Z), A: 255})
		}
	}
	return img, nil
}

// WritePNG writes row-major linear colors as a PNG image
func WritePNG(w io.Writer, width, height int, pixels []core.Vec3) error {
	img, err := ToImage(width, height, pixels)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// SaveImage writes the image to path, choosing PNG for a .png extension and
// PPM otherwise
func SaveImage(path string, width, height int, pixels []core.Vec3) error {
	write := WritePPM
	if strings.EqualFold(filepath.Ext(path), ".png") {
		write = WritePNG
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f, width, height, pixels); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// LoadImage decodes a PNG or JPEG file into row-major linear colors,
// undoing the display gamma
func LoadImage(path string) (width, height int, pixels []core.Vec3, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	width, height, pixels = FromImage(img)
	logger.Debugf("Loaded %s image %s: %dx%d", format, path, width, height)
	return width, height, pixels, nil
}

// FromImage converts any image to row-major linear colors
func FromImage(img image.Image) (width, height int, pixels []core.Vec3) {
	b := img.Bounds()
	width, height = b.Dx(), b.Dy()
	pixels = make([]core.Vec3, 0, width*height)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			pixels = append(pixels, core.NewVec3(fromChannel(r), fromChannel(g), fromChannel(bl)))
		}
	}
	return width, height, pixels
}

// fromChannel inverts toByte for a 16-bit color channel
func fromChannel(c uint32) float64 {
	return math.Pow(float64(c)/0xffff, Gamma)
}
