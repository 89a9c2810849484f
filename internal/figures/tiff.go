package figures

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// Print resolution the submission package requires, against the screen
// resolution the charts are rendered at.
const (
	printDPI  = 300
	screenDPI = 72
)

// ConvertTIFF upsamples a rendered PNG chart to print resolution and
// writes it as a compressed TIFF. The pixel dimensions scale by the DPI
// ratio so the physical size is preserved.
func ConvertTIFF(srcPath, dstPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", srcPath, err)
	}
	defer src.Close()

	img, err := png.Decode(src)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", srcPath, err)
	}

	bounds := img.Bounds()
	scaled := image.NewRGBA(image.Rect(0, 0,
		bounds.Dx()*printDPI/screenDPI,
		bounds.Dy()*printDPI/screenDPI))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Src, nil)

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dstPath, err)
	}
	opts := &tiff.Options{Compression: tiff.Deflate, Predictor: true}
	if err := tiff.Encode(dst, scaled, opts); err != nil {
		dst.Close()
		return fmt.Errorf("encoding %s: %w", dstPath, err)
	}
	return dst.Close()
}

// ConvertAll converts the three manuscript figures in dir to their
// submission TIFF names (figure1.tif, figure2.tif, figure3.tif) and
// returns the paths written. Missing source PNGs are an error.
func ConvertAll(dir string) ([]string, error) {
	sources := []string{SexDistributionPNG, InclusionRatesPNG, DiseaseDistributionPNG}

	paths := make([]string, 0, len(sources))
	for i, name := range sources {
		src := filepath.Join(dir, name)
		dst := filepath.Join(dir, fmt.Sprintf("figure%d.tif", i+1))
		if err := ConvertTIFF(src, dst); err != nil {
			return nil, err
		}
		paths = append(paths, dst)
	}
	return paths, nil
}
