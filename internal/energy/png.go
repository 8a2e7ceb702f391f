package energy

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// SavePNG writes the exposure grid as a grayscale image, normalized to
// the grid's maximum. Row 0 lands at the bottom of the image.
func SavePNG(path string, grid [][]float64) error {
	h := len(grid)
	if h == 0 {
		return os.WriteFile(path, nil, 0644)
	}
	w := len(grid[0])

	maxVal := 0.0
	for _, row := range grid {
		for _, v := range row {
			if v > maxVal {
				maxVal = v
			}
		}
	}

	img := image.NewGray(image.Rect(0, 0, w, h))
	for j, row := range grid {
		for i, v := range row {
			level := uint8(0)
			if maxVal > 0 {
				level = uint8(v / maxVal * 255)
			}
			img.SetGray(i, h-1-j, color.Gray{Y: level})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
