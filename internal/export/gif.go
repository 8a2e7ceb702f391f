package export

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"

	"github.com/curvelab/lissalab/internal/viz"
)

// Recorder accumulates braille canvas frames for an animated GIF.
// Each braille dot rasterizes to a 4x4 pixel block.
type Recorder struct {
	frames []*image.Paletted
	delay  int
}

// NewRecorder creates a recorder with the given frame delay in
// hundredths of a second.
func NewRecorder(delay int) *Recorder {
	if delay < 1 {
		delay = 2
	}
	return &Recorder{delay: delay}
}

func (r *Recorder) FrameCount() int { return len(r.frames) }

// Capture rasterizes the canvas as the next frame.
func (r *Recorder) Capture(c *viz.Canvas) {
	charW, charH := 8, 16
	imgW, imgH := c.Width*charW, c.Height*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{color.Black, color.White})

	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			ch := c.Grid[row][col]
			if ch < 0x2800 {
				continue
			}
			pattern := int(ch - 0x2800)
			dotW, dotH := charW/2, charH/4
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, 1)
						}
					}
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

// Save encodes the captured frames as a looping GIF and clears the
// recorder.
func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return fmt.Errorf("no frames recorded")
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.delay)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		return err
	}
	r.frames = nil
	return nil
}
