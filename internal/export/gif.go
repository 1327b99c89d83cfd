package export

import (
	"image"
	"image/gif"
	"io"
	"time"
)

// gifDelay converts a frame interval to GIF delay units of 10ms.
func gifDelay(interval time.Duration) int {
	return max(1, int(interval/(10*time.Millisecond)))
}

// WriteGIF encodes every frame as a looping animated GIF.
func WriteGIF(w io.Writer, r *FrameRenderer, interval time.Duration) error {
	delay := gifDelay(interval)
	out := &gif.GIF{
		Image: make([]*image.Paletted, 0, r.Len()),
		Delay: make([]int, 0, r.Len()),
	}
	for i := 0; i < r.Len(); i++ {
		out.Image = append(out.Image, r.Render(i))
		out.Delay = append(out.Delay, delay)
	}
	return gif.EncodeAll(w, out)
}
