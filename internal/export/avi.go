package export

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"math"
	"time"

	"github.com/icza/mjpeg"
)

// WriteAVI writes an MJPEG AVI video to path. The container needs a seekable
// file, so unlike the other writers it takes a path.
func WriteAVI(path string, r *FrameRenderer, interval time.Duration) (err error) {
	fps := int32(math.Max(1, math.Round(float64(time.Second)/float64(interval))))
	b := r.Bounds()
	aw, err := mjpeg.New(path, int32(b.Dx()), int32(b.Dy()), fps)
	if err != nil {
		return fmt.Errorf("creating avi: %w", err)
	}
	defer func() {
		if cerr := aw.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing avi: %w", cerr)
		}
	}()

	buf := &bytes.Buffer{}
	for i := 0; i < r.Len(); i++ {
		if err := jpeg.Encode(buf, r.Render(i), &jpeg.Options{Quality: 90}); err != nil {
			return fmt.Errorf("encoding frame %d: %w", i, err)
		}
		if err := aw.AddFrame(buf.Bytes()); err != nil {
			return fmt.Errorf("adding frame %d: %w", i, err)
		}
		buf.Reset()
	}
	return nil
}
