package svgraster

import (
	"image"
	"sync"
)

// surface is a reusable drawing target. Every acquire
// must be paired with a release, on all exit paths.
type surface struct {
	img *image.RGBA
}

var surfaces sync.Pool

func acquire(size int) *surface {
	for i := 0; i < 2; i++ {
		s, _ := surfaces.Get().(*surface)
		if s == nil {
			break
		}
		if b := s.img.Bounds(); b.Dx() == size && b.Dy() == size {
			return s
		}
		// size mismatch: drop it and try once more
	}
	return &surface{img: image.NewRGBA(image.Rect(0, 0, size, size))}
}

func (s *surface) release() {
	surfaces.Put(s)
}
