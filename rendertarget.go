package alienkitty

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// renderTarget is a resizable offscreen surface in device pixels. It is fully
// overwritten every frame, so resizing discards contents.
type renderTarget struct {
	image *ebiten.Image
	w, h  int
}

// resize reallocates the target when its size changes.
func (t *renderTarget) resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if t.image != nil && t.w == w && t.h == h {
		return
	}
	t.release()
	t.image = ebiten.NewImageWithOptions(imageRect(w, h), &ebiten.NewImageOptions{Unmanaged: true})
	t.w, t.h = w, h
}

// size returns the allocated size, or (0, 0) if released.
func (t *renderTarget) size() (int, int) {
	if t.image == nil {
		return 0, 0
	}
	return t.w, t.h
}

func (t *renderTarget) release() {
	if t.image != nil {
		t.image.Deallocate()
		t.image = nil
	}
	t.w, t.h = 0, 0
}
