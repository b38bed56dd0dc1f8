package alienkitty

import (
	"context"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
)

// Assets holds everything the views need before the first frame.
type Assets struct {
	Sprites KittySprites
	Font    *TTFFont
}

// LoadImage decodes an image file from fsys.
func LoadImage(fsys fs.FS, path string) (*ebiten.Image, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrAssetLoad, path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrAssetLoad, path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// LoadAssets resolves the kitty sprites and caption font. Files named in cfg
// replace the built-in art; a nil fsys or empty name uses the default. Any
// failure aborts the whole load.
func LoadAssets(ctx context.Context, fsys fs.FS, cfg AssetConfig, body, eyes Color) (Assets, error) {
	a := Assets{Sprites: DefaultKittySprites(body, eyes)}
	fail := func(err error) (Assets, error) {
		a.Dispose()
		return Assets{}, err
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	if cfg.KittyBody != "" {
		img, err := loadOverride(fsys, cfg.KittyBody)
		if err != nil {
			return fail(err)
		}
		a.Sprites.Body.Deallocate()
		a.Sprites.Body = img
	}
	if cfg.KittyEyelid != "" {
		img, err := loadOverride(fsys, cfg.KittyEyelid)
		if err != nil {
			return fail(err)
		}
		a.Sprites.Eyelid.Deallocate()
		a.Sprites.Eyelid = img
	}
	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	if cfg.LabelFont == "" {
		font, err := LoadBoldFont(LabelSize)
		if err != nil {
			return fail(err)
		}
		a.Font = font
		return a, nil
	}
	if fsys == nil {
		return fail(fmt.Errorf("%w: no filesystem for %s", ErrAssetLoad, cfg.LabelFont))
	}
	data, err := fs.ReadFile(fsys, cfg.LabelFont)
	if err != nil {
		return fail(fmt.Errorf("%w: read %s: %w", ErrAssetLoad, cfg.LabelFont, err))
	}
	font, err := LoadTTFFont(data, LabelSize)
	if err != nil {
		return fail(err)
	}
	a.Font = font
	return a, nil
}

func loadOverride(fsys fs.FS, path string) (*ebiten.Image, error) {
	if fsys == nil {
		return nil, fmt.Errorf("%w: no filesystem for %s", ErrAssetLoad, path)
	}
	return LoadImage(fsys, path)
}

// Dispose frees the sprite images.
func (a *Assets) Dispose() {
	if a.Sprites.Body != nil {
		a.Sprites.Body.Deallocate()
		a.Sprites.Body = nil
	}
	if a.Sprites.Eyelid != nil {
		a.Sprites.Eyelid.Deallocate()
		a.Sprites.Eyelid = nil
	}
}
