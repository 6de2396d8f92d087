package nitro

import (
	"io"

	"github.com/tidwall/gjson"
)

// A Screen is the decoded source of an NSCR (nitro screen resource): a grid
// of background tile words, laid out row by row.
type Screen struct {
	Height int // in tiles
	Width  int

	// TilesetSize is the number of tiles per palette bank, taken from the
	// second tileset's firstgid. It is 0 if the map has a single tileset.
	TilesetSize int

	// Data holds Height*Width packed tile words (see PackTile). Empty tiles
	// are never written and stay 0.
	Data []uint16

	ntiles   int
	tracker  Tracker
	released bool
}

// Tile numbers in the source carry Tiled's flip flags in their top bits.
const (
	flipH   = 1 << 31
	flipV   = 1 << 30
	gidMask = flipV - 1
)

// PackTile converts a 1-based tile number from the source into a screen
// word:
//
//	bits 0-9    tile index within its palette bank
//	bit  10     horizontal flip
//	bit  11     vertical flip
//	bits 12-15  palette
//
// If tilesetSize is not 0, the palette is the bank the tile falls in and
// the index is the remainder. PackTile reports false for tile number 0,
// which marks an empty cell, even when flip flags are set on it.
func PackTile(raw uint32, tilesetSize int) (uint16, bool) {
	hflip := raw >> 31 & 1
	vflip := raw >> 30 & 1
	v := int64(raw&gidMask) - 1
	if v == -1 {
		return 0, false
	}
	var palette int64
	if tilesetSize != 0 {
		palette = v / int64(tilesetSize)
		v %= int64(tilesetSize)
	}
	w := uint32(v)&0x3FF | vflip<<11 | hflip<<10 | uint32(palette)<<12
	return uint16(w), true
}

// UnpackTile is the inverse of PackTile for words it produced.
func UnpackTile(w uint16, tilesetSize int) uint32 {
	raw := uint32(w & 0x3FF)
	if tilesetSize != 0 {
		raw += uint32(w>>12) * uint32(tilesetSize)
	}
	raw++
	if w>>10&1 == 1 {
		raw |= flipH
	}
	if w>>11&1 == 1 {
		raw |= flipV
	}
	return raw
}

// OpenScreen reads and decodes the screen source at path.
func (d *Decoder) OpenScreen(path string) (*Screen, error) {
	root, err := d.open(path)
	if err != nil {
		return nil, err
	}
	return d.decodeScreen(root)
}

// ReadScreen decodes a screen source from r.
func (d *Decoder) ReadScreen(r io.Reader) (*Screen, error) {
	root, err := d.read(r)
	if err != nil {
		return nil, err
	}
	return d.decodeScreen(root)
}

func (d *Decoder) decodeScreen(root gjson.Result) (scr *Screen, err error) {
	scr = &Screen{
		Height:  getInt(root.Get("height")),
		Width:   getInt(root.Get("width")),
		tracker: d.tracker,
	}
	if err := checkCount(scr.Height, "row"); err != nil {
		return nil, err
	}
	if err := checkCount(scr.Width, "column"); err != nil {
		return nil, err
	}
	if scr.Width != 0 && scr.Height > maxTiles/scr.Width {
		return nil, &CountError{What: "tile", Declared: scr.Height * scr.Width, Limit: maxTiles}
	}

	tilesets := root.Get("tilesets")
	if arraySize(tilesets) != 1 {
		firstgid := getInt(arrayItem(tilesets, 1).Get("firstgid"))
		scr.TilesetSize = firstgid - 1
		if scr.TilesetSize <= 1 {
			return nil, &TilesetError{FirstGID: firstgid}
		}
	}

	n := scr.Height * scr.Width
	d.tracker.Alloc(KindScreen, 1)
	defer func() {
		if err != nil {
			scr.Release()
			scr = nil
		}
	}()
	scr.Data = make([]uint16, n)
	d.tracker.Alloc(KindTileData, 1)

	// Layers are concatenated: one destination index runs across all of them.
	i := 0
	err = forEach(root.Get("layers"), func(layer gjson.Result) error {
		return forEach(layer.Get("data"), func(tile gjson.Result) error {
			if i >= n {
				return &CountError{What: "tile", Declared: n}
			}
			if w, ok := PackTile(uint32(getInt(tile)), scr.TilesetSize); ok {
				scr.Data[i] = w
			}
			i++
			return nil
		})
	})
	if err != nil {
		return
	}
	scr.ntiles = i

	d.log.Debug().
		Int("height", scr.Height).
		Int("width", scr.Width).
		Int("tilesetSize", scr.TilesetSize).
		Int("tiles", i).
		Msg("decoded screen")
	return scr, nil
}

// Release drops the tile data. It is safe to call more than once.
func (scr *Screen) Release() {
	if scr == nil || scr.released {
		return
	}
	t := trackerOf(scr.tracker)
	if scr.Data != nil {
		t.Free(KindTileData, 1)
	}
	t.Free(KindScreen, 1)
	scr.Data = nil
	scr.released = true
}
