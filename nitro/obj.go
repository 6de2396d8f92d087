package nitro

import (
	"image"

	"github.com/tidwall/gjson"
)

// http://www.problemkaputt.de/gbatek.htm#lcdobjoamattributes

// OAM is one OBJ attribute memory entry, split into its three attribute
// groups. Every field is mandatory in the source.
type OAM struct {
	Attr0 Attr0
	Attr1 Attr1
	Attr2 Attr2
}

type Attr0 struct {
	YCoordinate int
	Rotation    bool // rotation/scaling enabled
	SizeDisable bool // double size if Rotation, otherwise hidden
	Mode        int  // normal, semi-transparent, window, prohibited
	Mosaic      bool
	Colours     int // 16 or 256
	Shape       int // square, horizontal, vertical
}

type Attr1 struct {
	XCoordinate     int
	RotationScaling int // parameter index, or flip bits 3-4 without rotation
	Size            int
}

type Attr2 struct {
	CharName int // tile number
	Priority int
	Palette  int
}

func decodeOAM(v gjson.Result) OAM {
	a0 := v.Get("Attr0")
	a1 := v.Get("Attr1")
	a2 := v.Get("Attr2")
	return OAM{
		Attr0: Attr0{
			YCoordinate: getInt(a0.Get("YCoordinate")),
			Rotation:    getBool(a0.Get("Rotation")),
			SizeDisable: getBool(a0.Get("SizeDisable")),
			Mode:        getInt(a0.Get("Mode")),
			Mosaic:      getBool(a0.Get("Mosaic")),
			Colours:     getInt(a0.Get("Colours")),
			Shape:       getInt(a0.Get("Shape")),
		},
		Attr1: Attr1{
			XCoordinate:     getInt(a1.Get("XCoordinate")),
			RotationScaling: getInt(a1.Get("RotationScaling")),
			Size:            getInt(a1.Get("Size")),
		},
		Attr2: Attr2{
			CharName: getInt(a2.Get("CharName")),
			Priority: getInt(a2.Get("Priority")),
			Palette:  getInt(a2.Get("Palette")),
		},
	}
}

// OBJ is an OAM entry as the hardware stores it: three attribute words.
type OBJ [3]uint16

// OBJ packs the attribute groups into hardware words. Out of range values
// are truncated to their bit fields.
func (o OAM) OBJ() OBJ {
	var obj OBJ
	a0, a1, a2 := o.Attr0, o.Attr1, o.Attr2

	obj[0] = uint16(a0.YCoordinate) & 0xFF
	obj[0] |= bit(a0.Rotation) << 8
	obj[0] |= bit(a0.SizeDisable) << 9
	obj[0] |= uint16(a0.Mode) & 3 << 10
	obj[0] |= bit(a0.Mosaic) << 12
	obj[0] |= bit(a0.Colours == 256) << 13
	obj[0] |= uint16(a0.Shape) & 3 << 14

	obj[1] = uint16(a1.XCoordinate) & 0x1FF
	obj[1] |= uint16(a1.RotationScaling) & 0x1F << 9
	obj[1] |= uint16(a1.Size) & 3 << 14

	obj[2] = uint16(a2.CharName) & 0x3FF
	obj[2] |= uint16(a2.Priority) & 3 << 10
	obj[2] |= uint16(a2.Palette) & 0xF << 12
	return obj
}

func bit(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}

func (obj *OBJ) Y() int { return int(int8(obj[0])) }
func (obj *OBJ) X() int { return int(int16(obj[1]) << 7 >> 7) }

func (obj *OBJ) Shape() uint { return uint(obj[0] >> 14) }
func (obj *OBJ) Size() uint  { return uint(obj[1] >> 14) }

func (obj *OBJ) Mode() uint   { return uint(obj[0] >> 10 & 3) }
func (obj *OBJ) Mosaic() bool { return obj[0]>>12&1 == 1 }

func (obj *OBJ) Colours() int {
	if obj[0]>>13&1 == 1 {
		return 256
	}
	return 16
}

// Shapes: square, long, tall
// Sizes: small, medium-small, medium-large, large

var sizes = [][][2]int{
	{{8, 8}, {16, 16}, {32, 32}, {64, 64}},
	{{16, 8}, {32, 8}, {32, 16}, {64, 32}},
	{{8, 16}, {8, 32}, {16, 32}, {32, 64}},
}

// Bounds returns the destination rectangle.
func (obj *OBJ) Bounds() image.Rectangle {
	shape := obj.Shape()
	if shape == 3 {
		return image.ZR
	}
	size := obj.Size()
	w := sizes[shape][size][0]
	h := sizes[shape][size][1]
	x := obj.X()
	y := obj.Y()
	return image.Rect(x, y, x+w, y+h)
}

// 0 - none or flip
// 1 - rotate/scale
// 2 - disable
// 3 - double size
func (obj *OBJ) TransformMode() uint {
	return uint(obj[0] >> 8 & 3)
}

func (obj *OBJ) Double() bool { return obj[0]>>8&3 == 3 }
func (obj *OBJ) FlipX() bool  { return obj[0]>>8&1 == 0 && obj[1]>>12&1 == 1 }
func (obj *OBJ) FlipY() bool  { return obj[0]>>8&1 == 0 && obj[1]>>13&1 == 1 }

func (obj *OBJ) Tile() int      { return int(obj[2] << 6 >> 6) }
func (obj *OBJ) Priority() uint { return uint(obj[2] << 4 >> 14) }
func (obj *OBJ) Palette() uint  { return uint(obj[2] >> 12) }
