package nitro

import (
	"image"
	"testing"
)

func TestOAMPack(t *testing.T) {
	bank, err := OpenNCER("testdata/cells.json")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		want   OBJ
		bounds image.Rectangle
	}{
		{OBJ{0x40F0, 0xC1E0, 0x0000}, image.Rect(-32, -16, 32, 16)},
		{OBJ{0x37F8, 0x45F8, 0x5820}, image.Rect(-8, -8, 8, 8)},
	}
	for i, tt := range tests {
		obj := bank.Cells[i].OAM.OBJ()
		if obj != tt.want {
			t.Errorf("cell %d: got %04X, want %04X", i, obj, tt.want)
		}
		if r := obj.Bounds(); r != tt.bounds {
			t.Errorf("cell %d: bounds: got %v, want %v", i, r, tt.bounds)
		}
	}
}

func TestOBJAccessors(t *testing.T) {
	o := OAM{
		Attr0: Attr0{YCoordinate: -8, Rotation: true, SizeDisable: true, Mode: 1, Mosaic: true, Colours: 256, Shape: 2},
		Attr1: Attr1{XCoordinate: -200, RotationScaling: 7, Size: 3},
		Attr2: Attr2{CharName: 1000, Priority: 3, Palette: 15},
	}
	obj := o.OBJ()
	if obj.Y() != -8 || obj.X() != -200 {
		t.Errorf("position: got (%d, %d), want (-200, -8)", obj.X(), obj.Y())
	}
	if obj.Shape() != 2 || obj.Size() != 3 {
		t.Errorf("shape/size: got %d/%d, want 2/3", obj.Shape(), obj.Size())
	}
	if !obj.Double() || obj.TransformMode() != 3 {
		t.Errorf("transform: got mode %d", obj.TransformMode())
	}
	if obj.Mode() != 1 || !obj.Mosaic() || obj.Colours() != 256 {
		t.Errorf("mode/mosaic/colours: got %d/%v/%d", obj.Mode(), obj.Mosaic(), obj.Colours())
	}
	if obj.Tile() != 1000 || obj.Priority() != 3 || obj.Palette() != 15 {
		t.Errorf("attr2: got tile %d priority %d palette %d", obj.Tile(), obj.Priority(), obj.Palette())
	}
	if obj.FlipX() || obj.FlipY() {
		t.Errorf("flip bits reported while rotation is enabled")
	}

	// Without rotation, bits 3 and 4 of RotationScaling are the flips.
	o.Attr0.Rotation = false
	o.Attr0.SizeDisable = false
	o.Attr1.RotationScaling = 0x18
	obj = o.OBJ()
	if !obj.FlipX() || !obj.FlipY() {
		t.Errorf("flips: got x=%v y=%v, want both", obj.FlipX(), obj.FlipY())
	}
	if r := obj.Bounds(); r != image.Rect(-200, -8, -168, 56) {
		t.Errorf("bounds: got %v", r)
	}
}
