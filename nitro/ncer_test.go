package nitro

import (
	"errors"
	"strings"
	"testing"
)

func readCellBank(t testing.TB, src string) (*CellBank, error) {
	t.Helper()
	return NewDecoder().ReadCellBank(strings.NewReader(src))
}

func TestOpenNCER(t *testing.T) {
	for _, filename := range []string{"testdata/cells.json", "testdata/cells.yaml"} {
		bank, err := OpenNCER(filename)
		if err != nil {
			t.Fatal(err)
		}
		if !bank.LabelEnabled || !bank.Extended {
			t.Errorf("%s: flags not decoded: %+v", filename, bank)
		}
		if bank.ImageHeight != 64 || bank.ImageWidth != 64 || bank.MappingType != 1 {
			t.Errorf("%s: header: got %dx%d mapping %d", filename, bank.ImageWidth, bank.ImageHeight, bank.MappingType)
		}
		if len(bank.Cells) != 2 {
			t.Fatalf("%s: got %d cells, want 2", filename, len(bank.Cells))
		}
		if len(bank.Labels) != 2 || bank.Labels[0] != "CellAnime0" || bank.Labels[1] != "CellAnime1" {
			t.Errorf("%s: labels: got %q", filename, bank.Labels)
		}

		want := Cell{
			ReadOnly: 1,
			MaxX:     7,
			MaxY:     7,
			MinX:     -8,
			MinY:     -8,
			OAM: OAM{
				Attr0: Attr0{YCoordinate: -8, Rotation: true, SizeDisable: true, Mode: 1, Mosaic: true, Colours: 256, Shape: 0},
				Attr1: Attr1{XCoordinate: -8, RotationScaling: 2, Size: 1},
				Attr2: Attr2{CharName: 32, Priority: 2, Palette: 5},
			},
		}
		if got := bank.Cells[1]; got != want {
			t.Errorf("%s: cell 1:\ngot  %+v\nwant %+v", filename, got, want)
		}
		if got := bank.Cells[0].MinX; got != -32 {
			t.Errorf("%s: cell 0 minX: got %d, want -32", filename, got)
		}
	}
}

const twoCells = `{
	"cellCount": 2,
	"cells": [
		{"readOnly": 1, "OAM": {"Attr2": {"CharName": 4}}},
		{"readOnly": 2, "OAM": {"Attr2": {"CharName": 8}}}
		%s
	]
}`

func TestCellCount(t *testing.T) {
	bank, err := readCellBank(t, strings.Replace(twoCells, "%s", "", 1))
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []int{4, 8} {
		if got := bank.Cells[i].OAM.Attr2.CharName; got != want {
			t.Errorf("cell %d: got char %d, want %d", i, got, want)
		}
		if got := bank.Cells[i].ReadOnly; got != int16(i+1) {
			t.Errorf("cell %d: got readOnly %d, want %d", i, got, i+1)
		}
	}

	_, err = readCellBank(t, strings.Replace(twoCells, "%s", `, {"readOnly": 3}`, 1))
	var cerr *CountError
	if !errors.As(err, &cerr) {
		t.Fatalf("got %v, want *CountError", err)
	}
	if cerr.What != "cell" || cerr.Declared != 2 {
		t.Errorf("got %+v", cerr)
	}
}

func TestCellNotExtended(t *testing.T) {
	bank, err := readCellBank(t, `{
		"extended": false,
		"cellCount": 1,
		"cells": [{"maxX": 5, "maxY": 6, "minX": -5, "minY": -6}]
	}`)
	if err != nil {
		t.Fatal(err)
	}
	c := bank.Cells[0]
	if c.MaxX != 0 || c.MaxY != 0 || c.MinX != 0 || c.MinY != 0 {
		t.Errorf("bounding box decoded without extended: %+v", c)
	}
}

func TestCellLabels(t *testing.T) {
	// Labels are ignored unless enabled.
	bank, err := readCellBank(t, `{"labelCount": 1, "labels": ["a"]}`)
	if err != nil {
		t.Fatal(err)
	}
	if bank.Labels != nil || bank.LabelCount != 0 {
		t.Errorf("labels decoded while disabled: %q", bank.Labels)
	}

	_, err = readCellBank(t, `{"labelEnabled": true, "labelCount": 1, "labels": ["a", "b"]}`)
	var cerr *CountError
	if !errors.As(err, &cerr) || cerr.What != "label" {
		t.Errorf("got %v, want a label count error", err)
	}
}

func TestCellNegativeCount(t *testing.T) {
	_, err := readCellBank(t, `{"cellCount": -1}`)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("got %v, want a malformed source error", err)
	}
}

func TestCellHugeCount(t *testing.T) {
	for _, src := range []string{
		`{"cellCount": 4611686018427387904}`,
		`{"cellCount": 10000000000}`,
		`{"cellCount": 65536}`,
		`{"labelEnabled": true, "labelCount": 4611686018427387904}`,
	} {
		bank, err := readCellBank(t, src)
		var cerr *CountError
		if !errors.As(err, &cerr) || cerr.Limit != maxCount {
			t.Errorf("%s: got %v, want a count error with limit %d", src, err, maxCount)
		}
		if bank != nil {
			t.Errorf("%s: got a bank along with the error", src)
		}
	}

	bank, err := readCellBank(t, `{"cellCount": 65535}`)
	if err != nil {
		t.Fatal(err)
	}
	if len(bank.Cells) != maxCount {
		t.Errorf("got %d cells, want %d", len(bank.Cells), maxCount)
	}
}

func TestCellMissingHeader(t *testing.T) {
	bank, err := readCellBank(t, `{"cellCount": "2", "cells": []}`)
	if err != nil {
		t.Fatal(err)
	}
	if bank.CellCount != 0 || len(bank.Cells) != 0 {
		t.Errorf("mistyped cellCount: got %d", bank.CellCount)
	}
}

func TestOpenNCERErrors(t *testing.T) {
	_, err := OpenNCER("testdata/does-not-exist.json")
	if err == nil || errors.Is(err, ErrMalformed) {
		t.Errorf("missing file: got %v", err)
	}
	_, err = readCellBank(t, `{"cellCount": 1,`)
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Errorf("got %v, want *SyntaxError", err)
	}
}
