package nitro

import (
	"strconv"

	"github.com/tidwall/sjson"
)

// A document accumulates sjson edits, keeping the first error.
type document struct {
	b   []byte
	err error
}

func newDocument(init string) *document {
	return &document{b: []byte(init)}
}

func (doc *document) set(path string, v interface{}) {
	if doc.err == nil {
		doc.b, doc.err = sjson.SetBytes(doc.b, path, v)
	}
}

func (doc *document) setRaw(path string, raw []byte) {
	if doc.err == nil {
		doc.b, doc.err = sjson.SetRawBytes(doc.b, path, raw)
	}
}

// appendRaw appends raw to the array at path.
func (doc *document) appendRaw(path string, raw []byte) {
	doc.setRaw(path+".-1", raw)
}

func (doc *document) bytes() ([]byte, error) {
	if doc.err != nil {
		return nil, doc.err
	}
	return doc.b, nil
}

func setLabels(doc *document, enabled bool, count int, labels []string) {
	doc.set("labelEnabled", enabled)
	if !enabled {
		return
	}
	doc.set("labelCount", count)
	doc.setRaw("labels", []byte("[]"))
	for _, l := range labels {
		doc.set("labels.-1", l)
	}
}

// MarshalJSON encodes the bank in the source schema read by OpenCellBank.
func (bank *CellBank) MarshalJSON() ([]byte, error) {
	doc := newDocument("{}")
	doc.set("labelEnabled", bank.LabelEnabled)
	doc.set("extended", bank.Extended)
	doc.set("imageHeight", bank.ImageHeight)
	doc.set("imageWidth", bank.ImageWidth)
	doc.set("cellCount", bank.CellCount)
	doc.set("mappingType", int(bank.MappingType))
	setLabels(doc, bank.LabelEnabled, bank.LabelCount, bank.Labels)

	doc.setRaw("cells", []byte("[]"))
	for i := range bank.Cells {
		cell, err := bank.Cells[i].encode(bank.Extended)
		if err != nil {
			return nil, err
		}
		doc.appendRaw("cells", cell)
	}
	return doc.bytes()
}

func (c *Cell) encode(extended bool) ([]byte, error) {
	doc := newDocument("{}")
	doc.set("readOnly", c.ReadOnly)
	if extended {
		doc.set("maxX", c.MaxX)
		doc.set("maxY", c.MaxY)
		doc.set("minX", c.MinX)
		doc.set("minY", c.MinY)
	}
	a0, a1, a2 := c.OAM.Attr0, c.OAM.Attr1, c.OAM.Attr2
	doc.set("OAM.Attr0.YCoordinate", a0.YCoordinate)
	doc.set("OAM.Attr0.Rotation", a0.Rotation)
	doc.set("OAM.Attr0.SizeDisable", a0.SizeDisable)
	doc.set("OAM.Attr0.Mode", a0.Mode)
	doc.set("OAM.Attr0.Mosaic", a0.Mosaic)
	doc.set("OAM.Attr0.Colours", a0.Colours)
	doc.set("OAM.Attr0.Shape", a0.Shape)
	doc.set("OAM.Attr1.XCoordinate", a1.XCoordinate)
	doc.set("OAM.Attr1.RotationScaling", a1.RotationScaling)
	doc.set("OAM.Attr1.Size", a1.Size)
	doc.set("OAM.Attr2.CharName", a2.CharName)
	doc.set("OAM.Attr2.Priority", a2.Priority)
	doc.set("OAM.Attr2.Palette", a2.Palette)
	return doc.bytes()
}

// MarshalJSON encodes the screen in the source schema read by OpenScreen,
// as a single layer. Zero words are written as empty tiles, which decode
// back to zero.
func (scr *Screen) MarshalJSON() ([]byte, error) {
	doc := newDocument("{}")
	doc.set("height", scr.Height)
	doc.set("width", scr.Width)

	doc.setRaw("tilesets", []byte("[]"))
	doc.appendRaw("tilesets", []byte(`{"firstgid":1}`))
	if scr.TilesetSize != 0 {
		doc.appendRaw("tilesets", []byte(`{"firstgid":`+strconv.Itoa(scr.TilesetSize+1)+`}`))
	}

	data := make([]byte, 0, 2+len(scr.Data)*4)
	data = append(data, '[')
	for i, w := range scr.Data {
		if i > 0 {
			data = append(data, ',')
		}
		var raw uint32
		if w != 0 {
			raw = UnpackTile(w, scr.TilesetSize)
		}
		data = strconv.AppendUint(data, uint64(raw), 10)
	}
	data = append(data, ']')

	layer := newDocument("{}")
	layer.setRaw("data", data)
	b, err := layer.bytes()
	if err != nil {
		return nil, err
	}
	doc.setRaw("layers", []byte("[]"))
	doc.appendRaw("layers", b)
	return doc.bytes()
}

// MarshalJSON encodes the bank in the source schema read by
// OpenAnimationBank. Results left nil are written as empty objects.
func (bank *AnimationBank) MarshalJSON() ([]byte, error) {
	doc := newDocument("{}")
	doc.set("sequenceCount", bank.SequenceCount)
	doc.set("frameCount", bank.FrameCount)

	doc.setRaw("sequences", []byte("[]"))
	for i := range bank.Sequences {
		seq, err := bank.Sequences[i].encode()
		if err != nil {
			return nil, err
		}
		doc.appendRaw("sequences", seq)
	}

	doc.set("resultCount", bank.ResultCount)
	doc.setRaw("animationResults", []byte("[]"))
	for _, r := range bank.Results {
		res, err := encodeResult(r)
		if err != nil {
			return nil, err
		}
		doc.appendRaw("animationResults", res)
	}

	setLabels(doc, bank.LabelEnabled, bank.LabelCount, bank.Labels)
	return doc.bytes()
}

func (s *Sequence) encode() ([]byte, error) {
	doc := newDocument("{}")
	doc.set("frameCount", s.FrameCount)
	doc.set("loopStartFrame", s.LoopStartFrame)
	doc.set("animationElement", int(s.AnimationElement))
	doc.set("animationType", int(s.AnimationType))
	doc.set("playbackMode", int(s.PlaybackMode))
	doc.setRaw("frameData", []byte("[]"))
	for _, f := range s.Frames {
		frame := newDocument("{}")
		frame.set("frameDelay", f.FrameDelay)
		frame.set("resultId", f.ResultID)
		b, err := frame.bytes()
		if err != nil {
			return nil, err
		}
		doc.appendRaw("frameData", b)
	}
	return doc.bytes()
}

func encodeResult(r Result) ([]byte, error) {
	doc := newDocument("{}")
	if r == nil {
		return doc.bytes()
	}
	doc.set("resultType", r.ResultType())
	switch r := r.(type) {
	case IndexResult:
		doc.set("index", r.Index)
	case SRTResult:
		doc.set("index", r.Index)
		doc.set("rotation", r.Rotation)
		doc.set("scaleX", r.ScaleX)
		doc.set("scaleY", r.ScaleY)
		doc.set("positionX", r.PositionX)
		doc.set("positionY", r.PositionY)
	case TResult:
		doc.set("index", r.Index)
		doc.set("positionX", r.PositionX)
		doc.set("positionY", r.PositionY)
	}
	return doc.bytes()
}
