package nitro

import (
	"io"

	"github.com/tidwall/gjson"
)

// A CellBank is the decoded source of an NCER (nitro cell resource).
// Cells define subregions of an NCGR, each drawn by one OAM entry.
type CellBank struct {
	LabelEnabled bool
	Extended     bool // cells carry bounding boxes
	ImageHeight  int
	ImageWidth   int
	CellCount    int
	MappingType  MappingType

	// Only present if LabelEnabled.
	LabelCount int
	Labels     []string

	Cells []Cell

	nlabels  int // entries actually present in the source
	ncells   int
	tracker  Tracker
	released bool
}

// MappingType is the OBJ character mapping mode of the bank (the VRAM mode
// in GBATEK terms).
type MappingType int

type Cell struct {
	ReadOnly int16

	// Bounding box; zero unless the bank is extended.
	MaxX int16
	MaxY int16
	MinX int16
	MinY int16

	OAM OAM
}

// OpenCellBank reads and decodes the cell bank source at path.
func (d *Decoder) OpenCellBank(path string) (*CellBank, error) {
	root, err := d.open(path)
	if err != nil {
		return nil, err
	}
	return d.decodeCellBank(root)
}

// ReadCellBank decodes a cell bank source from r.
func (d *Decoder) ReadCellBank(r io.Reader) (*CellBank, error) {
	root, err := d.read(r)
	if err != nil {
		return nil, err
	}
	return d.decodeCellBank(root)
}

func (d *Decoder) decodeCellBank(root gjson.Result) (bank *CellBank, err error) {
	bank = &CellBank{
		LabelEnabled: getBool(root.Get("labelEnabled")),
		Extended:     getBool(root.Get("extended")),
		ImageHeight:  getInt(root.Get("imageHeight")),
		ImageWidth:   getInt(root.Get("imageWidth")),
		CellCount:    getInt(root.Get("cellCount")),
		MappingType:  MappingType(getInt(root.Get("mappingType"))),
		tracker:      d.tracker,
	}
	if err := checkCount(bank.CellCount, "cell"); err != nil {
		return nil, err
	}

	d.tracker.Alloc(KindCellBank, 1)
	defer func() {
		if err != nil {
			bank.Release()
			bank = nil
		}
	}()

	bank.Cells = make([]Cell, bank.CellCount)
	d.tracker.Alloc(KindCells, 1)
	allocEach(d.tracker, KindCell, bank.CellCount)

	if bank.LabelEnabled {
		bank.nlabels, err = d.decodeLabels(root, &bank.LabelCount, &bank.Labels)
		if err != nil {
			return
		}
	}

	err = forEachBounded(root.Get("cells"), bank.CellCount, "cell", func(i int, v gjson.Result) error {
		c := &bank.Cells[i]
		c.ReadOnly = int16(getInt(v.Get("readOnly")))
		if bank.Extended {
			c.MaxX = int16(getInt(v.Get("maxX")))
			c.MaxY = int16(getInt(v.Get("maxY")))
			c.MinX = int16(getInt(v.Get("minX")))
			c.MinY = int16(getInt(v.Get("minY")))
		}
		c.OAM = decodeOAM(v.Get("OAM"))
		bank.ncells++
		return nil
	})
	if err != nil {
		return
	}

	d.log.Debug().
		Int("cells", bank.ncells).
		Int("labels", bank.nlabels).
		Bool("extended", bank.Extended).
		Msg("decoded cell bank")
	return bank, nil
}

// decodeLabels fills the label table shared by cell and animation banks.
// It returns the number of labels present in the source.
func (d *Decoder) decodeLabels(root gjson.Result, count *int, labels *[]string) (int, error) {
	*count = getInt(root.Get("labelCount"))
	if err := checkCount(*count, "label"); err != nil {
		return 0, err
	}
	*labels = make([]string, *count)
	d.tracker.Alloc(KindLabels, 1)
	allocEach(d.tracker, KindLabel, *count)

	n := 0
	err := forEachBounded(root.Get("labels"), *count, "label", func(i int, v gjson.Result) error {
		(*labels)[i], _ = getString(v)
		n++
		return nil
	})
	return n, err
}

// Release drops every collection owned by the bank, cells and labels before
// the tables that hold them. It is safe to call more than once.
func (bank *CellBank) Release() {
	if bank == nil || bank.released {
		return
	}
	t := trackerOf(bank.tracker)
	if bank.Cells != nil {
		freeEach(t, KindCell, len(bank.Cells))
	}
	if bank.LabelEnabled && bank.Labels != nil {
		freeEach(t, KindLabel, len(bank.Labels))
		t.Free(KindLabels, 1)
	}
	if bank.Cells != nil {
		t.Free(KindCells, 1)
	}
	t.Free(KindCellBank, 1)
	bank.Cells = nil
	bank.Labels = nil
	bank.released = true
}
