package nitro

// A Tracker observes the allocations made while decoding a record and the
// matching frees made by its Release method. Every element of a collection
// is reported on its own, after the collection that holds it.
type Tracker interface {
	Alloc(kind Kind, n int)
	Free(kind Kind, n int)
}

// Kind names an allocation reported to a Tracker.
type Kind string

const (
	KindCellBank      Kind = "cellbank"
	KindCells         Kind = "cells"
	KindCell          Kind = "cell"
	KindLabels        Kind = "labels"
	KindLabel         Kind = "label"
	KindScreen        Kind = "screen"
	KindTileData      Kind = "tiledata"
	KindAnimationBank Kind = "animationbank"
	KindSequences     Kind = "sequences"
	KindSequence      Kind = "sequence"
	KindFrames        Kind = "frames"
	KindFrame         Kind = "frame"
	KindResults       Kind = "results"
	KindResult        Kind = "result"
)

type nopTracker struct{}

func (nopTracker) Alloc(Kind, int) {}
func (nopTracker) Free(Kind, int)  {}

func trackerOf(t Tracker) Tracker {
	if t == nil {
		return nopTracker{}
	}
	return t
}

// allocEach reports n single allocations of kind.
func allocEach(t Tracker, kind Kind, n int) {
	for i := 0; i < n; i++ {
		t.Alloc(kind, 1)
	}
}

// freeEach reports n single frees of kind.
func freeEach(t Tracker, kind Kind, n int) {
	for i := 0; i < n; i++ {
		t.Free(kind, 1)
	}
}
