package nitro

import "github.com/tidwall/gjson"

// Result types, as stored in resultType.
const (
	ResultIndex = 0
	ResultSRT   = 1
	ResultT     = 2
)

// A Result is one entry of an animation bank's result table. Frames refer to
// results by position, so one result may be shared by many frames. The
// dynamic type is selected by the entry's resultType: IndexResult,
// SRTResult, TResult, or UnknownResult for any other value.
type Result interface {
	ResultType() int
	isResult()
}

// A cell.
type IndexResult struct {
	Index int
}

// A cell with rotation, scaling, and translation.
type SRTResult struct {
	Index     int
	Rotation  int // angle in units of (tau/65536)
	ScaleX    int // in units of 1/4096
	ScaleY    int
	PositionX int
	PositionY int
}

// A cell with translation.
type TResult struct {
	Index     int
	PositionX int
	PositionY int
}

// UnknownResult carries a resultType with no known payload.
type UnknownResult struct {
	Type int
}

func (IndexResult) ResultType() int     { return ResultIndex }
func (SRTResult) ResultType() int       { return ResultSRT }
func (TResult) ResultType() int         { return ResultT }
func (r UnknownResult) ResultType() int { return r.Type }

func (IndexResult) isResult()   {}
func (SRTResult) isResult()     {}
func (TResult) isResult()       {}
func (UnknownResult) isResult() {}

func decodeResult(v gjson.Result) Result {
	typ := getInt(v.Get("resultType"))
	switch typ {
	case ResultIndex:
		return IndexResult{
			Index: getInt(v.Get("index")),
		}
	case ResultSRT:
		return SRTResult{
			Index:     getInt(v.Get("index")),
			Rotation:  getInt(v.Get("rotation")),
			ScaleX:    getInt(v.Get("scaleX")),
			ScaleY:    getInt(v.Get("scaleY")),
			PositionX: getInt(v.Get("positionX")),
			PositionY: getInt(v.Get("positionY")),
		}
	case ResultT:
		return TResult{
			Index:     getInt(v.Get("index")),
			PositionX: getInt(v.Get("positionX")),
			PositionY: getInt(v.Get("positionY")),
		}
	}
	return UnknownResult{Type: typ}
}

// resultIndex returns the cell index a result shows, if it has one.
func resultIndex(r Result) (int, bool) {
	switch r := r.(type) {
	case IndexResult:
		return r.Index, true
	case SRTResult:
		return r.Index, true
	case TResult:
		return r.Index, true
	}
	return 0, false
}
