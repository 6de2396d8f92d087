package nitro

import "fmt"

// A Warning describes something in a decoded record that is legal but
// probably a mistake in the source.
type Warning struct {
	Where string
	Msg   string
}

func (w Warning) String() string {
	return w.Where + ": " + w.Msg
}

func warnf(where, format string, args ...interface{}) Warning {
	return Warning{Where: where, Msg: fmt.Sprintf(format, args...)}
}

func lintLabels(enabled bool, count, present int) []Warning {
	if !enabled || present == count {
		return nil
	}
	return []Warning{warnf("labels", "%d declared, %d present", count, present)}
}

// Lint reports cells and labels that were declared but never given.
func (bank *CellBank) Lint() []Warning {
	var ws []Warning
	if bank.ncells < bank.CellCount {
		ws = append(ws, warnf("cells", "%d declared, %d present", bank.CellCount, bank.ncells))
	}
	ws = append(ws, lintLabels(bank.LabelEnabled, bank.LabelCount, bank.nlabels)...)
	for i, c := range bank.Cells {
		if bank.Extended && (c.MinX > c.MaxX || c.MinY > c.MaxY) {
			ws = append(ws, warnf(fmt.Sprintf("cells[%d]", i), "empty bounding box (%d,%d)-(%d,%d)", c.MinX, c.MinY, c.MaxX, c.MaxY))
		}
	}
	return ws
}

// Lint reports inconsistencies between sequences, frames and results:
// missing entries, frames referring to results that do not exist or have
// the wrong type, and loop points past the end of a sequence.
func (bank *AnimationBank) Lint() []Warning {
	var ws []Warning
	if bank.nsequences < bank.SequenceCount {
		ws = append(ws, warnf("sequences", "%d declared, %d present", bank.SequenceCount, bank.nsequences))
	}
	total := 0
	for i := range bank.Sequences {
		s := &bank.Sequences[i]
		where := fmt.Sprintf("sequences[%d]", i)
		total += s.FrameCount
		if s.nframes < s.FrameCount {
			ws = append(ws, warnf(where, "%d frames declared, %d present", s.FrameCount, s.nframes))
		}
		if s.FrameCount > 0 && (s.LoopStartFrame < 0 || s.LoopStartFrame >= s.FrameCount) {
			ws = append(ws, warnf(where, "loop start frame %d outside %d frames", s.LoopStartFrame, s.FrameCount))
		}
		frames := s.Frames
		if s.nframes < len(frames) {
			frames = frames[:s.nframes]
		}
		for j, f := range frames {
			fwhere := fmt.Sprintf("%s.frames[%d]", where, j)
			if f.ResultID < 0 || f.ResultID >= len(bank.Results) {
				ws = append(ws, warnf(fwhere, "result %d out of range", f.ResultID))
				continue
			}
			r := bank.Results[f.ResultID]
			if r == nil {
				continue
			}
			if r.ResultType() != int(s.AnimationElement) {
				ws = append(ws, warnf(fwhere, "result %d has type %d, sequence uses %d", f.ResultID, r.ResultType(), s.AnimationElement))
			}
		}
	}
	if total != bank.FrameCount {
		ws = append(ws, warnf("frameCount", "%d declared, sequences hold %d", bank.FrameCount, total))
	}
	for i, r := range bank.Results {
		where := fmt.Sprintf("animationResults[%d]", i)
		if r == nil {
			ws = append(ws, warnf(where, "declared but not present"))
			continue
		}
		if _, ok := r.(UnknownResult); ok {
			ws = append(ws, warnf(where, "unknown result type %d", r.ResultType()))
		}
		if idx, ok := resultIndex(r); ok && idx < 0 {
			ws = append(ws, warnf(where, "negative cell index %d", idx))
		}
	}
	ws = append(ws, lintLabels(bank.LabelEnabled, bank.LabelCount, bank.nlabels)...)
	return ws
}
