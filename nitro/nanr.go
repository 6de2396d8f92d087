package nitro

import (
	"io"

	"github.com/tidwall/gjson"
)

// An AnimationBank is the decoded source of an NANR (nitro animation
// resource), which sequences cells into animations.
type AnimationBank struct {
	SequenceCount int
	FrameCount    int // total over all sequences; informational
	ResultCount   int

	Sequences []Sequence
	Results   []Result // nil where the source has fewer entries than ResultCount

	// Only present if LabelEnabled.
	LabelEnabled bool
	LabelCount   int
	Labels       []string

	nsequences int
	nlabels    int
	tracker    Tracker
	released   bool
}

// A Sequence is an animated cell: frames played back with shared settings.
type Sequence struct {
	FrameCount       int
	LoopStartFrame   int // index of first frame
	AnimationElement AnimationElement
	AnimationType    AnimationType
	PlaybackMode     PlaybackMode

	Frames []Frame

	nframes int
}

// A frame of a sequence.
type Frame struct {
	FrameDelay int // 60 fps
	ResultID   int // index into AnimationBank.Results
}

// AnimationElement is the result type used by a sequence's frames.
type AnimationElement int

const (
	ElementIndex AnimationElement = iota
	ElementSRT
	ElementT
)

// AnimationType tells whether a sequence animates a cell or a multi cell.
type AnimationType int

const (
	AnimationInvalid AnimationType = iota
	AnimationCell
	AnimationMultiCell
)

// invalid, forward, forward loop, forward-reverse, forward-reverse loop
type PlaybackMode int

const (
	PlaybackInvalid PlaybackMode = iota
	PlaybackForward
	PlaybackForwardLoop
	PlaybackReverse
	PlaybackReverseLoop
)

// OpenAnimationBank reads and decodes the animation bank source at path.
func (d *Decoder) OpenAnimationBank(path string) (*AnimationBank, error) {
	root, err := d.open(path)
	if err != nil {
		return nil, err
	}
	return d.decodeAnimationBank(root)
}

// ReadAnimationBank decodes an animation bank source from r.
func (d *Decoder) ReadAnimationBank(r io.Reader) (*AnimationBank, error) {
	root, err := d.read(r)
	if err != nil {
		return nil, err
	}
	return d.decodeAnimationBank(root)
}

func (d *Decoder) decodeAnimationBank(root gjson.Result) (bank *AnimationBank, err error) {
	bank = &AnimationBank{
		SequenceCount: getInt(root.Get("sequenceCount")),
		FrameCount:    getInt(root.Get("frameCount")),
		tracker:       d.tracker,
	}
	if err := checkCount(bank.SequenceCount, "sequence"); err != nil {
		return nil, err
	}

	d.tracker.Alloc(KindAnimationBank, 1)
	defer func() {
		if err != nil {
			bank.Release()
			bank = nil
		}
	}()

	bank.Sequences = make([]Sequence, bank.SequenceCount)
	d.tracker.Alloc(KindSequences, 1)
	allocEach(d.tracker, KindSequence, bank.SequenceCount)

	err = forEachBounded(root.Get("sequences"), bank.SequenceCount, "sequence", func(i int, v gjson.Result) error {
		bank.nsequences++
		return d.decodeSequence(&bank.Sequences[i], v)
	})
	if err != nil {
		return
	}

	bank.ResultCount = getInt(root.Get("resultCount"))
	if err = checkCount(bank.ResultCount, "result"); err != nil {
		return
	}
	bank.Results = make([]Result, bank.ResultCount)
	d.tracker.Alloc(KindResults, 1)

	err = forEachBounded(root.Get("animationResults"), bank.ResultCount, "result", func(i int, v gjson.Result) error {
		bank.Results[i] = decodeResult(v)
		d.tracker.Alloc(KindResult, 1)
		return nil
	})
	if err != nil {
		return
	}

	bank.LabelEnabled = getBool(root.Get("labelEnabled"))
	if bank.LabelEnabled {
		bank.nlabels, err = d.decodeLabels(root, &bank.LabelCount, &bank.Labels)
		if err != nil {
			return
		}
	}

	d.log.Debug().
		Int("sequences", bank.nsequences).
		Int("results", bank.ResultCount).
		Int("labels", bank.nlabels).
		Msg("decoded animation bank")
	return bank, nil
}

func (d *Decoder) decodeSequence(s *Sequence, v gjson.Result) error {
	s.FrameCount = getInt(v.Get("frameCount"))
	s.LoopStartFrame = getInt(v.Get("loopStartFrame"))
	s.AnimationElement = AnimationElement(getInt(v.Get("animationElement")))
	s.AnimationType = AnimationType(getInt(v.Get("animationType")))
	s.PlaybackMode = PlaybackMode(getInt(v.Get("playbackMode")))
	if err := checkCount(s.FrameCount, "frame"); err != nil {
		return err
	}

	s.Frames = make([]Frame, s.FrameCount)
	d.tracker.Alloc(KindFrames, 1)
	allocEach(d.tracker, KindFrame, s.FrameCount)

	return forEachBounded(v.Get("frameData"), s.FrameCount, "frame", func(j int, f gjson.Result) error {
		s.Frames[j] = Frame{
			FrameDelay: getInt(f.Get("frameDelay")),
			ResultID:   getInt(f.Get("resultId")),
		}
		s.nframes++
		return nil
	})
}

// Release drops every collection owned by the bank: each sequence's frames
// before the sequence, then results and labels, then the sequence and result
// tables. It is safe to call more than once.
func (bank *AnimationBank) Release() {
	if bank == nil || bank.released {
		return
	}
	t := trackerOf(bank.tracker)
	for i := range bank.Sequences {
		s := &bank.Sequences[i]
		if s.Frames != nil {
			freeEach(t, KindFrame, len(s.Frames))
			t.Free(KindFrames, 1)
			s.Frames = nil
		}
		t.Free(KindSequence, 1)
	}
	for _, r := range bank.Results {
		if r != nil {
			t.Free(KindResult, 1)
		}
	}
	if bank.LabelEnabled && bank.Labels != nil {
		freeEach(t, KindLabel, len(bank.Labels))
		t.Free(KindLabels, 1)
	}
	if bank.Sequences != nil {
		t.Free(KindSequences, 1)
	}
	if bank.Results != nil {
		t.Free(KindResults, 1)
	}
	t.Free(KindAnimationBank, 1)
	bank.Sequences = nil
	bank.Results = nil
	bank.Labels = nil
	bank.released = true
}
