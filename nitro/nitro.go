// Package nitro decodes the editable sources of Nitro (Nintendo DS) graphics
// resources into typed records: cell banks (NCER), screens (NSCR) and
// animation banks (NANR).
//
// Sources are JSON documents, or YAML documents with the same shape. Field
// names are matched exactly. A missing or mistyped scalar decodes as its zero
// value, but a collection holding more entries than its declared count, or
// text that does not parse, makes the whole decode fail.
package nitro

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// ErrMalformed matches every error caused by the content of a source
// document, as opposed to errors reading it.
var ErrMalformed = errors.New("malformed source")

// A CountError reports a collection that does not fit its declared count.
type CountError struct {
	What     string // "cell", "label", "sequence", "frame", "result", "tile", "row" or "column"
	Declared int
	Limit    int // set if Declared is too large to allocate
}

func (err *CountError) Error() string {
	if err.Declared < 0 {
		return fmt.Sprintf("%s count is negative: %d", err.What, err.Declared)
	}
	if err.Limit != 0 {
		return fmt.Sprintf("%s count %d exceeds the limit of %d", err.What, err.Declared, err.Limit)
	}
	return fmt.Sprintf("%s count is incorrect: more than %d entries", err.What, err.Declared)
}

func (err *CountError) Is(target error) bool { return target == ErrMalformed }

// A SyntaxError reports source text that could not be parsed.
type SyntaxError struct {
	Line    int // 1-based; 0 if unknown
	Column  int
	Context string // text starting at the error
	Err     error  // underlying parser error, if any
}

func (err *SyntaxError) Error() string {
	if err.Line == 0 {
		if err.Err != nil {
			return "syntax error: " + err.Err.Error()
		}
		return "syntax error"
	}
	return fmt.Sprintf("error in line %d, column %d: %q", err.Line, err.Column, err.Context)
}

func (err *SyntaxError) Is(target error) bool { return target == ErrMalformed }

func (err *SyntaxError) Unwrap() error { return err.Err }

// A TilesetError reports a second tileset whose firstgid leaves no room for
// the first one.
type TilesetError struct {
	FirstGID int
}

func (err *TilesetError) Error() string {
	return fmt.Sprintf("wrong tileset index (tileset 0 should be added first): firstgid %d", err.FirstGID)
}

func (err *TilesetError) Is(target error) bool { return target == ErrMalformed }

// Format is the notation of a source document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// formatOf guesses the notation of a file from its extension.
func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// A Decoder turns source documents into records. The zero value is not
// usable; call NewDecoder.
//
// A Decoder holds no state between calls, so it may be shared by goroutines
// as long as its Tracker may.
type Decoder struct {
	log     zerolog.Logger
	tracker Tracker
	format  Format
}

// An Option configures a Decoder.
type Option func(*Decoder)

// WithLogger makes the decoder log its progress to l at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Decoder) { d.log = l }
}

// WithTracker reports every allocation the decoder makes, and every
// matching release, to t.
func WithTracker(t Tracker) Option {
	return func(d *Decoder) {
		if t != nil {
			d.tracker = t
		}
	}
}

// WithFormat sets the notation expected by the Read methods. The Open
// methods choose the notation from the file extension instead.
func WithFormat(f Format) Option {
	return func(d *Decoder) { d.format = f }
}

func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		log:     zerolog.Nop(),
		tracker: nopTracker{},
		format:  FormatJSON,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Decoder) open(path string) (gjson.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gjson.Result{}, err
	}
	format := formatOf(path)
	d.log.Debug().Str("path", path).Stringer("format", format).Int("size", len(data)).Msg("read source")
	root, err := parse(data, format)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

func (d *Decoder) read(r io.Reader) (gjson.Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return gjson.Result{}, err
	}
	return parse(data, d.format)
}

// OpenNCER decodes the cell bank source at path with a default Decoder.
func OpenNCER(path string) (*CellBank, error) {
	return NewDecoder().OpenCellBank(path)
}

// OpenNSCR decodes the screen source at path with a default Decoder.
func OpenNSCR(path string) (*Screen, error) {
	return NewDecoder().OpenScreen(path)
}

// OpenNANR decodes the animation bank source at path with a default Decoder.
func OpenNANR(path string) (*AnimationBank, error) {
	return NewDecoder().OpenAnimationBank(path)
}
