package nitro

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// parse turns source text into a tree.
func parse(data []byte, format Format) (gjson.Result, error) {
	if format == FormatYAML {
		var err error
		data, err = yamlToJSON(data)
		if err != nil {
			return gjson.Result{}, err
		}
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, syntaxError(data)
	}
	return gjson.ParseBytes(data), nil
}

// yamlToJSON re-emits a YAML document as JSON text so that both notations
// share one tree representation.
func yamlToJSON(data []byte) ([]byte, error) {
	var v interface{}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, &SyntaxError{Err: err}
	}
	out, err := json.Marshal(v)
	if err != nil {
		// Mappings with non-string keys have no JSON equivalent.
		return nil, &SyntaxError{Err: err}
	}
	return out, nil
}

const contextLen = 32

// syntaxError locates the first syntax error in data.
func syntaxError(data []byte) error {
	var raw json.RawMessage
	err := json.Unmarshal(data, &raw)
	var serr *json.SyntaxError
	if !errors.As(err, &serr) {
		return &SyntaxError{Err: err}
	}
	off := int(serr.Offset)
	if off > 0 {
		off-- // Offset is just past the offending byte
	}
	if off > len(data) {
		off = len(data)
	}
	line := 1 + bytes.Count(data[:off], []byte("\n"))
	col := off - bytes.LastIndexByte(data[:off], '\n')
	ctx := data[off:]
	if i := bytes.IndexByte(ctx, '\n'); i >= 0 {
		ctx = ctx[:i]
	}
	if len(ctx) > contextLen {
		ctx = ctx[:contextLen]
	}
	return &SyntaxError{
		Line:    line,
		Column:  col,
		Context: string(ctx),
		Err:     err,
	}
}

// Scalar extractors. A node that is missing or has the wrong type decodes as
// the zero value.

func getBool(v gjson.Result) bool {
	return v.Type == gjson.True
}

func getInt(v gjson.Result) int {
	if v.Type != gjson.Number {
		return 0
	}
	return int(v.Int())
}

// getString returns a copy of a string node's value, so the result does not
// keep the source text alive.
func getString(v gjson.Result) (string, bool) {
	if v.Type != gjson.String {
		return "", false
	}
	return strings.Clone(v.Str), true
}

// forEach calls fn for each element of an array (or each value of an object)
// in order, stopping at the first error. Scalars have no elements.
func forEach(v gjson.Result, fn func(elem gjson.Result) error) error {
	if v.Type != gjson.JSON {
		return nil
	}
	var err error
	v.ForEach(func(_, elem gjson.Result) bool {
		err = fn(elem)
		return err == nil
	})
	return err
}

// forEachBounded is like forEach but fails with a *CountError instead of
// visiting an element at index n or beyond.
func forEachBounded(v gjson.Result, n int, what string, fn func(i int, elem gjson.Result) error) error {
	i := 0
	return forEach(v, func(elem gjson.Result) error {
		if i >= n {
			return &CountError{What: what, Declared: n}
		}
		if err := fn(i, elem); err != nil {
			return err
		}
		i++
		return nil
	})
}

// arraySize returns the number of elements forEach would visit.
func arraySize(v gjson.Result) int {
	n := 0
	forEach(v, func(gjson.Result) error {
		n++
		return nil
	})
	return n
}

// arrayItem returns the element at index i, or a missing node.
func arrayItem(v gjson.Result, i int) gjson.Result {
	var item gjson.Result
	j := 0
	forEach(v, func(elem gjson.Result) error {
		if j == i {
			item = elem
			return errStop
		}
		j++
		return nil
	})
	return item
}

var errStop = errors.New("stop")

// Binary resources store their counts in 16 bits.
const maxCount = 0xFFFF

// maxTiles bounds the tile grid of a screen.
const maxTiles = 1 << 20

// checkCount rejects counts that cannot be allocated, or that no binary
// resource could hold.
func checkCount(n int, what string) error {
	if n < 0 {
		return &CountError{What: what, Declared: n}
	}
	if n > maxCount {
		return &CountError{What: what, Declared: n, Limit: maxCount}
	}
	return nil
}
