package nitro

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/tidwall/gjson"
)

func TestCellBankRoundTrip(t *testing.T) {
	d := NewDecoder()
	want, err := d.OpenCellBank("testdata/cells.json")
	if err != nil {
		t.Fatal(err)
	}
	b, err := want.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if !gjson.ValidBytes(b) {
		t.Fatalf("invalid JSON: %s", b)
	}
	got, err := d.ReadCellBank(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip:\ngot  %+v\nwant %+v", got, want)
	}

	fromYAML, err := d.OpenCellBank("testdata/cells.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(fromYAML, want) {
		t.Errorf("yaml and json sources differ:\nyaml %+v\njson %+v", fromYAML, want)
	}
}

func TestScreenRoundTrip(t *testing.T) {
	d := NewDecoder()
	want, err := d.OpenScreen("testdata/screen.json")
	if err != nil {
		t.Fatal(err)
	}
	b, err := want.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if n := gjson.GetBytes(b, "tilesets.#").Int(); n != 2 {
		t.Errorf("got %d tilesets, want 2", n)
	}
	if g := gjson.GetBytes(b, "tilesets.1.firstgid").Int(); g != 11 {
		t.Errorf("second tileset firstgid: got %d, want 11", g)
	}
	got, err := d.ReadScreen(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestAnimationBankRoundTrip(t *testing.T) {
	d := NewDecoder()
	want, err := d.OpenAnimationBank("testdata/anim.json")
	if err != nil {
		t.Fatal(err)
	}
	b, err := want.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	got, err := d.ReadAnimationBank(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestEncodeNilResult(t *testing.T) {
	bank := &AnimationBank{ResultCount: 2, Results: []Result{nil, TResult{Index: 3}}}
	b, err := bank.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if r := gjson.GetBytes(b, "animationResults.0"); r.Raw != "{}" {
		t.Errorf("nil result: got %s, want {}", r.Raw)
	}
	if r := gjson.GetBytes(b, "animationResults.1.resultType").Int(); r != ResultT {
		t.Errorf("result type: got %d, want %d", r, ResultT)
	}
	if gjson.GetBytes(b, "labels").Exists() {
		t.Errorf("labels written while disabled: %s", b)
	}
}
