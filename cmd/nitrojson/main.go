// Command nitrojson decodes the JSON (or YAML) source of a Nitro cell bank,
// screen or animation bank and prints what it found.
//
// Usage:
//
//	nitrojson [-v] [-json] [-words] cell|screen|anim FILE
//
// Any malformed source aborts the run with exit status 1.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/tidwall/pretty"

	"github.com/PikalaxALT/nitrogfx/nitro"
)

var (
	verbose   bool
	jsonflag  bool
	wordsflag bool
)

var log zerolog.Logger

func die(err error, msg string) {
	log.Fatal().Err(err).Msg(msg)
}

func main() {
	flag.BoolVar(&verbose, "v", false, "log decode progress")
	flag.BoolVar(&jsonflag, "json", false, "print the decoded record as normalised JSON")
	flag.BoolVar(&wordsflag, "words", false, "print packed OAM words (cell banks only)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] cell|screen|anim FILE\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	kind, path := flag.Arg(0), flag.Arg(1)
	dec := nitro.NewDecoder(nitro.WithLogger(log))

	var rec interface {
		json.Marshaler
		Release()
	}
	var warnings []nitro.Warning
	switch kind {
	case "cell":
		bank, err := dec.OpenCellBank(path)
		if err != nil {
			die(err, "cannot decode cell bank")
		}
		warnings = bank.Lint()
		if !jsonflag {
			printCellBank(os.Stdout, bank)
		}
		rec = bank
	case "screen":
		scr, err := dec.OpenScreen(path)
		if err != nil {
			die(err, "cannot decode screen")
		}
		if !jsonflag {
			printScreen(os.Stdout, scr)
		}
		rec = scr
	case "anim":
		bank, err := dec.OpenAnimationBank(path)
		if err != nil {
			die(err, "cannot decode animation bank")
		}
		warnings = bank.Lint()
		if !jsonflag {
			printAnimationBank(os.Stdout, bank)
		}
		rec = bank
	default:
		flag.Usage()
		os.Exit(2)
	}
	defer rec.Release()

	for _, w := range warnings {
		log.Warn().Str("at", w.Where).Msg(w.Msg)
	}

	if jsonflag {
		b, err := rec.MarshalJSON()
		if err != nil {
			die(err, "cannot encode")
		}
		os.Stdout.Write(pretty.Pretty(b))
	}
}

func printCellBank(w io.Writer, bank *nitro.CellBank) {
	fmt.Fprintf(w, "cells: %d (extended: %v, mapping: %d)\n", bank.CellCount, bank.Extended, bank.MappingType)
	fmt.Fprintf(w, "image: %dx%d\n", bank.ImageWidth, bank.ImageHeight)
	for i, c := range bank.Cells {
		obj := c.OAM.OBJ()
		label := ""
		if i < len(bank.Labels) {
			label = bank.Labels[i]
		}
		fmt.Fprintf(w, "%4d %-16s %v tile=%d pal=%d prio=%d", i, label, obj.Bounds(), obj.Tile(), obj.Palette(), obj.Priority())
		if wordsflag {
			fmt.Fprintf(w, " %s %04X %04X %04X", transform(&obj), obj[0], obj[1], obj[2])
		}
		fmt.Fprintln(w)
	}
}

// transform describes the rotation/scaling mode of an OBJ, or its flips
// when it is not transformed.
func transform(obj *nitro.OBJ) string {
	switch {
	case obj.Double():
		return "double"
	case obj.TransformMode() == 1:
		return "affine"
	case obj.TransformMode() == 2:
		return "hidden"
	}
	flip := ""
	if obj.FlipX() {
		flip += "h"
	}
	if obj.FlipY() {
		flip += "v"
	}
	if flip == "" {
		return "-"
	}
	return flip
}

func printScreen(w io.Writer, scr *nitro.Screen) {
	fmt.Fprintf(w, "screen: %dx%d tiles (tileset size %d)\n", scr.Width, scr.Height, scr.TilesetSize)
	for y := 0; y < scr.Height; y++ {
		for x := 0; x < scr.Width; x++ {
			if x > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprintf(w, "%04X", scr.Data[y*scr.Width+x])
		}
		fmt.Fprintln(w)
	}
}

func printAnimationBank(w io.Writer, bank *nitro.AnimationBank) {
	fmt.Fprintf(w, "sequences: %d, frames: %d, results: %d\n", bank.SequenceCount, bank.FrameCount, bank.ResultCount)
	for i, s := range bank.Sequences {
		label := ""
		if i < len(bank.Labels) {
			label = bank.Labels[i]
		}
		fmt.Fprintf(w, "%4d %-16s element=%d type=%d mode=%d loop=%d\n",
			i, label, s.AnimationElement, s.AnimationType, s.PlaybackMode, s.LoopStartFrame)
		for j, f := range s.Frames {
			fmt.Fprintf(w, "     %3d delay=%d result=%d", j, f.FrameDelay, f.ResultID)
			if f.ResultID >= 0 && f.ResultID < len(bank.Results) && bank.Results[f.ResultID] != nil {
				fmt.Fprintf(w, " %+v", bank.Results[f.ResultID])
			}
			fmt.Fprintln(w)
		}
	}
}
