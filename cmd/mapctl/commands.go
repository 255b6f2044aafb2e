package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/milk9111/tiledit/edit"
	"github.com/milk9111/tiledit/levels"
	"github.com/milk9111/tiledit/logger"
	"github.com/milk9111/tiledit/script"
	"github.com/milk9111/tiledit/tilemap"
	"go.uber.org/zap"
)

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parse runs fs over args and checks the number of positional arguments.
func parse(fs *flag.FlagSet, args []string, want int) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errUsage, fs.Name(), err)
	}
	if fs.NArg() != want {
		return nil, fmt.Errorf("%w: %s takes %d argument(s), got %d", errUsage, fs.Name(), want, fs.NArg())
	}
	return fs.Args(), nil
}

func checkSize(w, h, layers int) error {
	if w < 1 || h < 1 || w > levels.MaxDimension || h > levels.MaxDimension {
		return fmt.Errorf("%w: %dx%d (1..%d)", levels.ErrInvalidSize, w, h, levels.MaxDimension)
	}
	return levels.CheckLayers(layers)
}

// openEditor loads path into a fresh editing session.
func openEditor(path string) (*edit.Editor, []levels.Tileset, error) {
	m, tilesets, err := levels.Load(path)
	if err != nil {
		return nil, nil, err
	}
	return edit.New(m, edit.WithLogger(logger.Named("edit"))), tilesets, nil
}

// write saves m to out, or back to in when out is empty.
func write(w io.Writer, in, out string, m *tilemap.Map, tilesets []levels.Tileset) error {
	if out == "" {
		out = in
	}
	if err := levels.Save(out, m, tilesets); err != nil {
		return err
	}
	size := "?"
	if fi, err := os.Stat(out); err == nil {
		size = humanize.Bytes(uint64(fi.Size()))
	}
	logger.Debug("map written", zap.String("path", out), zap.String("size", size))
	fmt.Fprintf(w, "wrote %s (%dx%d, %d layers, %s)\n", out, m.Width, m.Height, m.Layers, size)
	return nil
}

func cmdInfo(args []string, out io.Writer) error {
	fs := newFlags("info")
	rest, err := parse(fs, args, 1)
	if err != nil {
		return err
	}
	path := rest[0]
	m, tilesets, err := levels.Load(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s\n", path)
	if fi, err := os.Stat(path); err == nil {
		fmt.Fprintf(out, "  format   %s, %s\n", levels.FormatFor(path), humanize.Bytes(uint64(fi.Size())))
	}
	fmt.Fprintf(out, "  size     %dx%d, %s cells per layer\n", m.Width, m.Height, humanize.Comma(int64(m.LayerLen())))
	fmt.Fprintf(out, "  layers   %d\n", m.Layers)
	total := 0
	for l := 0; l < m.Layers; l++ {
		meta := m.Layer(l)
		n := m.Count(l)
		total += n
		flags := ""
		if meta.Locked {
			flags += " locked"
		}
		if !meta.Visible {
			flags += " hidden"
		}
		fmt.Fprintf(out, "    %d %-12s %8s tiles%s\n", l, meta.Name, humanize.Comma(int64(n)), flags)
	}
	fmt.Fprintf(out, "  tiles    %s\n", humanize.Comma(int64(total)))
	for _, t := range tilesets {
		fmt.Fprintf(out, "  tileset  %s (%s) %s\n", t.ID, t.Category, t.AssetPath)
	}
	return nil
}

func cmdNew(args []string, out io.Writer) error {
	fs := newFlags("new")
	width := fs.Int("width", 32, "Map width in cells")
	height := fs.Int("height", 18, "Map height in cells")
	layers := fs.Int("layers", tilemap.DefaultLayerCount, "Number of layers")
	force := fs.Bool("force", false, "Overwrite an existing file")
	rest, err := parse(fs, args, 1)
	if err != nil {
		return err
	}
	if err := checkSize(*width, *height, *layers); err != nil {
		return err
	}
	path := rest[0]
	if _, err := os.Stat(path); err == nil && !*force {
		return fmt.Errorf("%s already exists (use -force)", path)
	}
	return write(out, path, "", tilemap.NewWithLayers(*width, *height, *layers), nil)
}

func cmdResize(args []string, out io.Writer) error {
	fs := newFlags("resize")
	width := fs.Int("width", 0, "New width; 0 keeps the current width")
	height := fs.Int("height", 0, "New height; 0 keeps the current height")
	layers := fs.Int("layers", 0, "New layer count; 0 keeps the current count")
	dst := fs.String("o", "", "Output path (default: overwrite the input)")
	rest, err := parse(fs, args, 1)
	if err != nil {
		return err
	}
	ed, tilesets, err := openEditor(rest[0])
	if err != nil {
		return err
	}
	m := ed.Map()
	w, h, l := m.Width, m.Height, m.Layers
	if *width > 0 {
		w = *width
	}
	if *height > 0 {
		h = *height
	}
	if *layers > 0 {
		l = *layers
	}
	if err := checkSize(w, h, l); err != nil {
		return err
	}
	ed.Resize(w, h)
	ed.SetLayerCount(l)
	return write(out, rest[0], *dst, ed.Map(), tilesets)
}

func cmdShift(args []string, out io.Writer) error {
	fs := newFlags("shift")
	dirName := fs.String("dir", "", "left, right, up or down")
	count := fs.Int("n", 1, "Number of cells to shift by")
	wrap := fs.Bool("wrap", false, "Wrap cells around the opposite edge instead of dropping them")
	layer := fs.Int("layer", -1, "Shift only this layer; default shifts every unlocked layer")
	dst := fs.String("o", "", "Output path (default: overwrite the input)")
	rest, err := parse(fs, args, 1)
	if err != nil {
		return err
	}
	dir, err := edit.ParseDirection(*dirName)
	if err != nil {
		return fmt.Errorf("%w: shift: %v", errUsage, err)
	}
	if *count < 1 {
		return fmt.Errorf("%w: shift: -n must be at least 1", errUsage)
	}

	ed, tilesets, err := openEditor(rest[0])
	if err != nil {
		return err
	}
	if *layer >= 0 {
		if !ed.Map().ValidLayer(*layer) {
			return fmt.Errorf("layer %d out of range (map has %d)", *layer, ed.Map().Layers)
		}
		ed.SetActiveLayer(*layer)
	}
	mode := edit.ShiftBlank
	if *wrap {
		mode = edit.ShiftWrap
	}
	ed.SetShiftMode(mode)

	changed, applied := 0, 0
	for i := 0; i < *count; i++ {
		var res edit.Result
		if *layer >= 0 {
			res = ed.ShiftLayer(dir)
		} else {
			res = ed.ShiftMap(dir)
		}
		if !res.Applied() {
			if i == 0 {
				return fmt.Errorf("shift %s: %s", dir, res.Reason)
			}
			break
		}
		changed += res.Changed
		applied++
	}
	fmt.Fprintf(out, "shifted %s by %d (%s), %s cells changed\n", dir, applied, mode, humanize.Comma(int64(changed)))
	return write(out, rest[0], *dst, ed.Map(), tilesets)
}

func cmdRun(args []string, out io.Writer) error {
	fs := newFlags("run")
	timeout := fs.Duration("timeout", 10*time.Second, "Abort the script after this long")
	dst := fs.String("o", "", "Output path (default: overwrite the input)")
	dry := fs.Bool("n", false, "Run without writing the result")
	rest, err := parse(fs, args, 2)
	if err != nil {
		return err
	}
	src, err := os.ReadFile(rest[0])
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	ed, tilesets, err := openEditor(rest[1])
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	report, err := script.Run(ctx, src, ed)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %d ops, %s cells changed\n", filepath.Base(rest[0]), report.Ops, humanize.Comma(int64(report.Changed)))
	for _, r := range report.Rejected {
		fmt.Fprintf(out, "  %s rejected: %s\n", r.Op, r.Reason)
	}
	if *dry {
		return nil
	}
	return write(out, rest[1], *dst, ed.Map(), tilesets)
}

func cmdConvert(args []string, out io.Writer) error {
	fs := newFlags("convert")
	rest, err := parse(fs, args, 2)
	if err != nil {
		return err
	}
	in, dst := rest[0], rest[1]
	if in == dst {
		return errors.New("convert: input and output are the same file")
	}
	m, tilesets, err := levels.Load(in)
	if err != nil {
		return err
	}
	return write(out, in, dst, m, tilesets)
}

func cmdCatalog(args []string, out io.Writer) error {
	fs := newFlags("catalog")
	dir := fs.String("dir", "", "Directory of tileset PNGs")
	dst := fs.String("o", "tilesets.yaml", "Catalog file to write")
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}
	if *dir == "" {
		return fmt.Errorf("%w: catalog: -dir is required", errUsage)
	}

	c := &levels.Catalog{}
	if existing, err := levels.LoadCatalog(*dst); err == nil {
		c = existing
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	added, err := c.ScanDir(*dir)
	if err != nil {
		return err
	}
	if err := levels.SaveCatalog(*dst, c); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	fmt.Fprintf(out, "%s: %d tilesets (%d new)\n", *dst, len(c.Entries), added)
	return nil
}
