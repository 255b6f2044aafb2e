// Package script runs tengo programs that edit a map through an
// edit.Editor.
//
// A script either calls the functions on the `ed` object as it runs:
//
//	ed.fill_rect(0, 0, 3, 3, {tileset_id: "terrain", index: 2})
//	ed.shift("left")
//
// or leaves a global `ops` list behind, which is applied in order once the
// script has finished:
//
//	ops := [{op: "select_all"}, {op: "transform", name: "flip_x"}]
//
// Every operation goes through the editor, so each one is a single undo step.
package script

import (
	"context"
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/tiledit/edit"
	"github.com/milk9111/tiledit/logger"
	"go.uber.org/zap"
)

var ErrNoOps = errors.New("script: no edit operations")

// Report summarizes a run.
type Report struct {
	Ops      int
	Changed  int
	Rejected []Rejection
}

// Rejection records an operation the editor refused.
type Rejection struct {
	Op     string
	Reason edit.Reason
}

func (r *Report) add(name string, res edit.Result) {
	r.Ops++
	r.Changed += res.Changed
	if res.Reason != edit.ReasonNone {
		r.Rejected = append(r.Rejected, Rejection{Op: name, Reason: res.Reason})
	}
}

// modules are the tengo standard modules a script may import. os is left
// out: scripts edit the map, never the filesystem.
var modules = []string{"math", "text", "times", "rand", "fmt", "json", "enum"}

// Run compiles and runs src against ed.
func Run(ctx context.Context, src []byte, ed *edit.Editor) (Report, error) {
	var report Report
	if ed == nil {
		return report, fmt.Errorf("run script: editor is nil")
	}
	log := logger.Named("script")

	s := tengo.NewScript(src)
	s.SetImports(stdlib.GetModuleMap(modules...))
	if err := s.Add("ed", engine(ed, &report)); err != nil {
		return report, err
	}

	compiled, err := s.Compile()
	if err != nil {
		return report, fmt.Errorf("compile script: %w", err)
	}
	if err := compiled.RunContext(ctx); err != nil {
		return report, fmt.Errorf("run script: %w", err)
	}

	if compiled.IsDefined("ops") {
		list, ok := compiled.Get("ops").Value().([]any)
		if !ok {
			return report, fmt.Errorf("run script: global 'ops' must be an array")
		}
		for i, raw := range list {
			entry, ok := raw.(map[string]any)
			if !ok {
				return report, fmt.Errorf("run script: ops[%d] must be a map", i)
			}
			name, _ := entry["op"].(string)
			res, err := apply(ed, name, entry)
			if err != nil {
				return report, fmt.Errorf("run script: ops[%d]: %w", i, err)
			}
			report.add(name, res)
		}
	}

	if report.Ops == 0 {
		return report, ErrNoOps
	}
	log.Debug("script finished",
		zap.Int("ops", report.Ops),
		zap.Int("changed", report.Changed),
		zap.Int("rejected", len(report.Rejected)))
	return report, nil
}

// engine exposes each operation as ed.<name>(positional args...) plus a few
// read-only queries.
func engine(ed *edit.Editor, report *Report) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	for name, o := range operations {
		opName := name
		params := o.params
		values[opName] = &tengo.UserFunction{Name: opName, Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) > len(params) {
				return nil, fmt.Errorf("%s: want at most %d arguments, got %d", opName, len(params), len(args))
			}
			named := make(map[string]any, len(args))
			for i, arg := range args {
				named[params[i]] = tengo.ToInterface(arg)
			}
			res, err := apply(ed, opName, named)
			if err != nil {
				return nil, err
			}
			report.add(opName, res)
			return resultObject(res), nil
		}}
	}

	values["width"] = &tengo.UserFunction{Name: "width", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(ed.Map().Width)}, nil
	}}
	values["height"] = &tengo.UserFunction{Name: "height", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(ed.Map().Height)}, nil
	}}
	values["layers"] = &tengo.UserFunction{Name: "layers", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(ed.Map().Layers)}, nil
	}}
	values["get"] = &tengo.UserFunction{Name: "get", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, ok1 := tengo.ToInt(args[0])
		y, ok2 := tengo.ToInt(args[1])
		m := ed.Map()
		if !ok1 || !ok2 || !m.InBounds(x, y) {
			return tengo.UndefinedValue, nil
		}
		ref, ok := m.At(ed.ActiveLayer(), x, y).Ref()
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return tengo.FromInterface(map[string]any{
			"tileset_id": ref.TilesetID,
			"index":      int64(ref.Index),
			"rot":        int64(ref.Rot),
			"flip_x":     ref.FlipX,
			"flip_y":     ref.FlipY,
		})
	}}

	return &tengo.ImmutableMap{Value: values}
}

func resultObject(res edit.Result) tengo.Object {
	reason := ""
	if res.Reason != edit.ReasonNone {
		reason = res.Reason.String()
	}
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"changed": &tengo.Int{Value: int64(res.Changed)},
		"reason":  &tengo.String{Value: reason},
	}}
}
