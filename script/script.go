// Package script runs Starlark programs against a resolver. Scripts can
// resolve and classify formulas and inspect how names are defined.
package script

import (
	"context"
	"fmt"
	"io"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/blackwell-systems/scratchbook/classify"
	"github.com/blackwell-systems/scratchbook/resolve"
	"github.com/blackwell-systems/scratchbook/scratch"
)

const contextKey = "context"

// Element is the script view of one element.
type Element struct {
	Curve  string          `json:"curve"`
	Tone   string          `json:"tone"`
	Clicks []scratch.Click `json:"clicks"`
	XFlip  bool            `json:"xflip"`
	YFlip  bool            `json:"yflip"`
	Length float64         `json:"length"`
	Height float64         `json:"height"`
	Lift   float64         `json:"lift"`
	Name   string          `json:"name"`
}

// Scratch is the script view of a resolved scratch.
type Scratch struct {
	Elements []Element `json:"elements"`
	Length   float64   `json:"length"`
	Height   float64   `json:"height"`
	Lift     float64   `json:"lift"`
}

// View converts a scratch for scripts and structured output.
func View(s scratch.Scratch) Scratch {
	v := Scratch{
		Elements: make([]Element, 0, s.Len()),
		Length:   s.Length(),
		Height:   s.Height(),
		Lift:     s.Lift(),
	}
	for _, el := range s.Elements() {
		v.Elements = append(v.Elements, Element{
			Curve:  el.Curve().Name(),
			Tone:   el.Tone().String(),
			Clicks: el.Clicks(),
			XFlip:  el.XFlip(),
			YFlip:  el.YFlip(),
			Length: el.Length(),
			Height: el.Height(),
			Lift:   el.Lift(),
			Name:   classify.Name(el),
		})
	}
	return v
}

// Builtins returns the predeclared names scripts see.
func Builtins(r *resolve.Resolver) starlark.StringDict {
	resolveFn := func(thread *starlark.Thread, formula string) (scratch.Scratch, error) {
		ctx, _ := thread.Local(contextKey).(context.Context)
		if ctx == nil {
			ctx = context.Background()
		}
		return r.Resolve(ctx, formula)
	}

	return starlark.StringDict{
		"resolve": starlark.NewBuiltin("resolve", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var formula string
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "formula", &formula); err != nil {
				return nil, err
			}
			s, err := resolveFn(thread, formula)
			if err != nil {
				return nil, err
			}
			return toValue(View(s))
		}),

		"classify": starlark.NewBuiltin("classify", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var formula string
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "formula", &formula); err != nil {
				return nil, err
			}
			s, err := resolveFn(thread, formula)
			if err != nil {
				return nil, err
			}
			return toValue(classify.Classify(s))
		}),

		"names": starlark.NewBuiltin("names", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var formula string
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "formula", &formula); err != nil {
				return nil, err
			}
			return toValue(resolve.Names(formula))
		}),

		"define": starlark.NewBuiltin("define", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var name string
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name); err != nil {
				return nil, err
			}
			def, err := r.Define(name)
			if err != nil {
				return nil, err
			}
			return toValue(def)
		}),
	}
}

// Run executes src. print output goes to out. Cancelling ctx stops the
// script at its next step.
func Run(ctx context.Context, r *resolve.Resolver, filename string, src any, out io.Writer) (starlark.StringDict, error) {
	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(out, msg)
		},
	}
	thread.SetLocal(contextKey, ctx)
	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(context.Cause(ctx).Error())
	})
	defer stop()

	globals, err := starlark.ExecFileOptions(&syntax.FileOptions{}, thread, filename, src, Builtins(r))
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", filename, err)
	}
	return globals, nil
}
