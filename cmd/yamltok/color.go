package main

import "github.com/fatih/color"

// palette holds the colors used for output. Every color is forced on or off
// so output does not depend on the global color.NoColor.
type palette struct {
	kind   *color.Color
	tag    *color.Color
	anchor *color.Color
	value  *color.Color
	ok     *color.Color
	bad    *color.Color
}

func newPalette(enabled bool) *palette {
	p := &palette{
		kind:   color.New(color.FgCyan),
		tag:    color.New(color.FgBlue),
		anchor: color.New(color.FgMagenta),
		value:  color.New(color.FgYellow),
		ok:     color.New(color.FgGreen),
		bad:    color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.kind, p.tag, p.anchor, p.value, p.ok, p.bad} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}
