package picolog

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// A ColorMode controls whether level names are wrapped in ANSI color codes on the display output.
type ColorMode int

const (
	// Always colorize, the default.
	ColorAlways ColorMode = iota
	// Never colorize.
	ColorNever
	// Colorize only when the display output is a terminal.
	ColorAuto
)

var levelColors = map[Level]color.Attribute{
	LevelInfo:     color.FgBlue,
	LevelWarning:  color.FgYellow,
	LevelError:    color.FgRed,
	LevelCritical: color.FgMagenta,
}

// A palette holds one color per level, all switched on or off together.
type palette struct {
	colors  map[Level]*color.Color
	unknown *color.Color
	enabled bool
}

func newPalette(mode ColorMode, out io.Writer) *palette {
	p := &palette{
		colors:  make(map[Level]*color.Color, len(levelColors)),
		unknown: color.New(color.Reset),
		enabled: shouldColorize(mode, out),
	}
	for level, attr := range levelColors {
		p.colors[level] = color.New(attr)
	}
	for _, c := range p.all() {
		if p.enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *palette) all() []*color.Color {
	all := []*color.Color{p.unknown}
	for _, c := range p.colors {
		all = append(all, c)
	}
	return all
}

// Paint the level name, e.g. "\x1b[34mINFO\x1b[0m".
// Unknown levels get a bare reset around the name.
func (p *palette) paint(level Level) string {
	c, ok := p.colors[level]
	if !ok {
		c = p.unknown
	}
	return c.Sprint(level.String())
}

func shouldColorize(mode ColorMode, out io.Writer) bool {
	switch mode {
	case ColorNever:
		return false
	case ColorAuto:
		f, ok := out.(*os.File)
		if !ok {
			return false
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	default:
		return true
	}
}
