package styling

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ja-he/rowedit/internal/config"
)

// DrawStyling is how a piece of text is drawn: colors plus font attributes.
// Derivations return modified copies.
type DrawStyling interface {
	AsTcell() tcell.Style

	// DefaultDimmed lightens both colors, e.g. for secondary text.
	DefaultDimmed() DrawStyling
	// DefaultEmphasized darkens both colors, e.g. for the mode indicator.
	DefaultEmphasized() DrawStyling

	Italicized() DrawStyling
	Bolded() DrawStyling
	Underlined() DrawStyling

	String() string
}

// ColorStyling is a DrawStyling over go-colorful colors.
type ColorStyling struct {
	fg, bg colorful.Color

	bold, italic, underlined bool
}

// StyleFromHex returns a styling for two colors in '#rrggbb' or '#rgb'
// notation.
func StyleFromHex(fg, bg string) (*ColorStyling, error) {
	fgColor, err := colorful.Hex(fg)
	if err != nil {
		return nil, fmt.Errorf("invalid foreground color '%s' (%w)", fg, err)
	}
	bgColor, err := colorful.Hex(bg)
	if err != nil {
		return nil, fmt.Errorf("invalid background color '%s' (%w)", bg, err)
	}
	return &ColorStyling{fg: fgColor, bg: bgColor}, nil
}

// StyleFromConfig returns the styling a stylesheet entry describes.
func StyleFromConfig(c config.Styling) (DrawStyling, error) {
	s, err := StyleFromHex(c.Fg, c.Bg)
	if err != nil {
		return nil, err
	}
	if c.Style != nil {
		s.bold, s.italic, s.underlined = c.Style.Bold, c.Style.Italic, c.Style.Underlined
	}
	return s, nil
}

func (s *ColorStyling) AsTcell() tcell.Style {
	return tcell.StyleDefault.
		Foreground(toTcellColor(s.fg)).
		Background(toTcellColor(s.bg)).
		Bold(s.bold).
		Italic(s.italic).
		Underline(s.underlined)
}

func (s *ColorStyling) DefaultDimmed() DrawStyling {
	return s.with(func(c *ColorStyling) {
		c.fg, c.bg = shiftLightness(c.fg, 50), shiftLightness(c.bg, 50)
	})
}

func (s *ColorStyling) DefaultEmphasized() DrawStyling {
	return s.with(func(c *ColorStyling) {
		c.fg, c.bg = shiftLightness(c.fg, -20), shiftLightness(c.bg, -20)
	})
}

func (s *ColorStyling) Italicized() DrawStyling {
	return s.with(func(c *ColorStyling) { c.italic = true })
}

func (s *ColorStyling) Bolded() DrawStyling {
	return s.with(func(c *ColorStyling) { c.bold = true })
}

func (s *ColorStyling) Underlined() DrawStyling {
	return s.with(func(c *ColorStyling) { c.underlined = true })
}

func (s *ColorStyling) String() string {
	return fmt.Sprintf("[fg:'%s' bg:'%s' (b:%t i:%t u:%t)]", s.fg.Hex(), s.bg.Hex(), s.bold, s.italic, s.underlined)
}

func (s *ColorStyling) with(modify func(*ColorStyling)) *ColorStyling {
	c := *s
	modify(&c)
	return &c
}
