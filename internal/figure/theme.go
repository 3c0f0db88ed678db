package figure

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/go-fonts/liberation/liberationsansbold"
	"golang.org/x/image/font/opentype"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/text"
)

// Theme is the process-wide look of the figure.
type Theme struct {
	Background color.Color
	Foreground color.Color

	// Font is the typeface used for all text; its size is ignored.
	Font font.Font

	// LabelFont is the panel-letter typeface. It must be a face registered
	// under its own variant: the PDF backend cannot select bold by weight.
	LabelFont font.Font

	TextSize  vg.Length // axis labels and legend
	TickSize  vg.Length
	LabelSize vg.Length // panel letters

	LineWidth vg.Length

	// BandAlpha is the opacity of the confidence band, 0-255.
	BandAlpha uint8
}

// WhiteTheme is a plain white theme without grid lines.
func WhiteTheme() Theme {
	return Theme{
		Background: color.White,
		Foreground: color.Black,
		Font:       font.Font{Typeface: "Liberation", Variant: "Sans"},
		LabelFont:  SansBold,
		TextSize:   vg.Points(10),
		TickSize:   vg.Points(9),
		LabelSize:  vg.Points(12),
		LineWidth:  vg.Points(1.5),
		BandAlpha:  51,
	}
}

// SansBold is Liberation Sans Bold registered as a regular-weight variant.
var SansBold = font.Font{Typeface: "Liberation", Variant: "SansBold"}

var registerBold sync.Once

// registerFonts adds SansBold to the default font cache.
func registerFonts() {
	registerBold.Do(func() {
		face, err := opentype.Parse(liberationsansbold.TTF)
		if err != nil {
			panic(fmt.Errorf("figure: could not parse bold font: %w", err))
		}
		font.DefaultCache.Add(font.Collection{{Font: SansBold, Face: face}})
	})
}

var (
	themeMu sync.Mutex
	current = WhiteTheme()
)

// SetTheme installs t for every figure composed afterwards. It also changes
// plot.DefaultFont, which gonum/plot reads when a plot is created.
func SetTheme(t Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()

	registerFonts()
	current = t
	plot.DefaultFont = t.Font
}

// CurrentTheme returns the installed theme.
func CurrentTheme() Theme {
	registerFonts()
	themeMu.Lock()
	defer themeMu.Unlock()
	return current
}

// labelStyle is the panel-letter style, anchored at its top-left corner.
func (t Theme) labelStyle() text.Style {
	return text.Style{
		Color:   t.Foreground,
		Font:    font.From(t.LabelFont, t.LabelSize),
		XAlign:  draw.XLeft,
		YAlign:  draw.YTop,
		Handler: plot.DefaultTextHandler,
	}
}

func (t Theme) textFont(size vg.Length) font.Font {
	return font.From(t.Font, size)
}
