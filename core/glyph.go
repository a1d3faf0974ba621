package core

// Color is a glyph cell in red, green, blue order
type Color struct {
	R, G, B uint8
}

// Pixel converts the color to wire channel order
func (c Color) Pixel() Pixel {
	return RGB(c.R, c.G, c.B)
}

// Glyph is a 5x5 picture of one digit, indexed [row][col]
type Glyph [Rows][Cols]Color

// NumGlyphs is the number of displayable digits
const NumGlyphs = 10

// Palette used by the digit glyphs
var (
	off    = Color{}
	violet = Color{136, 0, 159}
	aqua   = Color{0, 244, 255}
	red    = Color{255, 0, 0}
	blue   = Color{15, 0, 255}
	lime   = Color{251, 255, 0}
	orange = Color{255, 135, 0}
	pink   = Color{251, 0, 255}
	green  = Color{83, 255, 0}
)

// glyphs is read-only after init; never hand out a pointer into it
var glyphs = [NumGlyphs]Glyph{
	{ // 0
		{off, violet, violet, violet, off},
		{off, violet, off, violet, off},
		{off, violet, off, violet, off},
		{off, violet, off, violet, off},
		{off, violet, violet, violet, off},
	},
	{ // 1
		{off, aqua, aqua, aqua, off},
		{off, off, aqua, off, off},
		{off, off, aqua, off, off},
		{off, aqua, aqua, off, off},
		{off, off, aqua, off, off},
	},
	{ // 2
		{off, red, red, red, off},
		{off, red, off, off, off},
		{off, red, red, red, off},
		{off, off, off, red, off},
		{off, red, red, red, off},
	},
	{ // 3
		{off, blue, blue, blue, off},
		{off, off, off, blue, off},
		{off, blue, blue, blue, off},
		{off, off, off, blue, off},
		{off, blue, blue, blue, off},
	},
	{ // 4
		{off, lime, off, off, off},
		{off, off, off, lime, off},
		{off, lime, lime, lime, off},
		{off, lime, off, lime, off},
		{off, lime, off, lime, off},
	},
	{ // 5
		{off, orange, orange, orange, off},
		{off, off, off, orange, off},
		{off, orange, orange, orange, off},
		{off, orange, off, off, off},
		{off, orange, orange, orange, off},
	},
	{ // 6
		{off, pink, pink, pink, off},
		{off, pink, off, pink, off},
		{off, pink, pink, pink, off},
		{off, pink, off, off, off},
		{off, pink, pink, pink, off},
	},
	{ // 7
		{off, off, aqua, off, off},
		{off, off, aqua, off, off},
		{off, off, aqua, off, off},
		{off, off, off, aqua, off},
		{off, aqua, aqua, aqua, off},
	},
	{ // 8
		{off, green, green, green, off},
		{off, green, off, green, off},
		{off, green, green, green, off},
		{off, green, off, green, off},
		{off, green, green, green, off},
	},
	{ // 9
		{off, blue, blue, blue, off},
		{off, off, off, blue, off},
		{off, blue, blue, blue, off},
		{off, blue, off, blue, off},
		{off, blue, blue, blue, off},
	},
}

// GlyphFor returns a copy of the glyph for digit d.
// ok is false when d is not a single decimal digit.
func GlyphFor(d int) (g Glyph, ok bool) {
	if d < 0 || d >= NumGlyphs {
		return Glyph{}, false
	}
	return glyphs[d], true
}
