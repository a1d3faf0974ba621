package core

// Matrix geometry
const (
	Rows      = 5
	Cols      = 5
	NumPixels = Rows * Cols

	// BytesPerPixel is the number of channels sent per LED (G, R, B)
	BytesPerPixel = 3

	// FrameSize is the number of bytes a full buffer puts on the wire
	FrameSize = NumPixels * BytesPerPixel
)

// Pixel is one LED's color, stored in the order the WS2812 expects it on the wire
type Pixel struct {
	G uint8
	R uint8
	B uint8
}

// RGB builds a Pixel from channels given in red, green, blue order
func RGB(r, g, b uint8) Pixel {
	return Pixel{G: g, R: r, B: b}
}

// IsOff reports whether all channels are zero
func (p Pixel) IsOff() bool {
	return p.G == 0 && p.R == 0 && p.B == 0
}

// PixelIndex returns the buffer position of (row, col).
// Rows run top to bottom, columns left to right.
func PixelIndex(row, col int) int {
	return row*Cols + col
}

// PixelBuffer holds one frame for the matrix
type PixelBuffer struct {
	pixels [NumPixels]Pixel
}

// Set stores p at index i. Out of range indexes are ignored.
func (b *PixelBuffer) Set(i int, p Pixel) {
	if i < 0 || i >= NumPixels {
		return
	}
	b.pixels[i] = p
}

// SetAt stores p at (row, col)
func (b *PixelBuffer) SetAt(row, col int, p Pixel) {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return
	}
	b.pixels[PixelIndex(row, col)] = p
}

// Get returns the pixel at index i, or an off pixel if i is out of range
func (b *PixelBuffer) Get(i int) Pixel {
	if i < 0 || i >= NumPixels {
		return Pixel{}
	}
	return b.pixels[i]
}

// Clear turns every pixel off
func (b *PixelBuffer) Clear() {
	for i := range b.pixels {
		b.pixels[i] = Pixel{}
	}
}

// IsOff reports whether every pixel is off
func (b *PixelBuffer) IsOff() bool {
	for _, p := range b.pixels {
		if !p.IsOff() {
			return false
		}
	}
	return true
}

// Bytes appends the wire encoding of the buffer to dst and returns it.
// Each pixel contributes G, R, B in index order.
func (b *PixelBuffer) Bytes(dst []byte) []byte {
	for _, p := range b.pixels {
		dst = append(dst, p.G, p.R, p.B)
	}
	return dst
}
