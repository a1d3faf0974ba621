package core

// Renderer draws digits into the pixel buffer and pushes them to the bus
type Renderer struct {
	buf    PixelBuffer
	bus    PixelBus
	writes uint32
}

// NewRenderer creates a renderer that owns its buffer and writes to bus
func NewRenderer(bus PixelBus) *Renderer {
	return &Renderer{bus: bus}
}

// Render shows digit d on the matrix. A value outside 0-9 blanks the
// display instead of failing. The buffer always goes out in one bus write.
func (r *Renderer) Render(d int) error {
	r.buf.Clear()

	if g, ok := GlyphFor(d); ok {
		for row := 0; row < Rows; row++ {
			for col := 0; col < Cols; col++ {
				r.buf.SetAt(row, col, g[row][col].Pixel())
			}
		}
	} else {
		RecordEvent(EvtBlank, 0, int32(d))
	}

	r.writes++
	return r.bus.Write(&r.buf)
}

// Blank turns the whole matrix off
func (r *Renderer) Blank() error {
	r.buf.Clear()
	r.writes++
	return r.bus.Write(&r.buf)
}

// Buffer returns the frame last handed to the bus
func (r *Renderer) Buffer() *PixelBuffer {
	return &r.buf
}

// Writes returns the number of bus writes issued
func (r *Renderer) Writes() uint32 {
	return r.writes
}
