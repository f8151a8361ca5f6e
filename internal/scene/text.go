package scene

import "github.com/tomz197/mergebox/internal/draw"

// Text is a string centred on X at 1-based canvas cell coordinates.
type Text struct {
	X     int
	Y     int
	Value string
}

// Draw queues the text on the writer.
func (t Text) Draw(w *draw.ChunkWriter) {
	if t.Value == "" || w == nil {
		return
	}
	x := t.X - len(t.Value)/2
	if x < 1 {
		x = 1
	}
	y := t.Y
	if y < 1 {
		y = 1
	}
	w.WriteAt(x, y, t.Value)
}
