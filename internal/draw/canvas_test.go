package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvasScaling(t *testing.T) {
	c := NewScaledCanvas(100, 50, 1000, 1000)
	c.SetFloat(500, 500)
	assert.True(t, c.Pixel(50, 50))

	col, row := c.LogicalToTerminal(500, 500)
	assert.Equal(t, 51, col)
	assert.Equal(t, 26, row)
}

func TestCanvasDrawCircle(t *testing.T) {
	c := NewScaledCanvas(100, 50, 100, 100)
	c.DrawCircle(50, 50, 20, false)
	assert.True(t, c.Pixel(70, 50))
	assert.True(t, c.Pixel(30, 50))
	assert.True(t, c.Pixel(50, 30))
	assert.True(t, c.Pixel(50, 70))
	assert.False(t, c.Pixel(50, 50), "outline only")
}

func TestCanvasDashedLine(t *testing.T) {
	c := NewScaledCanvas(20, 10, 20, 20)
	c.DrawDashedLine(Point{X: 0, Y: 5}, Point{X: 9, Y: 5}, 2, 2)
	got := ""
	for x := 0; x < 10; x++ {
		if c.Pixel(x, 5) {
			got += "#"
		} else {
			got += "."
		}
	}
	assert.Equal(t, "##..##..##", got)
}

func TestCanvasRenderOnlyChanges(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.SetFloat(0, 0)

	var first bytes.Buffer
	c.Render(&first)
	require.Contains(t, first.String(), string(BlockUpperHalf))
	assert.Equal(t, 8, strings.Count(first.String(), "\033["), "first frame paints every cell")

	var second bytes.Buffer
	c.Render(&second)
	assert.Empty(t, second.String())

	c.Clear()
	var third bytes.Buffer
	c.Render(&third)
	assert.Equal(t, 1, strings.Count(third.String(), "\033["))

	c.Invalidate(2, 1, 2)
	var fourth bytes.Buffer
	c.Render(&fourth)
	assert.Equal(t, 2, strings.Count(fourth.String(), "\033["))

	c.ForceRedraw()
	var fifth bytes.Buffer
	c.Render(&fifth)
	assert.Equal(t, 8, strings.Count(fifth.String(), "\033["))
}

func TestFitRenderArea(t *testing.T) {
	w, h, col, row := FitRenderArea(200, 50, 2, 1000, 1000)
	assert.Equal(t, 96, w)
	assert.Equal(t, 48, h)
	assert.Equal(t, 52, col)
	assert.Equal(t, 2, row)

	w, h, col, row = FitRenderArea(80, 100, 0, 1000, 1000)
	assert.Equal(t, 80, w)
	assert.Equal(t, 40, h)
	assert.Equal(t, 0, col)
	assert.Equal(t, 30, row)
}

func TestChunkWriterOffsets(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 3, 2)
	cw.WriteAt(1, 1, "hi")
	require.NoError(t, cw.Flush())
	assert.Equal(t, "\033[3;4Hhi", out.String())
}
