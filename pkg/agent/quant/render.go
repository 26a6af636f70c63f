package quant

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
)

// maxRenderAttempts bounds the retry loop for a single chart render.
const maxRenderAttempts = 3

const (
	chartWidth  = 640
	chartHeight = 400
	margin      = 40
)

var palette = []color.RGBA{
	{66, 133, 244, 255},
	{219, 68, 55, 255},
	{244, 180, 0, 255},
	{15, 157, 88, 255},
	{171, 71, 188, 255},
	{0, 172, 193, 255},
}

// renderWithRetry renders, making at most maxRenderAttempts attempts in
// total and returning the last error if all of them fail.
// Rendering here is pure deterministic drawing and does not fail under
// normal conditions; the retry loop guards against a future render backend
// that can legitimately error.
func renderWithRetry(chartType ChartType, categories []string, values []float64) (string, error) {
	var lastErr error
	for attempt := 0; attempt < maxRenderAttempts; attempt++ {
		b64, err := Render(chartType, categories, values)
		if err == nil {
			return b64, nil
		}
		lastErr = err
	}
	return "", lastErr
}

// Render draws a bar, line, or pie chart for (categories, values) onto an
// RGBA canvas and returns it as a base64-encoded PNG.
func Render(chartType ChartType, categories []string, values []float64) (string, error) {
	img := image.NewRGBA(image.Rect(0, 0, chartWidth, chartHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	switch chartType {
	case ChartBar:
		drawBars(img, values)
	case ChartLine:
		drawLine(img, values)
	case ChartPie:
		drawPie(img, values)
	default:
		return "", fmt.Errorf("unsupported chart type for rendering: %s", chartType)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode chart png: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func maxOf(values []float64) float64 {
	max := 0.0
	for _, v := range values {
		if math.Abs(v) > max {
			max = math.Abs(v)
		}
	}
	if max == 0 {
		max = 1
	}
	return max
}

func drawBars(img *image.RGBA, values []float64) {
	if len(values) == 0 {
		return
	}
	max := maxOf(values)
	plotHeight := chartHeight - 2*margin
	plotWidth := chartWidth - 2*margin
	barWidth := plotWidth / len(values)

	for i, v := range values {
		barHeight := int(float64(plotHeight) * (v / max))
		if barHeight < 0 {
			barHeight = 0
		}
		x0 := margin + i*barWidth + 4
		x1 := margin + (i+1)*barWidth - 4
		y1 := chartHeight - margin
		y0 := y1 - barHeight
		fillRect(img, x0, y0, x1, y1, palette[i%len(palette)])
	}
}

func drawLine(img *image.RGBA, values []float64) {
	if len(values) < 2 {
		if len(values) == 1 {
			fillRect(img, margin, chartHeight/2-2, chartWidth-margin, chartHeight/2+2, palette[0])
		}
		return
	}
	max := maxOf(values)
	plotHeight := chartHeight - 2*margin
	plotWidth := chartWidth - 2*margin
	step := float64(plotWidth) / float64(len(values)-1)

	for i := 0; i < len(values)-1; i++ {
		x0 := margin + int(float64(i)*step)
		x1 := margin + int(float64(i+1)*step)
		y0 := chartHeight - margin - int(float64(plotHeight)*(values[i]/max))
		y1 := chartHeight - margin - int(float64(plotHeight)*(values[i+1]/max))
		drawSegment(img, x0, y0, x1, y1, palette[0])
	}
}

func drawPie(img *image.RGBA, values []float64) {
	var total float64
	for _, v := range values {
		total += v
	}
	if total <= 0 {
		return
	}

	cx, cy := chartWidth/2, chartHeight/2
	radius := float64(chartHeight-2*margin) / 2

	var cumulative float64
	for i, v := range values {
		startAngle := 2 * math.Pi * cumulative / total
		cumulative += v
		endAngle := 2 * math.Pi * cumulative / total
		fillArc(img, cx, cy, radius, startAngle, endAngle, palette[i%len(palette)])
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	draw.Draw(img, image.Rect(x0, y0, x1, y1), image.NewUniform(c), image.Point{}, draw.Src)
}

func drawSegment(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := math.Abs(float64(x1 - x0))
	dy := -math.Abs(float64(y1 - y0))
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if x0 >= 0 && x0 < chartWidth && y0 >= 0 && y0 < chartHeight {
			img.SetRGBA(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func fillArc(img *image.RGBA, cx, cy int, radius, startAngle, endAngle float64, c color.RGBA) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dx := float64(x - cx)
			dy := float64(y - cy)
			dist := math.Hypot(dx, dy)
			if dist > radius {
				continue
			}
			angle := math.Atan2(dy, dx)
			if angle < 0 {
				angle += 2 * math.Pi
			}
			if angle >= startAngle && angle < endAngle {
				img.SetRGBA(x, y, c)
			}
		}
	}
}
