package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"variance-insight/variance"
)

const (
	cellW     = 84
	cellH     = 38
	topMargin = 58 // titre + entêtes de dates
)

// Palette divergente centrée sur zéro : vert = en avance, jaune = à
// l'heure, rouge = en retard. Les cellules sans données restent grises.
var (
	lateColor   = color.RGBA{0xd7, 0x30, 0x27, 0xff}
	zeroColor   = color.RGBA{0xff, 0xff, 0xbf, 0xff}
	earlyColor  = color.RGBA{0x1a, 0x98, 0x50, 0xff}
	noDataColor = color.RGBA{0xe8, 0xe8, 0xe8, 0xff}
	gridColor   = color.RGBA{0xaa, 0xaa, 0xaa, 0xff}
)

// Heatmap dessine la matrice des delays moyens machine × date.
func Heatmap(spec variance.HeatmapSpec) ([]byte, error) {
	if len(spec.Machines) == 0 || len(spec.Dates) == 0 {
		return nil, errors.New("empty heatmap spec")
	}

	leftMargin := 20
	for _, m := range spec.Machines {
		if w := len(m)*7 + 16; w > leftMargin {
			leftMargin = w
		}
	}
	width := leftMargin + cellW*len(spec.Dates) + 20
	height := topMargin + cellH*len(spec.Machines) + 20

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	maxAbs := 0.0
	for _, row := range spec.Mean {
		for _, v := range row {
			if v != nil && math.Abs(*v) > maxAbs {
				maxAbs = math.Abs(*v)
			}
		}
	}

	drawLabel(img, leftMargin, 18, "Mean Delay (min) by Machine x Date", color.Black)
	for j, d := range spec.Dates {
		drawLabel(img, leftMargin+j*cellW+8, topMargin-8, d, color.Black)
	}

	for i, m := range spec.Machines {
		y := topMargin + i*cellH
		drawLabel(img, 8, y+cellH/2+4, m, color.Black)
		for j := range spec.Dates {
			x := leftMargin + j*cellW
			rect := image.Rect(x, y, x+cellW, y+cellH)
			v := spec.Mean[i][j]
			if v == nil {
				fillRect(img, rect, noDataColor)
			} else {
				fillRect(img, rect, cellColor(*v, maxAbs))
				label := fmt.Sprintf("%.0f", *v)
				drawLabel(img, x+cellW/2-len(label)*7/2, y+cellH/2+4, label, color.Black)
			}
			strokeRect(img, rect, gridColor)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode heatmap: %w", err)
	}
	return buf.Bytes(), nil
}

// cellColor interpole linéairement entre le centre (zéro) et l'extrême
// de la palette selon le signe. maxAbs = 0 donne la couleur centrale.
func cellColor(v, maxAbs float64) color.RGBA {
	if maxAbs == 0 {
		return zeroColor
	}
	t := math.Abs(v) / maxAbs
	if t > 1 {
		t = 1
	}
	end := lateColor
	if v < 0 {
		end = earlyColor
	}
	return color.RGBA{
		R: lerp(zeroColor.R, end.R, t),
		G: lerp(zeroColor.G, end.G, t),
		B: lerp(zeroColor.B, end.B, t),
		A: 0xff,
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func strokeRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

func drawLabel(img *image.RGBA, x, y int, s string, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
