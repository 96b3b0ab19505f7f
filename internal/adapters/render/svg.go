package render

import (
	"bufio"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/okian/courtzones/internal/domain/hexbin"
	"github.com/okian/courtzones/internal/domain/model"
	"github.com/okian/courtzones/pkg/metrics"
)

// Layout constants in pixels.
const (
	margin      = 20
	titleBand   = 44
	legendBand  = 56
	tableRow    = 16
	tableGap    = 12
	legendSteps = 10
)

const (
	lineStyle   = "fill:none;stroke:#1a1a1a;stroke-width:2"
	dashedStyle = "fill:none;stroke:#1a1a1a;stroke-width:2;stroke-dasharray:8,6"
	cellStyle   = "stroke:#1a1a1a;stroke-width:0.5;fill:"
	madeColor   = "#007A33"
	missColor   = "#C80A18"
	dotRadius   = 3.0
	textStyle   = "font-family:Helvetica,Arial,sans-serif;fill:#1a1a1a"
)

// Renderer draws charts as SVG documents.
type Renderer struct {
	width, height int
	court         Court
	palette       Palette
	background    string
	table         bool
	mode          Mode
	misses        bool
}

// New returns a Renderer with a 720x960 canvas, NBA court and the default
// palette.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		width:      720,
		height:     960,
		court:      DefaultCourt(),
		palette:    DefaultPalette(),
		background: "#d9d9d9",
		table:      true,
		mode:       ModeHex,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// frame maps court coordinates to pixels. Half court is at the bottom, as
// seen from behind the basket.
type frame struct {
	court      Court
	scale      float64
	left, top  float64
	pxW, pxH   int
	pxX0, pxY0 int
}

func (f *frame) x(v float64) int { return int(math.Round(f.left + (v+f.court.SidelineX)*f.scale)) }
func (f *frame) y(v float64) int { return int(math.Round(f.top + (v-f.court.BaselineY)*f.scale)) }
func (f *frame) d(v float64) int { return int(math.Round(v * f.scale)) }

func (r *Renderer) layout(rows int) *frame {
	tableH := 0
	if r.table && rows > 0 {
		tableH = (rows+1)*tableRow + tableGap
	}
	availW := float64(r.width - 2*margin)
	availH := float64(r.height - titleBand - legendBand - tableH - margin)
	scale := math.Min(availW/r.court.Width(), availH/r.court.Height())
	if scale <= 0 {
		scale = 0.1
	}
	f := &frame{court: r.court, scale: scale}
	f.pxW = int(math.Round(r.court.Width() * scale))
	f.pxH = int(math.Round(r.court.Height() * scale))
	f.left = float64(r.width-f.pxW) / 2
	f.top = titleBand
	f.pxX0, f.pxY0 = int(math.Round(f.left)), titleBand
	return f
}

// SVG writes chart as a standalone SVG document.
func (r *Renderer) SVG(w io.Writer, chart *model.Chart) error {
	bw := bufio.NewWriter(w)
	canvas := svg.New(bw)
	f := r.layout(len(chart.Summary))

	canvas.Start(r.width, r.height)
	canvas.Title(chart.Title)
	canvas.Rect(0, 0, r.width, r.height, "fill:"+r.background)

	canvas.Def()
	canvas.ClipPath(`id="court"`)
	canvas.Rect(f.pxX0, f.pxY0, f.pxW, f.pxH)
	canvas.ClipEnd()
	canvas.DefEnd()

	canvas.Gstyle(textStyle)
	canvas.Text(r.width/2, titleBand-14, chart.Title, "text-anchor:middle;font-size:18px")
	canvas.Gend()

	canvas.Group(`clip-path="url(#court)"`)
	if r.mode == ModeScatter {
		r.dots(canvas, f, chart)
	} else {
		r.cells(canvas, f, chart)
	}
	canvas.Gend()
	r.drawCourt(canvas, f)

	legendTop := f.pxY0 + f.pxH + 14
	if r.mode == ModeScatter {
		r.dotLegend(canvas, legendTop)
	} else {
		r.legend(canvas, legendTop, chart.ClampLimit)
	}
	if r.table && len(chart.Summary) > 0 {
		r.summary(canvas, legendTop+legendBand, chart.Summary)
	}
	if chart.Empty() {
		canvas.Text(r.width/2, f.pxY0+f.pxH/2, "no zones in common with the baseline",
			"text-anchor:middle;font-size:16px;"+textStyle)
	}
	canvas.End()

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	metrics.RecordChartRendered("svg")
	return nil
}

func (r *Renderer) cells(canvas *svg.SVG, f *frame, chart *model.Chart) {
	radius := chart.Grid.Radius
	for i := range chart.Cells {
		c := &chart.Cells[i]
		verts := hexbin.HexVertices(c.CenterX, c.CenterY, radius, c.SizeScale)
		xs, ys := make([]int, len(verts)), make([]int, len(verts))
		for k, v := range verts {
			xs[k], ys[k] = f.x(v.X), f.y(v.Y)
		}
		canvas.Polygon(xs, ys, cellStyle+r.palette.Color(c.ColorValue, chart.ClampLimit))
	}
}

// dots draws made shots, then misses when enabled, one circle each.
func (r *Renderer) dots(canvas *svg.SVG, f *frame, chart *model.Chart) {
	rad := max(1, f.d(dotRadius))
	canvas.Gstyle("stroke:none")
	for i := range chart.Shots {
		s := &chart.Shots[i].Shot
		switch {
		case s.Made:
			canvas.Circle(f.x(s.X), f.y(s.Y), rad, `class="shot made"`, "fill:"+madeColor)
		case r.misses:
			canvas.Circle(f.x(s.X), f.y(s.Y), rad, `class="shot missed"`, "fill:"+missColor)
		}
	}
	canvas.Gend()
}

func (r *Renderer) dotLegend(canvas *svg.SVG, top int) {
	keys := []struct{ label, color string }{{"Made", madeColor}}
	if r.misses {
		keys = append(keys, struct{ label, color string }{"Missed", missColor})
	}
	x := r.width/2 - 50*(len(keys)-1)
	canvas.Gstyle(textStyle + ";font-size:12px")
	for _, k := range keys {
		canvas.Circle(x-20, top+8, 5, "fill:"+k.color)
		canvas.Text(x-10, top+12, k.label)
		x += 100
	}
	canvas.Gend()
}

func (r *Renderer) drawCourt(canvas *svg.SVG, f *frame) {
	c := &f.court
	canvas.Gstyle(lineStyle)

	canvas.Rect(f.x(-c.SidelineX), f.y(c.BaselineY), f.d(c.Width()), f.d(c.Height()))
	canvas.Circle(f.x(0), f.y(0), f.d(c.HoopRadius))
	canvas.Line(f.x(-c.BackboardHalf), f.y(c.BackboardY), f.x(c.BackboardHalf), f.y(c.BackboardY))

	paintH := f.d(c.FreeThrowY - c.BaselineY)
	canvas.Rect(f.x(-c.PaintOuterHalf), f.y(c.BaselineY), f.d(2*c.PaintOuterHalf), paintH)
	canvas.Rect(f.x(-c.PaintInnerHalf), f.y(c.BaselineY), f.d(2*c.PaintInnerHalf), paintH)

	// Arcs bulging towards half court sweep counter-clockwise on screen.
	ft := f.d(c.FreeThrowRadius)
	canvas.Arc(f.x(-c.FreeThrowRadius), f.y(c.FreeThrowY), ft, ft, 0, false, false,
		f.x(c.FreeThrowRadius), f.y(c.FreeThrowY))
	canvas.Arc(f.x(-c.FreeThrowRadius), f.y(c.FreeThrowY), ft, ft, 0, false, true,
		f.x(c.FreeThrowRadius), f.y(c.FreeThrowY), dashedStyle)

	ra := f.d(c.RestrictedRadius)
	canvas.Arc(f.x(-c.RestrictedRadius), f.y(0), ra, ra, 0, false, false, f.x(c.RestrictedRadius), f.y(0))

	canvas.Line(f.x(-c.CornerThreeX), f.y(c.BaselineY), f.x(-c.CornerThreeX), f.y(c.CornerThreeTop))
	canvas.Line(f.x(c.CornerThreeX), f.y(c.BaselineY), f.x(c.CornerThreeX), f.y(c.CornerThreeTop))

	// The arc meets the corner lines where its x equals the corner x.
	tr := f.d(c.ThreeRadius)
	ay := math.Sqrt(math.Max(c.ThreeRadius*c.ThreeRadius-c.CornerThreeX*c.CornerThreeX, 0))
	canvas.Arc(f.x(-c.CornerThreeX), f.y(ay), tr, tr, 0, false, false, f.x(c.CornerThreeX), f.y(ay))

	co, ci := f.d(c.CenterOuterRadius), f.d(c.CenterInnerRadius)
	canvas.Arc(f.x(-c.CenterOuterRadius), f.y(c.HalfCourtY), co, co, 0, false, true,
		f.x(c.CenterOuterRadius), f.y(c.HalfCourtY))
	canvas.Arc(f.x(-c.CenterInnerRadius), f.y(c.HalfCourtY), ci, ci, 0, false, true,
		f.x(c.CenterInnerRadius), f.y(c.HalfCourtY))

	canvas.Gend()
}

func (r *Renderer) legend(canvas *svg.SVG, top int, limit float64) {
	n := len(r.palette)
	if n == 0 {
		return
	}
	barW := (r.width - 2*margin) / 2
	stepW := barW / n
	x0 := (r.width - stepW*n) / 2
	for i, color := range r.palette {
		canvas.Rect(x0+i*stepW, top, stepW, 14, "stroke:#1a1a1a;stroke-width:0.5;fill:"+color)
	}

	canvas.Gstyle(textStyle + ";font-size:12px")
	canvas.Text(x0, top+30, signedPct(-limit), "text-anchor:middle")
	canvas.Text(x0+stepW*n/2, top+30, "0", "text-anchor:middle")
	canvas.Text(x0+stepW*n, top+30, signedPct(limit), "text-anchor:middle")
	canvas.Text(r.width/2, top+44, "FG% relative to league average", "text-anchor:middle;font-size:11px")
	canvas.Gend()
}

func (r *Renderer) summary(canvas *svg.SVG, top int, rows []model.ZoneSummary) {
	cols := []int{margin, r.width - 4*96 - margin, r.width - 3*96 - margin, r.width - 2*96 - margin, r.width - 96 - margin}
	canvas.Gstyle(textStyle + ";font-size:12px")
	head := []string{"Zone", "FGM/FGA", "FG%", "League", "Diff"}
	limit := maxAbs(rows)
	for i, h := range head {
		canvas.Text(cols[i], top, h, "font-weight:bold")
	}
	for n := range rows {
		s := &rows[n]
		y := top + (n+1)*tableRow
		canvas.Text(cols[0], y, s.Zone.Display())
		canvas.Text(cols[1], y, fmt.Sprintf("%d/%d", s.SubjectMakes, s.SubjectAttempts))
		canvas.Text(cols[2], y, pct(s.SubjectPct))
		canvas.Text(cols[3], y, pct(s.BaselinePct))
		canvas.Text(cols[4], y, signedPct(s.Differential), "fill:"+r.palette.Color(s.Differential, limit))
	}
	canvas.Gend()
}

func maxAbs(rows []model.ZoneSummary) float64 {
	m := 0.0
	for i := range rows {
		m = math.Max(m, math.Abs(rows[i].Differential))
	}
	return m
}

func pct(v float64) string { return fmt.Sprintf("%.1f%%", v*100) }

func signedPct(v float64) string { return fmt.Sprintf("%+.1f%%", v*100) }
