package pdf

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Borderless table detection on positioned page text. Glyphs are grouped into
// lines by baseline, lines into cell chunks by horizontal gaps, columns are the
// merged spans of chunks on multi-cell lines and tables are split on large
// vertical gaps.

const (
	defaultFontSize = 10.0
	lineTolerance   = 0.5 // baseline distance, in font sizes, still on the same line
	cellGap         = 1.0 // horizontal gap, in font sizes, still inside one cell
	wordGap         = 0.15
	tableGap        = 3.0 // vertical gap, in median line spacings, that starts a new table
	columnSlack     = 1.0 // points tolerated between chunk spans of one column
)

// glyph is a piece of positioned text, Y grows upwards as in PDF user space
type glyph struct {
	X, Y, W  float64
	FontSize float64
	S        string
}

type chunk struct {
	x0, x1 float64
	text   string
}

type line struct {
	y      float64
	chunks []chunk
}

type interval struct {
	x0, x1 float64
}

// detectTables turns the glyphs of a page into grids of cell texts, top table first
func detectTables(glyphs []glyph) [][][]string {
	lines := groupLines(glyphs)
	if len(lines) == 0 {
		return nil
	}

	var grids [][][]string
	for _, block := range splitTables(lines) {
		columns := columnIntervals(block)
		if len(columns) == 0 {
			continue
		}
		grids = append(grids, buildGrid(block, columns))
	}
	return grids
}

// linesText joins the chunks of every line, used for keyword matching
func linesText(lines []line) string {
	var b strings.Builder
	for _, l := range lines {
		for i, c := range l.chunks {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(c.text)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func fontSize(g glyph) float64 {
	if g.FontSize <= 0 {
		return defaultFontSize
	}
	return g.FontSize
}

func glyphEnd(g glyph) float64 {
	w := g.W
	if w <= 0 {
		w = 0.5 * fontSize(g) * float64(len([]rune(g.S)))
	}
	return g.X + w
}

func isBlank(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}

// groupLines clusters glyphs by baseline, top of the page first
func groupLines(glyphs []glyph) []line {
	sorted := make([]glyph, 0, len(glyphs))
	for _, g := range glyphs {
		if g.S != "" {
			sorted = append(sorted, g)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var groups [][]glyph
	var baseline float64
	for _, g := range sorted {
		n := len(groups)
		if n > 0 && math.Abs(g.Y-baseline) <= lineTolerance*fontSize(g) {
			groups[n-1] = append(groups[n-1], g)
			continue
		}
		groups = append(groups, []glyph{g})
		baseline = g.Y
	}

	lines := make([]line, 0, len(groups))
	for _, group := range groups {
		chunks := splitChunks(group)
		if len(chunks) == 0 {
			continue
		}
		lines = append(lines, line{y: group[0].Y, chunks: chunks})
	}
	return lines
}

// splitChunks joins the glyphs of one line into cell chunks
func splitChunks(glyphs []glyph) []chunk {
	sort.SliceStable(glyphs, func(i, j int) bool { return glyphs[i].X < glyphs[j].X })

	var chunks []chunk
	var current *chunk
	var text strings.Builder
	pendingSpace := false

	flush := func() {
		if current != nil {
			current.text = strings.TrimSpace(text.String())
			if current.text != "" {
				chunks = append(chunks, *current)
			}
		}
		current = nil
		text.Reset()
	}

	for _, g := range glyphs {
		if isBlank(g.S) {
			pendingSpace = current != nil
			continue
		}
		size := fontSize(g)
		if current != nil {
			gap := g.X - current.x1
			if gap > cellGap*size {
				flush()
			} else if pendingSpace || gap > wordGap*size {
				text.WriteByte(' ')
			}
		}
		if current == nil {
			current = &chunk{x0: g.X, x1: glyphEnd(g)}
		}
		text.WriteString(g.S)
		current.x1 = math.Max(current.x1, glyphEnd(g))
		pendingSpace = false
	}
	flush()
	return chunks
}

// splitTables cuts the line list wherever the vertical gap is much larger than usual
func splitTables(lines []line) [][]line {
	if len(lines) < 3 {
		return [][]line{lines}
	}

	gaps := make([]float64, 0, len(lines)-1)
	for i := 1; i < len(lines); i++ {
		gaps = append(gaps, lines[i-1].y-lines[i].y)
	}
	sortedGaps := append([]float64(nil), gaps...)
	sort.Float64s(sortedGaps)
	median := sortedGaps[len(sortedGaps)/2]
	if median <= 0 {
		return [][]line{lines}
	}

	var blocks [][]line
	start := 0
	for i, gap := range gaps {
		if gap > tableGap*median {
			blocks = append(blocks, lines[start:i+1])
			start = i + 1
		}
	}
	return append(blocks, lines[start:])
}

// columnIntervals merges the chunk spans of lines holding several cells.
// Lines with a single chunk only define columns when no line has more.
func columnIntervals(lines []line) []interval {
	var spans []interval
	for _, l := range lines {
		if len(l.chunks) < 2 {
			continue
		}
		for _, c := range l.chunks {
			spans = append(spans, interval{c.x0, c.x1})
		}
	}
	if len(spans) == 0 {
		for _, l := range lines {
			for _, c := range l.chunks {
				spans = append(spans, interval{c.x0, c.x1})
			}
		}
	}
	if len(spans) == 0 {
		return nil
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].x0 < spans[j].x0 })
	merged := []interval{spans[0]}
	for _, span := range spans[1:] {
		last := &merged[len(merged)-1]
		if span.x0 <= last.x1+columnSlack {
			last.x1 = math.Max(last.x1, span.x1)
			continue
		}
		merged = append(merged, span)
	}
	return merged
}

// columnFor returns the column overlapping c the most, or the nearest one
func columnFor(c chunk, columns []interval) int {
	best, bestOverlap := -1, 0.0
	for i, col := range columns {
		overlap := math.Min(c.x1, col.x1) - math.Max(c.x0, col.x0)
		if overlap > bestOverlap {
			best, bestOverlap = i, overlap
		}
	}
	if best >= 0 {
		return best
	}

	nearest, distance := 0, math.Inf(1)
	center := (c.x0 + c.x1) / 2
	for i, col := range columns {
		d := math.Min(math.Abs(center-col.x0), math.Abs(center-col.x1))
		if d < distance {
			nearest, distance = i, d
		}
	}
	return nearest
}

func buildGrid(lines []line, columns []interval) [][]string {
	grid := make([][]string, 0, len(lines))
	for _, l := range lines {
		row := make([]string, len(columns))
		for _, c := range l.chunks {
			col := columnFor(c, columns)
			if row[col] != "" {
				row[col] += " " + c.text
			} else {
				row[col] = c.text
			}
		}
		grid = append(grid, row)
	}
	return grid
}
