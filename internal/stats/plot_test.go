package stats

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlotSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Test Plot", []Series{
		{Name: "A", Values: []float64{1, 2, 3, 2, 1}},
		{Name: "B", Values: []float64{0, 0, 2, 3, 4}},
		{Name: "empty"},
	}, 10, 3)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Test Plot") {
		t.Fatalf("expected title in output")
	}
	if !strings.Contains(out, "A (max 3.0)") || !strings.Contains(out, "B (max 4.0)") {
		t.Fatalf("expected series headers, got %q", out)
	}
	if strings.Contains(out, "empty") {
		t.Fatalf("expected empty series to be skipped")
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	expected := 1 + 2*(1+3)
	if len(lines) != expected {
		t.Fatalf("expected %d lines of output, got %d", expected, len(lines))
	}
}

func TestPlotSeriesHeaderKeepsPeakBetweenSamples(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "Peak", []Series{{Name: "P", Values: []float64{1, 5, 1}}}, 20, 2); err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if !strings.Contains(buf.String(), "P (max 5.0)") {
		t.Fatalf("expected raw peak in header, got %q", buf.String())
	}
}

func TestBarRowsFillsFromBottom(t *testing.T) {
	rows := barRows([]float64{0, 1}, 0, 1, 2)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0] != " █" || rows[1] != " █" {
		t.Fatalf("unexpected rows: %q", rows)
	}
	half := barRows([]float64{0.5}, 0, 1, 2)
	if half[0] != " " || half[1] != "█" {
		t.Fatalf("unexpected half rows: %q", half)
	}
}

func TestPlotWidthFor(t *testing.T) {
	if got := PlotWidthFor(80); got != 80-axisLabelWidth-3 {
		t.Fatalf("expected width %d, got %d", 80-axisLabelWidth-3, got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
	if got := PlotWidthFor(5); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
}

func TestResampleSeries(t *testing.T) {
	down := resampleSeries([]float64{1, 3, 5, 7}, 2)
	if len(down) != 2 || down[0] != 2 || down[1] != 6 {
		t.Fatalf("unexpected downsample: %v", down)
	}
	up := resampleSeries([]float64{0, 10}, 3)
	if len(up) != 3 || up[1] != 5 {
		t.Fatalf("unexpected upsample: %v", up)
	}
}
