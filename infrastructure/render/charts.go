package render

import (
	"fmt"
	"io"
	"math"

	"github.com/pkg/errors"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/churninsights/churn-insights-api/internal/domain"
)

const (
	chartWidth  = 1024
	chartHeight = 600
)

var ErrNoData = errors.New("nothing to plot")

var (
	colorIncrease = drawing.ColorFromHex("d62728")
	colorDecrease = drawing.ColorFromHex("2ca02c")

	// cores por rótulo de churn, na ordem alfabética dos rótulos
	labelPalette = []drawing.Color{
		drawing.ColorFromHex("ef553b"),
		drawing.ColorFromHex("636efa"),
		drawing.ColorFromHex("00cc96"),
		drawing.ColorFromHex("ab63fa"),
	}
)

func paletteColor(i int) drawing.Color {
	return labelPalette[i%len(labelPalette)]
}

func background() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}}
}

// AttributionChart desenha as atribuições selecionadas: vermelho aumenta o churn, verde diminui
func AttributionChart(w io.Writer, attributions []domain.FeatureAttribution) error {
	if len(attributions) == 0 {
		return ErrNoData
	}

	bars := make([]chart.Value, 0, len(attributions))
	lo, hi := 0.0, 0.0
	for _, a := range attributions {
		fill := colorDecrease
		if a.Direction == domain.IncreasesChurn {
			fill = colorIncrease
		}
		bars = append(bars, chart.Value{
			Label: a.Feature,
			Value: a.AttributionValue,
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		})
		lo = math.Min(lo, a.AttributionValue)
		hi = math.Max(hi, a.AttributionValue)
	}

	graph := chart.BarChart{
		Title:        "SHAP Value Impact",
		Background:   background(),
		Width:        chartWidth,
		Height:       chartHeight,
		BarWidth:     40,
		UseBaseValue: true,
		BaseValue:    0,
		XAxis:        chart.Style{TextRotationDegrees: 45},
		YAxis:        chart.YAxis{Range: paddedRange(lo, hi)},
		Bars:         bars,
	}

	return errors.Wrap(graph.Render(chart.PNG, w), "render attribution chart")
}

// FeatureChart escolhe o gráfico conforme o tipo da coluna e da análise
func FeatureChart(w io.Writer, analysis *domain.FeatureAnalysis) error {
	switch {
	case len(analysis.Histograms) > 0:
		return histogramChart(w, analysis)
	case analysis.CrossTab != nil || len(analysis.GroupedFrequencies) > 0:
		return groupedChart(w, analysis)
	case len(analysis.Frequencies) > 0:
		return frequencyChart(w, analysis)
	default:
		return ErrNoData
	}
}

// histogramChart desenha um degrau por histograma; na análise bivariada os bins são compartilhados
func histogramChart(w io.Writer, analysis *domain.FeatureAnalysis) error {
	series := make([]chart.Series, 0, len(analysis.Histograms))
	maxCount := 0

	for i, h := range analysis.Histograms {
		if len(h.Bins) == 0 {
			continue
		}
		xs := make([]float64, 0, len(h.Bins)*2)
		ys := make([]float64, 0, len(h.Bins)*2)
		for _, b := range h.Bins {
			xs = append(xs, b.Lower, b.Upper)
			ys = append(ys, float64(b.Count), float64(b.Count))
			if b.Count > maxCount {
				maxCount = b.Count
			}
		}

		name := h.Label
		if name == "" {
			name = analysis.Feature
		}
		col := paletteColor(i)
		series = append(series, chart.ContinuousSeries{
			Name:    name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: col,
				StrokeWidth: 2,
				FillColor:   col.WithAlpha(96),
			},
		})
	}

	if len(series) == 0 {
		return ErrNoData
	}

	graph := chart.Chart{
		Title:      chartTitle(analysis),
		Background: background(),
		Width:      chartWidth,
		Height:     chartHeight,
		XAxis:      chart.XAxis{Name: analysis.Feature},
		YAxis:      chart.YAxis{Name: "count", Range: paddedRange(0, float64(maxCount))},
		Series:     series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return errors.Wrap(graph.Render(chart.PNG, w), "render histogram chart")
}

func frequencyChart(w io.Writer, analysis *domain.FeatureAnalysis) error {
	bars := make([]chart.Value, 0, len(analysis.Frequencies))
	maxCount := 0
	for _, f := range analysis.Frequencies {
		bars = append(bars, chart.Value{
			Label: f.Value,
			Value: float64(f.Count),
			Style: chart.Style{FillColor: paletteColor(1), StrokeColor: paletteColor(1)},
		})
		if f.Count > maxCount {
			maxCount = f.Count
		}
	}

	graph := chart.BarChart{
		Title:      chartTitle(analysis),
		Background: background(),
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   40,
		XAxis:      chart.Style{TextRotationDegrees: 45},
		YAxis:      chart.YAxis{Range: paddedRange(0, float64(maxCount))},
		Bars:       bars,
	}

	return errors.Wrap(graph.Render(chart.PNG, w), "render frequency chart")
}

// groupedChart empilha a contagem de cada rótulo por categoria
func groupedChart(w io.Writer, analysis *domain.FeatureAnalysis) error {
	labels := make([]string, 0)
	labelIndex := make(map[string]int)
	categories := make([]string, 0)
	byCategory := make(map[string]map[string]int)

	for _, g := range analysis.GroupedFrequencies {
		if _, ok := labelIndex[g.Label]; !ok {
			labelIndex[g.Label] = len(labels)
			labels = append(labels, g.Label)
		}
		if _, ok := byCategory[g.Value]; !ok {
			byCategory[g.Value] = make(map[string]int)
			categories = append(categories, g.Value)
		}
		byCategory[g.Value][g.Label] += g.Count
	}

	if len(categories) == 0 {
		return ErrNoData
	}

	bars := make([]chart.StackedBar, 0, len(categories))
	for _, category := range categories {
		values := make([]chart.Value, 0, len(labels))
		for _, l := range labels {
			col := paletteColor(labelIndex[l])
			values = append(values, chart.Value{
				Label: fmt.Sprintf("%s (%d)", l, byCategory[category][l]),
				Value: float64(byCategory[category][l]),
				Style: chart.Style{FillColor: col, StrokeColor: col},
			})
		}
		bars = append(bars, chart.StackedBar{Name: category, Values: values})
	}

	graph := chart.StackedBarChart{
		Title:      chartTitle(analysis),
		Background: background(),
		Width:      chartWidth,
		Height:     chartHeight,
		Bars:       bars,
	}

	return errors.Wrap(graph.Render(chart.PNG, w), "render grouped chart")
}

func chartTitle(analysis *domain.FeatureAnalysis) string {
	if analysis.Analysis == domain.AnalysisBivariate {
		return fmt.Sprintf("%s by Churn", analysis.Feature)
	}
	return fmt.Sprintf("%s Distribution", analysis.Feature)
}

// paddedRange garante um intervalo não degenerado para o eixo Y
func paddedRange(lo, hi float64) *chart.ContinuousRange {
	if hi <= lo {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.1
	min := lo
	if lo < 0 {
		min = lo - pad
	}
	return &chart.ContinuousRange{Min: min, Max: hi + pad}
}
