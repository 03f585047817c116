package describing

import (
	"math"
	"sort"

	"github.com/churninsights/churn-insights-api/internal/domain"
)

const (
	histogramBins = 30
	whiskerIQR    = 1.5
)

// nonNull devolve os valores numéricos presentes da coluna, na ordem das linhas
func nonNull(c *domain.Column) []float64 {
	out := make([]float64, 0, len(c.Numbers))
	for _, v := range c.Numbers {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStd usa ddof=1; com menos de dois valores devolve 0
func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}

func sortedCopy(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)
	return out
}

// quantile com interpolação linear entre os vizinhos, sobre valores já ordenados
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

func summarizeNumeric(values []float64) *domain.NumericSummary {
	sorted := sortedCopy(values)
	return &domain.NumericSummary{
		Count:  len(values),
		Mean:   mean(values),
		Median: quantile(sorted, 0.5),
		Std:    sampleStd(values),
	}
}

// histogramEdges gera bins de largura igual; um intervalo degenerado vira [v-0.5, v+0.5]
func histogramEdges(values []float64, bins int) []float64 {
	if len(values) == 0 {
		return nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	edges := make([]float64, bins+1)
	width := (hi - lo) / float64(bins)
	for i := range edges {
		edges[i] = lo + width*float64(i)
	}
	edges[bins] = hi

	return edges
}

// histogram conta os valores por bin; todos os bins são [a, b) exceto o último, que é fechado
func histogram(label string, values, edges []float64) domain.Histogram {
	h := domain.Histogram{Label: label, Bins: make([]domain.HistogramBin, 0, len(edges))}
	if len(edges) < 2 {
		return h
	}

	bins := len(edges) - 1
	for i := 0; i < bins; i++ {
		h.Bins = append(h.Bins, domain.HistogramBin{Lower: edges[i], Upper: edges[i+1]})
	}

	for _, v := range values {
		if v < edges[0] || v > edges[bins] {
			continue
		}
		idx := sort.Search(bins, func(i int) bool { return edges[i+1] > v })
		if idx == bins {
			idx = bins - 1
		}
		h.Bins[idx].Count++
	}

	return h
}

// boxSummary segue o boxplot de Tukey: bigodes no valor mais distante dentro de 1.5 IQR
func boxSummary(label string, values []float64) domain.BoxSummary {
	box := domain.BoxSummary{Label: label, Count: len(values), Outliers: []float64{}}
	if len(values) == 0 {
		return box
	}

	sorted := sortedCopy(values)
	box.Min = sorted[0]
	box.Max = sorted[len(sorted)-1]
	box.Q1 = quantile(sorted, 0.25)
	box.Median = quantile(sorted, 0.5)
	box.Q3 = quantile(sorted, 0.75)

	iqr := box.Q3 - box.Q1
	lowerFence := box.Q1 - whiskerIQR*iqr
	upperFence := box.Q3 + whiskerIQR*iqr

	box.LowerWhisker = box.Max
	box.UpperWhisker = box.Min
	for _, v := range sorted {
		if v < lowerFence || v > upperFence {
			box.Outliers = append(box.Outliers, v)
			continue
		}
		box.LowerWhisker = math.Min(box.LowerWhisker, v)
		box.UpperWhisker = math.Max(box.UpperWhisker, v)
	}

	return box
}

// frequencies conta os valores não nulos em ordem decrescente; empates ficam na ordem de aparição
func frequencies(values []string) []domain.CategoryCount {
	index := make(map[string]int)
	counts := make([]domain.CategoryCount, 0)
	for _, v := range values {
		if v == "" {
			continue
		}
		i, ok := index[v]
		if !ok {
			i = len(counts)
			index[v] = i
			counts = append(counts, domain.CategoryCount{Value: v})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	return counts
}

func summarizeCategorical(values []string, totalRows int) *domain.CategoricalSummary {
	counts := frequencies(values)
	summary := &domain.CategoricalSummary{
		Unique:     len(counts),
		TotalCount: totalRows,
	}
	if len(counts) > 0 {
		summary.MostCommon = counts[0].Value
	}
	return summary
}
