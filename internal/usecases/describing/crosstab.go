package describing

import (
	"fmt"
	"math"
	"sort"

	"github.com/churninsights/churn-insights-api/internal/domain"
)

// rdYlGnR é a paleta RdYlGn invertida: verde para valores baixos, vermelho para altos
var rdYlGnR = [][3]float64{
	{0x00, 0x68, 0x37},
	{0x1a, 0x98, 0x50},
	{0x66, 0xbd, 0x63},
	{0xa6, 0xd9, 0x6a},
	{0xd9, 0xef, 0x8b},
	{0xff, 0xff, 0xbf},
	{0xfe, 0xe0, 0x8b},
	{0xfd, 0xae, 0x61},
	{0xf4, 0x6d, 0x43},
	{0xd7, 0x30, 0x27},
	{0xa5, 0x00, 0x26},
}

// gradientColor interpola a paleta em t ∈ [0, 1]
func gradientColor(t float64) string {
	t = math.Max(0, math.Min(1, t))
	pos := t * float64(len(rdYlGnR)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)

	var rgb [3]int
	for i := range rgb {
		rgb[i] = int(math.Round(rdYlGnR[lo][i] + (rdYlGnR[hi][i]-rdYlGnR[lo][i])*frac))
	}

	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}

// labelsOf devolve os rótulos não nulos em ordem alfabética
func labelsOf(label *domain.Column) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, v := range label.Values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// numericByLabel agrupa os valores presentes da feature pelo rótulo da linha
func numericByLabel(feature, label *domain.Column) map[string][]float64 {
	groups := make(map[string][]float64)
	for i, v := range feature.Numbers {
		if math.IsNaN(v) || label.Values[i] == "" {
			continue
		}
		groups[label.Values[i]] = append(groups[label.Values[i]], v)
	}
	return groups
}

// groupedCounts conta (categoria, rótulo); categorias seguem a ordem de frequência total
func groupedCounts(feature, label *domain.Column, labels []string) []domain.GroupedCount {
	pairs := make(map[[2]string]int)
	present := make([]string, 0, len(feature.Values))
	for i, v := range feature.Values {
		if v == "" || label.Values[i] == "" {
			continue
		}
		pairs[[2]string{v, label.Values[i]}]++
		present = append(present, v)
	}

	out := make([]domain.GroupedCount, 0)
	for _, category := range frequencies(present) {
		for _, l := range labels {
			if n := pairs[[2]string{category.Value, l}]; n > 0 {
				out = append(out, domain.GroupedCount{Value: category.Value, Label: l, Count: n})
			}
		}
	}
	return out
}

// crossTab normaliza cada linha para somar 100. A cor de cada célula é relativa
// ao mínimo e ao máximo da própria linha.
func crossTab(feature, label *domain.Column, labels []string) *domain.CrossTab {
	counts := make(map[string]map[string]int)
	for i, v := range feature.Values {
		l := label.Values[i]
		if v == "" || l == "" {
			continue
		}
		if counts[v] == nil {
			counts[v] = make(map[string]int)
		}
		counts[v][l]++
	}

	categories := make([]string, 0, len(counts))
	for c := range counts {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	ct := &domain.CrossTab{Labels: labels, Rows: make([]domain.CrossTabRow, 0, len(categories))}
	for _, category := range categories {
		var total int
		for _, n := range counts[category] {
			total += n
		}

		percents := make([]float64, len(labels))
		lo, hi := math.Inf(1), math.Inf(-1)
		for j, l := range labels {
			percents[j] = float64(counts[category][l]) / float64(total) * 100
			lo = math.Min(lo, percents[j])
			hi = math.Max(hi, percents[j])
		}

		row := domain.CrossTabRow{Value: category, Cells: make([]domain.CrossTabCell, len(labels))}
		for j, l := range labels {
			t := 0.0
			if hi > lo {
				t = (percents[j] - lo) / (hi - lo)
			}
			row.Cells[j] = domain.CrossTabCell{Label: l, Percent: percents[j], Color: gradientColor(t)}
		}
		ct.Rows = append(ct.Rows, row)
	}

	return ct
}
