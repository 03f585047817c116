package domain

type AnalysisType string

const (
	AnalysisUnivariate AnalysisType = "univariate"
	AnalysisBivariate  AnalysisType = "bivariate"
)

type FeatureInfo struct {
	Name string     `json:"name"`
	Kind ColumnKind `json:"kind"`
}

type NumericSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
}

type CategoricalSummary struct {
	Unique     int    `json:"unique"`
	MostCommon string `json:"most_common"`
	TotalCount int    `json:"total_count"`
}

type FeatureSummary struct {
	Feature     string              `json:"feature"`
	Kind        ColumnKind          `json:"kind"`
	Numeric     *NumericSummary     `json:"numeric,omitempty"`
	Categorical *CategoricalSummary `json:"categorical,omitempty"`
}

type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

type Histogram struct {
	Label string         `json:"label,omitempty"`
	Bins  []HistogramBin `json:"bins"`
}

// BoxSummary é o resumo de cinco números com bigodes a 1.5 IQR.
type BoxSummary struct {
	Label        string    `json:"label,omitempty"`
	Count        int       `json:"count"`
	Min          float64   `json:"min"`
	Q1           float64   `json:"q1"`
	Median       float64   `json:"median"`
	Q3           float64   `json:"q3"`
	Max          float64   `json:"max"`
	LowerWhisker float64   `json:"lower_whisker"`
	UpperWhisker float64   `json:"upper_whisker"`
	Outliers     []float64 `json:"outliers"`
}

type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type GroupedCount struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type CrossTabCell struct {
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
	Color   string  `json:"color"`
}

type CrossTabRow struct {
	Value string         `json:"value"`
	Cells []CrossTabCell `json:"cells"`
}

// CrossTab é a tabulação cruzada normalizada por linha (cada linha soma 100).
type CrossTab struct {
	Labels []string      `json:"labels"`
	Rows   []CrossTabRow `json:"rows"`
}

type FeatureAnalysis struct {
	Feature            string          `json:"feature"`
	Kind               ColumnKind      `json:"kind"`
	Analysis           AnalysisType    `json:"analysis"`
	Summary            FeatureSummary  `json:"summary"`
	Histograms         []Histogram     `json:"histograms,omitempty"`
	Boxes              []BoxSummary    `json:"boxes,omitempty"`
	Frequencies        []CategoryCount `json:"frequencies,omitempty"`
	GroupedFrequencies []GroupedCount  `json:"grouped_frequencies,omitempty"`
	CrossTab           *CrossTab       `json:"cross_tab,omitempty"`
}
