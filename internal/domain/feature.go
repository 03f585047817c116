package domain

// FeatureSchema descreve as colunas que o modelo espera, na ordem de treino.
type FeatureSchema struct {
	Version  string   `json:"version"`
	Features []string `json:"features"`
}

func (s FeatureSchema) Len() int {
	return len(s.Features)
}

// Index devolve a posição da feature no schema ou -1.
func (s FeatureSchema) Index(name string) int {
	for i, f := range s.Features {
		if f == name {
			return i
		}
	}
	return -1
}

// FeatureVector é a codificação numérica de um cliente, alinhada ao schema.
type FeatureVector struct {
	Names  []string  `json:"names"`
	Values []float64 `json:"values"`
}

func (v FeatureVector) Len() int {
	return len(v.Values)
}

// Get devolve o valor da coluna e se ela existe no vetor.
func (v FeatureVector) Get(name string) (float64, bool) {
	for i, n := range v.Names {
		if n == name {
			return v.Values[i], true
		}
	}
	return 0, false
}

// PreprocessDiagnostics registra o que foi preenchido com zero durante o pré-processamento.
type PreprocessDiagnostics struct {
	UnknownCategoricals map[string]string `json:"unknown_categoricals,omitempty"`
	MissingColumns      []string          `json:"missing_columns,omitempty"`
}

func (d PreprocessDiagnostics) HasWarnings() bool {
	return len(d.UnknownCategoricals) > 0 || len(d.MissingColumns) > 0
}
