package domain

import (
	"math"
	"time"
)

type ColumnKind string

const (
	ColumnNumeric     ColumnKind = "numeric"
	ColumnCategorical ColumnKind = "categorical"
)

const (
	ChurnColumn = "churn"
	LabelColumn = "subscription_status"
)

// Column guarda uma coluna do dataset base. Para colunas numéricas, Numbers usa NaN
// nas posições nulas; Values sempre mantém o texto original ("" para nulo).
type Column struct {
	Name    string     `json:"name"`
	Kind    ColumnKind `json:"kind"`
	Values  []string   `json:"-"`
	Numbers []float64  `json:"-"`
}

func (c *Column) IsNull(i int) bool {
	if c.Kind == ColumnNumeric {
		return math.IsNaN(c.Numbers[i])
	}
	return c.Values[i] == ""
}

// BaselineDataset é o dataset exploratório, uma linha por cliente histórico.
type BaselineDataset struct {
	Columns []*Column
	Rows    int
	index   map[string]int
}

func NewBaselineDataset(columns []*Column, rows int) *BaselineDataset {
	ds := &BaselineDataset{
		Columns: columns,
		Rows:    rows,
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		ds.index[c.Name] = i
	}
	return ds
}

func (d *BaselineDataset) Column(name string) (*Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.Columns[i], true
}

// AddColumn acrescenta uma coluna derivada; retorna false se o nome já existir.
func (d *BaselineDataset) AddColumn(c *Column) bool {
	if _, exists := d.index[c.Name]; exists {
		return false
	}
	d.index[c.Name] = len(d.Columns)
	d.Columns = append(d.Columns, c)
	return true
}

// DatasetStatus descreve o snapshot carregado de um dataset
type DatasetStatus struct {
	Name     string     `json:"name"`
	Path     string     `json:"path"`
	Rows     int        `json:"rows"`
	Loaded   bool       `json:"loaded"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
}

// ReloadStatus é o estado do job de recarga dos datasets
type ReloadStatus struct {
	Enabled         bool            `json:"enabled"`
	CronSchedule    string          `json:"cron_schedule"`
	Running         bool            `json:"running"`
	LastStartedAt   *time.Time      `json:"last_started_at,omitempty"`
	LastCompletedAt *time.Time      `json:"last_completed_at,omitempty"`
	LastError       string          `json:"last_error,omitempty"`
	Datasets        []DatasetStatus `json:"datasets"`
}
