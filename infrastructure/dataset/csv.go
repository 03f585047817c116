package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrEmptyDataset   = errors.New("dataset has no header")
	ErrMissingColumns = errors.New("dataset is missing required columns")
)

// Tokens que o pandas trata como nulo por padrão
var nullTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
	"None": true,
}

func isNull(value string) bool {
	return nullTokens[strings.TrimSpace(value)]
}

type table struct {
	header []string
	rows   [][]string
}

func readCSVFile(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	t, err := readCSV(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	return t, nil
}

func readCSV(r io.Reader) (*table, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = false

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, err
	}

	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	return &table{header: header, rows: rows}, nil
}

func (t *table) missing(required []string) []string {
	present := make(map[string]bool, len(t.header))
	for _, h := range t.header {
		present[h] = true
	}

	var missing []string
	for _, column := range required {
		if !present[column] {
			missing = append(missing, column)
		}
	}
	return missing
}

func (t *table) record(row []string) map[string]string {
	record := make(map[string]string, len(t.header))
	for i, column := range t.header {
		value := row[i]
		if isNull(value) {
			value = ""
		}
		record[column] = strings.TrimSpace(value)
	}
	return record
}
