package utils

import "time"

const dateLayout = "2006-01-02"

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// DaysBetween conta os dias corridos entre duas datas no formato YYYY-MM-DD.
// Retorna ok=false se alguma data estiver vazia ou inválida.
func DaysBetween(start, end string) (int, bool) {
	if start == "" || end == "" {
		return 0, false
	}

	from, err := ParseDate(start)
	if err != nil {
		return 0, false
	}
	to, err := ParseDate(end)
	if err != nil {
		return 0, false
	}

	return int(to.Sub(*from).Hours() / 24), true
}
