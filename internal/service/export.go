package service

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
)

// flushEvery is how many records are written between flushes.
const flushEvery = 100

// csvSafe prefixes cells a spreadsheet would read as a formula with a quote.
func csvSafe(cell string) string {
	if cell == "" {
		return cell
	}
	switch cell[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + cell
	}
	return cell
}

func attachment(w http.ResponseWriter, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
}

func streamNDJSON[T any](w http.ResponseWriter, name string, items []T) error {
	attachment(w, "application/x-ndjson", name+".ndjson")

	flusher, _ := w.(http.Flusher)
	enc := json.NewEncoder(w)
	for i, item := range items {
		if err := enc.Encode(item); err != nil {
			return err
		}
		if (i+1)%flushEvery == 0 && flusher != nil {
			flusher.Flush()
		}
	}
	return nil
}

func streamJSON[T any](w http.ResponseWriter, name string, items []T) error {
	attachment(w, "application/json", name+".json")

	if _, err := w.Write([]byte("[")); err != nil {
		return err
	}
	for i, item := range items {
		if i > 0 {
			w.Write([]byte(","))
		}
		data, err := json.Marshal(item)
		if err != nil {
			return err
		}
		w.Write(data)
	}
	_, err := w.Write([]byte("]"))
	return err
}

func streamCSV[T any](w http.ResponseWriter, name string, header []string, items []T, row func(T) []string) error {
	attachment(w, "text/csv", name+".csv")

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}
	for i, item := range items {
		if err := writer.Write(row(item)); err != nil {
			return err
		}
		if (i+1)%flushEvery == 0 {
			writer.Flush()
		}
	}
	writer.Flush()
	return writer.Error()
}
