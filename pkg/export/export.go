package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/kilianp07/hotelprice/core/model"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// Quote is a complete prediction ready for export.
type Quote struct {
	HotelID     string                `json:"hotelId"`
	BasePrice   int64                 `json:"basePrice"`
	Model       string                `json:"model"`
	Predictions model.PredictedSeries `json:"predictions"`
}

// Write encodes q in the requested format.
func Write(w io.Writer, f Format, q Quote) error {
	switch f {
	case FormatJSON, "":
		return WriteJSON(w, q)
	case FormatCSV:
		return WriteCSV(w, q)
	default:
		return fmt.Errorf("unsupported format %q", f)
	}
}

// WriteJSON writes the quote to w as indented JSON.
func WriteJSON(w io.Writer, q Quote) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(q)
}

// WriteCSV writes one row per day with the hotel id repeated on every row.
func WriteCSV(w io.Writer, q Quote) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"hotel_id", "date", "price"}); err != nil {
		return err
	}
	for _, p := range q.Predictions {
		rec := []string{
			q.HotelID,
			p.Date.Format(model.DateLayout),
			strconv.FormatInt(p.Price, 10),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
