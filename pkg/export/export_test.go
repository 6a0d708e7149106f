package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/hotelprice/core/model"
)

func sampleQuote() Quote {
	d := time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)
	return Quote{
		HotelID:   "h1",
		BasePrice: 562500,
		Model:     "rule_based",
		Predictions: model.PredictedSeries{
			{Date: d, Price: 548003},
			{Date: d.AddDate(0, 0, 1), Price: 553536},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sampleQuote()))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"hotel_id,date,price",
		"h1,2024-03-06,548003",
		"h1,2024-03-07,553536",
	}, lines)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleQuote()))
	var out struct {
		HotelID     string `json:"hotelId"`
		BasePrice   int64  `json:"basePrice"`
		Predictions []struct {
			Date  string `json:"date"`
			Price int64  `json:"price"`
		} `json:"predictions"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "h1", out.HotelID)
	assert.Equal(t, int64(562500), out.BasePrice)
	require.Len(t, out.Predictions, 2)
	assert.Equal(t, "2024-03-07", out.Predictions[1].Date)
}

func TestWriteUnsupported(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, Format("xml"), sampleQuote()))
}
