package model

import (
	"encoding/json"
	"time"
)

// DailyPrice is one entry of a predicted series. Price is expressed in the
// smallest currency unit.
type DailyPrice struct {
	Date  time.Time
	Price int64
}

type dailyPriceJSON struct {
	Date  string `json:"date"`
	Price int64  `json:"price"`
}

// MarshalJSON encodes the date as YYYY-MM-DD.
func (d DailyPrice) MarshalJSON() ([]byte, error) {
	return json.Marshal(dailyPriceJSON{Date: d.Date.Format(DateLayout), Price: d.Price})
}

// UnmarshalJSON decodes the wire form produced by MarshalJSON.
func (d *DailyPrice) UnmarshalJSON(b []byte) error {
	var raw dailyPriceJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	t, err := ParseDate(raw.Date)
	if err != nil {
		return err
	}
	d.Date = t
	d.Price = raw.Price
	return nil
}

// PredictedSeries is an ordered run of daily prices, one entry per day.
type PredictedSeries []DailyPrice

// Start returns the first date of the series or the zero time when empty.
func (s PredictedSeries) Start() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[0].Date
}
