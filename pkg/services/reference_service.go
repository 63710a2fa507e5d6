package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"agrofusion-api/data"
	"agrofusion-api/pkg/models"
)

// DefaultWeather is returned by WeatherTable.Get for unknown location/season
// pairs: 25°C, no rain, 60% humidity.
var DefaultWeather = models.WeatherRecord{Temperature: 25.0, Rainfall: 0.0, Humidity: 60.0}

// WeatherTable 地域・季節キーの気象参照テーブル（読み取り専用）
type WeatherTable struct {
	records map[string]models.WeatherRecord
}

// LoadWeatherTable loads weather_data.csv (location,season,temp,rainfall,humidity).
// An empty path selects the embedded table.
func LoadWeatherTable(path string) (*WeatherTable, error) {
	rows, err := readReferenceCSV(path, data.Weather)
	if err != nil {
		return nil, configError("weather table: %v", err)
	}
	if len(rows) == 0 {
		return nil, configError("weather table: no data")
	}

	header := normalizeHeader(rows[0])
	locIdx := findIndex(header, []string{"location"})
	seasonIdx := findIndex(header, []string{"season"})
	tempIdx := findIndex(header, []string{"temp", "temperature"})
	rainIdx := findIndex(header, []string{"rainfall", "rain"})
	humIdx := findIndex(header, []string{"humidity"})
	if locIdx == -1 || seasonIdx == -1 || tempIdx == -1 || rainIdx == -1 || humIdx == -1 {
		return nil, configError("weather table: expected columns location,season,temp,rainfall,humidity")
	}

	t := &WeatherTable{records: make(map[string]models.WeatherRecord)}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}
		temp, err1 := parseNumber(cell(row, tempIdx))
		rain, err2 := parseNumber(cell(row, rainIdx))
		hum, err3 := parseNumber(cell(row, humIdx))
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, configError("weather table: row %d: invalid number", i+1)
		}
		rec := models.WeatherRecord{
			Location:    cell(row, locIdx),
			Season:      cell(row, seasonIdx),
			Temperature: temp,
			Rainfall:    rain,
			Humidity:    hum,
		}
		t.records[weatherKey(rec.Location, rec.Season)] = rec
	}
	return t, nil
}

// Lookup finds the record for location and season (case-insensitive).
func (t *WeatherTable) Lookup(location, season string) (models.WeatherRecord, bool) {
	if t == nil {
		return models.WeatherRecord{}, false
	}
	rec, ok := t.records[weatherKey(location, season)]
	return rec, ok
}

// Get is Lookup with an explicit fallback to DefaultWeather.
func (t *WeatherTable) Get(location, season string) (models.WeatherRecord, bool) {
	if rec, ok := t.Lookup(location, season); ok {
		return rec, true
	}
	rec := DefaultWeather
	rec.Location = location
	rec.Season = season
	return rec, false
}

// Len returns the number of records.
func (t *WeatherTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

func weatherKey(location, season string) string {
	return strings.ToLower(strings.TrimSpace(location)) + "|" + strings.ToLower(strings.TrimSpace(season))
}

// PriceTable 作物・市場キーの価格参照テーブル（読み取り専用）
type PriceTable struct {
	records []models.PriceRecord
}

// LoadPriceTable loads prices.csv (crop,market,price). An empty path selects
// the embedded table.
func LoadPriceTable(path string) (*PriceTable, error) {
	rows, err := readReferenceCSV(path, data.Prices)
	if err != nil {
		return nil, configError("price table: %v", err)
	}
	if len(rows) == 0 {
		return nil, configError("price table: no data")
	}

	header := normalizeHeader(rows[0])
	cropIdx := findIndex(header, []string{"crop", "name"})
	marketIdx := findIndex(header, []string{"market", "location"})
	priceIdx := findIndex(header, []string{"price"})
	if cropIdx == -1 || marketIdx == -1 || priceIdx == -1 {
		return nil, configError("price table: expected columns crop,market,price")
	}

	t := &PriceTable{}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}
		price, err := parseNumber(cell(row, priceIdx))
		if err != nil {
			return nil, configError("price table: row %d: %v", i+1, err)
		}
		t.records = append(t.records, models.PriceRecord{
			Crop:   cell(row, cropIdx),
			Market: cell(row, marketIdx),
			Price:  price,
		})
	}
	return t, nil
}

// Lookup returns the first record for crop, optionally restricted to market.
func (t *PriceTable) Lookup(crop, market string) (models.PriceRecord, bool) {
	if t == nil {
		return models.PriceRecord{}, false
	}
	for _, rec := range t.records {
		if !strings.EqualFold(rec.Crop, crop) {
			continue
		}
		if market != "" && !strings.EqualFold(rec.Market, market) {
			continue
		}
		return rec, true
	}
	return models.PriceRecord{}, false
}

// Len returns the number of records.
func (t *PriceTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

func readReferenceCSV(path string, embedded []byte) ([][]string, error) {
	var r io.Reader
	if path == "" {
		r = bytes.NewReader(embedded)
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	return cr.ReadAll()
}
