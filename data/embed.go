// Package data holds the reference tables compiled into the binary. They are
// used whenever no external file is configured.
package data

import _ "embed"

//go:embed crops.csv
var Crops []byte

//go:embed weather_data.csv
var Weather []byte

//go:embed prices.csv
var Prices []byte
