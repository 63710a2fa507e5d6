package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"agrofusion-api/data"
	"agrofusion-api/pkg/models"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// Catalog is the ordered, read-only crop catalog. Order is significant: it is
// the tie-break order used by SelectCrop. A Catalog is safe to share between
// goroutines because nothing mutates it after LoadCatalog returns.
type Catalog struct {
	crops  []models.Crop
	source string
}

// NewCatalog builds a catalog from already-validated crops.
func NewCatalog(crops []models.Crop, source string) (*Catalog, error) {
	if len(crops) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptyCatalog)
	}
	out := make([]models.Crop, 0, len(crops))
	for i, c := range crops {
		norm, err := normalizeCrop(c)
		if err != nil {
			return nil, configError("%s: crop #%d: %v", source, i+1, err)
		}
		out = append(out, norm)
	}
	return &Catalog{crops: out, source: source}, nil
}

// Crops returns a copy of the catalog entries in catalog order.
func (c *Catalog) Crops() []models.Crop {
	if c == nil {
		return nil
	}
	out := make([]models.Crop, len(c.crops))
	copy(out, c.crops)
	return out
}

// Len returns the number of crops.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.crops)
}

// Source describes where the catalog was loaded from.
func (c *Catalog) Source() string { return c.source }

// Find returns the crop with the given name (case-insensitive).
func (c *Catalog) Find(name string) (models.Crop, bool) {
	for _, crop := range c.crops {
		if strings.EqualFold(crop.Name, name) {
			return crop, true
		}
	}
	return models.Crop{}, false
}

// LoadCatalog loads the crop catalog. An empty path selects the embedded
// default table; otherwise the extension picks the decoder (.csv, .xlsx,
// .yaml/.yml). Every failure wraps ErrConfiguration.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		crops, err := parseCatalogCSV(bytes.NewReader(data.Crops))
		if err != nil {
			return nil, configError("embedded catalog: %v", err)
		}
		return NewCatalog(crops, "embedded:crops.csv")
	}

	var (
		crops []models.Crop
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		crops, err = loadCatalogCSV(path)
	case ".xlsx":
		crops, err = loadCatalogXLSX(path)
	case ".yaml", ".yml":
		crops, err = loadCatalogYAML(path)
	default:
		return nil, configError("unsupported catalog format: %s", path)
	}
	if err != nil {
		return nil, configError("failed to load catalog %s: %v", path, err)
	}
	return NewCatalog(crops, path)
}

func loadCatalogCSV(path string) ([]models.Crop, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseCatalogCSV(f)
}

func parseCatalogCSV(r io.Reader) ([]models.Crop, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return parseCatalogRows(rows)
}

// loadCatalogXLSX reads the first sheet of an Excel workbook.
func loadCatalogXLSX(path string) ([]models.Crop, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}
	return parseCatalogRows(rows)
}

type yamlCatalog struct {
	Crops []models.Crop `yaml:"crops"`
}

func loadCatalogYAML(path string) ([]models.Crop, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc yamlCatalog
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	return doc.Crops, nil
}

// parseCatalogRows maps tabular rows (header first) onto crops. Shared by the
// CSV and Excel loaders.
func parseCatalogRows(rows [][]string) ([]models.Crop, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data")
	}

	header := normalizeHeader(rows[0])
	cols := map[string]int{
		"name":       findIndex(header, []string{"name", "crop"}),
		"soil":       findIndex(header, []string{"soil", "soils", "soil_type"}),
		"season":     findIndex(header, []string{"season", "seasons"}),
		"water_need": findIndex(header, []string{"water_need", "water"}),
		"base_yield": findIndex(header, []string{"base_yield", "yield"}),
		"price":      findIndex(header, []string{"price"}),
	}
	var missing []string
	for _, name := range []string{"name", "soil", "season", "water_need", "base_yield", "price"} {
		if cols[name] == -1 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}

	var crops []models.Crop
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}
		baseYield, err := parseNumber(cell(row, cols["base_yield"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: base_yield: %w", i+1, err)
		}
		price, err := parseNumber(cell(row, cols["price"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: price: %w", i+1, err)
		}
		crops = append(crops, models.Crop{
			Name:      cell(row, cols["name"]),
			Soils:     splitCell(cell(row, cols["soil"])),
			Seasons:   splitCell(cell(row, cols["season"])),
			WaterNeed: cell(row, cols["water_need"]),
			BaseYield: baseYield,
			Price:     price,
		})
	}
	return crops, nil
}

func normalizeCrop(c models.Crop) (models.Crop, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return c, fmt.Errorf("name is required")
	}
	if c.BaseYield <= 0 {
		return c, fmt.Errorf("%s: base_yield must be positive", name)
	}
	if c.Price <= 0 {
		return c, fmt.Errorf("%s: price must be positive", name)
	}
	water := strings.ToLower(strings.TrimSpace(c.WaterNeed))
	if !isWaterLevel(water) {
		return c, fmt.Errorf("%s: unknown water_need %q", name, c.WaterNeed)
	}

	soils := make([]string, 0, len(c.Soils))
	for _, s := range c.Soils {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			soils = append(soils, s)
		}
	}
	seasons := make([]string, 0, len(c.Seasons))
	for _, s := range c.Seasons {
		if s = strings.TrimSpace(s); s != "" {
			seasons = append(seasons, s)
		}
	}

	return models.Crop{
		Name:      name,
		Soils:     soils,
		Seasons:   seasons,
		WaterNeed: water,
		BaseYield: c.BaseYield,
		Price:     c.Price,
	}, nil
}

func isWaterLevel(s string) bool {
	switch s {
	case WaterLow, WaterMedium, WaterHigh:
		return true
	}
	return false
}

func normalizeHeader(hdr []string) []string {
	out := make([]string, len(hdr))
	for i, v := range hdr {
		// Remove UTF-8 BOM if present, then trim and lowercase
		v = strings.TrimPrefix(v, "\ufeff")
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}

func findIndex(hdr []string, candidates []string) int {
	for i, v := range hdr {
		for _, c := range candidates {
			if v == c {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// splitCell splits list cells such as "loam;clay" or "Kharif|Rabi".
func splitCell(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '|' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// parseNumber accepts values like "1,500" or "₹1500".
func parseNumber(s string) (float64, error) {
	v := filterNumeric(strings.ReplaceAll(s, ",", ""))
	if v == "" {
		return 0, fmt.Errorf("empty value %q", s)
	}
	return strconv.ParseFloat(v, 64)
}

// filterNumeric keeps digits, dot, and minus.
func filterNumeric(s string) string {
	b := make([]rune, 0, len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b = append(b, r)
		}
	}
	return string(b)
}
