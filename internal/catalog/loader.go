// Package catalog loads the NASA Planetary Systems snapshot and reduces it
// to scoreable habitable-zone candidates.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Column names of the Planetary Systems export consumed by the pipeline.
const (
	ColName        = "pl_name"
	ColHostName    = "hostname"
	ColDefaultFlag = "default_flag"
	ColDiscYear    = "disc_year"
	ColEqTemp      = "pl_eqt"
	ColInsolation  = "pl_insol"
	ColRadius      = "pl_rade"
	ColMass        = "pl_bmasse"
	ColPeriod      = "pl_orbper"
	ColStarTemp    = "st_teff"
	ColStarRadius  = "st_rad"
	ColVMag        = "sy_vmag"
	ColDistance    = "sy_dist"
	ColStarCount   = "sy_snum"
)

// requiredColumns must all be present in the snapshot header. A missing
// column is a schema violation and fatal.
var requiredColumns = []string{
	ColName, ColHostName, ColDefaultFlag,
	ColEqTemp, ColInsolation, ColRadius, ColMass, ColPeriod,
	ColStarTemp, ColStarRadius, ColVMag, ColDistance, ColStarCount,
}

// RawRow is one catalog row with optional measurements pre-resolved into
// present-with-value or absent. Only default-parameter rows are retained.
type RawRow struct {
	Name     string
	HostName string

	DiscYear *int

	EqTempK           *float64
	Insolation        *float64
	RadiusEarth       *float64
	MassEarth         *float64
	OrbitalPeriodDays *float64
	StarTempK         *float64
	StarRadiusSun     *float64
	VMag              *float64
	DistancePc        *float64
	StarCount         *int
}

// Load reads the snapshot file and returns canonical (default_flag == 1) rows.
func Load(path string) ([]RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	return rows, nil
}

// Read parses the delimited snapshot, skipping '#' metadata comment lines.
// Rows whose default_flag is not 1 are duplicate parameter solutions and
// are dropped here, upstream of the selector.
func Read(r io.Reader) ([]RawRow, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("snapshot schema invalid: required column %q is missing", col)
		}
	}

	var rows []RawRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		if flag, ok := intField(record, idx, ColDefaultFlag); !ok || flag != 1 {
			continue
		}

		row := RawRow{
			Name:     strings.TrimSpace(record[idx[ColName]]),
			HostName: strings.TrimSpace(record[idx[ColHostName]]),
		}
		if row.Name == "" {
			continue
		}

		row.EqTempK = floatField(record, idx, ColEqTemp)
		row.Insolation = floatField(record, idx, ColInsolation)
		row.RadiusEarth = floatField(record, idx, ColRadius)
		row.MassEarth = floatField(record, idx, ColMass)
		row.OrbitalPeriodDays = floatField(record, idx, ColPeriod)
		row.StarTempK = floatField(record, idx, ColStarTemp)
		row.StarRadiusSun = floatField(record, idx, ColStarRadius)
		row.VMag = floatField(record, idx, ColVMag)
		row.DistancePc = floatField(record, idx, ColDistance)
		if v, ok := intField(record, idx, ColStarCount); ok {
			row.StarCount = &v
		}
		if v, ok := intField(record, idx, ColDiscYear); ok {
			row.DiscYear = &v
		}

		rows = append(rows, row)
	}
	return rows, nil
}

// floatField parses an optional numeric cell; empty cells resolve to absent.
func floatField(record []string, idx map[string]int, col string) *float64 {
	i, ok := idx[col]
	if !ok || i >= len(record) {
		return nil
	}
	s := strings.TrimSpace(record[i])
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func intField(record []string, idx map[string]int, col string) (int, bool) {
	i, ok := idx[col]
	if !ok || i >= len(record) {
		return 0, false
	}
	s := strings.TrimSpace(record[i])
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		// Some exports store integers as "1.0".
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0, false
		}
		return int(f), true
	}
	return v, true
}
