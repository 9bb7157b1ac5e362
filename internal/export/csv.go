// Package export owns the on-disk artifact formats: the scored table CSV,
// the top-N Markdown summary, the authoritative comparison CSV, and the
// validation reports. Writers are deterministic: the same rows always
// produce byte-identical files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ppiankov/exorank/internal/model"
)

// scoredHeader is the fixed column order of the scored table.
var scoredHeader = []string{
	"pl_name", "hostname",
	"pl_eqt", "pl_insol", "insolation_derived",
	"pl_rade", "pl_bmasse", "mass_estimated",
	"pl_orbper", "st_teff", "st_rad",
	"sy_vmag", "sy_dist", "sy_snum",
	"transit_depth_ppm",
	"climate_score", "structure_score", "observability_score", "system_score",
	"priority_score", "priority_band",
}

// WriteScoredCSV persists the full scored table.
func WriteScoredCSV(path string, rows []model.CandidateRow) error {
	f, err := create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(scoredHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.Name, r.HostName,
			ftoa(r.EqTempK), ftoa(r.Insolation), btoa(r.InsolationDerived),
			ftoa(r.RadiusEarth), ftoa(r.MassEarth), btoa(r.MassEstimated),
			ftoa(r.OrbitalPeriodDays), ftoa(r.StarTempK), ftoa(r.StarRadiusSun),
			ftoa(r.VMag), ftoa(r.DistancePc), strconv.Itoa(r.StarCount),
			ftoa(r.TransitDepthPPM),
			ftoa(r.Climate), ftoa(r.Structure), ftoa(r.Observability), ftoa(r.System),
			ftoa(r.Priority), string(r.Tier),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row %s: %w", r.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush scored table: %w", err)
	}
	return nil
}

// ReadScoredCSV loads a previously exported scored table, raw inputs and
// computed columns alike. The validator treats this as the authoritative
// stored artifact.
func ReadScoredCSV(path string) ([]model.CandidateRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stored table: %w", err)
	}
	defer func() { _ = f.Close() }()
	return readScored(f)
}

func readScored(r io.Reader) ([]model.CandidateRow, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, col := range scoredHeader {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("stored table invalid: column %q is missing", col)
		}
	}

	var rows []model.CandidateRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		get := func(col string) string { return record[idx[col]] }
		getF := func(col string) (float64, error) {
			return strconv.ParseFloat(get(col), 64)
		}

		var row model.CandidateRow
		row.Name = get("pl_name")
		row.HostName = get("hostname")

		fields := []struct {
			col string
			dst *float64
		}{
			{"pl_eqt", &row.EqTempK}, {"pl_insol", &row.Insolation},
			{"pl_rade", &row.RadiusEarth}, {"pl_bmasse", &row.MassEarth},
			{"pl_orbper", &row.OrbitalPeriodDays}, {"st_teff", &row.StarTempK},
			{"st_rad", &row.StarRadiusSun}, {"sy_vmag", &row.VMag},
			{"sy_dist", &row.DistancePc}, {"transit_depth_ppm", &row.TransitDepthPPM},
			{"climate_score", &row.Climate}, {"structure_score", &row.Structure},
			{"observability_score", &row.Observability}, {"system_score", &row.System},
			{"priority_score", &row.Priority},
		}
		for _, f := range fields {
			v, err := getF(f.col)
			if err != nil {
				return nil, fmt.Errorf("row %s: parse %s: %w", row.Name, f.col, err)
			}
			*f.dst = v
		}

		snum, err := strconv.Atoi(get("sy_snum"))
		if err != nil {
			return nil, fmt.Errorf("row %s: parse sy_snum: %w", row.Name, err)
		}
		row.StarCount = snum
		row.InsolationDerived = get("insolation_derived") == "true"
		row.MassEstimated = get("mass_estimated") == "true"
		row.Tier = model.ParseTier(get("priority_band"))

		rows = append(rows, row)
	}
	return rows, nil
}

// WriteComparisonCSV persists the authoritative comparison table.
func WriteComparisonCSV(path string, result model.ComparisonResult) error {
	f, err := create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"pl_name", "priority_score", "priority_band", "in_catalog", "phl_confidence", "status"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range result.Rows {
		record := []string{
			r.Name, ftoa(r.Priority), string(r.Tier),
			btoa(r.InCatalog), r.Confidence, r.Status,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row %s: %w", r.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush comparison table: %w", err)
	}
	return nil
}

// ReadComparisonCSV loads a previously exported comparison table. The
// source provenance is not stored in the CSV, so the result reports
// "stored"; the headline numbers are rebuilt from the rows.
func ReadComparisonCSV(path string) (model.ComparisonResult, error) {
	result := model.ComparisonResult{Source: "stored"}

	f, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("open comparison table: %w", err)
	}
	defer func() { _ = f.Close() }()

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err != nil {
		return result, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, col := range []string{"pl_name", "priority_score", "priority_band", "in_catalog", "status"} {
		if _, ok := idx[col]; !ok {
			return result, fmt.Errorf("comparison table invalid: column %q is missing", col)
		}
	}

	highMatched := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, fmt.Errorf("read record: %w", err)
		}

		var row model.ComparisonRow
		row.Name = record[idx["pl_name"]]
		row.Priority, err = strconv.ParseFloat(record[idx["priority_score"]], 64)
		if err != nil {
			return result, fmt.Errorf("row %s: parse priority_score: %w", row.Name, err)
		}
		row.Tier = model.ParseTier(record[idx["priority_band"]])
		row.InCatalog = record[idx["in_catalog"]] == "true"
		if i, ok := idx["phl_confidence"]; ok {
			row.Confidence = record[i]
		}
		row.Status = record[idx["status"]]

		if row.InCatalog {
			result.Matched++
		}
		if row.Tier == model.TierHighPriority {
			result.HighPriority++
			if row.InCatalog {
				highMatched++
			}
		}
		result.Rows = append(result.Rows, row)
	}

	if result.HighPriority > 0 {
		result.AgreementRate = float64(highMatched) / float64(result.HighPriority)
	}
	return result, nil
}

func create(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

// ftoa formats floats so they round-trip exactly through ParseFloat.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func btoa(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
