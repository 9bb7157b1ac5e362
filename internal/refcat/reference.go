package refcat

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/exorank/internal/model"
)

// Source identifies which reference list actually backed a comparison.
type Source string

const (
	SourceRemote      Source = "remote"
	SourceLocal       Source = "local"
	SourceUnavailable Source = "unavailable"
)

// Entry is one planet in the authoritative reference list.
type Entry struct {
	Name       string
	Confidence string
}

// Resolver selects exactly one concrete reference source per run: a
// bounded-timeout remote fetch when reachable, otherwise the local cached
// copy. Failure of both is a degradation, not an error; the comparison
// still runs against an empty list.
type Resolver struct {
	fetcher *Fetcher
	cfg     model.ReferenceConfig
	http    model.HTTPConfig
}

// NewResolver creates a resolver over the given fetcher and paths.
func NewResolver(fetcher *Fetcher, cfg model.ReferenceConfig, httpCfg model.HTTPConfig) *Resolver {
	return &Resolver{fetcher: fetcher, cfg: cfg, http: httpCfg}
}

// Resolve returns the reference entries plus the source that produced them.
// A fetched payload is mirrored to the local path so later offline runs
// reproduce the same comparison.
func (r *Resolver) Resolve(ctx context.Context) ([]Entry, Source) {
	if r.cfg.URL != "" {
		fetchCtx, cancel := withDeadline(ctx, r.http.Timeout)
		payload, err := r.fetcher.Fetch(fetchCtx, r.cfg.URL)
		cancel()
		if err == nil {
			if entries, perr := ParseReference(bytes.NewReader(payload)); perr == nil {
				r.mirror(payload)
				return entries, SourceRemote
			}
		}
	}

	if r.cfg.LocalPath != "" {
		if f, err := os.Open(r.cfg.LocalPath); err == nil {
			defer func() { _ = f.Close() }()
			if entries, perr := ParseReference(f); perr == nil {
				return entries, SourceLocal
			}
		}
	}

	return nil, SourceUnavailable
}

// mirror writes the fetched payload to the local fallback path.
func (r *Resolver) mirror(payload []byte) {
	if r.cfg.LocalPath == "" {
		return
	}
	if _, err := os.Stat(r.cfg.LocalPath); err == nil {
		return
	}
	_ = os.WriteFile(r.cfg.LocalPath, payload, 0o644)
}

// ParseReference reads the reference list CSV. The pl_name column is
// required; a confidence/status column is optional.
func ParseReference(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read reference header: %w", err)
	}

	nameIdx, confIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "pl_name", "p_name", "name":
			nameIdx = i
		case "confidence", "status", "p_habitable":
			confIdx = i
		}
	}
	if nameIdx < 0 {
		return nil, fmt.Errorf("reference list invalid: no planet name column")
	}

	var entries []Entry
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read reference record: %w", err)
		}
		if nameIdx >= len(record) {
			continue
		}
		name := strings.TrimSpace(record[nameIdx])
		if name == "" {
			continue
		}
		entry := Entry{Name: name}
		if confIdx >= 0 && confIdx < len(record) {
			entry.Confidence = strings.TrimSpace(record[confIdx])
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Compare joins candidates against the reference entries by planet name and
// reports per-candidate status plus the agreement rate over High Priority
// candidates.
func Compare(candidates []model.CandidateRow, entries []Entry, source Source) model.ComparisonResult {
	byName := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byName[e.Name] = e
	}

	result := model.ComparisonResult{
		Rows:   make([]model.ComparisonRow, 0, len(candidates)),
		Source: string(source),
	}

	highMatched := 0
	for _, c := range candidates {
		row := model.ComparisonRow{
			Name:     c.Name,
			Priority: c.Priority,
			Tier:     c.Tier,
			Status:   "investigate",
		}
		if e, ok := byName[c.Name]; ok {
			row.InCatalog = true
			row.Confidence = e.Confidence
			row.Status = "match"
			result.Matched++
		}
		if c.Tier == model.TierHighPriority {
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
	return result
}
