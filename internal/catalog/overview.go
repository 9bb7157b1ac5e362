package catalog

import (
	"sort"

	"github.com/ppiankov/exorank/internal/model"
)

// Overview computes the headline statistics for a loaded snapshot: total
// default-parameter planets, median discovery year, the temperate fraction
// among rows with complete climate measurements, and nearby targets.
func Overview(rows []RawRow) model.OverviewStats {
	stats := model.OverviewStats{TotalPlanets: len(rows)}

	var years []int
	temperateTotal := 0
	temperate := 0
	for _, r := range rows {
		if r.DiscYear != nil {
			years = append(years, *r.DiscYear)
		}
		if r.EqTempK != nil && r.Insolation != nil && r.RadiusEarth != nil {
			temperateTotal++
			if *r.EqTempK >= 200 && *r.EqTempK <= 350 &&
				*r.Insolation >= 0.2 && *r.Insolation <= 2.5 &&
				*r.RadiusEarth >= 0.5 && *r.RadiusEarth <= 2.5 {
				temperate++
			}
		}
		if r.DistancePc != nil && *r.DistancePc <= 100 {
			stats.NearbyTargets++
		}
	}

	if len(years) > 0 {
		sort.Ints(years)
		mid := len(years) / 2
		if len(years)%2 == 0 {
			stats.MedianDiscYear = float64(years[mid-1]+years[mid]) / 2
		} else {
			stats.MedianDiscYear = float64(years[mid])
		}
	}
	if temperateTotal > 0 {
		stats.TemperateFraction = float64(temperate) / float64(temperateTotal)
	}
	return stats
}
