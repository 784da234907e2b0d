package mockdata

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/nshruti113/attack-map-dashboard/internal/models"
)

// Each aggregate view draws from its own offset of the seed so the views
// stay independent of each other and of the attack batch.
const (
	threatStatusOffset = 100
	countriesOffset    = 200
	breakdownOffset    = 300
	timelineOffset     = 400
)

// GenerateThreatStatus draws attacks per minute, then active incidents.
// Level and top attack type are fixed values; nothing derives them yet.
func GenerateThreatStatus(seed int64) models.ThreatStatus {
	stream := NewStream(seed + threatStatusOffset)
	attacksPerMinute := scaled(stream.Float64(), 800, 200)
	activeIncidents := scaled(stream.Float64(), 50, 10)

	return models.ThreatStatus{
		Level:            models.ThreatElevated,
		AttacksPerMinute: attacksPerMinute,
		ActiveIncidents:  activeIncidents,
		TopAttackType:    models.AttackDDoS,
	}
}

// GenerateTopTargetedCountries returns the eight tracked countries sorted by
// attacks, highest first.
func GenerateTopTargetedCountries(seed int64) []models.CountryAttackStat {
	stream := NewStream(seed + countriesOffset)
	stats := make([]models.CountryAttackStat, len(targetedCountries))
	for i, c := range targetedCountries {
		stats[i] = models.CountryAttackStat{
			Country:     c.country,
			CountryCode: c.countryCode,
			Attacks:     scaled(stream.Float64(), 5000, 500),
		}
	}

	slices.SortStableFunc(stats, func(a, b models.CountryAttackStat) int {
		return cmp.Compare(b.Attacks, a.Attacks)
	})
	return stats
}

// GenerateAttackTypeBreakdown returns one entry per attack type sorted by
// count, highest first.
func GenerateAttackTypeBreakdown(seed int64) []models.AttackTypeStat {
	stream := NewStream(seed + breakdownOffset)
	stats := make([]models.AttackTypeStat, len(attackTypes))
	for i, t := range attackTypes {
		stats[i] = models.AttackTypeStat{
			Type:  t,
			Count: scaled(stream.Float64(), 3000, 100),
		}
	}

	slices.SortStableFunc(stats, func(a, b models.AttackTypeStat) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return stats
}

// GenerateTimeline returns 24 hourly points, 00:00 through 23:00.
func GenerateTimeline(seed int64) []models.TimelinePoint {
	stream := NewStream(seed + timelineOffset)
	points := make([]models.TimelinePoint, 24)
	for h := range points {
		attacks := scaled(stream.Float64(), 400, 100)
		ratio := 0.6 + float64(stream.Float64()*0.3)
		blocked := int(math.Floor(float64(attacks) * ratio))

		points[h] = models.TimelinePoint{
			Time:    fmt.Sprintf("%02d:00", h),
			Attacks: attacks,
			Blocked: clampBlocked(blocked, attacks),
		}
	}
	return points
}

// clampBlocked keeps blocked/attacks within [0.6, 0.9]. Flooring the product
// can otherwise land just under 60%.
func clampBlocked(blocked, attacks int) int {
	lo := (6*attacks + 9) / 10
	hi := 9 * attacks / 10
	return min(max(blocked, lo), hi)
}

// GenerateSummary totals the timeline for the stat cards and carries the
// threat status fields they display.
func GenerateSummary(seed int64) models.Summary {
	return summarize(GenerateTimeline(seed), GenerateThreatStatus(seed))
}

func summarize(timeline []models.TimelinePoint, status models.ThreatStatus) models.Summary {
	summary := models.Summary{
		ActiveThreats: status.ActiveIncidents,
		ThreatLevel:   status.Level,
	}
	for _, p := range timeline {
		summary.TotalAttacks += p.Attacks
		summary.Blocked += p.Blocked
	}
	if summary.TotalAttacks > 0 {
		summary.BlockRate = float64(summary.Blocked) / float64(summary.TotalAttacks)
	}
	return summary
}

// GenerateDataset assembles every view the dashboard page renders for seed.
func GenerateDataset(seed int64, attackCount int, now time.Time) models.Dataset {
	status := GenerateThreatStatus(seed)
	timeline := GenerateTimeline(seed)

	return models.Dataset{
		Seed:         seed,
		Attacks:      GenerateAttacksAt(attackCount, seed, now),
		ThreatStatus: status,
		TopCountries: GenerateTopTargetedCountries(seed),
		AttackTypes:  GenerateAttackTypeBreakdown(seed),
		Timeline:     timeline,
		Summary:      summarize(timeline, status),
	}
}
