package mockdata

import (
	"strconv"
	"time"

	"github.com/nshruti113/attack-map-dashboard/internal/models"
)

const (
	maxTargetRedraws = 100
	attackWindowMs   = 3600000
	portSpace        = 65535
)

// GenerateAttack builds one attack from src, stamped within the hour before now.
func GenerateAttack(id string, src Source) models.Attack {
	return GenerateAttackAt(id, src, time.Now())
}

// GenerateAttackAt is GenerateAttack with an explicit clock.
//
// Draw order is fixed: source, target (one or more), timestamp offset, type,
// severity, protocol, port. Changing it changes every attack for a given seed.
func GenerateAttackAt(id string, src Source, now time.Time) models.Attack {
	source := Pick(locations[:], src)
	target := pickTarget(locations[:], source, src)
	offset := time.Duration(index(src.Float64(), attackWindowMs)) * time.Millisecond

	return models.Attack{
		ID:        id,
		Timestamp: now.Add(-offset),
		Type:      Pick(attackTypes[:], src),
		Severity:  PickWeighted(severityLevels[:], severityWeights[:], src),
		Source:    source,
		Target:    target,
		Protocol:  Pick(protocols[:], src),
		Port:      index(src.Float64(), portSpace),
	}
}

// pickTarget redraws until the target lies in another country. After
// maxTargetRedraws it walks forward from the last draw instead.
func pickTarget(table []models.GeoLocation, source models.GeoLocation, src Source) models.GeoLocation {
	i := index(src.Float64(), len(table))
	for n := 0; table[i].CountryCode == source.CountryCode; n++ {
		if n == maxTargetRedraws {
			return nextForeign(table, i, source.CountryCode)
		}
		i = index(src.Float64(), len(table))
	}
	return table[i]
}

func nextForeign(table []models.GeoLocation, from int, countryCode string) models.GeoLocation {
	for k := 1; k < len(table); k++ {
		j := (from + k) % len(table)
		if table[j].CountryCode != countryCode {
			return table[j]
		}
	}
	return table[from]
}

// GenerateAttacks returns count attacks with ids atk-0..atk-(count-1), all
// drawn from a single stream seeded with seed. A non-positive count yields an
// empty slice.
func GenerateAttacks(count int, seed int64) []models.Attack {
	return GenerateAttacksAt(count, seed, time.Now())
}

func GenerateAttacksAt(count int, seed int64, now time.Time) []models.Attack {
	if count <= 0 {
		return []models.Attack{}
	}

	stream := NewStream(seed)
	attacks := make([]models.Attack, count)
	for i := range attacks {
		attacks[i] = GenerateAttackAt("atk-"+strconv.Itoa(i), stream, now)
	}
	return attacks
}
