package models

import "time"

// AttackType tags the kind of attack shown in the feed and breakdown chart
type AttackType string

const (
	AttackDDoS           AttackType = "ddos"
	AttackBruteForce     AttackType = "brute-force"
	AttackSQLInjection   AttackType = "sql-injection"
	AttackXSS            AttackType = "xss"
	AttackPhishing       AttackType = "phishing"
	AttackRansomware     AttackType = "ransomware"
	AttackZeroDay        AttackType = "zero-day"
	AttackPortScan       AttackType = "port-scan"
	AttackManInTheMiddle AttackType = "man-in-the-middle"
)

var attackTypeLabels = map[AttackType]string{
	AttackDDoS:           "DDoS",
	AttackBruteForce:     "Brute Force",
	AttackSQLInjection:   "SQL Injection",
	AttackXSS:            "XSS",
	AttackPhishing:       "Phishing",
	AttackRansomware:     "Ransomware",
	AttackZeroDay:        "Zero-Day",
	AttackPortScan:       "Port Scan",
	AttackManInTheMiddle: "MitM",
}

// Label returns the human readable name used by the dashboard widgets
func (t AttackType) Label() string {
	if label, ok := attackTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// Valid reports whether t is one of the known attack types
func (t AttackType) Valid() bool {
	_, ok := attackTypeLabels[t]
	return ok
}

// SeverityLevel is ordered critical > high > medium > low > info
type SeverityLevel string

const (
	SeverityCritical SeverityLevel = "critical"
	SeverityHigh     SeverityLevel = "high"
	SeverityMedium   SeverityLevel = "medium"
	SeverityLow      SeverityLevel = "low"
	SeverityInfo     SeverityLevel = "info"
)

// Rank orders severities; higher is worse. Unknown levels rank 0.
func (s SeverityLevel) Rank() int {
	switch s {
	case SeverityCritical:
		return 5
	case SeverityHigh:
		return 4
	case SeverityMedium:
		return 3
	case SeverityLow:
		return 2
	case SeverityInfo:
		return 1
	}
	return 0
}

func (s SeverityLevel) Valid() bool {
	return s.Rank() > 0
}

// ThreatLevel is the overall posture shown on the threat level card
type ThreatLevel string

const (
	ThreatCritical ThreatLevel = "critical"
	ThreatElevated ThreatLevel = "elevated"
	ThreatGuarded  ThreatLevel = "guarded"
	ThreatLow      ThreatLevel = "low"
)

func (l ThreatLevel) Valid() bool {
	switch l {
	case ThreatCritical, ThreatElevated, ThreatGuarded, ThreatLow:
		return true
	}
	return false
}

// GeoLocation is a reference point on the globe
type GeoLocation struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	City        string  `json:"city,omitempty"`
	Country     string  `json:"country"`
	CountryCode string  `json:"countryCode"` // ISO 3166-1 alpha-2
}

// DisplayName returns the city, or the country when no city is known
func (g GeoLocation) DisplayName() string {
	if g.City != "" {
		return g.City
	}
	return g.Country
}

// Attack is a single synthetic attack event. Source and target never share a country.
type Attack struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Type      AttackType    `json:"type"`
	Severity  SeverityLevel `json:"severity"`
	Source    GeoLocation   `json:"source"`
	Target    GeoLocation   `json:"target"`
	Protocol  string        `json:"protocol,omitempty"` // TCP, UDP, HTTP, etc.
	Port      int           `json:"port"`               // [0, 65535)
}

// ThreatStatus is a snapshot for the stat cards, regenerated wholesale
type ThreatStatus struct {
	Level            ThreatLevel `json:"level"`
	AttacksPerMinute int         `json:"attacksPerMinute"`
	ActiveIncidents  int         `json:"activeIncidents"`
	TopAttackType    AttackType  `json:"topAttackType"`
}

type CountryAttackStat struct {
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	Attacks     int    `json:"attacks"`
}

type AttackTypeStat struct {
	Type  AttackType `json:"type"`
	Count int        `json:"count"`
}

// TimelinePoint is one hour bucket of the 24h timeline chart
type TimelinePoint struct {
	Time    string `json:"time"` // "HH:00"
	Attacks int    `json:"attacks"`
	Blocked int    `json:"blocked"`
}

// Summary backs the top row of stat cards
type Summary struct {
	TotalAttacks  int         `json:"totalAttacks"`
	Blocked       int         `json:"blocked"`
	BlockRate     float64     `json:"blockRate"` // 0.0 to 1.0
	ActiveThreats int         `json:"activeThreats"`
	ThreatLevel   ThreatLevel `json:"threatLevel"`
}

// Dataset is everything the dashboard page renders for one seed
type Dataset struct {
	Seed         int64               `json:"seed"`
	Attacks      []Attack            `json:"attacks"`
	ThreatStatus ThreatStatus        `json:"threatStatus"`
	TopCountries []CountryAttackStat `json:"topCountries"`
	AttackTypes  []AttackTypeStat    `json:"attackTypes"`
	Timeline     []TimelinePoint     `json:"timeline"`
	Summary      Summary             `json:"summary"`
}
