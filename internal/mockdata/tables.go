package mockdata

import "github.com/nshruti113/attack-map-dashboard/internal/models"

// Reference tables. Order matters: it fixes which element a given draw selects.

var locations = [...]models.GeoLocation{
	{Lat: 39.9, Lng: 116.4, City: "Beijing", Country: "China", CountryCode: "CN"},
	{Lat: 55.75, Lng: 37.62, City: "Moscow", Country: "Russia", CountryCode: "RU"},
	{Lat: 37.57, Lng: 126.98, City: "Seoul", Country: "South Korea", CountryCode: "KR"},
	{Lat: 38.9, Lng: -77.04, City: "Washington", Country: "United States", CountryCode: "US"},
	{Lat: 51.51, Lng: -0.13, City: "London", Country: "United Kingdom", CountryCode: "GB"},
	{Lat: 48.86, Lng: 2.35, City: "Paris", Country: "France", CountryCode: "FR"},
	{Lat: 52.52, Lng: 13.41, City: "Berlin", Country: "Germany", CountryCode: "DE"},
	{Lat: 35.68, Lng: 139.69, City: "Tokyo", Country: "Japan", CountryCode: "JP"},
	{Lat: -23.55, Lng: -46.63, City: "São Paulo", Country: "Brazil", CountryCode: "BR"},
	{Lat: 28.61, Lng: 77.21, City: "New Delhi", Country: "India", CountryCode: "IN"},
	{Lat: 1.35, Lng: 103.82, City: "Singapore", Country: "Singapore", CountryCode: "SG"},
	{Lat: -33.87, Lng: 151.21, City: "Sydney", Country: "Australia", CountryCode: "AU"},
	{Lat: 41.01, Lng: 28.98, City: "Istanbul", Country: "Turkey", CountryCode: "TR"},
	{Lat: 25.2, Lng: 55.27, City: "Dubai", Country: "UAE", CountryCode: "AE"},
	{Lat: 37.77, Lng: -122.42, City: "San Francisco", Country: "United States", CountryCode: "US"},
	{Lat: 19.43, Lng: -99.13, City: "Mexico City", Country: "Mexico", CountryCode: "MX"},
	{Lat: 59.33, Lng: 18.07, City: "Stockholm", Country: "Sweden", CountryCode: "SE"},
	{Lat: 50.45, Lng: 30.52, City: "Kyiv", Country: "Ukraine", CountryCode: "UA"},
	{Lat: 35.69, Lng: 51.39, City: "Tehran", Country: "Iran", CountryCode: "IR"},
	{Lat: 6.52, Lng: 3.38, City: "Lagos", Country: "Nigeria", CountryCode: "NG"},
}

var attackTypes = [...]models.AttackType{
	models.AttackDDoS,
	models.AttackBruteForce,
	models.AttackSQLInjection,
	models.AttackXSS,
	models.AttackPhishing,
	models.AttackRansomware,
	models.AttackZeroDay,
	models.AttackPortScan,
	models.AttackManInTheMiddle,
}

var severityLevels = [...]models.SeverityLevel{
	models.SeverityCritical,
	models.SeverityHigh,
	models.SeverityMedium,
	models.SeverityLow,
	models.SeverityInfo,
}

var severityWeights = [...]float64{0.05, 0.15, 0.35, 0.30, 0.15}

var protocols = [...]string{"TCP", "UDP", "HTTP", "HTTPS", "SSH", "FTP", "DNS", "SMTP"}

var targetedCountries = [...]struct {
	country     string
	countryCode string
}{
	{"United States", "US"},
	{"United Kingdom", "GB"},
	{"Germany", "DE"},
	{"Japan", "JP"},
	{"France", "FR"},
	{"Australia", "AU"},
	{"South Korea", "KR"},
	{"Singapore", "SG"},
}

// AttackTypes returns the known attack types in table order.
func AttackTypes() []models.AttackType {
	out := make([]models.AttackType, len(attackTypes))
	copy(out, attackTypes[:])
	return out
}

// Locations returns a copy of the location reference table.
func Locations() []models.GeoLocation {
	out := make([]models.GeoLocation, len(locations))
	copy(out, locations[:])
	return out
}

// Protocols returns a copy of the protocol table.
func Protocols() []string {
	out := make([]string, len(protocols))
	copy(out, protocols[:])
	return out
}
