// Package region maps the user-facing region names accepted by the search
// endpoint to the country codes and display names providers expect.
package region

import "strings"

// Default is used when the caller supplies no region.
const Default = "india"

// FallbackCountry is used for any region name not in the table.
const FallbackCountry = "IN"

// Region is one supported search region.
type Region struct {
	Name    string // request value, e.g. "uk"
	Country string // ISO 3166 alpha-2, e.g. "GB"
	Label   string // human-readable country, used in free-text provider queries
}

var regions = []Region{
	{Name: "india", Country: "IN", Label: "India"},
	{Name: "usa", Country: "US", Label: "United States"},
	{Name: "uk", Country: "GB", Label: "United Kingdom"},
	{Name: "canada", Country: "CA", Label: "Canada"},
	{Name: "australia", Country: "AU", Label: "Australia"},
	{Name: "uae", Country: "AE", Label: "United Arab Emirates"},
	{Name: "singapore", Country: "SG", Label: "Singapore"},
}

var byName = func() map[string]Region {
	m := make(map[string]Region, len(regions))
	for _, r := range regions {
		m[r.Name] = r
	}
	return m
}()

var byCountry = func() map[string]Region {
	m := make(map[string]Region, len(regions))
	for _, r := range regions {
		m[r.Country] = r
	}
	return m
}()

// All returns the supported regions in display order.
func All() []Region {
	out := make([]Region, len(regions))
	copy(out, regions)
	return out
}

// Lookup resolves a region name. Empty names resolve to Default; unknown names
// silently resolve to the FallbackCountry entry.
func Lookup(name string) Region {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = Default
	}
	if r, ok := byName[name]; ok {
		return r
	}
	return byCountry[FallbackCountry]
}

// CountryLabel returns the display name for an ISO code, or the code itself if unknown.
func CountryLabel(country string) string {
	if r, ok := byCountry[strings.ToUpper(country)]; ok {
		return r.Label
	}
	return country
}
