// Package normalize canonicalizes job titles and company names so that the same
// posting reported by different providers produces the same dedup key.
//
// The rules are lexical and only cover variants seen in real provider data.
// New variants are handled by appending a Rule, not by fuzzy matching.
package normalize

import (
	"regexp"
	"strings"
)

// Rule is one ordered substitution applied to lowercased input.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Replace string
}

// Rules is applied in order after lowercasing. Order matters: company aliases
// must run before punctuation is stripped, and "pan india" before "india".
var Rules = []Rule{
	{Name: "pwc", Pattern: regexp.MustCompile(`pricewaterhouse\s*coopers`), Replace: "pwc"},
	{Name: "ey", Pattern: regexp.MustCompile(`ernst\s*(&|and)\s*young`), Replace: "ey"},
	{Name: "tcs", Pattern: regexp.MustCompile(`tata\s+consultancy\s+services`), Replace: "tcs"},
	{Name: "pvt-ltd", Pattern: regexp.MustCompile(`\b(private|pvt\.?)\s*(limited|ltd\.?)`), Replace: ""},
	{Name: "country-prefix", Pattern: regexp.MustCompile(`^\s*(in|us|uk|gb|ca|au|ae|sg)\s*[-:|]\s*`), Replace: ""},
	{Name: "pan-india", Pattern: regexp.MustCompile(`pan\s+india`), Replace: ""},
	{Name: "india", Pattern: regexp.MustCompile(`\bindia\b`), Replace: ""},
	{Name: "non-alphanumeric", Pattern: regexp.MustCompile(`[^a-z0-9]`), Replace: ""},
}

// Normalize lowercases s and applies Rules in order. Empty input yields "".
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	out := strings.ToLower(s)
	for _, r := range Rules {
		out = r.Pattern.ReplaceAllString(out, r.Replace)
	}
	return out
}

// Key builds the dedup key for a (title, company) pair.
func Key(title, company string) string {
	return Normalize(title) + "|" + Normalize(company)
}
