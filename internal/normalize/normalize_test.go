package normalize

import "testing"

func TestNormalize_Empty(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Errorf("Normalize(\"\") = %q, want empty", got)
	}
	var unset string
	if got := Normalize(unset); got != "" {
		t.Errorf("Normalize(zero value) = %q, want empty", got)
	}
}

func TestNormalize_PwCVariantsCollapse(t *testing.T) {
	a := Normalize("PricewaterhouseCoopers India")
	b := Normalize("PwC")
	if a != b {
		t.Errorf("Normalize(PricewaterhouseCoopers India) = %q, Normalize(PwC) = %q; want equal", a, b)
	}
	if a != "pwc" {
		t.Errorf("got %q, want pwc", a)
	}
}

// One case per rule, named after the rule it exercises.
func TestNormalize_Rules(t *testing.T) {
	tests := []struct {
		rule  string
		input string
		want  string
	}{
		{rule: "pwc", input: "Pricewaterhouse Coopers", want: "pwc"},
		{rule: "ey", input: "Ernst & Young LLP", want: "eyllp"},
		{rule: "ey", input: "Ernst and Young", want: "ey"},
		{rule: "tcs", input: "Tata Consultancy Services", want: "tcs"},
		{rule: "pvt-ltd", input: "Infosys Private Limited", want: "infosys"},
		{rule: "pvt-ltd", input: "Zoho Pvt. Ltd.", want: "zoho"},
		{rule: "country-prefix", input: "IN - Software Engineer", want: "softwareengineer"},
		{rule: "country-prefix", input: "US: Data Analyst", want: "dataanalyst"},
		{rule: "pan-india", input: "Sales Executive Pan India", want: "salesexecutive"},
		{rule: "india", input: "Accenture India", want: "accenture"},
		{rule: "india", input: "Indiana Jones Co", want: "indianajonesco"},
		{rule: "non-alphanumeric", input: "Sr. Engineer (Go/K8s)", want: "srengineergok8s"},
	}
	for _, tt := range tests {
		t.Run(tt.rule+"/"+tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_CountryPrefixOnlyAtStart(t *testing.T) {
	// "in" mid-string without a separator is part of the title, not a prefix.
	if got := Normalize("Engineer in Test"); got != "engineerintest" {
		t.Errorf("got %q", got)
	}
}

func TestRules_AllNamed(t *testing.T) {
	seen := make(map[string]bool)
	for _, r := range Rules {
		if r.Name == "" || r.Pattern == nil {
			t.Fatalf("rule missing name or pattern: %+v", r)
		}
		if seen[r.Name] {
			t.Errorf("duplicate rule name %q", r.Name)
		}
		seen[r.Name] = true
	}
}

func TestKey(t *testing.T) {
	got := Key("Software Engineer", "Acme, Inc.")
	if got != "softwareengineer|acmeinc" {
		t.Errorf("Key = %q", got)
	}
	if Key("", "") != "|" {
		t.Errorf("Key of empty pair = %q, want |", Key("", ""))
	}
}
