package classify

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Policy is pure configuration for the classifier. The day window is a
// contiguous block of local hours; everything outside it uses the night
// threshold (overnight sales are slower, so the bar is lower).
type Policy struct {
	DayThreshold   int `yaml:"day_threshold"`
	NightThreshold int `yaml:"night_threshold"`
	DayStartHour   int `yaml:"day_start_hour"`
	DayEndHour     int `yaml:"day_end_hour"`

	// OkCutoff is the percentage of the denominator above which a count
	// metric is Ok regardless of the active threshold.
	OkCutoff int `yaml:"ok_cutoff_pct"`

	// ExpectedPayments is the nominal daily payment total before the
	// grouped-count adjustment.
	ExpectedPayments int `yaml:"expected_payments"`
}

// DefaultPolicy mirrors the values the bot ran with before the policy
// moved into a file.
func DefaultPolicy() Policy {
	return Policy{
		DayThreshold:     75,
		NightThreshold:   50,
		DayStartHour:     8,
		DayEndHour:       22,
		OkCutoff:         85,
		ExpectedPayments: 100,
	}
}

// LoadPolicy reads a YAML policy file, filling unset fields from the
// defaults. An empty path yields the defaults.
func LoadPolicy(path string) (Policy, error) {
	p := DefaultPolicy()
	if path == "" {
		return p, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read policy: %w", err)
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("parse policy: %w", err)
	}
	if p.OkCutoff <= 0 {
		p.OkCutoff = 85
	}
	if p.ExpectedPayments <= 0 {
		p.ExpectedPayments = 100
	}
	return p, nil
}

// Active returns the threshold for the given local time.
func (p Policy) Active(now time.Time) int {
	h := now.Hour()
	if h >= p.DayStartHour && h < p.DayEndHour {
		return p.DayThreshold
	}
	return p.NightThreshold
}
