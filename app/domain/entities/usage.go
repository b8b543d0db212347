package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

const (
	// PremiumModel is the usage key that carries the premium request quota.
	PremiumModel = "gpt-4"
	// DefaultMaxRequests applies when the API omits maxRequestUsage.
	DefaultMaxRequests = 500

	startOfMonthKey = "startOfMonth"
)

// ModelUsage holds request counters for a single model bucket. Only
// NumRequests and MaxRequestUsage feed the quota; the other counters are kept
// as reported and never fail a decode.
type ModelUsage struct {
	NumRequests      int      `json:"numRequests"`
	NumRequestsTotal float64  `json:"numRequestsTotal,omitempty"`
	NumTokens        float64  `json:"numTokens,omitempty"`
	MaxRequestUsage  *int     `json:"maxRequestUsage"`
	MaxTokenUsage    *float64 `json:"maxTokenUsage,omitempty"`
}

// MaxRequests returns the quota, defaulting to DefaultMaxRequests when unset.
func (m ModelUsage) MaxRequests() int {
	if m.MaxRequestUsage == nil {
		return DefaultMaxRequests
	}
	return *m.MaxRequestUsage
}

// UsageSnapshot is the usage-by-user payload. The API returns model buckets
// and startOfMonth as siblings in one object.
type UsageSnapshot struct {
	Models       map[string]ModelUsage
	StartOfMonth string

	// DecodeIssues lists fields that could not be decoded and fell back to
	// defaults. It is not persisted.
	DecodeIssues []error
}

// Premium returns the premium model bucket, zero-valued when absent.
func (u UsageSnapshot) Premium() ModelUsage {
	return u.Models[PremiumModel]
}

// UnmarshalJSON splits the flat API object into model buckets and startOfMonth.
// Fields are decoded one by one, so a malformed field only resets that field
// and is recorded in DecodeIssues. Non-object values other than the premium
// bucket are ignored.
func (u *UsageSnapshot) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode usage: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("decode usage: null payload")
	}

	u.Models = make(map[string]ModelUsage, len(raw))
	u.StartOfMonth = ""
	u.DecodeIssues = nil
	for key, value := range raw {
		if key == startOfMonthKey {
			var s string
			if err := json.Unmarshal(value, &s); err == nil {
				u.StartOfMonth = s
			}
			continue
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(value, &fields); err != nil || fields == nil {
			if key == PremiumModel {
				u.DecodeIssues = append(u.DecodeIssues, fmt.Errorf("%s: not an object", key))
			}
			continue
		}
		m, issues := decodeModelUsage(key, fields)
		u.Models[key] = m
		u.DecodeIssues = append(u.DecodeIssues, issues...)
	}
	return nil
}

func decodeModelUsage(model string, fields map[string]json.RawMessage) (ModelUsage, []error) {
	var (
		m      ModelUsage
		issues []error
	)

	if v, ok := fields["numRequests"]; ok && !isNull(v) {
		n, err := decodeCount(v)
		if err != nil {
			issues = append(issues, fmt.Errorf("%s.numRequests: %w", model, err))
		} else {
			m.NumRequests = n
		}
	}
	if v, ok := fields["maxRequestUsage"]; ok && !isNull(v) {
		n, err := decodeCount(v)
		if err != nil {
			issues = append(issues, fmt.Errorf("%s.maxRequestUsage: %w", model, err))
		} else {
			m.MaxRequestUsage = &n
		}
	}

	// Informational counters: keep whatever decodes, ignore the rest.
	_ = json.Unmarshal(fields["numRequestsTotal"], &m.NumRequestsTotal)
	_ = json.Unmarshal(fields["numTokens"], &m.NumTokens)
	if v, ok := fields["maxTokenUsage"]; ok && !isNull(v) {
		var f float64
		if err := json.Unmarshal(v, &f); err == nil {
			m.MaxTokenUsage = &f
		}
	}
	return m, issues
}

// decodeCount accepts any JSON number with an integral value, such as 450 or 4.5e2.
func decodeCount(v json.RawMessage) (int, error) {
	var f float64
	if err := json.Unmarshal(v, &f); err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a whole number: %s", v)
	}
	return int(f), nil
}

func isNull(v json.RawMessage) bool {
	return string(bytes.TrimSpace(v)) == "null"
}

// MarshalJSON writes the snapshot back in the API shape so cached bundles
// decode the same way as fresh ones.
func (u UsageSnapshot) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(u.Models)+1)
	for key, m := range u.Models {
		out[key] = m
	}
	if u.StartOfMonth != "" {
		out[startOfMonthKey] = u.StartOfMonth
	}
	return json.Marshal(out)
}

// InvoiceItem is one invoice line; Cents is in minor currency units.
type InvoiceItem struct {
	Cents       float64 `json:"cents"`
	Description string  `json:"description"`
}

// InvoiceSnapshot is the monthly invoice payload.
type InvoiceSnapshot struct {
	Items []InvoiceItem `json:"items"`
}

// LimitSnapshot is the hard-limit payload. HardLimit is in major units and
// nil when no limit is configured.
type LimitSnapshot struct {
	HardLimit *float64 `json:"hardLimit,omitempty"`
}

// Value returns the hard limit or 0.
func (l *LimitSnapshot) Value() float64 {
	if l == nil || l.HardLimit == nil {
		return 0
	}
	return *l.HardLimit
}

// UsageBundle is everything fetched in one run. Invoice and Limits are
// best-effort and may be nil.
type UsageBundle struct {
	Usage   UsageSnapshot    `json:"usage"`
	Invoice *InvoiceSnapshot `json:"invoice"`
	Limits  *LimitSnapshot   `json:"limits"`
	Month   int              `json:"month"`
	Year    int              `json:"year"`
}
