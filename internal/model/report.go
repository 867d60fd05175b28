package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// Category names one accessibility issue bucket.
type Category string

const (
	CategoryMissingAltText Category = "missing_alt_text"
	CategoryLowContrast    Category = "low_contrast"
	CategoryMissingLang    Category = "missing_lang"
	CategoryEmptyLinks     Category = "empty_links"
	CategoryMissingLabels  Category = "missing_labels"
)

var allCategories = []Category{
	CategoryMissingAltText,
	CategoryLowContrast,
	CategoryMissingLang,
	CategoryEmptyLinks,
	CategoryMissingLabels,
}

// AllCategories returns the closed category set in display order.
func AllCategories() []Category {
	return append([]Category(nil), allCategories...)
}

func (c Category) index() int {
	for i, known := range allCategories {
		if known == c {
			return i
		}
	}
	return -1
}

// Valid reports whether c is one of the five known categories.
func (c Category) Valid() bool {
	return c.index() >= 0
}

// Title renders the category for display: "missing_alt_text" becomes
// "Missing Alt Text".
func (c Category) Title() string {
	words := strings.Split(string(c), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// CategoryCount is one row of a report in display order.
type CategoryCount struct {
	Category Category `json:"category" yaml:"category"`
	Count    int      `json:"count" yaml:"count"`
}

// AccessibilityReport holds the issue count for every category. The zero
// value is a report with all counts at zero. Reports are immutable once
// constructed; use NewAccessibilityReport or ReportBuilder.
type AccessibilityReport struct {
	counts [5]int
}

// NewAccessibilityReport builds a report from a category → count map.
// Categories absent from the map count as zero.
func NewAccessibilityReport(counts map[Category]int) (AccessibilityReport, error) {
	var r AccessibilityReport
	for c, n := range counts {
		i := c.index()
		if i < 0 {
			return AccessibilityReport{}, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
		}
		if n < 0 {
			return AccessibilityReport{}, fmt.Errorf("%w: %s=%d", ErrNegativeCount, c, n)
		}
		r.counts[i] = n
	}
	return r, nil
}

// Count returns the count for c, or 0 for an unknown category.
func (r AccessibilityReport) Count(c Category) int {
	if i := c.index(); i >= 0 {
		return r.counts[i]
	}
	return 0
}

// Total sums every category.
func (r AccessibilityReport) Total() int {
	total := 0
	for _, n := range r.counts {
		total += n
	}
	return total
}

// Max returns the largest single count.
func (r AccessibilityReport) Max() int {
	m := 0
	for _, n := range r.counts {
		if n > m {
			m = n
		}
	}
	return m
}

// Entries returns the counts in display order.
func (r AccessibilityReport) Entries() []CategoryCount {
	out := make([]CategoryCount, len(allCategories))
	for i, c := range allCategories {
		out[i] = CategoryCount{Category: c, Count: r.counts[i]}
	}
	return out
}

// Counts returns a copy of the report as a map.
func (r AccessibilityReport) Counts() map[Category]int {
	out := make(map[Category]int, len(allCategories))
	for i, c := range allCategories {
		out[c] = r.counts[i]
	}
	return out
}

func (r AccessibilityReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Counts())
}

func (r *AccessibilityReport) UnmarshalJSON(data []byte) error {
	var counts map[Category]int
	if err := json.Unmarshal(data, &counts); err != nil {
		return err
	}
	parsed, err := NewAccessibilityReport(counts)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r AccessibilityReport) MarshalYAML() (any, error) {
	out := make(map[string]int, len(allCategories))
	for c, n := range r.Counts() {
		out[string(c)] = n
	}
	return out, nil
}

// ReportBuilder accumulates counts during a single tally pass. Build hands
// out an immutable snapshot.
type ReportBuilder struct {
	counts [5]int
}

// Inc adds one to category c. Unknown categories are ignored.
func (b *ReportBuilder) Inc(c Category) {
	if i := c.index(); i >= 0 {
		b.counts[i]++
	}
}

// Set overwrites category c. Negative values clamp to zero.
func (b *ReportBuilder) Set(c Category, n int) {
	if n < 0 {
		n = 0
	}
	if i := c.index(); i >= 0 {
		b.counts[i] = n
	}
}

// Build returns the accumulated report.
func (b *ReportBuilder) Build() AccessibilityReport {
	return AccessibilityReport{counts: b.counts}
}
