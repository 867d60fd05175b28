package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/raysh454/a11ylens/internal/model"
)

func TestCategory_Title(t *testing.T) {
	t.Parallel()
	tests := map[model.Category]string{
		model.CategoryMissingAltText: "Missing Alt Text",
		model.CategoryLowContrast:    "Low Contrast",
		model.CategoryMissingLang:    "Missing Lang",
		model.CategoryEmptyLinks:     "Empty Links",
		model.CategoryMissingLabels:  "Missing Labels",
	}
	for c, want := range tests {
		if got := c.Title(); got != want {
			t.Errorf("%s.Title() = %q, want %q", c, got, want)
		}
	}
}

func TestAllCategories_OrderAndCopy(t *testing.T) {
	t.Parallel()
	cats := model.AllCategories()
	if len(cats) != 5 || cats[0] != model.CategoryMissingAltText || cats[4] != model.CategoryMissingLabels {
		t.Fatalf("unexpected categories: %v", cats)
	}
	cats[0] = "mutated"
	if model.AllCategories()[0] != model.CategoryMissingAltText {
		t.Error("AllCategories must return a copy")
	}
}

func TestNewAccessibilityReport(t *testing.T) {
	t.Parallel()
	r, err := model.NewAccessibilityReport(map[model.Category]int{
		model.CategoryMissingAltText: 2,
		model.CategoryEmptyLinks:     1,
	})
	if err != nil {
		t.Fatalf("NewAccessibilityReport: %v", err)
	}
	if r.Count(model.CategoryMissingAltText) != 2 || r.Count(model.CategoryEmptyLinks) != 1 {
		t.Errorf("unexpected counts: %v", r.Counts())
	}
	if r.Count(model.CategoryLowContrast) != 0 {
		t.Errorf("absent category should be zero")
	}
	if r.Total() != 3 || r.Max() != 2 {
		t.Errorf("Total=%d Max=%d", r.Total(), r.Max())
	}

	if _, err := model.NewAccessibilityReport(map[model.Category]int{"bogus": 1}); !errors.Is(err, model.ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
	if _, err := model.NewAccessibilityReport(map[model.Category]int{model.CategoryLowContrast: -1}); !errors.Is(err, model.ErrNegativeCount) {
		t.Errorf("expected ErrNegativeCount, got %v", err)
	}
}

func TestAccessibilityReport_CountsIsACopy(t *testing.T) {
	t.Parallel()
	var b model.ReportBuilder
	b.Inc(model.CategoryMissingLabels)
	r := b.Build()

	m := r.Counts()
	m[model.CategoryMissingLabels] = 99
	if r.Count(model.CategoryMissingLabels) != 1 {
		t.Error("report must not change through the Counts map")
	}

	b.Inc(model.CategoryMissingLabels)
	if r.Count(model.CategoryMissingLabels) != 1 {
		t.Error("report must not change after further builder use")
	}
}

func TestAccessibilityReport_JSON(t *testing.T) {
	t.Parallel()
	var b model.ReportBuilder
	b.Inc(model.CategoryMissingAltText)
	b.Set(model.CategoryMissingLang, 1)
	r := b.Build()

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if len(raw) != 5 || raw["missing_alt_text"] != 1 || raw["missing_lang"] != 1 || raw["low_contrast"] != 0 {
		t.Errorf("unexpected JSON: %s", data)
	}

	var back model.AccessibilityReport
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if back != r {
		t.Errorf("round trip mismatch: %v vs %v", back.Counts(), r.Counts())
	}

	if err := json.Unmarshal([]byte(`{"nope": 1}`), &back); !errors.Is(err, model.ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestReportBuilder_SetClampsNegative(t *testing.T) {
	t.Parallel()
	var b model.ReportBuilder
	b.Set(model.CategoryLowContrast, -4)
	b.Inc("unknown")
	if r := b.Build(); r.Total() != 0 {
		t.Errorf("expected empty report, got %v", r.Counts())
	}
}
