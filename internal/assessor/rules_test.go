package assessor_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/raysh454/a11ylens/internal/assessor"
	"github.com/raysh454/a11ylens/internal/model"
	"golang.org/x/net/html"
)

func tally(t *testing.T, src string) model.AccessibilityReport {
	t.Helper()
	report, err := assessor.TallyHTML([]byte(src))
	if err != nil {
		t.Fatalf("TallyHTML: %v", err)
	}
	return report
}

func TestTally_EndToEndExample(t *testing.T) {
	t.Parallel()
	src := `<html lang="en"><body><img src="x.png"><a href="/"></a><input></body></html>`

	got := tally(t, src).Counts()
	want := map[model.Category]int{
		model.CategoryMissingAltText: 1,
		model.CategoryLowContrast:    0,
		model.CategoryMissingLang:    0,
		model.CategoryEmptyLinks:     1,
		model.CategoryMissingLabels:  1,
	}
	for c, n := range want {
		if got[c] != n {
			t.Errorf("%s: expected %d, got %d", c, n, got[c])
		}
	}
}

func TestTally_MissingAltText(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		body string
		want int
	}{
		{"none", `<p>text</p>`, 0},
		{"all described", `<img alt="a"><img alt="b">`, 0},
		{"absent alt", `<img><img src="x">`, 2},
		{"empty alt counts", `<img alt="">`, 1},
		{"whitespace alt is non-empty", `<img alt=" ">`, 0},
		{"mixed", `<img><img alt="ok"><img alt=""><img alt="fine">`, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tally(t, `<html lang="en"><body>`+tt.body+`</body></html>`)
			if n := got.Count(model.CategoryMissingAltText); n != tt.want {
				t.Errorf("expected %d, got %d", tt.want, n)
			}
		})
	}
}

func TestTally_MissingAltText_IgnoresPresentAlt(t *testing.T) {
	t.Parallel()
	for n := 0; n < 4; n++ {
		for m := 0; m < 4; m++ {
			body := strings.Repeat(`<img src="a.png">`, n) + strings.Repeat(`<img alt="x">`, m)
			got := tally(t, `<html lang="en"><body>`+body+`</body></html>`).Count(model.CategoryMissingAltText)
			if got != n {
				t.Errorf("n=%d m=%d: expected %d, got %d", n, m, n, got)
			}
		}
	}
}

func TestTally_LowContrast(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		head string
		want int
	}{
		{"no style blocks", ``, 0},
		{"color only", `<style>p { color: red; }</style>`, 0},
		{"color and background", `<style>p { color: #777; background-color: #888; }</style>`, 1},
		{"background only satisfies both", `<style>body { background-color: white; }</style>`, 1},
		{"spaced colon does not match", `<style>p { color : red; background-color : blue; }</style>`, 0},
		{"inline style attribute ignored", `<p style="color: red; background-color: red">x</p>`, 0},
		{"two matching blocks", `<style>a{background-color:#fff}</style><style>b{color:#000;background-color:#111}</style>`, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tally(t, `<html lang="en"><head>`+tt.head+`</head><body></body></html>`)
			if n := got.Count(model.CategoryLowContrast); n != tt.want {
				t.Errorf("expected %d, got %d", tt.want, n)
			}
		})
	}
}

func TestTally_MissingLang(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		want int
	}{
		{"lang present", `<html lang="en"><body></body></html>`, 0},
		{"empty lang present", `<html lang=""><body></body></html>`, 0},
		{"no lang", `<html><body></body></html>`, 1},
		{"lang only on body", `<html><body lang="en"></body></html>`, 1},
		{"uppercase root tag", `<HTML><body></body></HTML>`, 1},
		{"doctype before root", `<!DOCTYPE html><html lang="de"></html>`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if n := tally(t, tt.src).Count(model.CategoryMissingLang); n != tt.want {
				t.Errorf("expected %d, got %d", tt.want, n)
			}
		})
	}
}

func TestTally_NoRootElement(t *testing.T) {
	t.Parallel()
	doc := goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode})

	_, err := assessor.Tally(doc)
	if !errors.Is(err, assessor.ErrNoRootElement) {
		t.Fatalf("expected ErrNoRootElement, got %v", err)
	}
}

func TestTallyHTML_RequiresRootTag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ``},
		{"whitespace only", " \n\t "},
		{"fragment", `<p>fragment, no html tag</p>`},
		{"plain text", "404 page not found\n"},
		{"root tag only in comment", `<!-- <html lang="en"> --><p>x</p>`},
		{"root tag only in script", `<script>document.write("<html>")</script>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := assessor.TallyHTML([]byte(tt.src)); !errors.Is(err, assessor.ErrNoRootElement) {
				t.Fatalf("expected ErrNoRootElement, got %v", err)
			}
			if _, err := assessor.TallyReader(strings.NewReader(tt.src)); !errors.Is(err, assessor.ErrNoRootElement) {
				t.Fatalf("TallyReader: expected ErrNoRootElement, got %v", err)
			}
		})
	}
}

func TestTally_NilDocument(t *testing.T) {
	t.Parallel()
	if _, err := assessor.Tally(nil); !errors.Is(err, assessor.ErrNilDocument) {
		t.Fatalf("expected ErrNilDocument, got %v", err)
	}
}

func TestTally_EmptyLinks(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		body string
		want int
	}{
		{"text link", `<a href="/">Home</a>`, 0},
		{"empty", `<a href="/"></a>`, 1},
		{"whitespace only", "<a href=\"/\">  \n\t </a>", 1},
		{"image only", `<a href="/"><img src="logo.png" alt="Home"></a>`, 0},
		{"nested image", `<a href="/"><span><img src="logo.png"></span></a>`, 0},
		{"nested text", `<a href="/"><span> Go </span></a>`, 0},
		{"empty span", `<a href="/"><span></span></a>`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tally(t, `<html lang="en"><body>`+tt.body+`</body></html>`)
			if n := got.Count(model.CategoryEmptyLinks); n != tt.want {
				t.Errorf("expected %d, got %d", tt.want, n)
			}
		})
	}
}

func TestTally_MissingLabels(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		body string
		want int
	}{
		{"no inputs", `<label>Name</label>`, 0},
		{"input without label", `<input name="q">`, 1},
		{"label before input", `<label for="q">Search</label><input id="q">`, 0},
		{"label after input", `<input id="q"><label for="q">Search</label>`, 1},
		{"wrapping label", `<label>Search <input></label>`, 0},
		{"earlier unrelated label covers later inputs", `<form><label>A</label></form><div><input><input></div>`, 0},
		{"only inputs before first label", `<input><input><label>x</label><input>`, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tally(t, `<html lang="en"><body>`+tt.body+`</body></html>`)
			if n := got.Count(model.CategoryMissingLabels); n != tt.want {
				t.Errorf("expected %d, got %d", tt.want, n)
			}
		})
	}
}

func TestRules_CoverEveryCategoryInOrder(t *testing.T) {
	t.Parallel()
	rules := assessor.Rules()
	cats := model.AllCategories()
	if len(rules) != len(cats) {
		t.Fatalf("expected %d rules, got %d", len(cats), len(rules))
	}
	for i, r := range rules {
		if r.Category != cats[i] {
			t.Errorf("rule %d: expected %s, got %s", i, cats[i], r.Category)
		}
		if r.Count == nil {
			t.Errorf("rule %s has no Count func", r.Category)
		}
		if r.Selector == "" {
			t.Errorf("rule %s has no selector", r.Category)
		}
	}
}

func TestRules_CountWithinSelector(t *testing.T) {
	t.Parallel()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<html lang="en"><body><img><div class="hero"><img><img alt="x"></div></body></html>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	rule := assessor.Rules()[0]
	if rule.Category != model.CategoryMissingAltText {
		t.Fatalf("unexpected first rule %s", rule.Category)
	}

	all, err := rule.Count(doc, rule.Selector)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	scoped, err := rule.Count(doc, ".hero img")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if all != 2 || scoped != 1 {
		t.Errorf("expected 2 overall and 1 in .hero, got %d and %d", all, scoped)
	}
}
