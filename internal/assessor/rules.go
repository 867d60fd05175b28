package assessor

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/raysh454/a11ylens/internal/model"
)

// Rule is one independent check over the document. Count returns the number
// of offending nodes among those matched by Selector.
type Rule struct {
	Category model.Category
	Selector string
	Count    func(doc *goquery.Document, selector string) (int, error)
}

// Rules returns the five checks in display order.
func Rules() []Rule {
	return []Rule{
		{Category: model.CategoryMissingAltText, Selector: "img", Count: countMissingAlt},
		{Category: model.CategoryLowContrast, Selector: "style", Count: countLowContrast},
		{Category: model.CategoryMissingLang, Selector: ":root", Count: countMissingLang},
		{Category: model.CategoryEmptyLinks, Selector: "a", Count: countEmptyLinks},
		{Category: model.CategoryMissingLabels, Selector: "label, input", Count: countMissingLabels},
	}
}

// Tally runs every rule against doc and returns the resulting report.
func Tally(doc *goquery.Document) (model.AccessibilityReport, error) {
	if doc == nil || doc.Selection == nil {
		return model.AccessibilityReport{}, ErrNilDocument
	}
	var b model.ReportBuilder
	for _, r := range Rules() {
		n, err := r.Count(doc, r.Selector)
		if err != nil {
			return model.AccessibilityReport{}, err
		}
		b.Set(r.Category, n)
	}
	return b.Build(), nil
}

// TallyReader reads r fully and tallies it as TallyHTML does.
func TallyReader(r io.Reader) (model.AccessibilityReport, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return model.AccessibilityReport{}, fmt.Errorf("read document: %w", err)
	}
	return TallyHTML(body)
}

// TallyHTML parses body and tallies it. The source must contain an <html>
// start tag: the parser would otherwise synthesize a root and the lang check
// would report on an element the page never had.
func TallyHTML(body []byte) (model.AccessibilityReport, error) {
	if !hasRootTag(body) {
		return model.AccessibilityReport{}, ErrNoRootElement
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return model.AccessibilityReport{}, err
	}
	return Tally(doc)
}

// hasRootTag scans body for an <html> start tag. Tags inside comments and
// raw text elements are not seen by the tokenizer.
func hasRootTag(body []byte) bool {
	z := html.NewTokenizer(bytes.NewReader(body))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) == atom.Html {
				return true
			}
		}
	}
}

// countMissingAlt counts images whose alt is absent or empty.
func countMissingAlt(doc *goquery.Document, selector string) (int, error) {
	n := 0
	doc.Find(selector).Each(func(_ int, img *goquery.Selection) {
		if alt, ok := img.Attr("alt"); !ok || alt == "" {
			n++
		}
	})
	return n, nil
}

// countLowContrast is a textual heuristic: a style block mentioning both a
// color and a background color. "background-color:" alone contains both.
func countLowContrast(doc *goquery.Document, selector string) (int, error) {
	n := 0
	doc.Find(selector).Each(func(_ int, style *goquery.Selection) {
		css := style.Text()
		if strings.Contains(css, "color:") && strings.Contains(css, "background-color:") {
			n++
		}
	})
	return n, nil
}

// countMissingLang checks the root element only. Presence of the attribute
// decides, so lang="" passes.
func countMissingLang(doc *goquery.Document, selector string) (int, error) {
	root := doc.Find(selector).First()
	if root.Length() == 0 {
		return 0, ErrNoRootElement
	}
	if _, ok := root.Attr("lang"); ok {
		return 0, nil
	}
	return 1, nil
}

// countEmptyLinks counts anchors with no visible text and no image inside.
func countEmptyLinks(doc *goquery.Document, selector string) (int, error) {
	n := 0
	doc.Find(selector).Each(func(_ int, a *goquery.Selection) {
		if strings.TrimSpace(a.Text()) == "" && a.Find("img").Length() == 0 {
			n++
		}
	})
	return n, nil
}

// countMissingLabels walks labels and inputs in document order. An input
// counts when no label of any kind appeared before it; a wrapping label is
// an ancestor and so appears first.
func countMissingLabels(doc *goquery.Document, selector string) (int, error) {
	n := 0
	seenLabel := false
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "label" {
			seenLabel = true
			return
		}
		if !seenLabel {
			n++
		}
	})
	return n, nil
}
