package demoserver

import (
	"sort"

	"github.com/raysh454/a11ylens/internal/model"
)

// QuickrefPath serves a page laid out like the WCAG quick reference.
const QuickrefPath = "/quickref/"

// DefectiveRevision is the first revision of every page, the one that carries
// the defects the page exists to show.
const DefectiveRevision = 1

// PageRevision is one state of a fixture page and the tally it must produce.
type PageRevision struct {
	HTML     string
	Expected map[model.Category]int
}

// Total is the sum of the expected counts.
func (r PageRevision) Total() int {
	n := 0
	for _, c := range r.Expected {
		n += c
	}
	return n
}

// PageDefinition is a fixture page. Later revisions remove defects; the
// highest one is the fully repaired page.
type PageDefinition struct {
	Path        string
	Description string
	Revisions   map[int]PageRevision
}

// FixedRevision returns the highest revision, the one with defects repaired.
func (p PageDefinition) FixedRevision() int {
	fixed := DefectiveRevision
	for n := range p.Revisions {
		if n > fixed {
			fixed = n
		}
	}
	return fixed
}

// Revision returns revision n, falling back to the closest earlier one.
func (p PageDefinition) Revision(n int) PageRevision {
	for ; n >= DefectiveRevision; n-- {
		if r, ok := p.Revisions[n]; ok {
			return r
		}
	}
	return p.Revisions[DefectiveRevision]
}

// RevisionNumbers lists the page's revisions in ascending order.
func (p PageDefinition) RevisionNumbers() []int {
	ns := make([]int, 0, len(p.Revisions))
	for n := range p.Revisions {
		ns = append(ns, n)
	}
	sort.Ints(ns)
	return ns
}

// GetAllPages returns every fixture page, home first.
func GetAllPages() []PageDefinition {
	return []PageDefinition{
		getHomePage(),
		getContactPage(),
		getGalleryPage(),
		getStyledPage(),
		getNavPage(),
	}
}

func counts(alt, contrast, lang, links, labels int) map[model.Category]int {
	return map[model.Category]int{
		model.CategoryMissingAltText: alt,
		model.CategoryLowContrast:    contrast,
		model.CategoryMissingLang:    lang,
		model.CategoryEmptyLinks:     links,
		model.CategoryMissingLabels:  labels,
	}
}

// ===== HOME PAGE =====

func getHomePage() PageDefinition {
	return PageDefinition{
		Path:        "/",
		Description: "Landing page with one defect of every kind; revision 2 repairs all of them",
		Revisions: map[int]PageRevision{
			1: {
				HTML: `<!DOCTYPE html>
<html>
<head>
    <title>Acme Widgets</title>
    <style>
        .hero { color: #777; background-color: #888; }
    </style>
</head>
<body>
    <header>
        <img src="/static/logo.png">
        <a href="/"></a>
    </header>
    <main>
        <h1>Welcome to Acme Widgets</h1>
        <img src="/static/hero.jpg">
        <form action="/search">
            <input type="search" name="q">
        </form>
    </main>
</body>
</html>`,
				Expected: counts(2, 1, 1, 1, 1),
			},
			2: {
				HTML: `<!DOCTYPE html>
<html lang="en">
<head>
    <title>Acme Widgets</title>
    <style>
        .hero { color: #111; }
    </style>
</head>
<body>
    <header>
        <img src="/static/logo.png" alt="Acme Widgets">
        <a href="/">Home</a>
    </header>
    <main>
        <h1>Welcome to Acme Widgets</h1>
        <img src="/static/hero.jpg" alt="A row of widgets">
        <form action="/search">
            <label for="q">Search</label>
            <input type="search" id="q" name="q">
        </form>
    </main>
</body>
</html>`,
				Expected: counts(0, 0, 0, 0, 0),
			},
		},
	}
}

// ===== CONTACT PAGE =====

func getContactPage() PageDefinition {
	return PageDefinition{
		Path:        "/contact",
		Description: "Form whose first inputs precede every label",
		Revisions: map[int]PageRevision{
			1: {
				HTML: `<!DOCTYPE html>
<html lang="en">
<head><title>Contact</title></head>
<body>
    <h1>Contact us</h1>
    <form method="POST" action="/contact">
        <input type="text" name="name" placeholder="Name">
        <input type="email" name="email" placeholder="Email">
        <label for="msg">Message</label>
        <textarea id="msg" name="message"></textarea>
        <input type="submit" value="Send">
    </form>
</body>
</html>`,
				Expected: counts(0, 0, 0, 0, 2),
			},
			2: {
				HTML: `<!DOCTYPE html>
<html lang="en">
<head><title>Contact</title></head>
<body>
    <h1>Contact us</h1>
    <form method="POST" action="/contact">
        <label>Name <input type="text" name="name"></label>
        <label>Email <input type="email" name="email"></label>
        <label for="msg">Message</label>
        <textarea id="msg" name="message"></textarea>
        <input type="submit" value="Send">
    </form>
</body>
</html>`,
				Expected: counts(0, 0, 0, 0, 0),
			},
		},
	}
}

// ===== GALLERY PAGE =====

func getGalleryPage() PageDefinition {
	return PageDefinition{
		Path:        "/gallery",
		Description: "Image grid; empty alt counts as missing, linked images are not empty links",
		Revisions: map[int]PageRevision{
			1: {
				HTML: `<!DOCTYPE html>
<html lang="en">
<head><title>Gallery</title></head>
<body>
    <h1>Gallery</h1>
    <a href="/gallery/1"><img src="/static/1.jpg"></a>
    <a href="/gallery/2"><img src="/static/2.jpg" alt=""></a>
    <a href="/gallery/3"><img src="/static/3.jpg" alt="Blue widget"></a>
    <img src="/static/4.jpg">
</body>
</html>`,
				Expected: counts(3, 0, 0, 0, 0),
			},
			2: {
				HTML: `<!DOCTYPE html>
<html lang="en">
<head><title>Gallery</title></head>
<body>
    <h1>Gallery</h1>
    <a href="/gallery/1"><img src="/static/1.jpg" alt="Red widget"></a>
    <a href="/gallery/2"><img src="/static/2.jpg" alt="Green widget"></a>
    <a href="/gallery/3"><img src="/static/3.jpg" alt="Blue widget"></a>
    <img src="/static/4.jpg" alt="Widget factory">
</body>
</html>`,
				Expected: counts(0, 0, 0, 0, 0),
			},
		},
	}
}

// ===== STYLED PAGE =====

func getStyledPage() PageDefinition {
	return PageDefinition{
		Path:        "/styled",
		Description: "Several style blocks; only blocks setting both colors are flagged",
		Revisions: map[int]PageRevision{
			1: {
				HTML: `<!DOCTYPE html>
<html lang="">
<head>
    <title>Styled</title>
    <style>body { color: #999; background-color: #aaa; }</style>
    <style>.muted { color: #ccc; }</style>
    <style>.card { background-color: #eee; }</style>
</head>
<body><p class="muted">Hard to read</p></body>
</html>`,
				Expected: counts(0, 2, 0, 0, 0),
			},
			2: {
				HTML: `<!DOCTYPE html>
<html lang="en">
<head>
    <title>Styled</title>
    <style>body { color: #111; }</style>
    <style>.muted { color: #444; }</style>
</head>
<body><p class="muted">Easy to read</p></body>
</html>`,
				Expected: counts(0, 0, 0, 0, 0),
			},
		},
	}
}

// ===== NAV PAGE =====

func getNavPage() PageDefinition {
	return PageDefinition{
		Path:        "/nav",
		Description: "Icon-only and whitespace navigation links",
		Revisions: map[int]PageRevision{
			1: {
				HTML: `<!DOCTYPE html>
<html>
<head><title>Navigation</title></head>
<body>
    <nav>
        <a href="/"> </a>
        <a href="/contact">
        </a>
        <a href="/gallery"><span class="icon"></span></a>
        <a href="/styled"><img src="/static/icon.svg" alt="Styled"></a>
        <a href="/nav">Navigation</a>
    </nav>
</body>
</html>`,
				Expected: counts(0, 0, 1, 3, 0),
			},
		},
	}
}

// ===== QUICK REFERENCE =====

// QuickrefHTML mimics the WCAG quick reference layout with relative links.
const QuickrefHTML = `<!DOCTYPE html>
<html lang="en">
<head><title>How to Meet WCAG (Quick Reference)</title></head>
<body>
<main>
    <section class="guideline" id="non-text-content">
        <h4 class="guideline-title">1.1.1 Non-text Content</h4>
        <a href="#non-text-content">Understanding Non-text Content</a>
    </section>
    <section class="guideline" id="audio-only-and-video-only-prerecorded">
        <h4 class="guideline-title">1.2.1 Audio-only and Video-only (Prerecorded)</h4>
        <a href="#audio-only-and-video-only-prerecorded">Understanding</a>
    </section>
    <section class="guideline" id="info-and-relationships">
        <h4 class="guideline-title">1.3.1 Info and Relationships</h4>
        <a href="#info-and-relationships">Understanding</a>
    </section>
    <section class="guideline" id="use-of-color">
        <h4 class="guideline-title">1.4.1 Use of Color</h4>
        <a href="#use-of-color">Understanding</a>
    </section>
    <section class="guideline" id="contrast-minimum">
        <h4 class="guideline-title">1.4.3 Contrast (Minimum)</h4>
        <a href="#contrast-minimum">Understanding</a>
    </section>
    <section class="guideline" id="keyboard">
        <h4 class="guideline-title">2.1.1 Keyboard</h4>
        <a href="#keyboard">Understanding</a>
    </section>
    <section class="guideline" id="language-of-page">
        <h4 class="guideline-title">3.1.1 Language of Page</h4>
        <a href="#language-of-page">Understanding</a>
    </section>
</main>
</body>
</html>`
