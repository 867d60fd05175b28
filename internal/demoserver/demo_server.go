package demoserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/raysh454/a11ylens/internal/logging"
	"github.com/raysh454/a11ylens/internal/model"
)

var controlTemplate = template.Must(template.New("fixtures").Parse(controlPanelHTML))

// RevisionHeader names the response header carrying the served revision.
const RevisionHeader = "X-Fixture-Revision"

// DemoServer serves fixture pages with known accessibility defects. Each page
// can be switched between its defective and fixed revisions at runtime, so
// repeated analyze runs see the tally change.
type DemoServer struct {
	cfg       Config
	logger    logging.Logger
	pages     map[string]PageDefinition
	revisions map[string]int // path -> served revision
	mu        sync.RWMutex
}

// NewDemoServer creates the fixture site with every page at its starting
// revision.
func NewDemoServer(cfg Config, logger logging.Logger) *DemoServer {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	s := &DemoServer{
		cfg:       cfg,
		logger:    logger.With(logging.Field{Key: "component", Value: "demoserver"}),
		pages:     make(map[string]PageDefinition),
		revisions: make(map[string]int),
	}
	for _, p := range GetAllPages() {
		s.pages[p.Path] = p
		s.revisions[p.Path] = s.startRevision(p)
	}
	return s
}

func (s *DemoServer) startRevision(p PageDefinition) int {
	if s.cfg.StartFixed {
		return p.FixedRevision()
	}
	return DefectiveRevision
}

// Handler returns the fixture routes.
func (s *DemoServer) Handler() http.Handler {
	mux := http.NewServeMux()

	// "/" also catches unknown paths and 404s them.
	for path := range s.pages {
		mux.HandleFunc(path, s.pageHandler(path))
	}
	if s.cfg.ServeQuickref {
		mux.HandleFunc(QuickrefPath, s.quickrefHandler)
	}

	mux.HandleFunc("/demo/control", s.controlPanelHandler)
	mux.HandleFunc("/demo/revision", s.setRevisionHandler)
	mux.HandleFunc("/demo/revisions", s.listRevisionsHandler)
	mux.HandleFunc("/demo/fix-all", s.fixAllHandler)
	mux.HandleFunc("/demo/restore", s.restoreHandler)

	// Image placeholder for fixture <img> tags
	mux.HandleFunc("/static/", s.staticHandler)

	return mux
}

// ListenAndServe serves on cfg.Port until ctx is done.
func (s *DemoServer) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("fixture site starting",
			logging.Field{Key: "url", Value: fmt.Sprintf("http://localhost:%d", s.cfg.Port)},
			logging.Field{Key: "control_panel", Value: fmt.Sprintf("http://localhost:%d/demo/control", s.cfg.Port)},
			logging.Field{Key: "start_fixed", Value: s.cfg.StartFixed})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// CurrentRevision returns the revision served for path, or 0 for an unknown
// path.
func (s *DemoServer) CurrentRevision(path string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revisions[path]
}

func (s *DemoServer) pageHandler(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			http.NotFound(w, r)
			return
		}
		s.mu.RLock()
		page := s.pages[path]
		n := s.revisions[path]
		s.mu.RUnlock()

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set(RevisionHeader, strconv.Itoa(n))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(page.Revision(n).HTML))
	}
}

// quickrefHandler serves the offline guideline reference page.
func (s *DemoServer) quickrefHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(QuickrefHTML))
}

func (s *DemoServer) staticHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write([]byte(`<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"/>`))
}

// sortedPaths must be called with s.mu held.
func (s *DemoServer) sortedPaths() []string {
	paths := make([]string, 0, len(s.pages))
	for path := range s.pages {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// revisionLabel names a revision for display.
func revisionLabel(p PageDefinition, n int) string {
	switch n {
	case DefectiveRevision:
		return "r1 defective"
	case p.FixedRevision():
		return fmt.Sprintf("r%d fixed", n)
	default:
		return fmt.Sprintf("r%d partial", n)
	}
}

type revisionButton struct {
	N      int
	Label  string
	Active bool
}

type fixtureRow struct {
	Path        string
	Description string
	Label       string
	Total       int
	Expected    []model.CategoryCount
	Buttons     []revisionButton
	Command     string
}

// controlPanelHandler renders every page with its served revision and the
// tally an analyze run should print for it.
func (s *DemoServer) controlPanelHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	rows := make([]fixtureRow, 0, len(s.pages))
	for _, path := range s.sortedPaths() {
		page := s.pages[path]
		current := s.revisions[path]
		rev := page.Revision(current)

		row := fixtureRow{
			Path:        path,
			Description: page.Description,
			Label:       revisionLabel(page, current),
			Total:       rev.Total(),
			Command:     fmt.Sprintf("a11ylens analyze --backend nethttp http://localhost:%d%s", s.cfg.Port, path),
		}
		for _, c := range model.AllCategories() {
			row.Expected = append(row.Expected, model.CategoryCount{Category: c, Count: rev.Expected[c]})
		}
		for _, n := range page.RevisionNumbers() {
			row.Buttons = append(row.Buttons, revisionButton{N: n, Label: revisionLabel(page, n), Active: n == current})
		}
		rows = append(rows, row)
	}
	s.mu.RUnlock()

	data := struct {
		Rows     []fixtureRow
		Quickref string
	}{Rows: rows}
	if s.cfg.ServeQuickref {
		data.Quickref = QuickrefPath
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := controlTemplate.Execute(w, data); err != nil {
		s.logger.Warn("render control panel", logging.Field{Key: "error", Value: err})
	}
}

// setRevisionHandler switches one page to the posted revision.
func (s *DemoServer) setRevisionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := r.FormValue("path")
	n, err := strconv.Atoi(r.FormValue("revision"))
	if err != nil || n < DefectiveRevision {
		http.Error(w, "Invalid revision number", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	page, ok := s.pages[path]
	if ok {
		if _, exists := page.Revisions[n]; !exists {
			s.mu.Unlock()
			http.Error(w, fmt.Sprintf("Page %s has no revision %d", path, n), http.StatusBadRequest)
			return
		}
		s.revisions[path] = n
	}
	s.mu.Unlock()

	if !ok {
		http.Error(w, "Unknown page", http.StatusNotFound)
		return
	}
	s.logger.Info("fixture revision set",
		logging.Field{Key: "path", Value: path},
		logging.Field{Key: "revision", Value: n})

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success":  true,
		"path":     path,
		"revision": n,
		"fixed":    n == page.FixedRevision(),
	})
}

// PageInfo describes one fixture page for /demo/revisions.
type PageInfo struct {
	Path        string         `json:"path"`
	Description string         `json:"description"`
	Revision    int            `json:"revision"`
	Revisions   []int          `json:"revisions"`
	Fixed       bool           `json:"fixed"`
	Expected    map[string]int `json:"expected"`
	Total       int            `json:"total"`
}

// listRevisionsHandler reports every page's served revision and the tally
// expected for it, ordered by path.
func (s *DemoServer) listRevisionsHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pages := make([]PageInfo, 0, len(s.pages))
	for _, path := range s.sortedPaths() {
		page := s.pages[path]
		current := s.revisions[path]
		rev := page.Revision(current)

		expected := make(map[string]int, len(rev.Expected))
		for c, n := range rev.Expected {
			expected[string(c)] = n
		}
		pages = append(pages, PageInfo{
			Path:        path,
			Description: page.Description,
			Revision:    current,
			Revisions:   page.RevisionNumbers(),
			Fixed:       current == page.FixedRevision(),
			Expected:    expected,
			Total:       rev.Total(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(pages)
}

// fixAllHandler moves every page to its fixed revision.
func (s *DemoServer) fixAllHandler(w http.ResponseWriter, r *http.Request) {
	s.setAll(w, r, "All pages now serve their fixed revision", PageDefinition.FixedRevision)
}

// restoreHandler moves every page back to its starting revision.
func (s *DemoServer) restoreHandler(w http.ResponseWriter, r *http.Request) {
	s.setAll(w, r, "All pages restored to their starting revision", s.startRevision)
}

func (s *DemoServer) setAll(w http.ResponseWriter, r *http.Request, message string, pick func(PageDefinition) int) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	for path, page := range s.pages {
		s.revisions[path] = pick(page)
	}
	s.mu.Unlock()
	s.logger.Info(message)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": message,
	})
}

const controlPanelHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <title>a11ylens fixture site</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 960px; margin: 0 auto; padding: 24px; color: #1a1a1a; }
        h1 { border-bottom: 3px solid #5b2a86; padding-bottom: 8px; }
        .fixture { border: 1px solid #ccc; border-radius: 6px; padding: 16px; margin: 16px 0; }
        .fixture h2 { margin: 0 0 4px; font-size: 1.15em; }
        .served { font-weight: bold; color: #5b2a86; }
        table { border-collapse: collapse; margin: 8px 0; }
        th, td { text-align: left; padding: 2px 12px 2px 0; }
        td.n { text-align: right; font-variant-numeric: tabular-nums; }
        tr.total td { border-top: 1px solid #999; font-weight: bold; }
        code { background: #f2eef7; padding: 2px 4px; }
        button { padding: 6px 12px; margin-right: 6px; border: 1px solid #5b2a86; border-radius: 4px; background: #fff; cursor: pointer; }
        button[aria-pressed="true"] { background: #5b2a86; color: #fff; }
        #status { margin-top: 8px; min-height: 1.2em; }
    </style>
</head>
<body>
    <h1>a11ylens fixture site</h1>
    <p>Every page below starts at a revision with known accessibility defects.
    Switch a page to its fixed revision and run the command again to watch the tally drop.
    {{if .Quickref}}Point <code>A11YLENS_GUIDELINES_URL</code> at <a href="{{.Quickref}}">{{.Quickref}}</a> to resolve guidelines offline.{{end}}</p>

    <p>
        <button onclick="setAll('/demo/fix-all')">Apply fixes to every page</button>
        <button onclick="setAll('/demo/restore')">Restore starting revisions</button>
    </p>
    <div id="status" role="status"></div>

    {{range .Rows}}
    <section class="fixture">
        <h2><a href="{{.Path}}">{{.Path}}</a></h2>
        <p>{{.Description}}</p>
        <p>Serving <span class="served">{{.Label}}</span></p>
        <table>
            <tr><th>Category</th><th>Expected</th></tr>
            {{range .Expected}}<tr><td>{{.Category.Title}}</td><td class="n">{{.Count}}</td></tr>
            {{end}}<tr class="total"><td>Total issues</td><td class="n">{{.Total}}</td></tr>
        </table>
        <p>{{$path := .Path}}{{range .Buttons}}
            <button aria-pressed="{{.Active}}" onclick="setRevision('{{$path}}', {{.N}})">{{.Label}}</button>{{end}}
        </p>
        <p><code>{{.Command}}</code></p>
    </section>
    {{end}}

    <script>
        function post(url, body) {
            return fetch(url, {
                method: 'POST',
                headers: {'Content-Type': 'application/x-www-form-urlencoded'},
                body: body || ''
            }).then(r => r.ok ? r.json() : r.text().then(t => { throw new Error(t); }));
        }

        function setRevision(path, revision) {
            post('/demo/revision', 'path=' + encodeURIComponent(path) + '&revision=' + revision)
                .then(() => location.reload())
                .catch(err => { document.getElementById('status').textContent = err.message; });
        }

        function setAll(url) {
            post(url)
                .then(data => { document.getElementById('status').textContent = data.message; location.reload(); })
                .catch(err => { document.getElementById('status').textContent = err.message; });
        }
    </script>
</body>
</html>`
