package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/selmatch/selmatch/dom"
	"github.com/selmatch/selmatch/selector"
)

// Website is one loaded evaluation input: a parsed document together with
// the selectors collected from its stylesheets.
type Website struct {
	Name string
	Doc  *dom.Document
	Set  *selector.Set
}

// MultipleHTMLFilesError reports a site directory holding more than one HTML
// file, which leaves the document to evaluate ambiguous.
type MultipleHTMLFilesError struct {
	Site  string
	Files []string
}

func (e *MultipleHTMLFilesError) Error() string {
	return fmt.Sprintf("site %q contains %d HTML files, expected exactly one: %s",
		e.Site, len(e.Files), strings.Join(e.Files, ", "))
}

// Load reads every website below dir, one per sub-directory, in lexical
// order. Non-directory entries of dir are skipped with a warning. A site
// that cannot be loaded fails the whole corpus; a partially loaded corpus
// would silently skew cross-site comparisons.
func Load(dir string) ([]Website, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading corpus directory: %w", err)
	}
	var sites []Website
	for _, entry := range entries {
		if !entry.IsDir() {
			tracer().Infof("corpus: skipping non-directory entry %q", entry.Name())
			continue
		}
		site, ok, err := loadSite(filepath.Join(dir, entry.Name()), entry.Name())
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		sites = append(sites, site)
	}
	sort.Slice(sites, func(i, j int) bool { return sites[i].Name < sites[j].Name })
	return sites, nil
}

// loadSite reads the single HTML file of a site directory and collects the
// selectors from its inline and locally linked stylesheets. A directory
// without any HTML file is skipped (ok=false); more than one HTML file is an
// error, since the document to evaluate would be ambiguous.
func loadSite(dir, name string) (Website, bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Website{}, false, fmt.Errorf("reading site %q: %w", name, err)
	}
	var htmlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".html") {
			htmlFiles = append(htmlFiles, entry.Name())
		}
	}
	if len(htmlFiles) == 0 {
		tracer().Infof("site %q contains no HTML file, skipping", name)
		return Website{}, false, nil
	}
	if len(htmlFiles) > 1 {
		sort.Strings(htmlFiles)
		return Website{}, false, &MultipleHTMLFilesError{Site: name, Files: htmlFiles}
	}
	f, err := os.Open(filepath.Join(dir, htmlFiles[0]))
	if err != nil {
		return Website{}, false, fmt.Errorf("site %q: %w", name, err)
	}
	defer f.Close()
	doc, err := dom.Parse(f)
	if err != nil {
		return Website{}, false, fmt.Errorf("site %q: parsing %s: %w", name, htmlFiles[0], err)
	}
	selectors, err := collectSelectors(dir, name, doc)
	if err != nil {
		return Website{}, false, err
	}
	tracer().Infof("site %q: %d elements, %d selectors", name, doc.NumElements(), len(selectors))
	return Website{Name: name, Doc: doc, Set: selector.NewSet(selectors)}, true, nil
}

// collectSelectors walks the document for <style> elements and local
// stylesheet links, parses each sheet and flattens the rule preludes into
// one selector list, in document order.
func collectSelectors(dir, name string, doc *dom.Document) ([]*selector.Selector, error) {
	var selectors []*selector.Selector
	var walkErr error
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if walkErr != nil {
			return
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Style:
				selectors = append(selectors, sheetSelectors(styleText(n), name)...)
			case atom.Link:
				if href, ok := localStylesheetHref(n); ok {
					raw, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(href)))
					if err != nil {
						walkErr = fmt.Errorf("site %q: stylesheet %q: %w", name, href, err)
						return
					}
					selectors = append(selectors, sheetSelectors(string(raw), name)...)
				}
			}
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	walk(doc.Root().HTMLNode())
	if walkErr != nil {
		return nil, walkErr
	}
	return selectors, nil
}

func styleText(n *html.Node) string {
	var sb strings.Builder
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.TextNode {
			sb.WriteString(ch.Data)
		}
	}
	return sb.String()
}

// localStylesheetHref accepts <link rel="stylesheet"> elements whose href is
// a relative local path. Remote stylesheets are skipped; a corpus is expected
// to be self-contained.
func localStylesheetHref(n *html.Node) (string, bool) {
	var rel, href string
	for _, a := range n.Attr {
		switch a.Key {
		case "rel":
			rel = a.Val
		case "href":
			href = a.Val
		}
	}
	if !strings.EqualFold(strings.TrimSpace(rel), "stylesheet") || href == "" {
		return "", false
	}
	if strings.Contains(href, "://") || strings.HasPrefix(href, "//") || strings.HasPrefix(href, "/") {
		tracer().Infof("skipping non-local stylesheet %q", href)
		return "", false
	}
	return href, true
}

// sheetSelectors parses one stylesheet and returns the selectors of its
// qualified rules, descending into grouping at-rules such as @media. A sheet
// that fails to parse contributes nothing; real-world CSS is full of
// vendor syntax.
func sheetSelectors(text, site string) []*selector.Selector {
	sheet, err := parser.Parse(text)
	if err != nil {
		tracer().Infof("site %q: unparsable stylesheet: %v", site, err)
		return nil
	}
	var selectors []*selector.Selector
	var fromRules func(rules []*css.Rule)
	fromRules = func(rules []*css.Rule) {
		for _, r := range rules {
			if r.Kind == css.QualifiedRule {
				selectors = append(selectors, selector.ParseGroup(r.Prelude)...)
			}
			fromRules(r.Rules)
		}
	}
	fromRules(sheet.Rules)
	return selectors
}
