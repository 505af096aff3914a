package report

import (
	"fmt"
	"html/template"
	"io"
	"time"
)

// dashboardTemplate renders the statistics entries as a static page, one
// table per site with a row per strategy. Optional measurements render as a
// dash when absent.
const dashboardTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Selector Matching Evaluation</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin-bottom: 2em; }
th, td { border: 1px solid #999; padding: 0.3em 0.8em; text-align: right; }
th { background: #eee; }
td:first-child { text-align: left; }
caption { font-weight: bold; text-align: left; padding: 0.5em 0; }
</style>
</head>
<body>
<h1>Selector Matching Evaluation</h1>
<p>Generated {{.Generated}}.</p>
{{range .Sites}}
<table>
<caption>{{.Name}} &mdash; {{.NumElements}} elements, {{.NumSelectors}} selectors</caption>
<tr>
  <th>strategy</th><th>elapsed</th><th>matching pairs</th>
  <th>map hits</th><th>fast rejects</th><th>slow rejects</th>
  <th>sharing instances</th><th>slow rejecting</th>
</tr>
{{range .Rows}}
<tr>
  <td>{{.Strategy}}</td>
  <td>{{.Elapsed}}</td>
  <td>{{.MatchingPairs}}</td>
  <td>{{count .SelectorMapHits}}</td>
  <td>{{count .FastRejects}}</td>
  <td>{{count .SlowRejects}}</td>
  <td>{{count .SharingInstances}}</td>
  <td>{{nanos .SlowRejectingNs}}</td>
</tr>
{{end}}
</table>
{{end}}
</body>
</html>
`

type dashboardSite struct {
	Name         string
	NumElements  int
	NumSelectors int
	Rows         []dashboardRow
}

type dashboardRow struct {
	StatsEntry
	Elapsed string
}

// WriteHTML renders the statistics entries as a self-contained HTML
// dashboard, grouping entries by site in their given order.
func WriteHTML(w io.Writer, entries []StatsEntry) error {
	tmpl := template.Must(template.New("dashboard").Funcs(template.FuncMap{
		"count": func(p *int64) string {
			if p == nil {
				return "n/a"
			}
			return fmt.Sprintf("%d", *p)
		},
		"nanos": func(p *int64) string {
			if p == nil {
				return "n/a"
			}
			return time.Duration(*p).Round(time.Microsecond).String()
		},
	}).Parse(dashboardTemplate))
	var sites []*dashboardSite
	bySite := make(map[string]*dashboardSite)
	for _, e := range entries {
		site, ok := bySite[e.Site]
		if !ok {
			site = &dashboardSite{
				Name:         e.Site,
				NumElements:  e.NumElements,
				NumSelectors: e.NumSelectors,
			}
			bySite[e.Site] = site
			sites = append(sites, site)
		}
		site.Rows = append(site.Rows, dashboardRow{
			StatsEntry: e,
			Elapsed:    time.Duration(e.ElapsedNs).Round(time.Microsecond).String(),
		})
	}
	data := struct {
		Generated string
		Sites     []*dashboardSite
	}{
		Generated: time.Now().Format(time.RFC1123),
		Sites:     sites,
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("rendering dashboard: %w", err)
	}
	return nil
}
