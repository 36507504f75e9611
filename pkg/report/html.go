package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/moltbook/moltscope/pkg/model"
)

var htmlFuncs = template.FuncMap{
	"upper": strings.ToUpper,
	"inc":   func(i int) int { return i + 1 },
}

var htmlTmpl = template.Must(template.New("html").Funcs(htmlFuncs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>MoltBook Analytics Dashboard</title>
<style>
:root { --bg:#1a1a1b; --card-bg:#2d2d2e; --accent:#e01b24; --accent2:#00d4aa; --text:#d7dadc; --muted:#818384; }
* { margin:0; padding:0; box-sizing:border-box; }
body { font-family:'IBM Plex Mono','Consolas',monospace; background:var(--bg); color:var(--text); padding:20px; line-height:1.6; }
.container { max-width:1200px; margin:0 auto; }
header { text-align:center; padding:30px 0; border-bottom:3px solid var(--accent); margin-bottom:30px; }
h1 { color:var(--accent); font-size:2.5em; margin-bottom:10px; }
.timestamp { color:var(--muted); font-size:0.9em; }
.grid { display:grid; grid-template-columns:repeat(auto-fit,minmax(350px,1fr)); gap:20px; margin-bottom:30px; }
.card { background:var(--card-bg); border-radius:8px; padding:20px; border-left:4px solid var(--accent); }
.card h2 { color:var(--accent2); font-size:1.2em; margin-bottom:15px; }
.stat-grid { display:grid; grid-template-columns:repeat(2,1fr); gap:15px; }
.stat { text-align:center; }
.stat-value { font-size:2em; font-weight:bold; color:var(--accent); }
.stat-label { color:var(--muted); font-size:0.85em; }
.list { list-style:none; }
.list li { padding:8px 0; border-bottom:1px solid #444; display:flex; justify-content:space-between; }
.list li:last-child { border-bottom:none; }
.rank { color:var(--accent2); font-weight:bold; margin-right:10px; }
.bar-row { display:flex; align-items:center; margin:8px 0; }
.bar-label { width:100px; font-size:0.85em; }
.bar { height:20px; background:linear-gradient(90deg,var(--accent),var(--accent2)); border-radius:3px; margin-right:10px; }
.bar-value { color:var(--muted); font-size:0.85em; }
.keyword { background:#444; padding:5px 12px; border-radius:15px; font-size:0.9em; }
.keyword strong { color:var(--accent2); }
footer { text-align:center; padding:30px; color:var(--muted); border-top:1px solid #333; margin-top:30px; }
</style>
</head>
<body>
<div class="container">
<header>
<h1>MoltBook Analytics</h1>
<p class="timestamp">Generated: {{.Generated}}</p>
</header>

<div class="grid">
<div class="card">
<h2>My Profile</h2>
<div class="stat-grid">
<div class="stat"><div class="stat-value">{{.Profile.Karma}}</div><div class="stat-label">Karma</div></div>
<div class="stat"><div class="stat-value">{{.Profile.Posts}}</div><div class="stat-label">Posts</div></div>
<div class="stat"><div class="stat-value">{{.Profile.Comments}}</div><div class="stat-label">Comments</div></div>
<div class="stat"><div class="stat-value">u/{{.Profile.Name}}</div><div class="stat-label">Username</div></div>
</div>
</div>

<div class="card">
<h2>Site Activity</h2>
<div class="stat-grid">
<div class="stat"><div class="stat-value">{{.Site.PostsLast24h}}</div><div class="stat-label">Posts (24h)</div></div>
<div class="stat"><div class="stat-value">{{.Site.SubmoltsCount}}</div><div class="stat-label">Submolts</div></div>
<div class="stat"><div class="stat-value">{{.Site.AvgUpvotes}}</div><div class="stat-label">Avg Upvotes</div></div>
<div class="stat"><div class="stat-value">{{.Site.AvgComments}}</div><div class="stat-label">Avg Comments</div></div>
</div>
</div>
</div>

<div class="grid">
<div class="card">
<h2>Top Agents</h2>
<ul class="list">
{{range $i, $a := .TopAgents}}<li><span><span class="rank">{{inc $i}}.</span>{{$a.Name}}</span><span>{{$a.TotalUpvotes}} upvotes ({{$a.Posts}} posts)</span></li>
{{end}}</ul>
</div>

<div class="card">
<h2>Trending Topics</h2>
<p style="margin-bottom:15px;color:var(--muted)">Dominant: <strong style="color:var(--accent2)">{{upper .Dominant}}</strong></p>
<div class="bar-chart">
{{range .Categories}}<div class="bar-row"><span class="bar-label">{{.Name}}</span><div class="bar" style="width:{{.Width}}%"></div><span class="bar-value">{{.Score}}</span></div>
{{end}}</div>
</div>
</div>

<div class="card">
<h2>Top Keywords</h2>
<div style="display:flex;flex-wrap:wrap;gap:10px;margin-top:10px;">
{{range .Keywords}}<span class="keyword">{{.Topic}} <strong>{{.Count}}</strong></span>
{{end}}</div>
</div>

<footer>
<p><a href="https://www.moltbook.com" style="color:var(--accent2)">MoltBook</a></p>
</footer>
</div>
</body>
</html>`))

// HTML renders a snapshot as a standalone dashboard page.
func HTML(snap model.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, buildView(snap)); err != nil {
		return nil, fmt.Errorf("render html report: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveHTML writes the report under REPORTS_DIR and refreshes index.html.
func SaveHTML(snap model.Snapshot) (string, error) {
	content, err := HTML(snap)
	if err != nil {
		return "", err
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return save(dir, "report_"+stamp(snap.Timestamp)+".html", "index.html", content)
}
