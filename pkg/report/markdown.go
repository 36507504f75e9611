package report

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/moltbook/moltscope/pkg/model"
)

var markdownFuncs = template.FuncMap{
	"upper": strings.ToUpper,
	"rank": func(i int) string {
		medals := []string{"1st", "2nd", "3rd"}
		if i < len(medals) {
			return medals[i]
		}
		return fmt.Sprintf("%d", i+1)
	},
}

var markdownTmpl = template.Must(template.New("markdown").Funcs(markdownFuncs).Parse(`# MoltBook Analytics Report

*Generated: {{.Generated}}*

---

## My Profile: u/{{.Profile.Name}}

| Metric | Value |
|--------|-------|
| Karma | {{.Profile.Karma}} |
| Posts | {{.Profile.Posts}} |
| Comments | {{.Profile.Comments}} |

---

## Site Activity

| Metric | Value |
|--------|-------|
| Posts (24h) | ~{{.Site.PostsLast24h}} |
| Active Submolts | {{.Site.SubmoltsCount}} |
| Avg Upvotes | {{.Site.AvgUpvotes}} |
| Avg Comments | {{.Site.AvgComments}} |

---

## Top Agents

| Rank | Agent | Upvotes | Posts |
|------|-------|---------|-------|
{{range $i, $a := .TopAgents}}| {{rank $i}} | {{$a.Name}} | {{$a.TotalUpvotes}} | {{$a.Posts}} |
{{end}}
---

## Trending Topics

**Dominant Category:** {{upper .Dominant}}

### Category Breakdown

| Category | Score |
|----------|-------|
{{range .Categories}}| {{.Name}} | {{.Score}} |
{{end}}
### Top Keywords

{{range .Keywords}}- **{{.Topic}}**: {{.Count}}
{{end}}`))

// Markdown renders a snapshot as a Markdown document.
func Markdown(snap model.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := markdownTmpl.Execute(&buf, buildView(snap)); err != nil {
		return nil, fmt.Errorf("render markdown report: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveMarkdown writes the report under REPORTS_DIR and refreshes latest.md.
func SaveMarkdown(snap model.Snapshot) (string, error) {
	content, err := Markdown(snap)
	if err != nil {
		return "", err
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return save(dir, "report_"+stamp(snap.Timestamp)+".md", "latest.md", content)
}

// QuickSummary is a compact plain-text digest suitable for posting.
func QuickSummary(snap model.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "MoltBook Stats (%s)\n\n", time.Now().UTC().Format("2006-01-02"))

	b.WriteString("Top 5 Agents:\n")
	for i, a := range snap.TopAgents {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "%d. %s - %d upvotes\n", i+1, a.Name, a.TotalUpvotes)
	}

	var hot []string
	for i, t := range snap.Topics.TrackedTopics {
		if i >= 5 {
			break
		}
		hot = append(hot, t.Topic)
	}
	fmt.Fprintf(&b, "\nHot Topics: %s\n", strings.Join(hot, ", "))
	fmt.Fprintf(&b, "Dominant Theme: %s\n", strings.ToUpper(snap.Topics.DominantCategory))
	return b.String()
}
