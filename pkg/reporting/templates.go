/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: templates.go
Description: HTML template for bytehunt run reports. Renders the run metadata,
the per-worker statistics and every match as a single self-contained page.
*/

package reporting

import (
	"bytes"
	"fmt"
	"html/template"
)

var reportTemplate = template.Must(template.New("report").Parse(reportHTML))

func renderHTML(r *RunReport) ([]byte, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, r); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// reportHTML is the run report page
const reportHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>bytehunt run {{.RunID}}</title>
    <style>
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            background: #f4f5fb;
            color: #333;
            margin: 0;
            padding: 20px;
        }

        .container {
            max-width: 1000px;
            margin: 0 auto;
        }

        .card {
            background: #fff;
            border-radius: 10px;
            box-shadow: 0 4px 12px rgba(0, 0, 0, 0.08);
            padding: 20px;
            margin-bottom: 20px;
        }

        table {
            width: 100%;
            border-collapse: collapse;
        }

        th, td {
            text-align: left;
            padding: 6px 10px;
            border-bottom: 1px solid #eee;
        }

        .interrupted {
            color: #c0392b;
        }
    </style>
</head>
<body>
<div class="container">
    <div class="card">
        <h1>bytehunt run report</h1>
        <p>Run <code>{{.RunID}}</code> generated {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}</p>
        {{if .Interrupted}}<p class="interrupted">Interrupted: {{.Error}}</p>{{end}}
    </div>

    <div class="card">
        <h2>Target</h2>
        <table>
            <tr><th>File</th><td>{{.File}}</td></tr>
            <tr><th>Bytes to match</th><td>{{.TargetLength}}</td></tr>
            <tr><th>Distinct bytes</th><td>{{.Distinct}}</td></tr>
        </table>
    </div>

    {{with .Summary}}
    <div class="card">
        <h2>Run</h2>
        <table>
            <tr><th>Base seed</th><td>{{.BaseSeed}}</td></tr>
            <tr><th>Seed strategy</th><td>{{.Strategy}}</td></tr>
            <tr><th>Wait mode</th><td>{{.WaitMode}}</td></tr>
            <tr><th>Workers</th><td>{{len .Seeds}}</td></tr>
            <tr><th>Unmatched</th><td>{{.Unmatched}}</td></tr>
            <tr><th>Bytes generated</th><td>{{.Generated}}</td></tr>
            <tr><th>Duration</th><td>{{.Duration}}</td></tr>
        </table>
    </div>

    <div class="card">
        <h2>Matches</h2>
        {{if .Results}}
        <table>
            <tr><th>Worker</th><th>Seed</th><th>Offset</th><th>Generated</th><th>Time needed</th></tr>
            {{range .Results}}
            <tr><td>{{.WorkerID}}</td><td>{{.Seed}}</td><td>{{.Offset}}</td><td>{{.Generated}}</td><td>{{.Elapsed}}</td></tr>
            {{end}}
        </table>
        {{else}}
        <p>No worker matched the target.</p>
        {{end}}
    </div>
    {{end}}

    {{if .Workers}}
    <div class="card">
        <h2>Workers</h2>
        <table>
            <tr><th>Worker</th><th>Seed</th><th>State</th><th>Generated</th><th>Uptime</th><th>Bytes/s</th></tr>
            {{range .Workers}}
            <tr><td>{{.ID}}</td><td>{{.Seed}}</td><td>{{.State}}</td><td>{{.Generated}}</td><td>{{.Uptime}}</td><td>{{printf "%.0f" .BytesPerSecond}}</td></tr>
            {{end}}
        </table>
    </div>
    {{end}}
</div>
</body>
</html>
`
