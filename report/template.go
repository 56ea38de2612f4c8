package report

import "html/template"

// Template du rapport autonome : tout est inliné (styles, images en
// base64), aucun fichier externe requis pour le consulter ou l'archiver.
// Les règles @media print forcent l'A4 paysage et un saut de page avant
// le bloc heatmap.
var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"fmt1": fmt1,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
    body {
        font-family: "Source Sans Pro", sans-serif;
        margin: 2rem;
        background: #f0f2f6;
        color: #333;
    }

    h1, h2, h3 {
        color: #222;
    }

    .block-box {
        border: 1px solid #aaa;
        border-radius: 12px;
        background: #fff;
        padding: 20px;
        margin: 24px 0;
        box-shadow: 0 8px 20px rgba(0,0,0,0.12);
    }

    .metric-box {
        display: inline-block;
        width: 22%;
        background: #fff;
        margin: 10px;
        padding: 14px;
        border-radius: 10px;
        box-shadow: 0 10px 28px rgba(0,0,0,0.20);
    }

    .company-logo {
        position: absolute;
        top: 20px;
        right: 30px;
        width: 15%;
        height: auto;
        z-index: 1000;
    }

    .metric-box h3 {
        font-size: 14px;
        margin-bottom: 4px;
    }

    .metric-box p {
        font-size: 20px;
        font-weight: 600;
        color: #3f8efc;
        margin: 0;
    }

    img.chart {
        max-width: 100%;
        margin: 20px auto;
        display: block;
        border-radius: 6px;
        border: 1px solid #ccc;
    }

    ul {
        line-height: 1.6;
    }

    table {
        width: 100%;
        border-collapse: collapse;
        margin: 10px auto;
        font-size: 14px;
        background: white;
        text-align: center;
    }

    th, td {
        border: 1px solid #ccc;
        padding: 6px 10px;
        vertical-align: middle;
    }

    th {
        background-color: #e9ecef;
        font-weight: bold;
    }

@media print {
    body {
        background: white !important;
        color: black !important;
        margin: 0 auto !important;
        padding: 0.5cm !important;
        width: 95% !important;
        max-width: 95% !important;
        overflow: visible !important;
    }

    .metric-box {
        display: inline-block;
        width: 30% !important;
        margin: 6px !important;
        padding: 10px !important;
        font-size: 14px !important;
        border: 1px solid #000 !important;
        box-shadow: none !important;
        vertical-align: top;
        box-sizing: border-box !important;
    }

    .metric-box p {
        font-size: 18px !important;
        font-weight: bold;
    }

    .block-box {
        width: 100% !important;
        box-sizing: border-box !important;
        padding: 14px !important;
        margin: 15px 0 !important;
        border: 1px solid #000 !important;
        background: #fff !important;
        box-shadow: none !important;
        page-break-inside: avoid;
        break-inside: avoid;
    }

    table {
        font-size: 13px !important;
        width: 100% !important;
        border-collapse: collapse;
    }

    th, td {
        border: 1px solid #000 !important;
        padding: 6px 8px !important;
    }

    img.chart {
        width: 100% !important;
        max-height: 80vh !important;
        object-fit: contain !important;
        margin: 10px auto !important;
        display: block;
        page-break-inside: avoid;
        break-inside: avoid;
    }

    .heatmap-block {
        page-break-before: always;
        page-break-inside: avoid;
    }

    h1, h2, h3 {
        font-size: 22px !important;
        margin-top: 10px !important;
        margin-bottom: 8px !important;
        page-break-after: avoid;
        break-after: avoid;
    }

    .company-logo {
        width: 250px !important;
    }

    @page {
        size: A4 landscape;
        margin: 0.5cm;
    }
}
</style>
</head>
<body>
{{.LogoHTML}}
<h1>{{.Title}}</h1>
<h3>Report Date: {{.ReportDate}}</h3>

<div class="block-box">
<h2>Overview</h2>
<div class='metric-box'><h3>Total Jobs</h3><p>{{.K.TotalJobs}}</p></div>
<div class='metric-box'><h3>Jobs with Alert</h3><p>{{.K.AlertedJobs}}</p></div>
<div class='metric-box'><h3>Alert Rate</h3><p>{{fmt1 .K.AlertRate}}%</p></div>
<div class='metric-box'><h3>Active Machines</h3><p>{{.K.TotalMachines}}</p></div>
<div class='metric-box'><h3>Machines with Alert</h3><p>{{.K.AlertedMachines}}</p></div>
<div class='metric-box'><h3>Machine Alert Rate</h3><p>{{fmt1 .K.MachineAlertRate}}%</p></div>
</div>

<div class='block-box'>
<h2>Job with Max Delay</h2>
{{if .Worst}}
<ul>
  <li><b>{{.WorstDelay}} minutes</b></li>
  <li>Machine: <b>{{.Worst.Machine}}</b></li>
  <li>ItemCode: <b>{{.Worst.ItemCode}}</b></li>
  <li>Date: <b>{{.Worst.Date}}</b></li>
</ul>
{{else}}
<p>N/A – no delay data</p>
{{end}}
</div>

<div class='block-box'>
<h2>Jobs exceeding delay thresholds</h2>
{{if .Thresholds}}
<ul>
{{range .Thresholds}}  <li>Delay &gt; {{.Threshold}} min: <b>{{.Count}}</b></li>
{{end}}</ul>
{{else}}
<p>N/A – no thresholds configured</p>
{{end}}
</div>

<div class='block-box'>
<h2>Top {{.TopN}} Reasons</h2>
{{if .TopReasons}}
<ul>
{{range .TopReasons}}  <li>{{.Key}}: <b>{{printf "%.0f" .Value}} jobs</b></li>
{{end}}</ul>
{{else}}
<p>No reason data</p>
{{end}}
</div>

<div class='block-box'>
<h2>Top {{.TopN}} Machines by Total Delay</h2>
{{if .TopMachines}}
<ul>
{{range .TopMachines}}  <li>{{.Key}}: <b>{{printf "%.0f" .Value}} min</b></li>
{{end}}</ul>
{{else}}
<p>No delay data</p>
{{end}}
</div>

<div class='block-box'>
<h2>Jobs with Alerts</h2>
{{if .HasAlerts}}
{{if .ByReason}}<h3>Breakdown by Top Reasons:</h3>
{{range .ByReason}}<h4>{{.Title}} – {{len .Rows}} jobs:</h4>
{{template "alerttable" .Rows}}
{{end}}{{end}}
{{if .ByMachine}}<h3>Breakdown by Top Machines:</h3>
{{range .ByMachine}}<h4>{{.Title}} – {{len .Rows}} jobs:</h4>
{{template "alerttable" .Rows}}
{{end}}{{end}}
{{else}}
<p>No alerted jobs</p>
{{end}}
</div>

<div class="block-box">
<h2>Gantt Chart</h2>
{{if .GanttHTML}}{{.GanttHTML}}{{else}}<p>No Gantt chart supplied</p>{{end}}
</div>

{{if .ParetoHTML}}<div class="block-box">
<h2>Pareto Chart</h2>
{{.ParetoHTML}}
</div>
{{end}}
{{if .PieHTML}}<div class="block-box">
<h2>Pie Chart</h2>
{{.PieHTML}}
</div>
{{end}}
{{if .HeatmapHTML}}<div class="block-box heatmap-block">
<h2>Heatmap</h2>
{{.HeatmapHTML}}
</div>
{{end}}
</body>
</html>
{{define "alerttable"}}<table>
<tr><th>Date</th><th>Machine</th><th>ItemCode</th><th>Delay (min)</th><th>Reason</th><th>Note</th></tr>
{{range .}}<tr><td>{{.Date}}</td><td>{{.Machine}}</td><td>{{.ItemCode}}</td><td>{{.Delay}}</td><td>{{.Reason}}</td><td>{{.Note}}</td></tr>
{{end}}</table>{{end}}`))
