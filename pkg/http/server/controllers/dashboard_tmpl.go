package controllers

const tmplDashboard = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Executions</title>
{{if .Loading}}<meta http-equiv="refresh" content="1">{{end}}
<style>
body{font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",Roboto,sans-serif;margin:0;background:#f5f6f8;color:#24292f}
.banner{background:#1f2d3d;color:#fff;padding:16px 24px;font-size:20px;font-weight:600}
.toolbar{display:flex;gap:16px;align-items:center;flex-wrap:wrap;padding:12px 24px;background:#fff;border-bottom:1px solid #dfe3e8}
.toolbar form{display:flex;gap:6px;align-items:center;margin:0}
.toolbar select,.toolbar input{padding:4px 8px;border:1px solid #c4cdd5;border-radius:4px;font-size:13px}
.toolbar button{padding:4px 10px;border:1px solid #c4cdd5;border-radius:4px;background:#fff;cursor:pointer;font-size:13px}
.dot{display:inline-block;width:10px;height:10px;border-radius:50%;margin-right:4px;vertical-align:middle}
.dot-green,.tag-green{background:#21ba45}
.dot-red,.tag-red{background:#db2828}
.dot-yellow,.tag-yellow{background:#fbbd08}
.tag{display:inline-flex;gap:6px;align-items:center;color:#fff;padding:3px 8px;border-radius:4px;font-size:12px}
.tag button{background:transparent;border:0;color:#fff;cursor:pointer;font-size:12px;padding:0}
.no-filter{font-size:12px;color:#637381}
.content{padding:16px 24px}
.loader{padding:48px;text-align:center;color:#637381}
.error{padding:16px;background:#fff6f6;border:1px solid #e0b4b4;color:#9f3a38;border-radius:4px;display:flex;gap:12px;align-items:center}
table{border-collapse:collapse;width:100%;background:#fff;font-size:13px}
th,td{border:1px solid #dfe3e8;padding:6px 10px;text-align:left}
th{background:#f9fafb}
th form{margin:0}
th button{background:transparent;border:0;font-weight:600;cursor:pointer;padding:0;font-size:13px}
th.sort-asc button::after{content:" \25B2"}
th.sort-desc button::after{content:" \25BC"}
td .action{padding:3px 10px;border-radius:4px;border:1px solid #2185d0;background:#2185d0;color:#fff}
td .action:disabled{background:#e0e1e2;border-color:#e0e1e2;color:#767676}
.count{font-size:12px;color:#637381;padding:8px 0}
</style>
</head>
<body>
<div class="banner">{{.Banner}}</div>

<div class="toolbar">
  <form method="post" action="/filters/outcome">
    <label for="outcome">Outcome</label>
    <select id="outcome" name="outcome" onchange="this.form.submit()">
      <option value="" {{if not .Tag}}selected{{end}}>All</option>
      {{range .Outcomes}}<option value="{{.Value}}" {{if .Active}}selected{{end}}>&#9679; {{.Text}}</option>{{end}}
    </select>
    <noscript><button type="submit">Apply</button></noscript>
  </form>

  {{with .Tag}}
  <form method="post" action="/filters/outcome/clear">
    <span class="tag tag-{{.Color}}">{{.Label}} <button type="submit" title="Remove filter">&#10005;</button></span>
  </form>
  {{else}}
  <span class="no-filter">{{.NoFilterText}}</span>
  {{end}}

  <form method="post" action="/filters/relationship">
    <label for="field">Relationship</label>
    <select id="field" name="field" onchange="this.form.submit()">
      <option value="" {{if eq .RelationshipField ""}}selected{{end}}>None</option>
      {{range .Relationships}}<option value="{{.Value}}" {{if .Active}}selected{{end}}>{{.Text}}</option>{{end}}
    </select>
    <noscript><button type="submit">Apply</button></noscript>
  </form>

  <form method="post" action="/filters/relationship/input">
    <input type="text" name="value" value="{{.FilterInput}}" placeholder="{{.FilterPlaceholder}}" {{if not .FilterInputEnabled}}disabled{{end}}>
    <button type="submit" {{if not .FilterInputEnabled}}disabled{{end}}>Search</button>
  </form>

  <form method="post" action="/session/delete">
    <button type="submit">Reset</button>
  </form>
</div>

<div class="content">
{{if .Loading}}
  <div class="loader">{{.LoadingText}}</div>
{{else}}
  {{if .Failed}}
  <div class="error">
    <span>Failed to fetch executions: {{.Error}}</span>
    <form method="post" action="/executions/retry"><button type="submit">Retry</button></form>
  </div>
  {{end}}
  <div class="count">{{len .Rows}} of {{.LoadedCount}} executions</div>
  <table>
    <thead>
      <tr>{{range .HeaderGroups}}<th colspan="{{len .Headers}}">{{.Name}}</th>{{end}}</tr>
      <tr>
      {{range .HeaderGroups}}{{range .Headers}}
        {{if .Sortable}}
        <th class="{{.SortClass}}"><form method="post" action="/sort/{{.ColumnID}}"><button type="submit">{{.Label}}</button></form></th>
        {{else}}
        <th>{{.Label}}</th>
        {{end}}
      {{end}}{{end}}
      </tr>
    </thead>
    <tbody>
    {{range .Rows}}{{$actionable := .Actionable}}
      <tr>
      {{range .Cells}}
        {{if eq .ColumnID "action"}}
        <td><button type="button" class="action" {{if not $actionable}}disabled{{end}}>{{.Text}}</button></td>
        {{else}}
        <td>{{.Text}}</td>
        {{end}}
      {{end}}
      </tr>
    {{end}}
    </tbody>
  </table>
{{end}}
</div>
</body>
</html>
`
