// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package output

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
:root { --bg: #fff; --fg: #1a1a2e; --border: #dee2e6; --muted: #6c757d; --accent: #0d6efd; }
@media (prefers-color-scheme: dark) {
  :root { --bg: #1a1a2e; --fg: #e9ecef; --border: #495057; --muted: #adb5bd; --accent: #5b9aff; }
}
* { box-sizing: border-box; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: var(--bg); color: var(--fg); margin: 0 auto; padding: 1rem; max-width: 1400px; }
header h1 { font-size: 1.5rem; margin: 0 0 .25rem; }
header p { color: var(--muted); font-size: .875rem; margin: 0 0 1rem; }
.controls { display: flex; gap: .5rem; align-items: center; margin-bottom: 1rem; }
.controls select { font-size: 1rem; padding: .25rem .5rem; min-width: 16rem; }
.controls button { font-size: 1rem; padding: .25rem .75rem; border: 1px solid var(--border); border-radius: 4px; background: transparent; color: var(--fg); cursor: pointer; }
.controls button:hover { border-color: var(--accent); }
iframe.plot { width: 100%; height: 700px; border: 1px solid var(--border); border-radius: 8px; background: #fff; }
</style>
</head>
<body>
<header>
<h1>{{.Title}}</h1>
<p>Dandiset {{.Dandiset}}{{if .Version}} version {{.Version}}{{end}} &middot; generated {{.GeneratedAt}}{{if .RunID}} &middot; run {{.RunID}}{{end}}</p>
</header>
<div class="controls">
<label for="plot-select">Plot:</label>
<button type="button" id="prev" title="Previous plot">&larr;</button>
<select id="plot-select">
{{- range .Plots}}
<option value="{{if $.Inline}}{{.ID}}{{else}}{{.Href}}{{end}}">{{.Name}}</option>
{{- end}}
</select>
<button type="button" id="next" title="Next plot">&rarr;</button>
</div>
{{- if .Inline}}
{{- range $i, $p := .Plots}}
<iframe class="plot" id="{{$p.ID}}" title="{{$p.Name}}" srcdoc="{{$p.Content}}"{{if $i}} hidden{{end}}></iframe>
{{- end}}
{{- else}}
<iframe class="plot" id="viewer" title="Plot" src="{{(index .Plots 0).Href}}"></iframe>
{{- end}}
<script>
(function() {
  var plots = {{json .Plots}};
  var inline = {{json .Inline}};
  var sel = document.getElementById('plot-select');

  function show(i) {
    if (i < 0 || i >= plots.length) return;
    sel.selectedIndex = i;
    if (inline) {
      plots.forEach(function(p, j) {
        document.getElementById(p.id).hidden = (j !== i);
      });
    } else {
      document.getElementById('viewer').src = plots[i].href;
    }
    if (history.replaceState) {
      history.replaceState(null, '', '#' + encodeURIComponent(plots[i].name));
    }
  }

  sel.addEventListener('change', function() { show(sel.selectedIndex); });
  document.getElementById('prev').addEventListener('click', function() { show(sel.selectedIndex - 1); });
  document.getElementById('next').addEventListener('click', function() { show(sel.selectedIndex + 1); });

  var want = decodeURIComponent(location.hash.slice(1));
  if (want) {
    for (var i = 0; i < plots.length; i++) {
      if (plots[i].name === want) { show(i); break; }
    }
  }
})();
</script>
</body>
</html>
`
