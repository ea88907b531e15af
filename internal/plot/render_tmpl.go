// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package plot

const gridTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; margin: 0; padding: .5rem; color: #1a1a2e; background: #fff; }
.wrap { display: flex; align-items: flex-start; gap: .5rem; }
.toolbar { display: flex; flex-direction: column; gap: .25rem; }
.toolbar button { border: 1px solid #dee2e6; background: #f8f9fa; border-radius: 4px; padding: .25rem .5rem; cursor: pointer; font-size: .75rem; }
rect.cell { stroke: none; }
{{if .Interactive}}rect.cell { cursor: pointer; }
rect.cell:hover { opacity: .8; }
.tooltip { position: absolute; pointer-events: none; background: #fff; border: 1px solid #adb5bd; border-radius: 4px; padding: .375rem .5rem; font-size: .75rem; box-shadow: 0 2px 6px rgba(0,0,0,.15); max-width: 480px; word-break: break-all; }
.tooltip b { display: inline-block; min-width: 4rem; }
.hidden { display: none; }{{end}}
</style>
</head>
<body>
<div class="wrap">
<svg id="plot" xmlns="http://www.w3.org/2000/svg" width="{{.Layout.Width}}" height="{{.Layout.Height}}" viewBox="0 0 {{.Layout.Width}} {{.Layout.Height}}" font-family="sans-serif">
<text x="{{printf "%.1f" .Layout.PlotX}}" y="24" font-size="13pt" font-weight="bold" fill="#1a1a2e">{{.Title}}</text>
<g id="cells">
{{range .Layout.Rects}}<rect class="cell" x="{{printf "%.2f" .X}}" y="{{printf "%.2f" .Y}}" width="{{printf "%.2f" .W}}" height="{{printf "%.2f" .H}}" fill="{{.Fill}}" data-x="{{.Cell.X}}" data-y="{{.Cell.Y}}" data-link="{{.Cell.URL}}"></rect>
{{end}}</g>
<g id="x-labels" font-size="10pt" fill="#1a1a2e">
{{range .Layout.XLabels}}<text x="{{printf "%.2f" .X}}" y="{{printf "%.2f" .Y}}" text-anchor="end" dominant-baseline="middle" transform="rotate({{printf "%.2f" $.Layout.XLabelRotation}} {{printf "%.2f" .X}} {{printf "%.2f" .Y}})">{{.Text}}</text>
{{end}}</g>
<g id="y-labels" font-size="10pt" fill="#1a1a2e">
{{range .Layout.YLabels}}<text x="{{printf "%.2f" .X}}" y="{{printf "%.2f" .Y}}" text-anchor="end" dominant-baseline="middle">{{.Text}}</text>
{{end}}</g>
</svg>
<div class="toolbar"><button type="button" id="save" title="Save" onclick="savePlot()">Save</button></div>
</div>
{{if .Interactive}}<div id="tooltip" class="tooltip hidden"></div>
<script>
var axes = {{json .Axes}};

(function(){
  var tip = document.getElementById("tooltip");
  var cells = document.querySelectorAll("rect.cell");
  function row(name, value) {
    var d = document.createElement("div");
    var b = document.createElement("b");
    b.textContent = name;
    d.appendChild(b);
    d.appendChild(document.createTextNode(" " + value));
    return d;
  }
  for (var i = 0; i < cells.length; i++) {
    cells[i].addEventListener("click", function(){
      var url = this.getAttribute("data-link");
      if (url) {
        window.open(url);
      } else {
        alert("No URL found for this selection.");
      }
    });
    cells[i].addEventListener("mouseenter", function(){
      tip.textContent = "";
      tip.appendChild(row(axes.x, this.getAttribute("data-x")));
      tip.appendChild(row(axes.y, this.getAttribute("data-y")));
      tip.appendChild(row("URL", this.getAttribute("data-link") || "-"));
      tip.classList.remove("hidden");
      var r = this.getBoundingClientRect();
      tip.style.left = (r.left + window.scrollX) + "px";
      tip.style.top = (r.top + window.scrollY - tip.offsetHeight - 6) + "px";
    });
    cells[i].addEventListener("mouseleave", function(){ tip.classList.add("hidden"); });
  }
})();
</script>{{end}}
<script>
function savePlot() {
  var svg = document.getElementById("plot");
  var blob = new Blob([new XMLSerializer().serializeToString(svg)], {type: "image/svg+xml"});
  var a = document.createElement("a");
  a.href = URL.createObjectURL(blob);
  a.download = document.title.replace(/[^A-Za-z0-9_-]+/g, "_") + ".svg";
  document.body.appendChild(a);
  a.click();
  a.remove();
}
</script>
</body>
</html>`
