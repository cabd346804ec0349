// Package report renders an analysis into a self-contained HTML
// document and reads the analysis back out of previously written
// reports.
//
// The document embeds the full analysis payload as a JSON data island.
// The page's own JavaScript reads everything it needs from the island,
// so the rank and reweigh commands can reparse a report instead of
// depending on a sidecar file.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/optilens/optilens/internal/models"
	"github.com/yuin/goldmark"
)

// DataIslandID is the element id of the embedded JSON payload.
const DataIslandID = "optilens-data"

const (
	dataIslandOpen  = `<script type="application/json" id="` + DataIslandID + `">`
	dataIslandClose = `</script>`
)

var page = template.Must(template.New("report").Parse(pageTemplate))

type renderedCard struct {
	Title string
	Body  template.HTML
}

type weightInput struct {
	Key   string
	Label string
}

type pageData struct {
	SourceFile         string
	AnalyzedAt         string
	Summary            models.Summary
	ParamRanges        []models.ParamRange
	Cards              []renderedCard
	Weights            []weightInput
	ParamColumns       []string
	RankTopN           int
	DefaultWeightsText string
	Payload            template.JS
}

// Render writes the report document for one analysis. The payload is
// embedded verbatim; json.Marshal escapes angle brackets, so the island
// cannot terminate the enclosing script element early.
func Render(w io.Writer, a *models.Analysis) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("report: encode analysis payload: %w", err)
	}

	cards := make([]renderedCard, 0, len(a.Cards))
	for _, c := range a.Cards {
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(c.Body), &buf); err != nil {
			return fmt.Errorf("report: render card %q: %w", c.Title, err)
		}
		cards = append(cards, renderedCard{Title: c.Title, Body: template.HTML(buf.String())})
	}

	data := pageData{
		SourceFile:         a.SourceFile,
		AnalyzedAt:         a.AnalyzedAt,
		Summary:            a.Summary,
		ParamRanges:        a.ParamRanges,
		Cards:              cards,
		Weights:            weightInputs(),
		ParamColumns:       a.ParamColumns,
		RankTopN:           a.RankTopN,
		DefaultWeightsText: defaultWeightsText(a.DefaultWeights),
		Payload:            template.JS(payload),
	}

	if err := page.Execute(w, data); err != nil {
		return fmt.Errorf("report: render %s: %w", a.SourceFile, err)
	}
	return nil
}

// weightInputs lists one input control per catalog metric, in catalog
// order. Inputs for metrics absent from the analyzed table stay in the
// page and are disabled client-side.
func weightInputs() []weightInput {
	ins := make([]weightInput, 0, len(models.MetricCatalog))
	for _, m := range models.MetricCatalog {
		ins = append(ins, weightInput{Key: m.Key, Label: m.Label})
	}
	return ins
}

func defaultWeightsText(weights models.WeightVector) string {
	parts := make([]string, 0, len(models.MetricCatalog))
	for _, m := range models.MetricCatalog {
		w := strconv.FormatFloat(weights[m.Key], 'g', -1, 64)
		parts = append(parts, m.Label+": "+w)
	}
	return strings.Join(parts, ", ")
}

const pageTop = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <title>Optimization report - {{.SourceFile}}</title>
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <link href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css"
          rel="stylesheet"
          integrity="sha384-QWTKZyjpPEjISv5WaRU9OFeRpok6YctnYmDr5pNlyT2bRjXh0JMhjY6hW+ALEwIH"
          crossorigin="anonymous">
    <script src="https://cdn.plot.ly/plotly-latest.min.js"></script>
  </head>
  <body class="bg-light">
    <div class="container my-4">
      <div class="d-flex justify-content-between align-items-end mb-3">
        <h1 class="mb-0">Optimization report - {{.SourceFile}}</h1>
        <div class="text-muted small">Analyzed: {{.AnalyzedAt}}</div>
      </div>

      <div class="row mb-4">
        <div class="col-md-3 mb-3">
          <div class="card shadow-sm">
            <div class="card-body">
              <h6 class="card-title">Parameters swept</h6>
              <p class="card-text fs-5 mb-0">{{.Summary.ParamCount}}</p>
            </div>
          </div>
        </div>
        <div class="col-md-3 mb-3">
          <div class="card shadow-sm">
            <div class="card-body">
              <h6 class="card-title">Total runs</h6>
              <p class="card-text fs-5 mb-0">{{.Summary.TotalRuns}}</p>
            </div>
          </div>
        </div>
        <div class="col-md-3 mb-3">
          <div class="card shadow-sm">
            <div class="card-body">
              <h6 class="card-title">Profitable runs</h6>
              <p class="card-text fs-5 mb-0">{{.Summary.ProfitableRuns}}</p>
            </div>
          </div>
        </div>
        <div class="col-md-3 mb-3">
          <div class="card shadow-sm">
            <div class="card-body">
              <h6 class="card-title">Pareto-efficient runs</h6>
              <p class="card-text fs-5 mb-0">{{.Summary.ParetoCount}}</p>
            </div>
          </div>
        </div>
      </div>

      <div class="card mb-4 shadow-sm">
        <div class="card-header">
          Swept parameter ranges
        </div>
        <div class="card-body p-0">
          <table class="table mb-0 table-bordered table-sm">
            <thead class="table-light">
              <tr>
                <th>Parameter</th>
                <th>Min</th>
                <th>Max</th>
                <th>Step</th>
              </tr>
            </thead>
            <tbody>
              {{range .ParamRanges}}
              <tr>
                <td>{{.Name}}</td>
                <td>{{.Min.Display}}</td>
                <td>{{.Max.Display}}</td>
                <td>{{.Step.Display}}</td>
              </tr>
              {{end}}
            </tbody>
          </table>
        </div>
      </div>

      <div class="mb-4">
        <h4 class="mb-3">Suggested configurations (default weights)</h4>
        <div class="row">
          {{range .Cards}}
          <div class="col-md-6 mb-3">
            <div class="card shadow-sm h-100">
              <div class="card-body">
                <h5 class="card-title">{{.Title}}</h5>
                <div class="card-text">
                  {{.Body}}
                </div>
              </div>
            </div>
          </div>
          {{end}}
        </div>
      </div>

      <div class="card mb-4 shadow-sm">
        <div class="card-header">
          Score weights
        </div>
        <div class="card-body">
          <div class="row g-3">
            {{range .Weights}}
            <div class="col-md-4">
              <label class="form-label" for="w_{{.Key}}">{{.Label}} weight ({{.Key}})</label>
              <div class="input-group">
                <input type="number" step="0.01" class="form-control" id="w_{{.Key}}">
                <span class="input-group-text" id="w_{{.Key}}_val"></span>
              </div>
            </div>
            {{end}}
          </div>
          <div class="mt-3">
            <button class="btn btn-primary" id="btn-recompute">Update</button>
            <button class="btn btn-outline-secondary ms-2" id="btn-reset">Reset</button>
            <span class="text-muted small ms-2">(weights need not sum to 1)</span>
          </div>
        </div>
        <div class="text-muted small mt-2 ps-3 pb-3">
          Default weights: {{.DefaultWeightsText}}
        </div>
      </div>

      <div class="mb-4">
        <h4 class="mb-3">Parameter sensitivity (mean score)</h4>
        <div id="param-charts">
          {{range $i, $p := .ParamColumns}}
          <div class="card mb-3 shadow-sm">
            <div class="card-body">
              <div id="param-chart-{{$i}}" style="height: 360px;"></div>
            </div>
          </div>
          {{end}}
        </div>
      </div>

      <div class="mb-4">
        <div class="d-flex justify-content-between align-items-center mb-3">
          <h4 class="mb-0">Run ranking (by current score)</h4>
          <div class="btn-group btn-group-sm" role="group">
            <button type="button" class="btn btn-outline-secondary" id="btn-top-n">Show top {{.RankTopN}}</button>
            <button type="button" class="btn btn-outline-secondary" id="btn-all">Show all</button>
          </div>
        </div>
        <div class="card shadow-sm">
          <div class="card-body table-responsive" id="rank-table-container">
          </div>
        </div>
      </div>

      <footer class="text-muted my-3">
        <small>Adjust the weights above to recompute scores, charts, and the ranking in place.</small>
      </footer>
    </div>

    `

const pageScript = `
    <script>
      const data = JSON.parse(document.getElementById('` + DataIslandID + `').textContent);

      const rawData = data.rows || [];
      const paramCols = data.param_columns || [];
      const metricsConfig = data.metrics || {};
      const displayNameMap = data.display_names || {};
      const tableColumns = data.table_columns || [];
      const defaultWeights = data.default_weights || {};
      let weights = JSON.parse(JSON.stringify(defaultWeights));
      let rankTopN = data.rank_top_n;

      function initWeightInputs() {
        for (const [key, val] of Object.entries(weights)) {
          const input = document.getElementById('w_' + key);
          const span = document.getElementById('w_' + key + '_val');
          if (!input || !span) continue;
          if (!(key in metricsConfig)) {
            input.value = 0;
            input.disabled = true;
            span.textContent = 'n/a';
            continue;
          }
          input.value = val;
          span.textContent = val;
          input.addEventListener('input', () => {
            span.textContent = input.value;
          });
        }
      }

      function recomputeScores() {
        for (const key of Object.keys(weights)) {
          const input = document.getElementById('w_' + key);
          if (!input) continue;
          const v = parseFloat(input.value);
          weights[key] = isNaN(v) ? 0 : v;
        }

        rawData.forEach(row => {
          let s = 0;
          for (const [key, cfg] of Object.entries(metricsConfig)) {
            const w = weights[key] || 0;
            const z = row[cfg.zcol];
            if (typeof z === 'number') {
              s += w * z;
            }
          }
          row['Score_Weighted'] = s;
        });
      }

      function resetWeights() {
        for (const key of Object.keys(defaultWeights)) {
          weights[key] = defaultWeights[key];
          const input = document.getElementById('w_' + key);
          const span = document.getElementById('w_' + key + '_val');
          if (input && span && !input.disabled) {
            input.value = defaultWeights[key];
            span.textContent = defaultWeights[key];
          }
        }

        recomputeScores();
        buildParamCharts();
        buildRankingTable();
      }

      function buildParamCharts() {
        paramCols.forEach((param, idx) => {
          const grouped = {};
          rawData.forEach(row => {
            const v = row[param];
            if (v === undefined || v === null) return;
            const key = String(v);
            if (!grouped[key]) grouped[key] = [];
            grouped[key].push(row['Score_Weighted']);
          });

          const xs = [];
          const ys = [];
          const keys = Object.keys(grouped).sort((a, b) => parseFloat(a) - parseFloat(b));
          keys.forEach(k => {
            const arr = grouped[k];
            const avg = arr.reduce((sum, val) => sum + val, 0) / arr.length;
            // non-numeric parameter values plot on a categorical axis
            const x = parseFloat(k);
            xs.push(isNaN(x) ? k : x);
            ys.push(avg);
          });

          const divId = 'param-chart-' + idx;
          const titleName = param.startsWith('inp') ? param.slice(3) : param;

          const trace = {
            x: xs,
            y: ys,
            mode: 'lines+markers',
            name: titleName
          };
          const layout = {
            title: titleName + ' vs. mean score',
            xaxis: { title: titleName },
            yaxis: { title: 'Mean score' },
            margin: { t: 40, r: 20, b: 40, l: 50 }
          };

          Plotly.react(divId, [trace], layout);
        });
      }

      function columnLabel(col) {
        if (col === 'Score_Weighted') return 'Score';
        if (col.startsWith('inp')) return col.slice(3);
        return displayNameMap[col] || col;
      }

      function esc(s) {
        return String(s).replace(/&/g, '&amp;').replace(/</g, '&lt;').replace(/>/g, '&gt;');
      }

      function buildRankingTable() {
        const container = document.getElementById('rank-table-container');
        if (!container) return;

        const rows = rawData.slice().sort((a, b) => (b['Score_Weighted'] || 0) - (a['Score_Weighted'] || 0));
        const total = rows.length;
        const rowsToShow = (rankTopN && rankTopN > 0) ? rows.slice(0, rankTopN) : rows;

        let html = '<table class="table table-striped table-sm"><thead><tr>';
        tableColumns.forEach(col => {
          html += '<th>' + esc(columnLabel(col)) + '</th>';
        });
        html += '</tr></thead><tbody>';

        rowsToShow.forEach(row => {
          const trClass = row['Is_Pareto'] === true ? ' class="table-success"' : '';
          html += '<tr' + trClass + '>';
          tableColumns.forEach(col => {
            let val;
            if (col === 'Score_Weighted') {
              const s = row[col];
              val = (typeof s === 'number') ? s.toFixed(3) : '';
            } else {
              val = row[col];
            }
            if (val === undefined || val === null) val = '';
            html += '<td>' + esc(val) + '</td>';
          });
          html += '</tr>';
        });

        html += '</tbody></table>';
        html += '<div class="text-muted small mt-2">Green rows are Pareto-efficient. Showing '
              + rowsToShow.length + ' of ' + total + ' runs.</div>';
        container.innerHTML = html;
      }

      document.addEventListener('DOMContentLoaded', () => {
        initWeightInputs();
        recomputeScores();
        buildParamCharts();
        buildRankingTable();

        const btnRecompute = document.getElementById('btn-recompute');
        if (btnRecompute) {
          btnRecompute.addEventListener('click', () => {
            recomputeScores();
            buildParamCharts();
            buildRankingTable();
          });
        }

        const btnReset = document.getElementById('btn-reset');
        if (btnReset) {
          btnReset.addEventListener('click', () => {
            resetWeights();
          });
        }

        const btnTopN = document.getElementById('btn-top-n');
        if (btnTopN) {
          btnTopN.addEventListener('click', () => {
            rankTopN = data.rank_top_n;
            buildRankingTable();
          });
        }

        const btnAll = document.getElementById('btn-all');
        if (btnAll) {
          btnAll.addEventListener('click', () => {
            rankTopN = 0;
            buildRankingTable();
          });
        }
      });
    </script>

    <script src="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/js/bootstrap.bundle.min.js"
            integrity="sha384-YvpcrYf0tY3lHB60NNkmXc5s9fDVZLESaAA55NDzOxhy9GkcIdslK1eN7N6jIeHz"
            crossorigin="anonymous"></script>
  </body>
</html>
`

const pageTemplate = pageTop + dataIslandOpen + `{{.Payload}}` + dataIslandClose + pageScript
