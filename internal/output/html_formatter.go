package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/rpgo/fund-projection/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a self-contained HTML report with one section per plan.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	"lasts": func(r domain.CalculationResult) string {
		return depletionText(r.YearsToZero, r.MonthsToZero)
	},
	"months": monthRange,
	"negative": func(d decimal.Decimal) bool {
		return d.IsNegative()
	},
	"add": func(i, j int) int { return i + j },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

// chartPoint is one closing balance plotted in the report
type chartPoint struct {
	Month   int    `json:"month"`
	Balance string `json:"balance"`
}

func (h HTMLFormatter) Format(results *domain.PlanComparison) ([]byte, error) {
	var buf bytes.Buffer

	currency := results.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	charts := make(map[string][]chartPoint, len(results.Plans))
	for _, p := range results.Plans {
		points := make([]chartPoint, 0, len(p.Breakdown))
		for _, r := range p.Breakdown {
			points = append(points, chartPoint{Month: r.EndMonth, Balance: r.ClosingBalance.StringFixed(2)})
		}
		charts[p.Name] = points
	}

	data := struct {
		*domain.PlanComparison
		Currency       string
		Recommendation Recommendation
		Assumptions    []string
		Charts         map[string][]chartPoint
	}{results, currency, AnalyzePlans(results), DefaultAssumptions, charts}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
