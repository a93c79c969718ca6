package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/networth/internal/domain"
	"github.com/iho/networth/internal/usecase"
)

// PortfolioReader is the portfolio view a report needs.
type PortfolioReader interface {
	Summary(ctx context.Context) (*domain.Summary, error)
	Portfolio(ctx context.Context) (*usecase.Portfolio, error)
}

// FlowReader is the cash-flow view a report needs.
type FlowReader interface {
	Flow(ctx context.Context, summary *domain.Summary) (*usecase.FlowReport, error)
	ExpenseBreakdown(ctx context.Context) ([]domain.CategoryAmount, error)
	UpcomingExpenses(ctx context.Context) ([]domain.CashRecord, error)
}

// Data is everything rendered into a report.
type Data struct {
	GeneratedAt time.Time
	Currency    string
	Summary     *domain.Summary
	Forecast    domain.ForecastResult
	Breakdown   []domain.CategoryAmount
	Upcoming    []domain.CashRecord
	Failed      []string
}

// Collector gathers report Data from the use cases.
type Collector struct {
	portfolio PortfolioReader
	flow      FlowReader
	clock     usecase.Clock
	currency  string
}

// NewCollector creates a new Collector.
func NewCollector(portfolio PortfolioReader, flow FlowReader, clock usecase.Clock, currency string) *Collector {
	return &Collector{portfolio: portfolio, flow: flow, clock: clock, currency: currency}
}

// Collect builds the report data.
func (c *Collector) Collect(ctx context.Context) (*Data, error) {
	summary, err := c.portfolio.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("valuing portfolio: %w", err)
	}
	p, err := c.portfolio.Portfolio(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading portfolio: %w", err)
	}
	flow, err := c.flow.Flow(ctx, summary)
	if err != nil {
		return nil, fmt.Errorf("computing cash flow: %w", err)
	}
	breakdown, err := c.flow.ExpenseBreakdown(ctx)
	if err != nil {
		return nil, fmt.Errorf("computing expense breakdown: %w", err)
	}
	upcoming, err := c.flow.UpcomingExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading upcoming expenses: %w", err)
	}

	return &Data{
		GeneratedAt: c.clock.Now(),
		Currency:    c.currency,
		Summary:     summary,
		Forecast:    flow.Forecast,
		Breakdown:   breakdown,
		Upcoming:    upcoming,
		Failed:      p.Failed,
	}, nil
}

// Markdown renders the report as GitHub-flavored markdown.
func Markdown(d *Data) string {
	var b strings.Builder
	m := func(v decimal.Decimal) string { return Money(v, d.Currency) }

	b.WriteString("# Net worth report\n\n")
	fmt.Fprintf(&b, "_Generated %s_\n\n", d.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"))

	s := d.Summary
	if s == nil {
		s = &domain.Summary{}
	}
	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Net worth | %s |\n", m(s.NetWorth))
	fmt.Fprintf(&b, "| Total cost | %s |\n", m(s.TotalCost))
	fmt.Fprintf(&b, "| Total return | %s |\n", Percent(s.TotalReturnPct))
	fmt.Fprintf(&b, "| Risk assets | %s (%s) |\n", m(s.EquityValue), Percent(s.RiskPct))
	fmt.Fprintf(&b, "| Stable assets | %s |\n", m(s.StableValue))
	fmt.Fprintf(&b, "| Liquid | %s |\n", m(s.LiquidValue))
	fmt.Fprintf(&b, "| Runway | %s months |\n", s.RunwayMonths.StringFixed(1))
	fmt.Fprintf(&b, "| Savings rate | %s |\n\n", Percent(s.SavingsRate))

	if len(s.Positions) > 0 {
		b.WriteString("## Positions\n\n")
		b.WriteString("| Asset | Class | Units | Price | Value | Gain | Return |\n")
		b.WriteString("|---|---|---:|---:|---:|---:|---:|\n")
		for _, p := range s.Positions {
			name := p.Name
			if name == "" {
				name = p.AssetID
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
				cell(name), cell(p.Class), p.Units.String(), p.Price.String(),
				m(p.MarketValue), m(p.Gain), Percent(p.ReturnPct))
		}
		b.WriteString("\n")
	}

	f := d.Forecast
	b.WriteString("## Cash flow\n\n")
	b.WriteString("| Monthly average | Amount |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Income | %s |\n", m(f.AvgIncome))
	fmt.Fprintf(&b, "| Recurring expenses | %s |\n", m(f.AvgExpenseRecurring))
	fmt.Fprintf(&b, "| Extraordinary (prorated) | %s |\n", m(f.AvgExpenseExtraordinaryProrated))
	fmt.Fprintf(&b, "| Net flow | %s |\n\n", m(f.NetFlow))

	b.WriteString("## Forecast\n\n")
	b.WriteString("| Horizon | Pessimistic | Realistic | Optimistic |\n|---|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %d months | %s | %s | %s |\n", f.Months6,
		m(f.Scenarios6M.Pessimistic), m(f.Scenarios6M.Realistic), m(f.Scenarios6M.Optimistic))
	fmt.Fprintf(&b, "| End of %d (%d months) | %s | %s | %s |\n\n", f.Year, f.MonthsToYearEnd,
		m(f.ScenariosEOY.Pessimistic), m(f.ScenariosEOY.Realistic), m(f.ScenariosEOY.Optimistic))

	if len(d.Breakdown) > 0 {
		fmt.Fprintf(&b, "## Expenses by category (last %d months)\n\n", usecase.BreakdownMonths)
		b.WriteString("| Category | Monthly average |\n|---|---:|\n")
		for _, c := range d.Breakdown {
			fmt.Fprintf(&b, "| %s | %s |\n", cell(c.Category), m(c.Amount))
		}
		b.WriteString("\n")
	}

	if len(d.Upcoming) > 0 {
		b.WriteString("## Upcoming expenses\n\n")
		b.WriteString("| Date | Category | Concept | Amount |\n|---|---|---|---:|\n")
		for _, r := range d.Upcoming {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				r.Date.Format(time.DateOnly), cell(r.Category), cell(r.Concept), m(r.Amount))
		}
		b.WriteString("\n")
	}

	if len(d.Failed) > 0 {
		fmt.Fprintf(&b, "> Excluded after malformed transactions: %s\n", strings.Join(d.Failed, ", "))
	}

	return b.String()
}
