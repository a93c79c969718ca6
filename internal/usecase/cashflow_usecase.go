package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/networth/internal/domain"
)

// FlowReport is the monthly cash-flow picture plus the forecast.
type FlowReport struct {
	// Income and Expenses only cover records dated up to now.
	Income   []domain.MonthlyTotal
	Expenses []domain.MonthlyTotal
	Forecast domain.ForecastResult
}

// CashFlowUseCase handles income, expenses and the forecast.
type CashFlowUseCase struct {
	store LedgerStore
	clock Clock
	load  loader
}

// NewCashFlowUseCase creates a new CashFlowUseCase.
func NewCashFlowUseCase(store LedgerStore, clock Clock, recorder Recorder, logger zerolog.Logger) *CashFlowUseCase {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &CashFlowUseCase{
		store: store,
		clock: clock,
		load:  loader{logger: logger, recorder: recorder},
	}
}

// loadFlows returns income and expenses, the latter including the recurring
// templates expanded from the earliest record through now. A cash-flow file
// with an unreadable header reads as empty.
func (uc *CashFlowUseCase) loadFlows(ctx context.Context, now time.Time) (income, expenses []domain.CashRecord, err error) {
	income, _, err = loadOptionalTable(ctx, uc.load, "income", uc.store.Incomes())
	if err != nil {
		return nil, nil, err
	}
	expenses, _, err = loadOptionalTable(ctx, uc.load, "expenses", uc.store.Expenses())
	if err != nil {
		return nil, nil, err
	}
	templates, _, err := loadOptionalTable(ctx, uc.load, "recurring_expenses", uc.store.RecurringExpenses())
	if err != nil {
		return nil, nil, err
	}

	from, ok := domain.EarliestDate(income, expenses)
	if !ok {
		from = now
	}
	expenses = append(expenses, domain.ExpandRecurring(templates, from, now)...)
	return domain.SortRecords(income), domain.SortRecords(expenses), nil
}

// Flow builds the monthly series and the forecast. The forecast uses every
// record, future-dated ones included. When summary is not nil its values
// feed the scenarios and its runway and savings rate are filled in.
func (uc *CashFlowUseCase) Flow(ctx context.Context, summary *domain.Summary) (*FlowReport, error) {
	now := uc.clock.Now()
	income, expenses, err := uc.loadFlows(ctx, now)
	if err != nil {
		return nil, err
	}

	upToNow := func(r domain.CashRecord) bool { return !r.Date.After(now) }
	ordinary, extraordinary := domain.SplitExtraordinary(expenses)

	in := domain.ForecastInput{
		Income:               domain.AggregateMonthly(income),
		RecurringExpense:     domain.AggregateMonthly(ordinary),
		ExtraordinaryExpense: domain.AggregateMonthly(extraordinary),
		Now:                  now,
	}
	if summary != nil {
		in.EquityValue = summary.EquityValue
		in.StableValue = summary.StableValue
		in.LiquidValue = summary.LiquidValue
	}

	report := &FlowReport{
		Income:   domain.AggregateMonthly(domain.FilterRecords(income, upToNow)),
		Expenses: domain.AggregateMonthly(domain.FilterRecords(expenses, upToNow)),
		Forecast: domain.Forecast(in),
	}
	if summary != nil {
		summary.RunwayMonths = report.Forecast.RunwayMonths
		summary.SavingsRate = report.Forecast.SavingsRate
	}
	return report, nil
}

// ExpenseBreakdown returns the monthly average per category over the
// trailing six months, (now - 6 months, now].
func (uc *CashFlowUseCase) ExpenseBreakdown(ctx context.Context) ([]domain.CategoryAmount, error) {
	now := uc.clock.Now()
	_, expenses, err := uc.loadFlows(ctx, now)
	if err != nil {
		return nil, err
	}

	start := now.AddDate(0, -BreakdownMonths, 0)
	window := domain.FilterRecords(expenses, func(r domain.CashRecord) bool {
		return r.Date.After(start) && !r.Date.After(now)
	})
	return domain.CategoryMonthlyAverages(window), nil
}

// UpcomingExpenses returns expenses dated strictly after now, soonest first.
func (uc *CashFlowUseCase) UpcomingExpenses(ctx context.Context) ([]domain.CashRecord, error) {
	now := uc.clock.Now()
	_, expenses, err := uc.loadFlows(ctx, now)
	if err != nil {
		return nil, err
	}
	return domain.FilterRecords(expenses, func(r domain.CashRecord) bool { return r.Date.After(now) }), nil
}

// Records returns every income and expense record, soonest first, with the
// recurring templates expanded through now.
func (uc *CashFlowUseCase) Records(ctx context.Context) (income, expenses []domain.CashRecord, err error) {
	return uc.loadFlows(ctx, uc.clock.Now())
}
