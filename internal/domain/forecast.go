package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Forecast parameters.
const (
	IncomeWindow        = 6  // months averaged for income and recurring expenses
	ExtraordinaryWindow = 12 // months over which lumpy expenses are prorated
	FixedHorizonMonths  = 6
)

var (
	// RunwaySentinel signals an infinite runway when there are no expenses.
	RunwaySentinel = decimal.RequireFromString("999.9")

	pessimisticExpenseBuffer = decimal.RequireFromString("1.20")
	pessimisticGrowth        = decimal.RequireFromString("0.90")
	realisticRate            = decimal.RequireFromString("0.035")
	optimisticRate           = decimal.RequireFromString("0.10")
	rateSpreadMonths         = decimal.NewFromInt(6)
	hundred                  = decimal.NewFromInt(100)
)

// ForecastInput holds the monthly series and current values a forecast is
// computed from.
type ForecastInput struct {
	Income               []MonthlyTotal
	RecurringExpense     []MonthlyTotal
	ExtraordinaryExpense []MonthlyTotal
	EquityValue          decimal.Decimal
	StableValue          decimal.Decimal
	LiquidValue          decimal.Decimal
	Now                  time.Time
}

// Scenarios are projected net worths at one horizon.
type Scenarios struct {
	Pessimistic decimal.Decimal `json:"pessimistic"`
	Realistic   decimal.Decimal `json:"realistic"`
	Optimistic  decimal.Decimal `json:"optimistic"`
}

// ForecastResult is the outcome of Forecast.
type ForecastResult struct {
	AvgIncome                       decimal.Decimal `json:"avg_income"`
	AvgExpenseRecurring             decimal.Decimal `json:"avg_expense_recurring"`
	AvgExpenseExtraordinaryProrated decimal.Decimal `json:"avg_expense_extraordinary_prorated"`
	WeightedAvgExpense              decimal.Decimal `json:"weighted_avg_expense"`
	NetFlow                         decimal.Decimal `json:"net_flow"`
	NetFlowPessimistic              decimal.Decimal `json:"net_flow_pessimistic"`
	RunwayMonths                    decimal.Decimal `json:"runway_months"`
	SavingsRate                     decimal.Decimal `json:"savings_rate"`
	Months6                         int             `json:"months_6"`
	MonthsToYearEnd                 int             `json:"months_eoy"`
	Year                            int             `json:"eoy_year"`
	Scenarios6M                     Scenarios       `json:"scenarios_6m"`
	ScenariosEOY                    Scenarios       `json:"scenarios_eoy"`
}

// Forecast derives trailing averages from the monthly series and projects
// net worth under three scenarios at a fixed six-month horizon and at the end
// of the current year.
func Forecast(in ForecastInput) ForecastResult {
	r := ForecastResult{
		AvgIncome:                       MeanTotals(Tail(in.Income, IncomeWindow)),
		AvgExpenseRecurring:             MeanTotals(Tail(in.RecurringExpense, IncomeWindow)),
		AvgExpenseExtraordinaryProrated: SumTotals(Tail(in.ExtraordinaryExpense, ExtraordinaryWindow)).Div(decimal.NewFromInt(ExtraordinaryWindow)),
		Months6:                         FixedHorizonMonths,
		Year:                            in.Now.Year(),
		MonthsToYearEnd:                 max(0, 12-int(in.Now.Month())),
	}
	r.WeightedAvgExpense = r.AvgExpenseRecurring.Add(r.AvgExpenseExtraordinaryProrated)
	r.NetFlow = r.AvgIncome.Sub(r.WeightedAvgExpense)
	r.NetFlowPessimistic = r.AvgIncome.Sub(r.WeightedAvgExpense.Mul(pessimisticExpenseBuffer))
	r.RunwayMonths = Runway(in.LiquidValue, r.WeightedAvgExpense)
	r.SavingsRate = SavingsRate(r.AvgIncome, r.WeightedAvgExpense)

	fixed := decimal.NewFromInt(FixedHorizonMonths)
	r.Scenarios6M = Scenarios{
		Pessimistic: project(in, pessimisticGrowth, r.NetFlowPessimistic, fixed),
		Realistic:   project(in, decimal.NewFromInt(1).Add(realisticRate), r.NetFlow, fixed),
		Optimistic:  project(in, decimal.NewFromInt(1).Add(optimisticRate), r.NetFlow, fixed),
	}

	eoy := decimal.NewFromInt(int64(r.MonthsToYearEnd))
	r.ScenariosEOY = Scenarios{
		Pessimistic: project(in, pessimisticGrowth, r.NetFlowPessimistic, eoy),
		Realistic:   project(in, variableGrowth(realisticRate, eoy), r.NetFlow, eoy),
		Optimistic:  project(in, variableGrowth(optimisticRate, eoy), r.NetFlow, eoy),
	}
	return r
}

// Runway returns how many months liquid funds cover the expense rate.
func Runway(liquid, monthlyExpense decimal.Decimal) decimal.Decimal {
	if !monthlyExpense.IsPositive() {
		return RunwaySentinel
	}
	return liquid.Div(monthlyExpense)
}

// SavingsRate returns the share of income left after expenses, in percent.
func SavingsRate(income, expense decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	return income.Sub(expense).Div(income).Mul(hundred)
}

// variableGrowth is 1 + rate/6 × months.
func variableGrowth(rate, months decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(rate.Mul(months).Div(rateSpreadMonths))
}

func project(in ForecastInput, growth, flow, months decimal.Decimal) decimal.Decimal {
	return in.StableValue.Add(in.EquityValue.Mul(growth)).Add(flow.Mul(months))
}
