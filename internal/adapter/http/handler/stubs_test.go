package handler

import (
	"context"

	"github.com/iho/networth/internal/domain"
	"github.com/iho/networth/internal/report"
	"github.com/iho/networth/internal/usecase"
)

type stubPortfolioService struct {
	PortfolioFn func(ctx context.Context) (*usecase.Portfolio, error)
	SummaryFn   func(ctx context.Context) (*domain.Summary, error)
}

func (s *stubPortfolioService) Portfolio(ctx context.Context) (*usecase.Portfolio, error) {
	return s.PortfolioFn(ctx)
}

func (s *stubPortfolioService) Summary(ctx context.Context) (*domain.Summary, error) {
	return s.SummaryFn(ctx)
}

type stubCashFlowService struct {
	FlowFn      func(ctx context.Context, summary *domain.Summary) (*usecase.FlowReport, error)
	BreakdownFn func(ctx context.Context) ([]domain.CategoryAmount, error)
	UpcomingFn  func(ctx context.Context) ([]domain.CashRecord, error)
	RecordsFn   func(ctx context.Context) ([]domain.CashRecord, []domain.CashRecord, error)
}

func (s *stubCashFlowService) Flow(ctx context.Context, summary *domain.Summary) (*usecase.FlowReport, error) {
	return s.FlowFn(ctx, summary)
}

func (s *stubCashFlowService) ExpenseBreakdown(ctx context.Context) ([]domain.CategoryAmount, error) {
	return s.BreakdownFn(ctx)
}

func (s *stubCashFlowService) UpcomingExpenses(ctx context.Context) ([]domain.CashRecord, error) {
	return s.UpcomingFn(ctx)
}

func (s *stubCashFlowService) Records(ctx context.Context) ([]domain.CashRecord, []domain.CashRecord, error) {
	return s.RecordsFn(ctx)
}

type stubHistoryService struct {
	InvestedFn func(ctx context.Context) ([]domain.CapitalPoint, error)
	ValuesFn   func(ctx context.Context) ([]domain.ValuePoint, error)
}

func (s *stubHistoryService) InvestedCapital(ctx context.Context) ([]domain.CapitalPoint, error) {
	return s.InvestedFn(ctx)
}

func (s *stubHistoryService) ValueHistory(ctx context.Context) ([]domain.ValuePoint, error) {
	return s.ValuesFn(ctx)
}

type stubMarketService struct {
	PricesFn  func(ctx context.Context) domain.PriceSnapshot
	RefreshFn func(ctx context.Context) (*usecase.RefreshResult, error)
}

func (s *stubMarketService) Prices(ctx context.Context) domain.PriceSnapshot {
	return s.PricesFn(ctx)
}

func (s *stubMarketService) Refresh(ctx context.Context) (*usecase.RefreshResult, error) {
	return s.RefreshFn(ctx)
}

type stubIntegrityService struct {
	CheckFn func(ctx context.Context) (*usecase.IntegrityReport, error)
}

func (s *stubIntegrityService) Check(ctx context.Context) (*usecase.IntegrityReport, error) {
	return s.CheckFn(ctx)
}

type stubReportService struct {
	CollectFn func(ctx context.Context) (*report.Data, error)
}

func (s *stubReportService) Collect(ctx context.Context) (*report.Data, error) {
	return s.CollectFn(ctx)
}

type stubChecker struct {
	name string
	err  error
}

func (c stubChecker) Name() string { return c.name }
func (c stubChecker) Check(ctx context.Context) error { return c.err }
