package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/networth/internal/adapter/http/dto"
	"github.com/iho/networth/internal/adapter/pricesource"
	"github.com/iho/networth/internal/adapter/repository/csvfile"
	redisRepo "github.com/iho/networth/internal/adapter/repository/redis"
	"github.com/iho/networth/internal/domain"
	"github.com/iho/networth/internal/infrastructure/config"
	"github.com/iho/networth/internal/infrastructure/logger"
	"github.com/iho/networth/internal/infrastructure/redis"
	"github.com/iho/networth/internal/report"
	"github.com/iho/networth/internal/usecase"
)

type options struct {
	dataDir  string
	logLevel string
	asJSON   bool
}

// app wires the use cases for one command run.
type app struct {
	cfg       *config.Config
	out       io.Writer
	portfolio *usecase.PortfolioUseCase
	cashFlow  *usecase.CashFlowUseCase
	market    *usecase.MarketUseCase
	integrity *usecase.IntegrityUseCase
	reports   *report.Collector
	close     func()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "networth",
		Short:         "Net worth and cash-flow tracker",
		Long:          `Reads the CSV ledger in the data directory, reconstructs holdings, refreshes prices and forecasts cash flow.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Ledger directory (defaults to DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (defaults to LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "Print JSON instead of text")

	rootCmd.AddCommand(
		checkCmd(opts),
		sourcesCmd(opts),
		rebuildCmd(opts),
		recordCmd(opts),
		refreshCmd(opts),
		summaryCmd(opts),
		forecastCmd(opts),
		reportCmd(opts),
	)
	return rootCmd
}

func newApp(cmd *cobra.Command, opts *options) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if opts.dataDir != "" {
		cfg.DataDir = opts.dataDir
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	lg := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console", Output: cmd.ErrOrStderr()})

	store, err := csvfile.NewStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, out: cmd.OutOrStdout(), close: func() {}}

	var snapshots usecase.PriceSnapshotStore = csvfile.NewSnapshotStore(store.Dir())
	if cfg.PriceCache == config.PriceCacheRedis {
		client, err := redis.NewClient(cmd.Context(), cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		snapshots = redisRepo.NewSnapshotStore(client, cfg.PriceTTL)
		a.close = func() { _ = client.Close() }
	}

	client := pricesource.NewClient(nil, pricesource.ClientConfig{
		Timeout:    cfg.PriceTimeout,
		UserAgent:  cfg.PriceUserAgent,
		MaxRetries: cfg.PriceMaxRetries,
	}, lg)
	sources := []usecase.PriceSource{
		pricesource.NewQueFondos(client, cfg.QueFondosURL),
		pricesource.NewYahoo(client, cfg.YahooURL),
	}

	clock := usecase.SystemClock{}
	a.portfolio = usecase.NewPortfolioUseCase(store, snapshots, nil, lg)
	a.cashFlow = usecase.NewCashFlowUseCase(store, clock, nil, lg)
	a.integrity = usecase.NewIntegrityUseCase(store, clock, nil, lg)
	a.market = usecase.NewMarketUseCase(store, snapshots, sources, usecase.MarketConfig{
		DefaultSource: cfg.PriceDefaultSource,
		ThrottleMin:   cfg.PriceThrottleMin,
		ThrottleMax:   cfg.PriceThrottleMax,
	}, clock, csvfile.NewULIDGenerator(), nil, lg)
	a.reports = report.NewCollector(a.portfolio, a.cashFlow, clock, cfg.Currency)
	return a, nil
}

// runE builds the app for a command and closes it afterwards.
func runE(opts *options, fn func(ctx context.Context, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, opts)
		if err != nil {
			return err
		}
		defer a.close()
		return fn(cmd.Context(), a)
	}
}

func checkCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check ledger integrity",
		RunE: runE(opts, func(ctx context.Context, a *app) error {
			ir, err := a.integrity.Check(ctx)
			if err != nil {
				return err
			}
			if opts.asJSON {
				return printJSON(a.out, dto.IntegrityFromDomain(ir))
			}

			fmt.Fprintf(a.out, "Assets: %d, balances: %d, transactions: %d\n", ir.Assets, ir.Balances, ir.Transactions)
			for _, w := range ir.Warnings {
				fmt.Fprintf(a.out, "WARNING %v\n", w)
			}
			for file, n := range ir.Rejected {
				fmt.Fprintf(a.out, "REJECTED %s: %d rows\n", file, n)
			}
			if ir.OK() {
				fmt.Fprintln(a.out, "Integrity check PASSED")
			} else {
				fmt.Fprintln(a.out, "Integrity check found problems")
			}
			return nil
		}),
	}
}

func sourcesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "Probe the price source of every asset without saving",
		RunE: runE(opts, func(ctx context.Context, a *app) error {
			checks, err := a.market.CheckSources(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ASSET\tNAME\tSOURCE\tCODE\tRESULT")
			for _, c := range checks {
				result := c.Price.String()
				if !c.OK() {
					result = "FAILED: " + c.Err.Error()
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.AssetID, truncate(c.Name, 30), c.Source, c.LookupCode, result)
			}
			return w.Flush()
		}),
	}
}

func rebuildCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild",
		Short: "Rebuild holdings from the initial balances and transactions",
		RunE: runE(opts, func(ctx context.Context, a *app) error {
			p, err := a.portfolio.Rebuild(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Rebuilt %d holdings\n", len(p.Holdings))
			if len(p.Failed) > 0 {
				fmt.Fprintf(a.out, "Excluded after malformed ledger rows: %s\n", strings.Join(p.Failed, ", "))
			}
			return nil
		}),
	}
}

func recordCmd(opts *options) *cobra.Command {
	var (
		date, asset, kind     string
		units, cash, unitPrice string
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Append a transaction to the ledger and rebuild holdings",
		RunE: runE(opts, func(ctx context.Context, a *app) error {
			tx, err := parseTransaction(date, asset, kind, units, cash, unitPrice)
			if err != nil {
				return err
			}
			p, err := a.portfolio.Record(ctx, tx)
			if err != nil {
				return err
			}

			h := p.Holdings[tx.AssetID]
			if opts.asJSON {
				return printJSON(a.out, dto.HoldingsFromDomain(domain.Holdings{tx.AssetID: h}))
			}
			fmt.Fprintf(a.out, "Recorded %s %s %s: now %s units @ %s\n", tx.Date.Format(time.DateOnly), tx.Kind, tx.AssetID, h.Units, h.AvgCost)
			return nil
		}),
	}

	cmd.Flags().StringVar(&date, "date", "", "Transaction date, YYYY-MM-DD (defaults to today)")
	cmd.Flags().StringVar(&asset, "asset", "", "Asset ID")
	cmd.Flags().StringVar(&kind, "kind", string(domain.KindBuy), "BUY, SELL or VALUE_ADJUST")
	cmd.Flags().StringVar(&units, "units", "0", "Units bought or sold")
	cmd.Flags().StringVar(&cash, "cash", "0", "Cash amount paid or received")
	cmd.Flags().StringVar(&unitPrice, "price", "0", "Unit price")
	_ = cmd.MarkFlagRequired("asset")
	return cmd
}

func parseTransaction(date, asset, kind, units, cash, unitPrice string) (domain.Transaction, error) {
	tx := domain.Transaction{AssetID: strings.TrimSpace(asset), Kind: domain.TransactionKind(kind), Date: time.Now().UTC()}
	if date != "" {
		d, err := time.Parse(time.DateOnly, date)
		if err != nil {
			return tx, fmt.Errorf("invalid --date %q: want YYYY-MM-DD", date)
		}
		tx.Date = d
	}

	for _, f := range []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"units", units, &tx.Units},
		{"cash", cash, &tx.CashAmount},
		{"price", unitPrice, &tx.UnitPrice},
	} {
		v, err := decimal.NewFromString(f.raw)
		if err != nil {
			return tx, fmt.Errorf("invalid --%s %q: %w", f.name, f.raw, err)
		}
		*f.dst = v
	}
	return tx, nil
}

func refreshCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Fetch current prices and update the snapshot and history",
		RunE: runE(opts, func(ctx context.Context, a *app) error {
			result, err := a.market.Refresh(ctx)
			if err != nil {
				return err
			}
			if opts.asJSON {
				return printJSON(a.out, dto.RefreshFromDomain(result))
			}
			fmt.Fprintln(a.out, result.Message)
			for _, f := range result.Failed {
				fmt.Fprintf(a.out, "FAILED %s (%s): %v\n", f.AssetID, f.Source, f.Err)
			}
			return nil
		}),
	}
}

// valued returns the summary with runway and savings rate filled in.
func (a *app) valued(ctx context.Context) (*domain.Summary, *usecase.FlowReport, error) {
	summary, err := a.portfolio.Summary(ctx)
	if err != nil {
		return nil, nil, err
	}
	flow, err := a.cashFlow.Flow(ctx, summary)
	if err != nil {
		return nil, nil, err
	}
	return summary, flow, nil
}

func summaryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the valued portfolio",
		RunE: runE(opts, func(ctx context.Context, a *app) error {
			summary, _, err := a.valued(ctx)
			if err != nil {
				return err
			}
			if opts.asJSON {
				return printJSON(a.out, summary)
			}

			cur := a.cfg.Currency
			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Net worth\t%s\n", report.Money(summary.NetWorth, cur))
			fmt.Fprintf(w, "Total return\t%s\n", report.Percent(summary.TotalReturnPct))
			fmt.Fprintf(w, "Risk assets\t%s (%s)\n", report.Money(summary.EquityValue, cur), report.Percent(summary.RiskPct))
			fmt.Fprintf(w, "Liquid\t%s\n", report.Money(summary.LiquidValue, cur))
			fmt.Fprintf(w, "Runway\t%s months\n", summary.RunwayMonths.StringFixed(1))
			fmt.Fprintf(w, "Savings rate\t%s\n", report.Percent(summary.SavingsRate))
			return w.Flush()
		}),
	}
}

func forecastCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "forecast",
		Short: "Print the cash-flow forecast",
		RunE: runE(opts, func(ctx context.Context, a *app) error {
			_, flow, err := a.valued(ctx)
			if err != nil {
				return err
			}
			f := flow.Forecast
			if opts.asJSON {
				return printJSON(a.out, f)
			}

			cur := a.cfg.Currency
			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Average income\t%s\n", report.Money(f.AvgIncome, cur))
			fmt.Fprintf(w, "Weighted expenses\t%s\n", report.Money(f.WeightedAvgExpense, cur))
			fmt.Fprintf(w, "Net flow\t%s\n", report.Money(f.NetFlow, cur))
			fmt.Fprintf(w, "In %d months\t%s / %s / %s\n", f.Months6,
				report.Money(f.Scenarios6M.Pessimistic, cur), report.Money(f.Scenarios6M.Realistic, cur), report.Money(f.Scenarios6M.Optimistic, cur))
			fmt.Fprintf(w, "End of %d\t%s / %s / %s\n", f.Year,
				report.Money(f.ScenariosEOY.Pessimistic, cur), report.Money(f.ScenariosEOY.Realistic, cur), report.Money(f.ScenariosEOY.Optimistic, cur))
			return w.Flush()
		}),
	}
}

func reportCmd(opts *options) *cobra.Command {
	var (
		htmlPath string
		style    string
		width    int
		raw      bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the net worth report",
		RunE: runE(opts, func(ctx context.Context, a *app) error {
			data, err := a.reports.Collect(ctx)
			if err != nil {
				return err
			}
			md := report.Markdown(data)

			if htmlPath != "" {
				page, err := report.HTML("Net worth report", md)
				if err != nil {
					return err
				}
				if err := os.WriteFile(htmlPath, page, 0o644); err != nil {
					return fmt.Errorf("writing report: %w", err)
				}
				fmt.Fprintf(a.out, "Report written to %s\n", htmlPath)
				return nil
			}
			if raw {
				_, err := io.WriteString(a.out, md)
				return err
			}

			out, err := report.Terminal(md, style, width)
			if err != nil {
				return err
			}
			_, err = io.WriteString(a.out, out)
			return err
		}),
	}

	cmd.Flags().StringVar(&htmlPath, "html", "", "Write an HTML report to this path")
	cmd.Flags().StringVar(&style, "style", "dark", "Terminal style (dark, light, notty)")
	cmd.Flags().IntVar(&width, "width", 100, "Terminal word wrap width")
	cmd.Flags().BoolVar(&raw, "markdown", false, "Print the markdown source")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

