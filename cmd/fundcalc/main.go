package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rpgo/fund-projection/internal/calculation"
	"github.com/rpgo/fund-projection/internal/config"
	"github.com/rpgo/fund-projection/internal/domain"
	"github.com/rpgo/fund-projection/internal/goal"
	"github.com/rpgo/fund-projection/internal/metrics"
	"github.com/rpgo/fund-projection/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fundcalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

// runOptions are the flags shared by every command that renders a report
type runOptions struct {
	settings    *config.Settings
	format      string
	view        domain.BreakdownView
	currency    string
	debug       bool
	metricsFile string
	metrics     *metrics.Metrics
}

// loadRunOptions merges FUNDCALC_* settings with the flags that were set
func loadRunOptions(cmd *cobra.Command) (*runOptions, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}
	opts := &runOptions{
		settings: settings,
		format:   settings.Format,
		view:     settings.View,
		currency: settings.Currency,
		metrics:  metrics.NewMetrics(""),
	}
	flags := cmd.Flags()
	if flags.Changed("format") {
		opts.format, _ = flags.GetString("format")
	}
	if flags.Changed("view") {
		raw, _ := flags.GetString("view")
		if opts.view, err = domain.ParseBreakdownView(raw); err != nil {
			return nil, err
		}
	}
	if flags.Changed("currency") {
		opts.currency, _ = flags.GetString("currency")
	}
	opts.debug, _ = flags.GetBool("debug")
	opts.metricsFile, _ = flags.GetString("metrics-file")
	return opts, nil
}

func (o *runOptions) engine() *calculation.Engine {
	engine := calculation.NewEngine()
	engine.Limits.MaxBalance = o.settings.MaxBalance
	engine.SetRecorder(o.metrics)
	if o.debug {
		engine.SetLogger(simpleCLILogger{})
	}
	engine.Debug = o.debug
	return engine
}

func (o *runOptions) logger() calculation.Logger {
	if o.debug {
		return simpleCLILogger{}
	}
	return calculation.NopLogger{}
}

// finish writes the metrics file when one was requested
func (o *runOptions) finish() error {
	if o.metricsFile == "" {
		return nil
	}
	return o.metrics.WriteFile(o.metricsFile)
}

func (o *runOptions) render(w io.Writer, cmp *domain.PlanComparison) error {
	cmp.Currency = o.currency
	if err := output.GenerateReport(w, cmp, o.format); err != nil {
		return err
	}
	return o.finish()
}

var rootCmd = &cobra.Command{
	Use:   "fundcalc",
	Short: "Mutual fund investment projection CLI",
	Long: `Project SIP, yearly SIP and lumpsum investments through a holding
period, an optional one-time withdrawal and a systematic withdrawal plan,
and check whether the corpus sustains the withdrawals.`,
	SilenceUsage: true,
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project a single plan given on the command line",
	Example: `  fundcalc project --type sip --amount 10000 --rate 12 --years 20
  fundcalc project --type lumpsum --amount 500000 --rate 10 --years 10 \
      --swp-amount 5000 --swp-years 15 --inflation 6 --view monthly`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadRunOptions(cmd)
		if err != nil {
			return err
		}
		params, err := parametersFromFlags(cmd)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")

		cmp, err := opts.engine().RunPlans([]domain.Plan{{Name: name, InvestmentParameters: params}}, opts.view)
		if err != nil {
			return err
		}
		return opts.render(cmd.OutOrStdout(), cmp)
	},
}

func parametersFromFlags(cmd *cobra.Command) (domain.InvestmentParameters, error) {
	flags := cmd.Flags()
	var p domain.InvestmentParameters

	rawType, _ := flags.GetString("type")
	t, err := domain.ParseInvestmentType(rawType)
	if err != nil {
		return p, err
	}
	p.InvestmentType = t

	amounts := []struct {
		flag string
		dst  *decimal.Decimal
	}{
		{"amount", &p.Amount},
		{"rate", &p.AnnualReturnRate},
		{"one-time-withdrawal", &p.OneTimeWithdrawal},
		{"swp-amount", &p.SWPMonthlyAmount},
		{"inflation", &p.InflationRatePercent},
	}
	for _, a := range amounts {
		raw, _ := flags.GetString(a.flag)
		if raw == "" {
			continue
		}
		if *a.dst, err = config.ParseAmount(a.flag, raw); err != nil {
			return p, err
		}
	}

	p.InvestmentPeriodYears, _ = flags.GetInt("years")
	p.PostInvestmentHoldingYears, _ = flags.GetInt("holding-years")
	p.SWPPeriodYears, _ = flags.GetInt("swp-years")

	rawAnchor, _ := flags.GetString("inflation-anchor")
	if p.InflationAnchor, err = domain.ParseInflationAnchor(rawAnchor); err != nil {
		return p, err
	}
	return p, nil
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [plan-file]",
	Short: "Project every plan in a plan file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadRunOptions(cmd)
		if err != nil {
			return err
		}
		pf, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		cmp, err := opts.engine().RunPlans(pf.Plans, opts.view)
		if err != nil {
			return err
		}
		return opts.render(cmd.OutOrStdout(), cmp)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [plan-file]",
	Short: "Validate a plan file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !fileExists(args[0]) {
			return fmt.Errorf("plan file %s does not exist", args[0])
		}
		pf, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Plan file %s is valid (%d plans)\n", args[0], len(pf.Plans))
		return nil
	},
}

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print an example plan file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		data, err := parser.Marshal(parser.CreateExampleConfiguration())
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Solve for a contribution or a withdrawal",
}

var goalContributionCmd = &cobra.Command{
	Use:   "sip",
	Short: "Find the contribution that reaches a target corpus",
	Example: `  fundcalc goal sip --target 10000000 --rate 12 --years 20
  fundcalc goal sip --type lumpsum --target 2000000 --rate 10 --years 10`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadRunOptions(cmd)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		rawType, _ := flags.GetString("type")
		t, err := domain.ParseInvestmentType(rawType)
		if err != nil {
			return err
		}
		g := goal.ContributionGoal{InvestmentType: t}
		if g.Target, err = decimalFlag(cmd, "target"); err != nil {
			return err
		}
		if g.AnnualReturnPercent, err = decimalFlag(cmd, "rate"); err != nil {
			return err
		}
		g.Years, _ = flags.GetInt("years")

		amount, err := goal.Required(g)
		if err != nil {
			return err
		}
		opts.metrics.GoalSearched("required_" + string(t))

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Target corpus:       %s\n", output.FormatCurrency(g.Target, opts.currency))
		fmt.Fprintf(out, "Required %s:%s%s\n", t, padding(len(t)), output.FormatCurrency(amount, opts.currency))
		fmt.Fprintf(out, "Period:              %d years at %s\n", g.Years, output.FormatPercentage(g.AnnualReturnPercent))
		return opts.finish()
	},
}

var goalSWPCmd = &cobra.Command{
	Use:     "swp",
	Short:   "Find the largest monthly withdrawal a corpus can fund",
	Example: `  fundcalc goal swp --corpus 10000000 --rate 8 --years 25 --inflation 6`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadRunOptions(cmd)
		if err != nil {
			return err
		}
		var g goal.SWPGoal
		if g.Corpus, err = decimalFlag(cmd, "corpus"); err != nil {
			return err
		}
		if g.AnnualReturnPercent, err = decimalFlag(cmd, "rate"); err != nil {
			return err
		}
		if g.InflationPercent, err = decimalFlag(cmd, "inflation"); err != nil {
			return err
		}
		g.Years, _ = cmd.Flags().GetInt("years")

		solver := goal.NewDefaultSolver()
		solver.Logger = opts.logger()
		res, err := solver.MaxSWP(context.Background(), g)
		if err != nil {
			return err
		}
		opts.metrics.GoalSearched("max_swp")

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Corpus:              %s\n", output.FormatCurrency(g.Corpus, opts.currency))
		fmt.Fprintf(out, "Max monthly SWP:     %s\n", output.FormatCurrency(res.MonthlyWithdrawal, opts.currency))
		fmt.Fprintf(out, "Lasts:               %d years with %s inflation\n", g.Years, output.FormatPercentage(g.InflationPercent))
		fmt.Fprintf(out, "Search:              %s\n", res.ConvergenceInfo)
		return opts.finish()
	},
}

// padding aligns the amount column after "Required <type>:"
func padding(n int) string {
	const width = 11
	if n >= width {
		return " "
	}
	return strings.Repeat(" ", width-n)
}

func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return decimal.Zero, nil
	}
	return config.ParseAmount(name, raw)
}

func init() {
	rootCmd.PersistentFlags().StringP("format", "f", "console", "Output format (console, console-lite, csv, breakdown-csv, html, json)")
	rootCmd.PersistentFlags().String("view", string(domain.ViewYearly), "Breakdown view (monthly, quarterly, yearly)")
	rootCmd.PersistentFlags().String("currency", output.DefaultCurrency, "ISO 4217 currency code for amounts")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write Prometheus metrics to this file after the run")

	projectCmd.Flags().String("name", "Plan", "Name shown in the report")
	projectCmd.Flags().StringP("type", "t", string(domain.InvestmentSIP), "Investment type (sip, yearly_sip, lumpsum)")
	projectCmd.Flags().StringP("amount", "a", "", "Contribution per installment, or the lumpsum")
	projectCmd.Flags().StringP("rate", "r", "", "Expected annual return in percent")
	projectCmd.Flags().IntP("years", "y", 0, "Investment period in years")
	projectCmd.Flags().Int("holding-years", 0, "Years the corpus is held after investing stops")
	projectCmd.Flags().String("one-time-withdrawal", "", "Amount withdrawn once after the holding period")
	projectCmd.Flags().String("swp-amount", "", "Monthly systematic withdrawal")
	projectCmd.Flags().Int("swp-years", 0, "Years of systematic withdrawals")
	projectCmd.Flags().String("inflation", "", "Yearly increase of the SWP amount in percent")
	projectCmd.Flags().String("inflation-anchor", string(domain.AnchorCurrentYear), "Year inflation compounds from (current_year, investment_start)")

	goalContributionCmd.Flags().StringP("type", "t", string(domain.InvestmentSIP), "Investment type (sip, yearly_sip, lumpsum)")
	goalContributionCmd.Flags().String("target", "", "Target corpus")
	goalContributionCmd.Flags().StringP("rate", "r", "", "Expected annual return in percent")
	goalContributionCmd.Flags().IntP("years", "y", 0, "Investment period in years")

	goalSWPCmd.Flags().String("corpus", "", "Corpus at the start of withdrawals")
	goalSWPCmd.Flags().StringP("rate", "r", "", "Expected annual return in percent")
	goalSWPCmd.Flags().IntP("years", "y", 0, "Years the withdrawals must last")
	goalSWPCmd.Flags().String("inflation", "", "Yearly increase of the withdrawal in percent")

	goalCmd.AddCommand(goalContributionCmd)
	goalCmd.AddCommand(goalSWPCmd)

	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exampleCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
