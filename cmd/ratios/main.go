package main

import (
	"os"
	"time"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/komsit37/ratios/pkg/ratios/extract"
	"github.com/komsit37/ratios/pkg/ratios/pipeline"
	"github.com/komsit37/ratios/pkg/ratios/render"
	"github.com/komsit37/ratios/pkg/ratios/source"
	"github.com/komsit37/ratios/pkg/ratios/yahoo"
)

// defaultTickers is used when no tickers are given on the command line
// and no file is specified.
var defaultTickers = []string{"GOOGL", "AMD", "GLOB", "MELI"}

func main() {
	log.DefaultLogger = log.Logger{
		Level:  log.InfoLevel,
		Writer: &log.ConsoleWriter{ColorOutput: true, Writer: os.Stderr},
	}
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ratios [ticker...]",
		Short: "Fetch financial data and print ratio tables for stock tickers",
		Long: `ratios pulls balance-sheet, dividend, price-history and quarterly
financials data from Yahoo Finance for each ticker, derives liquidity,
leverage, profitability and valuation ratios, and prints one row per
ticker. Tickers whose fetch fails are logged and skipped.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.SetEnvPrefix("ratios")
			viper.AutomaticEnv()
			if err := viper.BindPFlags(cmd.Flags()); err != nil {
				return err
			}

			if viper.GetBool("verbose") {
				log.DefaultLogger.Level = log.DebugLevel
			}

			client := yahoo.NewClient(yahoo.WithTimeout(viper.GetDuration("timeout")))
			ex := &extract.Extractor{
				Provider: client,
				Year:     viper.GetInt("year"),
			}

			var (
				src  source.Source
				spec any
			)
			if file := viper.GetString("file"); file != "" {
				src, spec = source.YAMLSource{}, file
			} else {
				tickers := args
				if len(tickers) == 0 {
					tickers = defaultTickers
				}
				src, spec = source.ArgsSource{}, tickers
			}

			var rd render.Renderer = render.NewTableRenderer()
			if viper.GetBool("json") {
				rd = render.NewJSONRenderer()
			}

			runner := &pipeline.Runner{
				Source:    src,
				Extractor: ex,
				Renderer:  rd,
				Writer:    os.Stdout,
			}
			return runner.Execute(cmd.Context(), spec, pipeline.ExecuteOptions{
				Columns:     viper.GetStringSlice("columns"),
				Sets:        viper.GetStringSlice("set"),
				PrettyJSON:  viper.GetBool("pretty"),
				MaxColWidth: viper.GetInt("max-col-width"),
			})
		},
	}

	fl := cmd.Flags()
	fl.String("file", "", "YAML file with tickers (list or {tickers: [...]})")
	fl.Int("year", 2023, "calendar year whose dividends are summed")
	fl.StringSlice("columns", nil, "explicit columns to print")
	fl.StringSlice("set", nil, "named column sets (ratios, liquidity, leverage, profitability, valuation, raw)")
	fl.Bool("json", false, "emit JSON instead of a table")
	fl.Bool("pretty", false, "indent JSON output")
	fl.Duration("timeout", 10*time.Second, "per-request timeout")
	fl.Int("max-col-width", 40, "maximum table column width")
	fl.Bool("verbose", false, "enable debug logging")
	return cmd
}
