package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/yildizm/HomeQuote/internal/config"
	"github.com/yildizm/HomeQuote/internal/form"
	"github.com/yildizm/HomeQuote/internal/formatter"
	"github.com/yildizm/HomeQuote/internal/logger"
	"github.com/yildizm/HomeQuote/internal/ui"
)

var (
	estimateLocation string
	estimateBHK      string
	estimateBath     string
	estimateSqft     string
)

func newEstimateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the price of one listing",
		Long: `Submit a single listing to the price service and print the estimate.

All four inputs are required and are checked the same way the form
checks them before anything is sent.

Examples:
  homequote estimate --location "Whitefield" --bhk 2 --bath 2 --sqft 1200
  homequote estimate --location "Indiranagar" --bhk 3 --bath 3 --sqft 1850 -o json`,
		Args: cobra.NoArgs,
		RunE: runEstimate,
	}

	cmd.Flags().StringVarP(&estimateLocation, "location", "l", "", "location name as listed by the service")
	cmd.Flags().StringVar(&estimateBHK, "bhk", "", "number of bedrooms (1-10)")
	cmd.Flags().StringVar(&estimateBath, "bath", "", "number of bathrooms (1-5)")
	cmd.Flags().StringVar(&estimateSqft, "sqft", "", "total area in square feet")

	return cmd
}

func runEstimate(cmd *cobra.Command, args []string) error {
	cfg, err := GetGlobalConfig()
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	log := newLogger(cfg)
	log.SetOutput(cmd.ErrOrStderr())

	client, err := newEstimatorClient(cfg, log)
	if err != nil {
		return err
	}

	state := form.State{
		Location: estimateLocation,
		BHK:      estimateBHK,
		Bath:     estimateBath,
		Sqft:     estimateSqft,
	}

	quote, err := requestQuote(cmd.Context(), client, state, cfg, log.WithComponent("estimate"))
	if err != nil {
		return err
	}

	return writeQuote(cmd.OutOrStdout(), cfg, quote)
}

// requestQuote runs one submission through the form model so scripted
// requests follow the same validation and error messages as the form
func requestQuote(ctx context.Context, client ui.Estimator, state form.State, cfg *config.Config, log *logger.Logger) (*formatter.Quote, error) {
	m := form.New()
	for _, f := range form.Fields {
		m.Apply(form.FieldChanged{Field: f, Value: state.Get(f)})
	}

	req, ok := m.Begin()
	if !ok {
		return nil, errors.New(m.Err)
	}

	log.Debug("submitting estimate",
		logger.F("location", req.Location),
		logger.F("bhk", req.BHK),
		logger.F("bath", req.Bath),
		logger.F("sqft", req.Sqft))

	estimate, err := client.Estimate(ctx, req)
	m.Resolve(estimate, err)
	if !m.HasEstimate {
		if err != nil {
			log.Error("estimate request failed", logger.Error(err))
		}
		return nil, errors.New(m.Err)
	}

	return &formatter.Quote{
		Request:  req,
		Estimate: m.Estimate,
		Currency: cfg.Output.Currency,
	}, nil
}

func writeQuote(w io.Writer, cfg *config.Config, quote *formatter.Quote) error {
	f, err := formatter.New(cfg.Output.DefaultFormat, colorEnabled(cfg))
	if err != nil {
		return err
	}

	output, err := f.FormatQuote(quote)
	if err != nil {
		return fmt.Errorf("failed to format estimate: %w", err)
	}

	if _, err := w.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
