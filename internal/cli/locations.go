package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yildizm/HomeQuote/internal/form"
	"github.com/yildizm/HomeQuote/internal/formatter"
	"github.com/yildizm/HomeQuote/internal/logger"
)

func newLocationsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List the locations the price service knows",
		Long: `Fetch the location list from the price service and print it in the
order the service returned it.

Examples:
  homequote locations
  homequote locations -o json`,
		Args: cobra.NoArgs,
		RunE: runLocations,
	}
}

func runLocations(cmd *cobra.Command, args []string) error {
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

	locations, err := client.Locations(cmd.Context())
	if err != nil {
		log.WithComponent("locations").Error("failed to load locations", logger.Error(err))
		return errors.New(form.MsgLoadFailed)
	}

	f, err := formatter.New(cfg.Output.DefaultFormat, colorEnabled(cfg))
	if err != nil {
		return err
	}

	output, err := f.FormatLocations(locations)
	if err != nil {
		return fmt.Errorf("failed to format locations: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(output)
	return err
}
