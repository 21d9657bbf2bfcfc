package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/relatorio/internal/config"
	"github.com/nao1215/relatorio/internal/form"
	"github.com/nao1215/relatorio/internal/model"
	"github.com/nao1215/relatorio/internal/report"
)

// NewEquipmentCmd creates the equipment command.
func NewEquipmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equipment <local-id>...",
		Short: "List the equipment registered at locations",
		Long: `Equipment lists the equipment of one or more locations, as the report form
fills its equipment dropdown after a location is chosen.

Each option is shown as "<nome> (<codigo>) - <tipo>". Locations are looked
up concurrently and printed in argument order. A failed lookup leaves that
location empty and is reported; the command then exits with status 1.

Examples:
  # Equipment of location 7
  relatorio equipment 7

  # Several locations against a remote server
  relatorio equipment --base-url https://manutencao.example.com 3 7 12

  # JSON output
  relatorio equipment --json 7`,
		Args: cobra.MinimumNArgs(1),
		RunE: runEquipmentCmd,
	}

	addClientFlags(cmd)
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency, "Number of concurrent lookups")
	addOutputFlags(cmd)

	return cmd
}

// runEquipmentCmd executes the equipment command.
func runEquipmentCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg.Verbose)

	ids := make([]int, len(args))
	for i, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid location id %q", arg)
		}
		ids[i] = id
	}

	client, err := newClient(cfg, cfg.BaseURL, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	results, err := lookupLocations(ctx, client, ids, cfg.Concurrency, logger)
	if err != nil {
		return err
	}

	if err := writeReport(cmd, cfg, func(w report.Writer) (int, error) {
		return w.WriteEquipment(results)
	}); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d location lookup(s) failed", failed, len(results))
	}
	return nil
}

// lookupLocations loads the dropdown of each location concurrently.
// Results keep the order of ids. Only cancellation aborts the whole run.
func lookupLocations(ctx context.Context, lookup form.EquipmentLookup, ids []int, concurrency int, logger *slog.Logger) ([]model.LocationEquipment, error) {
	results := make([]model.LocationEquipment, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, id := range ids {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			d := form.NewDropdown()
			result := model.LocationEquipment{LocalID: id}
			if err := form.LoadEquipment(ctx, lookup, d, strconv.Itoa(id), logger); err != nil {
				result.Error = err.Error()
			}
			result.Equipment = d.Items()
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
