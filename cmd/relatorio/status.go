package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/relatorio/internal/form"
	"github.com/nao1215/relatorio/internal/media"
	"github.com/nao1215/relatorio/internal/model"
	"github.com/nao1215/relatorio/internal/report"
	"github.com/nao1215/relatorio/internal/status"
)

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Preview the status a report form derives",
		Long: `Status shows the status, badge color and tooltip the report form derives
from a progress value and the attached images.

Without images:  0% is pendente, 1-99% em_andamento, 100% resolvido.
With images:     0% and 1-99% are em_andamento, 100% resolvido.

The first --image is the main image; any further --image is a secondary
image. --existing-images counts images already saved on the report (edit
mode). Attached files are inspected for type, size and EXIF metadata.

Examples:
  # Report without photos
  relatorio status --progress 0

  # Problem documented with a photo, work not started
  relatorio status --progress 0 --image vazamento.jpg

  # Editing a report that already has two saved photos
  relatorio status --progress 60 --existing-images 2

  # Preview of the update modal (ignores images)
  relatorio status --progress 100 --modal

  # Markdown output for a ticket
  relatorio status --progress 100 --image antes.jpg --image depois.jpg --markdown`,
		Args: cobra.NoArgs,
		RunE: runStatusCmd,
	}

	cmd.Flags().IntP("progress", "p", 0, "Progress percentage (0-100)")
	cmd.Flags().StringArrayP("image", "i", nil,
		"Attached image file (repeatable; the first is the main image)")
	cmd.Flags().Int("existing-images", 0,
		"Number of images already saved on the report")
	cmd.Flags().Bool("modal", false,
		"Preview the update modal instead of the report form")
	addImageFlags(cmd)
	addOutputFlags(cmd)

	return cmd
}

// runStatusCmd executes the status command.
func runStatusCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg.Verbose)

	progress, err := cmd.Flags().GetInt("progress")
	if err != nil {
		return err
	}
	if err := status.ValidateProgress(progress); err != nil {
		return err
	}

	modal, err := cmd.Flags().GetBool("modal")
	if err != nil {
		return err
	}
	if modal {
		preview := form.NewUpdateModal("", progress, logger).Preview()
		return writeReport(cmd, cfg, func(w report.Writer) (int, error) {
			return w.WritePreview(preview)
		})
	}

	images, err := cmd.Flags().GetStringArray("image")
	if err != nil {
		return err
	}
	existing, err := cmd.Flags().GetInt("existing-images")
	if err != nil {
		return err
	}

	f := form.NewReportForm(progress)
	first := true
	for _, path := range images {
		if path == "" {
			continue
		}
		if first {
			f.AttachMainImage(path)
			first = false
		} else {
			f.AttachSecondaryImage(path)
		}
	}
	f.SetExistingImages(existing)

	preview := f.View()
	if attachments := f.Attachments(); len(attachments) > 0 {
		ctx, cancel := signalContext(logger)
		defer cancel()

		preview.Images, err = inspectImages(ctx, cfg.Concurrency, cfg.MaxImageSize, attachments, logger)
		if err != nil {
			return err
		}
	}

	return writeReport(cmd, cfg, func(w report.Writer) (int, error) {
		return w.WritePreview(preview)
	})
}

// inspectImages inspects attachments with bounded concurrency.
func inspectImages(ctx context.Context, concurrency int, maxSize int64, attachments []media.Attachment, logger *slog.Logger) ([]model.ImageInfo, error) {
	inspector := media.NewInspector(
		media.WithConcurrency(concurrency),
		media.WithMaxSize(maxSize),
		media.WithLogger(logger),
	)
	return inspector.InspectAll(ctx, attachments)
}
