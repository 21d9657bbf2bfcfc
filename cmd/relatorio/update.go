package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/relatorio/internal/api"
	"github.com/nao1215/relatorio/internal/form"
	"github.com/nao1215/relatorio/internal/media"
	"github.com/nao1215/relatorio/internal/report"
	"github.com/nao1215/relatorio/internal/status"
)

// defaultImageField is the file field of update images.
const defaultImageField = "imagem"

// errProgressRequired is returned when --action is given without --progress:
// the page is not fetched, so there is no current progress to keep.
var errProgressRequired = errors.New("--progress is required with --action")

// NewUpdateCmd creates the update command.
func NewUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <report-url>",
		Short: "Post a progress update to a report",
		Long: `Update posts a progress update to a report, as the "new update" modal does.

The report page is fetched first to read the update form: its action URL,
hidden fields (such as the CSRF token) and current progress. The update is
then posted in the background with the description, progress and images.

The description is required. The server answers with {success, message};
on success the report page would be reloaded, on failure the message is
printed and the command exits with status 1.

Examples:
  # Record progress with a description
  relatorio update /reports/12/ --progress 60 --description "Peça encomendada"

  # Close the report with a photo of the finished work
  relatorio update https://manutencao.example.com/reports/12/ \
    --progress 100 --description "Reator trocado" --image depois.jpg

  # Skip fetching the page and post to a known action URL
  relatorio update /reports/12/ --action /reports/12/atualizar/ \
    --progress 40 --description "Diagnóstico feito"`,
		Args: cobra.ExactArgs(1),
		RunE: runUpdateCmd,
	}

	cmd.Flags().IntP("progress", "p", 0,
		"New progress percentage (default: current value from the page; required with --action)")
	cmd.Flags().StringP("description", "d", "",
		"Description of the update (required)")
	cmd.Flags().StringArrayP("image", "i", nil,
		"Image file to attach (repeatable)")
	cmd.Flags().String("image-field", defaultImageField,
		"Form field name used for attached images")
	cmd.Flags().String("action", "",
		"Post to this URL instead of the action of the page's update form")
	addClientFlags(cmd)
	addImageFlags(cmd)
	addOutputFlags(cmd)

	return cmd
}

// runUpdateCmd executes the update command.
func runUpdateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg.Verbose)

	flags := cmd.Flags()
	description, err := flags.GetString("description")
	if err != nil {
		return err
	}
	if strings.TrimSpace(description) == "" {
		return form.ErrDescriptionRequired
	}
	images, err := flags.GetStringArray("image")
	if err != nil {
		return err
	}
	imageField, err := flags.GetString("image-field")
	if err != nil {
		return err
	}
	action, err := flags.GetString("action")
	if err != nil {
		return err
	}
	if action != "" && !flags.Changed("progress") {
		return errProgressRequired
	}

	pageURL, err := resolveURL(cfg.BaseURL, args[0])
	if err != nil {
		return err
	}

	client, err := newClient(cfg, pageURL, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	var modal *form.UpdateModal
	if action != "" {
		actionURL, err := resolveURL(pageURL, action)
		if err != nil {
			return err
		}
		// The progress flag below sets the real value.
		modal = form.NewUpdateModal(actionURL, status.MinProgress, logger)
	} else {
		modal, err = modalFromPage(ctx, client, pageURL, logger)
		if err != nil {
			return err
		}
	}

	if flags.Changed("progress") {
		progress, err := flags.GetInt("progress")
		if err != nil {
			return err
		}
		if err := status.ValidateProgress(progress); err != nil {
			return err
		}
		modal.SetProgress(progress)
	}

	attachments := make([]media.Attachment, 0, len(images))
	for _, path := range images {
		attachments = append(attachments, media.Attachment{Path: path, Field: imageField})
	}
	infos, err := inspectImages(ctx, cfg.Concurrency, cfg.MaxImageSize, attachments, logger)
	if err != nil {
		return err
	}
	if err := media.Validate(infos); err != nil {
		return err
	}
	for _, a := range attachments {
		modal.AttachImage(a.Field, a.Path)
	}

	modal.Open()
	modal.SetDescription(description)
	saveErr := modal.Save(ctx, client)

	result := modal.Result()
	result.Images = infos
	if err := writeReport(cmd, cfg, func(w report.Writer) (int, error) {
		return w.WriteUpdate(result)
	}); err != nil {
		return err
	}

	if saveErr != nil {
		return errors.New(modal.Message())
	}
	return nil
}

// modalFromPage fetches the report page and prepares the modal from its
// update form.
func modalFromPage(ctx context.Context, client *api.Client, pageURL string, logger *slog.Logger) (*form.UpdateModal, error) {
	doc, err := client.FetchPage(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report page: %w", err)
	}

	f, err := doc.UpdateForm()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pageURL, err)
	}

	logger.Debug("update form found",
		"action", f.Action,
		"method", f.Method,
		"saved_images", len(doc.Thumbnails),
	)
	modal, err := form.NewUpdateModalFromPage(pageURL, f, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pageURL, err)
	}
	return modal, nil
}
