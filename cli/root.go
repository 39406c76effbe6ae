package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"thumbcrop/config"
	"thumbcrop/converter"
	"thumbcrop/service"
)

// ErrTasksFailed is returned when at least one input could not be converted.
// The per-file errors have already been written by then.
var ErrTasksFailed = errors.New("some files failed")

// NewRootCmd creates the thumbcrop command. Flag defaults come from
// config.Load, so THUMBCROP_* variables apply unless a flag is given.
func NewRootCmd() *cobra.Command {
	cfg := config.Load()

	cmd := &cobra.Command{
		Use:   "thumbcrop [flags] FILE...",
		Short: "Crop and resize images into thumbnails",
		Long: `Resize each image to the given size without stretching it: the image
is cropped around its center to the target aspect ratio first, then scaled
down if it is larger than the target. Smaller images are never enlarged.

Thumbnails are written as <name>_thumb<ext> into the output directory.`,
		Example: `  # 800x250 thumbnails in the current directory
  thumbcrop photos/*.jpg

  # Square thumbnails into an existing directory
  thumbcrop -s 200x200 --outputdir thumbs -q a.png b.png`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, cfg, args)
		},
	}

	flags := cmd.Flags()
	flags.VarP(&cfg.Size, "size", "s", "new image size as WxH")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "do not print a line per converted file")
	flags.StringVar(&cfg.OutputDir, "outputdir", cfg.OutputDir, "directory where to save resized images")
	flags.IntVarP(&cfg.Workers, "workers", "j", cfg.Workers, "number of parallel workers (0 means one per CPU)")
	flags.IntVar(&cfg.JPEGQuality, "jpeg-quality", cfg.JPEGQuality, "JPEG encoding quality (1-100)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")

	return cmd
}

func runRoot(cmd *cobra.Command, cfg *config.Config, files []string) error {
	if err := cfg.Size.Complete(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := NewLogger(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Debug("Starting thumbcrop",
		zap.String("output_dir", cfg.OutputDir),
		zap.Stringer("size", &cfg.Size),
		zap.Int("files", len(files)),
	)

	dispatcher := service.NewDispatcher(
		converter.NewConverter(logger),
		cfg.Options(),
		service.Settings{
			Workers: cfg.Workers,
			Quiet:   cfg.Quiet,
			Stdout:  cmd.OutOrStdout(),
			Stderr:  cmd.ErrOrStderr(),
		},
		logger,
	)

	summary := dispatcher.Run(cmd.Context(), files)
	if !summary.OK() {
		return fmt.Errorf("%w: %d of %d", ErrTasksFailed, summary.Failed, summary.Total)
	}
	return nil
}
