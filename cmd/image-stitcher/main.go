package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	imagestitcher "github.com/menta2k/image-stitcher"
	"github.com/menta2k/image-stitcher/internal/config"
	"github.com/menta2k/image-stitcher/internal/logging"
	"github.com/menta2k/image-stitcher/internal/utils"
)

type options struct {
	configFile string
	quality    int
	workers    int
	formats    []string
	logLevel   string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "image-stitcher [folder]",
		Short:         "Stitch images horizontally",
		Long:          `Scales every png/jpg/jpeg in the folder to a common height, joins them side by side, shrinks the result by the image count and writes <folder>/output/stitched_image.jpg.`,
		Version:       imagestitcher.GetVersion(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(stdout, "Error: No folder path provided. Please specify a directory containing images.")
				fmt.Fprintf(stdout, "Usage: %s /path/to/images\n", filepath.Base(os.Args[0]))
				return nil
			}
			return stitch(cmd, args[0], opts, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "path to a JSON config file (default "+config.GetConfigPath()+" if present)")
	flags.IntVar(&opts.quality, "quality", 0, "JPEG output quality (1-100)")
	flags.IntVar(&opts.workers, "workers", 0, "number of images decoded in parallel")
	flags.StringSliceVar(&opts.formats, "formats", nil, "input extensions to accept, e.g. png,jpg,jpeg")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	return cmd
}

func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.Default()
	path := opts.configFile
	if path == "" && utils.FileExists(config.GetConfigPath()) {
		path = config.GetConfigPath()
	}
	if path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("quality") {
		cfg.Output.Quality = opts.quality
	}
	if flags.Changed("workers") {
		cfg.Input.Workers = opts.workers
	}
	if flags.Changed("formats") {
		cfg.Input.SupportedFormats = opts.formats
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func stitch(cmd *cobra.Command, folder string, opts *options, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger, err := logging.New(stderr, cfg.Log.Level)
	if err != nil {
		return err
	}

	stitcher, err := imagestitcher.NewWithConfig(cfg)
	if err != nil {
		return err
	}
	stitcher.SetLogger(logger)

	result, err := stitcher.Stitch(cmd.Context(), folder)
	switch {
	case err == nil:
	case errors.Is(err, imagestitcher.ErrNoImagesFound):
		fmt.Fprintln(stdout, "No images found in the directory.")
		return nil
	case errors.Is(err, imagestitcher.ErrNoValidImages):
		fmt.Fprintln(stdout, "No valid images loaded.")
		return nil
	default:
		return fmt.Errorf("stitching %s failed: %w", folder, err)
	}

	logger.Info().
		Int("images", result.Loaded).
		Int("skipped", len(result.Failed)).
		Str("size", fmt.Sprintf("%dx%d", result.OutputWidth, result.OutputHeight)).
		Str("bytes", utils.FormatFileSize(result.BytesWritten)).
		Msg("stitch complete")
	fmt.Fprintf(stdout, "Stitched image saved to %s\n", result.OutputPath)
	return nil
}
