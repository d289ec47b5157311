package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/dargueta/bootpack"
	"github.com/dargueta/bootpack/media"
	"github.com/dargueta/bootpack/packer"
	"github.com/urfave/cli/v2"
)

func main() {
	os.Exit(run(newApp(), os.Args))
}

func newApp() *cli.App {
	defaults := bootpack.DefaultSettings()

	return &cli.App{
		Name:            "bootpack",
		Usage:           "Pack an application binary for the boot loader",
		ArgsUsage:       "INPUT_FILE OUTPUT_FILE",
		Description:     "All options must come before INPUT_FILE and OUTPUT_FILE.",
		HideHelpCommand: true,
		Writer:          os.Stdout,
		ErrWriter:       os.Stderr,
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  "key",
				Value: uint(defaults.Key),
				Usage: "XOR key to encrypt the image with (0-255)",
			},
			&cli.UintFlag{
				Name:  "sector-size",
				Value: defaults.SectorSize,
				Usage: "pad the image to a multiple of this many bytes",
			},
			&cli.StringFlag{
				Name:  "media",
				Usage: "take the sector size and capacity from a boot medium (see --list-media)",
			},
			&cli.Int64Flag{
				Name:  "max-input-size",
				Value: defaults.MaxInputSize,
				Usage: "refuse inputs larger than this many bytes",
			},
			&cli.BoolFlag{
				Name:  "verify",
				Usage: "unpack the image after writing it and compare it to the input",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log each stage of the pipeline",
			},
			&cli.BoolFlag{
				Name:  "list-media",
				Usage: "list the known boot media and exit",
			},
		},
		Action: packImage,
	}
}

// run executes the app and returns the process exit code.
func run(app *cli.App, args []string) int {
	err := app.Run(args)
	if err != nil {
		log.New(app.ErrWriter, "", 0).Printf("fatal error: %s", err.Error())
		return 1
	}
	return 0
}

func packImage(ctx *cli.Context) error {
	if ctx.Bool("list-media") {
		return listMedia(ctx.App.Writer)
	}

	if ctx.NArg() != 2 {
		fmt.Fprintf(
			ctx.App.ErrWriter,
			"Usage: %s [options] %s\n%s\n",
			ctx.App.Name,
			ctx.App.ArgsUsage,
			ctx.App.Description)
		return bootpack.ErrUsage.WithMessage(
			fmt.Sprintf("expected 2 arguments, got %d", ctx.NArg()))
	}
	inputPath := ctx.Args().Get(0)
	outputPath := ctx.Args().Get(1)

	settings, err := settingsFromFlags(ctx)
	if err != nil {
		return err
	}

	logger := log.New(io.Discard, "bootpack: ", 0)
	if ctx.Bool("verbose") {
		logger.SetOutput(ctx.App.ErrWriter)
	}
	logger.Printf(
		"packing %q into %q with key %#02x and %d-byte sectors",
		inputPath,
		outputPath,
		settings.Key,
		settings.SectorSize)

	summary, err := packer.PackFile(inputPath, outputPath, settings)
	if err != nil {
		return err
	}
	logger.Printf("encrypted %d bytes", summary.OriginalSize)
	logger.Printf(
		"compressed into %d runs (%d bytes)", summary.Runs, summary.CompressedSize)
	logger.Printf(
		"padded with %d zero bytes to %d sectors", summary.PaddingSize, summary.TotalSectors)

	if ctx.Bool("verify") {
		err = packer.VerifyFile(inputPath, outputPath, summary, settings)
		if err != nil {
			return err
		}
		logger.Printf("verified %q", outputPath)
	}

	fmt.Fprint(ctx.App.Writer, summary.String())
	fmt.Fprintf(ctx.App.Writer, "Packing complete. Packed file is '%s'.\n", outputPath)
	return nil
}

func settingsFromFlags(ctx *cli.Context) (bootpack.Settings, error) {
	settings := bootpack.DefaultSettings()

	key := ctx.Uint("key")
	if key > 0xFF {
		return settings, bootpack.ErrInvalidSettings.WithMessage(
			fmt.Sprintf("key must be in [0, 255], got %d", key))
	}
	settings.Key = byte(key)
	settings.SectorSize = ctx.Uint("sector-size")
	settings.MaxInputSize = ctx.Int64("max-input-size")

	if ctx.IsSet("media") {
		profile, err := media.Get(ctx.String("media"))
		if err != nil {
			return settings, bootpack.ErrInvalidSettings.Wrap(err)
		}
		if ctx.IsSet("sector-size") && settings.SectorSize != profile.BytesPerSector {
			return settings, bootpack.ErrInvalidSettings.WithMessage(
				fmt.Sprintf(
					"--sector-size %d conflicts with %s, which has %d-byte sectors",
					settings.SectorSize,
					profile.Slug,
					profile.BytesPerSector))
		}
		settings.SectorSize = profile.BytesPerSector
		settings.MaxSectors = profile.TotalSectors
	}
	return settings, settings.Validate()
}

func listMedia(w io.Writer) error {
	table := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(table, "SLUG\tSECTOR SIZE\tSECTORS\tNAME")
	for _, profile := range media.All() {
		totalSectors := "-"
		if profile.TotalSectors > 0 {
			totalSectors = fmt.Sprint(profile.TotalSectors)
		}
		fmt.Fprintf(
			table,
			"%s\t%d\t%s\t%s\n",
			profile.Slug,
			profile.BytesPerSector,
			totalSectors,
			profile.Name)
	}
	return table.Flush()
}
