// Command mosaic quantizes rendered text or images to a palette of tile
// colors and writes the bill of materials needed to build them.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// CLI is the command line of mosaic. Every flag can also be set from a
// JSON file passed with --config, keyed by flag name.
type CLI struct {
	Config   kong.ConfigFlag `help:"Load flag defaults from a JSON file." type:"path"`
	LogLevel slog.Level      `help:"Log level (debug, info, warn, error)." default:"info"`

	Text     TextCmd     `cmd:"" help:"Render text and quantize it to the palette."`
	Image    ImageCmd    `cmd:"" help:"Quantize an image file to the palette."`
	Batch    BatchCmd    `cmd:"" help:"Quantize every image in a folder."`
	Extract  ExtractCmd  `cmd:"" help:"Suggest a palette from the colors of an image."`
	Palettes PalettesCmd `cmd:"" help:"List the embedded palettes."`
}

// streams are the output writers handed to every command.
type streams struct {
	out    io.Writer
	errOut io.Writer
}

func newParser(cli *CLI, opts ...kong.Option) (*kong.Kong, error) {
	opts = append([]kong.Option{
		kong.Name("mosaic"),
		kong.Description("Quantize text or images to a fixed palette of tile colors and count the tiles."),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, "~/.config/img2mosaic/config.json"),
	}, opts...)
	return kong.New(cli, opts...)
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cli.LogLevel}))
	slog.SetDefault(logger)

	err = kctx.Run(logger, &streams{out: os.Stdout, errOut: os.Stderr})
	kctx.FatalIfErrorf(err)
}
