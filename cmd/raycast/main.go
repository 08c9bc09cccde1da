package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/df07/go-raycaster/pkg/config"
)

// Version is set at build time
var Version = "dev"

var CLI struct {
	Debug bool `help:"Whether to enable debug logging."`

	Cast struct {
		Scene     string    `arg:"" help:"Built-in scene name or path to a scene file."`
		Origin    []float32 `required:"" help:"Ray origin as x,y,z."`
		Direction []float32 `required:"" help:"Ray direction as x,y,z."`
		All       bool      `help:"Print every hit along the ray, nearest first."`
		Normalize bool      `help:"Normalize the direction before casting."`
	} `cmd:"" help:"Cast a single ray into a scene."`

	Distance struct {
		Origin    []float32 `required:"" help:"Ray origin as x,y,z."`
		Direction []float32 `required:"" help:"Ray direction as x,y,z (unit length)."`
		Point     []float32 `xor:"target" help:"Point as x,y,z."`
		Segment   []float32 `xor:"target" help:"Segment as x0,y0,z0,x1,y1,z1."`
	} `cmd:"" help:"Measure the distance from a ray to a point or segment."`

	Render struct {
		Config      string `help:"Render configuration file." type:"existingfile"`
		Scene       string `help:"Built-in scene name or path to a scene file."`
		Output      string `short:"o" help:"Output image path (.png, .webp or .tga)."`
		Width       int    `help:"Output width in pixels."`
		Height      int    `help:"Output height in pixels."`
		Supersample int    `help:"Render at this multiple of the output size, then downscale."`
		Workers     int    `help:"Number of parallel workers (default: CPU count)."`
	} `cmd:"" help:"Render a depth map of a scene."`

	Version struct {
	} `cmd:"" help:"Print version information and exit."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("raycast"),
		kong.Description("cast rays into simple scenes and render depth maps"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Debug().Msg("debug logging enabled")
	}

	var err error
	switch ctx.Command() {
	case "cast <scene>":
		err = castCommand(os.Stdout, CLI.Cast.Scene, CLI.Cast.Origin, CLI.Cast.Direction, CLI.Cast.All, CLI.Cast.Normalize)
	case "distance":
		err = distanceCommand(os.Stdout, CLI.Distance.Origin, CLI.Distance.Direction, CLI.Distance.Point, CLI.Distance.Segment)
	case "render":
		signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = renderCommand(signalCtx, CLI.Render.Config, config.Flags{
			Scene:       CLI.Render.Scene,
			Output:      CLI.Render.Output,
			Width:       CLI.Render.Width,
			Height:      CLI.Render.Height,
			Supersample: CLI.Render.Supersample,
			Workers:     CLI.Render.Workers,
		})
	case "version":
		fmt.Printf("raycast %s\n", Version)
	}

	if err != nil {
		writeError(err)
	}
}
