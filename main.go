package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/OpticalFlyer/canvasui/scene"
	"github.com/OpticalFlyer/canvasui/ui"
)

const appName = "canvasui"

var version = "dev"

type envKey struct{}

// env is shared by all commands through the context
type env struct {
	log   *zap.Logger
	start time.Time
}

func envFromContext(ctx context.Context) *env {
	if e, ok := ctx.Value(envKey{}).(*env); ok {
		return e
	}
	return &env{log: zap.NewNop(), start: time.Now()}
}

// initializeAppContext prepares logging after the command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	e := envFromContext(ctx)
	e.log = newLogger(cmd.Bool("debug"), cmd.Bool("quiet"))
	e.log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", version), zap.String("runtime", runtime.Version()))
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)
	e.log.Debug("Program ended", zap.Duration("elapsed", time.Since(e.start)), zap.Strings("parsed args", cmd.Args().Slice()))
	// syncing a console is allowed to fail
	_ = e.log.Sync()
	return nil
}

var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	e := envFromContext(ctx)
	e.log.Error("Program ended with error", zap.Error(err))
	errWasHandled = true
}

// loadScene returns the scene named by --scene or the built-in demo.
func loadScene(cmd *cli.Command) (*scene.Scene, error) {
	path := cmd.String("scene")
	if path == "" {
		return scene.Demo()
	}
	return scene.Load(path)
}

// actions are the callbacks scene events may name.
func actions(log *zap.Logger) scene.Actions {
	return scene.Actions{
		"log": func(c *ui.Container) {
			b := c.Bounds()
			log.Info("Container clicked", zap.Int("id", c.ID()), zap.Float64("x", b.X), zap.Float64("y", b.Y))
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(
		context.WithValue(context.Background(), envKey{}, &env{log: zap.NewNop(), start: time.Now()}),
		os.Interrupt, syscall.SIGTERM)

	sizeFlags := func(width, height int) []cli.Flag {
		return []cli.Flag{
			&cli.IntFlag{Name: "width", Value: width, Usage: "viewport width in `PIXELS`"},
			&cli.IntFlag{Name: "height", Value: height, Usage: "viewport height in `PIXELS`"},
		}
	}

	app := &cli.Command{
		Name:            appName,
		Usage:           "retained-mode container layout drawn on a single 2D canvas",
		Version:         version + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		DefaultCommand:  "run",
		Before:          initializeAppContext,
		After:           destroyAppContext,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "scene", Aliases: []string{"s"}, Usage: "load scene from `FILE` (YAML or TOML), built-in demo when absent"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log debug messages"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "log errors only"},
		},
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Opens a window and runs the scene (F1 toggles debug overlay)",
				Action: runWindow,
				Flags:  sizeFlags(1280, 720),
			},
			{
				Name:   "layout",
				Usage:  "Lays the scene out without a window and prints every container box",
				Action: runLayout,
				Flags: append(sizeFlags(1920, 1080),
					&cli.FloatFlag{Name: "dpr", Value: 1, Usage: "device pixel `RATIO`"},
					&cli.DurationFlag{Name: "wait", Value: 10 * time.Second, Usage: "how long to wait for images before laying out"},
				),
			},
		},
	}

	var err error
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}
