package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/hajimehoshi/ebiten/v2"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/OpticalFlyer/canvasui/assets"
	"github.com/OpticalFlyer/canvasui/canvas"
	"github.com/OpticalFlyer/canvasui/scene"
	"github.com/OpticalFlyer/canvasui/ui"
)

// runWindow is the "run" command.
func runWindow(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)

	sc, err := loadScene(cmd)
	if err != nil {
		return err
	}
	screen, err := canvas.NewScreen(e.log.Named("canvas"))
	if err != nil {
		return fmt.Errorf("unable to prepare canvas: %w", err)
	}
	loader := assets.NewLoader(nil, e.log.Named("assets"))

	width, height := cmd.Int("width"), cmd.Int("height")
	app := &CanvasUI{
		log:    e.log,
		screen: screen,
		done:   ctx.Done(),
		width:  float64(width),
		height: float64(height),
		dpr:    1,
	}
	app.surface = ui.NewSurface(screen, app,
		ui.WithViewbox(sc.LogicalViewbox()),
		ui.WithImages(loader),
		ui.WithLogger(e.log.Named("ui")),
	)
	loader.OnLoad = app.surface.ImageLoaded

	if app.scene, err = scene.Build(app.surface, sc, actions(e.log)); err != nil {
		return err
	}

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("CanvasUI")
	ebiten.SetVsyncEnabled(true)

	if err := ebiten.RunGame(app); err != nil {
		return fmt.Errorf("game loop failed: %w", err)
	}
	return nil
}

// fixedHost is a viewport that never changes.
type fixedHost struct {
	width, height, dpr float64
}

func (h fixedHost) ViewportSize() (float64, float64) { return h.width, h.height }
func (h fixedHost) DeviceScaleFactor() float64       { return h.dpr }
func (h fixedHost) Origin() (float64, float64)       { return 0, 0 }

// runLayout is the "layout" command.
func runLayout(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)

	sc, err := loadScene(cmd)
	if err != nil {
		return err
	}
	headless, err := canvas.NewHeadless()
	if err != nil {
		return fmt.Errorf("unable to prepare canvas: %w", err)
	}
	loader := assets.NewLoader(nil, e.log.Named("assets"))
	host := fixedHost{width: float64(cmd.Int("width")), height: float64(cmd.Int("height")), dpr: cmd.Float("dpr")}

	surface := ui.NewSurface(headless, host,
		ui.WithViewbox(sc.LogicalViewbox()),
		ui.WithImages(loader),
		ui.WithLogger(e.log.Named("ui")),
	)
	loader.OnLoad = surface.ImageLoaded
	if _, err := scene.Build(surface, sc, actions(e.log)); err != nil {
		return err
	}

	wctx, cancel := context.WithTimeout(ctx, cmd.Duration("wait"))
	defer cancel()
	if err := loader.Wait(wctx); err != nil {
		e.log.Warn("Not all images loaded, laying out without them", zap.Error(err))
	}
	// picks up loaded images
	surface.Frame()

	d := surface.Dimensions()
	e.log.Info("Layout done",
		zap.Float64("scale", d.Scale), zap.Float64("width", d.Width), zap.Float64("height", d.Height),
		zap.Int("canvas width", headless.Width), zap.Int("canvas height", headless.Height))
	out := cmd.Root().Writer
	if out == nil {
		out = os.Stdout
	}
	return printTree(out, surface.Roots())
}

// printTree writes one line per container, children indented under parents.
func printTree(out io.Writer, roots []*ui.Container) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tX\tY\tWIDTH\tHEIGHT")

	var walk func(c *ui.Container, depth int)
	walk = func(c *ui.Container, depth int) {
		b := c.Bounds()
		fmt.Fprintf(w, "%s%d\t%g\t%g\t%g\t%g\n", strings.Repeat("  ", depth), c.ID(), b.X, b.Y, b.Width, b.Height)
		for _, child := range c.Children() {
			walk(child, depth+1)
		}
	}
	for _, r := range roots {
		walk(r, 0)
	}
	return w.Flush()
}
