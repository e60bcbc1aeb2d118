// clickpop overlays transient click indicators into an OBS scene (or a
// recorded video) without ever drawing on the operator's desktop.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vedantwpatil/click-pop/internal/config"
	"github.com/vedantwpatil/click-pop/internal/display"
	"github.com/vedantwpatil/click-pop/internal/geometry"
	"github.com/vedantwpatil/click-pop/internal/obs"
	"github.com/vedantwpatil/click-pop/internal/overlay"
	"github.com/vedantwpatil/click-pop/internal/render"
	"github.com/vedantwpatil/click-pop/internal/sound"
	"github.com/vedantwpatil/click-pop/internal/tracking"
	"github.com/vedantwpatil/click-pop/internal/video"
)

type Application struct {
	cfg *config.Config
	log *zap.Logger

	clickLogPath string
	burnClicks   string
}

func main() {
	app := &Application{cfg: config.NewConfig()}
	if err := app.rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (app *Application) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "clickpop",
		Short:         "Show click indicators in your stream, not on your desktop",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&app.cfg.Overlay.LeftImage, "left-image", "", "left-click indicator image (PNG)")
	pf.StringVar(&app.cfg.Overlay.RightImage, "right-image", "", "right-click indicator image (PNG)")
	pf.IntVar(&app.cfg.Overlay.DurationMS, "duration", 350, "indicator lifetime in milliseconds")
	pf.IntVar(&app.cfg.Overlay.DiameterPX, "diameter", 60, "indicator diameter in pixels")
	pf.IntVar(&app.cfg.Overlay.MaxSimultaneous, "max-circles", 5, "max simultaneous indicators")
	pf.IntVar(&app.cfg.Monitor.Width, "monitor-width", 0, "monitor width in pixels (0 = auto)")
	pf.IntVar(&app.cfg.Monitor.Height, "monitor-height", 0, "monitor height in pixels (0 = auto)")
	pf.Float64Var(&app.cfg.Monitor.Scale, "monitor-scale", 0, "HiDPI scale factor (0 = auto)")
	pf.IntVar(&app.cfg.TickRateHz, "tick-rate", 60, "overlay update rate in Hz")

	root.AddCommand(app.runCmd(), app.previewCmd(), app.burnCmd())
	return root
}

func (app *Application) runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Drive click indicators in a live OBS scene",
		RunE:  app.runLive,
	}
	f := cmd.Flags()
	f.StringVar(&app.cfg.OBS.URL, "obs-url", "ws://localhost:4455", "obs-websocket address")
	f.StringVar(&app.cfg.OBS.Password, "obs-password", "", "obs-websocket password")
	f.StringVar(&app.cfg.OBS.Scene, "scene", "", "scene to overlay (default: current program scene)")
	f.StringVar(&app.cfg.OBS.CaptureSource, "capture-source", "", "display-capture source whose crop/transform to follow")
	f.StringVar(&app.clickLogPath, "click-log", "", "record clicks to this JSONL file for later burning")
	f.BoolVar(&app.cfg.Sound.Enabled, "click-sound", false, "play a sound on each click")
	f.StringVar(&app.cfg.Sound.File, "click-sound-file", "", "wav file for the click sound")
	return cmd
}

func (app *Application) previewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Watch the mapped indicators in the terminal (no OBS needed)",
		RunE:  app.runPreview,
	}
}

func (app *Application) burnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "burn <input.mp4> <output.mp4>",
		Short: "Composite a recorded click log into a video file",
		Args:  cobra.ExactArgs(2),
		RunE:  app.runBurn,
	}
	cmd.Flags().StringVar(&app.burnClicks, "clicks", "clicks.jsonl", "JSONL click log to replay")
	return cmd
}

// resolveMonitor fills auto-detected monitor values and returns the
// physical (HiDPI-scaled) dimensions the mapping works in.
func (app *Application) resolveMonitor() (float64, float64) {
	if app.cfg.Monitor.Width <= 0 || app.cfg.Monitor.Height <= 0 {
		app.cfg.Monitor.Width, app.cfg.Monitor.Height = display.PrimarySize()
	}
	if app.cfg.Monitor.Scale <= 0 {
		app.cfg.Monitor.Scale = display.ScaleFactor()
	}
	s := app.cfg.Monitor.Scale
	return float64(app.cfg.Monitor.Width) * s, float64(app.cfg.Monitor.Height) * s
}

func (app *Application) runLive(cmd *cobra.Command, args []string) error {
	log, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer log.Sync()
	app.log = log

	if err := app.cfg.Validate(); err != nil {
		return err
	}
	monW, monH := app.resolveMonitor()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client, err := obs.Dial(ctx, app.cfg.OBS.URL, app.cfg.OBS.Password, log)
	if err != nil {
		return err
	}
	defer client.Close()

	scene := app.cfg.OBS.Scene
	if scene == "" {
		if scene, err = obs.CurrentScene(client); err != nil {
			return fmt.Errorf("failed to resolve current scene: %w", err)
		}
	}

	renderer := obs.NewRenderer(client, scene, app.cfg.Overlay, log)
	defer func() {
		if err := renderer.Close(); err != nil {
			log.Warn("cleanup left sources behind", zap.Error(err))
		}
	}()

	var player *sound.Player
	if app.cfg.Sound.Enabled {
		if player, err = sound.NewPlayer(app.cfg.Sound.File); err != nil {
			return err
		}
		defer player.Close()
	}

	var clickLog *tracking.LogWriter
	if app.clickLogPath != "" {
		if clickLog, err = tracking.NewLogWriter(app.clickLogPath, time.Now()); err != nil {
			return err
		}
		defer clickLog.Close()
	}

	tr, err := obs.CaptureTransform(client, scene, app.cfg.OBS.CaptureSource, monW, monH)
	if err != nil {
		return err
	}

	queue := tracking.NewQueue()
	go tracking.NewListener(queue, app.cfg.Monitor.Scale, log).Run(ctx)

	log.Info("overlay running",
		zap.String("scene", scene),
		zap.String("captureSource", app.cfg.OBS.CaptureSource),
		zap.Float64("monitorW", monW), zap.Float64("monitorH", monH))

	return app.tickLoop(ctx, queue, tr, renderer, player, clickLog, func() (geometry.RegionTransform, error) {
		return obs.CaptureTransform(client, scene, app.cfg.OBS.CaptureSource, monW, monH)
	})
}

// tickLoop is the fixed-cadence driver: drain clicks, tick the engine,
// hand the instructions to the renderer. Renderer errors are logged, not
// fatal; a missed indicator beats a dead overlay.
func (app *Application) tickLoop(
	ctx context.Context,
	queue *tracking.Queue,
	tr geometry.RegionTransform,
	renderer render.Renderer,
	player *sound.Player,
	clickLog *tracking.LogWriter,
	refresh func() (geometry.RegionTransform, error),
) error {
	engine := overlay.NewEngine(app.cfg.Overlay.MaxSimultaneous, app.cfg.Duration())

	ticker := time.NewTicker(app.cfg.TickInterval())
	defer ticker.Stop()

	// The transform only changes when the user re-crops or resizes, and
	// re-reading it costs several OBS round trips, so refresh at 1Hz
	// instead of every tick.
	var refreshTicker *time.Ticker
	var refreshC <-chan time.Time
	if refresh != nil {
		refreshTicker = time.NewTicker(time.Second)
		refreshC = refreshTicker.C
		defer refreshTicker.Stop()
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-refreshC:
			next, err := refresh()
			if err != nil {
				app.log.Warn("keeping previous capture transform", zap.Error(err))
				continue
			}
			tr = next

		case <-ticker.C:
			events := queue.Drain()
			if len(events) > 0 {
				if player != nil {
					player.Play()
				}
				if clickLog != nil {
					for _, ev := range events {
						if err := clickLog.Write(ev); err != nil {
							app.log.Warn("click log write failed", zap.Error(err))
						}
					}
				}
			}

			instructions := engine.Tick(events, time.Now(), tr)
			if err := renderer.Apply(instructions); err != nil {
				app.log.Warn("renderer apply failed", zap.Error(err))
			}
		}
	}
}

func (app *Application) runPreview(cmd *cobra.Command, args []string) error {
	// tcell owns the terminal; logging would scribble over it.
	app.log = zap.NewNop()

	if err := app.cfg.Validate(); err != nil {
		return err
	}
	monW, monH := app.resolveMonitor()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init terminal screen: %w", err)
	}

	renderer := render.NewPreviewRenderer(screen, int(monW), int(monH))
	defer renderer.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		defer cancel()
		for {
			switch ev := screen.PollEvent().(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			case nil:
				return
			}
		}
	}()

	queue := tracking.NewQueue()
	go tracking.NewListener(queue, app.cfg.Monitor.Scale, app.log).Run(ctx)

	// The preview's canvas is the monitor itself.
	tr := geometry.Identity(monW, monH)
	return app.tickLoop(ctx, queue, tr, renderer, nil, nil, nil)
}

func (app *Application) runBurn(cmd *cobra.Command, args []string) error {
	log, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer log.Sync()
	app.log = log

	if err := app.cfg.Validate(); err != nil {
		return err
	}

	burner := video.NewBurner(app.cfg, log)
	return burner.Burn(args[0], app.burnClicks, args[1])
}
