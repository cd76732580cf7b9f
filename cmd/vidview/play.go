package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/jpeg"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/go-vidview/vidview/pkg/canvas"
	"github.com/go-vidview/vidview/pkg/geometry"
	"github.com/go-vidview/vidview/pkg/media"
	"github.com/go-vidview/vidview/pkg/player"
	"github.com/go-vidview/vidview/pkg/scene"
)

var listenAddr string

var playCmd = &cobra.Command{
	Use:   "play [source]",
	Short: "Preview a source in the player widget over HTTP",
	Long: `Play runs the player widget headlessly: frames are composited in
software and served as an MJPEG stream. Open the printed address in a
browser to watch; type transport commands on stdin to drive playback.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFromContext(cmd.Context())
		if listenAddr != "" {
			cfg.Listen = listenAddr
		}
		return runPreview(cmd.Context(), cfg, args[0])
	},
}

func init() {
	playCmd.Flags().StringVar(&listenAddr, "listen", "", "HTTP listen address (overrides config)")
}

// runPreview owns the frame loop. Everything that touches the scene runs on
// this goroutine; stdin commands and media events arrive through the
// dispatch queue.
func runPreview(ctx context.Context, cfg *cliConfig, src string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	media.RegisterDispatch(scene.Dispatch)

	pcfg := player.NewConfig(cfg.Width, cfg.Height, src)
	pcfg.ResizeMode = cfg.ResizeMode
	pcfg.DownloadDir = cfg.DownloadDir
	pcfg.Poster = cfg.Poster
	logger := log.With().Str("component", "player").Logger()
	pcfg.Logger = &logger
	pcfg.Hooks.OnEnded = func() { log.Info().Msg("playback ended") }

	p, err := player.New(pcfg)
	if err != nil {
		return err
	}

	root := scene.NewContainer(geometry.Size{Width: cfg.Width, Height: cfg.Height})
	if err := p.Attach(root); err != nil {
		return err
	}

	frames := newBroadcaster()
	srv := &http.Server{Addr: cfg.Listen, Handler: previewRouter(frames)}
	go func() {
		log.Info().Str("addr", cfg.Listen).Str("src", src).Msg("preview listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("preview server failed")
			cancel()
		}
	}()

	go readTransport(ctx, cancel, p)

	p.Play()
	runFrameLoop(ctx, cfg, root, frames)
	p.Destroy()

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutCancel()
	return srv.Shutdown(shutCtx)
}

// runFrameLoop drains dispatches, steps tickers, composites the scene and
// publishes the encoded frame, at the configured rate, until ctx ends.
func runFrameLoop(ctx context.Context, cfg *cliConfig, root *scene.Container, frames *broadcaster) {
	rate := cfg.FrameRate
	if rate <= 0 {
		rate = 30
	}
	surface := canvas.NewSoftware(int(cfg.Width), int(cfg.Height))
	ticker := time.NewTicker(time.Duration(float64(time.Second) / rate))
	defer ticker.Stop()

	var buf bytes.Buffer
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			scene.DrainDispatch()
			scene.StepTickers()

			surface.Clear(canvas.Color(0xFF000000))
			scene.Render(root, surface)

			buf.Reset()
			if err := jpeg.Encode(&buf, surface.Image(), &jpeg.Options{Quality: cfg.JPEGQuality}); err != nil {
				log.Debug().Err(err).Msg("frame encode failed")
				continue
			}
			frames.publish(buf.Bytes())
		}
	}
}

// readTransport turns stdin lines into player operations. Operations are
// handed to the frame loop through the dispatch queue.
func readTransport(ctx context.Context, quit func(), p *player.Player) {
	fmt.Println("transport: [p]lay/pause  [s N] seek to second N  [m]ute  [l]oop  [c]ontrols  [q]uit")

	var muted, looping bool
	controls := true

	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		if ctx.Err() != nil {
			return
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "p":
			scene.Dispatch(func() {
				if p.Status() == player.StatusPlaying {
					p.Pause()
				} else {
					p.Play()
				}
			})
		case "s":
			if len(fields) < 2 {
				fmt.Println("usage: s <seconds>")
				continue
			}
			secs, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				fmt.Println("usage: s <seconds>")
				continue
			}
			scene.Dispatch(func() { p.SeekTo(time.Duration(secs * float64(time.Second))) })
		case "m":
			muted = !muted
			volume := 1.0
			if muted {
				volume = 0
			}
			scene.Dispatch(func() { p.SetVolume(volume) })
		case "l":
			looping = !looping
			on := looping
			scene.Dispatch(func() { p.SetLooping(on) })
		case "c":
			controls = !controls
			on := controls
			scene.Dispatch(func() { p.SetControlsVisible(on) })
		case "q":
			quit()
			return
		}
	}
}
