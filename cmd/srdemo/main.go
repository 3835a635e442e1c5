// Command srdemo renders a lit, rotating cube with the softrender pipeline
// and writes the frames as PNG images.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/softrender"
)

func main() {
	var (
		scenePath = flag.String("config", "", "YAML scene file")
		width     = flag.Int("width", 0, "image width")
		height    = flag.Int("height", 0, "image height")
		scale     = flag.Int("scale", 0, "nearest-neighbour upscale factor of the written image")
		frames    = flag.Int("frames", 0, "number of turntable frames")
		output    = flag.String("output", "", "output file")
		workers   = flag.Int("workers", 0, "worker goroutines (0 = GOMAXPROCS)")
		cull      = flag.String("cull", "", "face culling: none, back or front")
		clearCol  = flag.String("clear", "", "background color name or #hex")
		wireframe = flag.Bool("wireframe", false, "draw triangle edges only")
		aa        = flag.Bool("aa", true, "antialiased lines")
		verbose   = flag.Bool("v", false, "log pipeline statistics")
	)
	flag.Parse()

	cfg := DefaultConfig()
	if *scenePath != "" {
		var err error
		if cfg, err = LoadConfig(*scenePath); err != nil {
			log.Fatal(err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "scale":
			cfg.Scale = *scale
		case "frames":
			cfg.Frames = *frames
		case "output":
			cfg.Output = *output
		case "workers":
			cfg.Workers = *workers
		case "cull":
			cfg.Cull = *cull
		case "clear":
			cfg.Clear = *clearCol
		case "wireframe":
			cfg.Wireframe = *wireframe
		case "aa":
			cfg.Antialias = *aa
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if *verbose {
		softrender.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(&cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *Config) error {
	sc, err := newScene(cfg)
	if err != nil {
		return err
	}

	fb := softrender.NewFramebuffer[softrender.RGBA8, softrender.Depth32, softrender.NoStencil](cfg.Width, cfg.Height)
	p, err := softrender.NewPipeline(fb, camera{},
		softrender.WithWorkers(cfg.Workers),
		softrender.WithTileSize(cfg.TileWidth, cfg.TileHeight),
	)
	if err != nil {
		return err
	}
	defer p.Close()

	bar := progressbar.Default(int64(cfg.Frames), "rendering")
	defer bar.Close()

	// Frames are encoded while the next one renders.
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(2)

	var total softrender.Stats
	start := time.Now()
	for i := range cfg.Frames {
		if ctx.Err() != nil {
			break
		}
		stats, err := sc.render(p, i)
		if err != nil {
			return errors.Join(fmt.Errorf("frame %d: %w", i, err), g.Wait())
		}
		total = sumStats(total, stats)

		img, path := fb.NRGBA(), cfg.FramePath(i)
		g.Go(func() error {
			if err := writePNG(path, img, cfg.Scale); err != nil {
				return err
			}
			return bar.Add(1)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	pr := message.NewPrinter(language.English)
	pr.Printf("Rendered %d frame(s) at %dx%d on %d workers in %v\n",
		cfg.Frames, cfg.Width, cfg.Height, p.Workers(), elapsed.Round(time.Millisecond))
	pr.Printf("  primitives %d, culled %d, fragments %d, depth-failed %d\n",
		total.Primitives, total.Culled, total.Fragments, total.DepthFailed)
	return nil
}

// writePNG encodes img to path, enlarged scale times.
func writePNG(path string, img image.Image, scale int) (err error) {
	if scale > 1 {
		b := img.Bounds()
		dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		img = dst
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}
