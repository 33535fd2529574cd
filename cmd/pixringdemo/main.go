// Command pixringdemo pages through a synthetic document, keeping rendered
// pages in one shared pixring buffer.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/pixring"
	"github.com/gogpu/pixring/pagecache"
)

func main() {
	var (
		width     = flag.Int("width", 600, "screen width")
		height    = flag.Int("height", 800, "screen height")
		pages     = flag.Int("pages", 12, "number of pages in the document")
		lookahead = flag.Int("lookahead", 1, "pages rendered ahead of the current one")
		output    = flag.String("output", "page.png", "PNG file for the last screen")
		verbose   = flag.Bool("v", false, "log allocator activity")
	)
	flag.Parse()

	if *verbose {
		pixring.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg := config{
		screen:    pixring.Size{Width: *width, Height: *height},
		pages:     *pages,
		lookahead: *lookahead,
		output:    *output,
	}
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "pixringdemo: %v\n", err)
		os.Exit(1)
	}
}

type config struct {
	screen    pixring.Size
	pages     int
	lookahead int
	output    string
}

func run(cfg config) error {
	alloc, err := pixring.New(cfg.screen)
	if err != nil {
		return err
	}
	cache := pagecache.New[int](alloc, pagecache.DefaultCapacity)

	doc, err := newDocument(cfg.screen, cfg.pages)
	if err != nil {
		return err
	}
	defer doc.Close()

	screen := image.NewNRGBA(image.Rect(0, 0, cfg.screen.Width, cfg.screen.Height))

	for current := 0; current < doc.pages; current++ {
		// Render the current page last so it is the most recently used.
		for k := cfg.lookahead; k >= 0; k-- {
			p := current + k
			if p >= doc.pages {
				continue
			}
			size := doc.PageSize(p)
			if _, err := cache.GetOrRender(p, size.Width, size.Height, func(r *pixring.Region) error {
				return doc.Render(p, r)
			}); err != nil {
				return fmt.Errorf("page %d: %w", p, err)
			}
		}

		r, ok := cache.Get(current)
		if !ok {
			return fmt.Errorf("page %d dropped from cache", current)
		}
		r.DrawTo(screen, image.Point{}, screen.Bounds())

		if err := alloc.Validate(); err != nil {
			return err
		}
		pixring.Logger().Info("page shown", "page", current, "region", r.String())
	}

	if err := savePNG(cfg.output, screen); err != nil {
		return err
	}

	printSummary(cfg, alloc.Stats(), cache.Stats())
	return nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func printSummary(cfg config, as pixring.Stats, cs pagecache.Stats) {
	p := message.NewPrinter(language.English)
	p.Printf("screen %s, %d pages, look-ahead %d\n", cfg.screen, cfg.pages, cfg.lookahead)
	p.Printf("buffer: %d pixels (%s)\n", as.Capacity, humanize.IBytes(uint64(as.Capacity)*4))
	p.Printf("allocations: %d, sweeps: %d, reclaimed: %d, failures: %d\n",
		as.Allocations, as.Sweeps, as.Reclaimed, as.Failures)
	p.Printf("page cache: %d hits, %d misses (%.1f%%), %d evictions\n",
		cs.Hits, cs.Misses, cs.HitRate*100, cs.Evictions)
	fmt.Println(as)
	fmt.Printf("last screen saved to %s\n", cfg.output)
}
