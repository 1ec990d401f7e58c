package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"runtime"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spectra-render/spectra/renderer"
	"github.com/spectra-render/spectra/tracer"
	"github.com/spectra-render/spectra/tracer/software"
	"github.com/urfave/cli"
)

// Assemble renderer options from command line flags.
func parseRenderOptions(ctx *cli.Context) (renderer.Options, error) {
	opts := renderer.Options{
		FrameW:          uint32(ctx.Int("width")),
		FrameH:          uint32(ctx.Int("height")),
		SamplesPerPixel: uint32(ctx.Int("spp")),
		Exposure:        float32(ctx.Float64("exposure")),
		NumTracers:      ctx.Int("num-tracers"),
		Accumulate:      !ctx.Bool("no-accumulation"),
	}

	switch denoiser := ctx.String("denoiser"); denoiser {
	case "none":
		opts.Denoiser.Kind = software.DenoiseNone
	case "bilateral":
		opts.Denoiser.Kind = software.DenoiseBilateral
	case "a-trous":
		opts.Denoiser.Kind = software.DenoiseATrous
		opts.Denoiser.FilterSize = uint32(ctx.Int("filter-size"))
	default:
		return opts, fmt.Errorf("unsupported denoiser %q", denoiser)
	}

	return opts, opts.Validate()
}

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	opts, err := parseRenderOptions(ctx)
	if err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("missing scene name argument")
	}

	sc, err := buildScene(ctx.Args().First())
	if err != nil {
		return err
	}
	logger.Noticef("scene information:\n%s", sc.Stats())

	// Setup tracing pipeline
	pipeline := software.DefaultPipeline(opts.Denoiser, opts.Accumulate)

	// Create renderer
	r, err := renderer.NewDefault(sc, tracer.NaiveScheduler(), pipeline, opts)
	if err != nil {
		return err
	}
	defer r.Close()

	// Each rendered frame adds one batch of samples per pixel; keep
	// rendering until the sample history converges.
	numFrames := uint32(1)
	if opts.Accumulate && ctx.Int("frames") > 1 {
		numFrames = uint32(ctx.Int("frames"))
	}

	start := time.Now()
	for frame := uint32(0); frame < numFrames; frame++ {
		if err = r.Render(); err != nil {
			return err
		}
	}
	logger.Noticef("rendered %d frame(s) in %d ms", numFrames, time.Since(start).Nanoseconds()/1e6)

	// Display stats
	displayFrameStats(r.Stats())

	return saveFrame(r.FrameData(), opts.FrameW, opts.FrameH, ctx.String("out"))
}

// Render a continuously updating view of the scene.
func RenderInteractive(ctx *cli.Context) error {
	setupLogging(ctx)

	// The opengl context must stay on the main thread.
	runtime.LockOSThread()

	opts, err := parseRenderOptions(ctx)
	if err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("missing scene name argument")
	}

	sc, err := buildScene(ctx.Args().First())
	if err != nil {
		return err
	}

	pipeline := software.DefaultPipeline(opts.Denoiser, opts.Accumulate)

	r, err := renderer.NewInteractive(sc, tracer.PerfectScheduler(), pipeline, opts)
	if err != nil {
		return err
	}
	defer r.Close()

	return r.Render()
}

// Export the rendered RGBA frame data as a png image.
func saveFrame(frameData []uint8, frameW, frameH uint32, imgFile string) error {
	f, err := os.Create(imgFile)
	if err != nil {
		return err
	}
	defer f.Close()

	im := image.NewRGBA(image.Rect(0, 0, int(frameW), int(frameH)))
	copy(im.Pix, frameData)

	err = png.Encode(f, im)
	if err == nil {
		logger.Noticef("wrote frame to %s", imgFile)
	}
	return err
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Tracer", "Primary", "Block height", "% of frame", "Render time"})
	for _, stat := range stats.Tracers {
		table.Append([]string{
			stat.Id,
			fmt.Sprintf("%t", stat.Primary),
			fmt.Sprintf("%d", stat.BlockH),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			fmt.Sprintf("%s", stat.RenderTime),
		})
	}
	table.SetFooter([]string{"", "", "", "TOTAL", fmt.Sprintf("%s", stats.RenderTime)})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
