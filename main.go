package main

import (
	"os"

	"github.com/spectra-render/spectra/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "spectra"
	app.Usage = "render scenes using path tracing"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}

	renderFlags := []cli.Flag{
		cli.IntFlag{
			Name:  "width",
			Value: 512,
			Usage: "frame width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 512,
			Usage: "frame height",
		},
		cli.IntFlag{
			Name:  "spp",
			Value: 5,
			Usage: "samples per pixel and frame",
		},
		cli.Float64Flag{
			Name:  "exposure",
			Value: 1.0,
			Usage: "camera exposure for tone-mapping",
		},
		cli.IntFlag{
			Name:  "num-tracers",
			Value: 1,
			Usage: "number of tracers sharing the frame",
		},
		cli.StringFlag{
			Name:  "denoiser",
			Value: "a-trous",
			Usage: "denoiser to apply: none, bilateral or a-trous",
		},
		cli.IntFlag{
			Name:  "filter-size",
			Value: 4,
			Usage: "largest filter step for the a-trous denoiser",
		},
		cli.BoolFlag{
			Name:  "no-accumulation",
			Usage: "disable temporal sample accumulation",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      "scene-info",
			Usage:     "display information about a built-in scene",
			ArgsUsage: "scene_name",
			Action:    cmd.ShowSceneInfo,
		},
		{
			Name:   "render",
			Usage:  "render scene",
			Action: nil,
			Subcommands: []cli.Command{
				{
					Name:        "frame",
					Usage:       "render single frame",
					Description: `Render a single frame of a built-in scene and save it as a png image.`,
					ArgsUsage:   "scene_name",
					Flags: append(renderFlags,
						cli.IntFlag{
							Name:  "frames",
							Value: 1,
							Usage: "number of accumulated frames to render",
						},
						cli.StringFlag{
							Name:  "out, o",
							Value: "frame.png",
							Usage: "image filename for the rendered frame",
						},
					),
					Action: cmd.RenderFrame,
				},
				{
					Name:        "interactive",
					Usage:       "render interactive view of the scene",
					Description: `Render a built-in scene into an opengl window with fly-through camera controls.`,
					ArgsUsage:   "scene_name",
					Flags:       renderFlags,
					Action:      cmd.RenderInteractive,
				},
			},
		},
	}

	app.Run(os.Args)
}
