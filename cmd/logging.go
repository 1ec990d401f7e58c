package cmd

import (
	"github.com/spectra-render/spectra/log"
	"github.com/urfave/cli"
)

var logger = log.New("spectra")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
