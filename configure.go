package main

import (
	"github.com/urfave/cli"
)

func configure(app *cli.App) {
	serveCMD := makeServeCMD()
	catalogCMD := makeCatalogCMD()
	app.Commands = []cli.Command{serveCMD, catalogCMD}
}
