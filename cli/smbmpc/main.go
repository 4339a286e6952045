// Package main is the smbmpc command line.
package main

import (
	"log"
	"os"

	"go.viam.com/smbmpc/cli"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
