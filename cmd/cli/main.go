package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/pmdadmin/internal/client/cli"
)

func main() {
	app := cli.NewApp(os.Stdin, os.Stdout)
	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
