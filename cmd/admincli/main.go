package main

import (
	"context"
	"log"
	"os"

	"github.com/Huutuanapp/hccvn-admin-cli/internal/buildinfo"
	"github.com/Huutuanapp/hccvn-admin-cli/internal/client/cli"
	"github.com/Huutuanapp/hccvn-admin-cli/internal/client/config"
	"github.com/Huutuanapp/hccvn-admin-cli/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg, logging.NewDefault())

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
