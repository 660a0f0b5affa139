package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/asecurityteam/settings/v2"
	listservice "github.com/hpkhanhloc/list-service"
)

func main() {
	ctx := context.Background()

	// Handle the -h flag and print settings.
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.Usage = func() {}
	if err := fs.Parse(os.Args[1:]); err == flag.ErrHelp {
		help, err := listservice.Help()
		if err != nil {
			panic(err.Error())
		}
		fmt.Println(help)
		return
	}

	source, err := settings.NewEnvSource(os.Environ())
	if err != nil {
		panic(err.Error())
	}

	storage, err := listservice.NewStorage(ctx, source)
	if err != nil {
		panic(err.Error())
	}
	if err := storage.Init(ctx); err != nil {
		panic(err.Error())
	}

	handler := listservice.NewHandler(listservice.NewService(storage))
	if err := listservice.Start(ctx, source, handler); err != nil {
		panic(err.Error())
	}
}
