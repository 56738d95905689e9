package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mamadbah2/onionprice/pkg/clients/onionprice"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	newClient := func(server string) onionprice.Client { return onionprice.NewClient(server) }
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, newClient)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
