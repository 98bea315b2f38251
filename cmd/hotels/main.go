// Command hotels builds the hotel catalog from every supplier and prints the hotels
// matching the given ids and destinations as JSON.
//
//	hotels <hotel_ids|none> <destination_ids|none> [--config file] [--export]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		cancel()
		os.Exit(1)
	}
}
