// Command demoserver serves fixture pages with known accessibility defects.
// Usage: go run ./cmd/demoserver [port]
// Default port: 9999
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/raysh454/a11ylens/internal/demoserver"
	"github.com/raysh454/a11ylens/internal/logging"
)

func main() {
	cfg := demoserver.DefaultConfig()
	logger := logging.NewStdoutLogger("demoserver")

	// Optional: custom port from command line
	if len(os.Args) > 1 {
		port, err := strconv.Atoi(os.Args[1])
		if err != nil || port < 1 || port > 65535 {
			logger.Error("invalid port", logging.Field{Key: "arg", Value: os.Args[1]})
			os.Exit(2)
		}
		cfg.Port = port
	}

	base := fmt.Sprintf("http://localhost:%d", cfg.Port)
	fmt.Println("===========================================")
	fmt.Println("   a11ylens fixture site")
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Println("Pages start at a revision with known accessibility defects.")
	fmt.Println("Apply fixes from the control panel and analyze again to see the tally drop.")
	fmt.Println()
	fmt.Printf("  Control panel:  %s/demo/control\n", base)
	fmt.Printf("  Guidelines:     %s%s\n", base, demoserver.QuickrefPath)
	fmt.Println()
	fmt.Println("Try:")
	fmt.Printf("  A11YLENS_GUIDELINES_URL=%s%s a11ylens analyze --backend nethttp %s/\n", base, demoserver.QuickrefPath, base)
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := demoserver.NewDemoServer(cfg, logger)
	if err := server.ListenAndServe(ctx); err != nil {
		logger.Error("server error", logging.Field{Key: "error", Value: err})
		os.Exit(1)
	}
}
