package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/previsio/previsio-backend/internal/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		application.Log.Info("Shutting down...")
		application.Close()
		os.Exit(0)
	}()

	addr := ":" + application.Cfg.Port
	application.Log.Info("Listening", "addr", addr)
	if err := application.Run(addr); err != nil {
		application.Log.Fatal("server exited", "error", err)
	}
}
