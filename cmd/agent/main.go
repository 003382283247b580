package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"miniclaw/internal/di"
	"miniclaw/internal/infrastructure/env"
	"miniclaw/internal/infrastructure/userinteraction"
)

func main() {
	envService := env.NewEnvService()

	cfg, err := di.ConfigFromEnv(envService)
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	container, err := di.NewContainer(cfg)
	if err != nil {
		log.Fatalf("initialization failed: %v", err)
	}
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		_ = os.Stdin.Close()
	}()

	console := userinteraction.NewConsoleUserInteraction(os.Stdin, os.Stdout, envService.GetBool("NO_COLOR", false))
	fmt.Println("miniclaw ready. Type a task, Ctrl-D to quit.")

	for {
		task, err := console.ReadTask(ctx)
		if errors.Is(err, io.EOF) || ctx.Err() != nil {
			return
		}
		if err != nil {
			container.Logger.Error("Failed to read task", "error", err)
			return
		}
		if task == "" {
			continue
		}

		result, err := container.Runner.Execute(ctx, task, console)
		if err != nil {
			console.ShowError(ctx, err.Error())
			if ctx.Err() != nil {
				return
			}
			continue
		}
		container.Logger.Debug("Task completed",
			"run_id", result.RunID,
			"iterations", result.Iterations,
			"exhausted", result.Exhausted,
		)
	}
}
