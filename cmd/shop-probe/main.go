package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BearBump/LlantaBox/config"
	"github.com/BearBump/LlantaBox/internal/integrations/shopclient"
)

func main() {
	cfg, err := config.Load(os.Getenv("configPath"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ошибка парсинга конфига, %v\n", err)
		os.Exit(2)
	}
	cc, err := cfg.ClientConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	client, err := shopclient.New(cc)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fmt.Fprintf(os.Stdout, "Probing %s\n", client.BaseURL())
	if failed := runProbe(ctx, client, os.Stdout); failed > 0 {
		cancel()
		os.Exit(1)
	}
}
