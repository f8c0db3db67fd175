package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gometeo/guide/internal/config"
	"github.com/gometeo/guide/internal/events"
	"github.com/gometeo/guide/internal/guide"
	"github.com/gometeo/guide/internal/logging"
	"github.com/gometeo/guide/internal/weather"
)

// unitsUsage перечисляет все системы единиц, которые понимает model.NormalizeUnits
const unitsUsage = "imperial, metric or standard"

func main() {
	cfg := config.Load()

	location := flag.String("location", cfg.DefaultLocation, "ZIP code to show")
	units := flag.String("units", cfg.Units, unitsUsage)
	interactive := flag.Bool("i", false, "read more locations from stdin")
	flag.Parse()

	// Логи в stderr, чтобы не мешать отрисовке
	logger := logging.New(os.Stderr, cfg.LogLevel, false)

	g := guide.New(
		weather.NewClient(cfg, logger),
		events.NewClient(cfg, logger),
		guide.Options{
			Units:           *units,
			RadiusMiles:     cfg.EventsRadiusMiles,
			DefaultLocation: *location,
		},
		logger,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	render(os.Stdout, g.Start(ctx).View)

	if *interactive {
		if err := repl(ctx, g, os.Stdin, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	}
}

// repl: строка с ZIP-кодом обновляет экран, "open <id>" печатает URL события, "quit" выходит
func repl(ctx context.Context, g *guide.Guide, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "quit" || line == "exit":
			return nil
		case strings.HasPrefix(line, "open "):
			id := strings.TrimSpace(strings.TrimPrefix(line, "open "))
			url, err := g.ResolveLink(g.Current().RenderID, id)
			if err != nil {
				fmt.Fprintf(out, "%s: %v\n", id, err)
			} else {
				fmt.Fprintln(out, url)
			}
		default:
			render(out, g.Refresh(ctx, line).View)
		}
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}
