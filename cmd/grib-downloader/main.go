package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/grib-downloader/internal/api/http"
	"github.com/i474232898/grib-downloader/internal/cities"
	"github.com/i474232898/grib-downloader/internal/config"
	"github.com/i474232898/grib-downloader/internal/forecast"
	"github.com/i474232898/grib-downloader/internal/forecast/fmi"
	"github.com/i474232898/grib-downloader/internal/progress"
	"github.com/i474232898/grib-downloader/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.AppConfig) *cobra.Command {
	var params string

	root := &cobra.Command{
		Use:          "grib-downloader",
		Short:        "Download the latest FMI HIRLAM forecast as GRIB2",
		Version:      "0.1",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if params != "" {
				cfg.Parameters = forecast.ParseParameters(params)
			}
			return cfg.Validate()
		},
	}

	root.PersistentFlags().StringVar(&cfg.APIKey, "apikey", cfg.APIKey, "key from FMI (like cd598b0e-182e-4e6f-8dad-c55df7a42ce3)")
	root.PersistentFlags().StringVar(&params, "params", "", "comma separated parameters (default "+strings.Join(forecast.DefaultParameters(), ",")+")")
	root.PersistentFlags().StringVar(&cfg.OutputDir, "out-dir", cfg.OutputDir, "directory for downloaded GRIB files")

	root.AddCommand(newLatestCmd(cfg), newWebLocationCmd(cfg), newWatchCmd(cfg))
	return root
}

func newLatestCmd(cfg *config.AppConfig) *cobra.Command {
	var city, coordinates string

	cmd := &cobra.Command{
		Use:   "latest",
		Short: "Download the latest forecast around a city or coordinates",
		RunE: func(cmd *cobra.Command, args []string) error {
			var center forecast.Coordinates
			switch {
			case city != "":
				c, err := selectCity(cfg.CitiesFile, city, cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				center = c.Coordinates
			case coordinates != "":
				c, err := forecast.ParseCoordinates(coordinates)
				if err != nil {
					return err
				}
				center = c
			default:
				return fmt.Errorf("either --city or --coordinates is required")
			}

			svc, err := newService(cfg)
			if err != nil {
				return err
			}
			_, err = svc.AcquireLatest(cmd.Context(), center)
			return err
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "download forecasts around a city")
	cmd.Flags().StringVar(&coordinates, "coordinates", "", "download forecasts around given coordinates (lat,lon)")
	cmd.MarkFlagsMutuallyExclusive("city", "coordinates")
	return cmd
}

func newWebLocationCmd(cfg *config.AppConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "web_location",
		Short: "Pick the location in a browser page and download once",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cfg)
			if err != nil {
				return err
			}
			return httpapi.ServeOnce(cmd.Context(), ":"+strconv.Itoa(cfg.Port), svc, httpapi.ServeOptions{
				OpenBrowser:  browser.OpenURL,
				BrowserDelay: time.Second,
			})
		},
	}

	cmd.Flags().IntVar(&cfg.Port, "port", cfg.Port, "port for the location page")
	return cmd
}

func newWatchCmd(cfg *config.AppConfig) *cobra.Command {
	var coordinates string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep downloading the latest forecast as new runs appear",
		RunE: func(cmd *cobra.Command, args []string) error {
			center, err := forecast.ParseCoordinates(coordinates)
			if err != nil {
				return err
			}

			svc, err := newService(cfg)
			if err != nil {
				return err
			}

			sched := scheduler.New(center, cfg.WatchInterval, svc)
			if err := sched.Start(cmd.Context()); err != nil {
				return fmt.Errorf("failed to start scheduler: %w", err)
			}
			defer sched.Stop()

			<-cmd.Context().Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&coordinates, "coordinates", "", "coordinates to watch (lat,lon)")
	cmd.Flags().DurationVar(&cfg.WatchInterval, "interval", cfg.WatchInterval, "how often to check for a new run")
	_ = cmd.MarkFlagRequired("coordinates")
	return cmd
}

func newService(cfg *config.AppConfig) (*forecast.Service, error) {
	// Shared HTTP client for outbound FMI calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	query := cfg.Query()
	client := fmi.NewClient(httpClient, cfg.BaseURL, query.APIKey)

	return forecast.NewService(client, client, forecast.Options{
		OutputDir:  cfg.OutputDir,
		Parameters: query.Parameters,
		Progress: func() forecast.ProgressReporter {
			return progress.New(os.Stdout)
		},
	})
}

// selectCity resolves keyword to one city, asking the user to pick when
// several match.
func selectCity(path, keyword string, in io.Reader, out io.Writer) (cities.City, error) {
	matches, err := cities.Search(path, keyword)
	if err != nil {
		return cities.City{}, err
	}

	switch len(matches) {
	case 0:
		return cities.City{}, fmt.Errorf("no matching cities for keyword %s", keyword)
	case 1:
		return matches[0], nil
	}

	for i, m := range matches {
		fmt.Fprintf(out, "%d: %s - %s: %s\n", i, m.Code, m.Name, m.Coordinates)
	}
	fmt.Fprint(out, "Select one: ")

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return cities.City{}, fmt.Errorf("no selection made")
	}
	selection, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return cities.City{}, fmt.Errorf("not a number")
	}
	if selection < 0 || selection >= len(matches) {
		return cities.City{}, fmt.Errorf("invalid selection")
	}
	return matches[selection], nil
}
