package httpapi

import (
	"context"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// ServeOptions tunes the one-shot location server.
type ServeOptions struct {
	// OpenBrowser is called with the location page URL once the listener
	// is up. Nil leaves the browser alone.
	OpenBrowser func(url string) error
	// BrowserDelay is how long to wait before OpenBrowser is called.
	BrowserDelay time.Duration
}

// NewApp builds the fiber app for the location callback. done receives one
// value once the download callback has been served.
func NewApp(service Acquirer, done chan<- struct{}) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "grib-downloader",
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	RegisterRoutes(app, service, done)
	return app
}

// ServeOnce listens on addr until one download callback has been handled or
// ctx is cancelled, then shuts the listener down.
func ServeOnce(ctx context.Context, addr string, service Acquirer, opts ServeOptions) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	url, err := localURL(ln.Addr().String())
	if err != nil {
		ln.Close()
		return err
	}

	done := make(chan struct{}, 1)
	app := NewApp(service, done)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listener(ln)
	}()

	log.Printf("INFO: waiting for a location on %s", url)

	if opts.OpenBrowser != nil {
		timer := time.AfterFunc(opts.BrowserDelay, func() {
			if err := opts.OpenBrowser(url); err != nil {
				log.Printf("ERROR: failed to open browser, visit %s manually: %v", url, err)
			}
		})
		defer timer.Stop()
	}

	select {
	case err := <-errCh:
		return err
	case <-done:
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
		return err
	}
	return nil
}

// localURL turns a listen address into the page URL shown to the user.
func localURL(addr string) (string, error) {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	return "http://" + net.JoinHostPort("localhost", port) + "/", nil
}
