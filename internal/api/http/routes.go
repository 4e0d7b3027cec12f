package httpapi

import (
	"context"
	_ "embed"
	"errors"
	"log"
	"strconv"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/grib-downloader/internal/forecast"
)

var validate = validator.New()

//go:embed location.html
var locationPage string

// Acquirer runs one forecast acquisition for a location.
type Acquirer interface {
	AcquireLatest(ctx context.Context, center forecast.Coordinates) (forecast.Result, error)
}

// RegisterRoutes wires the location page and the one-shot download callback.
// The first valid /download request triggers an acquisition and then signals
// done; any later request is rejected.
func RegisterRoutes(app *fiber.App, service Acquirer, done chan<- struct{}) {
	var handled atomic.Bool

	app.Get("/", func(c *fiber.Ctx) error {
		c.Type("html", "utf-8")
		return c.SendString(locationPage)
	})

	app.Get("/download", func(c *fiber.Ctx) error {
		req, err := parseCoordinatesQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if !handled.CompareAndSwap(false, true) {
			return fiber.NewError(fiber.StatusConflict, "a download has already been requested")
		}
		defer signal(done)

		res, err := service.AcquireLatest(c.UserContext(), req.toCoordinates())
		if err != nil {
			log.Printf("ERROR: acquisition for %.4f,%.4f failed: %v", req.Latitude, req.Longitude, err)
			return fiber.NewError(fiber.StatusInternalServerError, "forecast download failed")
		}

		log.Printf("INFO: acquisition finished with status %s", res.Status)
		return c.SendString("ok")
	})
}

func signal(done chan<- struct{}) {
	select {
	case done <- struct{}{}:
	default:
	}
}

// coordinatesQuery holds the callback's query parameters.
type coordinatesQuery struct {
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
}

func (q coordinatesQuery) toCoordinates() forecast.Coordinates {
	return forecast.Coordinates{
		Latitude:  q.Latitude,
		Longitude: q.Longitude,
	}
}

func parseCoordinatesQuery(c *fiber.Ctx) (coordinatesQuery, error) {
	var q coordinatesQuery

	latStr := c.Query("latitude")
	lonStr := c.Query("longitude")
	if latStr == "" || lonStr == "" {
		return q, errors.New("latitude and longitude query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return q, errors.New("latitude must be a number")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return q, errors.New("longitude must be a number")
	}

	q.Latitude = lat
	q.Longitude = lon
	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}
