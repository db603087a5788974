package router

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/goccy/go-json"
	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"github.com/roysitumorang/kilau/config"
	_ "github.com/roysitumorang/kilau/docs"
	"github.com/roysitumorang/kilau/helper"
	"github.com/roysitumorang/kilau/middleware"
	branchPresenter "github.com/roysitumorang/kilau/modules/branch/presenter"
	sequenceSettingPresenter "github.com/roysitumorang/kilau/modules/sequence_setting/presenter"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

const (
	DefaultPort uint16 = 8080
)

// NewApp builds the fiber application with every route mounted.
func (q *Service) NewApp(ctx context.Context) *fiber.App {
	ctxt := "Router-NewApp"
	app := fiber.New(fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var e *fiber.Error
			if errors.As(err, &e) {
				return helper.NewResponse(e.Code).SetMessage(e.Message).WriteResponse(c)
			}
			return helper.NewErrorResponse(err).WriteResponse(c)
		},
	})
	app.Use(
		recover.New(recover.Config{
			EnableStackTrace: true,
		}),
		fiberzap.New(fiberzap.Config{
			Logger: helper.GetLogger(),
		}),
		requestid.New(),
		func(c *fiber.Ctx) error {
			c.SetUserContext(helper.WithRequestID(c.UserContext(), c.GetRespHeader(fiber.HeaderXRequestID)))
			return c.Next()
		},
		compress.New(),
		cors.New(),
	)
	if sentryEnabled := os.Getenv("SENTRY_ENABLED") == "1"; sentryEnabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              os.Getenv("SENTRY_DSN"),
			Environment:      helper.GetEnv(),
			Release:          config.AppName + "@" + config.Version,
			AttachStacktrace: true,
			EnableTracing:    true,
		}); err != nil {
			helper.Capture(ctx, zap.WarnLevel, err, ctxt, "ErrSentryInit")
		} else {
			app.Use(fibersentry.New(fibersentry.Config{
				Repanic:         true,
				WaitForDelivery: true,
			}))
		}
	}
	basicAuth := middleware.BasicAuth(os.Getenv("BASIC_AUTH_USERNAME"), os.Getenv("BASIC_AUTH_PASSWORD"))
	if helper.GetEnv() == "development" {
		app.Get("/swagger/*", fiberSwagger.WrapHandler)
	}
	app.Get("/ping", func(c *fiber.Ctx) error {
		return helper.NewResponse(fiber.StatusOK).
			SetData(map[string]any{
				"version": config.Version,
				"commit":  config.Commit,
				"build":   config.Build,
				"upsince": config.Now.Format(time.RFC3339),
				"uptime":  time.Since(config.Now).String(),
			}).WriteResponse(c)
	}).
		Get("/metrics", basicAuth, monitor.New(monitor.Config{
			APIOnly: true,
		})).
		Get("/env", basicAuth, func(c *fiber.Ctx) error {
			envMap, err := godotenv.Read(".env")
			if err != nil {
				helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrRead")
				return helper.NewResponse(fiber.StatusBadRequest).SetMessage(err.Error()).WriteResponse(c)
			}
			for key := range envMap {
				if key == "DB_WRITE_PASSWORD" || key == "DB_READ_PASSWORD" || key == "BASIC_AUTH_PASSWORD" || key == "SENTRY_DSN" {
					envMap[key] = "********"
				}
			}
			envMap["GO_VERSION"] = runtime.Version()
			return helper.NewResponse(fiber.StatusOK).SetData(envMap).WriteResponse(c)
		})
	v1 := app.Group("/v1")
	branchPresenter.New(q.BranchUseCase).Mount(v1.Group("/branches"))
	sequenceSettingPresenter.New(q.SequenceSettingUseCase, q.SequenceUseCase).Mount(v1.Group("/sequence-settings"))
	app.Use(func(c *fiber.Ctx) error {
		return helper.NewResponse(fiber.StatusNotFound).WriteResponse(c)
	})
	return app
}

// Port reads PORT, falling back to DefaultPort when unset or out of range.
func Port() uint16 {
	port := DefaultPort
	if envPort, ok := os.LookupEnv("PORT"); ok && envPort != "" {
		if portInt, err := strconv.Atoi(envPort); err == nil && portInt > 0 && portInt <= math.MaxUint16 {
			port = uint16(portInt)
		}
	}
	return port
}

// HTTPServerMain serves until ctx is cancelled, then shuts down gracefully.
func (q *Service) HTTPServerMain(ctx context.Context) error {
	ctxt := "Router-HTTPServerMain"
	app := q.NewApp(ctx)
	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrShutdown")
		}
	}()
	err := app.Listen(fmt.Sprintf(":%d", Port()))
	if err != nil {
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrListen")
	}
	return err
}
