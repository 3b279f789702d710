package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/mpilhlt/dhamps-gist/internal/auth"
	"github.com/mpilhlt/dhamps-gist/internal/config"
	"github.com/mpilhlt/dhamps-gist/internal/generator"
	"github.com/mpilhlt/dhamps-gist/internal/handlers"
	"github.com/mpilhlt/dhamps-gist/internal/models"
	"github.com/mpilhlt/dhamps-gist/internal/upload"

	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/joho/godotenv"
)

const (
	readHeaderTimeout = 10 * time.Second
	readTimeout       = 2 * time.Minute
	shutdownTimeout   = 5 * time.Second
)

func main() {
	// A .env file is optional; real environment variables win.
	dotenvErr := godotenv.Load()

	// Create a CLI app
	cli := humacli.New(func(hooks humacli.Hooks, options *models.Options) {
		log := newLogger(options.Debug)
		slog.SetDefault(log)

		ctx := context.Background()

		if dotenvErr != nil {
			log.DebugContext(ctx, "No .env file is loaded",
				"error", dotenvErr)
		}

		log.InfoContext(ctx, "Starting DH@MPS Gist",
			"host", options.Host,
			"port", options.Port,
			"provider", options.Provider,
			"debug", options.Debug)

		secrets, err := config.LoadSecrets()
		if err != nil {
			log.ErrorContext(ctx, "Failed to load secrets",
				"error", err)
			os.Exit(1)
		}

		gen, err := initGenerator(ctx, log, options, secrets)
		if err != nil {
			log.ErrorContext(ctx, "Failed to initialize generator",
				"error", err,
				"provider", options.Provider)
			os.Exit(1)
		}

		pipeline := &upload.Pipeline{
			Generator: gen,
			Timeout:   options.GenerateTimeout(),
			MaxBytes:  options.MaxUploadBytes(),
			Log:       log,
		}

		secured := secrets.SecretToken != ""
		if !secured {
			log.WarnContext(ctx, "SECRET_TOKEN is missing so upload routes are public",
				"envVar", "SECRET_TOKEN")
		}

		// Create a new router & API
		router := http.NewServeMux()
		api := humago.New(router, handlers.NewConfig())
		api.UseMiddleware(handlers.RequestLogger(log))
		api.UseMiddleware(auth.BearerTokenAuth(api, secrets.SecretToken, log))

		// Add routes to the API
		err = handlers.AddRoutes(api, pipeline, secured)
		if err != nil {
			log.ErrorContext(ctx, "Unable to add routes",
				"error", err)
			os.Exit(1)
		}

		var handler http.Handler = router
		if maxBytes := options.MaxUploadBytes(); maxBytes > 0 {
			// This is the only cap on upload bodies. Leave room for the
			// multipart envelope around the file.
			handler = http.MaxBytesHandler(router, maxBytes+2<<20)
		}

		// Create the HTTP server
		server := &http.Server{
			Addr:              fmt.Sprintf("%s:%d", options.Host, options.Port),
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			ReadTimeout:       readTimeout,
		}
		if timeout := options.GenerateTimeout(); timeout > 0 {
			server.WriteTimeout = timeout + time.Minute
		}

		// Start server
		hooks.OnStart(func() {
			log.InfoContext(ctx, "API server is started",
				"addr", server.Addr)
			err := server.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.ErrorContext(ctx, "Listen error",
					"error", err,
					"addr", server.Addr)
				return
			}
			log.InfoContext(ctx, "API server is stopped",
				"addr", server.Addr)
		})

		// Gracefully shutdown server
		hooks.OnStop(func() {
			log.InfoContext(ctx, "Shutting down API server",
				"addr", server.Addr)

			// Create a context with a timeout for the shutdown process
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				log.ErrorContext(ctx, "Shutdown error",
					"error", err)
			}
			log.InfoContext(ctx, "DH@MPS Gist stopped")
		})
	})

	// Run the CLI. When passed no commands, it starts the server.
	cli.Run()
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func initGenerator(ctx context.Context, log *slog.Logger, options *models.Options, secrets config.Secrets) (generator.Generator, error) {
	apiKey, err := secrets.APIKey(options.Provider)
	if err != nil {
		return nil, err
	}

	model := options.Model
	if model == "" {
		model, err = generator.DefaultModel(options.Provider)
		if err != nil {
			return nil, err
		}
	}

	var gen generator.Generator
	switch options.Provider {
	case generator.ProviderGemini:
		gen, err = generator.NewGemini(ctx, apiKey, model, log)
	case generator.ProviderOpenAI:
		gen, err = generator.NewOpenAI(apiKey, model)
	default:
		err = fmt.Errorf("unknown provider %q", options.Provider)
	}
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "Generator is initialized",
		"provider", options.Provider,
		"model", model)
	return gen, nil
}
