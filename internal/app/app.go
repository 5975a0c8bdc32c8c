// Package app wires the simd process: environment, service configuration,
// content catalog, logging router, telemetry counters and the HTTP server.
// Everything here is swappable through Config so tests can run the service
// without touching the filesystem or the network defaults.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"growfortress/simcore/content"
	simnet "growfortress/simcore/internal/net"
	"growfortress/simcore/internal/observability"
	"growfortress/simcore/internal/telemetry"
	"growfortress/simcore/logging"
	loggingSinks "growfortress/simcore/logging/sinks"
)

// ServiceConfig is the simd.yaml shape. Zero values fall back to the
// defaults below, so operators set only what they change.
type ServiceConfig struct {
	Addr             string   `yaml:"addr"`
	ContentPath      string   `yaml:"content"`
	MaxStoredBattles int      `yaml:"maxStoredBattles"`
	LogSinks         []string `yaml:"logSinks"`
	LogJSONPath      string   `yaml:"logJsonPath"`
	EnablePprofTrace bool     `yaml:"enablePprofTrace"`
}

func (c ServiceConfig) normalized() ServiceConfig {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if len(c.LogSinks) == 0 {
		c.LogSinks = []string{"console"}
	}
	return c
}

// LoadServiceConfig reads a simd.yaml file. A missing file is not an error;
// the defaults apply.
func LoadServiceConfig(path string) (ServiceConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return ServiceConfig{}.normalized(), nil
	}
	if err != nil {
		return ServiceConfig{}, fmt.Errorf("read service config %s: %w", path, err)
	}
	var cfg ServiceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ServiceConfig{}, fmt.Errorf("parse service config %s: %w", path, err)
	}
	return cfg.normalized(), nil
}

// Config carries the process-level inputs of Run.
type Config struct {
	Logger     telemetry.Logger
	ConfigPath string
}

// Run assembles the service and blocks until ctx is cancelled or the HTTP
// server fails. Shutdown drains in-flight requests before returning.
func Run(ctx context.Context, cfg Config) error {
	telemetryLogger := cfg.Logger
	if telemetryLogger == nil {
		telemetryLogger = telemetry.WrapLogger(log.Default())
	}

	fallbackLogger := log.Default()
	if provider, ok := telemetryLogger.(interface{ StandardLogger() *log.Logger }); ok {
		if candidate := provider.StandardLogger(); candidate != nil {
			fallbackLogger = candidate
		}
	}

	if err := godotenv.Load(); err == nil {
		telemetryLogger.Printf("loaded environment overrides from .env")
	}

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = os.Getenv("SIMD_CONFIG")
	}
	if configPath == "" {
		configPath = "simd.yaml"
	}
	svcCfg, err := LoadServiceConfig(configPath)
	if err != nil {
		return err
	}
	svcCfg = applyEnvOverrides(svcCfg, telemetryLogger)

	document := content.DefaultDocument()
	if svcCfg.ContentPath != "" {
		data, err := os.ReadFile(svcCfg.ContentPath)
		if err != nil {
			return fmt.Errorf("read content document %s: %w", svcCfg.ContentPath, err)
		}
		document, err = content.DecodeDocument(data)
		if err != nil {
			return err
		}
		telemetryLogger.Printf("loaded content document from %s", svcCfg.ContentPath)
	}
	catalog, err := content.Compile(document)
	if err != nil {
		return err
	}

	logConfig := logging.DefaultConfig()
	logConfig.EnabledSinks = svcCfg.LogSinks
	sinks := map[string]logging.Sink{
		"console": loggingSinks.NewConsole(os.Stdout),
	}
	var jsonFile *os.File
	if svcCfg.LogJSONPath != "" {
		jsonFile, err = os.OpenFile(svcCfg.LogJSONPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open json log %s: %w", svcCfg.LogJSONPath, err)
		}
		defer jsonFile.Close()
		sinks["json"] = loggingSinks.NewJSON(jsonFile, 2*time.Second)
		if !logConfig.HasSink("json") {
			logConfig.EnabledSinks = append(logConfig.EnabledSinks, "json")
		}
	}

	router, err := logging.NewRouter(logConfig, logging.SystemClock{}, fallbackLogger, sinks)
	if err != nil {
		return fmt.Errorf("failed to construct logging router: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if cerr := router.Close(closeCtx); cerr != nil {
			telemetryLogger.Printf("failed to close logging router: %v", cerr)
		}
	}()

	counters := telemetry.NewCounters()
	service := simnet.NewService(simnet.ServiceConfig{
		Catalog:   catalog,
		Document:  document,
		Publisher: router,
		Counters:  counters,
		MaxStored: svcCfg.MaxStoredBattles,
	})
	handler := simnet.NewHTTPHandler(service, simnet.HTTPHandlerConfig{
		Logger:        fallbackLogger,
		Observability: observability.Config{EnablePprofTrace: svcCfg.EnablePprofTrace},
	})

	srv := &http.Server{Addr: svcCfg.Addr, Handler: handler}
	telemetryLogger.Printf("simd listening on %s", srv.Addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		telemetryLogger.Printf("simd stopped")
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}
}

// applyEnvOverrides lets the environment win over simd.yaml, matching how
// the service is tuned in deployment. Bad values warn and keep the file
// setting.
func applyEnvOverrides(cfg ServiceConfig, logger telemetry.Logger) ServiceConfig {
	if raw := os.Getenv("SIMD_ADDR"); raw != "" {
		cfg.Addr = raw
	}
	if raw := os.Getenv("SIMD_CONTENT"); raw != "" {
		cfg.ContentPath = raw
	}
	if raw := os.Getenv("SIMD_MAX_STORED"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil {
			cfg.MaxStoredBattles = value
		} else {
			logger.Printf("invalid SIMD_MAX_STORED=%q: %v", raw, err)
		}
	}
	if raw := os.Getenv("ENABLE_PPROF_TRACE"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			cfg.EnablePprofTrace = value
		} else {
			logger.Printf("invalid ENABLE_PPROF_TRACE=%q: %v", raw, err)
		}
	}
	return cfg
}
