package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"romaneio/internal/api"
	"romaneio/internal/config"
	"romaneio/internal/exporter"
	"romaneio/internal/importer"
	"romaneio/internal/logging"
	"romaneio/internal/metrics"
	"romaneio/internal/server"
	"romaneio/internal/store"
)

var (
	port    = flag.Int("port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	devMode = flag.Bool("dev", false, "开发模式")
	dataDir = flag.String("dataDir", "", "数据目录 (覆盖配置文件)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Romaneio - consolidação de rotas")
	fmt.Println("==========================================")

	// 加载配置
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败，使用默认配置: %v\n", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 命令行参数覆盖配置
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	logger := logging.Setup(cfg.Logging, os.Stdout)
	if info.Path != "" {
		logger.Info("config loaded", slog.String("path", info.Path))
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, logger *slog.Logger) error {
	// 确保数据目录存在
	dir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return fmt.Errorf("创建数据目录失败: %w", err)
	}
	logger.Info("data directory ready", slog.String("path", dir), slog.String("backend", cfg.Data.Backend))

	st, err := store.Open(cfg.Data.Backend, dir)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	m := metrics.New()
	coord := importer.NewCoordinator(st, importer.WithMetrics(m), importer.WithLogger(logger))
	coord.Restore(context.Background())

	format, err := exporter.ParseFormat(cfg.Export.DefaultFormat, exporter.FormatCSV)
	if err != nil {
		return err
	}
	opts := api.Options{
		MaxUploadBytes: int64(cfg.Import.MaxUploadMB) << 20,
		DefaultFormat:  format,
		DownloadTTL:    time.Duration(cfg.Export.DownloadTTLMinutes) * time.Minute,
		Metrics:        m,
		Logger:         logger,
	}
	if sqlite, ok := st.(*store.Store); ok {
		opts.Logs = sqlite
	}

	srv := server.NewServer(cfg, api.NewHandler(coord, opts), m, logger)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("url", fmt.Sprintf("http://localhost:%d", cfg.Server.Port)))
		errCh <- srv.Run(addr)
	}()

	// 等待信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
