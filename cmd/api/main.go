package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"llm-quiz/config"
	"llm-quiz/internal/api/healthcheck"
	ingestapi "llm-quiz/internal/api/ingest"
	quizapi "llm-quiz/internal/api/quiz"
	retrieverapi "llm-quiz/internal/api/retriever"
	roomapi "llm-quiz/internal/api/room"
	uploadapi "llm-quiz/internal/api/upload"
	"llm-quiz/internal/database"
	"llm-quiz/internal/middleware"
	"llm-quiz/pkg/logger"

	"github.com/gofiber/fiber/v3"
	malvus "github.com/milvus-io/milvus-sdk-go/v2/client"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrate := flag.Bool("migrate", false, "run schema migration and exit")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		logger.Fatal(err, "%v: config load failed", config.ModuleSetting)
	}
	_ = logger.SetLevel(string(config.Cfg.LogLevel))

	if *migrate {
		if err := database.Migrate(); err != nil {
			logger.Fatal(err, "%v: migration failed", config.ModuleDatabase)
		}
		logger.Info("%v: migration complete", config.ModuleDatabase)
		return
	}

	if _, err := database.GetDB(); err != nil {
		logger.Fatal(err, "%v: database connect failed", config.ModuleDatabase)
	}

	// Milvus connectivity check on startup; generation still works without
	// it, so a failure is logged rather than fatal.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	cli, err := malvus.NewClient(ctx, malvus.Config{Address: config.Cfg.Milvus.Address})
	cancel()
	if err != nil {
		logger.Error(err, "%v: connect failed at startup", config.ModuleMilvus)
	} else {
		cli.Close()
		logger.Info("%v: ok", config.ModuleMilvus)
	}

	app := fiber.New(fiber.Config{
		AppName:   config.Cfg.Server.AppName,
		BodyLimit: config.Cfg.Server.BodyLimit,
	})

	middleware.Setup(app)

	healthcheck.RegisterRoutes(app)
	uploadapi.RegisterRoutes(app)
	ingestapi.RegisterRoutes(app)
	retrieverapi.RegisterRoutes(app)
	quizapi.RegisterRoutes(app)
	roomapi.RegisterRoutes(app)

	addr := fmt.Sprintf(":%d", config.Cfg.Server.Port)
	logger.Info("%v: listening on %s", config.ModuleServer, addr)
	if err := app.Listen(addr); err != nil {
		logger.Fatal(err, "%v: server error", config.ModuleServer)
	}
}
