package main

import (
	"flag"

	"llm-quiz/config"
	"llm-quiz/internal/database"
	"llm-quiz/internal/database/model"
	"llm-quiz/pkg/logger"

	"gorm.io/gen"
)

// Generates type-safe query builders for the schema models. Run via
// `go run ./cmd/gen` after a model change; the output is committed.
func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	outPath := flag.String("out", "internal/database/query", "output directory for generated code")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		logger.Fatal(err, "%v: config load failed", config.ModuleSetting)
	}

	db, err := database.GetDB()
	if err != nil {
		logger.Fatal(err, "%v: database connect failed", config.ModuleDatabase)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath: *outPath,
		Mode:    gen.WithDefaultQuery | gen.WithQueryInterface,
	})
	g.UseDB(db)
	g.ApplyBasic(
		model.User{},
		model.Document{},
		model.Chunk{},
		model.Question{},
		model.Room{},
		model.RoomQuestion{},
		model.RoomAnswer{},
		model.Score{},
	)
	g.Execute()
}
