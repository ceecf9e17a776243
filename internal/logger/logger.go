package logger

import (
	"go-hr/internal/config"
	"go-hr/internal/database"

	"go.uber.org/zap"
)

// NewLogger builds the application logger: console output plus the async
// Mongo writer so operators can query recent log lines from the console.
func NewLogger(cfg *config.Config, mongodb *database.MongodbDB) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Environment == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.EncoderConfig.FunctionKey = "func"

	baseLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	writer := NewLogWriter(mongodb, cfg)
	core := NewMongoCore(baseLogger.Core(), writer)

	return zap.New(core, zap.AddCaller()), nil
}
