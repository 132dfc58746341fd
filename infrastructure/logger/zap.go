package logger

import (
	"os"

	"go.uber.org/zap"
)

var Logger *zap.Logger

func InitializeLogger() {
	var err error
	if os.Getenv("GIN_MODE") == "release" {
		Logger, err = zap.NewProduction()
	} else {
		Logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
}
