package logger

import (
	"go.uber.org/zap"
)

// Log is the process-wide logger. Packages that run before Init (tests,
// helpers constructed directly) get a no-op logger instead of a nil deref.
var Log *zap.SugaredLogger = zap.NewNop().Sugar()

func Init() {
	l, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize zap logger: " + err.Error())
	}
	Log = l.Sugar()
}

// InitDevelopment switches to the human-readable console encoder.
func InitDevelopment() {
	l, err := zap.NewDevelopment()
	if err != nil {
		panic("failed to initialize zap logger: " + err.Error())
	}
	Log = l.Sugar()
}
