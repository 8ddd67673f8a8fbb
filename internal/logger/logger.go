package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a human-readable development logger or a JSON production logger.
func New(debugMode bool) (l *zap.Logger, err error) {
	if debugMode {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	return l, nil
}
