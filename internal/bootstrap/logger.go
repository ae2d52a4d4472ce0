package bootstrap

import "go.uber.org/zap"

// NewLogger returns a JSON production logger for "production" and a
// console development logger otherwise, and installs it as the global.
func NewLogger(appEnv string) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if appEnv == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger.With(zap.String("env", appEnv)), nil
}
