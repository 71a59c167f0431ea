package service

import "go.uber.org/zap"

func audit(logger *zap.Logger, event string, fields ...zap.Field) {
	if logger == nil {
		logger = zap.L()
	}
	logger.Info("audit", append([]zap.Field{zap.String("event", event)}, fields...)...)
}
