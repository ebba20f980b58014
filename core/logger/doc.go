// Package logger provides slog construction and attribute helpers shared by
// the security components.
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithJSONFormatter(),
//		logger.WithAttr(slog.String("service", "api")),
//	)
//
//	log.Warn("session cookie rejected",
//		logger.Key("userProfiles"),
//		logger.Error(err),
//	)
//
// Attribute helpers return an empty slog.Attr for zero inputs, so calls like
// log.Info("msg", logger.Error(err)) need no nil checks. slog drops empty
// attributes from the output.
//
// Discard returns a logger that drops everything. Components default to it
// when no logger is configured.
package logger
