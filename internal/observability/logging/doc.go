// Package logging builds the slog loggers used across postboard and carries
// them through request contexts.
//
// Example usage:
//
//	logger := logging.New(logging.FormatJSON, cfg.LogLevel, os.Stdout)
//	slog.SetDefault(logger)
//
//	func handle(ctx context.Context) {
//	    logging.WithRequestID(ctx, logging.FromContext(ctx)).Info("select", slog.String("user_id", id))
//	}
package logging
