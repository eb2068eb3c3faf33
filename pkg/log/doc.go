/*
Package log provides structured logging for TutorConnect using zerolog.

A single global logger is initialized once by the embedding process and
consumed through package-level helpers or component-scoped child loggers.

# Usage

Initialization:

	log.Init(log.Config{
		Level:      log.InfoLevel,
		JSONOutput: false,
	})

Component loggers:

	logger := log.WithComponent("booking")
	logger.Info().Uint64("booking_id", b.ID).Msg("booking confirmed")

Correlated fields:

	log.WithConversationID(conv.ID).Debug().Msg("typing status updated")

# Output Modes

Console output (default) uses zerolog.ConsoleWriter with RFC3339 timestamps
for human consumption during development. JSON output emits one structured
object per line for log aggregation.

# Conventions

  - component: package emitting the entry (booking, message, storage)
  - booking_id, conversation_id: correlation fields for workflow tracing
  - Err(err) on every error-level entry

# See Also

  - pkg/booking and pkg/message for the main call sites
  - zerolog documentation: https://github.com/rs/zerolog
*/
package log
