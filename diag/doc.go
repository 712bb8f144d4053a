// SPDX-License-Identifier: MIT

// Package diag carries non-fatal diagnostics out of the grouping pipeline.
//
// Components never log through a process-wide logger. Each call that can
// produce a diagnostic receives a Sink; callers choose where diagnostics go:
//
//   - Discard drops them (the default everywhere);
//   - FromLogger forwards them to a *slog.Logger;
//   - Recorder keeps them in memory for inspection;
//   - Tee fans one diagnostic out to several sinks.
//
// Every Diagnostic carries a stable Code so callers can filter without
// matching message text.
package diag
