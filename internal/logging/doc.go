// Package logging provides zerolog-based structured logging for contentlist.
//
// Loggers are configured once per CLI invocation from the logging section of
// the configuration file, then carried through the call graph on the context:
//   - NewLoggerWithPath builds the root logger and reports where output goes
//   - ComponentLogger tags a logger with a component name
//   - FromContext returns the context logger (or the process default)
//   - trace IDs (ULIDs) tie together the log lines of one command run
package logging
