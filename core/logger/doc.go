// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and an optional file sink that serves as the
// persisted run log.
//
// # Run Correlation
//
// The WithRun helper attaches the reconciliation run's identifier to a
// logger, ensuring that all log lines belonging to one run can be correlated
// after the fact.
package logger
