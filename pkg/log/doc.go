// Package log provides the logging abstraction used by loopengine.
//
// The Logger interface can be implemented by any logging library. A zerolog
// adapter is provided for console output and a no-op logger for embedding
// and tests.
//
// Use the zerolog adapter:
//
//	logger := log.NewZerologAdapter()
//
// Or wrap an existing zerolog.Logger:
//
//	logger := log.NewZerologAdapterWithLogger(zl)
package log
