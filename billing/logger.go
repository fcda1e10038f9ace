package billing

import (
	"encore.dev/rlog"
)

// rlogLogger adapts rlog to the key/value logger interface shared by the Temporal SDK
// and the idempotency coordinator.
type rlogLogger struct{}

func (rlogLogger) Debug(msg string, keyvals ...interface{}) { rlog.Debug(msg, keyvals...) }
func (rlogLogger) Info(msg string, keyvals ...interface{})  { rlog.Info(msg, keyvals...) }
func (rlogLogger) Warn(msg string, keyvals ...interface{})  { rlog.Warn(msg, keyvals...) }
func (rlogLogger) Error(msg string, keyvals ...interface{}) { rlog.Error(msg, keyvals...) }
