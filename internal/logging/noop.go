package logging

// NewNop returns a logger that discards everything. Used in tests and in
// callers that have not wired logging yet.
func NewNop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func (n nopLogger) WithComponent(string) Logger { return n }
func (n nopLogger) WithTraceID(string) Logger   { return n }
