package core

// Logger is implemented by every logging backend of the app.
// args may carry errors, extra maps or a Person to attach to the report.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Person identifies who an error report is about.
type Person struct {
	ID   string
	Name string
}
