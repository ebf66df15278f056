package main

import "log"

// migrationLogger adapts a standard library log.Logger to Goose's logger
// interface (Printf and Fatalf) so migration chatter lands in the rotating
// debug log instead of the alt screen.
type migrationLogger struct {
	l *log.Logger
}

func (m *migrationLogger) Printf(format string, v ...interface{}) {
	if m == nil || m.l == nil {
		log.Printf(format, v...)
		return
	}
	m.l.Printf("goose: "+format, v...)
}

func (m *migrationLogger) Fatalf(format string, v ...interface{}) {
	if m == nil || m.l == nil {
		log.Fatalf(format, v...)
		return
	}
	m.l.Fatalf("goose: "+format, v...)
}
