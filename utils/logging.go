package utils

import (
	"io"

	"github.com/ethereum/go-ethereum/log"
)

// SetupLogger installs the root logger for a command and returns a child logger
// tagged with the service name.
func SetupLogger(w io.Writer, service string, debug, logJSON bool) log.Logger {
	logLevel := log.LevelInfo
	if debug {
		logLevel = log.LevelDebug
	}

	var handler = log.JSONHandlerWithLevel(w, logLevel)
	if !logJSON {
		handler = log.NewTerminalHandlerWithLevel(w, logLevel, false)
	}
	log.SetDefault(log.NewLogger(handler))

	return log.New("service", service)
}
