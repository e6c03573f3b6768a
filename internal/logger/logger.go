// Package logger builds the zap logger shared by the commands.
package logger

import (
	"go.uber.org/zap"
)

// New returns a development logger (console encoding, debug level, stack
// traces on warnings) when debug is set, and a production logger otherwise.
func New(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
