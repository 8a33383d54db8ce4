// Package logger configures the process-wide logrus logger.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Init configures the standard logger from the -v occurrence count:
// 0 errors only, 1 adds warnings, 2 info, 3 and up debug.
func Init(verbosity int) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetOutput(os.Stderr)

	switch verbosity {
	case 0:
		log.SetLevel(logrus.ErrorLevel)
	case 1:
		log.SetLevel(logrus.WarnLevel)
	case 2:
		log.SetLevel(logrus.InfoLevel)
	default:
		log.SetLevel(logrus.DebugLevel)
	}

	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return log
}
