package db

import "github.com/quipucords/quipucords/internal/logging"

func dbLogf(format string, v ...any) {
	logging.Debugf(format, v...)
}
