package database

import "errors"

// ErrNotReady wraps connectivity failures from Ping.
var ErrNotReady = errors.New("database not ready")
