package ports

import "errors"

// ErrNoAtlas is returned by queries that need an atlas before one is loaded.
var ErrNoAtlas = errors.New("no atlas loaded")
