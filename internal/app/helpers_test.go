package app_test

import (
	"time"

	"casper/internal/watch"

	"github.com/fsnotify/fsnotify"
)

func watchChange(dir string) watch.Change {
	return watch.Change{Dir: dir, Ops: fsnotify.Create, Timestamp: time.Now()}
}
