package repository

import (
	"sync/atomic"
)

// defaultRepo holds the process-wide default repository targeted by the
// package-level configuration entry points.
var defaultRepo atomic.Value

// repoHolder keeps atomic.Value happy across different Repository
// implementations.
type repoHolder struct {
	repo Repository
}

func init() {
	defaultRepo.Store(repoHolder{repo: New("default")})
}

// Default returns the process default repository.
func Default() Repository {
	return defaultRepo.Load().(repoHolder).repo
}

// SetDefault replaces the process default repository. A nil repo is ignored.
func SetDefault(repo Repository) {
	if repo == nil {
		return
	}
	defaultRepo.Store(repoHolder{repo: repo})
}
