package globalconf

import (
	"context"
	"time"

	log "github.com/hashicorp/go-hclog"
)

// Refresher reloads the snapshot file on an interval and swaps it into the
// store. A failed reload keeps the previous snapshot: directory staleness is
// tolerated, losing the directory mid-flight is not.
type Refresher struct {
	store    *Store
	path     string
	interval time.Duration
	logger   log.Logger
}

func NewRefresher(store *Store, path string, interval time.Duration, logger log.Logger) *Refresher {
	return &Refresher{
		store:    store,
		path:     path,
		interval: interval,
		logger:   logger,
	}
}

// RefreshOnce loads the snapshot file once and installs it.
func (r *Refresher) RefreshOnce() error {
	snapshot, err := LoadFile(r.path)
	if err != nil {
		return err
	}
	r.store.Replace(snapshot)
	r.logger.Debug("global configuration refreshed",
		"instances", len(snapshot.Instances),
		"members", len(snapshot.Members),
		"global_groups", len(snapshot.Groups))
	return nil
}

// Run refreshes on the configured interval until ctx is done.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.RefreshOnce(); err != nil {
				r.logger.Error("global configuration refresh failed", "error", err)
			}
		}
	}
}
