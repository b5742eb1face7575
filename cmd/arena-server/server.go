package main

import (
	"context"
	"time"

	"github.com/zaikaman/KaspaClash-sub007/internal/logging"
	"github.com/zaikaman/KaspaClash-sub007/internal/service"
	"github.com/zaikaman/KaspaClash-sub007/internal/storage"
)

// staleLobbyAge is how long an unjoined lobby survives before the scanner
// expires it.
const staleLobbyAge = 10 * time.Minute

// startTimeoutScanner periodically forces the turn forward on matches
// whose move deadline has passed and expires lobbies nobody joined.
// Processing is sequential, which keeps the DB safe under SQLite.
func startTimeoutScanner(repo storage.Repository, svc *service.Service) {
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()

			matches, err := repo.FindTimedOutMatches(now)
			if err != nil {
				logging.Error("timeout scanner failed", err, nil)
				continue
			}
			for i := range matches {
				if err := svc.HandleTimedOutMatch(context.Background(), &matches[i]); err != nil {
					logging.Error("failed to resolve timed-out match", err, nil)
				}
			}

			stale, err := repo.FindStaleWaitingMatches(now.Add(-staleLobbyAge))
			if err != nil {
				logging.Error("stale lobby scanner failed", err, nil)
				continue
			}
			for i := range stale {
				if err := svc.ExpireWaitingMatch(&stale[i]); err != nil {
					logging.Error("failed to expire lobby", err, nil)
				}
			}
		}
	}()
}
