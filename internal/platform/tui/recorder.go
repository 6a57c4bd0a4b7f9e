package tui

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tilematch/internal/games/tilematch/core"
	"github.com/vovakirdan/tilematch/internal/storage"
)

// ResultRecorder persists finished levels and campaign runs as snapshots
// arrive. A run gets a fresh session ID every time it restarts.
type ResultRecorder struct {
	store    *storage.Store
	campaign string
	logger   *log.Logger

	sessionID string
	saved     int  // Results already written for this run
	runSaved  bool // Campaign total written
}

// NewResultRecorder creates a recorder. A nil store makes it a no-op.
func NewResultRecorder(store *storage.Store, campaign string, logger *log.Logger) *ResultRecorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &ResultRecorder{
		store:     store,
		campaign:  campaign,
		logger:    logger,
		sessionID: uuid.NewString(),
	}
}

// SessionID returns the ID of the current run.
func (r *ResultRecorder) SessionID() string {
	return r.sessionID
}

// NewRun starts a new run, e.g. after the game was reset.
func (r *ResultRecorder) NewRun() {
	r.sessionID = uuid.NewString()
	r.saved = 0
	r.runSaved = false
}

// Observe writes any results in snap not yet stored. Storage errors are
// logged and otherwise ignored: play continues without persistence.
func (r *ResultRecorder) Observe(snap core.Snapshot) {
	if len(snap.Results) < r.saved {
		// The session was reset behind our back.
		r.NewRun()
	}

	for _, res := range snap.Results[r.saved:] {
		if r.store != nil {
			_, err := r.store.SaveLevelResult(storage.LevelRecord{
				SessionID: r.sessionID,
				Campaign:  r.campaign,
				Level:     res.Level + 1,
				Score:     res.Score,
				Moves:     res.Moves,
				Outcome:   string(res.Outcome),
			})
			if err != nil {
				r.logger.Warn("could not save level result", "error", err)
			}
		}
		r.saved++
	}

	if snap.State != core.StateAllLevelsComplete || r.runSaved {
		return
	}
	r.runSaved = true

	entry := storage.ScoreEntry{
		Campaign:  r.campaign,
		SessionID: r.sessionID,
		Levels:    len(snap.Results),
	}
	for _, res := range snap.Results {
		entry.Score += res.Score
		if res.Outcome == core.OutcomeWon {
			entry.Won++
		}
	}
	if r.store == nil || entry.Score == 0 {
		return
	}
	if _, err := r.store.SaveScore(entry); err != nil {
		r.logger.Warn("could not save score", "error", err)
		return
	}
	r.logger.Info("run recorded",
		"campaign", r.campaign,
		"session", r.sessionID,
		"score", entry.Score,
		"won", entry.Won,
	)
}
