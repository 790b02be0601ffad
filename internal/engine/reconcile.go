package engine

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/scoreline/tracker/internal/domain"
)

// Batch is one reconciliation invocation's input snapshot.
type Batch struct {
	// Plays is the recently-fetched batch, newest-first as the source
	// returns it.
	Plays []domain.PlayedScore
	// Goals are the user's active (non-completed) goals with criteria.
	Goals []domain.Goal
	// Ratings is the current per-category rating snapshot.
	Ratings domain.RatingVector
	// Seen holds external score ids already recorded; those plays are
	// skipped so a re-fetch is idempotent.
	Seen map[int64]bool
}

// ContributionDraft links a newly processed play to a goal it satisfied.
type ContributionDraft struct {
	GoalID  uuid.UUID
	PlayID  uuid.UUID
	ScoreID int64
}

// Result carries every delta computed by one reconcile run. The caller is
// expected to apply all of it atomically; the engine itself writes nothing.
type Result struct {
	Updated        bool
	Feed           []domain.FeedItem
	Ratings        domain.RatingVector
	Records        []domain.PlayRecord
	GoalUpdates    []domain.GoalProgressUpdate
	NewlyCompleted []uuid.UUID
	Contributions  []ContributionDraft
	Snapshots      []domain.GoalSnapshot
	// FCHistogram counts the batch's strict perfect combos by integer star
	// rating.
	FCHistogram map[int]int
}

// Reconcile processes a batch of recently-fetched plays against the current
// goal and rating state. Plays run oldest-first so chronological streak
// semantics hold; already-seen plays are skipped. Each new play is classified,
// matched against every active non-paused goal, folded into its rating
// bucket, and emitted as a history row plus feed entry.
func Reconcile(cfg ClassifierConfig, batch Batch, now time.Time) Result {
	res := Result{
		Ratings:     batch.Ratings,
		FCHistogram: make(map[int]int),
	}

	// Working copies: the engine never mutates the caller's snapshot.
	goals := make([]domain.Goal, len(batch.Goals))
	copy(goals, batch.Goals)
	before := make(map[uuid.UUID]domain.Goal, len(batch.Goals))
	for _, g := range batch.Goals {
		before[g.ID] = g
	}

	processed := make(map[int64]bool, len(batch.Plays))

	// Oldest first.
	for i := len(batch.Plays) - 1; i >= 0; i-- {
		play := batch.Plays[i]
		if play.ScoreID == 0 || batch.Seen[play.ScoreID] || processed[play.ScoreID] {
			continue
		}
		processed[play.ScoreID] = true
		res.Updated = true

		cp := cfg.ClassifyPlay(play)
		rec := cp.Record()
		rec.ID = uuid.New()

		for gi := range goals {
			g := &goals[gi]
			if g.Paused || g.Completed {
				continue
			}
			matched := MatchGoal(cp, g.Criteria)
			contributed, completedNow := ApplyProgress(g, matched, now)
			if contributed {
				res.Contributions = append(res.Contributions, ContributionDraft{
					GoalID:  g.ID,
					PlayID:  rec.ID,
					ScoreID: play.ScoreID,
				})
			}
			if completedNow {
				res.NewlyCompleted = append(res.NewlyCompleted, g.ID)
			}
		}

		UpdateRating(&res.Ratings, cp.Category, cp.EffectiveStars)

		if rec.IsPerfect {
			res.FCHistogram[int(math.Floor(rec.Stars))]++
		}

		res.Records = append(res.Records, rec)
		res.Feed = append(res.Feed, domain.FeedItemFromRecord(rec, play.Rank))
	}

	for _, g := range goals {
		prev := before[g.ID]
		if g.Progress != prev.Progress || g.Completed != prev.Completed {
			res.GoalUpdates = append(res.GoalUpdates, domain.GoalProgressUpdate{
				GoalID:      g.ID,
				Progress:    g.Progress,
				Completed:   g.Completed,
				CompletedAt: g.CompletedAt,
			})
		}
		res.Snapshots = append(res.Snapshots, domain.GoalSnapshot{
			ID:        g.ID,
			Current:   g.Progress,
			Target:    g.Target,
			Completed: g.Completed,
		})
	}

	return res
}
