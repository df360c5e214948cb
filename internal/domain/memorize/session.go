package memorize

import (
	"fmt"
	"sort"

	"github.com/phrazzld/karuta-api/internal/domain"
)

// Mode is the state of a memorization session.
type Mode string

// Session modes.
const (
	ModeWaiting    Mode = "waiting"
	ModeMemorizing Mode = "memorizing"
	ModeTesting    Mode = "testing"
)

// Band is the presentation tier of a score.
type Band string

// Score bands; the numeric total is what callers should test against.
const (
	BandPerfect  Band = "perfect"
	BandNear     Band = "near-complete"
	BandPractice Band = "needs-practice"
)

// nearThreshold is the lowest score shown as near-complete.
const nearThreshold = 20

// BandFor returns the band of a total. Bounds are inclusive.
func BandFor(total int) Band {
	switch {
	case total >= domain.SelectionSize:
		return BandPerfect
	case total >= nearThreshold:
		return BandNear
	default:
		return BandPractice
	}
}

// Recall is the player's answer: the cards they believe are in each zone.
// Order and repeats are ignored.
type Recall map[domain.Zone][]string

// ZoneMismatch lists the differences between truth and recall for one zone.
type ZoneMismatch struct {
	Zone       domain.Zone `json:"zone"`
	Missing    []string    `json:"missing"`
	Extraneous []string    `json:"extraneous"`
}

// Score is the result of comparing a recall with the memorized layout.
type Score struct {
	TotalCorrect int                   `json:"total_correct"`
	PerZone      [domain.ZoneCount]int `json:"per_zone"`
	Mismatches   []ZoneMismatch        `json:"mismatches"`
	Band         Band                  `json:"band"`
}

// Perfect reports whether every card was recalled in its zone.
func (s Score) Perfect() bool { return s.TotalCorrect == domain.SelectionSize }

// Session drives a memorize/test cycle over a board. It is owned by a single
// workspace and is not safe for concurrent use.
type Session struct {
	mode   Mode
	truth  domain.Placement
	result *Score
}

// NewSession returns a session in the waiting state.
func NewSession() *Session {
	return &Session{mode: ModeWaiting}
}

// Mode returns the current state.
func (s *Session) Mode() Mode { return s.mode }

// Truth returns a copy of the layout under test. It is empty unless testing.
func (s *Session) Truth() domain.Placement { return s.truth.Clone() }

// LastResult returns the most recent score of the current test, or nil.
func (s *Session) LastResult() *Score {
	if s.result == nil {
		return nil
	}
	r := *s.result
	return &r
}

// StartMemorize shows the layout for study. It can be called from any state
// and requires a complete board.
func (s *Session) StartMemorize(board *domain.BoardAssignment) error {
	if err := board.Progress(); err != nil {
		return err
	}
	s.mode = ModeMemorizing
	s.truth = domain.Placement{}
	s.result = nil
	return nil
}

// StartTest freezes the current board as the truth to test against and
// clears any previous result. Later edits to the board do not affect it.
func (s *Session) StartTest(board *domain.BoardAssignment) error {
	if err := board.Progress(); err != nil {
		return err
	}
	s.mode = ModeTesting
	s.truth = board.Snapshot()
	s.result = nil
	return nil
}

// Submit scores a recall against the truth. The session stays in testing so
// the player can try again. A recall naming a card outside the layout, or the
// same card in two zones, is rejected with domain.ErrInvalidCard and leaves the
// last result untouched.
func (s *Session) Submit(recall Recall) (Score, error) {
	if s.mode != ModeTesting {
		return Score{}, fmt.Errorf("%w: session is %s", domain.ErrNotTesting, s.mode)
	}

	for z := range recall {
		if !z.Valid() {
			return Score{}, domain.NewValidationError("zone", fmt.Sprintf("has invalid value %d", int(z)), domain.ErrValidation)
		}
	}

	if err := s.checkRecall(recall); err != nil {
		return Score{}, err
	}

	score := Compare(s.truth, recall)
	s.result = &score
	return score, nil
}

// checkRecall ensures every recalled card belongs to the truth and is
// claimed by a single zone. Repeats within one zone are allowed.
func (s *Session) checkRecall(recall Recall) error {
	inTruth := make(map[string]struct{}, domain.SelectionSize)
	for _, z := range domain.AllZones {
		for _, id := range s.truth[z] {
			inTruth[id] = struct{}{}
		}
	}

	claimed := make(map[string]domain.Zone)
	for _, z := range domain.AllZones {
		for _, id := range recall[z] {
			if _, ok := inTruth[id]; !ok {
				return fmt.Errorf("%w: %q is not part of the layout under test", domain.ErrInvalidCard, id)
			}
			if prev, ok := claimed[id]; ok && prev != z {
				return fmt.Errorf("%w: %q is recalled in both %s and %s", domain.ErrInvalidCard, id, prev, z)
			}
			claimed[id] = z
		}
	}
	return nil
}

// Cancel abandons the session and returns to waiting.
func (s *Session) Cancel() {
	s.mode = ModeWaiting
	s.truth = domain.Placement{}
	s.result = nil
}

// Compare scores a recall against a truth placement zone by zone.
func Compare(truth domain.Placement, recall Recall) Score {
	var score Score
	for _, z := range domain.AllZones {
		want := toSet(truth[z])
		got := toSet(recall[z])

		var missing, extra []string
		for id := range want {
			if _, ok := got[id]; ok {
				score.PerZone[z]++
			} else {
				missing = append(missing, id)
			}
		}
		for id := range got {
			if _, ok := want[id]; !ok {
				extra = append(extra, id)
			}
		}
		score.TotalCorrect += score.PerZone[z]

		if len(missing) > 0 || len(extra) > 0 {
			sort.Strings(missing)
			sort.Strings(extra)
			score.Mismatches = append(score.Mismatches, ZoneMismatch{
				Zone:       z,
				Missing:    nonNil(missing),
				Extraneous: nonNil(extra),
			})
		}
	}
	score.Band = BandFor(score.TotalCorrect)
	return score
}

func toSet(ids []string) map[string]struct{} {
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
