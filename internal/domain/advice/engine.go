package advice

import (
	"fmt"
	"sort"
	"strings"

	"github.com/phrazzld/karuta-api/internal/domain"
)

// Kind identifies an advice rule.
type Kind string

// Advice rules, in presentation order.
const (
	KindSingleNotLow     Kind = "single-decisive-not-low"
	KindTwoCharTooHigh   Kind = "two-char-too-high"
	KindSiblingsSameZone Kind = "siblings-same-zone"
	KindSiblingsSameSide Kind = "siblings-same-side"
	KindLargeNotAtEdge   Kind = "large-not-at-edge"
)

// Finding is one heuristic warning about a layout.
type Finding struct {
	Kind    Kind          `json:"kind"`
	Message string        `json:"message"`
	CardIDs []string      `json:"card_ids"`
	Zones   []domain.Zone `json:"zones,omitempty"`
}

// Advice is the result of evaluating a complete layout. Balanced is true
// only when no rule fired.
type Advice struct {
	Findings []Finding `json:"findings"`
	Balanced bool      `json:"balanced"`
}

// Engine evaluates layouts against the advice rules.
type Engine struct {
	params Params
}

// NewEngine creates an engine with the given parameters.
func NewEngine(params Params) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Engine{params: params}, nil
}

// NewDefaultEngine creates an engine with the default parameters.
func NewDefaultEngine() *Engine {
	return &Engine{params: NewDefaultParams()}
}

// Params returns the engine's parameters.
func (e *Engine) Params() Params { return e.params }

// Evaluate checks a board against every rule. An incomplete board yields a
// *domain.IncompleteAssignmentError instead of advice.
func (e *Engine) Evaluate(board *domain.BoardAssignment, catalog *domain.Catalog) (Advice, error) {
	if err := board.Progress(); err != nil {
		return Advice{}, err
	}
	return e.EvaluatePlacement(board.Snapshot(), catalog)
}

// placed is a card together with its zone and position in that zone.
type placed struct {
	card *domain.Card
	zone domain.Zone
	pos  int
	// last is true when the card is the final element of its zone.
	last bool
}

// EvaluatePlacement runs the rules over a placement. It is a pure function
// of its inputs: equal inputs give equal findings in equal order.
func (e *Engine) EvaluatePlacement(p domain.Placement, catalog *domain.Catalog) (Advice, error) {
	cards := make([]placed, 0, domain.SelectionSize)
	for _, z := range domain.AllZones {
		for i, id := range p[z] {
			card, ok := catalog.Get(id)
			if !ok {
				return Advice{}, fmt.Errorf("%w: %q", domain.ErrCardNotInCatalog, id)
			}
			cards = append(cards, placed{card: card, zone: z, pos: i, last: i == len(p[z])-1})
		}
	}

	var findings []Finding
	for _, rule := range []func([]placed) *Finding{
		e.singleNotLow,
		e.twoCharTooHigh,
		e.siblingsSameZone,
		e.siblingsSameSide,
		e.largeNotAtEdge,
	} {
		if f := rule(cards); f != nil {
			findings = append(findings, *f)
		}
	}

	return Advice{Findings: findings, Balanced: len(findings) == 0}, nil
}

func (e *Engine) singleNotLow(cards []placed) *Finding {
	var ids []string
	var zones zoneSet
	for _, c := range cards {
		if c.card.IsSingle() && !c.zone.IsLow() {
			ids = append(ids, c.card.ID)
			zones.add(c.zone)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return &Finding{
		Kind: KindSingleNotLow,
		Message: fmt.Sprintf(
			"Single-character cards (%s) are outside the bottom row. Move them to left-low or right-low, where you react fastest.",
			strings.Join(ids, ", ")),
		CardIDs: ids,
		Zones:   zones.list(),
	}
}

func (e *Engine) twoCharTooHigh(cards []placed) *Finding {
	total, lower := 0, 0
	var high []string
	var zones zoneSet
	for _, c := range cards {
		if !c.card.IsDouble() {
			continue
		}
		total++
		if c.zone.Tier() == domain.TierTop {
			high = append(high, c.card.ID)
			zones.add(c.zone)
		} else {
			lower++
		}
	}
	if total == 0 || !e.params.TwoCharMidLowRatio.atMost(lower, total) {
		return nil
	}
	return &Finding{
		Kind: KindTwoCharTooHigh,
		Message: fmt.Sprintf(
			"Only %d of %d two-character cards are in the middle or bottom rows. Bring more of them down from the top row.",
			lower, total),
		CardIDs: high,
		Zones:   zones.list(),
	}
}

// siblingGroups groups cards that share a first character, keeping only
// keys with more than one card. Keys are ordered by first appearance.
func siblingGroups(cards []placed) ([]rune, map[rune][]placed) {
	groups := make(map[rune][]placed)
	var order []rune
	for _, c := range cards {
		key := c.card.SiblingKey()
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], c)
	}

	keys := order[:0]
	for _, key := range order {
		if len(groups[key]) > 1 {
			keys = append(keys, key)
		}
	}
	return keys, groups
}

func (e *Engine) siblingsSameZone(cards []placed) *Finding {
	keys, groups := siblingGroups(cards)

	var ids, parts []string
	var zones zoneSet
	for _, key := range keys {
		var perZone [domain.ZoneCount][]string
		for _, c := range groups[key] {
			perZone[c.zone] = append(perZone[c.zone], c.card.ID)
		}
		for _, z := range domain.AllZones {
			if len(perZone[z]) < 2 {
				continue
			}
			ids = append(ids, perZone[z]...)
			zones.add(z)
			parts = append(parts, fmt.Sprintf("%c in %s", key, z))
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return &Finding{
		Kind: KindSiblingsSameZone,
		Message: fmt.Sprintf(
			"Sibling cards share a zone (%s). Separate them to reduce the risk of touching the wrong card.",
			strings.Join(parts, "; ")),
		CardIDs: ids,
		Zones:   zones.list(),
	}
}

func (e *Engine) siblingsSameSide(cards []placed) *Finding {
	keys, groups := siblingGroups(cards)

	var ids, parts []string
	var zones zoneSet
	for _, key := range keys {
		var perSide [2][]placed
		for _, c := range groups[key] {
			perSide[c.zone.Side()] = append(perSide[c.zone.Side()], c)
		}
		for side, members := range perSide {
			if len(members) < e.params.SideClusterMin {
				continue
			}
			for _, c := range members {
				ids = append(ids, c.card.ID)
				zones.add(c.zone)
			}
			parts = append(parts, fmt.Sprintf("%d×%c on the %s", len(members), key, domain.Side(side)))
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return &Finding{
		Kind: KindSiblingsSameSide,
		Message: fmt.Sprintf(
			"Sibling cards cluster on one side (%s). Split them between left and right.",
			strings.Join(parts, "; ")),
		CardIDs: ids,
		Zones:   zones.list(),
	}
}

func (e *Engine) largeNotAtEdge(cards []placed) *Finding {
	var ids []string
	var zones zoneSet
	for _, c := range cards {
		if !c.card.IsLargeAt(e.params.LargeClassMin) {
			continue
		}
		// A large card outside the bottom rows is reported by the same rule.
		if c.zone.IsLow() && (c.pos == 0 || c.last) {
			continue
		}
		ids = append(ids, c.card.ID)
		zones.add(c.zone)
	}
	if len(ids) == 0 {
		return nil
	}
	return &Finding{
		Kind: KindLargeNotAtEdge,
		Message: fmt.Sprintf(
			"Large cards (%s) are not at the outer edge of a bottom zone. Put them first or last in left-low or right-low so they are easy to cover.",
			strings.Join(ids, ", ")),
		CardIDs: ids,
		Zones:   zones.list(),
	}
}

// zoneSet collects zones without duplicates.
type zoneSet map[domain.Zone]struct{}

func (s *zoneSet) add(z domain.Zone) {
	if *s == nil {
		*s = make(zoneSet)
	}
	(*s)[z] = struct{}{}
}

func (s zoneSet) list() []domain.Zone {
	out := make([]domain.Zone, 0, len(s))
	for z := range s {
		out = append(out, z)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
