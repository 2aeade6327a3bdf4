// Package roster keeps the ordered list of participants in a room together
// with their scores and role flags.
//
// Join order is the rotation order for drawing turns. Score order is only
// used for display.
package roster

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Roster is an ordered collection of participants. It is not safe for
// concurrent use; the engine owning it serializes access.
type Roster struct {
	participants []*Participant
	joined       int
	newID        func() string
}

// New creates an empty roster that assigns uuid identifiers.
func New() *Roster {
	return &Roster{newID: uuid.NewString}
}

// NewWithIDs creates an empty roster using idgen for identifiers. Handy for
// deterministic tests.
func NewWithIDs(idgen func() string) *Roster {
	return &Roster{newID: idgen}
}

// Add appends a participant and returns it. Blank names are replaced by a
// default "Speler N" name and blank avatars by the first default avatar.
func (r *Roster) Add(np NewParticipant) Participant {
	r.joined++

	name := strings.TrimSpace(np.Name)
	if name == "" {
		name = fmt.Sprintf("Speler %d", r.joined)
	}
	avatar := np.Avatar
	if avatar == "" {
		avatar = Avatars[0]
	}

	p := &Participant{
		ID:     r.newID(),
		Name:   name,
		Avatar: avatar,
		IsHost: np.IsHost,
		IsBot:  np.IsBot,
	}
	r.participants = append(r.participants, p)
	return *p
}

// Remove deletes the participant with the given id. It returns the removed
// participant and the position it occupied. Removing an absent id is a no-op
// that reports false.
func (r *Roster) Remove(id string) (Participant, int, bool) {
	i := r.IndexOf(id)
	if i < 0 {
		return Participant{}, -1, false
	}
	removed := *r.participants[i]
	r.participants = append(r.participants[:i], r.participants[i+1:]...)
	return removed, i, true
}

// Find looks a participant up by id.
func (r *Roster) Find(id string) (Participant, bool) {
	i := r.IndexOf(id)
	if i < 0 {
		return Participant{}, false
	}
	return *r.participants[i], true
}

// IndexOf returns the join-order position of id, or -1.
func (r *Roster) IndexOf(id string) int {
	for i, p := range r.participants {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// At returns the participant at join-order position i.
func (r *Roster) At(i int) Participant {
	return *r.participants[i]
}

// Len returns the number of participants.
func (r *Roster) Len() int {
	return len(r.participants)
}

// Participants returns a copy of all participants in join order.
func (r *Roster) Participants() []Participant {
	out := make([]Participant, len(r.participants))
	for i, p := range r.participants {
		out[i] = *p
	}
	return out
}

// ByScore returns a copy of all participants sorted by descending score.
// Equal scores keep join order.
func (r *Roster) ByScore() []Participant {
	out := r.Participants()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Leader returns the participant with the highest score. Ties go to whoever
// joined first.
func (r *Roster) Leader() (Participant, bool) {
	if len(r.participants) == 0 {
		return Participant{}, false
	}
	best := r.participants[0]
	for _, p := range r.participants[1:] {
		if p.Score > best.Score {
			best = p
		}
	}
	return *best, true
}

// Host returns the current host.
func (r *Roster) Host() (Participant, bool) {
	for _, p := range r.participants {
		if p.IsHost {
			return *p, true
		}
	}
	return Participant{}, false
}

// SetHost makes id the only host.
func (r *Roster) SetHost(id string) bool {
	if r.IndexOf(id) < 0 {
		return false
	}
	for _, p := range r.participants {
		p.IsHost = p.ID == id
	}
	return true
}

// AddScore adds points to a participant. Negative amounts are ignored so
// scores never decrease.
func (r *Roster) AddScore(id string, points int) bool {
	i := r.IndexOf(id)
	if i < 0 || points < 0 {
		return false
	}
	r.participants[i].Score += points
	return true
}

// SetDrawer marks id as the only drawing participant.
func (r *Roster) SetDrawer(id string) bool {
	if r.IndexOf(id) < 0 {
		return false
	}
	for _, p := range r.participants {
		p.IsDrawing = p.ID == id
	}
	return true
}

// ClearDrawer marks every participant as not drawing.
func (r *Roster) ClearDrawer() {
	for _, p := range r.participants {
		p.IsDrawing = false
	}
}

// Drawer returns the participant currently drawing.
func (r *Roster) Drawer() (Participant, bool) {
	for _, p := range r.participants {
		if p.IsDrawing {
			return *p, true
		}
	}
	return Participant{}, false
}

// ResetGuesses clears HasGuessed for everyone.
func (r *Roster) ResetGuesses() {
	for _, p := range r.participants {
		p.HasGuessed = false
	}
}

// MarkGuessed records a correct guess for id.
func (r *Roster) MarkGuessed(id string) bool {
	i := r.IndexOf(id)
	if i < 0 {
		return false
	}
	r.participants[i].HasGuessed = true
	return true
}

// AllGuessed reports whether every participant that is not drawing has
// guessed. It is false when there is nobody to guess.
func (r *Roster) AllGuessed() bool {
	guessers := 0
	for _, p := range r.participants {
		if p.IsDrawing {
			continue
		}
		guessers++
		if !p.HasGuessed {
			return false
		}
	}
	return guessers > 0
}

// Clone returns a deep copy of the roster.
func (r *Roster) Clone() *Roster {
	c := &Roster{
		participants: make([]*Participant, len(r.participants)),
		joined:       r.joined,
		newID:        r.newID,
	}
	for i, p := range r.participants {
		cp := *p
		c.participants[i] = &cp
	}
	return c
}
