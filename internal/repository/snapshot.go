package repository

import (
	"errors"

	"github.com/arloliu/seating/internal/partition"
	"github.com/arloliu/seating/types"
)

// Snapshot is every table and participant of a scope as read at one instant.
type Snapshot struct {
	Scope        types.Scope
	Tables       []types.Table
	Participants []types.Participant

	tableIdx       map[string]int
	participantIdx map[string]int

	// Records of other partitions referenced from this one: tables that seated
	// participants point at after a reassign, and occupants registered elsewhere.
	outsideTables       map[string]*types.Table
	outsideParticipants map[string]*types.Participant
}

// Load reads a snapshot of the scope selected by rs.
func Load(r types.Reader, rs partition.ReadStrategy) (*Snapshot, error) {
	tables, err := ListTables(r, rs)
	if err != nil {
		return nil, err
	}
	participants, err := ListParticipants(r, rs)
	if err != nil {
		return nil, err
	}

	snap := NewSnapshot(rs.Scope(), tables, participants)
	if !rs.Aggregate() {
		if err := snap.loadReferences(r); err != nil {
			return nil, err
		}
	}

	return snap, nil
}

// loadReferences reads the records outside the snapshot's partition that its
// seats and locations point at. Dangling references are ignored.
func (s *Snapshot) loadReferences(r types.Reader) error {
	for i := range s.Participants {
		loc := s.Participants[i].Location
		if loc == nil || s.TableAnywhere(loc.TableID) != nil {
			continue
		}
		t, err := FindTable(r, s.Scope, loc.TableID)
		if errors.Is(err, types.ErrTableNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		s.outsideTables[t.ID] = t
	}

	for i := range s.Tables {
		for _, seat := range s.Tables[i].Seats {
			id, ok := seat.Occupant()
			if !ok || s.ParticipantAnywhere(id) != nil {
				continue
			}
			p, err := FindParticipant(r, s.Scope, id)
			if errors.Is(err, types.ErrParticipantNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			s.outsideParticipants[p.ID] = p
		}
	}

	return nil
}

// NewSnapshot indexes already-loaded records.
func NewSnapshot(s types.Scope, tables []types.Table, participants []types.Participant) *Snapshot {
	snap := &Snapshot{
		Scope:          s,
		Tables:         tables,
		Participants:   participants,
		tableIdx:       make(map[string]int, len(tables)),
		participantIdx: make(map[string]int, len(participants)),

		outsideTables:       make(map[string]*types.Table),
		outsideParticipants: make(map[string]*types.Participant),
	}
	for i := range tables {
		snap.tableIdx[tables[i].ID] = i
	}
	for i := range participants {
		snap.participantIdx[participants[i].ID] = i
	}

	return snap
}

// Table returns the table with the given id, or nil.
func (s *Snapshot) Table(id string) *types.Table {
	if i, ok := s.tableIdx[id]; ok {
		return &s.Tables[i]
	}

	return nil
}

// Participant returns the participant with the given id, or nil.
func (s *Snapshot) Participant(id string) *types.Participant {
	if i, ok := s.participantIdx[id]; ok {
		return &s.Participants[i]
	}

	return nil
}

// TableAnywhere returns the table with the given id from the snapshot or from
// the referenced tables of other partitions, or nil.
func (s *Snapshot) TableAnywhere(id string) *types.Table {
	if t := s.Table(id); t != nil {
		return t
	}

	return s.outsideTables[id]
}

// ParticipantAnywhere returns the participant with the given id from the
// snapshot or from the referenced occupants of other partitions, or nil.
func (s *Snapshot) ParticipantAnywhere(id string) *types.Participant {
	if p := s.Participant(id); p != nil {
		return p
	}

	return s.outsideParticipants[id]
}

// OpenTables returns the open tables in table-number order.
func (s *Snapshot) OpenTables() []types.Table {
	var open []types.Table
	for i := range s.Tables {
		if s.Tables[i].IsOpen() {
			open = append(open, s.Tables[i])
		}
	}

	return open
}

// ActiveParticipants returns participants with status active, in snapshot order.
func (s *Snapshot) ActiveParticipants() []types.Participant {
	var out []types.Participant
	for i := range s.Participants {
		if s.Participants[i].IsActive() {
			out = append(out, s.Participants[i])
		}
	}

	return out
}

// Unseated returns active participants without a seat, in snapshot order.
func (s *Snapshot) Unseated() []types.Participant {
	var out []types.Participant
	for i := range s.Participants {
		p := &s.Participants[i]
		if p.IsActive() && !p.IsSeated() {
			out = append(out, *p)
		}
	}

	return out
}
