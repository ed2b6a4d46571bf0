package entity

import (
	"errors"
	"strings"
	"time"
)

// Lead is a prospective renter that has not signed a lease yet.
type Lead struct {
	ID               int64       `json:"id"`
	LeadID           string      `json:"lead_id"`
	Email            string      `json:"email"`
	Status           LeadStatus  `json:"status"`
	InteractionCount int         `json:"interaction_count"`
	RoomsInterested  []string    `json:"rooms_interested"`
	SelectedRoomID   string      `json:"selected_room_id,omitempty"`
	ShowingDates     []time.Time `json:"showing_dates"`
	PlannedMoveIn    string      `json:"planned_move_in,omitempty"`
	PlannedMoveOut   string      `json:"planned_move_out,omitempty"`
	VisaStatus       string      `json:"visa_status,omitempty"`
}

func NewLead(leadID, email string, status LeadStatus, roomsInterested []string, visaStatus string) (*Lead, error) {
	if status == "" {
		status = LeadStatusExploring
	}
	lead := &Lead{
		LeadID:       leadID,
		Email:        strings.TrimSpace(email),
		Status:       status,
		VisaStatus:   visaStatus,
		ShowingDates: []time.Time{},
	}
	lead.RoomsInterested = []string{}
	lead.AddInterest(roomsInterested...)
	if err := lead.Validate(); err != nil {
		return nil, err
	}
	return lead, nil
}

func (l *Lead) Validate() error {
	if l.Email == "" {
		return errors.New("email is required")
	}
	if !l.Status.Valid() {
		return errors.New("status must be one of EXPLORING, SHOWING_SCHEDULED, CONVERTED, LOST")
	}
	return nil
}

// AddInterest appends room ids not already present, keeping first-seen order.
// It reports whether anything was added.
func (l *Lead) AddInterest(roomIDs ...string) bool {
	added := false
	for _, id := range roomIDs {
		id = strings.TrimSpace(id)
		if id == "" || contains(l.RoomsInterested, id) {
			continue
		}
		l.RoomsInterested = append(l.RoomsInterested, id)
		added = true
	}
	return added
}

func (l *Lead) Transition(next LeadStatus) error {
	if !l.Status.CanTransitionTo(next) {
		return &TransitionError{Entity: "lead", Key: l.LeadID, From: string(l.Status), To: string(next)}
	}
	l.Status = next
	return nil
}

// EnsureOpen rejects any mutation of a converted or lost lead.
func (l *Lead) EnsureOpen() error {
	if l.Status.Terminal() {
		return &TransitionError{Entity: "lead", Key: l.LeadID, From: string(l.Status), To: string(l.Status)}
	}
	return nil
}
