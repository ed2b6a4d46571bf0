// Package memory keeps every table in process memory. It backs the API when
// no DATABASE_URL is configured and it is the fixture store for use case tests.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/homewiz/homewiz-backend/internal/entity"
)

type Store struct {
	mu sync.RWMutex

	operators []*entity.Operator
	buildings []*entity.Building
	rooms     []*entity.Room
	leads     []*entity.Lead
	tenants   []*entity.Tenant

	nextID    map[string]int64
	sequences map[string]int64
}

func NewStore() *Store {
	return &Store{
		nextID:    make(map[string]int64),
		sequences: make(map[string]int64),
	}
}

func (s *Store) Operators() *OperatorRepository { return &OperatorRepository{s} }
func (s *Store) Buildings() *BuildingRepository { return &BuildingRepository{s} }
func (s *Store) Rooms() *RoomRepository         { return &RoomRepository{s} }
func (s *Store) Leads() *LeadRepository         { return &LeadRepository{s} }
func (s *Store) Tenants() *TenantRepository     { return &TenantRepository{s} }

// Next implements entity.Sequencer with a counter per name.
func (s *Store) Next(ctx context.Context, name string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequences[name]++
	return s.sequences[name], nil
}

func (s *Store) TableCounts(ctx context.Context) (map[string]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]int64{
		"operators": int64(len(s.operators)),
		"buildings": int64(len(s.buildings)),
		"rooms":     int64(len(s.rooms)),
		"leads":     int64(len(s.leads)),
		"tenants":   int64(len(s.tenants)),
	}, nil
}

// Ping lets the health check treat the store like a database.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// allocate returns the next surrogate key of a table. Caller holds mu.
func (s *Store) allocate(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

func notFound(kind, key string) error {
	return fmt.Errorf("%s %s: %w", kind, key, entity.ErrNotFound)
}

func conflict(kind, key string) error {
	return fmt.Errorf("%s %s already exists: %w", kind, key, entity.ErrConflict)
}

type OperatorRepository struct{ s *Store }

func (r *OperatorRepository) Create(ctx context.Context, op *entity.Operator) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.operators {
		if strings.EqualFold(o.Email, op.Email) {
			return conflict("operator", op.Email)
		}
	}
	op.ID = r.s.allocate("operators")
	c := *op
	r.s.operators = append(r.s.operators, &c)
	return nil
}

func (r *OperatorRepository) FindByID(ctx context.Context, id int64) (*entity.Operator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, o := range r.s.operators {
		if o.ID == id {
			c := *o
			return &c, nil
		}
	}
	return nil, notFound("operator", fmt.Sprint(id))
}

func (r *OperatorRepository) FindByEmail(ctx context.Context, email string) (*entity.Operator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, o := range r.s.operators {
		if strings.EqualFold(o.Email, email) {
			c := *o
			return &c, nil
		}
	}
	return nil, notFound("operator", email)
}

func (r *OperatorRepository) List(ctx context.Context) ([]*entity.Operator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Operator, 0, len(r.s.operators))
	for _, o := range r.s.operators {
		c := *o
		out = append(out, &c)
	}
	return out, nil
}

func (r *OperatorRepository) TouchLastActive(ctx context.Context, id int64, day entity.Date) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.operators {
		if o.ID == id {
			o.LastActive = day
			return nil
		}
	}
	return notFound("operator", fmt.Sprint(id))
}

type BuildingRepository struct{ s *Store }

func (r *BuildingRepository) Create(ctx context.Context, b *entity.Building) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.buildings {
		if x.BuildingID == b.BuildingID {
			return conflict("building", b.BuildingID)
		}
	}
	b.ID = r.s.allocate("buildings")
	r.s.buildings = append(r.s.buildings, cloneBuilding(b))
	return nil
}

func (r *BuildingRepository) FindByBuildingID(ctx context.Context, buildingID string) (*entity.Building, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if b := r.s.findBuilding(buildingID); b != nil {
		return cloneBuilding(b), nil
	}
	return nil, notFound("building", buildingID)
}

func (r *BuildingRepository) List(ctx context.Context) ([]*entity.Building, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Building, 0, len(r.s.buildings))
	for _, b := range r.s.buildings {
		out = append(out, cloneBuilding(b))
	}
	return out, nil
}

func (s *Store) findBuilding(buildingID string) *entity.Building {
	for _, b := range s.buildings {
		if b.BuildingID == buildingID {
			return b
		}
	}
	return nil
}

func cloneBuilding(b *entity.Building) *entity.Building {
	c := *b
	if b.OperatorID != nil {
		id := *b.OperatorID
		c.OperatorID = &id
	}
	return &c
}

type RoomRepository struct{ s *Store }

func (r *RoomRepository) CreateMany(ctx context.Context, rooms []*entity.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	seen := make(map[string]bool, len(rooms))
	for _, room := range rooms {
		if r.s.findBuilding(room.BuildingID) == nil {
			return notFound("building", room.BuildingID)
		}
		if seen[room.RoomID] || r.s.findRoom(room.RoomID) != nil {
			return conflict("room", room.RoomID)
		}
		seen[room.RoomID] = true
	}
	for _, room := range rooms {
		room.ID = r.s.allocate("rooms")
		c := *room
		r.s.rooms = append(r.s.rooms, &c)
	}
	return nil
}

func (r *RoomRepository) FindByRoomID(ctx context.Context, roomID string) (*entity.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if room := r.s.findRoom(roomID); room != nil {
		c := *room
		return &c, nil
	}
	return nil, notFound("room", roomID)
}

func (r *RoomRepository) List(ctx context.Context, buildingID string) ([]*entity.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Room, 0, len(r.s.rooms))
	for _, room := range r.s.rooms {
		if buildingID != "" && room.BuildingID != buildingID {
			continue
		}
		c := *room
		out = append(out, &c)
	}
	return out, nil
}

func (r *RoomRepository) CountByBuilding(ctx context.Context, buildingID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, room := range r.s.rooms {
		if room.BuildingID == buildingID {
			n++
		}
	}
	return n, nil
}

func (r *RoomRepository) UpdateStatus(ctx context.Context, roomID string, from, to entity.RoomStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	room := r.s.findRoom(roomID)
	if room == nil {
		return notFound("room", roomID)
	}
	if room.Status != from {
		return fmt.Errorf("room %s is %s, expected %s: %w", roomID, room.Status, from, entity.ErrConflict)
	}
	room.Status = to
	return nil
}

func (s *Store) findRoom(roomID string) *entity.Room {
	for _, room := range s.rooms {
		if room.RoomID == roomID {
			return room
		}
	}
	return nil
}

type LeadRepository struct{ s *Store }

func (r *LeadRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.leads)), nil
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.leads {
		if l.LeadID == lead.LeadID {
			return conflict("lead", lead.LeadID)
		}
	}
	lead.ID = r.s.allocate("leads")
	r.s.leads = append(r.s.leads, cloneLead(lead))
	return nil
}

func (r *LeadRepository) FindByLeadID(ctx context.Context, leadID string) (*entity.Lead, error) {
	return r.find(ctx, "lead", leadID, func(l *entity.Lead) bool { return l.LeadID == leadID })
}

// FindByEmail returns the first lead stored with email.
func (r *LeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	return r.find(ctx, "lead", email, func(l *entity.Lead) bool { return strings.EqualFold(l.Email, email) })
}

func (r *LeadRepository) find(ctx context.Context, kind, key string, match func(*entity.Lead) bool) (*entity.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, l := range r.s.leads {
		if match(l) {
			return cloneLead(l), nil
		}
	}
	return nil, notFound(kind, key)
}

func (r *LeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Lead, 0, len(r.s.leads))
	for _, l := range r.s.leads {
		out = append(out, cloneLead(l))
	}
	return out, nil
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, l := range r.s.leads {
		if l.LeadID == lead.LeadID {
			c := cloneLead(lead)
			c.ID = l.ID
			r.s.leads[i] = c
			return nil
		}
	}
	return notFound("lead", lead.LeadID)
}

func cloneLead(l *entity.Lead) *entity.Lead {
	c := *l
	c.RoomsInterested = append([]string{}, l.RoomsInterested...)
	c.ShowingDates = append([]time.Time{}, l.ShowingDates...)
	return &c
}

type TenantRepository struct{ s *Store }

func (r *TenantRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.tenants)), nil
}

func (r *TenantRepository) Create(ctx context.Context, t *entity.Tenant) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.findTenant(t.TenantID) >= 0 {
		return conflict("tenant", t.TenantID)
	}
	t.ID = r.s.allocate("tenants")
	c := *t
	r.s.tenants = append(r.s.tenants, &c)
	return nil
}

func (r *TenantRepository) FindByTenantID(ctx context.Context, tenantID string) (*entity.Tenant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if i := r.s.findTenant(tenantID); i >= 0 {
		c := *r.s.tenants[i]
		return &c, nil
	}
	return nil, notFound("tenant", tenantID)
}

func (r *TenantRepository) List(ctx context.Context) ([]*entity.Tenant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Tenant, 0, len(r.s.tenants))
	for _, t := range r.s.tenants {
		c := *t
		out = append(out, &c)
	}
	return out, nil
}

func (r *TenantRepository) Update(ctx context.Context, t *entity.Tenant) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.s.findTenant(t.TenantID)
	if i < 0 {
		return notFound("tenant", t.TenantID)
	}
	c := *t
	c.ID = r.s.tenants[i].ID
	r.s.tenants[i] = &c
	return nil
}

func (r *TenantRepository) Delete(ctx context.Context, tenantID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.s.findTenant(tenantID)
	if i < 0 {
		return notFound("tenant", tenantID)
	}
	r.s.tenants = append(r.s.tenants[:i], r.s.tenants[i+1:]...)
	return nil
}

func (s *Store) findTenant(tenantID string) int {
	for i, t := range s.tenants {
		if t.TenantID == tenantID {
			return i
		}
	}
	return -1
}
