// Package relationship tracks friendship with NPCs and the once-a-day
// talk and gift flags.
package relationship

import (
	"fmt"
	"slices"
	"sync"

	"github.com/osse101/farmstead/internal/domain"
)

// Book holds one record per NPC in the order they were met
type Book struct {
	mu      sync.RWMutex
	records []domain.RelationshipRecord
}

// NewBook creates an empty relationship book
func NewBook() *Book {
	return &Book{}
}

// Records returns a copy of every record
func (b *Book) Records() []domain.RelationshipRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]domain.RelationshipRecord(nil), b.records...)
}

// Get returns the record for an NPC
func (b *Book) Get(npcID string) (domain.RelationshipRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	i := b.index(npcID)
	if i < 0 {
		return domain.RelationshipRecord{}, fmt.Errorf("%w: %s", domain.ErrNPCNotFound, npcID)
	}
	return b.records[i], nil
}

// Validate checks saved records for blank or duplicate ids and out of range points
func (b *Book) Validate(records []domain.RelationshipRecord) error {
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if r.NPCID == "" {
			return fmt.Errorf("%w: relationship without npc id", domain.ErrDeserializationMismatch)
		}
		if seen[r.NPCID] {
			return fmt.Errorf("%w: duplicate relationship %s", domain.ErrDeserializationMismatch, r.NPCID)
		}
		if r.FriendshipPoints < 0 || r.FriendshipPoints > domain.MaxFriendship {
			return fmt.Errorf("%w: %s friendship %d out of range", domain.ErrDeserializationMismatch, r.NPCID, r.FriendshipPoints)
		}
		seen[r.NPCID] = true
	}
	return nil
}

// Load replaces every record
func (b *Book) Load(records []domain.RelationshipRecord) error {
	if err := b.Validate(records); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records = append([]domain.RelationshipRecord(nil), records...)
	return nil
}

// ResetDaily clears the talk and gift flags on every record and returns how
// many records were touched
func (b *Book) ResetDaily() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.records {
		b.records[i].HasTalkedToday = false
		b.records[i].GiftGivenToday = false
	}
	return len(b.records)
}

// Talk records today's conversation, meeting the NPC if needed
func (b *Book) Talk(npcID string) (domain.RelationshipRecord, error) {
	if npcID == "" {
		return domain.RelationshipRecord{}, fmt.Errorf("%w: empty npc id", domain.ErrInvalidInput)
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.index(npcID)
	if i < 0 {
		b.records = append(b.records, domain.RelationshipRecord{NPCID: npcID})
		i = len(b.records) - 1
	}
	r := &b.records[i]
	if r.HasTalkedToday {
		return *r, fmt.Errorf("%w: talked to %s", domain.ErrAlreadyDoneToday, npcID)
	}
	r.HasTalkedToday = true
	r.FriendshipPoints = min(r.FriendshipPoints+domain.TalkFriendship, domain.MaxFriendship)
	return *r, nil
}

// Gift records today's gift to an NPC the player has already met
func (b *Book) Gift(npcID string) (domain.RelationshipRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.index(npcID)
	if i < 0 {
		return domain.RelationshipRecord{}, fmt.Errorf("%w: %s", domain.ErrNPCNotFound, npcID)
	}
	r := &b.records[i]
	if r.GiftGivenToday {
		return *r, fmt.Errorf("%w: gift for %s", domain.ErrAlreadyDoneToday, npcID)
	}
	r.GiftGivenToday = true
	r.FriendshipPoints = min(r.FriendshipPoints+domain.GiftFriendship, domain.MaxFriendship)
	return *r, nil
}

func (b *Book) index(npcID string) int {
	return slices.IndexFunc(b.records, func(r domain.RelationshipRecord) bool { return r.NPCID == npcID })
}
