package domain

// RelationshipRecord tracks the player's standing with one NPC.
// The daily flags reset at 00:00 of every game day.
type RelationshipRecord struct {
	NPCID            string `json:"npc_id"`
	FriendshipPoints int    `json:"friendship_points"`
	HasTalkedToday   bool   `json:"has_talked_today"`
	GiftGivenToday   bool   `json:"gift_given_today"`
}

// Hearts converts friendship points into whole hearts
func (r RelationshipRecord) Hearts() int {
	return r.FriendshipPoints / FriendshipPerHeart
}

// Relationship tuning
const (
	FriendshipPerHeart = 250
	MaxFriendship      = 2500
	TalkFriendship     = 20
	GiftFriendship     = 80
)
