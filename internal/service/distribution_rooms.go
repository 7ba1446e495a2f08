package service

import (
	"math/rand"

	"github.com/noah-isme/exam-board-api/internal/models"
)

// roomAllocator hands out rooms per (date, turn) with a sticky per-key
// preference and a round-robin fallback. The round-robin cursor starts at
// a random offset chosen once per run so subjects do not always pile into
// the first room of the list.
type roomAllocator struct {
	rooms  []models.Room
	pref   map[string]string // room key -> room id
	owner  map[string]string // room id -> room key holding it as preference
	cursor int
}

// newRoomAllocator seeds sticky preferences from rooms the groups already
// carry, which keeps re-runs over an assigned set stable.
func newRoomAllocator(rooms []models.Room, groups []*boardGroup, rng *rand.Rand) *roomAllocator {
	ra := &roomAllocator{
		rooms: rooms,
		pref:  make(map[string]string),
		owner: make(map[string]string),
	}
	if len(rooms) > 0 {
		ra.cursor = rng.Intn(len(rooms))
	}
	for _, g := range groups {
		if prior := g.priorRoomID(); prior != "" {
			ra.remember(g.roomKey(), prior)
		}
	}
	return ra
}

// pick returns a room free at the given turn, or false when every room is
// taken. Preference order: the key's sticky room, then round-robin over
// rooms not preferred by another key, then any free room.
func (ra *roomAllocator) pick(st *runState, key string, ref turnRef) (string, bool) {
	if len(ra.rooms) == 0 {
		return "", false
	}
	occ := st.at(ref)

	if id, ok := ra.pref[key]; ok {
		if _, taken := occ.rooms[id]; !taken {
			return id, true
		}
	}

	n := len(ra.rooms)
	for i := 0; i < n; i++ {
		pos := (ra.cursor + i) % n
		id := ra.rooms[pos].ID
		if _, taken := occ.rooms[id]; taken {
			continue
		}
		if holder, held := ra.owner[id]; held && holder != key {
			continue
		}
		ra.cursor = (pos + 1) % n
		ra.remember(key, id)
		return id, true
	}

	// Every unclaimed room is busy at this turn: reuse one preferred by
	// another key rather than dropping the room outright.
	for i := 0; i < n; i++ {
		pos := (ra.cursor + i) % n
		id := ra.rooms[pos].ID
		if _, taken := occ.rooms[id]; taken {
			continue
		}
		ra.cursor = (pos + 1) % n
		ra.remember(key, id)
		return id, true
	}

	return "", false
}

func (ra *roomAllocator) remember(key, roomID string) {
	if prev, ok := ra.pref[key]; ok && prev != roomID && ra.owner[prev] == key {
		delete(ra.owner, prev)
	}
	ra.pref[key] = roomID
	ra.owner[roomID] = key
}
