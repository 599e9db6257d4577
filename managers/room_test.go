package managers

import (
	"testing"
	"time"

	"trivia/domain"
)

func TestRoomManagerCreateJoinLeave(t *testing.T) {
	m := NewRoomManager()
	admin := mustUsername(t, "admin1234")

	id1, ok := m.CreateRoom(admin, roomData(2))
	if !ok {
		t.Fatal("CreateRoom failed")
	}
	id2, ok := m.CreateRoom(admin, roomData(2))
	if !ok {
		t.Fatal("CreateRoom failed")
	}
	if id2 <= id1 {
		t.Errorf("room ids must be strictly increasing: %d then %d", id1, id2)
	}

	alice := mustUsername(t, "alice1234")
	if !m.AddUserToRoom(id1, alice) {
		t.Fatal("AddUserToRoom failed")
	}
	room, ok := m.Room(id1)
	if !ok || len(room.Users) != 2 {
		t.Fatalf("expected 2 users in room, got %+v", room)
	}

	wasAdmin, deleted, existed := m.RemoveUserFromRoom(id1, alice)
	if wasAdmin || deleted || !existed {
		t.Fatalf("unexpected remove result: admin=%v deleted=%v existed=%v", wasAdmin, deleted, existed)
	}

	wasAdmin, deleted, existed = m.RemoveUserFromRoom(id1, admin)
	if !wasAdmin || !deleted || !existed {
		t.Fatalf("expected room deletion when last (admin) user leaves, got admin=%v deleted=%v existed=%v", wasAdmin, deleted, existed)
	}
	if _, ok := m.Room(id1); ok {
		t.Error("room should no longer exist after emptying")
	}
}

func TestRoomManagerCapacityAndDuplicateJoin(t *testing.T) {
	m := NewRoomManager()
	admin := mustUsername(t, "admin1234")
	id, _ := m.CreateRoom(admin, roomData(1))

	if m.AddUserToRoom(id, admin) {
		t.Error("duplicate add of the same user must be rejected")
	}
	room, _ := m.Room(id)
	if !room.IsFull() {
		t.Error("room at capacity 1 with 1 user should be full")
	}
}

func roomData(capacity int) domain.RoomData {
	return domain.RoomData{Name: "room", Capacity: capacity, QuestionCount: 5, TimePerQuestion: 10 * time.Second}
}
