package managers

import (
	"time"

	"testing"

	"trivia/domain"
)

func TestGameManagerCreateAndDeleteCommitsStats(t *testing.T) {
	store := newFakeStorage()
	store.questions = []domain.QuestionData{
		{Content: "2+2", Answers: []string{"4", "5"}, CorrectAnswerIndex: 0},
	}
	gm := NewGameManager(store)

	room := &domain.Room{ID: 3, QuestionCount: 1, Users: []domain.Username{"alice"}}
	game, err := gm.CreateGame(room)
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if len(game.Questions) != 1 {
		t.Fatalf("expected 1 drawn question, got %d", len(game.Questions))
	}

	q := game.NextQuestion("alice")
	if q == nil {
		t.Fatal("expected a question")
	}
	if _, err := game.SubmitAnswer("alice", "4", time.Second, 5*time.Second); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	gm.DeleteGame(room.ID)
	if _, ok := gm.Game(room.ID); ok {
		t.Error("expected game to be removed after DeleteGame")
	}
	if _, ok := store.stats["alice"]; !ok {
		t.Error("expected DeleteGame to commit alice's stats")
	}
}

func TestGameManagerDeleteSkipsPlayersWithNoAnswers(t *testing.T) {
	store := newFakeStorage()
	gm := NewGameManager(store)
	room := &domain.Room{ID: 9, QuestionCount: 0, Users: []domain.Username{"bob"}}
	if _, err := gm.CreateGame(room); err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	gm.DeleteGame(room.ID)
	if _, ok := store.stats["bob"]; ok {
		t.Error("a player who never answered should not get a submitted stats row")
	}
}
