package domain

import "time"

// QuestionData is a question with its answers; CorrectAnswerIndex points
// into Answers. Unique by Content.
type QuestionData struct {
	ID                  uint64   `json:"id,omitempty"`
	Content             string   `json:"content"`
	Answers             []string `json:"answers"`
	CorrectAnswerIndex  int      `json:"correct_answer_index"`
}

// Statistics is the read-side aggregate returned to clients.
type Statistics struct {
	CorrectAnswers    int      `json:"correct_answers"`
	TotalAnswers      int      `json:"total_answers"`
	AverageAnswerTime Duration `json:"average_answer_time"`
	TotalGames        int      `json:"total_games"`
	Score             float64  `json:"score"`
}

// HighScore is one row of the top-5 leaderboard.
type HighScore struct {
	Username string  `json:"username"`
	Score    float64 `json:"score"`
}

// GameData is the aggregate a finished game contributes for one player;
// Storage.SubmitGameData merges this into the player's persisted row.
type GameData struct {
	CorrectAnswers int
	WrongAnswers   int
	AverageTime    time.Duration
}

// Score computes correct / avg_time_seconds, clamped to 0 if the result
// would be infinite, NaN or subnormal.
func Score(correct int, avgTime time.Duration) float64 {
	secs := avgTime.Seconds()
	if secs <= 0 {
		return 0
	}
	s := float64(correct) / secs
	if isNonFinite(s) {
		return 0
	}
	return s
}

func isNonFinite(f float64) bool {
	return f != f || f > 1e300 || f < -1e300
}

// RoomLifecycleState is a room or game's coarse state.
type RoomLifecycleState int

const (
	RoomWaiting RoomLifecycleState = iota
	RoomInGame
)

func (s RoomLifecycleState) String() string {
	if s == RoomInGame {
		return "InGame"
	}
	return "Waiting"
}

// RoomData describes the parameters a client supplies to CreateRoom.
type RoomData struct {
	Name             string
	Capacity         int
	QuestionCount    int
	TimePerQuestion  time.Duration
}

// Room is in-memory lobby state, owned exclusively by the room manager.
// Users[0] is always the admin; invariants are enforced by RoomManager and
// Room's own mutators, never by callers reaching into the slice directly.
type Room struct {
	ID              uint64
	Name            string
	Capacity        int
	QuestionCount   int
	TimePerQuestion time.Duration
	State           RoomLifecycleState
	Users           []Username
}

// AddUser appends u unless already present; returns false on rejection.
// Capacity/state checks are the caller's responsibility (the Menu
// handler, on JoinRoom).
func (r *Room) AddUser(u Username) bool {
	for _, existing := range r.Users {
		if existing == u {
			return false
		}
	}
	r.Users = append(r.Users, u)
	return true
}

// RemoveUser removes u via swap-remove (O(1), order not preserved beyond
// index 0 staying the admin unless the admin itself is removed).
func (r *Room) RemoveUser(u Username) bool {
	for i, existing := range r.Users {
		if existing != u {
			continue
		}
		last := len(r.Users) - 1
		r.Users[i] = r.Users[last]
		r.Users = r.Users[:last]
		return true
	}
	return false
}

func (r *Room) IsAdmin(u Username) bool {
	return len(r.Users) > 0 && r.Users[0] == u
}

func (r *Room) IsEmpty() bool { return len(r.Users) == 0 }

func (r *Room) IsFull() bool { return len(r.Users) >= r.Capacity }

// PlayerProgress is one player's mutable state within a Game.
type PlayerProgress struct {
	NextQuestionIndex int
	CorrectCount      int
	WrongCount        int
	AvgTime           time.Duration
	HasLeft           bool
}

func (p *PlayerProgress) TotalAnswered() int { return p.CorrectCount + p.WrongCount }

// recordAnswer folds one more timed answer into the running average and
// counters. Clearing HasLeft here preserves the open question (a): a
// reconnecting player who submits again is implicitly un-left.
func (p *PlayerProgress) recordAnswer(correct bool, elapsed time.Duration) {
	p.HasLeft = false
	n := p.TotalAnswered()
	totalNanos := p.AvgTime.Nanoseconds()*int64(n) + elapsed.Nanoseconds()
	p.AvgTime = time.Duration(totalNanos / int64(n+1))
	if correct {
		p.CorrectCount++
	} else {
		p.WrongCount++
	}
}

// Game is in-memory quiz-session state sharing its originating room's ID.
type Game struct {
	ID        uint64
	Questions []QuestionData
	Progress  map[Username]*PlayerProgress
}

func NewGame(roomID uint64, questions []QuestionData, users []Username) *Game {
	g := &Game{ID: roomID, Questions: questions, Progress: make(map[Username]*PlayerProgress, len(users))}
	for _, u := range users {
		g.Progress[u] = &PlayerProgress{}
	}
	return g
}

// NextQuestion returns the question the user should see next, or nil if
// they have finished, and advances NextQuestionIndex unconditionally —
// callers must request the next question exactly once per question cycle.
func (g *Game) NextQuestion(u Username) *QuestionData {
	p, ok := g.Progress[u]
	if !ok || p.NextQuestionIndex >= len(g.Questions) {
		if ok {
			p.NextQuestionIndex++
		}
		return nil
	}
	q := g.Questions[p.NextQuestionIndex]
	p.NextQuestionIndex++
	return &q
}

// SubmitAnswer scores the question the player is currently on
// (NextQuestionIndex-1) if elapsed is within the budget, and always
// returns the correct answer text for UI reveal.
func (g *Game) SubmitAnswer(u Username, answerText string, elapsed, budget time.Duration) (correctAnswer string, err error) {
	p, ok := g.Progress[u]
	if !ok {
		return "", &UnknownGameIDError{GameID: g.ID}
	}
	idx := p.NextQuestionIndex - 1
	if idx < 0 || idx >= len(g.Questions) {
		return "", &NoCorrectAnswerError{QuestionID: g.ID, Text: answerText}
	}
	q := g.Questions[idx]
	if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Answers) {
		return "", &NoCorrectAnswerError{QuestionID: q.ID, Text: answerText}
	}
	correctAnswer = q.Answers[q.CorrectAnswerIndex]
	if elapsed < budget {
		p.recordAnswer(answerText == correctAnswer, elapsed)
	}
	return correctAnswer, nil
}

func (g *Game) RemoveUser(u Username) {
	if p, ok := g.Progress[u]; ok {
		p.HasLeft = true
	}
}

func (g *Game) IsEmpty() bool {
	for _, p := range g.Progress {
		if !p.HasLeft {
			return false
		}
	}
	return true
}

func (g *Game) AllFinished() bool {
	for _, p := range g.Progress {
		if p.HasLeft || p.NextQuestionIndex > len(g.Questions) {
			continue
		}
		return false
	}
	return true
}

// PlayerResult is one row of a finished game's results.
type PlayerResult struct {
	Username       string   `json:"username"`
	CorrectAnswers int      `json:"correct_answers"`
	WrongAnswers   int      `json:"wrong_answers"`
	AverageTime    Duration `json:"avg_time"`
	Score          float64  `json:"score"`
}

// Results returns every player's final result, including players who
// left, sorted by score descending.
func (g *Game) Results() []PlayerResult {
	out := make([]PlayerResult, 0, len(g.Progress))
	for u, p := range g.Progress {
		out = append(out, PlayerResult{
			Username:       string(u),
			CorrectAnswers: p.CorrectCount,
			WrongAnswers:   p.WrongCount,
			AverageTime:    Duration(p.AvgTime),
			Score:          Score(p.CorrectCount, p.AvgTime),
		})
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Score > out[j-1].Score; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
