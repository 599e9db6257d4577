// Package wire implements the length-prefixed JSON frame codec and the
// Request/Response sum types that cross it. Encoding is externally tagged:
// a unit variant is a bare JSON string ("Logout"), a variant carrying data
// is a single-key object ({"Login": {...}}), matching the idiomatic shape
// of a serde-style externally tagged enum.
package wire

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"trivia/domain"
)

type RequestKind string

const (
	ReqLogin          RequestKind = "Login"
	ReqSignup         RequestKind = "Signup"
	ReqLogout         RequestKind = "Logout"
	ReqRoomList       RequestKind = "RoomList"
	ReqJoinRoom       RequestKind = "JoinRoom"
	ReqCreateRoom     RequestKind = "CreateRoom"
	ReqCloseRoom      RequestKind = "CloseRoom"
	ReqStartGame      RequestKind = "StartGame"
	ReqRoomState      RequestKind = "RoomState"
	ReqLeaveRoom      RequestKind = "LeaveRoom"
	ReqLeaveGame      RequestKind = "LeaveGame"
	ReqQuestion       RequestKind = "Question"
	ReqSubmitAnswer   RequestKind = "SubmitAnswer"
	ReqGameResult     RequestKind = "GameResult"
	ReqStatistics     RequestKind = "Statistics"
	ReqPersonalStats  RequestKind = "PersonalStats"
	ReqHighscores     RequestKind = "Highscores"
	ReqCreateQuestion RequestKind = "CreateQuestion"
)

// unitRequestKinds carries no payload and serializes as a bare string.
var unitRequestKinds = map[RequestKind]bool{
	ReqLogout: true, ReqRoomList: true, ReqCloseRoom: true, ReqStartGame: true,
	ReqRoomState: true, ReqLeaveRoom: true, ReqLeaveGame: true, ReqQuestion: true,
	ReqGameResult: true, ReqStatistics: true, ReqPersonalStats: true, ReqHighscores: true,
}

type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SignupPayload struct {
	Username  string         `json:"username"`
	Password  string         `json:"password"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	Address   domain.Address `json:"address"`
	BirthDate string         `json:"birth_date"`
}

type JoinRoomPayload struct {
	RoomID uint64 `json:"room_id"`
}

type CreateRoomPayload struct {
	Name          string   `json:"name"`
	MaxUsers      int      `json:"max_users"`
	Questions     int      `json:"questions"`
	AnswerTimeout Duration `json:"answer_timeout"`
}

type SubmitAnswerPayload struct {
	Text string `json:"text"`
}

// Request is one client-to-server message. ArrivalTime is stamped by the
// Communicator on receipt, never sent over the wire.
type Request struct {
	Kind           RequestKind
	Login          *LoginPayload
	Signup         *SignupPayload
	JoinRoom       *JoinRoomPayload
	CreateRoom     *CreateRoomPayload
	SubmitAnswer   *SubmitAnswerPayload
	CreateQuestion *domain.QuestionData

	ArrivalTime time.Time `json:"-"`
}

func (r Request) MarshalJSON() ([]byte, error) {
	if unitRequestKinds[r.Kind] {
		return json.Marshal(string(r.Kind))
	}
	var payload interface{}
	switch r.Kind {
	case ReqLogin:
		payload = r.Login
	case ReqSignup:
		payload = r.Signup
	case ReqJoinRoom:
		payload = r.JoinRoom
	case ReqCreateRoom:
		payload = r.CreateRoom
	case ReqSubmitAnswer:
		payload = r.SubmitAnswer
	case ReqCreateQuestion:
		payload = r.CreateQuestion
	default:
		return nil, fmt.Errorf("wire: unknown request kind %q", r.Kind)
	}
	return json.Marshal(map[string]interface{}{string(r.Kind): payload})
}

func (r *Request) UnmarshalJSON(data []byte) error {
	var bare string
	if err := json.Unmarshal(data, &bare); err == nil {
		if !unitRequestKinds[RequestKind(bare)] {
			return fmt.Errorf("wire: %q is not a unit request variant", bare)
		}
		r.Kind = RequestKind(bare)
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("wire: request decode: %w", err)
	}
	if len(obj) != 1 {
		return fmt.Errorf("wire: request object must have exactly one key, got %d", len(obj))
	}
	for k, v := range obj {
		r.Kind = RequestKind(k)
		switch r.Kind {
		case ReqLogin:
			r.Login = &LoginPayload{}
			return json.Unmarshal(v, r.Login)
		case ReqSignup:
			r.Signup = &SignupPayload{}
			return json.Unmarshal(v, r.Signup)
		case ReqJoinRoom:
			r.JoinRoom = &JoinRoomPayload{}
			return json.Unmarshal(v, r.JoinRoom)
		case ReqCreateRoom:
			r.CreateRoom = &CreateRoomPayload{}
			return json.Unmarshal(v, r.CreateRoom)
		case ReqSubmitAnswer:
			r.SubmitAnswer = &SubmitAnswerPayload{}
			return json.Unmarshal(v, r.SubmitAnswer)
		case ReqCreateQuestion:
			r.CreateQuestion = &domain.QuestionData{}
			return json.Unmarshal(v, r.CreateQuestion)
		default:
			return fmt.Errorf("wire: unknown request kind %q", k)
		}
	}
	return nil
}

type ResponseKind string

const (
	RespLogin          ResponseKind = "Login"
	RespSignup         ResponseKind = "Signup"
	RespError          ResponseKind = "Error"
	RespRoomList       ResponseKind = "RoomList"
	RespJoinRoom       ResponseKind = "JoinRoom"
	RespCreateRoom     ResponseKind = "CreateRoom"
	RespCloseRoom      ResponseKind = "CloseRoom"
	RespStartGame      ResponseKind = "StartGame"
	RespRoomState      ResponseKind = "RoomState"
	RespLeaveRoom      ResponseKind = "LeaveRoom"
	RespLeaveGame      ResponseKind = "LeaveGame"
	RespQuestion       ResponseKind = "Question"
	RespCorrectAnswer  ResponseKind = "CorrectAnswer"
	RespGameResult     ResponseKind = "GameResult"
	RespStatistics     ResponseKind = "Statistics"
	RespHighscores     ResponseKind = "Highscores"
	RespCreateQuestion ResponseKind = "CreateQuestion"
)

// RoomSnapshot is the payload of RespRoomState.
type RoomSnapshot struct {
	State           string   `json:"state"`
	Name            string   `json:"name"`
	Players         []string `json:"players"`
	QuestionCount   int      `json:"question_count"`
	TimePerQuestion Duration `json:"time_per_question"`
}

// Response is one server-to-client message. Err carries a short machine
// name plus a human-readable message for any variant wrapping a
// Result<_, DomainError>; Ok-bearing variants populate the matching field.
type Response struct {
	Kind ResponseKind
	Err  *ErrorInfo

	Message          string // RespError plain text
	RoomID           uint64
	Rooms            []RoomSnapshot
	RoomState        *RoomSnapshot
	Question         *domain.QuestionData
	CorrectAnswer    string
	GameResults      []domain.PlayerResult
	Statistics       *domain.Statistics
	HighScores       []domain.HighScore
}

// ErrorInfo is the externally-tagged representation of a domain error:
// {"code": "RoomFull", "message": "room full"}.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewErrorInfo(err error) *ErrorInfo {
	if err == nil {
		return nil
	}
	code := fmt.Sprintf("%T", err)
	if i := strings.LastIndex(code, "."); i >= 0 {
		code = code[i+1:]
	}
	code = strings.TrimSuffix(code, "Error")
	return &ErrorInfo{Code: code, Message: err.Error()}
}

func (r Response) MarshalJSON() ([]byte, error) {
	type result struct {
		Ok  interface{} `json:"ok,omitempty"`
		Err *ErrorInfo  `json:"err,omitempty"`
	}
	wrap := func(ok interface{}) result { return result{Ok: ok, Err: r.Err} }

	var payload interface{}
	switch r.Kind {
	case RespError:
		payload = r.Message
	case RespLogin, RespSignup, RespCloseRoom, RespLeaveRoom, RespLeaveGame, RespCreateQuestion:
		payload = wrap(struct{}{})
	case RespJoinRoom, RespCreateRoom, RespStartGame:
		payload = wrap(r.RoomID)
	case RespRoomList:
		payload = wrap(r.Rooms)
	case RespRoomState:
		payload = wrap(r.RoomState)
	case RespQuestion:
		payload = wrap(r.Question)
	case RespCorrectAnswer:
		payload = r.CorrectAnswer
	case RespGameResult:
		payload = r.GameResults
	case RespStatistics:
		payload = wrap(r.Statistics)
	case RespHighscores:
		payload = r.HighScores
	default:
		return nil, fmt.Errorf("wire: unknown response kind %q", r.Kind)
	}
	return json.Marshal(map[string]interface{}{string(r.Kind): payload})
}

func (r *Response) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("wire: response decode: %w", err)
	}
	if len(obj) != 1 {
		return fmt.Errorf("wire: response object must have exactly one key, got %d", len(obj))
	}
	for k, v := range obj {
		r.Kind = ResponseKind(k)
		switch r.Kind {
		case RespError:
			return json.Unmarshal(v, &r.Message)
		case RespCorrectAnswer:
			return json.Unmarshal(v, &r.CorrectAnswer)
		case RespGameResult:
			return json.Unmarshal(v, &r.GameResults)
		case RespHighscores:
			return json.Unmarshal(v, &r.HighScores)
		case RespJoinRoom, RespCreateRoom, RespStartGame:
			var res struct {
				Ok  uint64     `json:"ok"`
				Err *ErrorInfo `json:"err"`
			}
			if err := json.Unmarshal(v, &res); err != nil {
				return err
			}
			r.RoomID, r.Err = res.Ok, res.Err
			return nil
		case RespRoomList:
			var res struct {
				Ok  []RoomSnapshot `json:"ok"`
				Err *ErrorInfo     `json:"err"`
			}
			if err := json.Unmarshal(v, &res); err != nil {
				return err
			}
			r.Rooms, r.Err = res.Ok, res.Err
			return nil
		case RespRoomState:
			var res struct {
				Ok  *RoomSnapshot `json:"ok"`
				Err *ErrorInfo    `json:"err"`
			}
			if err := json.Unmarshal(v, &res); err != nil {
				return err
			}
			r.RoomState, r.Err = res.Ok, res.Err
			return nil
		case RespQuestion:
			var res struct {
				Ok  *domain.QuestionData `json:"ok"`
				Err *ErrorInfo           `json:"err"`
			}
			if err := json.Unmarshal(v, &res); err != nil {
				return err
			}
			r.Question, r.Err = res.Ok, res.Err
			return nil
		case RespStatistics:
			var res struct {
				Ok  *domain.Statistics `json:"ok"`
				Err *ErrorInfo         `json:"err"`
			}
			if err := json.Unmarshal(v, &res); err != nil {
				return err
			}
			r.Statistics, r.Err = res.Ok, res.Err
			return nil
		case RespLogin, RespSignup, RespCloseRoom, RespLeaveRoom, RespLeaveGame, RespCreateQuestion:
			var res struct {
				Ok  *struct{}  `json:"ok"`
				Err *ErrorInfo `json:"err"`
			}
			if err := json.Unmarshal(v, &res); err != nil {
				return err
			}
			r.Err = res.Err
			return nil
		default:
			return fmt.Errorf("wire: unknown response kind %q", k)
		}
	}
	return nil
}

// Ok reports whether this response carries no error (units and Err==nil
// mean success for variants wrapping a Result).
func (r Response) Ok() bool { return r.Err == nil }
