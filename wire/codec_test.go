package wire

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"trivia/domain"
)

func TestDurationMarshalsAsSecsNanos(t *testing.T) {
	d := Duration(2*time.Second + 500*time.Millisecond)
	body, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(body) != `{"secs":2,"nanos":500000000}` {
		t.Errorf("got %s, want {\"secs\":2,\"nanos\":500000000}", body)
	}
	var got Duration
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if time.Duration(got) != time.Duration(d) {
		t.Errorf("round trip = %v, want %v", time.Duration(got), time.Duration(d))
	}
}

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	body := []byte(`{"Login":{"username":"a","password":"b"}}`)
	if err := WriteFrame(&buf, body); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	got, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !bytes.Equal(got, body) {
		t.Errorf("ReadFrame = %q, want %q", got, body)
	}
}

func TestRequestRoundTripUnitVariant(t *testing.T) {
	var buf bytes.Buffer
	req := Request{Kind: ReqLogout}
	if err := WriteResponseLikeRequest(&buf, req); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := ReadRequest(&buf)
	if err != nil {
		t.Fatalf("ReadRequest: %v", err)
	}
	if got.Kind != ReqLogout {
		t.Errorf("Kind = %v, want %v", got.Kind, ReqLogout)
	}
}

func TestRequestRoundTripLogin(t *testing.T) {
	var buf bytes.Buffer
	req := Request{Kind: ReqLogin, Login: &LoginPayload{Username: "user1234", Password: "Pass@123"}}
	if err := WriteResponseLikeRequest(&buf, req); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := ReadRequest(&buf)
	if err != nil {
		t.Fatalf("ReadRequest: %v", err)
	}
	if got.Kind != ReqLogin || got.Login == nil || got.Login.Username != "user1234" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestResponseRoundTripError(t *testing.T) {
	var buf bytes.Buffer
	resp := Response{Kind: RespLogin, Err: NewErrorInfo(&domain.UserDoesntExistError{Username: "user1234"})}
	if err := WriteResponse(&buf, resp); err != nil {
		t.Fatalf("WriteResponse: %v", err)
	}
	body, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	var got Response
	if err := got.UnmarshalJSON(body); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if got.Ok() {
		t.Error("expected error response")
	}
	if got.Err.Message != "user doesn't exist: user1234" {
		t.Errorf("Err.Message = %q", got.Err.Message)
	}
}

func TestResponseRoundTripGameResult(t *testing.T) {
	var buf bytes.Buffer
	resp := Response{Kind: RespGameResult, GameResults: []domain.PlayerResult{
		{Username: "alice", CorrectAnswers: 3, Score: 1.5},
	}}
	if err := WriteResponse(&buf, resp); err != nil {
		t.Fatalf("WriteResponse: %v", err)
	}
	body, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	var got Response
	if err := got.UnmarshalJSON(body); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if len(got.GameResults) != 1 || got.GameResults[0].Username != "alice" {
		t.Errorf("round trip mismatch: %+v", got.GameResults)
	}
}

// WriteResponseLikeRequest is a small test helper mirroring WriteResponse
// for the Request side, since production code never needs to encode a
// Request (only the client would).
func WriteResponseLikeRequest(w *bytes.Buffer, req Request) error {
	body, err := req.MarshalJSON()
	if err != nil {
		return err
	}
	return WriteFrame(w, body)
}
