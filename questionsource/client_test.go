package questionsource

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func b64(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

func TestFetchQuestionsDecodesBase64AndNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("encode") != "base64" {
			t.Errorf("expected encode=base64 query param, got %q", r.URL.RawQuery)
		}
		resp := map[string]interface{}{
			"response_code": 0,
			"results": []map[string]interface{}{
				{
					"question":          b64("2+2=?"),
					"correct_answer":    b64("4"),
					"incorrect_answers": []string{b64("5"), b64("6")},
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	got, err := c.FetchQuestions(1)
	if err != nil {
		t.Fatalf("FetchQuestions: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 question, got %d", len(got))
	}
	q := got[0]
	if q.Content != "2+2=?" {
		t.Errorf("Content = %q, want 2+2=?", q.Content)
	}
	if q.CorrectAnswerIndex != 0 || q.Answers[0] != "4" {
		t.Errorf("expected correct answer at index 0, got %+v", q)
	}
	if len(q.Answers) != 3 {
		t.Errorf("expected 3 answers total, got %d", len(q.Answers))
	}
}

func TestFetchQuestionsPropagatesNonZeroResponseCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"response_code": 1, "results": []interface{}{}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	if _, err := c.FetchQuestions(5); err == nil {
		t.Fatal("expected error for non-zero response_code")
	}
}
