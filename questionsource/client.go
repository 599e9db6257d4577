// Package questionsource fetches and decodes questions from the external
// trivia feed. Normalization into domain.QuestionData, and the recursive
// base64 decode of every string field, live here so the storage layer
// never depends on the remote wire shape.
package questionsource

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"trivia/domain"
)

// responseCode mirrors the feed's numeric status.
type responseCode int

const (
	codeOK             responseCode = 0
	codeNoResults      responseCode = 1
	codeInvalidParam   responseCode = 2
	codeTokenNotFound  responseCode = 3
	codeTokenEmpty     responseCode = 4
	codeRateLimit      responseCode = 5
)

func (c responseCode) Error() string {
	switch c {
	case codeNoResults:
		return "question source: no results"
	case codeInvalidParam:
		return "question source: invalid parameter"
	case codeTokenNotFound:
		return "question source: token not found"
	case codeTokenEmpty:
		return "question source: token empty"
	case codeRateLimit:
		return "question source: rate limited"
	default:
		return fmt.Sprintf("question source: unknown response code %d", c)
	}
}

type feedResult struct {
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type feedResponse struct {
	ResponseCode responseCode `json:"response_code"`
	Results      []feedResult `json:"results"`
}

// Client performs a single HTTPS GET against the feed with
// amount=n&encode=base64, grounded in AndersonQ-elastic-ai-jam-2025's
// getAndUnmarshal: one http.Client, one GET, one json.Unmarshal, errors
// wrapped with URL/status context.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{BaseURL: baseURL, HTTP: &http.Client{Timeout: timeout}}
}

func (c *Client) FetchQuestions(n int) ([]domain.QuestionData, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("questionsource: bad base url %q: %w", c.BaseURL, err)
	}
	q := u.Query()
	q.Set("amount", fmt.Sprintf("%d", n))
	q.Set("encode", "base64")
	u.RawQuery = q.Encode()

	resp, err := c.HTTP.Get(u.String())
	if err != nil {
		return nil, fmt.Errorf("questionsource: GET %s: %w", u.String(), err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("questionsource: GET %s: status %d", u.String(), resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("questionsource: decode body: %w", err)
	}
	decoded, err := base64DecodeRecursive(raw)
	if err != nil {
		return nil, fmt.Errorf("questionsource: base64 decode: %w", err)
	}
	var feed feedResponse
	if err := json.Unmarshal(decoded, &feed); err != nil {
		return nil, fmt.Errorf("questionsource: unmarshal decoded body: %w", err)
	}
	if feed.ResponseCode != codeOK {
		return nil, feed.ResponseCode
	}

	out := make([]domain.QuestionData, 0, len(feed.Results))
	for _, r := range feed.Results {
		answers := append([]string{r.CorrectAnswer}, r.IncorrectAnswers...)
		out = append(out, domain.QuestionData{
			Content:            r.Question,
			Answers:            answers,
			CorrectAnswerIndex: 0,
		})
	}
	return out, nil
}

// base64DecodeRecursive walks any JSON value and base64-decodes every
// string leaf, leaving numbers/bools/null untouched and recursing into
// arrays and objects, per spec §4.3.
func base64DecodeRecursive(raw json.RawMessage) (json.RawMessage, error) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	decoded, err := decodeValue(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(decoded)
}

func decodeValue(v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case string:
		b, err := base64.StdEncoding.DecodeString(t)
		if err != nil {
			return nil, fmt.Errorf("decode %q: %w", t, err)
		}
		return string(b), nil
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, elem := range t {
			d, err := decodeValue(elem)
			if err != nil {
				return nil, err
			}
			out[i] = d
		}
		return out, nil
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, elem := range t {
			if k == "response_code" {
				out[k] = elem
				continue
			}
			d, err := decodeValue(elem)
			if err != nil {
				return nil, err
			}
			out[k] = d
		}
		return out, nil
	default:
		return v, nil
	}
}
