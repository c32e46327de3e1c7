package trivia

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"math/rand"
	"net/http"
	"time"

	"gamebot/common/cache"
)

// Letters 候选答案的编号
var Letters = []string{"a", "b", "c", "d"}

// Question 一道已编号的选择题
type Question struct {
	Text    string            `json:"text"`
	Answers map[string]string `json:"answers"`
	Correct string            `json:"correct"`
}

// QuestionSource 题目来源
type QuestionSource interface {
	Fetch() (*Question, error)
}

// apiResponse Open Trivia DB 风格的响应体
type apiResponse struct {
	ResponseCode int `json:"response_code"`
	Results      []struct {
		Question         string   `json:"question"`
		CorrectAnswer    string   `json:"correct_answer"`
		IncorrectAnswers []string `json:"incorrect_answers"`
	} `json:"results"`
}

// HTTPSource 从题库接口拉题，用缓存避免短期内重复出题
type HTTPSource struct {
	url    string
	client *http.Client
	seen   *cache.GeneralCache
}

func NewHTTPSource(url string, seen *cache.GeneralCache) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		seen:   seen,
	}
}

// Fetch 拉取一道新题，最多重试三次跳过近期出过的题
func (s *HTTPSource) Fetch() (*Question, error) {
	var last *Question
	for attempt := 0; attempt < 3; attempt++ {
		q, err := s.fetchOne()
		if err != nil {
			return nil, err
		}
		last = q
		if s.seen == nil {
			return q, nil
		}
		if _, dup := s.seen.Get(q.Text); !dup {
			s.seen.Set(q.Text, true)
			return q, nil
		}
	}
	return last, nil
}

func (s *HTTPSource) fetchOne() (*Question, error) {
	resp, err := s.client.Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("trivia: fetch question: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trivia: question service returned %d", resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("trivia: decode question: %w", err)
	}
	if body.ResponseCode != 0 || len(body.Results) == 0 {
		return nil, errors.New("trivia: question service returned no questions")
	}

	r := body.Results[0]
	answers := append([]string{r.CorrectAnswer}, r.IncorrectAnswers...)
	if len(answers) > len(Letters) {
		answers = answers[:len(Letters)]
	}
	rand.Shuffle(len(answers), func(i, j int) {
		answers[i], answers[j] = answers[j], answers[i]
	})

	q := &Question{
		Text:    html.UnescapeString(r.Question),
		Answers: make(map[string]string, len(answers)),
	}
	for i, a := range answers {
		letter := Letters[i]
		q.Answers[letter] = html.UnescapeString(a)
		if a == r.CorrectAnswer {
			q.Correct = letter
		}
	}
	return q, nil
}
