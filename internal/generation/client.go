// Package generation calls the question-generation collaborator (an
// OpenAI-compatible chat-completions API) and validates its output.
// The call is made once per request; failures surface to the caller
// without retries.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"quiz-platform/internal/models"
)

type Client struct {
	HTTP    *http.Client
	BaseURL string
	APIKey  string
	Model   string
}

func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 120 * time.Second},
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Model:   model,
	}
}

type Params struct {
	Category    string
	Subcategory string
	Difficulty  string
	Count       int
	Type        string
}

// GeneratedQuestion mirrors the collaborator's output schema.
type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateQuestions asks the collaborator for params.Count questions and
// returns the ones that pass validation. Individually invalid questions
// are dropped; an empty valid set is an error.
func (c *Client) GenerateQuestions(ctx context.Context, params Params) ([]GeneratedQuestion, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(params)},
		},
		Temperature: 0.7,
		MaxTokens:   4000,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("generation service returned %d: %s", resp.StatusCode, string(payload))
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, fmt.Errorf("invalid generation response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("generation response contained no choices")
	}

	return ParseQuestions(chat.Choices[0].Message.Content, params.Type)
}

// ParseQuestions decodes the model's JSON payload and keeps only valid
// questions for the requested type.
func ParseQuestions(content, questionType string) ([]GeneratedQuestion, error) {
	var payload struct {
		Questions []GeneratedQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("generation output is not valid JSON: %w", err)
	}

	valid := make([]GeneratedQuestion, 0, len(payload.Questions))
	for _, q := range payload.Questions {
		if Validate(q, questionType) == nil {
			valid = append(valid, q)
		}
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("no valid questions in generation output")
	}
	return valid, nil
}

// Validate checks one generated question against the schema the core
// expects before it is persisted as an ordinary question row.
func Validate(q GeneratedQuestion, questionType string) error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("empty question text")
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return fmt.Errorf("empty correct answer")
	}
	if !models.ValidDifficulty(q.Difficulty) {
		return fmt.Errorf("invalid difficulty %q", q.Difficulty)
	}
	if questionType == models.TypeMCQ {
		if len(q.Options) < 2 {
			return fmt.Errorf("MCQ needs at least 2 options, got %d", len(q.Options))
		}
		found := false
		for _, opt := range q.Options {
			if strings.EqualFold(strings.TrimSpace(opt), strings.TrimSpace(q.CorrectAnswer)) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("correct answer not among options")
		}
	}
	return nil
}

const systemPrompt = `You are an expert educator creating quiz questions. Respond with a valid JSON object of the form {"questions":[{"question":"...","options":["..."],"correctAnswer":"...","explanation":"...","difficulty":"EASY|MEDIUM|HARD"}]}. For MCQ provide 4 options with plausible distractors and the correct answer verbatim among them. For SHORT_ANSWER omit options and keep the correct answer concise. Explanations must say why the answer is right.`

func buildPrompt(p Params) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d %s questions about %s", p.Count, p.Type, p.Category)
	if p.Subcategory != "" {
		fmt.Fprintf(&b, ", specifically %s", p.Subcategory)
	}
	b.WriteString(". ")
	if p.Difficulty == models.DifficultyMix {
		b.WriteString("Mix the difficulty levels across EASY, MEDIUM and HARD.")
	} else {
		fmt.Fprintf(&b, "All questions should be %s difficulty.", p.Difficulty)
	}
	return b.String()
}
