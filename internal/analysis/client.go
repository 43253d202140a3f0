package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/haruapp/haru-backend/internal/config"
)

// Result is what the text-analysis oracle returns for one entry:
// a continuous emotion score on the -2..2 scale and raw keyword
// candidates. Candidates are unvalidated; the stats layer filters
// them.
type Result struct {
	EmotionScore float64  `json:"emotion_score"`
	Keywords     []string `json:"keywords"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const analysisSystemPrompt = `You analyze a personal diary entry.
Score the overall emotion from -2 (very negative) to 2 (very positive)
and extract up to 5 short topic keywords that literally appear in the
text. Return ONLY a JSON object: {"emotion_score":0.0,"keywords":["..."]}`

// Client calls an OpenAI-compatible chat completions endpoint to
// analyze entry text, trying the primary provider first and then the
// fallback. When no provider answers it degrades to the local
// dictionary extractor instead of failing.
type Client struct {
	cfg  *config.Config
	http *http.Client
}

// NewClient creates an analysis Client bounded by cfg.AITimeout.
func NewClient(cfg *config.Config) *Client {
	timeout := cfg.AITimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
	}
}

// Analyze extracts an emotion score and keyword candidates from text.
// It never returns an error for provider trouble: timeouts, transport
// failures and malformed completions all fall back to the dictionary
// extractor so a slow oracle cannot block or break a read.
func (c *Client) Analyze(ctx context.Context, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return &Result{EmotionScore: 0, Keywords: []string{}}, nil
	}

	if c.cfg.GLMAPIKey != "" {
		result, err := c.analyzeWithProvider(ctx, c.cfg.GLMAPIURL, c.cfg.GLMAPIKey, c.cfg.GLMModel, text)
		if err == nil {
			return result, nil
		}
		slog.Warn("GLM analysis failed", "error", err)
	}

	if c.cfg.DeepSeekAPIKey != "" {
		result, err := c.analyzeWithProvider(ctx, c.cfg.DeepSeekAPIURL, c.cfg.DeepSeekAPIKey, c.cfg.DeepSeekModel, text)
		if err == nil {
			return result, nil
		}
		slog.Warn("DeepSeek analysis failed", "error", err)
	}

	return FallbackAnalyze(text), nil
}

func (c *Client) analyzeWithProvider(ctx context.Context, apiURL, apiKey, model, text string) (*Result, error) {
	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: analysisSystemPrompt},
			{Role: "user", Content: text},
		},
		Temperature: 0.2,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("analysis API error: status %d", resp.StatusCode)
	}

	var completion chatResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return nil, err
	}
	if len(completion.Choices) == 0 {
		return nil, errors.New("no response from analysis model")
	}

	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	var result Result
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse analysis result: %w", err)
	}

	result.EmotionScore = clampScore(result.EmotionScore)
	if result.Keywords == nil {
		result.Keywords = []string{}
	}
	return &result, nil
}

func clampScore(score float64) float64 {
	if score > 2 {
		return 2
	}
	if score < -2 {
		return -2
	}
	return score
}
