package analysis

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/haruapp/haru-backend/internal/config"
)

func completionBody(content string) string {
	return `{"choices":[{"message":{"content":` + content + `}}]}`
}

func TestAnalyzeEmptyText(t *testing.T) {
	c := NewClient(&config.Config{})
	result, err := c.Analyze(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.EmotionScore != 0 || len(result.Keywords) != 0 {
		t.Errorf("empty text should yield a zero result, got %+v", result)
	}
}

func TestAnalyzeProviderSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(completionBody(`"{\"emotion_score\":1.4,\"keywords\":[\"가족\",\"운동\"]}"`)))
	}))
	defer server.Close()

	c := NewClient(&config.Config{
		GLMAPIKey: "test-key",
		GLMAPIURL: server.URL,
		GLMModel:  "glm-4-flash",
	})

	result, err := c.Analyze(context.Background(), "가족과 운동을 했다")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.EmotionScore != 1.4 {
		t.Errorf("EmotionScore = %v, want 1.4", result.EmotionScore)
	}
	if len(result.Keywords) != 2 {
		t.Errorf("Keywords = %v", result.Keywords)
	}
}

func TestAnalyzeStripsCodeFence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody(`"` + "```json\\n{\\\"emotion_score\\\":5,\\\"keywords\\\":[]}\\n```" + `"`)))
	}))
	defer server.Close()

	c := NewClient(&config.Config{GLMAPIKey: "k", GLMAPIURL: server.URL})

	result, err := c.Analyze(context.Background(), "테스트")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	// Out-of-range scores are clamped to the -2..2 scale.
	if result.EmotionScore != 2 {
		t.Errorf("EmotionScore = %v, want clamped 2", result.EmotionScore)
	}
}

func TestAnalyzeFallsBackThroughProviders(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()

	working := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody(`"{\"emotion_score\":-1,\"keywords\":[\"병원\"]}"`)))
	}))
	defer working.Close()

	c := NewClient(&config.Config{
		GLMAPIKey:      "k1",
		GLMAPIURL:      failing.URL,
		DeepSeekAPIKey: "k2",
		DeepSeekAPIURL: working.URL,
	})

	result, err := c.Analyze(context.Background(), "병원에 다녀왔다")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.EmotionScore != -1 || len(result.Keywords) != 1 {
		t.Errorf("result = %+v, want the secondary provider's answer", result)
	}
}

func TestAnalyzeDictionaryFallback(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer failing.Close()

	c := NewClient(&config.Config{GLMAPIKey: "k", GLMAPIURL: failing.URL})

	result, err := c.Analyze(context.Background(), "가족과 행복한 하루")
	if err != nil {
		t.Fatalf("Analyze must not fail on provider errors, got %v", err)
	}
	if len(result.Keywords) != 1 || result.Keywords[0] != "가족" {
		t.Errorf("Keywords = %v, want dictionary fallback", result.Keywords)
	}
}

func TestClampScore(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{3, 2}, {2, 2}, {0.5, 0.5}, {-2, -2}, {-7, -2},
	}
	for _, tc := range cases {
		if got := clampScore(tc.in); got != tc.want {
			t.Errorf("clampScore(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
