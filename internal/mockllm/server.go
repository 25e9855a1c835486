package mockllm

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const defaultMaxTokens = 100

// Server serves the mock completion endpoints.
type Server struct {
	log   *logrus.Logger
	delay time.Duration // simulated inference latency
}

// NewServer creates a Server. delay simulates per-request inference latency
// and may be zero.
func NewServer(log *logrus.Logger, delay time.Duration) *Server {
	return &Server{log: log, delay: delay}
}

// completionRequest is the OpenAI-style completions request body.
type completionRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// completionChoice is one completion alternative.
type completionChoice struct {
	Text         string `json:"text"`
	Index        int    `json:"index"`
	Logprobs     any    `json:"logprobs"`
	FinishReason string `json:"finish_reason"`
}

// completionUsage reports rough token accounting.
type completionUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// completionResponse is the OpenAI-style completions response body.
type completionResponse struct {
	ID      string             `json:"id"`
	Object  string             `json:"object"`
	Created int64              `json:"created"`
	Model   string             `json:"model"`
	Choices []completionChoice `json:"choices"`
	Usage   completionUsage    `json:"usage"`
}

// Health handles GET /health.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Completions handles POST /v1/completions.
func (s *Server) Completions(c *gin.Context) {
	var req completionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	if req.MaxTokens <= 0 {
		req.MaxTokens = defaultMaxTokens
	}
	if req.Model == "" {
		req.Model = "mock-llm"
	}

	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	text := ExtractFinancialInfo(req.Prompt)

	// Rough token estimate: truncate on byte length like the real mock did.
	if len(text) > req.MaxTokens {
		text = text[:req.MaxTokens] + "..."
	}

	promptTokens := len(strings.Fields(req.Prompt))
	completionTokens := len(strings.Fields(text))

	c.JSON(http.StatusOK, completionResponse{
		ID:      fmt.Sprintf("mock-%d", time.Now().UnixMilli()),
		Object:  "text_completion",
		Created: time.Now().Unix(),
		Model:   req.Model,
		Choices: []completionChoice{{
			Text:         text,
			Index:        0,
			FinishReason: "length",
		}},
		Usage: completionUsage{
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
			TotalTokens:      promptTokens + completionTokens,
		},
	})
}

// Models handles GET /v1/models.
func (s *Server) Models(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data": []gin.H{{
			"id":       "mock-llm",
			"object":   "model",
			"created":  time.Now().Unix(),
			"owned_by": "mock",
		}},
	})
}

// NewRouter creates the Gin engine for the mock completion server.
func NewRouter(s *Server) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", s.Health)
	r.POST("/v1/completions", s.Completions)
	r.GET("/v1/models", s.Models)

	return r
}
