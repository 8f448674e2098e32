package verify

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Status buckets a cross-check result.
type Status string

const (
	Confirmed  Status = "confirmed"   // close match to a trusted headline
	Unclear    Status = "unclear"     // weak match, needs human review
	LikelyFake Status = "likely_fake" // no trusted headline comes close
)

// Result is the advisory verdict of a cross-check. It never overrides the
// heuristic accept/reject decision.
type Result struct {
	Status     Status  `json:"status"`
	Similarity float64 `json:"similarity"`
	BestMatch  string  `json:"best_match,omitempty"`
}

// CrossChecker compares a submission against trusted headlines via
// embedding cosine similarity.
type CrossChecker struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional
}

func New(cfg Config) *CrossChecker {
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(cfg.APIKey)
	}
	model := openai.EmbeddingModel(cfg.Model)
	if cfg.Model == "" {
		model = openai.SmallEmbedding3
	}
	return &CrossChecker{client: c, model: model}
}

// Check embeds the submission together with every trusted headline and
// reports the best cosine similarity.
func (c *CrossChecker) Check(ctx context.Context, text string, headlines []string) (Result, error) {
	text = strings.TrimSpace(text)
	if text == "" || len(headlines) == 0 {
		return Result{}, errors.New("nothing to cross-check")
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	inputs := append([]string{text}, headlines...)
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: inputs,
		Model: c.model,
	})
	if err != nil {
		return Result{}, fmt.Errorf("create embeddings: %w", err)
	}
	if len(resp.Data) != len(inputs) {
		return Result{}, fmt.Errorf("embedding count mismatch: got %d, want %d", len(resp.Data), len(inputs))
	}

	sub := resp.Data[0].Embedding
	best, bestIdx := -1.0, 0
	for i := 1; i < len(resp.Data); i++ {
		if sim := cosine(sub, resp.Data[i].Embedding); sim > best {
			best = sim
			bestIdx = i - 1
		}
	}
	return Result{Status: bucket(best), Similarity: best, BestMatch: headlines[bestIdx]}, nil
}

func bucket(sim float64) Status {
	switch {
	case sim > 0.8:
		return Confirmed
	case sim > 0.5:
		return Unclear
	default:
		return LikelyFake
	}
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
