package biometric

import (
	"errors"
	"math"
	"time"
)

// ErrEmbeddingDimensionMismatch indicates a template/version configuration
// fault, not a low-quality match. Callers treat it as fatal.
var ErrEmbeddingDimensionMismatch = errors.New("embedding dimension mismatch")

// TemplateEmbedding is a decrypted template ready for matching.
type TemplateEmbedding struct {
	TemplateID string
	Embedding  []float32
	CreatedAt  time.Time
}

type MatchResult struct {
	TemplateID string
	Similarity float64
}

// MatchTemplates scores the live embedding against every active template and
// returns the best match. Returns nil when there are no templates. Ties are
// broken in favour of the most recently created template.
func MatchTemplates(live []float32, templates []TemplateEmbedding) (*MatchResult, error) {
	if len(templates) == 0 {
		return nil, nil
	}

	var best *MatchResult
	var bestCreatedAt time.Time
	for _, template := range templates {
		if len(template.Embedding) != len(live) {
			return nil, ErrEmbeddingDimensionMismatch
		}
		similarity := CosineSimilarity(live, template.Embedding)
		if best == nil || similarity > best.Similarity ||
			(similarity == best.Similarity && template.CreatedAt.After(bestCreatedAt)) {
			best = &MatchResult{TemplateID: template.TemplateID, Similarity: similarity}
			bestCreatedAt = template.CreatedAt
		}
	}
	return best, nil
}

// CosineSimilarity computes the cosine similarity between two embeddings,
// clamped to [0, 1] since stored embeddings may not be perfectly
// unit-normalised. Degenerate (zero-norm) vectors score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	dotProduct := 0.0
	normA := 0.0
	normB := 0.0

	for i := 0; i < len(a); i++ {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	similarity := dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))

	if similarity > 1.0 {
		similarity = 1.0
	}
	if similarity < 0.0 {
		similarity = 0.0
	}

	return similarity
}
