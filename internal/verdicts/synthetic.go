package verdicts

import (
	"context"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/JaimeStill/reviewguard/internal/classifier"
)

const authenticThreshold = 0.3

var (
	authenticSentiment  = Sentiment{Positive: 70, Negative: 10, Neutral: 20}
	suspiciousSentiment = Sentiment{Positive: 30, Negative: 60, Neutral: 20}
)

// SyntheticURLSource produces placeholder verdicts for product URLs. The
// random source is injected so results are reproducible under a fixed seed.
// Repeat scans of a URL within the cache TTL return the same verdict.
type SyntheticURLSource struct {
	mu    sync.Mutex
	rng   *rand.Rand
	cache *cache.Cache
}

// NewSyntheticURLSource creates a source drawing from rng. A zero ttl
// disables the per-URL cache.
func NewSyntheticURLSource(rng *rand.Rand, ttl time.Duration) *SyntheticURLSource {
	s := &SyntheticURLSource{rng: rng}
	if ttl > 0 {
		s.cache = cache.New(ttl, 2*ttl)
	}
	return s
}

// NewSeededRand returns a PCG-backed generator. A zero seed draws one from
// the runtime's entropy source.
func NewSeededRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (s *SyntheticURLSource) Name() string {
	return "synthetic"
}

func (s *SyntheticURLSource) Score(ctx context.Context, sub Submission) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	key := strings.TrimSpace(sub.Text)

	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			return cloneOutcome(cached.(Outcome)), nil
		}
	}

	s.mu.Lock()
	out := synthesize(s.rng, ExtractProductName(key))
	s.mu.Unlock()

	if s.cache != nil {
		s.cache.SetDefault(key, cloneOutcome(out))
	}

	return out, nil
}

// synthesize draws exactly three values from rng, in order: authenticity,
// confidence, then total reviews.
func synthesize(rng *rand.Rand, productName string) Outcome {
	authentic := rng.Float64() > authenticThreshold

	var (
		prediction classifier.Prediction
		confidence float64
		sentiment  Sentiment
	)

	if authentic {
		prediction = classifier.Real
		confidence = 0.70 + rng.Float64()*0.25
		sentiment = authenticSentiment
	} else {
		prediction = classifier.Fake
		confidence = 0.10 + rng.Float64()*0.40
		sentiment = suspiciousSentiment
	}

	return Outcome{
		Result: classifier.Result{
			Prediction: prediction,
			Confidence: confidence,
		},
		Scan: &Scan{
			ProductName:  productName,
			TotalReviews: int(math.Floor(rng.Float64()*500)) + 50,
			Sentiment:    sentiment,
		},
	}
}

func cloneOutcome(o Outcome) Outcome {
	o.Result.Reasons = slices.Clone(o.Result.Reasons)
	if o.Scan != nil {
		scan := *o.Scan
		o.Scan = &scan
	}
	return o
}
