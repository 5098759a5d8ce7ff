package services

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/terraincognita07/skinsight/internal/models"
)

// SkinAnalyzer turns an image into an analysis result. Callers never depend on
// a concrete analyzer, so a real model can replace the mock without changes
// elsewhere.
type SkinAnalyzer interface {
	Analyze(ctx context.Context, image string) (models.AnalysisResult, error)
}

const maxRecommendations = 4

var recommendationPool = [...]string{
	"Use a gentle cleanser twice daily to maintain skin health",
	"Apply a suitable moisturizer based on your skin type",
	"Use broad-spectrum SPF 30+ sunscreen daily",
	"Stay hydrated by drinking at least 8 glasses of water daily",
	"Consider a targeted serum for your specific concerns",
	"Get 7-9 hours of quality sleep each night",
	"Reduce stress through meditation or exercise",
}

// RecommendationPool returns a copy of the fixed advice strings an analysis
// may draw from.
func RecommendationPool() []string {
	return append([]string(nil), recommendationPool[:]...)
}

// detectionThreshold is the value a uniform [0,1) draw must exceed for the
// condition to count as detected.
func detectionThreshold(condition models.Condition) float64 {
	switch condition {
	case models.ConditionAcne:
		return 0.6
	case models.ConditionScars:
		return 0.7
	default:
		return 0.5
	}
}

const (
	minPimpleCount = 1
	maxPimpleCount = 8
)

// MockAnalyzer produces random, well-formed results and ignores the image.
type MockAnalyzer struct {
	mu                 sync.Mutex
	rng                *rand.Rand
	consistentSeverity bool
}

type MockAnalyzerOption func(*MockAnalyzer)

// WithRandSource makes the draws reproducible for tests.
func WithRandSource(source rand.Source) MockAnalyzerOption {
	return func(analyzer *MockAnalyzer) {
		analyzer.rng = rand.New(source)
	}
}

// WithConsistentSeverity ties severity to detection: undetected conditions
// report none and detected ones never do.
func WithConsistentSeverity(enabled bool) MockAnalyzerOption {
	return func(analyzer *MockAnalyzer) {
		analyzer.consistentSeverity = enabled
	}
}

func NewMockAnalyzer(options ...MockAnalyzerOption) *MockAnalyzer {
	analyzer := &MockAnalyzer{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, option := range options {
		option(analyzer)
	}
	return analyzer
}

func (analyzer *MockAnalyzer) Analyze(ctx context.Context, _ string) (models.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return models.AnalysisResult{}, err
	}
	return analyzer.Generate(), nil
}

func (analyzer *MockAnalyzer) Generate() models.AnalysisResult {
	analyzer.mu.Lock()
	defer analyzer.mu.Unlock()

	pimples := analyzer.drawFinding(models.ConditionPimples)
	count := minPimpleCount + analyzer.rng.IntN(maxPimpleCount-minPimpleCount+1)
	pimples.Count = &count

	healthLevels := models.OverallHealthLevels()
	return models.AnalysisResult{
		Conditions: models.Conditions{
			Pimples:     pimples,
			Acne:        analyzer.drawFinding(models.ConditionAcne),
			Scars:       analyzer.drawFinding(models.ConditionScars),
			DarkCircles: analyzer.drawFinding(models.ConditionDarkCircles),
		},
		OverallHealth:   healthLevels[analyzer.rng.IntN(len(healthLevels))],
		Recommendations: analyzer.drawRecommendations(),
	}
}

func (analyzer *MockAnalyzer) drawFinding(condition models.Condition) models.ConditionFinding {
	detected := analyzer.rng.Float64() > detectionThreshold(condition)

	levels := models.SeverityLevels(condition)
	if analyzer.consistentSeverity {
		if !detected {
			return models.ConditionFinding{Detected: false, Severity: models.SeverityNone}
		}
		levels = levels[1:]
	}

	return models.ConditionFinding{
		Detected: detected,
		Severity: levels[analyzer.rng.IntN(len(levels))],
	}
}

func (analyzer *MockAnalyzer) drawRecommendations() []string {
	pool := RecommendationPool()
	analyzer.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool[:maxRecommendations:maxRecommendations]
}
