// Package ml holds the regression model and the inference path around it.
// The model is trained offline; this package only loads the serialized tree
// and serves single-vector predictions.
package ml

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// MetricsInterface defines the metrics methods needed by the predictor.
type MetricsInterface interface {
	PredictionsInc()
	PredictionFailuresInc()
	PredictionLatencyObserve(float64)
	PredictedPriceObserve(float64)
	ModelAgeSet(float64)
}

// Predictor wraps the regression tree with input validation and metrics.
// One prediction per call, no batching, no retries, no fallback model.
type Predictor struct {
	model    *RegressionTree
	metrics  MetricsInterface
	mu       sync.RWMutex
	lastUsed time.Time
}

// NewPredictor wires a loaded model to the metrics sink. metrics may be nil.
func NewPredictor(model *RegressionTree, metrics MetricsInterface) (*Predictor, error) {
	if model == nil {
		return nil, fmt.Errorf("model is required")
	}

	p := &Predictor{model: model, metrics: metrics}

	if metrics != nil && !model.TrainedAt().IsZero() {
		metrics.ModelAgeSet(time.Since(model.TrainedAt()).Seconds())
	}

	log.Info().
		Str("model_version", model.Version()).
		Int("feature_count", model.FeatureCount()).
		Msg("predictor ready")

	return p, nil
}

// Predict runs inference on one assembled feature vector and returns the
// predicted price. Validation failures and inference errors are returned to
// the caller; nothing here panics or crashes the process.
func (p *Predictor) Predict(features []float64) (float64, error) {
	start := time.Now()

	price, err := p.predict(features)

	if p.metrics != nil {
		p.metrics.PredictionLatencyObserve(time.Since(start).Seconds())
		if err != nil {
			p.metrics.PredictionFailuresInc()
		} else {
			p.metrics.PredictionsInc()
			p.metrics.PredictedPriceObserve(price)
		}
	}

	if err != nil {
		log.Error().Err(err).Int("features", len(features)).Msg("prediction failed")
		return 0, err
	}

	p.mu.Lock()
	p.lastUsed = time.Now()
	p.mu.Unlock()

	return price, nil
}

func (p *Predictor) predict(features []float64) (float64, error) {
	if len(features) == 0 {
		return 0, fmt.Errorf("empty feature vector")
	}
	for i, f := range features {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("feature %d is not finite", i)
		}
		if f > 1e10 || f < -1e10 {
			return 0, fmt.Errorf("feature %d has extreme value: %f", i, f)
		}
	}

	price, err := p.model.Predict(features)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("model produced non-finite price")
	}
	if price < 0 {
		return 0, fmt.Errorf("model produced negative price: %f", price)
	}
	return price, nil
}

// ModelVersion reports the loaded model's version string.
func (p *Predictor) ModelVersion() string {
	return p.model.Version()
}

// LastUsed returns the time of the most recent successful prediction.
func (p *Predictor) LastUsed() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastUsed
}
