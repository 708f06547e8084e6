package metrics

// Wrapper exposes the narrow method set other packages consume, so they
// depend on small interfaces instead of prometheus types.
type Wrapper struct {
	m *Metrics
}

// NewWrapper wraps a Metrics instance.
func NewWrapper(m *Metrics) *Wrapper {
	return &Wrapper{m: m}
}

func (w *Wrapper) PredictionsInc() {
	w.m.PredictionsTotal.Inc()
}

func (w *Wrapper) PredictionFailuresInc() {
	w.m.PredictionFailures.Inc()
}

func (w *Wrapper) UnknownLabelInc() {
	w.m.UnknownLabels.Inc()
}

func (w *Wrapper) InvalidInputInc() {
	w.m.InvalidInputs.Inc()
}

func (w *Wrapper) PredictionLatencyObserve(seconds float64) {
	w.m.PredictionLatency.Observe(seconds)
}

func (w *Wrapper) PredictedPriceObserve(price float64) {
	w.m.PredictedPrices.Observe(price)
}

func (w *Wrapper) ModelAgeSet(seconds float64) {
	w.m.ModelAge.Set(seconds)
}

func (w *Wrapper) HistoryWriteInc() {
	w.m.HistoryWrites.Inc()
}

func (w *Wrapper) HistoryWriteErrorInc() {
	w.m.HistoryWriteErrors.Inc()
}
