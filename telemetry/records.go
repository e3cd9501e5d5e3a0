package telemetry

// ZoomStepRecord is one zoom-to-fit solver iteration.
type ZoomStepRecord struct {
	Fit        int     `csv:"fit"`       // fit run number within the session
	Iteration  int     `csv:"iteration"` // step index within the run
	Status     string  `csv:"status"`
	Radius     float32 `csv:"radius"`
	FocusX     float32 `csv:"focus_x"`
	FocusY     float32 `csv:"focus_y"`
	FocusZ     float32 `csv:"focus_z"`
	MinMarginX float32 `csv:"min_margin_x"`
	MinMarginY float32 `csv:"min_margin_y"`
	SpanX      float32 `csv:"span_x"`
	SpanY      float32 `csv:"span_y"`
}

// TeleportRecord is one boundary wrap.
type TeleportRecord struct {
	Tick    int64   `csv:"tick"`
	FromX   float32 `csv:"from_x"`
	FromY   float32 `csv:"from_y"`
	FromZ   float32 `csv:"from_z"`
	ToX     float32 `csv:"to_x"`
	ToY     float32 `csv:"to_y"`
	ToZ     float32 `csv:"to_z"`
	NormalX float32 `csv:"normal_x"`
	NormalY float32 `csv:"normal_y"`
	NormalZ float32 `csv:"normal_z"`
}
