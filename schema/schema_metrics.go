package schema

// MetricsTerm describes one scoring term for display purposes.
type MetricsTerm struct {
	Key     BreakdownKey `json:"key"`
	Max     float64      `json:"max"`
	Formula string       `json:"formula"`
}

// MetricsRenderModel contains all data needed for displaying the scoring definitions.
type MetricsRenderModel struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Terms       []MetricsTerm `json:"terms"`
	Categories  []Category    `json:"categories"`
}
