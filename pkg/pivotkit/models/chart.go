package models

// ChartKind identifies the visualization assigned to a relationship.
type ChartKind string

const (
	ChartBar     ChartKind = "bar"
	ChartPie     ChartKind = "pie"
	ChartLine    ChartKind = "line"
	ChartHeatmap ChartKind = "heatmap"
	ChartScatter ChartKind = "scatter"
	ChartArea    ChartKind = "area"
)

// Backend identifies which rendering tier produced a chart image.
type Backend string

const (
	// BackendPrimary is the interactive-capable renderer (headless rasterization).
	BackendPrimary Backend = "primary"
	// BackendSecondary is the static fallback renderer.
	BackendSecondary Backend = "secondary"
	// BackendNone means both tiers failed; the chart has no image.
	BackendNone Backend = "none"
)

// ChartSpec is the rendering outcome for one relationship. It is an explicit
// result value rather than an error path: a failed render is a valid spec with
// Backend set to BackendNone and no image.
type ChartSpec struct {
	// Title is the chart title, the relationship title plus a kind suffix.
	Title string
	// Kind is the chart kind assigned by position in the fixed cycle.
	Kind ChartKind
	// Backend records which tier produced Image.
	Backend Backend
	// Image holds the rasterized PNG, nil when Backend is BackendNone.
	Image []byte
	// Figure is a structured, JSON-safe description of the chart that a
	// caller can re-render interactively. Present only for BackendPrimary.
	Figure map[string]any
}
