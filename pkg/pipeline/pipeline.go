// Package pipeline runs the load → plan → render flow shared by the CLI and
// the HTTP server.
//
// # Stages
//
//  1. Load: read a roster from CSV or JSON ([LoadRoster], [ParseRoster])
//  2. Plan: resolve dimensions and place members into a [chart.Document]
//  3. Render: produce artifacts (txt, json, dot, svg, png) from a document
//
// Each stage can be run on its own. A [Runner] adds caching: plans are keyed
// by the roster's content hash and the options that affect placement, and
// artifacts by the document's hash and format.
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, members, pipeline.Options{
//	    Layout:  "stacked",
//	    Formats: []string{"svg", "txt"},
//	})
//	svg := result.Artifacts["svg"]
//
// [chart.Document]: github.com/matzehuels/seatchart/pkg/chart.Document
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seatchart/pkg/cache"
	"github.com/matzehuels/seatchart/pkg/chart"
	"github.com/matzehuels/seatchart/pkg/errors"
	"github.com/matzehuels/seatchart/pkg/roster"
	"github.com/matzehuels/seatchart/pkg/seating"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultLayout is the layout used when none is given.
const DefaultLayout = string(seating.ModeSideBySide)

// Format constants for output formats.
const (
	FormatText = "txt"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// DefaultFormats are rendered when no format is requested.
var DefaultFormats = []string{FormatJSON}

// ContentTypes maps formats to MIME types.
var ContentTypes = map[string]string{
	FormatText: "text/plain; charset=utf-8",
	FormatJSON: "application/json",
	FormatDOT:  "text/vnd.graphviz",
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for planning and rendering.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Plan options
	Layout    string   `json:"layout,omitempty"`
	PartOrder []string `json:"part_order,omitempty"` // defaults to the roster's parts in first-seen order
	Rows      int      `json:"rows,omitempty"`
	MaxPerRow int      `json:"max_per_row,omitempty"`
	RowSizes  []int    `json:"row_sizes,omitempty"` // back to front; overrides Rows and MaxPerRow
	Strict    bool     `json:"strict,omitempty"`
	Refresh   bool     `json:"refresh,omitempty"`

	// Display hints, stored on the document
	Title      string `json:"title,omitempty"`
	Flipped    bool   `json:"flipped,omitempty"`
	Staggered  bool   `json:"staggered,omitempty"`
	Curved     bool   `json:"curved,omitempty"`
	AisleAfter *int   `json:"aisle_after,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the planned chart.
	Document *chart.Document

	// RosterHash is the content hash of the roster.
	RosterHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Members    int
	Placed     int
	Unplaced   int
	Rows       int
	PlanTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PlanHit   bool
	RenderHit bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: txt, json, dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills in defaults, taking
// the part order from members when none is set. Calling it again is a no-op.
func (o *Options) ValidateAndSetDefaults(members []roster.Member) error {
	if o.validated {
		return nil
	}
	if len(o.PartOrder) == 0 {
		o.PartOrder = roster.UniqueParts(members)
	}
	if err := o.ValidateForPlan(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForPlan checks the placement options and applies plan defaults.
func (o *Options) ValidateForPlan() error {
	o.SetPlanDefaults()
	if _, err := seating.ParseMode(o.Layout); err != nil {
		return err
	}
	if err := errors.ValidatePartOrder(o.PartOrder); err != nil {
		return err
	}
	if o.Rows < 0 || o.MaxPerRow < 0 {
		return errors.New(errors.ErrCodeInvalidDimensions, "rows and max per row must not be negative")
	}
	if err := errors.ValidateRowSizes(o.RowSizes); err != nil {
		return err
	}
	if o.AisleAfter != nil && *o.AisleAfter < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "aisle position must not be negative")
	}
	return nil
}

// SetPlanDefaults sets default values for planning.
func (o *Options) SetPlanDefaults() {
	if o.Layout == "" {
		o.Layout = DefaultLayout
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = DefaultFormats
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// Mode returns the parsed layout.
func (o *Options) Mode() seating.Mode {
	m, _ := seating.ParseMode(o.Layout)
	return m
}

// ChartKeyOpts returns cache key options for planning. Display hints are
// excluded: they are applied after a cache hit.
func (o *Options) ChartKeyOpts() cache.ChartKeyOpts {
	return cache.ChartKeyOpts{
		Layout:    o.Layout,
		PartOrder: o.PartOrder,
		Rows:      o.Rows,
		MaxPerRow: o.MaxPerRow,
		RowSizes:  o.RowSizes,
		Strict:    o.Strict,
	}
}

// applyDisplay copies the display hints onto doc.
func (o *Options) applyDisplay(doc *chart.Document) {
	doc.Title = o.Title
	doc.Flipped = o.Flipped
	doc.Staggered = o.Staggered
	doc.Curved = o.Curved
	doc.AisleAfter = o.AisleAfter
}
