// Package pkg provides the core libraries for seatchart choir seating.
//
// # Overview
//
// Seatchart turns a roster of singers into a seating chart: members are
// grouped by voice part, each part gets its own block of seats, and the
// tallest singers stand at the back. The pkg directory is organized into
// four areas:
//
//  1. Domain logic: [roster], [seating] and [chart]
//  2. Output: [render]
//  3. Infrastructure: [cache], [store], [config] and [observability]
//  4. Orchestration: [pipeline] and the HTTP [server]
//
// # Architecture
//
// The typical data flow:
//
//	CSV or JSON roster
//	         ↓
//	    [roster] package (members, parts, heights)
//	         ↓
//	    [seating] package (dimensions + placement)
//	         ↓
//	    [chart] package (document with display hints)
//	         ↓
//	    [render] package (text, DOT, SVG, PNG)
//
// # Quick Start
//
// Plan a roster and print it:
//
//	import (
//	    "fmt"
//	    "github.com/matzehuels/seatchart/pkg/pipeline"
//	    "github.com/matzehuels/seatchart/pkg/render"
//	)
//
//	members, _ := pipeline.LoadRoster("choir.csv")
//	doc, _ := pipeline.Plan(members, pipeline.Options{Layout: "stacked"})
//	fmt.Print(render.Text(doc))
//
// [pipeline.Runner] adds caching on top of the same calls; the CLI and the
// HTTP server both use it.
//
// # Errors
//
// Every package reports failures through [errors], so callers can switch on
// a code such as CAPACITY_EXCEEDED instead of matching messages.
package pkg
