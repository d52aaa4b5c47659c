// Package chart defines the serialized form of a seating chart.
//
// A [Document] carries the placed grid together with the options it was
// built with and the display hints (flip, stagger, curve, aisle) that the
// renderers honor. It is the format written by the CLI, stored by
// [github.com/matzehuels/seatchart/pkg/store] and exchanged by the HTTP API.
//
// Seats are encoded row by row, back to front:
//
//	[[{"row":0,"position":0,"singer":{"name":"Ann","voice_part":"Alto","height":64}},
//	  {"row":0,"position":1,"singer":null}]]
//
// [EncodeToken] wraps a document in URL-safe base64 so a chart can travel
// through a single form field or query parameter.
package chart
