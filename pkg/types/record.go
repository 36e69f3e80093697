// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data model and configuration structs
// passed between the CLI and the internal stages.
package types

// Record is the outcome of looking up one roll number on the results
// portal. Once returned by the lookup stage it is never mutated; records
// accumulate in input order and are consumed by the report writers.
type Record struct {
	// RollNo is the roll number as displayed by the portal, falling back
	// to the queried value when the portal echoes nothing back.
	RollNo string `json:"roll_no" yaml:"roll_no"`

	// Name is the candidate name, empty when the portal reports an error
	// or omits the field.
	Name string `json:"name" yaml:"name"`

	// Result is the marks/result text, a server-reported message, or an
	// "Error: ..." description for infrastructure failures.
	Result string `json:"result" yaml:"result"`
}
