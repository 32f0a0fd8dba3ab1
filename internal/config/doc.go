// Package config loads axis configurations.
//
// An axes file lists named axes, each describing an engine (linear, log or
// time), the interval to divide, the tick budgets and the engine options:
//
//	axes:
//	  - name: temperature
//	    min: -12.5
//	    max: 38
//	    max_major: 6
//	    max_minor: 4
//	  - name: january
//	    engine: time
//	    min: 2024-01-01
//	    max: 2024-02-01
//	    timezone: Europe/Berlin
//
// Files are YAML or CUE. Both are checked against an embedded CUE schema
// before the semantic checks (duplicate names, bounds, time zones) run.
// All problems are reported together as ValidationErrors.
//
// Axis names are NFC normalized so that visually identical names compare
// equal.
package config
