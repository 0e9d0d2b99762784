// Package core defines the shared language of the carmsdw system.
//
// This package contains:
//   - Warehouse row types for the bronze, silver, and gold layers
//   - Run bookkeeping types (Run, StageResult)
//   - Province and description-section vocabularies
//
// The Golden Rule: pkg/core imports ONLY stdlib. All other packages
// depend on core, not the reverse.
package core
