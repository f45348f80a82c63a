package models

import "fmt"

// InvalidScenarioError indicates a region is missing the baseline fields the
// requested simulation type requires.
type InvalidScenarioError struct {
	RegionID       string
	SimulationType SimulationType
	Missing        string
}

func (e *InvalidScenarioError) Error() string {
	return fmt.Sprintf("region %s has no %s baseline for %s simulation",
		e.RegionID, e.Missing, e.SimulationType)
}

// IsTransient returns false as scenario errors are permanent
func (e *InvalidScenarioError) IsTransient() bool {
	return false
}

// InvalidRangeError indicates a scenario date range failed the engine's
// defensive re-check. Full bounds validation is the upstream validator's job;
// this only catches inverted or over-long ranges.
type InvalidRangeError struct {
	Field   string
	Message string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *InvalidRangeError) IsTransient() bool {
	return false
}

// UnknownSimulationTypeError is a programmer error: the economics dispatch
// was handed a domain string outside the closed simulation-type set.
type UnknownSimulationTypeError struct {
	Type string
}

func (e *UnknownSimulationTypeError) Error() string {
	return fmt.Sprintf("unknown simulation type: %q", e.Type)
}

func (e *UnknownSimulationTypeError) IsTransient() bool {
	return false
}

// UnknownCropError indicates a crop name outside the closed crop set.
type UnknownCropError struct {
	Crop string
}

func (e *UnknownCropError) Error() string {
	return fmt.Sprintf("unknown crop type: %q", e.Crop)
}

func (e *UnknownCropError) IsTransient() bool {
	return false
}

// UnknownRegionError indicates a region name absent from the injected
// reference tables.
type UnknownRegionError struct {
	Region string
}

func (e *UnknownRegionError) Error() string {
	return fmt.Sprintf("unknown region: %q", e.Region)
}

func (e *UnknownRegionError) IsTransient() bool {
	return false
}
