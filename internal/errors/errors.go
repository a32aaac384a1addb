// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrCropNotFound        = errors.New("crop not found")
	ErrFeedUnavailable     = errors.New("live feed unavailable")
	ErrWeatherUnavailable  = errors.New("weather unavailable")
	ErrInsufficientHistory = errors.New("insufficient price history")
	ErrTimeout             = errors.New("operation timed out")
	ErrConfigInvalid       = errors.New("invalid configuration")
)

// CropNotFoundError indicates a commodity is absent from every available
// price source. No further fallback exists, so this is fatal for a query.
type CropNotFoundError struct {
	Crop string
}

func (e *CropNotFoundError) Error() string {
	return fmt.Sprintf("no price data found for crop %q", e.Crop)
}

func (e *CropNotFoundError) Unwrap() error {
	return ErrCropNotFound
}

// NewCropNotFoundError creates a new CropNotFoundError.
func NewCropNotFoundError(crop string) *CropNotFoundError {
	return &CropNotFoundError{Crop: crop}
}

// DataLoadError indicates the fallback dataset could not be read at all.
// This is a configuration problem, not a transient one.
type DataLoadError struct {
	Path string
	Err  error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("data load error [%s]: %v", e.Path, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// NewDataLoadError creates a new DataLoadError.
func NewDataLoadError(path string, err error) *DataLoadError {
	return &DataLoadError{Path: path, Err: err}
}

// FeedError describes why a live price fetch was unavailable. It is carried
// inside the fetch result for logging and never surfaced to callers as a
// failure; the fallback dataset handles the query instead.
type FeedError struct {
	Endpoint string
	Status   int
	Reason   string
	Err      error
}

func (e *FeedError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("feed error [%s] status %d: %s", e.Endpoint, e.Status, e.Reason)
	}
	if e.Err != nil {
		return fmt.Sprintf("feed error [%s]: %s: %v", e.Endpoint, e.Reason, e.Err)
	}
	return fmt.Sprintf("feed error [%s]: %s", e.Endpoint, e.Reason)
}

func (e *FeedError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrFeedUnavailable
}

// NewFeedError creates a new FeedError.
func NewFeedError(endpoint string, status int, reason string, err error) *FeedError {
	return &FeedError{Endpoint: endpoint, Status: status, Reason: reason, Err: err}
}

// WeatherError describes why a live weather fetch failed. The weather agent
// converts it into an offline observation; it never escapes the agent.
type WeatherError struct {
	City   string
	Status int
	Err    error
}

func (e *WeatherError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("weather error [%s]: status %d", e.City, e.Status)
	}
	return fmt.Sprintf("weather error [%s]: %v", e.City, e.Err)
}

func (e *WeatherError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrWeatherUnavailable
}

// NewWeatherError creates a new WeatherError.
func NewWeatherError(city string, status int, err error) *WeatherError {
	return &WeatherError{City: city, Status: status, Err: err}
}

// AgentError represents an error from an advisory agent.
type AgentError struct {
	AgentName string
	Operation string
	Err       error
}

func (e *AgentError) Error() string {
	return fmt.Sprintf("agent error [%s] %s: %v", e.AgentName, e.Operation, e.Err)
}

func (e *AgentError) Unwrap() error {
	return e.Err
}

// NewAgentError creates a new AgentError.
func NewAgentError(agentName, operation string, err error) *AgentError {
	return &AgentError{AgentName: agentName, Operation: operation, Err: err}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
