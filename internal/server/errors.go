package server

import (
	"errors"

	"github.com/jonathan/company-insight/internal/llm"
	"github.com/jonathan/company-insight/internal/pipeline"
	"github.com/jonathan/company-insight/internal/registry"
)

// failureClass buckets pipeline failures for status-code selection.
type failureClass int

const (
	failureGeneration failureClass = iota
	failureValidation
	failureConfig
	failureLookup
)

// classify maps a pipeline error to a failure class. Missing credentials are
// config failures regardless of which stage detected them; every other
// lookup-stage failure is reported as not-found.
func classify(err error) failureClass {
	if registry.IsKind(err, registry.KindConfig) || errors.Is(err, llm.ErrMissingAPIKey) {
		return failureConfig
	}

	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) {
		switch stageErr.Stage {
		case pipeline.StageValidation:
			return failureValidation
		case pipeline.StageLookup:
			return failureLookup
		}
	}

	return failureGeneration
}
