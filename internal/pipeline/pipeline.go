// Package pipeline orchestrates the enrichment pipeline: input validation,
// registry lookup, report generation. Stages run strictly sequentially and
// the pipeline is terminal on the first failure; no retries, no partial
// results.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/company-insight/internal/registry"
)

// Stage identifies which pipeline stage a failure came from.
type Stage string

const (
	// StageValidation rejects empty input before any outbound call.
	StageValidation Stage = "validation"
	// StageLookup is the registry lookup stage.
	StageLookup Stage = "lookup"
	// StageGeneration is the report generation stage.
	StageGeneration Stage = "generation"
)

// ErrEmptyName indicates the company name was empty after trimming.
var ErrEmptyName = errors.New("company name is empty")

// StageError tags a stage failure so the response assembler can map it to a
// transport status without inspecting message strings.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Result is the pipeline's success outcome: the raw record and the report
// generated from it.
type Result struct {
	Record registry.Record
	Report string
}

// Lookuper is the registry lookup stage contract.
type Lookuper interface {
	Lookup(ctx context.Context, name string) (registry.Record, error)
}

// Generator is the report generation stage contract.
type Generator interface {
	Generate(ctx context.Context, record registry.Record) (string, error)
}

// Analyzer runs the full pipeline for one company name per call. It holds
// no per-request state; a single Analyzer serves concurrent requests.
type Analyzer struct {
	registry  Lookuper
	generator Generator
	logger    *zap.Logger
}

// New creates an Analyzer from its two stages.
func New(reg Lookuper, gen Generator, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		registry:  reg,
		generator: gen,
		logger:    logger,
	}
}

// Analyze validates the name, looks up the record and generates the report.
// On failure it returns a *StageError; generation failures discard the
// already-fetched record.
func (a *Analyzer) Analyze(ctx context.Context, name string) (*Result, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		observeOutcome(StageValidation, false)
		return nil, &StageError{Stage: StageValidation, Err: ErrEmptyName}
	}

	lookupStart := time.Now()
	record, err := a.registry.Lookup(ctx, name)
	lookupDur := time.Since(lookupStart)
	observeStage(StageLookup, lookupDur)
	if err != nil {
		observeOutcome(StageLookup, false)
		a.logger.Warn("registry lookup failed",
			zap.String("company", name),
			zap.Error(err))
		return nil, &StageError{Stage: StageLookup, Err: err}
	}

	genStart := time.Now()
	report, err := a.generator.Generate(ctx, record)
	genDur := time.Since(genStart)
	observeStage(StageGeneration, genDur)
	if err != nil {
		observeOutcome(StageGeneration, false)
		a.logger.Error("report generation failed",
			zap.String("company", name),
			zap.Error(err))
		return nil, &StageError{Stage: StageGeneration, Err: err}
	}

	observeOutcome("", true)
	a.logger.Info("analysis complete",
		zap.String("company", name),
		zap.Duration("lookup", lookupDur),
		zap.Duration("generation", genDur),
		zap.Int("report_length", len(report)))

	return &Result{Record: record, Report: report}, nil
}
