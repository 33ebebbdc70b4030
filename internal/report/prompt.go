// Package report implements the report generation stage: turning a registry
// record into an analyst instruction pair and driving the completion
// provider. Prompt construction is a pure function so the one piece of
// business logic (what the model is asked to compute and how missing fields
// are described) is testable without any network dependency.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/company-insight/internal/llm"
	"github.com/jonathan/company-insight/internal/prompts"
	"github.com/jonathan/company-insight/internal/registry"
)

// ReferenceYear is the fixed year the analyst template anchors tenure
// computation to.
const ReferenceYear = 2025

// promptFile holds the analyst persona and instruction template.
const promptFile = "report.json"

// MarshalRecord serializes a registry record the way the instruction
// template expects it: non-ASCII characters preserved, 2-space indentation.
func MarshalRecord(record registry.Record) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record); err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// BuildMessages renders the two-message instruction exchange for a record:
// a system message establishing the persona and format strictness, and a
// user message embedding the serialized record.
func BuildMessages(record registry.Record) ([]llm.Message, error) {
	payload, err := MarshalRecord(record)
	if err != nil {
		return nil, err
	}

	system, err := prompts.Get(promptFile, "system")
	if err != nil {
		return nil, err
	}

	tmpl, err := prompts.Get(promptFile, "report")
	if err != nil {
		return nil, err
	}

	user := prompts.Format(tmpl, map[string]string{
		"Year":        strconv.Itoa(ReferenceYear),
		"CompanyJSON": payload,
	})

	return []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	}, nil
}
