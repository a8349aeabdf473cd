// Package pipeline sequences one message through content extraction,
// decryption or normalization, model extraction, classification, persistence
// and mail-state dispatch.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/dvloznov/mail-processors/internal/eml"
	"github.com/dvloznov/mail-processors/internal/statement"
	"github.com/dvloznov/mail-processors/internal/taxi"
)

// Outcome is the terminal state of one pipeline run.
type Outcome int

const (
	// OutcomeSuccess: the document was extracted and persisted; the source
	// message is marked read and moved to its category folder.
	OutcomeSuccess Outcome = iota
	// OutcomeSkipped: classification said the source is not a real document
	// (an ad, a promo). Nothing is persisted; the message is flagged orange
	// and left unread for review.
	OutcomeSkipped
	// OutcomeFailed: the run failed; the message stays in place, optionally
	// flagged red, and the failure is logged.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

var (
	// ErrNoProtectedPDF means no attachment was password-protected, or the
	// protected one would not decrypt. Unprotected PDFs are never selected
	// as the statement.
	ErrNoProtectedPDF = errors.New("pipeline: no decryptable password-protected statement found")

	// ErrNotStatement is the classification-negative outcome for the
	// statement flow.
	ErrNotStatement = errors.New("pipeline: document is not a credit-card statement")

	// ErrNotTrip is the classification-negative outcome for the taxi flow.
	ErrNotTrip = errors.New("pipeline: message is not a trip receipt")
)

// State holds the shared state across all pipeline steps for one message.
type State struct {
	EMLPath   string
	MessageID string
	RunID     string
	WorkDir   string

	PDFs         []eml.PDF
	DecryptedPDF string
	PDFBytes     []byte
	Content      string

	Extraction *statement.Extraction
	Trip       *taxi.Trip
	BaseName   string
}

// Step is a single stage in the pipeline.
type Step interface {
	Execute(ctx context.Context, state *State) error
}

// Pipeline executes a sequence of steps in order, stopping at the first
// error.
type Pipeline struct {
	steps []Step
}

// New creates a pipeline with the given steps.
func New(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Execute runs all steps sequentially against state.
func (p *Pipeline) Execute(ctx context.Context, state *State) error {
	for i, step := range p.steps {
		if err := step.Execute(ctx, state); err != nil {
			return fmt.Errorf("pipeline step %d: %w", i+1, err)
		}
	}
	return nil
}
