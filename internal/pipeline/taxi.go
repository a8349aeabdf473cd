package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dvloznov/mail-processors/internal/config"
	"github.com/dvloznov/mail-processors/internal/eml"
	"github.com/dvloznov/mail-processors/internal/logger"
	"github.com/dvloznov/mail-processors/internal/mailbridge"
	"github.com/dvloznov/mail-processors/internal/writer"
)

// TaxiProcessor runs the ride-receipt flow for one message:
// body → normalize → extract → classify → append → dispatch.
type TaxiProcessor struct {
	cfg        *config.Config
	extractor  Extractor
	normalizer Normalizer
	bridge     MailBridge
}

// NewTaxiProcessor wires the taxi flow.
func NewTaxiProcessor(cfg *config.Config, extractor Extractor, normalizer Normalizer, bridge MailBridge) *TaxiProcessor {
	return &TaxiProcessor{cfg: cfg, extractor: extractor, normalizer: normalizer, bridge: bridge}
}

// Process handles one .eml end-to-end and returns the terminal outcome.
func (p *TaxiProcessor) Process(ctx context.Context, emlPath, messageID string) (Outcome, error) {
	state := &State{
		EMLPath:   emlPath,
		MessageID: messageID,
		RunID:     uuid.NewString(),
	}

	log := logger.FromContext(ctx).With().
		Str("run_id", state.RunID).
		Str("eml", filepath.Base(emlPath)).
		Logger()
	ctx = logger.WithContext(ctx, log)

	log.Info().Msg("processing taxi message")

	pipe := New(
		&ExtractBodyStep{Normalizer: p.normalizer},
		&ExtractTripStep{Extractor: p.extractor},
		&ClassifyTripStep{},
		&AppendTripStep{CSVPath: filepath.Join(p.cfg.OutputDir, p.cfg.TaxiCSV)},
	)

	runErr := pipe.Execute(ctx, state)
	return p.dispatch(ctx, state, runErr)
}

func (p *TaxiProcessor) dispatch(ctx context.Context, state *State, runErr error) (Outcome, error) {
	log := logger.FromContext(ctx)

	switch {
	case runErr == nil:
		if state.MessageID != "" {
			if p.bridge.MarkReadAndMove(ctx, state.MessageID, p.cfg.TaxiFolder) {
				log.Info().Str("folder", p.cfg.TaxiFolder).Msg("message marked read and moved")
			} else {
				log.Warn().Msg("trip recorded but message could not be moved")
			}
		}
		return OutcomeSuccess, nil

	case errors.Is(runErr, ErrNotTrip):
		log.Warn().Msg("message is not a trip receipt, skipping")
		if state.MessageID != "" && !p.bridge.Flag(ctx, state.MessageID, mailbridge.FlagOrange) {
			log.Warn().Msg("could not flag skipped message")
		}
		return OutcomeSkipped, nil

	case isContentError(runErr):
		log.Error().Err(runErr).Msg("no processable content in message")
		return OutcomeFailed, runErr

	default:
		log.Error().Err(runErr).Msg("taxi processing failed")
		errLog := filepath.Join(p.cfg.OutputDir, p.cfg.TaxiErrorLog)
		if logErr := writer.AppendErrorLog(errLog, filepath.Base(state.EMLPath), runErr); logErr != nil {
			log.Error().Err(logErr).Msg("could not append to error log")
		}
		if state.MessageID != "" && !p.bridge.Flag(ctx, state.MessageID, mailbridge.FlagRed) {
			log.Warn().Msg("could not flag failed message")
		}
		return OutcomeFailed, runErr
	}
}

// ExtractBodyStep reads the message body, preferring HTML, and normalizes it
// into model-ready text.
type ExtractBodyStep struct {
	Normalizer Normalizer
}

func (s *ExtractBodyStep) Execute(ctx context.Context, state *State) error {
	f, err := os.Open(state.EMLPath)
	if err != nil {
		return fmt.Errorf("open eml: %w", err)
	}
	defer f.Close()

	msg, err := eml.Parse(f)
	if err != nil {
		return err
	}

	body, err := msg.Body()
	if err != nil {
		return err
	}

	if body.HTML != "" {
		content, err := s.Normalizer.FromHTML(body.HTML)
		if err != nil {
			return err
		}
		state.Content = content
	} else {
		state.Content = body.Text
	}

	log := logger.FromContext(ctx)
	log.Info().Int("chars", len(state.Content)).Msg("body content extracted")
	return nil
}

// ExtractTripStep calls the model with the normalized content.
type ExtractTripStep struct {
	Extractor Extractor
}

func (s *ExtractTripStep) Execute(ctx context.Context, state *State) error {
	log := logger.FromContext(ctx)
	log.Info().Msg("extracting trip with model")
	trip, err := s.Extractor.Trip(ctx, state.Content)
	if err != nil {
		return err
	}
	state.Trip = trip
	return nil
}

// ClassifyTripStep stops the run when the extractor says the message is not
// a genuine trip receipt.
type ClassifyTripStep struct{}

func (s *ClassifyTripStep) Execute(ctx context.Context, state *State) error {
	if !state.Trip.IsTrip {
		return ErrNotTrip
	}
	return nil
}

// AppendTripStep appends the trip to the consolidated CSV.
type AppendTripStep struct {
	CSVPath string
}

func (s *AppendTripStep) Execute(ctx context.Context, state *State) error {
	if err := writer.AppendTripCSV(state.Trip, s.CSVPath); err != nil {
		return err
	}
	log := logger.FromContext(ctx)
	log.Info().
		Str("provider", state.Trip.Provider).
		Str("date", state.Trip.Date).
		Str("time", state.Trip.Time).
		Str("origin", state.Trip.Origin).
		Str("destination", state.Trip.Destination).
		Str("price", state.Trip.Price.String()).
		Str("currency", string(state.Trip.Currency)).
		Str("path", s.CSVPath).
		Msg("trip appended")
	return nil
}
