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
	"github.com/dvloznov/mail-processors/internal/statement"
	"github.com/dvloznov/mail-processors/internal/writer"
)

// StatementProcessor runs the credit-card statement flow for one message:
// PDF attachments → decrypt → extract → classify → persist → dispatch.
type StatementProcessor struct {
	cfg       *config.Config
	extractor Extractor
	decryptor Decryptor
	bridge    MailBridge
}

// NewStatementProcessor wires the statement flow.
func NewStatementProcessor(cfg *config.Config, extractor Extractor, decryptor Decryptor, bridge MailBridge) *StatementProcessor {
	return &StatementProcessor{cfg: cfg, extractor: extractor, decryptor: decryptor, bridge: bridge}
}

// Process handles one .eml end-to-end and returns the terminal outcome. The
// caller removes the temporary .eml afterwards regardless of outcome.
func (p *StatementProcessor) Process(ctx context.Context, emlPath, messageID string) (Outcome, error) {
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

	log.Info().Msg("processing statement message")

	workDir, err := os.MkdirTemp("", "eecc-")
	if err != nil {
		return OutcomeFailed, fmt.Errorf("pipeline: temp dir: %w", err)
	}
	defer os.RemoveAll(workDir)
	state.WorkDir = workDir

	pipe := New(
		&ExtractAttachmentsStep{},
		&DecryptStatementStep{Decryptor: p.decryptor, Password: p.cfg.PDFPassword},
		&ExtractStatementStep{Extractor: p.extractor},
		&ClassifyStatementStep{},
		&PersistStatementStep{OutputDir: p.cfg.OutputDir},
	)

	runErr := pipe.Execute(ctx, state)
	return p.dispatch(ctx, state, runErr)
}

// dispatch maps the run error to a terminal outcome and applies the matching
// mail-state side effect. Only a fully persisted run moves the message.
func (p *StatementProcessor) dispatch(ctx context.Context, state *State, runErr error) (Outcome, error) {
	log := logger.FromContext(ctx)

	switch {
	case runErr == nil:
		if state.MessageID != "" {
			if p.bridge.MarkReadAndMove(ctx, state.MessageID, p.cfg.StatementFolder) {
				log.Info().Str("folder", p.cfg.StatementFolder).Msg("message marked read and moved")
			} else {
				log.Warn().Msg("statement persisted but message could not be moved")
			}
		}
		return OutcomeSuccess, nil

	case errors.Is(runErr, ErrNotStatement):
		log.Warn().Msg("document is not a credit-card statement, skipping")
		if state.MessageID != "" && !p.bridge.Flag(ctx, state.MessageID, mailbridge.FlagOrange) {
			log.Warn().Msg("could not flag skipped message")
		}
		return OutcomeSkipped, nil

	case isContentError(runErr):
		// No usable attachment or no decryptable statement: nothing to log
		// to the error file, nothing to flag, a human will see the unread
		// message.
		log.Error().Err(runErr).Msg("no processable statement in message")
		return OutcomeFailed, runErr

	default:
		log.Error().Err(runErr).Msg("statement processing failed")
		errLog := filepath.Join(p.cfg.OutputDir, p.cfg.StatementErrorLog)
		if logErr := writer.AppendErrorLog(errLog, filepath.Base(state.EMLPath), runErr); logErr != nil {
			log.Error().Err(logErr).Msg("could not append to error log")
		}
		if state.MessageID != "" && !p.bridge.Flag(ctx, state.MessageID, mailbridge.FlagRed) {
			log.Warn().Msg("could not flag failed message")
		}
		return OutcomeFailed, runErr
	}
}

// isContentError reports failures that happened before any extraction was
// attempted: these leave no trace beyond stdout.
func isContentError(err error) bool {
	return errors.Is(err, eml.ErrNoAttachment) ||
		errors.Is(err, eml.ErrNoContent) ||
		errors.Is(err, ErrNoProtectedPDF)
}

// ExtractAttachmentsStep parses the .eml and collects its PDF attachments.
type ExtractAttachmentsStep struct{}

func (s *ExtractAttachmentsStep) Execute(ctx context.Context, state *State) error {
	f, err := os.Open(state.EMLPath)
	if err != nil {
		return fmt.Errorf("open eml: %w", err)
	}
	defer f.Close()

	msg, err := eml.Parse(f)
	if err != nil {
		return err
	}

	pdfs, err := msg.PDFAttachments()
	if err != nil {
		return err
	}
	state.PDFs = pdfs

	log := logger.FromContext(ctx)
	for _, pdf := range pdfs {
		log.Info().Str("filename", pdf.Filename).Int("bytes", len(pdf.Data)).Msg("found PDF attachment")
	}
	return nil
}

// DecryptStatementStep selects the statement among the attachments: the
// first password-protected PDF in document order. Unprotected PDFs are
// skipped with a note. If the protected one will not decrypt, the whole
// message is unprocessable; later candidates are not tried.
type DecryptStatementStep struct {
	Decryptor Decryptor
	Password  string
}

func (s *DecryptStatementStep) Execute(ctx context.Context, state *State) error {
	log := logger.FromContext(ctx)

	for _, pdf := range state.PDFs {
		staged := filepath.Join(state.WorkDir, filepath.Base(pdf.Filename))
		if err := os.WriteFile(staged, pdf.Data, 0o600); err != nil {
			return fmt.Errorf("stage attachment: %w", err)
		}

		if !s.Decryptor.IsEncrypted(ctx, staged) {
			log.Info().Str("filename", pdf.Filename).Msg("not password-protected, skipping")
			continue
		}

		log.Info().Str("filename", pdf.Filename).Msg("protected PDF found")
		decrypted := filepath.Join(state.WorkDir, "decrypted_"+filepath.Base(pdf.Filename))
		if err := s.Decryptor.Decrypt(ctx, staged, decrypted, s.Password); err != nil {
			return fmt.Errorf("%w: %v", ErrNoProtectedPDF, err)
		}

		data, err := os.ReadFile(decrypted)
		if err != nil {
			return fmt.Errorf("read decrypted pdf: %w", err)
		}
		state.DecryptedPDF = decrypted
		state.PDFBytes = data
		log.Info().Str("filename", pdf.Filename).Msg("PDF decrypted")
		return nil
	}

	return ErrNoProtectedPDF
}

// ExtractStatementStep calls the model with the decrypted PDF.
type ExtractStatementStep struct {
	Extractor Extractor
}

func (s *ExtractStatementStep) Execute(ctx context.Context, state *State) error {
	log := logger.FromContext(ctx)
	log.Info().Msg("extracting statement with model")
	ext, err := s.Extractor.Statement(ctx, state.PDFBytes)
	if err != nil {
		return err
	}
	state.Extraction = ext
	return nil
}

// ClassifyStatementStep stops the run when the extractor says the document
// is not a genuine statement.
type ClassifyStatementStep struct{}

func (s *ClassifyStatementStep) Execute(ctx context.Context, state *State) error {
	if !state.Extraction.Metadata.IsStatement {
		return ErrNotStatement
	}
	return nil
}

// PersistStatementStep writes the per-currency CSVs, the JSON snapshot and
// the renamed PDF copy under the statement's base name.
type PersistStatementStep struct {
	OutputDir string
}

func (s *PersistStatementStep) Execute(ctx context.Context, state *State) error {
	log := logger.FromContext(ctx)
	ext := state.Extraction

	state.BaseName = statement.BaseName(ext.Metadata)
	log.Info().Str("base_name", state.BaseName).Msg("persisting extraction")
	logSummary(ctx, ext)

	for _, cur := range []statement.Currency{statement.PEN, statement.USD} {
		path := filepath.Join(s.OutputDir, fmt.Sprintf("%s %s.csv", state.BaseName, cur))
		wrote, err := writer.AppendStatementCSV(ext.Records, path, cur)
		if err != nil {
			return err
		}
		if !wrote {
			log.Info().Str("currency", string(cur)).Msg("no records in currency")
			continue
		}
		log.Info().Str("path", path).Msg("CSV written")
	}

	jsonPath := filepath.Join(s.OutputDir, state.BaseName+".json")
	if err := writer.WriteJSON(ext, jsonPath); err != nil {
		return err
	}
	log.Info().Str("path", jsonPath).Msg("JSON snapshot written")

	pdfPath := filepath.Join(s.OutputDir, state.BaseName+".pdf")
	copied, err := writer.CopyPDF(state.DecryptedPDF, pdfPath)
	if err != nil {
		return err
	}
	if !copied {
		log.Warn().Str("path", pdfPath).Msg("destination PDF already exists, original preserved")
	} else {
		log.Info().Str("path", pdfPath).Msg("PDF copied")
	}
	return nil
}

// logSummary emits the per-run extraction summary.
func logSummary(ctx context.Context, ext *statement.Extraction) {
	log := logger.FromContext(ctx)

	pen := statement.FilterCurrency(ext.Records, statement.PEN)
	usd := statement.FilterCurrency(ext.Records, statement.USD)

	ev := log.Info().
		Str("issuer", ext.Metadata.Issuer).
		Str("card_network", ext.Metadata.CardNetwork).
		Str("closing_date", ext.Metadata.ClosingDate).
		Int("records", len(ext.Records)).
		Int("records_pen", len(pen)).
		Int("records_usd", len(usd)).
		Str("total_pen", statement.Total(pen).String()).
		Str("total_usd", statement.Total(usd).String())

	if b := ext.Metadata.OpeningBalancePEN; b != nil {
		ev = ev.Str("opening_balance_pen", b.String())
	}
	if b := ext.Metadata.ClosingBalancePEN; b != nil {
		ev = ev.Str("closing_balance_pen", b.String())
	}
	if b := ext.Metadata.OpeningBalanceUSD; b != nil {
		ev = ev.Str("opening_balance_usd", b.String())
	}
	if b := ext.Metadata.ClosingBalanceUSD; b != nil {
		ev = ev.Str("closing_balance_usd", b.String())
	}

	ev.Msg("extraction summary")
}
