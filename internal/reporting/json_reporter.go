// internal/reporting/json_reporter.go
package reporting

import (
	"fmt"
	"io"
	"sync"

	json "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/xkilldash9x/rednote-cli/api/schemas"
	"github.com/xkilldash9x/rednote-cli/internal/observability"
)

// JSONReporter collects envelopes and writes them as one indented document
// on Close: a single object for one envelope, an array otherwise.
// It is thread safe.
type JSONReporter struct {
	writer    io.WriteCloser
	logger    *zap.Logger
	mu        sync.Mutex
	envelopes []*schemas.ResultEnvelope
}

// NewJSONReporter takes ownership of writer.
func NewJSONReporter(writer io.WriteCloser) *JSONReporter {
	return &JSONReporter{
		writer: writer,
		logger: observability.GetLogger().Named("json_reporter"),
	}
}

func (r *JSONReporter) Write(result *schemas.ResultEnvelope) error {
	if result == nil {
		return fmt.Errorf("cannot report a nil result")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.envelopes = append(r.envelopes, result)
	return nil
}

func (r *JSONReporter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var doc interface{} = r.envelopes
	if len(r.envelopes) == 1 {
		doc = r.envelopes[0]
	} else if r.envelopes == nil {
		doc = []*schemas.ResultEnvelope{}
	}

	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	encodeErr := encoder.Encode(doc)
	// Always attempt to close the writer, regardless of encoding success.
	closeErr := r.writer.Close()

	if encodeErr != nil {
		r.logger.Error("Failed to encode results to JSON", zap.Error(encodeErr))
		return fmt.Errorf("failed to encode JSON output: %w", encodeErr)
	}
	if closeErr != nil {
		r.logger.Error("Failed to close output writer", zap.Error(closeErr))
		return fmt.Errorf("failed to close output writer: %w", closeErr)
	}
	r.logger.Debug("Wrote JSON report", zap.Int("envelopes", len(r.envelopes)))
	return nil
}

// JSONLReporter streams one compact line per record as each envelope arrives,
// so partial output survives an interrupted run.
type JSONLReporter struct {
	writer  io.WriteCloser
	logger  *zap.Logger
	mu      sync.Mutex
	encoder *json.Encoder
	records int
}

// NewJSONLReporter takes ownership of writer.
func NewJSONLReporter(writer io.WriteCloser) *JSONLReporter {
	encoder := json.NewEncoder(writer)
	encoder.SetEscapeHTML(false)
	return &JSONLReporter{
		writer:  writer,
		logger:  observability.GetLogger().Named("jsonl_reporter"),
		encoder: encoder,
	}
}

func (r *JSONLReporter) Write(result *schemas.ResultEnvelope) error {
	if result == nil {
		return fmt.Errorf("cannot report a nil result")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range result.Records() {
		if err := r.encoder.Encode(rec); err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
		r.records++
	}
	return nil
}

func (r *JSONLReporter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.writer.Close(); err != nil {
		r.logger.Error("Failed to close output writer", zap.Error(err))
		return fmt.Errorf("failed to close output writer: %w", err)
	}
	r.logger.Debug("Wrote JSONL report", zap.Int("records", r.records))
	return nil
}
