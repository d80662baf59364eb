package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"
	"webhook-receiver/internal/metrics"

	"github.com/sirupsen/logrus"
)

const mirrorTimeout = 5 * time.Second

var ErrMalformedPayload = errors.New("malformed payload")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type Mirror interface {
	Publish(ctx context.Context, payload []byte) error
}

type PayloadService struct {
	printer *PayloadPrinter
	mirror  Mirror
	metrics *metrics.Metrics
	logger  *logrus.Logger

	inflight sync.WaitGroup
}

// NewPayloadService returns a service printing to printer. mirror may be nil.
func NewPayloadService(printer *PayloadPrinter, mirror Mirror, m *metrics.Metrics, logger *logrus.Logger) *PayloadService {
	return &PayloadService{
		printer: printer,
		mirror:  mirror,
		metrics: m,
		logger:  logger,
	}
}

// Receive validates body as a single JSON value, prints it pretty-printed and
// hands it to the mirror in the background. Bodies that are not valid JSON
// yield ErrMalformedPayload.
func (ps *PayloadService) Receive(ctx context.Context, body []byte) error {
	payload, err := ValidatePayload(body)
	if err != nil {
		ps.metrics.ObserveResult(metrics.ResultMalformed)
		return err
	}

	doc, err := FormatPayload(payload)
	if err != nil {
		ps.metrics.ObserveResult(metrics.ResultError)
		return fmt.Errorf("format payload: %w", err)
	}

	if err := ps.printer.Print(doc); err != nil {
		ps.metrics.ObserveResult(metrics.ResultError)
		return fmt.Errorf("print payload: %w", err)
	}

	ps.metrics.ObserveResult(metrics.ResultOK)
	ps.metrics.PayloadSize.Observe(float64(len(body)))

	ps.publish(ctx, payload)
	return nil
}

// Wait blocks until every background mirror publish has finished.
func (ps *PayloadService) Wait() {
	ps.inflight.Wait()
}

func (ps *PayloadService) publish(ctx context.Context, payload []byte) {
	if ps.mirror == nil {
		return
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, payload); err != nil {
		ps.logger.WithError(err).Warn("compact payload for mirror")
		return
	}

	// detached from the request: a client hanging up must not cancel the publish
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), mirrorTimeout)
	ps.inflight.Add(1)
	go func() {
		defer ps.inflight.Done()
		defer cancel()

		if err := ps.mirror.Publish(ctx, compact.Bytes()); err != nil {
			ps.metrics.MirrorFailures.Inc()
			ps.logger.WithError(err).Warn("failed to mirror payload")
		}
	}()
}

// ValidatePayload checks that body is exactly one UTF-8 encoded JSON value and
// returns it without a leading byte order mark.
func ValidatePayload(body []byte) ([]byte, error) {
	body = bytes.TrimPrefix(body, utf8BOM)

	if !utf8.Valid(body) {
		return nil, fmt.Errorf("%w: invalid UTF-8", ErrMalformedPayload)
	}

	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return body, nil
}
