package worker

// alert_worker.go
// Processes staff alert jobs from QueueAlerts: availability checker findings
// are mailed to the configured backoffice address through the SMTP circuit
// breaker so a downed relay never blocks the pool.

import (
	"context"
	"encoding/json"

	"github.com/tettoewai/restaurant-pos-sub001/internal/infra"

	"github.com/rs/zerolog/log"
)

// AlertJobPayload is the job envelope sent to QueueAlerts.
type AlertJobPayload struct {
	CompanyID string `json:"company_id"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

type AlertWorker struct {
	mailer *infra.Mailer
	cb     *infra.CircuitBreaker
	to     string
}

func NewAlertWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, to string) *AlertWorker {
	return &AlertWorker{mailer: mailer, cb: cb, to: to}
}

func (w *AlertWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload AlertJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alert_worker: invalid payload")
		return nil // malformed payloads are not retryable
	}
	if w.to == "" {
		log.Warn().Msg("alert_worker: no alert address configured — skipping")
		return nil
	}

	err := w.cb.Execute(func() error {
		return w.mailer.SendAlert(w.to, payload.Subject, payload.Body)
	})
	if err != nil {
		log.Error().Err(err).Str("company_id", payload.CompanyID).Msg("alert_worker: send failed")
		return err
	}
	log.Info().Str("company_id", payload.CompanyID).Str("to", w.to).Msg("alert_worker: alert sent")
	return nil
}
