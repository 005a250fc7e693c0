package worker

// report_worker.go
// Processes closed-shift jobs from QueueShiftReport: renders the PDF and,
// when a recipient is configured, queues the email that carries it.

import (
	"context"
	"encoding/json"
	"fmt"

	"routevendor/internal/dto"
	"routevendor/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailEnqueuer is satisfied by *Dispatcher.
type EmailEnqueuer interface {
	EnqueueEmail(ctx context.Context, payload EmailJobPayload) error
}

type ReportWorker struct {
	emails      EmailEnqueuer
	storagePath string
	emailTo     string
}

func NewReportWorker(emails EmailEnqueuer, storagePath, emailTo string) *ReportWorker {
	return &ReportWorker{emails: emails, storagePath: storagePath, emailTo: emailTo}
}

func (w *ReportWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var report dto.ShiftReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return fmt.Errorf("report_worker: invalid payload: %w", err)
	}

	path, err := infra.GenerateShiftReportPDF(&report, w.storagePath)
	if err != nil {
		return err
	}
	log.Info().Str("work_day_id", report.WorkDayID).Str("path", path).Msg("report_worker: PDF generated")

	if w.emailTo == "" || w.emails == nil {
		return nil
	}
	return w.emails.EnqueueEmail(ctx, EmailJobPayload{
		ToEmail: w.emailTo,
		Subject: "Reporte de jornada - " + report.RouteName,
		Body: fmt.Sprintf("Jornada %s cerrada.\nTotal ventas: $%s\nCaja final: $%s",
			report.WorkDayID, report.TotalVentas.StringFixed(2), report.FinalPettyCash.StringFixed(2)),
		PDFPath: path,
	})
}
