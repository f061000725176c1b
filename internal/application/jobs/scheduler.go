package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DefaultReminderSpec todos los días a las 07:00.
const DefaultReminderSpec = "0 7 * * *"

const runTimeout = 2 * time.Minute

// Scheduler ejecuta el ReminderJob según una expresión cron estándar (5 campos).
type Scheduler struct {
	cron *cron.Cron
	job  *ReminderJob
	spec string
	log  zerolog.Logger
}

// NewScheduler crea el planificador. spec vacío usa DefaultReminderSpec.
func NewScheduler(spec string, job *ReminderJob, log zerolog.Logger) *Scheduler {
	if spec == "" {
		spec = DefaultReminderSpec
	}
	return &Scheduler{
		cron: cron.New(),
		job:  job,
		spec: spec,
		log:  log.With().Str("job", "reminder").Logger(),
	}
}

// Start registra el job y arranca el cron. Falla si la expresión no es válida.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runReminder); err != nil {
		return fmt.Errorf("cron %q: %w", s.spec, err)
	}
	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Msg("scheduler iniciado")
	return nil
}

// Stop detiene el cron y espera a que termine la ejecución en curso.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("scheduler detenido")
}

func (s *Scheduler) runReminder() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	reminders, err := s.job.Run(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("recordatorio fallido")
	}
	for _, r := range reminders {
		if !r.Pending() {
			continue
		}
		s.log.Warn().
			Str("company_id", r.CompanyID).
			Str("company", r.CompanyName).
			Int("overdue_invoices", r.OverdueInvoices).
			Str("overdue_amount", r.OverdueAmount.StringFixed(2)).
			Int("due_stages", r.DueStages).
			Int("low_stock_items", r.LowStockItems).
			Msg("pendientes de la empresa")
	}
}
