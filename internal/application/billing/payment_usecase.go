package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/solar-epc-api/internal/application/dto"
	"github.com/jhoicas/solar-epc-api/internal/application/ports"
	"github.com/jhoicas/solar-epc-api/internal/domain"
	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
	"github.com/jhoicas/solar-epc-api/internal/domain/schedule"
	"github.com/jhoicas/solar-epc-api/pkg/money"
)

// PaymentUseCase registra cobros contra facturas y etapas del plan de pagos.
type PaymentUseCase struct {
	txRunner    ports.TxRunner
	invoiceRepo repository.InvoiceRepository
	projectRepo repository.ProjectRepository
	paymentRepo repository.PaymentRepository
	metrics     ports.MetricsRecorder
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(
	txRunner ports.TxRunner,
	invoiceRepo repository.InvoiceRepository,
	projectRepo repository.ProjectRepository,
	paymentRepo repository.PaymentRepository,
	metrics ports.MetricsRecorder,
) *PaymentUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &PaymentUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		projectRepo: projectRepo,
		paymentRepo: paymentRepo,
		metrics:     metrics,
	}
}

// RecordPayment guarda el cobro y actualiza, en la misma transacción, el saldo de la
// factura y lo recibido en la etapa del proyecto. Ninguno de los dos puede quedar
// sobrepagado (ErrOverpayment).
func (uc *PaymentUseCase) RecordPayment(ctx context.Context, companyID, userID string, in dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: el monto debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if !entity.ValidPaymentMode(in.Mode) {
		return nil, fmt.Errorf("%w: medio de pago %q", domain.ErrInvalidInput, in.Mode)
	}
	if in.InvoiceID == "" && in.ProjectID == "" {
		return nil, fmt.Errorf("%w: indique invoice_id o project_id", domain.ErrInvalidInput)
	}
	if in.Stage != "" && !schedule.ValidStage(in.Stage) {
		return nil, fmt.Errorf("%w: etapa %q", domain.ErrInvalidInput, in.Stage)
	}
	now := time.Now()
	date, err := parseDate(in.Date, now)
	if err != nil {
		return nil, err
	}

	payment := &entity.Payment{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		InvoiceID: in.InvoiceID,
		ProjectID: in.ProjectID,
		Stage:     in.Stage,
		Amount:    in.Amount,
		Mode:      in.Mode,
		Reference: in.Reference,
		Date:      date,
		Notes:     in.Notes,
		CreatedBy: userID,
		CreatedAt: now,
	}
	resp := &dto.PaymentResponse{
		ID:        payment.ID,
		InvoiceID: payment.InvoiceID,
		Stage:     payment.Stage,
		Amount:    payment.Amount,
		Mode:      payment.Mode,
		Reference: payment.Reference,
		Date:      date.Format(dateLayout),
	}

	err = uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		if payment.InvoiceID != "" {
			inv, err := repos.Invoices.GetForUpdate(ctx, payment.InvoiceID)
			if err != nil {
				return err
			}
			if inv == nil {
				return fmt.Errorf("factura: %w", domain.ErrNotFound)
			}
			if inv.CompanyID != companyID {
				return domain.ErrForbidden
			}
			if payment.Amount.GreaterThan(inv.Balance) {
				return fmt.Errorf("%w: saldo %s, pago %s", domain.ErrOverpayment, money.FormatINR(inv.Balance, 2), money.FormatINR(payment.Amount, 2))
			}
			inv.ApplyPayment(payment.Amount)
			inv.UpdatedAt = now
			if err := repos.Invoices.UpdatePayment(ctx, inv); err != nil {
				return err
			}
			if payment.ProjectID == "" {
				payment.ProjectID = inv.ProjectID
			}
			resp.InvoiceStatus = inv.DisplayStatus(now)
		}

		if payment.Stage != "" {
			if payment.ProjectID == "" {
				return fmt.Errorf("%w: la etapa requiere project_id", domain.ErrInvalidInput)
			}
			status, err := applyToStage(ctx, repos, companyID, payment)
			if err != nil {
				return err
			}
			resp.StageStatus = status
		} else if payment.ProjectID != "" {
			project, err := repos.Projects.GetByID(ctx, payment.ProjectID)
			if err != nil {
				return err
			}
			if project == nil || project.CompanyID != companyID {
				return fmt.Errorf("proyecto: %w", domain.ErrNotFound)
			}
		}
		return repos.Payments.Create(ctx, payment)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.PaymentRecorded(payment.Mode, payment.Amount)
	resp.ProjectID = payment.ProjectID
	return resp, nil
}

func applyToStage(ctx context.Context, repos repository.TxRepositories, companyID string, payment *entity.Payment) (string, error) {
	project, err := repos.Projects.GetByID(ctx, payment.ProjectID)
	if err != nil {
		return "", err
	}
	if project == nil || project.CompanyID != companyID {
		return "", fmt.Errorf("proyecto: %w", domain.ErrNotFound)
	}
	for i := range project.Stages {
		st := &project.Stages[i]
		if st.Name != payment.Stage {
			continue
		}
		pending := st.Amount.Sub(st.Received)
		if payment.Amount.GreaterThan(pending) {
			return "", fmt.Errorf("%w: etapa %s pendiente %s", domain.ErrOverpayment, st.Name, money.FormatINR(pending, 2))
		}
		st.Received = st.Received.Add(payment.Amount)
		st.Status = schedule.StageStatus(st.Amount, st.Received)
		if err := repos.Projects.UpdateStage(ctx, st); err != nil {
			return "", err
		}
		return st.Status, nil
	}
	return "", fmt.Errorf("etapa %s: %w", payment.Stage, domain.ErrNotFound)
}

// ListByInvoice cobros de una factura.
func (uc *PaymentUseCase) ListByInvoice(ctx context.Context, companyID, invoiceID string) ([]dto.PaymentResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	list, err := uc.paymentRepo.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return toPaymentResponses(list), nil
}

// ListByProject cobros de un proyecto.
func (uc *PaymentUseCase) ListByProject(ctx context.Context, companyID, projectID string) ([]dto.PaymentResponse, error) {
	project, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	if project.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	list, err := uc.paymentRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return toPaymentResponses(list), nil
}

func toPaymentResponses(list []*entity.Payment) []dto.PaymentResponse {
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.PaymentResponse{
			ID:        p.ID,
			InvoiceID: p.InvoiceID,
			ProjectID: p.ProjectID,
			Stage:     p.Stage,
			Amount:    p.Amount,
			Mode:      p.Mode,
			Reference: p.Reference,
			Date:      p.Date.Format(dateLayout),
		})
	}
	return out
}
