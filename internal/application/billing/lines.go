package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/solar-epc-api/internal/application/dto"
	"github.com/jhoicas/solar-epc-api/internal/domain"
	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
	"github.com/jhoicas/solar-epc-api/internal/domain/gst"
	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
)

const (
	dateLayout      = "2006-01-02"
	defaultTermDays = 30
)

var hundred = decimal.NewFromInt(100)

// pricedDocument líneas calculadas por el motor GST y los totales del documento.
type pricedDocument struct {
	PlaceOfSupply string
	Interstate    bool
	Lines         []entity.DocumentLine
	Results       []gst.LineResult
	Totals        gst.DocumentTotals
	items         map[string]*entity.Item
}

// linePricer resuelve artículos y calcula las líneas de un documento.
type linePricer struct {
	itemRepo repository.ItemRepository
}

// placeOfSupply lugar de suministro pedido o, si viene vacío, el estado del cliente.
func placeOfSupply(requested string, customer *entity.Customer) string {
	if p := strings.TrimSpace(requested); p != "" {
		return p
	}
	if customer != nil {
		return customer.State
	}
	return ""
}

// price calcula las líneas. En modo estricto (guardar) los datos inválidos son un error
// de validación; en modo libre (preview) se delega en el motor, que lleva a 0 lo inválido.
func (p linePricer) price(
	ctx context.Context,
	company *entity.Company,
	customer *entity.Customer,
	requestedPOS string,
	tcsRate decimal.Decimal,
	reqs []dto.DocumentLineRequest,
	strict bool,
) (*pricedDocument, error) {
	if strict {
		if len(reqs) == 0 {
			return nil, fmt.Errorf("%w: el documento no tiene líneas", domain.ErrInvalidInput)
		}
		if tcsRate.IsNegative() || tcsRate.GreaterThan(decimal.NewFromInt(10)) {
			return nil, fmt.Errorf("%w: TCS fuera de rango (0-10)", domain.ErrInvalidInput)
		}
	}
	pos := placeOfSupply(requestedPOS, customer)
	doc := &pricedDocument{
		PlaceOfSupply: pos,
		Interstate:    gst.IsInterstate(company.GSTIN, pos),
		Lines:         make([]entity.DocumentLine, 0, len(reqs)),
		Results:       make([]gst.LineResult, 0, len(reqs)),
		items:         make(map[string]*entity.Item),
	}

	for i, r := range reqs {
		line := entity.DocumentLine{
			ID:          uuid.New().String(),
			Position:    i + 1,
			ItemID:      r.ItemID,
			Description: strings.TrimSpace(r.Description),
			HSNCode:     strings.TrimSpace(r.HSNCode),
			Unit:        strings.TrimSpace(r.Unit),
		}
		var unitPrice, rate decimal.Decimal
		if r.UnitPrice != nil {
			unitPrice = *r.UnitPrice
		}
		if r.GSTRate != nil {
			rate = *r.GSTRate
		}

		if r.ItemID != "" {
			item, err := p.item(ctx, doc, company.ID, r.ItemID)
			if err != nil {
				return nil, err
			}
			if line.Description == "" {
				line.Description = item.Name
			}
			if line.HSNCode == "" {
				line.HSNCode = item.HSNCode
			}
			if line.Unit == "" {
				line.Unit = item.Unit
			}
			if r.UnitPrice == nil {
				unitPrice = item.SalePrice
			}
			if r.GSTRate == nil {
				rate = item.GSTRate
			}
		}

		if strict {
			if err := validateLine(i+1, line, r, unitPrice, rate); err != nil {
				return nil, err
			}
		}

		mode := gst.DiscountByPercent
		if r.DiscountMode == string(gst.DiscountByAmount) {
			mode = gst.DiscountByAmount
		}
		res := gst.CalculateLine(gst.LineInput{
			Quantity:        r.Quantity,
			UnitPrice:       unitPrice,
			DiscountMode:    mode,
			DiscountPercent: r.DiscountPercent,
			DiscountAmount:  r.DiscountAmount,
			GSTRate:         rate,
			Interstate:      doc.Interstate,
		})
		line.Quantity = res.Quantity
		line.UnitPrice = res.UnitPrice
		line.DiscountPercent = res.DiscountPercent
		line.DiscountAmount = res.DiscountAmount
		line.GSTRate = res.GSTRate
		line.TaxableAmount = res.TaxableAmount
		line.CGST = res.CGST
		line.SGST = res.SGST
		line.IGST = res.IGST
		line.TotalAmount = res.TotalAmount

		doc.Lines = append(doc.Lines, line)
		doc.Results = append(doc.Results, res)
	}
	doc.Totals = gst.Aggregate(doc.Results, tcsRate)
	return doc, nil
}

func (p linePricer) item(ctx context.Context, doc *pricedDocument, companyID, itemID string) (*entity.Item, error) {
	if item, ok := doc.items[itemID]; ok {
		return item, nil
	}
	item, err := p.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("artículo %s: %w", itemID, domain.ErrNotFound)
	}
	if item.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	doc.items[itemID] = item
	return item, nil
}

func validateLine(pos int, line entity.DocumentLine, r dto.DocumentLineRequest, unitPrice, rate decimal.Decimal) error {
	switch {
	case line.Description == "":
		return fmt.Errorf("%w: línea %d sin descripción", domain.ErrInvalidInput, pos)
	case !r.Quantity.IsPositive():
		return fmt.Errorf("%w: línea %d con cantidad no positiva", domain.ErrInvalidInput, pos)
	case unitPrice.IsNegative():
		return fmt.Errorf("%w: línea %d con precio negativo", domain.ErrInvalidInput, pos)
	case !gst.ValidRate(rate):
		return fmt.Errorf("%w: línea %d con tasa GST %s no permitida", domain.ErrInvalidInput, pos, rate.String())
	case r.DiscountPercent.IsNegative() || r.DiscountPercent.GreaterThan(hundred):
		return fmt.Errorf("%w: línea %d con descuento fuera de 0-100%%", domain.ErrInvalidInput, pos)
	case r.DiscountAmount.IsNegative():
		return fmt.Errorf("%w: línea %d con descuento negativo", domain.ErrInvalidInput, pos)
	}
	return nil
}

// amountsFrom copia los totales del motor a la entidad persistida.
func amountsFrom(t gst.DocumentTotals) entity.DocumentAmounts {
	return entity.DocumentAmounts{
		Subtotal:      t.Subtotal,
		TotalDiscount: t.TotalDiscount,
		TaxableAmount: t.TaxableAmount,
		CGST:          t.CGST,
		SGST:          t.SGST,
		IGST:          t.IGST,
		TotalGST:      t.TotalGST,
		TCSRate:       t.TCSRate,
		TCSAmount:     t.TCSAmount,
		RoundOff:      t.RoundOff,
		GrandTotal:    t.GrandTotal,
	}
}

// lineResults reconstruye los resultados del motor a partir de líneas guardadas.
func lineResults(lines []entity.DocumentLine) []gst.LineResult {
	out := make([]gst.LineResult, 0, len(lines))
	for _, l := range lines {
		out = append(out, gst.LineResult{
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			GSTRate:         l.GSTRate,
			Gross:           l.TaxableAmount.Add(l.DiscountAmount),
			DiscountPercent: l.DiscountPercent,
			DiscountAmount:  l.DiscountAmount,
			TaxableAmount:   l.TaxableAmount,
			CGST:            l.CGST,
			SGST:            l.SGST,
			IGST:            l.IGST,
			TotalAmount:     l.TotalAmount,
		})
	}
	return out
}

// parseDate interpreta YYYY-MM-DD; vacío devuelve def.
func parseDate(s string, def time.Time) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, s)
	}
	return t, nil
}

func toLineResponses(lines []entity.DocumentLine) []dto.DocumentLineResponse {
	out := make([]dto.DocumentLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.DocumentLineResponse{
			ItemID:          l.ItemID,
			Description:     l.Description,
			HSNCode:         l.HSNCode,
			Unit:            l.Unit,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			DiscountPercent: l.DiscountPercent,
			DiscountAmount:  l.DiscountAmount,
			GSTRate:         l.GSTRate,
			TaxableAmount:   l.TaxableAmount,
			CGST:            l.CGST,
			SGST:            l.SGST,
			IGST:            l.IGST,
			TotalAmount:     l.TotalAmount,
		})
	}
	return out
}

func toTotalsDTO(a entity.DocumentAmounts) dto.DocumentTotalsDTO {
	return dto.DocumentTotalsDTO{
		Subtotal:      a.Subtotal,
		TotalDiscount: a.TotalDiscount,
		TaxableAmount: a.TaxableAmount,
		CGST:          a.CGST,
		SGST:          a.SGST,
		IGST:          a.IGST,
		TotalGST:      a.TotalGST,
		TCSRate:       a.TCSRate,
		TCSAmount:     a.TCSAmount,
		RoundOff:      a.RoundOff,
		GrandTotal:    a.GrandTotal,
		AmountInWords: gst.AmountInWords(a.GrandTotal),
	}
}
