// Package einvoice: número de referencia de factura (IRN) para facturación electrónica GST.
// Algoritmo: SHA-256 sobre GSTIN del emisor + año fiscal + tipo de documento + número.
package einvoice

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Tipos de documento usados en la cadena IRN.
const (
	DocTypeInvoice    = "INV"
	DocTypeCreditNote = "CRN"
	DocTypeDebitNote  = "DBN"
)

// IRN genera el hash hexadecimal (64 caracteres, minúsculas) del documento.
// Cadena (sin separadores): GSTIN + AñoFiscal + TipoDoc + NumDoc. GSTIN y TipoDoc se
// normalizan a mayúsculas y los espacios del número se eliminan.
func IRN(gstin, financialYear, docType, docNo string) (string, error) {
	g := strings.ToUpper(strings.TrimSpace(gstin))
	if len(g) != 15 {
		return "", fmt.Errorf("einvoice: GSTIN inválido %q", gstin)
	}
	fy := strings.TrimSpace(financialYear)
	if fy == "" {
		return "", fmt.Errorf("einvoice: año fiscal es obligatorio")
	}
	dt := strings.ToUpper(strings.TrimSpace(docType))
	if dt == "" {
		return "", fmt.Errorf("einvoice: tipo de documento es obligatorio")
	}
	no := strings.Join(strings.Fields(docNo), "")
	if no == "" {
		return "", fmt.Errorf("einvoice: número de documento es obligatorio")
	}

	sum := sha256.Sum256([]byte(g + fy + dt + no))
	return hex.EncodeToString(sum[:]), nil
}

// FinancialYear año fiscal indio (abril a marzo) de t, formato "2025-26".
func FinancialYear(t time.Time) string {
	start := t.Year()
	if t.Month() < time.April {
		start--
	}
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}
