// Package gst contiene el motor de impuestos y totales (GST India) compartido por
// cotizaciones y facturas: resolución intra/interestatal, cálculo por línea,
// agregación del documento y monto en letras.
//
// Es un paquete puro: sin I/O, sin errores. Las entradas inválidas se degradan a 0
// para que el recálculo en vivo tolere datos a medio escribir.
package gst

import "strings"

// stateCodes códigos GST de estados y territorios de la unión (dos dígitos).
// La clave es el nombre normalizado (minúsculas, espacios simples).
var stateCodes = map[string]string{
	"jammu and kashmir":                        "01",
	"himachal pradesh":                         "02",
	"punjab":                                   "03",
	"chandigarh":                               "04",
	"uttarakhand":                              "05",
	"haryana":                                  "06",
	"delhi":                                    "07",
	"rajasthan":                                "08",
	"uttar pradesh":                            "09",
	"bihar":                                    "10",
	"sikkim":                                   "11",
	"arunachal pradesh":                        "12",
	"nagaland":                                 "13",
	"manipur":                                  "14",
	"mizoram":                                  "15",
	"tripura":                                  "16",
	"meghalaya":                                "17",
	"assam":                                    "18",
	"west bengal":                              "19",
	"jharkhand":                                "20",
	"odisha":                                   "21",
	"chhattisgarh":                             "22",
	"madhya pradesh":                           "23",
	"gujarat":                                  "24",
	"dadra and nagar haveli and daman and diu": "26",
	"maharashtra":                              "27",
	"karnataka":                                "29",
	"goa":                                      "30",
	"lakshadweep":                              "31",
	"kerala":                                   "32",
	"tamil nadu":                               "33",
	"puducherry":                               "34",
	"andaman and nicobar islands":              "35",
	"telangana":                                "36",
	"andhra pradesh":                           "37",
	"ladakh":                                   "38",
}

// stateNames índice inverso código → nombre para mostrar.
var stateNames = func() map[string]string {
	m := make(map[string]string, len(stateCodes))
	for name, code := range stateCodes {
		m[code] = titleCase(name)
	}
	return m
}()

// StateCodeFromGSTIN devuelve los dos primeros caracteres del GSTIN si son dígitos; si no, "".
func StateCodeFromGSTIN(gstin string) string {
	g := strings.TrimSpace(gstin)
	if len(g) < 2 || !isDigit(g[0]) || !isDigit(g[1]) {
		return ""
	}
	return g[:2]
}

// StateCodeFromName resuelve el lugar de suministro (nombre de estado) a su código GST.
// Acepta también un código de dos dígitos conocido. Nombres desconocidos devuelven "".
func StateCodeFromName(placeOfSupply string) string {
	p := normalize(placeOfSupply)
	if p == "" {
		return ""
	}
	if len(p) == 2 && isDigit(p[0]) && isDigit(p[1]) {
		if _, ok := stateNames[p]; ok {
			return p
		}
		return ""
	}
	return stateCodes[p]
}

// StateName devuelve el nombre del estado para un código GST, o "" si no existe.
func StateName(code string) string {
	return stateNames[strings.TrimSpace(code)]
}

// IsInterstate decide el régimen GST del documento.
// Solo es interestatal (IGST) cuando ambos códigos existen y difieren; ante cualquier
// dato faltante se asume intraestatal (CGST+SGST).
func IsInterstate(companyGSTIN, placeOfSupply string) bool {
	companyCode := StateCodeFromGSTIN(companyGSTIN)
	supplyCode := StateCodeFromName(placeOfSupply)
	if companyCode == "" || supplyCode == "" {
		return false
	}
	return companyCode != supplyCode
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "&", "and")
	return strings.Join(strings.Fields(s), " ")
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == "and" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
