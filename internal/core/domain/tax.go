package domain

// TaxOption is the IVA selection of an order.
type TaxOption string

const (
	Tax16     TaxOption = "16%"
	Tax8      TaxOption = "8%"
	Tax0      TaxOption = "0%"
	TaxExempt TaxOption = "Exento"

	DefaultTaxOption = Tax16
)

// TaxOptions lists the selectable options in display order.
var TaxOptions = []TaxOption{Tax16, Tax8, Tax0, TaxExempt}

var taxRates = map[TaxOption]float64{
	Tax16:     0.16,
	Tax8:      0.08,
	Tax0:      0,
	TaxExempt: 0,
}

// Rate returns the nominal rate of the option and whether the option is
// known.
func (o TaxOption) Rate() (float64, bool) {
	r, ok := taxRates[o]
	return r, ok
}

// Valid reports whether o belongs to the closed set of options.
func (o TaxOption) Valid() bool {
	_, ok := taxRates[o]
	return ok
}

// Exempt reports whether the option is the "Exento" one.
func (o TaxOption) Exempt() bool { return o == TaxExempt }

// Currency is a display label only; no conversion is ever applied.
type Currency string

const (
	CurrencyMN  Currency = "MN"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"

	DefaultCurrency = CurrencyMN
)

var Currencies = []Currency{CurrencyMN, CurrencyUSD, CurrencyEUR}

func (c Currency) Valid() bool {
	switch c {
	case CurrencyMN, CurrencyUSD, CurrencyEUR:
		return true
	}
	return false
}

// TaxConfig is the tax selection applied when summarizing a schedule.
type TaxConfig struct {
	Option   TaxOption `json:"tax_option"`
	Currency Currency  `json:"currency"`
}

// Summary is the financial roll-up of a schedule. Amounts are raw numbers;
// formatting belongs to whoever renders them.
type Summary struct {
	TotalImpacts int64     `json:"total_impacts"`
	Subtotal     float64   `json:"subtotal"`
	TaxAmount    float64   `json:"tax_amount"`
	GrandTotal   float64   `json:"grand_total"`
	TaxOption    TaxOption `json:"tax_option"`
	TaxRate      float64   `json:"tax_rate"`
	Currency     Currency  `json:"currency"`
	Exempt       bool      `json:"exempt"`
}
