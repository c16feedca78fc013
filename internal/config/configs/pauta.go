package configs

// Pauta holds the business defaults of the order service.
type Pauta struct {
	// MaxCampaignDays bounds the campaign range accepted on save.
	MaxCampaignDays int `env:"MAX_CAMPAIGN_DAYS" envDefault:"366"`
	// DefaultTaxOption and DefaultCurrency apply when an order omits them.
	DefaultTaxOption string `env:"DEFAULT_TAX_OPTION" envDefault:"16%"`
	DefaultCurrency  string `env:"DEFAULT_CURRENCY" envDefault:"MN"`
	// MaxImportBytes limits the size of an uploaded schedule workbook.
	MaxImportBytes int64 `env:"MAX_IMPORT_BYTES" envDefault:"10485760"`
}
