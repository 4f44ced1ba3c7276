package domain

// Default booking option values
const (
	DefaultPrice           = "150"
	DefaultDurationMinutes = "30"
	DefaultCurrency        = "SEK"
	DefaultTimezone        = "Europe/Stockholm"
)

// DefaultOptions значения, которыми заполняется хранилище настроек при первом запуске
var DefaultOptions = map[OptionName]string{
	OptionPrice:           DefaultPrice,
	OptionDurationMinutes: DefaultDurationMinutes,
	OptionCurrency:        DefaultCurrency,
	OptionTimezone:        DefaultTimezone,
}

// Business validation constants
const (
	MaxCustomerIdentityLength = 254
	MaxOptionValueLength      = 255
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
