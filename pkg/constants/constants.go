// Package constants provides shared constants for the amortization-compare application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// DefaultExtraMonthOffset is the number of amortizing months after the
	// grace period at which a one-time extra is applied when no month is given.
	DefaultExtraMonthOffset = 12

	// MaxTotalMonths bounds grace plus term (100 years).
	MaxTotalMonths = 1200
)

// Internal rate of return solver settings
const (
	// IRRInitialGuess is the starting periodic rate for Newton-Raphson.
	IRRInitialGuess = 0.01

	// IRRTolerance is the absolute net present value at which the solver stops.
	IRRTolerance = 1e-6

	// IRRMaxIterations caps the solver.
	IRRMaxIterations = 100
)

// Affordability thresholds, expressed as percent of monthly income.
const (
	// SafeRatioLimit is the highest ratio still considered safe.
	SafeRatioLimit = 30.0

	// CautionRatioLimit is the highest ratio still considered caution.
	CautionRatioLimit = 40.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"

	// OutputFormatReport is the plain-text report digest
	OutputFormatReport = "report"

	// DefaultExcerptRows is the number of leading and trailing ledger rows
	// shown in table excerpts.
	DefaultExcerptRows = 12
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment overrides of the simulation file.
	EnvPrefix = "AMORTIZATION"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultMetricsPath is where Prometheus metrics are exposed
	DefaultMetricsPath = "/metrics"

	// DefaultServiceName identifies the server in traces
	DefaultServiceName = "amortization-compare"
)
