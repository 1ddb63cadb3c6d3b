package styles

// CheckStatus is the outcome of a single doctor check.
type CheckStatus string

const (
	CheckPass CheckStatus = "PASS"
	CheckWarn CheckStatus = "WARN"
	CheckFail CheckStatus = "FAIL"
)

// Symbols holds the icon set used for check results.
type Symbols struct {
	Pass string
	Warn string
	Fail string
}

// Default symbols (unicode)
var defaultSymbols = Symbols{
	Pass: "✓",
	Warn: "!",
	Fail: "✕",
}

// ASCII-safe symbols for terminals without unicode fonts
var asciiSymbols = Symbols{
	Pass: "ok",
	Warn: "??",
	Fail: "XX",
}

// useASCII tracks whether the ASCII fallback set is active
var useASCII bool

// currentSymbols holds the active symbol set
var currentSymbols = defaultSymbols

// SetASCII switches between the unicode and ASCII symbol sets.
func SetASCII(enabled bool) {
	useASCII = enabled
	if enabled {
		currentSymbols = asciiSymbols
	} else {
		currentSymbols = defaultSymbols
	}
}

// ASCIIEnabled returns whether the ASCII fallback is active.
func ASCIIEnabled() bool {
	return useASCII
}

// CurrentSymbols returns the current symbol set.
func CurrentSymbols() Symbols {
	return currentSymbols
}

// CheckSymbol returns just the symbol for a check status.
func CheckSymbol(status CheckStatus) string {
	switch status {
	case CheckPass:
		return currentSymbols.Pass
	case CheckWarn:
		return currentSymbols.Warn
	case CheckFail:
		return currentSymbols.Fail
	default:
		return ""
	}
}

// FormatCheck returns a colored "<symbol> <label>" string for a check
// result.
func FormatCheck(status CheckStatus, label string) string {
	switch status {
	case CheckPass:
		return SuccessStyle.Render(currentSymbols.Pass) + " " + label
	case CheckWarn:
		return WarningStyle.Render(currentSymbols.Warn) + " " + label
	case CheckFail:
		return ErrorStyle.Render(currentSymbols.Fail) + " " + label
	default:
		return label
	}
}
