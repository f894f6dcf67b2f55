package messenger

// Severity is a set of message severities. The zero value selects nothing.
//
// Severities are independent flags; there is no ordering between them.
type Severity uint8

const (
	// SeverityError marks messages about behaviour that may cause undefined results,
	// including an application crash.
	SeverityError Severity = 1 << iota
	// SeverityWarning marks unexpected use.
	SeverityWarning
	// SeverityInformation marks messages that may be handy when debugging an application.
	SeverityInformation
	// SeverityVerbose marks diagnostic chatter from the loader and layers.
	SeverityVerbose
)

const (
	SeverityNone              Severity = 0
	SeverityErrorsOnly                 = SeverityError
	SeverityErrorsAndWarnings          = SeverityError | SeverityWarning
	SeverityAll                        = SeverityError | SeverityWarning | SeverityInformation | SeverityVerbose
)

var severityNames = []flagName{
	{uint8(SeverityError), "error"},
	{uint8(SeverityWarning), "warning"},
	{uint8(SeverityInformation), "information"},
	{uint8(SeverityVerbose), "verbose"},
}

var severityPresets = map[string]uint8{
	"none":                uint8(SeverityNone),
	"all":                 uint8(SeverityAll),
	"errors-only":         uint8(SeverityErrorsOnly),
	"errors-and-warnings": uint8(SeverityErrorsAndWarnings),
	"info":                uint8(SeverityInformation),
}

func (s Severity) Error() bool       { return s&SeverityError != 0 }
func (s Severity) Warning() bool     { return s&SeverityWarning != 0 }
func (s Severity) Information() bool { return s&SeverityInformation != 0 }
func (s Severity) Verbose() bool     { return s&SeverityVerbose != 0 }

// Union returns the set of severities enabled in either s or other.
func (s Severity) Union(other Severity) Severity {
	return s | other
}

// Contains reports whether every severity in other is also in s.
func (s Severity) Contains(other Severity) bool {
	return s&other == other
}

func (s Severity) String() string {
	return formatFlags(uint8(s&SeverityAll), severityNames)
}

// ParseSeverity parses a list such as "error,warning" or a preset such as "all".
func ParseSeverity(text string) (Severity, error) {
	v, err := parseFlags("severity", text, severityNames, severityPresets)
	return Severity(v), err
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
