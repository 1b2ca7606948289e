package wire

import "fmt"

type (
	// Anomaly is one recoverable oddity encountered during a decode, e.g. an
	// enum ordinal the server grew without notice.
	Anomaly struct {
		Field  string
		Reason string
	}

	// Anomalies collects recoverable decode oddities on the result itself, so
	// callers and tests can see which tolerant path fired without scraping
	// logs.
	Anomalies []Anomaly
)

func (a *Anomalies) Notef(field, format string, args ...any) {
	*a = append(*a, Anomaly{Field: field, Reason: fmt.Sprintf(format, args...)})
}

// Field reports whether an anomaly was recorded against the named field.
func (a Anomalies) Field(name string) bool {
	for _, item := range a {
		if item.Field == name {
			return true
		}
	}
	return false
}
