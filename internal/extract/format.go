package extract

import (
	"fmt"
	"strings"
)

// FormatRecord renders the record as deterministic field: value lines,
// mirroring the prompt's response format.
func FormatRecord(r Record) string {
	var b strings.Builder
	writeField(&b, "Patient Name", r.PatientName)
	writeField(&b, "Age", r.Age)
	writeField(&b, "Gender", r.Gender)
	if len(r.Medicines) == 0 {
		writeField(&b, "Medicine", "")
		writeField(&b, "Dosage", "")
		return b.String()
	}
	for _, m := range r.Medicines {
		name := m.Name
		if m.Strength != "" {
			name = strings.TrimSpace(name + " " + m.Strength)
		}
		writeField(&b, "Medicine", name)
		writeField(&b, "Dosage", m.Dosage)
	}
	return b.String()
}

func writeField(b *strings.Builder, key, val string) {
	if val == "" {
		val = "Not found"
	}
	fmt.Fprintf(b, "%s: %s\n", key, val)
}
