package extract

import (
	"regexp"
	"strings"
)

// strengthRe matches a trailing dose strength like "500mg", "2.5 ml", "10 IU".
var strengthRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?\s*(?:mg|mcg|g|ml|iu|%))\s*$`)

// placeholder values the model emits for absent fields.
var placeholders = map[string]bool{
	"not found": true,
	"none":      true,
	"n/a":       true,
	"unknown":   true,
	"-":         true,
}

// ParseRecord is a best-effort, line-based parser over free-form completion
// text. Keys are matched case-insensitively; a Dosage or Strength line
// attaches to the most recent Medicine; anything unrecognized is skipped.
// It never fails — missing fields stay empty.
func ParseRecord(text string) Record {
	var r Record
	for _, line := range strings.Split(text, "\n") {
		line = trimListMarker(strings.TrimSpace(line))
		key, val, ok := splitKeyValue(line)
		if !ok {
			continue
		}
		val = cleanValue(val)
		switch key {
		case "patient name", "name", "patient":
			if r.PatientName == "" {
				r.PatientName = val
			}
		case "age":
			if r.Age == "" {
				r.Age = val
			}
		case "gender", "sex":
			if r.Gender == "" {
				r.Gender = val
			}
		case "medicine", "medicine name", "medication", "drug":
			if val == "" {
				continue
			}
			name, strength := splitStrength(val)
			r.Medicines = append(r.Medicines, Medicine{Name: name, Strength: strength})
		case "strength":
			if n := len(r.Medicines); n > 0 && r.Medicines[n-1].Strength == "" {
				r.Medicines[n-1].Strength = val
			}
		case "dosage", "dose":
			if n := len(r.Medicines); n > 0 {
				r.Medicines[n-1].Dosage = val
			} else if val != "" {
				r.Medicines = append(r.Medicines, Medicine{Dosage: val})
			}
		}
	}
	return r
}

func splitKeyValue(line string) (key, val string, ok bool) {
	i := strings.Index(line, ":")
	if i <= 0 {
		return "", "", false
	}
	return strings.ToLower(strings.TrimSpace(line[:i])), strings.TrimSpace(line[i+1:]), true
}

func trimListMarker(s string) string {
	for _, p := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(s, p) {
			return strings.TrimSpace(s[len(p):])
		}
	}
	return s
}

func cleanValue(v string) string {
	v = strings.Trim(v, "[]")
	v = strings.Trim(v, `"`)
	v = strings.TrimSpace(v)
	if placeholders[strings.ToLower(v)] {
		return ""
	}
	return v
}

// splitStrength peels a trailing strength token off a medicine name,
// "Amoxicillin 500mg" -> ("Amoxicillin", "500mg").
func splitStrength(s string) (name, strength string) {
	loc := strengthRe.FindStringIndex(s)
	if loc == nil {
		return s, ""
	}
	return strings.TrimSpace(strings.TrimRight(s[:loc[0]], " ,-")), strings.TrimSpace(s[loc[0]:loc[1]])
}
