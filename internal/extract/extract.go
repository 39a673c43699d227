// Package extract turns OCR text into a structured medical record through a
// hosted language model. Engines return the raw completion; ParseRecord maps
// it into a Record with all fields optional.
package extract

import "context"

type Engine interface {
	Name() string
	// Extract submits the OCR text with the fixed extraction instruction and
	// returns the raw completion text.
	Extract(ctx context.Context, ocrText string) (string, error)
}

type Medicine struct {
	Name     string `json:"name"`
	Strength string `json:"strength,omitempty"`
	Dosage   string `json:"dosage,omitempty"`
}

type Record struct {
	PatientName string     `json:"patient_name"`
	Age         string     `json:"age"`
	Gender      string     `json:"gender"`
	Medicines   []Medicine `json:"medicines"`
}
