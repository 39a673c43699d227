package extract

// SystemPrompt pins the completion to the line format ParseRecord understands.
const SystemPrompt = `Extract only the following from the medical document:
- Patient details (name, age, gender, etc.)
- Medicine name(s) with strength (e.g., Paracetamol 500mg)
- Dosage(s)

Ignore all other information.

Format your response as:
Patient Name: [name or "Not found"]
Age: [age or "Not found"]
Gender: [gender or "Not found"]
Medicine: [medicine name with strength]
Dosage: [dosage instructions]

If there are multiple medicines, list each with its strength and dosage.`

// UserPrompt wraps the OCR text as the user message.
func UserPrompt(ocrText string) string {
	return "Medical Document:\n\n" + ocrText
}
