package validators

import "strings"

// NormalizeCPF strips the usual punctuation ("123.456.789-09").
func NormalizeCPF(cpf string) string {
	return strings.NewReplacer(".", "", "-", "", " ", "").Replace(cpf)
}

// IsCPF accepts exactly 11 digits.
func IsCPF(cpf string) bool {
	if len(cpf) != 11 {
		return false
	}
	for _, r := range cpf {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
