package treatment

import (
	"strings"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
)

const minNameLength = 3

func ValidateName(name string) error {
	if len([]rune(strings.TrimSpace(name))) < minNameLength {
		return domain.InvalidInput("O nome do tratamento deve ter pelo menos 3 caracteres.")
	}
	return nil
}

func ValidateDuration(minutes int) error {
	if minutes <= 0 {
		return domain.InvalidInput("A duração deve ser maior que zero.")
	}
	return nil
}

func ValidatePrice(price float64) error {
	if price <= 0 {
		return domain.InvalidInput("O preço deve ser maior que zero.")
	}
	return nil
}
