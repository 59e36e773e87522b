package validators

import "unicode"

const MinPasswordLength = 6

// PasswordProblems lists the rules a password breaks, in pt-BR.
// An empty result means the password is acceptable.
func PasswordProblems(password string) []string {
	var (
		upper, lower, special bool
		problems              []string
	)

	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r):
			special = true
		}
	}

	if len([]rune(password)) < MinPasswordLength {
		problems = append(problems, "A senha deve ter pelo menos 6 caracteres.")
	}
	if !upper {
		problems = append(problems, "A senha deve conter pelo menos uma letra maiúscula.")
	}
	if !lower {
		problems = append(problems, "A senha deve conter pelo menos uma letra minúscula.")
	}
	if !special {
		problems = append(problems, "A senha deve conter pelo menos um caractere especial.")
	}

	return problems
}
