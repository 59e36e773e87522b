package domain

import "errors"

// Kind classifies a business failure. The HTTP boundary maps each kind
// to exactly one status code.
type Kind string

const (
	KindNotFound                Kind = "not_found"
	KindInvalidDate             Kind = "invalid_date"
	KindTimeConflict            Kind = "time_conflict"
	KindProfessionalNotLinked   Kind = "professional_not_linked"
	KindInvalidStatusTransition Kind = "invalid_status_transition"
	KindHasDependents           Kind = "has_dependents"
	KindDuplicateIdentity       Kind = "duplicate_identity"
	KindForbidden               Kind = "forbidden"
	KindInvalidInput            Kind = "invalid_input"
	KindInvalidCredentials      Kind = "invalid_credentials"
)

type Error struct {
	Kind     Kind
	Resource string
	Message  string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Resource != "" {
		return string(e.Kind) + ": " + e.Resource
	}
	return string(e.Kind)
}

// Is matches on kind, and on resource when the target names one, so
// errors.Is(err, domain.ErrNotFound) holds for every NotFound("...").
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Resource == "" || t.Resource == e.Resource
}

var (
	ErrNotFound                = &Error{Kind: KindNotFound}
	ErrInvalidDate             = &Error{Kind: KindInvalidDate}
	ErrTimeConflict            = &Error{Kind: KindTimeConflict}
	ErrProfessionalNotLinked   = &Error{Kind: KindProfessionalNotLinked}
	ErrInvalidStatusTransition = &Error{Kind: KindInvalidStatusTransition}
	ErrHasDependents           = &Error{Kind: KindHasDependents}
	ErrDuplicateIdentity       = &Error{Kind: KindDuplicateIdentity}
	ErrForbidden               = &Error{Kind: KindForbidden}
	ErrInvalidInput            = &Error{Kind: KindInvalidInput}
	ErrInvalidCredentials      = &Error{Kind: KindInvalidCredentials}
)

// ======================================================
// CONSTRUCTORS
// ======================================================

var resourceNames = map[string]string{
	"client":       "Cliente não encontrado.",
	"professional": "Profissional não encontrado.",
	"treatment":    "Tratamento não encontrado.",
	"consultation": "Consulta não encontrada.",
	"user":         "Usuário não encontrado.",
	"notification": "Notificação não encontrada.",
}

func NotFound(resource string) error {
	msg, ok := resourceNames[resource]
	if !ok {
		msg = "Recurso não encontrado."
	}
	return &Error{Kind: KindNotFound, Resource: resource, Message: msg}
}

func InvalidDate(msg string) error {
	return &Error{Kind: KindInvalidDate, Message: msg}
}

func TimeConflict() error {
	return &Error{Kind: KindTimeConflict, Message: "Conflito de horário."}
}

func ProfessionalNotLinked() error {
	return &Error{
		Kind:    KindProfessionalNotLinked,
		Message: "O profissional não está vinculado a este tratamento.",
	}
}

func InvalidStatusTransition() error {
	return &Error{
		Kind:    KindInvalidStatusTransition,
		Message: "Apenas consultas agendadas podem ser alteradas.",
	}
}

func HasDependents(resource string) error {
	return &Error{
		Kind:     KindHasDependents,
		Resource: resource,
		Message:  "O recurso possui dependências e não pode ser removido.",
	}
}

func DuplicateIdentity() error {
	return &Error{Kind: KindDuplicateIdentity, Message: "E-mail ou CPF já cadastrado."}
}

func Forbidden() error {
	return &Error{Kind: KindForbidden, Message: "Acesso não autorizado."}
}

func InvalidInput(msg string) error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

func InvalidCredentials() error {
	return &Error{Kind: KindInvalidCredentials, Message: "Credenciais inválidas."}
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
