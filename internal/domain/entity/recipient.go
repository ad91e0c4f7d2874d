package entity

import "strings"

// RecipientKind forma del destinatario de una salida.
type RecipientKind uint8

const (
	RecipientNone RecipientKind = iota
	RecipientInternal
	RecipientVisitor
)

// Recipient destinatario de una salida: un usuario interno o un visitante (nombre + apellidos).
// El valor cero es "sin destinatario", el que corresponde a una devolución.
type Recipient struct {
	kind    RecipientKind
	userID  string
	name    string
	surname string
}

// InternalRecipient destinatario que es un usuario del sistema.
func InternalRecipient(userID string) Recipient {
	return Recipient{kind: RecipientInternal, userID: strings.TrimSpace(userID)}
}

// VisitorRecipient destinatario externo a la empresa.
func VisitorRecipient(name, surname string) Recipient {
	return Recipient{kind: RecipientVisitor, name: strings.TrimSpace(name), surname: strings.TrimSpace(surname)}
}

// Kind devuelve la forma del destinatario.
func (r Recipient) Kind() RecipientKind { return r.kind }

// UserID devuelve el id del usuario interno, si aplica.
func (r Recipient) UserID() (string, bool) {
	if r.kind != RecipientInternal {
		return "", false
	}
	return r.userID, true
}

// Visitor devuelve nombre y apellidos del visitante, si aplica.
func (r Recipient) Visitor() (name, surname string, ok bool) {
	if r.kind != RecipientVisitor {
		return "", "", false
	}
	return r.name, r.surname, true
}

// Complete indica si el destinatario está bien formado: id no vacío o nombre y apellidos no vacíos.
func (r Recipient) Complete() bool {
	switch r.kind {
	case RecipientInternal:
		return r.userID != ""
	case RecipientVisitor:
		return r.name != "" && r.surname != ""
	}
	return false
}

// DisplayName nombre legible del visitante; vacío para usuarios internos.
func (r Recipient) DisplayName() string {
	if r.kind != RecipientVisitor {
		return ""
	}
	return r.name + " " + r.surname
}
