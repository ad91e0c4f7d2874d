package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/control-activos/internal/application/dto"
	"github.com/jhoicas/control-activos/internal/domain/entity"
)

// IssueFromRequest adapta el request HTTP a IssueInput y registra la salida.
// actorID es la identidad autenticada (nunca viene del body).
func (uc *MovementUseCase) IssueFromRequest(ctx context.Context, actorID string, in dto.IssueRequest) (*IssueResult, error) {
	return uc.Issue(ctx, IssueInput{
		ActorID:   actorID,
		AssetID:   strings.TrimSpace(in.AssetID),
		Quantity:  in.Quantity,
		Recipient: RecipientFromRequest(in),
		Type:      entity.MovementType(strings.TrimSpace(in.Type)),
		Notes:     in.Notes,
	})
}

// ReturnFromRequest adapta el request HTTP a ReturnInput y registra la devolución.
func (uc *MovementUseCase) ReturnFromRequest(ctx context.Context, actorID string, in dto.ReturnRequest) (*ReturnResult, error) {
	return uc.Return(ctx, ReturnInput{
		ActorID:   actorID,
		AssetID:   strings.TrimSpace(in.AssetID),
		Quantity:  in.Quantity,
		Condition: ConditionFromRequest(in.Condition),
		Notes:     in.Notes,
	})
}

// RecipientFromRequest arma el destinatario. Si llegan ambas formas (o ninguna) devuelve el valor cero,
// que el motor rechaza como entrada inválida en su turno de validación.
func RecipientFromRequest(in dto.IssueRequest) entity.Recipient {
	userID := strings.TrimSpace(in.RecipientUserID)
	hasVisitor := strings.TrimSpace(in.VisitorName) != "" || strings.TrimSpace(in.VisitorSurname) != ""
	switch {
	case userID != "" && hasVisitor:
		return entity.Recipient{}
	case userID != "":
		return entity.InternalRecipient(userID)
	case hasVisitor:
		return entity.VisitorRecipient(in.VisitorName, in.VisitorSurname)
	}
	return entity.Recipient{}
}

// ConditionFromRequest normaliza la condición reportada; "Dañado" es sinónimo de Baja.
func ConditionFromRequest(s string) entity.ReturnCondition {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "Dañado") || strings.EqualFold(s, "Danado") {
		return entity.ReturnConditionWriteOff
	}
	for _, c := range []entity.ReturnCondition{
		entity.ReturnConditionFunctional,
		entity.ReturnConditionMaintenance,
		entity.ReturnConditionWriteOff,
	} {
		if strings.EqualFold(s, string(c)) {
			return c
		}
	}
	return entity.ReturnCondition(s)
}
