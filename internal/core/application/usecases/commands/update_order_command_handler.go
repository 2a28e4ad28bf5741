package commands

import (
	"context"
	"errors"
	"time"

	"traiteur/internal/core/domain/model/order"
	"traiteur/internal/pkg/errs"
)

// UpdateOrderCommandHandler applies a role-scoped partial update to an order.
//
// The field scope depends on who asks. Owners may touch the prestation fields
// of their own order while it still awaits a decision. Employees manage the
// operational fields. Admins may change anything except the identity and
// creation fields. All requested fields are checked against the scope before
// any of them is applied, so a rejected request changes nothing.
type UpdateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewUpdateOrderCommandHandler creates a handler for order updates.
func NewUpdateOrderCommandHandler(uowFactory UoWFactory) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{uowFactory: uowFactory}
}

// Handle processes the update command.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = authorizePatch(cmd, aggregate); err != nil {
		return err
	}

	patch := cmd.Patch()

	if patch.Statut != nil {
		if *patch.Statut == order.StatusAnnulee {
			return errs.NewAuthorizationError("annulee is only reachable through the cancellation operation")
		}

		bookedMenu, menuErr := uow.MenuRepository().Get(ctx, aggregate.MenuID())
		if menuErr != nil {
			return menuErr
		}

		if err = aggregate.TransitionTo(*patch.Statut, bookedMenu.PretMateriel(), time.Now()); err != nil {
			return err
		}
	}

	if err = applyPatch(aggregate, patch); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// authorizePatch checks every requested field against the actor's scope.
func authorizePatch(cmd UpdateOrderCommand, aggregate *order.Order) error {
	patch := cmd.Patch()
	actor := cmd.Actor()

	switch {
	case actor.IsAdmin():
		return nil
	case actor.IsEmployee():
		if patch.DatePrestation != nil || patch.HeurePrestation != nil ||
			patch.NbPersonne != nil || patch.PrixLivraison != nil {
			return errs.NewAuthorizationError(
				"employees may not change the prestation date, time, headcount or pricing")
		}
		return nil
	case actor.Owns(aggregate.CustomerID()):
		if aggregate.Statut() != order.StatusEnAttente {
			return errs.NewAuthorizationError(
				"an order can only be modified by its owner while it awaits a decision")
		}
		if patch.Statut != nil || patch.RestitutionMateriel != nil || patch.PrixLivraison != nil {
			return errs.NewAuthorizationError(
				"owners may only change the prestation address, date, time and headcount")
		}
		return nil
	default:
		return errs.NewAuthorizationError("not allowed to modify this order")
	}
}

// applyPatch writes the scoped fields onto the aggregate. The statut field is
// handled separately by the caller because the transition needs the menu.
func applyPatch(aggregate *order.Order, patch OrderPatch) error {
	var errList []error

	if patch.AdressePrestation != nil {
		errList = append(errList, aggregate.SetAdressePrestation(*patch.AdressePrestation))
	}
	if patch.DatePrestation != nil {
		errList = append(errList, aggregate.SetDatePrestation(*patch.DatePrestation))
	}
	if patch.HeurePrestation != nil {
		errList = append(errList, aggregate.SetHeurePrestation(*patch.HeurePrestation))
	}
	if patch.NbPersonne != nil {
		errList = append(errList, aggregate.SetNbPersonne(*patch.NbPersonne))
	}
	if patch.RestitutionMateriel != nil {
		aggregate.SetRestitutionMateriel(*patch.RestitutionMateriel)
	}
	if patch.PrixLivraison != nil {
		prixTotal := aggregate.PrixCommande().Add(*patch.PrixLivraison).Round(2)
		errList = append(errList,
			aggregate.UpdatePricing(aggregate.PrixCommande(), *patch.PrixLivraison, prixTotal))
	}

	return errors.Join(errList...)
}
