package commands

import (
	"errors"

	"traiteur/internal/pkg/guard"
)

var ErrRemindEquipmentReturnCommandIsNotConstructed = errors.New(
	"RemindEquipmentReturnCommand must be created via NewRemindEquipmentReturnCommand constructor",
)

// RemindEquipmentReturnCommand triggers overdue equipment return reminders.
// It carries no parameters; the construction ceremony keeps the scheduler on
// the same path as every other write operation.
type RemindEquipmentReturnCommand struct {
	guard guard.ConstructorGuard
}

// NewRemindEquipmentReturnCommand creates a command to send return reminders.
func NewRemindEquipmentReturnCommand() (RemindEquipmentReturnCommand, error) {
	return RemindEquipmentReturnCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RemindEquipmentReturnCommand) Validate() error {
	return c.guard.Validate(ErrRemindEquipmentReturnCommandIsNotConstructed)
}
