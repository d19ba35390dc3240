// Where: internal/infra/interaction/selector.go
// What: Confirmation prompt using the huh library.
// Why: Give destructive actions a keyboard-driven yes/no step.
package interaction

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

var runConfirmPrompt = func(title string, value *bool) error {
	return huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(value).
		Run()
}

// HuhConfirmer implements Confirmer with a huh confirm field.
type HuhConfirmer struct{}

func (HuhConfirmer) Confirm(title string) (bool, error) {
	var confirmed bool
	if err := runConfirmPrompt(title, &confirmed); err != nil {
		return false, fmt.Errorf("prompt confirm: %w", err)
	}
	return confirmed, nil
}
