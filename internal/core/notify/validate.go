package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/hay-kot/criterio"
)

// Validate checks the request against the enqueue contract.
func (r Request) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("kind", r.Kind, validKind),
		criterio.Run("title", r.Title, requiredText),
		criterio.Run("auto_dismiss", r.AutoDismiss, nonNegative),
	)
}

func validKind(k Kind) error {
	if !k.IsValid() {
		return fmt.Errorf("unknown kind %q", k)
	}
	return nil
}

func requiredText(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("is required")
	}
	return nil
}

func nonNegative(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("must not be negative, got %s", d)
	}
	return nil
}
