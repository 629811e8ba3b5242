// internal/browser/humanoid/keyboard.go
package humanoid

import (
	"context"
	"fmt"
)

// Type sends text one rune at a time, pausing for a delay drawn from
// keyDelay between consecutive keystrokes. Multi-byte runes (CJK queries are
// the common case) are sent whole, never split into bytes.
func Type(ctx context.Context, pacer Pacer, keys KeySender, text string, keyDelay Range) error {
	for i, r := range []rune(text) {
		if i > 0 {
			if err := pacer.Pause(ctx, keyDelay); err != nil {
				return err
			}
		}
		if err := keys.SendKeys(ctx, string(r)); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("humanoid: failed to send key %q: %w", r, err)
		}
	}
	return nil
}
