package inkwell

import (
	"context"
	"fmt"
	"strings"
)

// ThemeStore persists the colour scheme preference in the theme slot.
type ThemeStore struct {
	slots SlotStore
}

// NewThemeStore creates a ThemeStore over slots.
func NewThemeStore(slots SlotStore) *ThemeStore {
	return &ThemeStore{slots: slots}
}

// Saved returns the stored theme, or "" when none (or an unknown value) is stored.
func (s *ThemeStore) Saved(ctx context.Context) (Theme, error) {
	raw, ok, err := s.slots.GetItem(ctx, ThemeSlot)
	if err != nil {
		return "", fmt.Errorf("read theme slot: %w", err)
	}
	if !ok {
		return "", nil
	}
	return ParseTheme(raw), nil
}

// Save stores t.
func (s *ThemeStore) Save(ctx context.Context, t Theme) error {
	if err := s.slots.SetItem(ctx, ThemeSlot, string(t)); err != nil {
		return fmt.Errorf("write theme slot: %w", err)
	}
	return nil
}

// ParseTheme maps a stored or submitted value to a Theme, or "" if it is neither.
func ParseTheme(v string) Theme {
	switch Theme(strings.ToLower(strings.TrimSpace(v))) {
	case ThemeDark:
		return ThemeDark
	case ThemeLight:
		return ThemeLight
	}
	return ""
}

// ResolveTheme picks the saved theme, falling back to the OS preference.
func ResolveTheme(saved Theme, prefersDark bool) Theme {
	if saved != "" {
		return saved
	}
	if prefersDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
