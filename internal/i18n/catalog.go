// Package i18n holds the doorbell button set and the localized message
// catalog. The catalog is built once at startup, validated exhaustively,
// and read-only afterwards.
package i18n

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrUnknownButton is returned by Render for a type id that is not in
// the configured button set.
var ErrUnknownButton = errors.New("unknown notification type")

// Button is one doorbell button. The id is the wire value of the
// notify request's "type" field; lookup is exact-match.
type Button struct {
	ID   string `yaml:"id"`
	Icon string `yaml:"icon"`
}

// Strings carries the per-locale text tables.
type Strings struct {
	// Labels maps button id to the button caption on the front-end.
	Labels map[string]string `yaml:"labels"`
	// Messages maps button id to the chat message body (Telegram
	// Markdown; templates are trusted deployment config).
	Messages map[string]string `yaml:"messages"`
	// UI holds the remaining front-end strings (title, status texts, ...).
	UI map[string]string `yaml:"ui"`
}

// Catalog is the immutable button/translation set.
type Catalog struct {
	defaultLocale string
	buttons       []Button
	locales       map[string]Strings
}

const timestampFormat = "Mon, 02 Jan 2006 15:04"

// New builds and validates a catalog. Validation happens here, at
// configuration-load time, so request handling never has to deal with
// a half-configured button set.
func New(defaultLocale string, buttons []Button, locales map[string]Strings) (*Catalog, error) {
	c := &Catalog{defaultLocale: defaultLocale, buttons: buttons, locales: locales}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) validate() error {
	if len(c.buttons) == 0 {
		return errors.New("catalog: no buttons configured")
	}
	seen := make(map[string]bool, len(c.buttons))
	for _, b := range c.buttons {
		if b.ID == "" {
			return errors.New("catalog: button with empty id")
		}
		if seen[b.ID] {
			return fmt.Errorf("catalog: duplicate button id %q", b.ID)
		}
		seen[b.ID] = true
	}

	def, ok := c.locales[c.defaultLocale]
	if !ok {
		return fmt.Errorf("catalog: default locale %q has no strings", c.defaultLocale)
	}
	// The default locale must cover every button, so render never needs
	// a per-type fallback message.
	for _, b := range c.buttons {
		if def.Messages[b.ID] == "" {
			return fmt.Errorf("catalog: default locale %q has no message for button %q", c.defaultLocale, b.ID)
		}
	}
	return nil
}

func (c *Catalog) DefaultLocale() string { return c.defaultLocale }

func (c *Catalog) Buttons() []Button {
	out := make([]Button, len(c.buttons))
	copy(out, c.buttons)
	return out
}

func (c *Catalog) HasButton(id string) bool {
	for _, b := range c.buttons {
		if b.ID == id {
			return true
		}
	}
	return false
}

// Locales returns the supported locale codes, sorted, default first.
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.locales))
	for code := range c.locales {
		if code != c.defaultLocale {
			out = append(out, code)
		}
	}
	sort.Strings(out)
	return append([]string{c.defaultLocale}, out...)
}

// Label returns the front-end caption for a button in the given
// locale, falling back to the default locale, then to the button id.
func (c *Catalog) Label(buttonID, locale string) string {
	if s, ok := c.locales[locale]; ok && s.Labels[buttonID] != "" {
		return s.Labels[buttonID]
	}
	if s, ok := c.locales[c.defaultLocale]; ok && s.Labels[buttonID] != "" {
		return s.Labels[buttonID]
	}
	return buttonID
}

// Render resolves the chat message for a button and appends the
// timestamp line. An unsupported locale falls back to the default
// locale; an unknown button id is an error, never a default message.
func (c *Catalog) Render(buttonID, locale string, local time.Time) (string, error) {
	if !c.HasButton(buttonID) {
		return "", fmt.Errorf("%w: %q", ErrUnknownButton, buttonID)
	}

	msg := ""
	if s, ok := c.locales[locale]; ok {
		msg = s.Messages[buttonID]
	}
	if msg == "" {
		// validate() guarantees this exists for every button.
		msg = c.locales[c.defaultLocale].Messages[buttonID]
	}

	return msg + "\n\n_Time: " + local.Format(timestampFormat) + "_", nil
}

// frontendLocale is the per-locale JSON shape embedded into the
// front-end page for client-side language switching.
type frontendLocale struct {
	Labels map[string]string `json:"labels"`
	UI     map[string]string `json:"ui"`
}

// FrontendJSON marshals labels and UI strings for every locale, with
// holes filled from the default locale so a sparse override file never
// breaks the page.
func (c *Catalog) FrontendJSON() ([]byte, error) {
	def := c.locales[c.defaultLocale]
	out := make(map[string]frontendLocale, len(c.locales))
	for code, s := range c.locales {
		fl := frontendLocale{
			Labels: make(map[string]string, len(c.buttons)),
			UI:     make(map[string]string, len(def.UI)),
		}
		for _, b := range c.buttons {
			fl.Labels[b.ID] = c.Label(b.ID, code)
		}
		for k, v := range def.UI {
			fl.UI[k] = v
		}
		for k, v := range s.UI {
			if v != "" {
				fl.UI[k] = v
			}
		}
		out[code] = fl
	}
	return json.Marshal(out)
}
