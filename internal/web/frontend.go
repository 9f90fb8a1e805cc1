package web

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"doribell/internal/config"
	"doribell/internal/i18n"
)

//go:embed index.html.tmpl
var indexTmpl string

type buttonView struct {
	ID    string
	Icon  string
	Label string
}

type frontendData struct {
	FamilyName    string
	SiteKey       string
	Phone         string
	Buttons       []buttonView
	Locales       []string
	DefaultLocale string
	Translations  template.JS
}

// renderFrontend produces the doorbell page once at startup; the
// configuration and catalog never change afterwards, so the page is
// served as a static byte slice.
func renderFrontend(cfg *config.Config, cat *i18n.Catalog) ([]byte, error) {
	tj, err := cat.FrontendJSON()
	if err != nil {
		return nil, fmt.Errorf("web: frontend translations: %w", err)
	}

	tpl, err := template.New("index").Parse(indexTmpl)
	if err != nil {
		return nil, fmt.Errorf("web: parse frontend template: %w", err)
	}

	buttons := make([]buttonView, 0, len(cat.Buttons()))
	for _, b := range cat.Buttons() {
		buttons = append(buttons, buttonView{
			ID:    b.ID,
			Icon:  b.Icon,
			Label: cat.Label(b.ID, cat.DefaultLocale()),
		})
	}

	var buf bytes.Buffer
	err = tpl.Execute(&buf, frontendData{
		FamilyName:    cfg.FamilyName,
		SiteKey:       cfg.Turnstile.SiteKey,
		Phone:         cfg.Phone,
		Buttons:       buttons,
		Locales:       cat.Locales(),
		DefaultLocale: cat.DefaultLocale(),
		Translations:  template.JS(tj),
	})
	if err != nil {
		return nil, fmt.Errorf("web: render frontend: %w", err)
	}
	return buf.Bytes(), nil
}
