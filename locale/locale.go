// Package locale provides the daemon's startup/shutdown/error banner
// text through go-i18n, the same bundle-and-localizer pattern the
// teacher's i18n package uses, with message catalogs embedded at build
// time instead of loaded from disk.
package locale

import (
	"embed"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed messages.*.toml
var messageFiles embed.FS

var localizer *i18n.Localizer

// Init loads the embedded message catalogs and selects a localizer for
// lang (falling back to English for an unrecognized or empty tag).
func Init(lang string) error {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := messageFiles.ReadDir(".")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		data, err := messageFiles.ReadFile(entry.Name())
		if err != nil {
			return err
		}
		if _, err := bundle.ParseMessageFileBytes(data, entry.Name()); err != nil {
			return err
		}
	}

	localizer = i18n.NewLocalizer(bundle, lang, language.English.String())
	return nil
}

// T localizes messageID, returning the id itself if Init was never
// called or the id is unknown — a daemon should never crash over a
// missing banner string.
func T(messageID string) string {
	if localizer == nil {
		return messageID
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	return msg
}

// TData localizes messageID with template data.
func TData(messageID string, data map[string]any) string {
	if localizer == nil {
		return messageID
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID, TemplateData: data})
	if err != nil {
		return messageID
	}
	return msg
}
