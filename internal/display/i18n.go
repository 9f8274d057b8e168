package display

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys of the panel's translatable captions.
const (
	MsgNoSlides = "no-slides"
	MsgSet      = "set"
	MsgScore    = "score"
	MsgTimeout  = "timeout"
	MsgService  = "service"
)

var messageKeys = []string{MsgNoSlides, MsgSet, MsgScore, MsgTimeout, MsgService}

var captions = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.Italian))
	set := func(tag language.Tag, key, msg string) {
		if err := b.SetString(tag, key, msg); err != nil {
			panic(err)
		}
	}
	set(language.English, MsgNoSlides, "No slides to show")
	set(language.English, MsgSet, "Set")
	set(language.English, MsgScore, "Score")
	set(language.English, MsgTimeout, "Timeout")
	set(language.English, MsgService, "Service")
	set(language.Italian, MsgNoSlides, "Nessuna immagine da mostrare")
	set(language.Italian, MsgSet, "Set")
	set(language.Italian, MsgScore, "Punti")
	set(language.Italian, MsgTimeout, "Tempi")
	set(language.Italian, MsgService, "Servizio")
	return b
}

// Tag maps the controller's language name to a language tag. Anything but
// "English" selects Italian.
func Tag(name string) language.Tag {
	if name == "English" {
		return language.English
	}
	return language.Italian
}

// LanguageName is the inverse of Tag.
func LanguageName(tag language.Tag) string {
	if tag == language.English {
		return "English"
	}
	return "Italiano"
}

// Printer returns a message printer for the named language.
func Printer(name string) *message.Printer {
	return message.NewPrinter(Tag(name), message.Catalog(captions))
}

// Caption translates a single message key.
func Caption(name, key string) string {
	return Printer(name).Sprintf(key)
}

// Labels translates every caption for the named language.
func Labels(name string) map[string]string {
	p := Printer(name)
	out := make(map[string]string, len(messageKeys))
	for _, k := range messageKeys {
		out[k] = p.Sprintf(k)
	}
	return out
}
