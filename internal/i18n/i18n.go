// Package i18n отдаёт тексты витрины по ключам для двух поддерживаемых языков.
package i18n

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"go.yaml.in/yaml/v4"
	"golang.org/x/text/language"
)

const (
	English = "en"
	Spanish = "es"

	// Fallback для неизвестного или пустого тега.
	Fallback = English
)

//go:embed locales/*.yaml
var localesFS embed.FS

var supported = []language.Tag{language.English, language.Spanish}

type Resolver struct {
	dict    map[string]map[string]string
	matcher language.Matcher
}

// New загружает встроенные таблицы локалей.
func New() (*Resolver, error) {
	r := &Resolver{
		dict:    make(map[string]map[string]string, len(supported)),
		matcher: language.NewMatcher(supported),
	}
	for _, lang := range []string{English, Spanish} {
		raw, err := localesFS.ReadFile("locales/" + lang + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("load locale %s: %w", lang, err)
		}
		var m map[string]string
		if err := yaml.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", lang, err)
		}
		r.dict[lang] = m
	}
	return r, nil
}

// MustNew как New, но паникует; для инициализации на уровне пакета.
func MustNew() *Resolver {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Normalize сводит любой тег к поддерживаемому, по умолчанию en.
func Normalize(lang string) string {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case English:
		return English
	case Spanish:
		return Spanish
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return Fallback
	}
	base, _ := tag.Base()
	switch base.String() {
	case Spanish:
		return Spanish
	default:
		return Fallback
	}
}

// Resolve отдаёт текст key для lang. Отсутствующий ключ возвращается
// как есть.
func (r *Resolver) Resolve(lang, key string) string {
	if v, ok := r.dict[Normalize(lang)][key]; ok {
		return v
	}
	return key
}

// Toggle переключает en и es.
func Toggle(lang string) string {
	if Normalize(lang) == Spanish {
		return English
	}
	return Spanish
}

// Match выбирает лучший поддерживаемый язык по Accept-Language.
func (r *Resolver) Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Fallback
	}
	_, idx, conf := r.matcher.Match(tags...)
	if conf == language.No {
		return Fallback
	}
	base, _ := supported[idx].Base()
	return base.String()
}

// Messages отдаёт копию всей таблицы для lang.
func (r *Resolver) Messages(lang string) map[string]string {
	src := r.dict[Normalize(lang)]
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func (r *Resolver) Languages() []string {
	return []string{English, Spanish}
}

// MissingKeys перечисляет ключи, которые есть в одном языке и нет в другом,
// сгруппированные по языку, где их не хватает.
func (r *Resolver) MissingKeys() map[string][]string {
	out := map[string][]string{}
	for _, lang := range r.Languages() {
		other := English
		if lang == English {
			other = Spanish
		}
		for k := range r.dict[other] {
			if _, ok := r.dict[lang][k]; !ok {
				out[lang] = append(out[lang], k)
			}
		}
		sort.Strings(out[lang])
	}
	return out
}
