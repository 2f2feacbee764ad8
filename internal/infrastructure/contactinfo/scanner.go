// Package contactinfo ищет в свободном тексте контактные данные: мессенджеры, почту, ссылки, телефоны.
package contactinfo

import (
	"regexp"
	"strings"
)

var (
	nonAlnum  = regexp.MustCompile(`[^a-zа-яёіїєґ0-9]+`)
	urlRe     = regexp.MustCompile(`(?i)https?://`)
	domainRe  = regexp.MustCompile(`(?i)\.(com|ua|ru|net|org|me|gg|io)(\W|$)`)
	phoneRe   = regexp.MustCompile(`\+?\d{1,3}[- ()]*\d{2,3}[- ()]*\d{2,3}[- ()]*\d{2,4}`)
	emailRe   = regexp.MustCompile(`[a-zA-Z0-9._%+-]+\s*@\s*[a-zA-Z0-9.-]+\s*\.\s*[a-zA-Z]{2,}`)
	defaultKW = []string{
		"tg", "telegram", "telega", "тлг", "теле", "теграм", "телеґрам",
		"inst", "instagram", "інст", "інстаграм", "инстаграм",
		"нік", "username", "акаунт", "аккаунт", "gmail", "yahoo", "hotmail",
		"outlook", "ukrnet", "iua", "metaua", "mailru", "protonmail", "whatsapp", "viber",
	}
)

type Scanner struct {
	keywords []string
}

// NewScanner создаёт сканер со стандартным словарём. Дополнительные слова приводятся к нижнему регистру.
func NewScanner(extraKeywords ...string) *Scanner {
	kw := make([]string, 0, len(defaultKW)+len(extraKeywords))
	kw = append(kw, defaultKW...)
	for _, k := range extraKeywords {
		if k = nonAlnum.ReplaceAllString(strings.ToLower(k), ""); k != "" {
			kw = append(kw, k)
		}
	}
	return &Scanner{keywords: kw}
}

func (s *Scanner) ContainsContactInfo(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	normalized := nonAlnum.ReplaceAllString(strings.ToLower(text), "")
	for _, k := range s.keywords {
		if strings.Contains(normalized, k) {
			return true
		}
	}

	if strings.ContainsAny(text, "@_") {
		return true
	}

	return urlRe.MatchString(text) ||
		domainRe.MatchString(text) ||
		phoneRe.MatchString(text) ||
		emailRe.MatchString(text)
}
