// Package validation - проверки полей аккаунта и поста до обращения к хранилищу.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MinFullNameLength    = 2
	MaxFullNameLength    = 100
	MaxDescriptionLength = 5000
	MaxMessageLength     = 2000
	MinPasswordLength    = 8
)

var (
	emailLocalRe  = regexp.MustCompile(`^[a-z0-9._+-]+$`)
	emailDomainRe = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	phoneRe       = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

// ValidateLength считает длину в символах, а не в байтах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должно быть не короче %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должно быть не длиннее %d символов", fieldName, max)
	}
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return fmt.Errorf("email обязателен")
	}
	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return fmt.Errorf("некорректный формат email")
	}
	if len(local) == 0 || len(local) > 64 || !emailLocalRe.MatchString(local) {
		return fmt.Errorf("локальная часть email некорректна")
	}
	if len(domain) > 255 || !emailDomainRe.MatchString(domain) {
		return fmt.Errorf("доменная часть email некорректна")
	}
	return nil
}

// NormalizePhone убирает пробелы, дефисы и скобки.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(phone))
}

func ValidatePhone(phone string) error {
	if !phoneRe.MatchString(NormalizePhone(phone)) {
		return fmt.Errorf("некорректный номер телефона")
	}
	return nil
}

// ValidateBankCard проверяет номер карты по алгоритму Луна.
func ValidateBankCard(number string) error {
	digits := strings.ReplaceAll(strings.TrimSpace(number), " ", "")
	if len(digits) < 12 || len(digits) > 19 {
		return fmt.Errorf("номер карты должен содержать от 12 до 19 цифр")
	}
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if d < 0 || d > 9 {
			return fmt.Errorf("номер карты должен состоять из цифр")
		}
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	if sum%10 != 0 {
		return fmt.Errorf("некорректный номер карты")
	}
	return nil
}

// ValidatePassword: минимум 8 символов, заглавная, строчная буква и цифра.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("пароль должен быть не менее %d символов", MinPasswordLength)
	}

	var hasUpper, hasLower, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("пароль должен содержать хотя бы одну заглавную букву")
	}
	if !hasLower {
		return fmt.Errorf("пароль должен содержать хотя бы одну строчную букву")
	}
	if !hasNumber {
		return fmt.Errorf("пароль должен содержать хотя бы одну цифру")
	}
	return nil
}
