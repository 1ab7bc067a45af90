package validate

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	MinPasswordLen = 8
	MaxPasswordLen = 72
	MaxNameLen     = 64
	MaxContentLen  = 280
)

func SignUpForm(name, email, password string) error {
	var errs = []error{}

	errs = append(errs, Name(name))

	errs = append(errs, Email(email))

	errs = append(errs, Password(password))

	return errors.Join(errs...)
}

func Password(password string) error {
	l := len(password)
	switch {
	case l == 0:
		return errors.New("empty password")
	case l < MinPasswordLen:
		return fmt.Errorf("password too short; min %d characters", MinPasswordLen)
	case l > MaxPasswordLen:
		return fmt.Errorf("password too long; max %d characters", MaxPasswordLen)
	}
	return nil
}

func Email(email string) error {
	if len(email) == 0 {
		return errors.New("empty email")
	}
	_, err := mail.ParseAddress(email)

	return err
}

func Name(name string) error {
	if l := len(name); l == 0 {
		return errors.New("empty name")
	} else if l > MaxNameLen {
		return fmt.Errorf("name too long; max %d characters", MaxNameLen)
	}
	return nil
}

// Content checks a post body. Length is counted in runes, not bytes, since
// post bodies are routinely non-ASCII.
func Content(content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.New("empty content")
	}
	if l := utf8.RuneCountInString(content); l > MaxContentLen {
		return fmt.Errorf("content too long; max %d characters", MaxContentLen)
	}
	return nil
}
