package validate

import (
	"strings"
	"testing"
)

func TestPassword(t *testing.T) {
	cases := []struct {
		Casename string
		Password string
		Valid    bool
	}{
		{"empty", "", false},
		{"too short", "short", false},
		{"minimum length", "12345678", true},
		{"too long", strings.Repeat("x", 73), false},
	}

	for _, c := range cases {
		t.Run(c.Casename, func(t *testing.T) {
			err := Password(c.Password)
			if c.Valid && err != nil {
				t.Errorf("unexpected error: %s", err)
			}
			if !c.Valid && err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestEmail(t *testing.T) {
	cases := []struct {
		Casename string
		Email    string
		Valid    bool
	}{
		{"empty", "", false},
		{"no at sign", "nope", false},
		{"plain address", "a@x.com", true},
	}

	for _, c := range cases {
		t.Run(c.Casename, func(t *testing.T) {
			err := Email(c.Email)
			if c.Valid && err != nil {
				t.Errorf("unexpected error: %s", err)
			}
			if !c.Valid && err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestContent(t *testing.T) {
	cases := []struct {
		Casename string
		Content  string
		Valid    bool
	}{
		{"empty", "", false},
		{"whitespace only", " \n\t", false},
		{"plain", "こんにちは", true},
		{"at the rune limit", strings.Repeat("あ", MaxContentLen), true},
		{"over the rune limit", strings.Repeat("あ", MaxContentLen+1), false},
	}

	for _, c := range cases {
		t.Run(c.Casename, func(t *testing.T) {
			err := Content(c.Content)
			if c.Valid && err != nil {
				t.Errorf("unexpected error: %s", err)
			}
			if !c.Valid && err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestSignUpForm_JoinsErrors(t *testing.T) {
	err := SignUpForm("", "bad", "short")
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{"name", "password"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected joined error to mention %q: %s", want, err)
		}
	}
}
