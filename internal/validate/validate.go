// Package validate holds the client-side input rules for usernames and task titles.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"taskman/internal/service"
)

const (
	UsernameMin = 3
	UsernameMax = 20
	TitleMin    = 3
	TitleMax    = 100
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Username checks a login name. The returned error is a KindValidation *service.Error.
func Username(name string) error {
	n := utf8.RuneCountInString(name)
	switch {
	case name == "":
		return service.Validation("Username is required")
	case n < UsernameMin:
		return service.Validation("Username must be at least 3 characters long")
	case n > UsernameMax:
		return service.Validation("Username must be at most 20 characters long")
	case !usernamePattern.MatchString(name):
		return service.Validation("Username can only contain letters, numbers, and underscores")
	}
	return nil
}

// Title checks a task title after trimming surrounding whitespace.
func Title(title string) error {
	title = strings.TrimSpace(title)
	n := utf8.RuneCountInString(title)
	switch {
	case title == "":
		return service.Validation("Task title is required")
	case n < TitleMin:
		return service.Validation("Task title must be at least 3 characters long")
	case n > TitleMax:
		return service.Validation("Task title must be at most 100 characters long")
	}
	return nil
}
