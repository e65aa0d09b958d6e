package handlers

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/yesaroun/taskboard/pkg/errors"
)

// Input limits, matching the field constraints enforced at registration
// and post/comment creation.
const (
	passwordMinLen = 6
	passwordMaxLen = 20
	nicknameMinLen = 2
	nicknameMaxLen = 20
	titleMaxLen    = 26
	contentMaxLen  = 5000
	commentMaxLen  = 1000
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return &errors.ValidationError{Field: "email", Message: "must be a valid email address"}
	}
	return nil
}

func validatePassword(password string) error {
	if n := len(password); n < passwordMinLen || n > passwordMaxLen {
		return &errors.ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("must be between %d and %d characters", passwordMinLen, passwordMaxLen),
		}
	}
	return nil
}

func validateNickname(nickname string) error {
	if n := utf8.RuneCountInString(nickname); n < nicknameMinLen || n > nicknameMaxLen {
		return &errors.ValidationError{
			Field:   "nickname",
			Message: fmt.Sprintf("must be between %d and %d characters", nicknameMinLen, nicknameMaxLen),
		}
	}
	return nil
}

func validateTitle(title string) error {
	if n := utf8.RuneCountInString(title); n < 1 || n > titleMaxLen {
		return &errors.ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("must be between 1 and %d characters", titleMaxLen),
		}
	}
	return nil
}

func validateContent(content string) error {
	if n := utf8.RuneCountInString(content); n < 1 || n > contentMaxLen {
		return &errors.ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("must be between 1 and %d characters", contentMaxLen),
		}
	}
	return nil
}

func validateComment(content string) error {
	if n := utf8.RuneCountInString(content); n < 1 || n > commentMaxLen {
		return &errors.ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("must be between 1 and %d characters", commentMaxLen),
		}
	}
	return nil
}
