package server

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

// fieldErrors collects per-field validation failures. Validation runs in
// the handler, before any service call touches persistence.
type fieldErrors map[string]string

func (e fieldErrors) add(field, msg string) {
	if _, taken := e[field]; !taken {
		e[field] = msg
	}
}

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func validEmail(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	_, err := mail.ParseAddress(s)
	return err == nil
}

func (in registerIn) validate() fieldErrors {
	errs := fieldErrors{}
	if !validEmail(in.Email) {
		errs.add("email", "a valid email is required")
	}
	if utf8.RuneCountInString(in.Password) < 8 {
		errs.add("password", "must be at least 8 characters")
	}
	if strings.TrimSpace(in.Name) == "" {
		errs.add("name", "is required")
	}
	return errs
}

func (in loginIn) validate() fieldErrors {
	errs := fieldErrors{}
	if !validEmail(in.Email) {
		errs.add("email", "a valid email is required")
	}
	if in.Password == "" {
		errs.add("password", "is required")
	}
	return errs
}

func (in resetPasswordIn) validate() fieldErrors {
	errs := fieldErrors{}
	if in.Token == "" {
		errs.add("token", "is required")
	}
	if utf8.RuneCountInString(in.NewPassword) < 8 {
		errs.add("newPassword", "must be at least 8 characters")
	}
	return errs
}

func (in createTaskIn) validate() fieldErrors {
	errs := fieldErrors{}
	if strings.TrimSpace(in.Title) == "" {
		errs.add("title", "is required")
	} else if utf8.RuneCountInString(in.Title) > 100 {
		errs.add("title", "must not exceed 100 characters")
	}
	if utf8.RuneCountInString(in.Description) > 500 {
		errs.add("description", "must not exceed 500 characters")
	}
	return errs
}

func (in updateTaskIn) validate() fieldErrors {
	errs := fieldErrors{}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			errs.add("title", "must not be blank")
		} else if utf8.RuneCountInString(*in.Title) > 100 {
			errs.add("title", "must not exceed 100 characters")
		}
	}
	if in.Description != nil && utf8.RuneCountInString(*in.Description) > 500 {
		errs.add("description", "must not exceed 500 characters")
	}
	return errs
}

func (in createCategoryIn) validate() fieldErrors {
	errs := fieldErrors{}
	if strings.TrimSpace(in.Name) == "" {
		errs.add("name", "is required")
	} else if utf8.RuneCountInString(in.Name) > 50 {
		errs.add("name", "must not exceed 50 characters")
	}
	if in.Color != "" && !hexColorRe.MatchString(in.Color) {
		errs.add("color", "must be a hex color like #3B82F6")
	}
	if utf8.RuneCountInString(in.Description) > 200 {
		errs.add("description", "must not exceed 200 characters")
	}
	return errs
}

func (in updateCategoryIn) validate() fieldErrors {
	errs := fieldErrors{}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			errs.add("name", "must not be blank")
		} else if utf8.RuneCountInString(*in.Name) > 50 {
			errs.add("name", "must not exceed 50 characters")
		}
	}
	if in.Color != nil && !hexColorRe.MatchString(*in.Color) {
		errs.add("color", "must be a hex color like #3B82F6")
	}
	if in.Description != nil && utf8.RuneCountInString(*in.Description) > 200 {
		errs.add("description", "must not exceed 200 characters")
	}
	return errs
}

func (in createTagIn) validate() fieldErrors {
	errs := fieldErrors{}
	if strings.TrimSpace(in.Name) == "" {
		errs.add("name", "is required")
	} else if utf8.RuneCountInString(in.Name) > 30 {
		errs.add("name", "must not exceed 30 characters")
	}
	if in.Color != "" && !hexColorRe.MatchString(in.Color) {
		errs.add("color", "must be a hex color like #6B7280")
	}
	return errs
}

func (in updateTagIn) validate() fieldErrors {
	errs := fieldErrors{}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			errs.add("name", "must not be blank")
		} else if utf8.RuneCountInString(*in.Name) > 30 {
			errs.add("name", "must not exceed 30 characters")
		}
	}
	if in.Color != nil && !hexColorRe.MatchString(*in.Color) {
		errs.add("color", "must be a hex color like #6B7280")
	}
	return errs
}
