package schedule

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	DefaultTitleMaxLength       = 50
	DefaultDescriptionMaxLength = 50
	DefaultTitlePattern         = `^[A-Za-z .,!?-]+$`
	DefaultDescriptionPattern   = `^[A-Za-z0-9 .,!?-]*$`
)

// Rules is the configurable field rule set.
type Rules struct {
	TitleMaxLength       int
	DescriptionMaxLength int
	TitlePattern         string
	DescriptionPattern   string
}

func DefaultRules() Rules {
	return Rules{
		TitleMaxLength:       DefaultTitleMaxLength,
		DescriptionMaxLength: DefaultDescriptionMaxLength,
		TitlePattern:         DefaultTitlePattern,
		DescriptionPattern:   DefaultDescriptionPattern,
	}
}

// Validator checks appointment fields against a Rules set.
type Validator struct {
	rules       Rules
	title       *regexp.Regexp
	description *regexp.Regexp
}

// NewValidator compiles r. Zero-valued fields fall back to the defaults.
func NewValidator(r Rules) (*Validator, error) {
	def := DefaultRules()
	if r.TitleMaxLength == 0 {
		r.TitleMaxLength = def.TitleMaxLength
	}
	if r.DescriptionMaxLength == 0 {
		r.DescriptionMaxLength = def.DescriptionMaxLength
	}
	if r.TitlePattern == "" {
		r.TitlePattern = def.TitlePattern
	}
	if r.DescriptionPattern == "" {
		r.DescriptionPattern = def.DescriptionPattern
	}
	if r.TitleMaxLength < 1 || r.DescriptionMaxLength < 0 {
		return nil, fmt.Errorf("invalid length limits: title=%d description=%d",
			r.TitleMaxLength, r.DescriptionMaxLength)
	}

	title, err := regexp.Compile(r.TitlePattern)
	if err != nil {
		return nil, fmt.Errorf("title pattern: %w", err)
	}
	desc, err := regexp.Compile(r.DescriptionPattern)
	if err != nil {
		return nil, fmt.Errorf("description pattern: %w", err)
	}
	return &Validator{rules: r, title: title, description: desc}, nil
}

func (v *Validator) Rules() Rules { return v.rules }

// Validate runs every field rule and returns all violations; nil means
// valid. Each field reports at most one violation.
func (v *Validator) Validate(title, description string, start, end time.Time) []FieldViolation {
	var out []FieldViolation
	add := func(field, format string, args ...any) {
		out = append(out, FieldViolation{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	switch {
	case strings.TrimSpace(title) == "":
		add("title", "title required")
	case utf8.RuneCountInString(title) > v.rules.TitleMaxLength:
		add("title", "title must be at most %d characters", v.rules.TitleMaxLength)
	case !v.title.MatchString(title):
		add("title", "title may only contain letters, spaces and basic punctuation")
	}

	if description != "" {
		switch {
		case utf8.RuneCountInString(description) > v.rules.DescriptionMaxLength:
			add("description", "description must be at most %d characters", v.rules.DescriptionMaxLength)
		case !v.description.MatchString(description):
			add("description", "description may only contain letters, digits, spaces and basic punctuation")
		}
	}

	if start.IsZero() {
		add("start_time", "start time required")
	}
	switch {
	case end.IsZero():
		add("end_time", "end time required")
	case !start.IsZero() && !end.After(start):
		add("end_time", "end must be after start")
	}

	return out
}
