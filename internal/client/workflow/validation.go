package workflow

import (
	"fmt"
	"net/mail"
	"regexp"
	"sort"
	"strings"
)

// ValidationError lists the form fields that block a submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return strings.Join(parts, "; ")
}

// checker collects field errors; the first error per field wins.
type checker struct {
	fields map[string]string
}

func (c *checker) add(field, msg string) {
	if c.fields == nil {
		c.fields = map[string]string{}
	}
	if _, ok := c.fields[field]; !ok {
		c.fields[field] = msg
	}
}

func (c *checker) check(ok bool, field, msg string) {
	if !ok {
		c.add(field, msg)
	}
}

func (c *checker) required(value, field string) {
	c.check(strings.TrimSpace(value) != "", field, "is required")
}

func (c *checker) maxLen(value string, n int, field string) {
	c.check(len([]rune(value)) <= n, field, fmt.Sprintf("must be at most %d characters", n))
}

func (c *checker) email(value, field string) {
	if strings.TrimSpace(value) == "" {
		c.add(field, "is required")
		return
	}
	addr, err := mail.ParseAddress(value)
	c.check(err == nil && addr.Address == value, field, "must be a valid email")
}

func (c *checker) password(value, field string) {
	if value == "" {
		c.add(field, "is required")
		return
	}
	c.check(len(value) >= minPasswordLen, field, fmt.Sprintf("must be at least %d characters", minPasswordLen))
}

func (c *checker) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: c.fields}
}

const minPasswordLen = 6

var panPattern = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
