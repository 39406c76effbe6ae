package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

var _ pflag.Value = (*Size)(nil)

var ErrInvalidSize = errors.New("size must be two positive integers")

// Size is a target thumbnail size. It implements pflag.Value and accepts
// "800x250", "800,250", or the two numbers through separate flag uses.
type Size struct {
	Width  int `validate:"gt=0"`
	Height int `validate:"gt=0"`

	pending bool
}

func (s *Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

func (s *Size) Type() string {
	return "WxH"
}

func (s *Size) Set(value string) error {
	value = strings.TrimSpace(value)
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == 'x' || r == 'X' || r == ','
	})

	switch len(parts) {
	case 2:
		if s.pending {
			return fmt.Errorf("%w: got a full size after a single width %d", ErrInvalidSize, s.Width)
		}
		w, err := parseDimension(parts[0])
		if err != nil {
			return err
		}
		h, err := parseDimension(parts[1])
		if err != nil {
			return err
		}
		s.Width, s.Height = w, h
	case 1:
		n, err := parseDimension(parts[0])
		if err != nil {
			return err
		}
		if s.pending {
			s.Height = n
			s.pending = false
		} else {
			s.Width = n
			s.pending = true
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSize, value)
	}
	return nil
}

// Complete reports an error when only the width was given.
func (s *Size) Complete() error {
	if s.pending {
		return fmt.Errorf("%w: missing height after width %d", ErrInvalidSize, s.Width)
	}
	return nil
}

func parseDimension(v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, v)
	}
	return n, nil
}
