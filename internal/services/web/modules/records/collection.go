package records

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/bengkel/internal/services/web/platform/errors"
	"github.com/louisbranch/bengkel/internal/services/web/platform/format"
	webtemplates "github.com/louisbranch/bengkel/internal/services/web/templates"
)

// collection describes how one record type is listed, edited and stored.
type collection[T any] struct {
	path     string
	title    string
	noun     string
	columns  []string
	empty    string
	monthly  bool
	recordID func(T) string
	setID    func(*T, string)
	row      func(T) []string
	summary  func([]T) string

	list   func(ctx context.Context, from, to time.Time) ([]T, error)
	get    func(ctx context.Context, id string) (T, error)
	put    func(ctx context.Context, record T) error
	remove func(ctx context.Context, id string) error

	// fields returns the form inputs pre-filled from record.
	fields func(ctx context.Context, record T) ([]webtemplates.Field, error)
	// decode applies submitted values over record.
	decode func(form url.Values, record T) (T, error)
	// blank is the record a create form starts from.
	blank func(now time.Time) T
}

func invalid(message string) error {
	return apperrors.E(apperrors.KindInvalidInput, message)
}

func requiredText(form url.Values, name, label string) (string, error) {
	value := strings.TrimSpace(form.Get(name))
	if value == "" {
		return "", invalid(label + " wajib diisi.")
	}
	return value, nil
}

func rupiahField(form url.Values, name, label string) (int64, error) {
	amount, err := format.ParseRupiah(form.Get(name))
	if err != nil {
		return 0, invalid(label + " harus berupa angka rupiah tanpa desimal.")
	}
	return amount, nil
}

func countField(form url.Values, name, label string) (int, error) {
	value := strings.TrimSpace(form.Get(name))
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, invalid(label + " harus berupa bilangan bulat tidak negatif.")
	}
	return n, nil
}

func checkbox(on bool) string {
	if on {
		return "1"
	}
	return ""
}
