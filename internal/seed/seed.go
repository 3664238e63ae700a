// Package seed loads reference data (feedback categories and the interview
// question bank) from YAML and applies it idempotently. A default seed is
// embedded in the binary; a file on disk can replace it.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-jobtracker-backend/internal/domain"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalid is returned for seed documents that fail validation.
var ErrInvalid = errors.New("invalid seed")

// File is the YAML seed document.
type File struct {
	FeedbackCategories []Category `yaml:"feedback_categories"`
	Questions          []Question `yaml:"questions"`
}

// Category is one feedback category entry.
type Category struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Question is one question bank entry. Category is optional.
type Question struct {
	Question string `yaml:"question"`
	Category string `yaml:"category"`
}

// Result reports how many rows Apply inserted.
type Result struct {
	Categories int64
	Questions  int64
}

// Parse decodes and validates a seed document. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Default returns the embedded seed.
func Default() (*File, error) { return Parse(defaultYAML) }

// LoadFile reads and parses the seed at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}
	return Parse(data)
}

// Load returns the seed at path, or the embedded default when path is empty.
func Load(path string) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	return LoadFile(path)
}

func (f *File) validate() error {
	for i := range f.FeedbackCategories {
		c := &f.FeedbackCategories[i]
		c.Name = strings.TrimSpace(c.Name)
		c.Type = strings.ToLower(strings.TrimSpace(c.Type))
		if c.Name == "" {
			return fmt.Errorf("%w: feedback_categories[%d]: name is required", ErrInvalid, i)
		}
		switch c.Type {
		case domain.CategoryPositive, domain.CategoryNegative, domain.CategoryNeutral:
		default:
			return fmt.Errorf("%w: feedback_categories[%d]: unknown type %q", ErrInvalid, i, c.Type)
		}
	}
	for i := range f.Questions {
		q := &f.Questions[i]
		q.Question = strings.TrimSpace(q.Question)
		q.Category = strings.TrimSpace(q.Category)
		if q.Question == "" {
			return fmt.Errorf("%w: questions[%d]: question is required", ErrInvalid, i)
		}
	}
	return nil
}

// Apply inserts the seed's categories and questions in one transaction.
// Rows whose category name or question text already exists are skipped, so
// applying the same seed twice is a no-op.
func Apply(ctx context.Context, db *gorm.DB, f *File) (Result, error) {
	var res Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range f.FeedbackCategories {
			row := domain.FeedbackCategory{Name: c.Name, Type: c.Type}
			r := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
			if r.Error != nil {
				return fmt.Errorf("seed category %q: %w", c.Name, r.Error)
			}
			res.Categories += r.RowsAffected
		}
		for _, q := range f.Questions {
			row := domain.QuestionBank{Question: q.Question}
			if q.Category != "" {
				cat := q.Category
				row.Category = &cat
			}
			r := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
			if r.Error != nil {
				return fmt.Errorf("seed question %q: %w", q.Question, r.Error)
			}
			res.Questions += r.RowsAffected
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	zerolog.Ctx(ctx).Info().
		Int64("categories", res.Categories).
		Int64("questions", res.Questions).
		Msg("seed applied")
	return res, nil
}
