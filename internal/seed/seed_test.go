package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-jobtracker-backend/internal/domain"
	"github.com/tbourn/go-jobtracker-backend/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:seed_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestDefault_IsValid(t *testing.T) {
	f, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if len(f.FeedbackCategories) == 0 || len(f.Questions) == 0 {
		t.Fatalf("embedded seed is empty: %+v", f)
	}
	types := map[string]bool{}
	for _, c := range f.FeedbackCategories {
		types[c.Type] = true
	}
	for _, want := range []string{domain.CategoryPositive, domain.CategoryNegative, domain.CategoryNeutral} {
		if !types[want] {
			t.Fatalf("embedded seed has no %s category", want)
		}
	}
}

func TestParse_Validation(t *testing.T) {
	cases := map[string]string{
		"bad type":       "feedback_categories:\n  - name: X\n    type: meh\n",
		"blank name":     "feedback_categories:\n  - name: ' '\n    type: positive\n",
		"blank question": "questions:\n  - question: ''\n",
		"unknown key":    "colours: [red]\n",
		"not yaml":       "feedback_categories: [\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); !errors.Is(err, ErrInvalid) {
				t.Fatalf("want ErrInvalid, got %v", err)
			}
		})
	}

	f, err := Parse([]byte("feedback_categories:\n  - name: ' Good '\n    type: POSITIVE\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.FeedbackCategories[0].Name != "Good" || f.FeedbackCategories[0].Type != "positive" {
		t.Fatalf("not normalized: %+v", f.FeedbackCategories[0])
	}

	if f, err := Parse(nil); err != nil || len(f.Questions) != 0 {
		t.Fatalf("empty document: %+v, %v", f, err)
	}
}

func TestApply_Idempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := &File{
		FeedbackCategories: []Category{{Name: "Good", Type: "positive"}, {Name: "Bad", Type: "negative"}},
		Questions:          []Question{{Question: "Why us?", Category: "behavioral"}, {Question: "Uncategorized?"}},
	}

	res, err := Apply(ctx, db, f)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.Categories != 2 || res.Questions != 2 {
		t.Fatalf("first apply = %+v", res)
	}

	f.Questions = append(f.Questions, Question{Question: "New one?"})
	res, err = Apply(ctx, db, f)
	if err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	if res.Categories != 0 || res.Questions != 1 {
		t.Fatalf("second apply = %+v", res)
	}

	var qs []domain.QuestionBank
	if err := db.Order("id").Find(&qs).Error; err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(qs) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(qs))
	}
	if qs[0].Category == nil || *qs[0].Category != "behavioral" || qs[1].Category != nil {
		t.Fatalf("categories not stored as expected: %+v", qs)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	if err := os.WriteFile(path, []byte("questions:\n  - question: From disk?\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil || len(f.Questions) != 1 || f.Questions[0].Question != "From disk?" {
		t.Fatalf("Load(file) = %+v, %v", f, err)
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if f, err := Load(""); err != nil || len(f.Questions) == 0 {
		t.Fatalf("Load(\"\") should return the default seed: %v", err)
	}
}
