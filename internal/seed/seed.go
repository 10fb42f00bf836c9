// Package seed loads the semester catalogue and the initial admin accounts
// from a YAML file.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator"
	"gopkg.in/yaml.v3"

	"uniprep/internal/models"
	"uniprep/internal/repository"
	utility "uniprep/internal/utility"
)

var validate = validator.New()

type SubjectYAML struct {
	Name string `yaml:"name" validate:"required,max=200"`
	Code string `yaml:"code" validate:"required,max=50"`
}

type SemesterYAML struct {
	Name     string        `yaml:"name" validate:"required,max=100"`
	Number   int           `yaml:"number" validate:"required,min=1,max=8"`
	Subjects []SubjectYAML `yaml:"subjects,omitempty" validate:"dive"`
}

type AdminYAML struct {
	Name     string `yaml:"name" validate:"required"`
	Email    string `yaml:"email" validate:"required,email"`
	Password string `yaml:"password" validate:"required,min=6"`
}

type File struct {
	Semesters []SemesterYAML `yaml:"semesters" validate:"dive"`
	Admins    []AdminYAML    `yaml:"admins,omitempty" validate:"dive"`
}

// Report counts what Apply created and what already existed.
type Report struct {
	Semesters int
	Subjects  int
	Admins    int
	Skipped   int
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	for i := range f.Admins {
		f.Admins[i].Email = models.NormalizeEmail(f.Admins[i].Email)
	}
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}
	return &f, nil
}

// Apply creates every semester, subject and admin of f that does not exist
// yet. Existing entries are left untouched, so Apply can be re-run.
func Apply(ctx context.Context, stores repository.Stores, f *File) (Report, error) {
	var report Report

	existing, err := stores.Semesters.List(ctx)
	if err != nil {
		return report, fmt.Errorf("list semesters: %w", err)
	}
	byNumber := make(map[int]models.Semester, len(existing))
	for _, s := range existing {
		byNumber[s.Number] = s
	}

	for _, sy := range f.Semesters {
		semester, ok := byNumber[sy.Number]
		if ok {
			report.Skipped++
		} else {
			semester = models.Semester{Name: sy.Name, Number: sy.Number}
			if err := stores.Semesters.Create(ctx, &semester); err != nil {
				return report, fmt.Errorf("create semester %d: %w", sy.Number, err)
			}
			byNumber[semester.Number] = semester
			report.Semesters++
		}

		for _, sub := range sy.Subjects {
			subject := models.Subject{Name: sub.Name, Code: sub.Code, Semester: semester.ID}
			err := stores.Subjects.Create(ctx, &subject)
			switch {
			case errors.Is(err, repository.ErrDuplicate):
				report.Skipped++
			case err != nil:
				return report, fmt.Errorf("create subject %s: %w", sub.Code, err)
			default:
				report.Subjects++
			}
		}
	}

	for _, a := range f.Admins {
		created, err := applyAdmin(ctx, stores.Users, a)
		if err != nil {
			return report, err
		}
		if created {
			report.Admins++
		} else {
			report.Skipped++
		}
	}

	log.Printf("seed: %d semesters, %d subjects, %d admins created, %d skipped",
		report.Semesters, report.Subjects, report.Admins, report.Skipped)
	return report, nil
}

func applyAdmin(ctx context.Context, users repository.UserStore, a AdminYAML) (bool, error) {
	email := models.NormalizeEmail(a.Email)
	if _, err := users.FindByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, fmt.Errorf("find admin %s: %w", email, err)
	}

	password, err := utility.HashPassword(a.Password)
	if err != nil {
		return false, err
	}
	err = users.Create(ctx, &models.User{
		Name:       a.Name,
		Email:      email,
		Password:   password,
		IsVerified: true,
		Admin:      true,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("create admin %s: %w", email, err)
	}
	return true, nil
}
