package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/alnah/go-docx2pdf"
)

// Converter is the part of *docx2pdf.Converter the CLI uses.
type Converter interface {
	Convert(ctx context.Context, input docx2pdf.Input) (*docx2pdf.ConvertResult, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Converter = (*docx2pdf.Converter)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	Getenv       func(string) string
	Environ      func() []string
	NewConverter func(opts ...docx2pdf.Option) (Converter, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		NewConverter: func(opts ...docx2pdf.Option) (Converter, error) {
			return docx2pdf.NewConverter(opts...)
		},
	}
}
