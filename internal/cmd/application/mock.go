// Package application provides test doubles for cmd/application.
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/bootdrift/cmd/application"
	"github.com/agentstation/bootdrift/pkg/catalog"
	"github.com/agentstation/bootdrift/pkg/errors"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
// Example Usage:
//
//	mock := &application.Mock{
//	    CatalogsFunc: func(...catalog.Option) (application.Catalogs, error) {
//	        return fake, nil
//	    },
//	    OutputFormatFunc: func() string { return "json" },
//	}
//	cmd := check.NewCommand(mock)
type Mock struct {
	CatalogsFunc     func(opts ...catalog.Option) (application.Catalogs, error)
	CacheFunc        func() (application.CacheIndex, error)
	LoggerFunc       func() *zerolog.Logger
	NoColorFunc      func() bool
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

var _ application.Application = (*Mock)(nil)

// Catalogs returns a provider using the mock function or an error.
func (m *Mock) Catalogs(opts ...catalog.Option) (application.Catalogs, error) {
	if m.CatalogsFunc != nil {
		return m.CatalogsFunc(opts...)
	}
	return nil, errors.NewConfigError("mock", "no catalogs configured", nil)
}

// Cache returns a cache index using the mock function or an error.
func (m *Mock) Cache() (application.CacheIndex, error) {
	if m.CacheFunc != nil {
		return m.CacheFunc()
	}
	return nil, errors.NewConfigError("mock", "no cache configured", nil)
}

// NoColor returns the mock setting or true.
func (m *Mock) NoColor() bool {
	if m.NoColorFunc != nil {
		return m.NoColorFunc()
	}
	return true
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns the version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns the commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns the date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns the builder using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
