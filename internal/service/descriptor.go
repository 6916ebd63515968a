package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/warpdl/scctl/internal/scm"
	"gopkg.in/yaml.v3"
)

// Precondition errors reported before any service control call is made.
var (
	ErrEmptyName         = errors.New("service name is empty")
	ErrBinaryNotFound    = errors.New("service binary not found")
	ErrBinaryNotAbsolute = errors.New("service path is not rooted")
)

// DefaultStartType is used when a Descriptor leaves StartType empty.
const DefaultStartType = "auto"

// Descriptor describes a service to install.
type Descriptor struct {
	// Name identifies the service and doubles as its display name.
	Name string `yaml:"name"`

	// BinaryPath is the absolute path of the service executable.
	// The control manager stores it verbatim.
	BinaryPath string `yaml:"binary_path"`

	Description string `yaml:"description,omitempty"`

	// StartType is "auto", "demand" or "disabled". Anything else means auto.
	StartType string `yaml:"start_type,omitempty"`

	// Account the service runs as. Defaults to LocalSystem.
	Account string `yaml:"account,omitempty"`

	// Dependencies is passed to the control manager unchanged.
	Dependencies string `yaml:"dependencies,omitempty"`

	// Password of Account. Never read from descriptor files.
	Password string `yaml:"-"`
}

// WithDefaults fills the optional fields left empty.
func (d Descriptor) WithDefaults() Descriptor {
	if strings.TrimSpace(d.StartType) == "" {
		d.StartType = DefaultStartType
	}
	if strings.TrimSpace(d.Account) == "" {
		d.Account = scm.LocalSystem
	}
	return d
}

// Validate checks the preconditions of CreateService against fs.
func (d Descriptor) Validate(fs afero.Fs) error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(d.BinaryPath) == "" {
		return fmt.Errorf("%w: %q", ErrBinaryNotFound, d.BinaryPath)
	}
	fi, err := fs.Stat(d.BinaryPath)
	if err != nil || fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrBinaryNotFound, d.BinaryPath)
	}
	if !filepath.IsAbs(d.BinaryPath) {
		return fmt.Errorf("%w: %s", ErrBinaryNotAbsolute, d.BinaryPath)
	}
	return nil
}

// createParams builds the CreateServiceEntry arguments for d.
func (d Descriptor) createParams() scm.CreateParams {
	return scm.CreateParams{
		Name:         d.Name,
		DisplayName:  d.Name,
		Access:       scm.ServiceAllAccess,
		ServiceType:  scm.ServiceWin32OwnProcess,
		StartType:    scm.ParseStartType(d.StartType),
		ErrorControl: scm.ErrorControlNormal,
		BinaryPath:   d.BinaryPath,
		Dependencies: d.Dependencies,
		StartName:    d.Account,
		Password:     d.Password,
	}
}

// LoadDescriptor reads a YAML descriptor from path.
// Unknown keys are rejected.
func LoadDescriptor(fs afero.Fs, path string) (Descriptor, error) {
	var d Descriptor
	f, err := fs.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return d, fmt.Errorf("descriptor file %s does not exist", path)
		}
		return d, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return d, fmt.Errorf("failed to parse descriptor %s: %w", path, err)
	}
	return d, nil
}
