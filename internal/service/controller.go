// Package service installs and removes services through the service
// control manager.
//
// Both operations report their outcome as a boolean. Failures are logged
// with the failing call and its platform error code; they are never
// returned as errors.
package service

import (
	"strings"

	"github.com/spf13/afero"
	"github.com/warpdl/scctl/internal/scm"
	"github.com/warpdl/scctl/pkg/logger"
)

// Controller runs the create and delete protocols against a binding.
// A Controller holds no handles between calls.
type Controller struct {
	binding scm.Binding
	fs      afero.Fs
	log     logger.Logger
}

// NewController creates a Controller.
// A nil fs means the OS filesystem and a nil logger discards output.
func NewController(binding scm.Binding, fs afero.Fs, l logger.Logger) *Controller {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Controller{
		binding: binding,
		fs:      fs,
		log:     logger.OrNop(l),
	}
}

// CreateService installs the service described by d on the local machine.
// It returns true once the entry exists, even if setting the description
// fails afterwards.
func CreateService(d Descriptor, l logger.Logger) bool {
	return NewController(scm.NewNativeBinding(), afero.NewOsFs(), l).CreateService(d)
}

// DeleteService marks the named service for deletion on the local machine.
func DeleteService(name string, l logger.Logger) bool {
	return NewController(scm.NewNativeBinding(), afero.NewOsFs(), l).DeleteService(name)
}

// failed reports whether a handle-producing call failed and makes sure
// err describes the failure.
func failed(op string, err error, invalid bool) (bool, error) {
	if err == nil && !invalid {
		return false, nil
	}
	if err == nil {
		err = scm.NewPlatformError(op, scm.ErrorInvalidHandle, "")
	}
	return true, err
}

func (c *Controller) preconditionFailed(err error, d Descriptor) {
	c.log.ErrorFields(nil, logger.Fields{"step": "validate", "path": d.BinaryPath}, "%s", err.Error())
}

// CreateService installs the service described by d.
func (c *Controller) CreateService(d Descriptor) bool {
	d = d.WithDefaults()
	if err := d.Validate(c.fs); err != nil {
		c.preconditionFailed(err, d)
		return false
	}

	m, err := c.binding.OpenManager("", "", scm.ManagerCreateService)
	defer m.Close()
	if bad, err := failed("OpenSCManager", err, m.IsInvalid()); bad {
		scm.LogPlatformError(c.log, err, "OpenSCManager failed")
		return false
	}

	s, err := c.binding.CreateServiceEntry(m, d.createParams())
	defer s.Close()
	if bad, err := failed("CreateService", err, s.IsInvalid()); bad {
		scm.LogPlatformError(c.log, err, "CreateService failed for '%s'", d.Name)
		return false
	}
	c.log.Info("Service '%s' created.", d.Name)

	if strings.TrimSpace(d.Description) != "" {
		if err := c.binding.SetServiceDescription(s, d.Description); err != nil {
			scm.LogPlatformError(c.log, err, "ChangeServiceConfig2 failed for '%s'", d.Name)
		} else {
			c.log.Info("Description set for '%s'.", d.Name)
		}
	}
	return true
}

// DeleteService marks the named service for deletion. The control manager
// removes the entry once every handle to it has been closed.
func (c *Controller) DeleteService(name string) bool {
	if strings.TrimSpace(name) == "" {
		c.log.ErrorFields(nil, logger.Fields{"step": "validate"}, "%s", ErrEmptyName.Error())
		return false
	}

	m, err := c.binding.OpenManager("", "", scm.ManagerCreateService)
	defer m.Close()
	if bad, err := failed("OpenSCManager", err, m.IsInvalid()); bad {
		scm.LogPlatformError(c.log, err, "OpenSCManager failed")
		return false
	}

	s, err := c.binding.OpenServiceEntry(m, name, scm.ServiceAllAccess)
	defer s.Close()
	if bad, err := failed("OpenService", err, s.IsInvalid()); bad {
		scm.LogPlatformError(c.log, err, "OpenService failed for '%s'", name)
		return false
	}

	if err := c.binding.DeleteServiceEntry(s); err != nil {
		scm.LogPlatformError(c.log, err, "DeleteService failed for '%s'", name)
		return false
	}
	c.log.Info("Service '%s' deleted.", name)
	return true
}
