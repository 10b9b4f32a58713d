package services

import (
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// ServiceFactory provides a centralized way to create and manage services
type ServiceFactory struct {
	fs              afero.Fs
	logger          log.FieldLogger
	bootInfoService BootInfoService
	mu              sync.RWMutex
	initialized     bool
}

// NewServiceFactory creates a factory whose services read from fs and log
// to logger. A nil fs means the host filesystem.
func NewServiceFactory(fs afero.Fs, logger log.FieldLogger) *ServiceFactory {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &ServiceFactory{fs: fs, logger: logger}
}

// Initialize initializes all services with their dependencies
func (sf *ServiceFactory) Initialize() error {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	if sf.initialized {
		return nil
	}

	sf.bootInfoService = NewBootInfoService(sf.fs, sf.logger.WithField("service", "bootinfo"))

	sf.initialized = true
	return nil
}

// BootInfoService returns the boot information service instance
func (sf *ServiceFactory) BootInfoService() (BootInfoService, error) {
	sf.mu.RLock()
	defer sf.mu.RUnlock()

	if !sf.initialized {
		sf.mu.RUnlock()
		if err := sf.Initialize(); err != nil {
			sf.mu.RLock()
			return nil, err
		}
		sf.mu.RLock()
	}

	return sf.bootInfoService, nil
}

// Shutdown releases all services
func (sf *ServiceFactory) Shutdown() error {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	sf.bootInfoService = nil
	sf.initialized = false
	return nil
}

// IsInitialized returns whether the factory has been initialized
func (sf *ServiceFactory) IsInitialized() bool {
	sf.mu.RLock()
	defer sf.mu.RUnlock()
	return sf.initialized
}

// ServiceInfo provides information about available services
type ServiceInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}

// ListAvailableServices returns information about all services
func (sf *ServiceFactory) ListAvailableServices() []ServiceInfo {
	sf.mu.RLock()
	defer sf.mu.RUnlock()

	return []ServiceInfo{
		{
			Name:        "BootInfoService",
			Description: "Loads multiboot2 boot information dumps and decodes their tags",
			Available:   sf.initialized,
		},
	}
}
