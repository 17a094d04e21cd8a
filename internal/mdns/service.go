// Package mdns advertises the Galleria server on the local network via Avahi.
package mdns

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/holoplot/go-avahi"
)

const (
	// ServiceType is the DNS-SD service type Galleria servers register under.
	ServiceType = "_galleria._tcp"

	// APIVersion is the API version advertised in TXT records.
	APIVersion = "v1"

	// ServerVersion is the server version advertised in TXT records.
	// TODO: Extract to a shared version package.
	ServerVersion = "1.0.0"
)

// Service manages mDNS advertisement so studio clients on the same
// network can discover the server without manual configuration.
type Service struct {
	server *avahi.Server
	logger *slog.Logger
	mu     sync.Mutex
}

// NewService creates an mDNS service that is not yet advertising.
func NewService(logger *slog.Logger) *Service {
	return &Service{
		logger: logger,
	}
}

// Start registers the service with the local Avahi daemon. It should be
// called after the HTTP server is listening.
//
// Errors are typically non-fatal: no Avahi daemon on the host, or
// multicast not supported in the container.
func (s *Service) Start(name string, port int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Stop existing advertisement if running (for restart scenarios).
	if s.server != nil {
		s.server.Close()
		s.server = nil
	}

	if name == "" {
		host, err := os.Hostname()
		if err != nil {
			host = "galleria-server"
		}
		name = host
	}

	conn, err := dbus.SystemBus()
	if err != nil {
		return fmt.Errorf("connect system bus: %w", err)
	}

	server, err := avahi.ServerNew(conn)
	if err != nil {
		conn.Close()
		return fmt.Errorf("connect avahi daemon: %w", err)
	}

	group, err := server.EntryGroupNew()
	if err != nil {
		server.Close()
		return fmt.Errorf("create entry group: %w", err)
	}

	// Empty domain and host let the daemon fill in the .local defaults.
	err = group.AddService(
		avahi.InterfaceUnspec,
		avahi.ProtoUnspec,
		0,
		name,
		ServiceType,
		"",
		"",
		uint16(port),
		txtRecords(),
	)
	if err != nil {
		server.Close()
		return fmt.Errorf("add service: %w", err)
	}

	if err := group.Commit(); err != nil {
		server.Close()
		return fmt.Errorf("commit entry group: %w", err)
	}

	s.server = server

	s.logger.Info("mDNS advertisement started",
		"service", ServiceType,
		"instance", name,
		"port", port,
	)

	return nil
}

// Stop withdraws the advertisement and drops the bus connection.
// Safe to call multiple times or if not started.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		s.server.Close()
		s.server = nil
		s.logger.Info("mDNS advertisement stopped")
	}
}

func txtRecords() [][]byte {
	records := []string{
		fmt.Sprintf("version=%s", ServerVersion),
		fmt.Sprintf("api=%s", APIVersion),
		fmt.Sprintf("path=/api/%s", APIVersion),
	}

	txt := make([][]byte, len(records))
	for i, record := range records {
		txt[i] = []byte(record)
	}
	return txt
}
