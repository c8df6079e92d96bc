package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"

	"github.com/claytonburns/asprofile/interfaces"
)

// D-Bus names of the OpenVPN 3 Linux configuration manager.
const (
	configService   = "net.openvpn.v3.configuration"
	configInterface = "net.openvpn.v3.configuration"

	propertiesInterface = "org.freedesktop.DBus.Properties"
)

var configRootPath = dbus.ObjectPath("/net/openvpn/v3/configuration")

// Bus is the slice of a D-Bus connection the sink needs. *dbus.Conn
// satisfies it.
type Bus interface {
	Object(dest string, path dbus.ObjectPath) dbus.BusObject
	Close() error
}

// ConfigManagerSink imports profiles into the OpenVPN 3 configuration
// manager over the system bus.
type ConfigManagerSink struct {
	bus Bus
	log *slog.Logger
}

// NewConfigManagerSink connects to the system bus. Callers own the
// connection and should Close the sink when done.
func NewConfigManagerSink(log *slog.Logger) (*ConfigManagerSink, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("could not connect to system bus: %w", err)
	}
	return &ConfigManagerSink{bus: conn, log: log}, nil
}

func (s *ConfigManagerSink) Close() error {
	return s.bus.Close()
}

// Import registers the profile with the configuration manager and returns a
// handle to the created configuration object. The profile is always
// registered as multi-use; autologin only affects how the caller labels the
// profile, not the import call itself.
func (s *ConfigManagerSink) Import(ctx context.Context, name string, profile []byte, autologin, persistent bool) (interfaces.ImportedProfile, error) {
	manager := s.bus.Object(configService, configRootPath)

	var path dbus.ObjectPath
	call := manager.CallWithContext(ctx, configInterface+".Import", 0, name, string(profile), false, persistent)
	if err := call.Store(&path); err != nil {
		return nil, fmt.Errorf("configuration manager import failed: %w", err)
	}

	s.log.Info("Profile imported into configuration manager",
		slog.String("name", name),
		slog.String("path", string(path)),
		slog.Bool("autologin", autologin),
		slog.Bool("persistent", persistent),
	)

	return &managedProfile{bus: s.bus, path: path, log: s.log}, nil
}

// managedProfile is a configuration object owned by the configuration
// manager.
type managedProfile struct {
	bus  Bus
	path dbus.ObjectPath
	log  *slog.Logger
}

func (p *managedProfile) Path() string {
	return string(p.path)
}

// SetLockedDown flips the configuration object's locked_down property.
// A locked down profile can still be started by the owner but its content
// can only be read back by root and the openvpn service user.
func (p *managedProfile) SetLockedDown(ctx context.Context, lockedDown bool) error {
	object := p.bus.Object(configService, p.path)
	call := object.CallWithContext(ctx, propertiesInterface+".Set", 0, configInterface, "locked_down", dbus.MakeVariant(lockedDown))
	if call.Err != nil {
		return fmt.Errorf("could not set locked_down on %s: %w", p.path, call.Err)
	}

	p.log.Debug("Updated profile lockdown",
		slog.String("path", string(p.path)),
		slog.Bool("locked_down", lockedDown),
	)
	return nil
}
