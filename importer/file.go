package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/claytonburns/asprofile/interfaces"
)

// FileSink stores profiles in a local directory instead of the
// configuration manager.
type FileSink struct {
	baseDir string
	log     *slog.Logger
}

// NewFileSink creates the target directory if needed. The directory is
// private to the current user since profiles may embed key material.
func NewFileSink(baseDir string, log *slog.Logger) (*FileSink, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create profile directory: %w", err)
	}
	return &FileSink{baseDir: baseDir, log: log}, nil
}

// profileMetadata is the sidecar document written next to each profile.
type profileMetadata struct {
	Name       string    `yaml:"name"`
	Autologin  bool      `yaml:"autologin"`
	Persistent bool      `yaml:"persistent"`
	LockedDown bool      `yaml:"locked_down"`
	Imported   time.Time `yaml:"imported"`
}

// Import writes <name>.ovpn and a <name>.yaml sidecar into the sink
// directory. The name must be a plain file name, not a path.
func (s *FileSink) Import(ctx context.Context, name string, profile []byte, autologin, persistent bool) (interfaces.ImportedProfile, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, fmt.Errorf("invalid profile name %q", name)
	}

	profilePath := filepath.Join(s.baseDir, name+".ovpn")
	if err := os.WriteFile(profilePath, profile, 0600); err != nil {
		return nil, fmt.Errorf("failed to write profile: %w", err)
	}

	stored := &storedProfile{
		profilePath:  profilePath,
		metadataPath: filepath.Join(s.baseDir, name+".yaml"),
		metadata: profileMetadata{
			Name:       name,
			Autologin:  autologin,
			Persistent: persistent,
			Imported:   time.Now().UTC(),
		},
		log: s.log,
	}
	if err := stored.writeMetadata(); err != nil {
		return nil, err
	}

	s.log.Debug("Stored profile",
		slog.String("path", profilePath),
		slog.Int("size", len(profile)),
	)

	return stored, nil
}

// storedProfile is a profile written to the local filesystem.
type storedProfile struct {
	profilePath  string
	metadataPath string
	metadata     profileMetadata
	log          *slog.Logger
}

func (p *storedProfile) Path() string {
	return p.profilePath
}

// SetLockedDown tightens the profile file to owner read-only and records
// the state in the metadata sidecar.
func (p *storedProfile) SetLockedDown(ctx context.Context, lockedDown bool) error {
	mode := os.FileMode(0600)
	if lockedDown {
		mode = 0400
	}
	if err := os.Chmod(p.profilePath, mode); err != nil {
		return fmt.Errorf("could not change profile mode: %w", err)
	}

	p.metadata.LockedDown = lockedDown
	if err := p.writeMetadata(); err != nil {
		return err
	}

	p.log.Debug("Updated profile lockdown",
		slog.String("path", p.profilePath),
		slog.Bool("locked_down", lockedDown),
	)
	return nil
}

func (p *storedProfile) writeMetadata() error {
	data, err := yaml.Marshal(&p.metadata)
	if err != nil {
		return fmt.Errorf("could not serialize profile metadata: %w", err)
	}
	if err := os.WriteFile(p.metadataPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write profile metadata: %w", err)
	}
	return nil
}
