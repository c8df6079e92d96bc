package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/url"
	"os"
	"slices"

	"github.com/urfave/cli/v2"

	"github.com/claytonburns/asprofile/asrest"
	"github.com/claytonburns/asprofile/cmd/flags"
	"github.com/claytonburns/asprofile/common"
	"github.com/claytonburns/asprofile/download"
	"github.com/claytonburns/asprofile/importer"
	"github.com/claytonburns/asprofile/interfaces"
	"github.com/claytonburns/asprofile/keyring"
	"github.com/claytonburns/asprofile/terminal"
)

var serverFlags []cli.Flag = []cli.Flag{
	&cli.StringFlag{
		Name:    "username",
		Aliases: []string{"u"},
		Usage:   "Access Server username. Prompted for when unset",
		EnvVars: []string{"OPENVPN_AS_USERNAME"},
	},
	&cli.StringFlag{
		Name:    "password",
		Usage:   "Access Server password. Prompted for when unset; prefer the environment variable over the flag",
		EnvVars: []string{"OPENVPN_AS_PASSWORD"},
	},
	&cli.BoolFlag{
		Name:    "autologin",
		Usage:   "request the autologin profile instead of the user-login profile",
		EnvVars: []string{"OPENVPN_AS_AUTOLOGIN"},
	},
	&cli.BoolFlag{
		Name:    "insecure-tls",
		Usage:   "accept the server certificate without verification",
		EnvVars: []string{"OPENVPN_AS_INSECURE_TLS"},
	},
}

var importFlags []cli.Flag = []cli.Flag{
	&cli.StringFlag{
		Name:    "name",
		Usage:   "profile name to import under. Defaults to the server host name",
		EnvVars: []string{"OPENVPN_AS_PROFILE_NAME"},
	},
	&cli.BoolFlag{
		Name:    "impersistent",
		Usage:   "import the profile as non-persistent, dropped on configuration manager restart",
		EnvVars: []string{"OPENVPN_AS_IMPERSISTENT"},
	},
	&cli.StringFlag{
		Name:    "output-dir",
		Usage:   "write the profile to this directory instead of the configuration manager",
		EnvVars: []string{"OPENVPN_AS_OUTPUT_DIR"},
	},
}

var keyringFlags []cli.Flag = []cli.Flag{
	&cli.BoolFlag{
		Name:    "use-keyring",
		Usage:   "look the password up in the system keyring before prompting",
		EnvVars: []string{"OPENVPN_AS_USE_KEYRING"},
	},
	&cli.BoolFlag{
		Name:    "save-password",
		Usage:   "store the accepted password in the system keyring after a successful download",
		EnvVars: []string{"OPENVPN_AS_SAVE_PASSWORD"},
	},
}

var logServiceFlag = flags.LogServiceFlagFn("openvpn3-as")

const usage string = `Download a connection profile from an OpenVPN Access Server
Authenticates against the server's profile REST endpoints, resolving
CRV1 challenges interactively, then imports the profile into the
OpenVPN 3 configuration manager or a local directory.`

func main() {
	app := &cli.App{
		Name:      "openvpn3-as",
		Usage:     usage,
		ArgsUsage: "<server URL>",
		Version:   common.Version,
		Flags:     slices.Concat(serverFlags, importFlags, keyringFlags, []cli.Flag{logServiceFlag}, flags.CommonFlags),
		Action: func(cCtx *cli.Context) error {
			downloader, err := NewDownloader(cCtx)
			if err != nil {
				return err
			}
			defer downloader.Close()

			return downloader.Do(cCtx.Context)
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

type Downloader struct {
	ServerURL    string
	Username     string
	Password     string
	Autologin    bool
	ProfileName  string
	Persistent   bool
	UseKeyring   bool
	SavePassword bool

	Fetcher interfaces.ProfileFetcher
	Sink    interfaces.ImportSink
	UI      interfaces.Interactor

	log    *slog.Logger
	closer func() error
}

func NewDownloader(cCtx *cli.Context) (*Downloader, error) {
	logger := flags.SetupLogger(cCtx)

	if cCtx.NArg() != 1 {
		return nil, errors.New("expected exactly one argument, the server URL")
	}

	serverURL, err := asrest.NormalizeServerURL(cCtx.Args().First())
	if err != nil {
		return nil, err
	}

	name := cCtx.String("name")
	if name == "" {
		u, err := url.Parse(serverURL)
		if err != nil {
			return nil, fmt.Errorf("could not derive profile name: %w", err)
		}
		name = u.Hostname()
	}

	client := &asrest.Client{ServerURL: serverURL}
	if cCtx.Bool("insecure-tls") {
		logger.Warn("TLS certificate verification disabled", "server", serverURL)
		client.HTTPClient = asrest.InsecureHTTPClient()
	}

	var sink interfaces.ImportSink
	closer := func() error { return nil }
	if outputDir := cCtx.String("output-dir"); outputDir != "" {
		fileSink, err := importer.NewFileSink(outputDir, logger)
		if err != nil {
			return nil, err
		}
		sink = fileSink
	} else {
		managerSink, err := importer.NewConfigManagerSink(logger)
		if err != nil {
			return nil, err
		}
		sink = managerSink
		closer = managerSink.Close
	}

	return &Downloader{
		ServerURL:    serverURL,
		Username:     cCtx.String("username"),
		Password:     cCtx.String("password"),
		Autologin:    cCtx.Bool("autologin"),
		ProfileName:  name,
		Persistent:   !cCtx.Bool("impersistent"),
		UseKeyring:   cCtx.Bool("use-keyring"),
		SavePassword: cCtx.Bool("save-password"),
		Fetcher:      client,
		Sink:         sink,
		UI:           terminal.New(),
		log:          logger,
		closer:       closer,
	}, nil
}

func (d *Downloader) Close() error {
	return d.closer()
}

func (d *Downloader) Do(ctx context.Context) error {
	username := d.Username
	if username == "" {
		d.UI.Prompt("Username: ")
		line, err := d.UI.ReadLine()
		if err != nil {
			return fmt.Errorf("could not read username: %w", err)
		}
		username = line
	}
	if username == "" {
		return errors.New("username must not be empty")
	}

	password := d.Password
	if password == "" && d.UseKeyring {
		stored, err := keyring.Lookup(d.ServerURL, username)
		switch {
		case err == nil:
			d.log.Debug("Using password from system keyring")
			password = stored
		case errors.Is(err, keyring.ErrNotFound):
			d.log.Debug("No password stored for this server")
		default:
			d.log.Warn("Keyring lookup failed", "err", err)
		}
	}
	if password == "" {
		d.UI.Prompt("Password: ")
		secret, err := d.UI.ReadPassword()
		if err != nil {
			return fmt.Errorf("could not read password: %w", err)
		}
		password = secret
	}

	profile, err := download.New(d.Fetcher, d.UI, d.log).Run(ctx, username, password, d.Autologin)
	if err != nil {
		return err
	}
	d.log.Info("Profile downloaded",
		slog.String("server", d.ServerURL),
		slog.Int("size", len(profile)))

	imported, err := d.Sink.Import(ctx, d.ProfileName, profile, d.Autologin, d.Persistent)
	if err != nil {
		return fmt.Errorf("profile import failed: %w", err)
	}
	if err := imported.SetLockedDown(ctx, true); err != nil {
		return fmt.Errorf("could not lock down imported profile: %w", err)
	}

	d.log.Info("Profile imported",
		slog.String("name", d.ProfileName),
		slog.String("path", imported.Path()),
		slog.Bool("persistent", d.Persistent))

	if d.SavePassword {
		if err := keyring.Store(d.ServerURL, username, password); err != nil {
			d.log.Warn("Could not store password in system keyring", "err", err)
		} else {
			d.log.Info("Password stored in system keyring")
		}
	}

	return nil
}
