package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gtonic/apibridge/pkg/bridge"
	"github.com/gtonic/apibridge/pkg/catalog"
	"github.com/gtonic/apibridge/pkg/cli"
	"github.com/gtonic/apibridge/pkg/config"
	"github.com/gtonic/apibridge/pkg/dispatch"
	"github.com/gtonic/apibridge/pkg/markdown"
	"github.com/gtonic/apibridge/pkg/rest"

	"github.com/joho/godotenv"
)

var version string

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	godotenv.Load()

	app := initApp()

	if err := app.Run(ctx, os.Args); err != nil {
		cli.Fatal(err)
	}
}

func initApp() cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "Config file",
		},

		&cli.StringFlag{
			Name:  "file",
			Usage: "OpenAPI specification (path or URL)",
		},

		&cli.StringFlag{
			Name:  "url",
			Usage: "API base URL",
		},

		&cli.StringFlag{
			Name:  "bearer",
			Usage: "API bearer token",
		},

		&cli.StringFlag{
			Name:  "username",
			Usage: "API username",
		},

		&cli.StringFlag{
			Name:  "password",
			Usage: "API password",
		},

		&cli.StringSliceFlag{
			Name:  "header",
			Usage: "Extra header (Name=value), attached to every request",
		},
	}

	return cli.Command{
		Usage: "Bridge OpenAPI operations to CLI and MCP tools",

		Suggest: true,
		Version: version,

		HideHelpCommand: true,

		Commands: []*cli.Command{
			{
				Name:  "tools",
				Usage: "List callable operations",

				Flags: flags,

				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runTools(ctx, cmd)
				},
			},

			{
				Name:      "call",
				Usage:     "Call one operation",
				ArgsUsage: "<operation>",

				Flags: append([]cli.Flag{
					&cli.StringSliceFlag{
						Name:  "arg",
						Usage: "Argument (name=value)",
					},

					&cli.StringFlag{
						Name:  "json",
						Usage: "Arguments as a JSON object",
					},

					&cli.BoolFlag{
						Name:  "confirm",
						Usage: "Ask before mutating requests",
					},
				}, flags...),

				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runCall(ctx, cmd)
				},
			},

			{
				Name:  "serve",
				Usage: "Serve operations as MCP tools",

				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "sse",
						Usage: "SSE listen address (stdio when empty)",
					},
				}, flags...),

				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runServe(ctx, cmd)
				},
			},
		},
	}
}

func runTools(ctx context.Context, cmd *cli.Command) error {
	d, err := setup(cmd, nil)

	if err != nil {
		return err
	}

	tools, err := d.Tools(ctx)

	if err != nil {
		return err
	}

	var sb strings.Builder

	sb.WriteString("# Operations\n\n")

	for _, t := range tools {
		sb.WriteString("- **" + t.Name + "**: " + t.Description + "\n")
	}

	markdown.Render(os.Stdout, sb.String())
	return nil
}

func runCall(ctx context.Context, cmd *cli.Command) error {
	operation := cmd.Args().First()

	if operation == "" {
		return errors.New("missing operation name")
	}

	var confirm rest.Confirm

	if cmd.Bool("confirm") {
		confirm = handleConfirm
	}

	d, err := setup(cmd, confirm)

	if err != nil {
		return err
	}

	args := map[string]any{}

	if data := cmd.String("json"); data != "" {
		if err := json.Unmarshal([]byte(data), &args); err != nil {
			return fmt.Errorf("invalid --json value: %w", err)
		}
	}

	for _, pair := range cmd.StringSlice("arg") {
		name, value, ok := strings.Cut(pair, "=")

		if !ok {
			return fmt.Errorf("invalid --arg value %q", pair)
		}

		args[name] = value
	}

	resp, err := d.Call(ctx, operation, args)

	if err != nil {
		return err
	}

	os.Stdout.Write(resp.Data)

	if len(resp.Data) > 0 && resp.Data[len(resp.Data)-1] != '\n' {
		fmt.Println()
	}

	return nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	d, err := setup(cmd, nil)

	if err != nil {
		return err
	}

	return bridge.Run(ctx, d, cmd.String("sse"))
}

func setup(cmd *cli.Command, confirm rest.Confirm) (*dispatch.Dispatcher, error) {
	cfg, err := resolveConfig(cmd)

	if err != nil {
		return nil, err
	}

	if cfg.Spec == "" {
		return nil, errors.New("missing OpenAPI specification (--file, APIBRIDGE_SPEC or config file)")
	}

	if cfg.URL == "" {
		return nil, errors.New("missing API base URL (--url, APIBRIDGE_URL or config file)")
	}

	c, err := catalog.New(cfg.Spec)

	if err != nil {
		return nil, err
	}

	options := []rest.Option{}

	if cfg.Bearer != "" {
		options = append(options, rest.WithBearer(cfg.Bearer))
	}

	if cfg.Username != "" || cfg.Password != "" {
		options = append(options, rest.WithBasicAuth(cfg.Username, cfg.Password))
	}

	if confirm != nil {
		options = append(options, rest.WithConfirm(confirm))
	}

	client, err := rest.New(cfg.URL, options...)

	if err != nil {
		return nil, err
	}

	var dispatchOptions []dispatch.Option

	for name, value := range cfg.Headers {
		dispatchOptions = append(dispatchOptions, dispatch.WithHeader(name, value))
	}

	return dispatch.New(c, client, dispatchOptions...), nil
}

func resolveConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd.String("config"))

	if err != nil {
		return nil, err
	}

	cfg.Merge(config.FromEnv())

	flags := &config.Config{
		Spec: cmd.String("file"),
		URL:  cmd.String("url"),

		Bearer:   cmd.String("bearer"),
		Username: cmd.String("username"),
		Password: cmd.String("password"),
	}

	for _, pair := range cmd.StringSlice("header") {
		name, value, ok := strings.Cut(pair, "=")

		if !ok {
			continue
		}

		if flags.Headers == nil {
			flags.Headers = map[string]string{}
		}

		flags.Headers[name] = value
	}

	cfg.Merge(flags)

	return cfg, nil
}

// loadConfig reads the given config file, or falls back to the default
// locations when no path was supplied. An explicit path that fails to
// parse is an error, never silently dropped.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.ParseDefault(), nil
	}

	cfg, err := config.Parse(path)

	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	return cfg, nil
}

func handleConfirm(method, path, contentType string, body io.Reader) error {
	cli.Infof("⚡️ %s %s", method, path)
	cli.Info()

	if body != nil && contentType == "application/json" {
		var val map[string]any

		json.NewDecoder(body).Decode(&val)
		data, _ := json.MarshalIndent(val, "", "  ")

		cli.Info(string(data))
	}

	if strings.EqualFold(method, "HEAD") || strings.EqualFold(method, "GET") {
		return nil
	}

	ok, err := cli.Confirm("Are you sure?", true)

	if err != nil {
		return err
	}

	if !ok {
		return errors.New("operation cancelled by user")
	}

	return nil
}
