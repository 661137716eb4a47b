package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mgomes/scriptfx/either"
	"github.com/mgomes/scriptfx/internal/auth"
	"github.com/mgomes/scriptfx/script"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "login":
		return loginCommand(args[2:])
	case "user":
		return userCommand(args[2:])
	case "seed":
		return seedCommand(args[2:])
	case "tui":
		return tuiCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

type commonOptions struct {
	configPath string
	storePath  string
	engine     string
	logLevel   string
}

func newFlagSet(name string) (*flag.FlagSet, *commonOptions) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	opts := &commonOptions{}
	fs.StringVar(&opts.configPath, "config", "", "path to a TOML config file")
	fs.StringVar(&opts.storePath, "store", "", "SQLite database path")
	fs.StringVar(&opts.engine, "engine", "", "effect engine: sync or pool")
	fs.StringVar(&opts.logLevel, "log-level", "", "minimum log level")
	return fs, opts
}

func (o *commonOptions) config() (cliConfig, error) {
	path, explicit := o.configPath, true
	if path == "" {
		path, explicit = defaultConfigPath, false
	}
	cfg, err := loadConfig(path, explicit)
	if err != nil {
		return cliConfig{}, err
	}
	if o.storePath != "" {
		cfg.Store.Path = o.storePath
	}
	if o.engine != "" {
		cfg.Engine.Kind = o.engine
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	return cfg, cfg.validate()
}

func (o *commonOptions) open(ctx context.Context) (*app, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	return openApp(ctx, cfg, os.Stderr)
}

func loginCommand(args []string) error {
	fs, opts := newFlagSet("login")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) != 2 {
		return errors.New("scriptfx login: email and password required")
	}
	ctx := context.Background()
	a, err := opts.open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	creds := auth.Credentials{Email: remaining[0], Password: remaining[1]}
	out, err := script.Exec(ctx, a.engine, auth.Authenticate(creds), a.env)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	return either.Fold(out,
		func(f auth.Failure) error { return errors.New(auth.Describe(f)) },
		func(s auth.Session) error {
			fmt.Println(s.Token)
			return nil
		},
	)
}

func userCommand(args []string) error {
	fs, opts := newFlagSet("user")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ids := make([]int64, 0, fs.NArg())
	for _, raw := range fs.Args() {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("scriptfx user: invalid id %q", raw)
		}
		ids = append(ids, id)
	}
	ctx := context.Background()
	a, err := opts.open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if len(ids) == 0 {
		users, err := a.store.List(ctx)
		if err != nil {
			return err
		}
		printUsers(users)
		return nil
	}
	out, err := script.Exec(ctx, a.engine, auth.FindUsers(ids), a.env)
	if err != nil {
		return fmt.Errorf("user lookup failed: %w", err)
	}
	users, ok := out.GetRight()
	if !ok {
		f, _ := out.GetLeft()
		return errors.New(auth.Describe(f))
	}
	printUsers(users)
	return nil
}

func printUsers(users []auth.User) {
	for _, u := range users {
		fmt.Printf("%d\t%s\t%s\n", u.ID, u.Email, u.Name)
	}
}

func seedCommand(args []string) error {
	fs, opts := newFlagSet("seed")
	name := fs.String("name", "", "display name of the user")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) != 2 {
		return errors.New("scriptfx seed: email and password required")
	}
	ctx := context.Background()
	a, err := opts.open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	user, err := a.store.Add(ctx, remaining[0], *name, remaining[1])
	if err != nil {
		return err
	}
	fmt.Printf("added user %d %s\n", user.ID, user.Email)
	return nil
}

func tuiCommand(args []string) error {
	fs, opts := newFlagSet("tui")
	if err := fs.Parse(args); err != nil {
		return err
	}
	a, err := opts.open(context.Background())
	if err != nil {
		return err
	}
	defer a.Close()
	return runTUI(a)
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [args...]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  login <email> <password>   authenticate and print a session token")
	fmt.Fprintln(os.Stderr, "  user [id...]               show users by id, or all users")
	fmt.Fprintln(os.Stderr, "  seed <email> <password>    register a user (-name sets the display name)")
	fmt.Fprintln(os.Stderr, "  tui                        interactive login form")
	fmt.Fprintln(os.Stderr, "Flags:")
	fmt.Fprintln(os.Stderr, "  -config <file>")
	fmt.Fprintf(os.Stderr, "    TOML config file (default %q when present)\n", defaultConfigPath)
	fmt.Fprintln(os.Stderr, "  -store <path>")
	fmt.Fprintln(os.Stderr, "    SQLite database path, overrides store.path")
	fmt.Fprintln(os.Stderr, "  -engine sync|pool")
	fmt.Fprintln(os.Stderr, "    effect engine, overrides engine.kind")
	fmt.Fprintln(os.Stderr, "  -log-level <level>")
	fmt.Fprintln(os.Stderr, "    minimum log level, overrides log.level")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}

