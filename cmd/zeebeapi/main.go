package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"zeebeapi/cmd/zeebeapi/cmds"
	"zeebeapi/internal/backends"
	"zeebeapi/internal/ipc"
	"zeebeapi/internal/ports"
	"zeebeapi/internal/types"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

const usage = `usage: zeebeapi <command> [flags]

commands:
  serve                       run the HTTP and IPC surfaces
  check                       check connectivity to an endpoint
  deploy --file PATH          deploy a process definition
  run --process-id ID         start the latest version of a process
  profile put FILE            store the profile defined in a YAML file
  profile get|delete NAME     show or delete a stored profile
  profile list                list stored profile names
`

// errFailed marks an operation that completed with an unsuccessful result.
var errFailed = errors.New("operation failed")

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Debug("The .env file not found.")
	}
	configureLogging()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	switch {
	case err == nil:
	case errors.Is(err, errFailed):
		os.Exit(1)
	default:
		log.WithError(err).Error("zeebeapi")
		os.Exit(2)
	}
}

func configureLogging() {
	if lvl, err := log.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}
	if os.Getenv("LOG_FORMAT") == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	}
	log.SetOutput(os.Stderr)
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("missing command")
	}
	switch args[0] {
	case "serve":
		return serve(ctx, args[1:])
	case "check", "deploy", "run":
		return operate(ctx, args[0], args[1:], out)
	case "profile":
		return profile(ctx, args[1:], out)
	case "help", "-h", "--help":
		fmt.Fprint(out, usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func serve(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	defPort, _ := strconv.Atoi(os.Getenv("HTTP_PORT"))
	if defPort == 0 {
		defPort = 8080
	}
	port := fs.Int("port", defPort, "HTTP port")
	if err := fs.Parse(args); err != nil {
		return err
	}

	gw, err := backends.GatewayFromEnv(ctx)
	if err != nil {
		return err
	}
	profiles, err := backends.ProfileBackendFromEnv(ctx)
	if err != nil {
		return err
	}
	bus, err := backends.BusFromEnv(ctx)
	if err != nil {
		return err
	}
	return cmds.Serve(ctx, *port, gw, profiles, bus)
}

func operate(ctx context.Context, op string, args []string, out io.Writer) error {
	fs := pflag.NewFlagSet(op, pflag.ContinueOnError)
	var ep cmds.EndpointFlags
	ep.AddFlags(fs)
	query := fs.String("query", "", "JMESPath expression applied to the result")
	file := fs.String("file", "", "process definition to deploy")
	name := fs.String("name", "", "deployment name, defaults to the file name")
	processID := fs.String("process-id", "", "BPMN process id to start")
	variables := fs.String("variables", "", "instance variables as a JSON object")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var store ports.ProfileStore
	if ep.Profile != "" {
		var err error
		if store, err = backends.ProfileBackendFromEnv(ctx); err != nil {
			return err
		}
	}
	endpoint, err := ep.Resolve(ctx, store)
	if err != nil {
		return err
	}

	gw, err := backends.GatewayFromEnv(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = gw.Close()
	}()

	var res types.Result
	switch op {
	case "check":
		res = gw.CheckConnectivity(ctx, endpoint)
	case "deploy":
		if *file == "" {
			return fmt.Errorf("--file is required")
		}
		res = gw.Deploy(ctx, types.DeployRequest{Endpoint: endpoint, Name: *name, FilePath: *file})
	case "run":
		if *processID == "" {
			return fmt.Errorf("--process-id is required")
		}
		var vars map[string]any
		if *variables != "" {
			if err := json.Unmarshal([]byte(*variables), &vars); err != nil {
				return fmt.Errorf("--variables: %w", err)
			}
		}
		res = gw.Run(ctx, types.RunRequest{Endpoint: endpoint, ProcessID: *processID, Variables: vars})
	}

	if err := cmds.PrintJSON(out, ipc.WireResult(res), *query); err != nil {
		return err
	}
	if !res.Success {
		return errFailed
	}
	return nil
}

func profile(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("profile: missing subcommand")
	}
	fs := pflag.NewFlagSet("profile "+args[0], pflag.ContinueOnError)
	query := fs.String("query", "", "JMESPath expression applied to the output")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	store, err := backends.ProfileBackendFromEnv(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return types.Err(types.ErrInvalidBackend, nil, "set PROFILE_BACKEND to redis or ddb")
	}

	arg := func() (string, error) {
		if fs.NArg() != 1 {
			return "", fmt.Errorf("profile %s: expected one argument", args[0])
		}
		return fs.Arg(0), nil
	}

	switch args[0] {
	case "put":
		path, err := arg()
		if err != nil {
			return err
		}
		p, err := cmds.PutProfile(ctx, store, path)
		if err != nil {
			return err
		}
		log.WithField("profile", p.Name).Info("profile stored")
		return nil
	case "get":
		name, err := arg()
		if err != nil {
			return err
		}
		p, err := cmds.GetProfile(ctx, store, name)
		if err != nil {
			return err
		}
		return cmds.PrintJSON(out, p, *query)
	case "list":
		names, err := cmds.ListProfiles(ctx, store)
		if err != nil {
			return err
		}
		return cmds.PrintJSON(out, names, *query)
	case "delete":
		name, err := arg()
		if err != nil {
			return err
		}
		return cmds.DeleteProfile(ctx, store, name)
	default:
		return fmt.Errorf("profile: unknown subcommand %q", args[0])
	}
}
