package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mamadbah2/warehouse/internal/domain/models"
	"github.com/mamadbah2/warehouse/internal/service/reporting"
	"github.com/mamadbah2/warehouse/pkg/clients/warehouse"
)

const usage = `usage: warehousectl [-server URL] [-session FILE] <command> [flags]

commands:
  login -username NAME -password PASS
  logout
  dashboard  [-month YYYY-MM]
  warehouse  [-month YYYY-MM]
  deliveries [-month YYYY-MM] [-source inventory|dry]
`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	global := flag.NewFlagSet("warehousectl", flag.ContinueOnError)
	server := global.String("server", envOr("WAREHOUSE_URL", "http://localhost:8080"), "API base URL (WAREHOUSE_URL)")
	sessionPath := global.String("session", "", "session file (default in the user config dir)")
	global.Usage = func() { fmt.Fprint(global.Output(), usage) }
	if err := global.Parse(args); err != nil {
		return err
	}

	rest := global.Args()
	if len(rest) == 0 {
		global.Usage()
		return errors.New("missing command")
	}

	path := *sessionPath
	if path == "" {
		var err error
		if path, err = warehouse.DefaultSessionPath(); err != nil {
			return err
		}
	}
	store := warehouse.NewSessionStore(path)
	if err := store.Load(); err != nil {
		return err
	}

	client := warehouse.NewClient(*server, 15*time.Second)
	cmd, cmdArgs := rest[0], rest[1:]

	switch cmd {
	case "login":
		return login(ctx, client, store, cmdArgs, out)
	case "logout":
		if err := store.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(out, "logged out")
		return nil
	case "dashboard", "warehouse", "deliveries":
		return report(ctx, client, store, cmd, cmdArgs, out)
	default:
		global.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func login(ctx context.Context, client *warehouse.APIClient, store *warehouse.SessionStore, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("username", "", "account name")
	password := fs.String("password", os.Getenv("WAREHOUSE_PASSWORD"), "password (WAREHOUSE_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		return errors.New("login needs -username and -password")
	}

	session, err := client.Login(ctx, *username, *password)
	if err != nil {
		return err
	}
	if err := store.Login(session); err != nil {
		return err
	}
	fmt.Fprintf(out, "logged in as %s (%s)\n", session.Username, session.Role)
	return nil
}

func report(ctx context.Context, client *warehouse.APIClient, store *warehouse.SessionStore, cmd string, args []string, out io.Writer) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	month := fs.String("month", "", "month as YYYY-MM (default current month)")
	source := fs.String("source", string(reporting.SourceInventory), "deliveries source: inventory or dry")
	if err := fs.Parse(args); err != nil {
		return err
	}

	period, err := parseMonth(*month, time.Now())
	if err != nil {
		return err
	}

	session, ok := store.Current()
	if !ok {
		return warehouse.ErrNotLoggedIn
	}

	switch cmd {
	case "dashboard":
		dash, err := client.Dashboard(ctx, session, period)
		if err != nil {
			return err
		}
		return renderDashboard(out, dash)
	case "warehouse":
		log, err := client.WarehouseLog(ctx, session, period)
		if err != nil {
			return err
		}
		return renderWarehouseLog(out, log)
	default:
		src, err := reporting.ParseSource(*source)
		if err != nil {
			return err
		}
		deliveries, err := client.Deliveries(ctx, session, period, src)
		if err != nil {
			return err
		}
		return renderDeliveries(out, deliveries)
	}
}

// parseMonth accepts YYYY-MM; empty selects the month containing now.
func parseMonth(value string, now time.Time) (models.Period, error) {
	if value == "" {
		return models.CurrentPeriod(now), nil
	}
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return models.Period{}, fmt.Errorf("invalid -month %q, want YYYY-MM", value)
	}
	return models.MonthPeriod(t.Year(), t.Month()), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
