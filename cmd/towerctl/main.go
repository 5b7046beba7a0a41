package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/esalabs/controltower/modules"
	catalogpersistence "github.com/esalabs/controltower/modules/catalog/infrastructure/persistence"
	monitoringpersistence "github.com/esalabs/controltower/modules/monitoring/infrastructure/persistence"
	"github.com/esalabs/controltower/modules/monitoring/services"
	reviewpersistence "github.com/esalabs/controltower/modules/review/infrastructure/persistence"
	reviewservices "github.com/esalabs/controltower/modules/review/services"
	"github.com/esalabs/controltower/pkg/application"
	"github.com/esalabs/controltower/pkg/composables"
	"github.com/esalabs/controltower/pkg/configuration"
	"github.com/esalabs/controltower/pkg/eventbus"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "towerctl",
		Short:        "Operations CLI for the ESA control tower",
		SilenceUsage: true,
	}
	root.AddCommand(migrateCmd(), pendingCmd(), decideCmd("approve"), decideCmd("reject"), kpiCmd())
	return root
}

func connect(ctx context.Context) (context.Context, *pgxpool.Pool, error) {
	conf := configuration.Use()
	pool, err := pgxpool.New(ctx, conf.Database.ConnectionString())
	if err != nil {
		return nil, nil, err
	}
	return composables.WithPool(ctx, pool), pool, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := configuration.Use()
			app := application.New(&application.ApplicationOptions{
				EventBus: eventbus.NewEventPublisher(conf.Logger()),
				Logger:   conf.Logger(),
			})
			if err := modules.Load(app, modules.BuiltInModules...); err != nil {
				return err
			}

			db, err := sql.Open("postgres", conf.Database.ConnectionString())
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()
			return app.Migrations().Apply(cmd.Context(), db)
		},
	}
}

func pendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List change requests awaiting a decision",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, pool, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			svc := reviewservices.NewChangeRequestService(reviewpersistence.NewChangeRequestRepository(), nil)
			requests, total, err := svc.ListPending(ctx, nil)
			if err != nil {
				return err
			}

			for _, cr := range requests {
				fmt.Printf("%s\t%s\t%s\t%s\n", cr.ID, cr.TaskID, cr.RequestedBy, cr.CreatedAt.Format(time.RFC3339))
			}
			fmt.Printf("%d pending\n", total)
			return nil
		},
	}
}

func decideCmd(verb string) *cobra.Command {
	var actor string
	cmd := &cobra.Command{
		Use:   verb + " <id>",
		Short: capitalize(verb) + " a pending change request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid change request id %q: %w", args[0], err)
			}

			ctx, pool, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()
			ctx = composables.WithActor(ctx, actor)

			svc := reviewservices.NewChangeRequestService(reviewpersistence.NewChangeRequestRepository(), nil)
			decide := svc.Approve
			if verb == "reject" {
				decide = svc.Reject
			}

			decided, err := decide(ctx, id)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s by %s\n", decided.ID, decided.Status, *decided.DecidedBy)
			return nil
		},
	}
	cmd.Flags().StringVar(&actor, "actor", composables.DefaultActor, "identity recorded on the decision")
	return cmd
}

func kpiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kpi",
		Short: "Print the current KPI snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, pool, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			conf := configuration.Use()
			svc := services.NewKPIService(
				catalogpersistence.NewProgramRepository(),
				monitoringpersistence.NewExecutionLogRepository(),
				conf.KPI.LatencySampleSize,
			)
			snapshot, err := svc.Snapshot(ctx)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(snapshot, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
