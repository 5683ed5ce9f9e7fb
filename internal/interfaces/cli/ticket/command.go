package ticket

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/orris-inc/supportdesk/internal/infrastructure/config"
	"github.com/orris-inc/supportdesk/internal/infrastructure/pubsub"
	"github.com/orris-inc/supportdesk/internal/shared/biztime"
	"github.com/orris-inc/supportdesk/internal/shared/constants"
	"github.com/orris-inc/supportdesk/internal/shared/logger"
	"github.com/orris-inc/supportdesk/sdk/support"
)

type options struct {
	serverURL string
	output    string
	timeout   time.Duration
}

func (o *options) client() *support.Client {
	return support.NewClient(o.serverURL, support.WithTimeout(o.timeout))
}

// NewCommand returns the `ticket` command tree, a terminal client for the API.
func NewCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "Manage support tickets",
		Long:  `List, inspect and update support tickets through the HTTP API.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return validFormat(opts.output)
		},
	}

	defaultURL := constants.DefaultServerURL + constants.DefaultAPIPrefix
	if v := os.Getenv("SUPPORTDESK_SERVER_URL"); v != "" {
		defaultURL = v
	}

	cmd.PersistentFlags().StringVarP(&opts.serverURL, "server", "s", defaultURL, "API base URL including the prefix")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", FormatTable, "Output format (table, json, yaml)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Request timeout")

	cmd.AddCommand(
		newListCommand(opts),
		newShowCommand(opts),
		newCreateCommand(opts),
		newStatusCommand(opts),
		newCommentCommand(opts),
		newDeleteCommand(opts),
		newWatchCommand(),
	)

	return cmd
}

func newListCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tickets, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := NewListView(opts.client())
			if err := view.Refresh(cmd.Context()); err != nil {
				return err
			}
			return RenderTickets(cmd.OutOrStdout(), view.Snapshot().Tickets, opts.output)
		},
	}
}

func newShowCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one ticket with its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := opts.client().GetTicket(cmd.Context(), id)
			if err != nil {
				return err
			}
			return RenderTicket(cmd.OutOrStdout(), t, opts.output)
		},
	}
}

func newCreateCommand(opts *options) *cobra.Command {
	var req support.NewTicket

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new ticket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := opts.client().CreateTicket(cmd.Context(), req)
			if err != nil {
				return err
			}
			return RenderTicket(cmd.OutOrStdout(), t, opts.output)
		},
	}

	cmd.Flags().StringVarP(&req.Title, "title", "t", "", "Ticket title (required)")
	cmd.Flags().StringVarP(&req.Category, "category", "g", "", "Ticket category, e.g. bug, feature, billing (required)")
	cmd.Flags().StringVarP(&req.Description, "description", "d", "", "Ticket description (required)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func newStatusCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:       "status <id> <OPEN|IN_PROGRESS|CLOSED>",
		Short:     "Change a ticket's status",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{support.StatusOpen, support.StatusInProgress, support.StatusClosed},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			view := NewListView(opts.client())
			switch args[1] {
			case support.StatusInProgress:
				err = view.Advance(cmd.Context(), id)
			case support.StatusClosed:
				err = view.Close(cmd.Context(), id)
			default:
				// OPEN and anything unknown go straight to the API, which validates.
				err = view.run(cmd.Context(), id, ActionKind("status"), func(ctx context.Context) error {
					return view.api.UpdateStatus(ctx, id, args[1])
				})
			}
			return afterAction(cmd.OutOrStdout(), view, err, opts.output)
		},
	}
}

func newCommentCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "comment <id> <text>",
		Short: "Add a comment to a ticket",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")
			if strings.TrimSpace(text) == "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "Empty comment, nothing sent.")
				return nil
			}
			view := NewListView(opts.client())
			return afterAction(cmd.OutOrStdout(), view, view.Comment(cmd.Context(), id, text), opts.output)
		},
	}
}

func newDeleteCommand(opts *options) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a ticket and its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !yes && !confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), "Are you sure you want to delete this ticket?") {
				fmt.Fprintln(cmd.ErrOrStderr(), "Aborted.")
				return nil
			}
			view := NewListView(opts.client())
			return afterAction(cmd.OutOrStdout(), view, view.Delete(cmd.Context(), id), opts.output)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newWatchCommand() *cobra.Command {
	var env, configPath string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream ticket events from Redis",
		Long:  `Subscribe to the configured Redis channel and print ticket events as servers publish them.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(env, configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if !cfg.Redis.Enabled {
				return fmt.Errorf("redis is disabled in the configuration; set redis.enabled to watch events")
			}
			if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			client, err := pubsub.NewRedisClient(ctx, &cfg.Redis)
			if err != nil {
				return err
			}
			defer client.Close()

			out := cmd.OutOrStdout()
			sub := pubsub.NewRedisTicketEventSubscriber(client, cfg.Redis.Channel, logger.WithComponent("ticket.watch"))
			err = sub.Subscribe(ctx, func(msg pubsub.TicketEventMessage) {
				fmt.Fprintf(out, "%s  %-22s  ticket=%s  %s\n",
					biztime.FromMillis(msg.OccurredAt).Format(time.RFC3339),
					msg.Type, msg.TicketID, string(msg.Payload))
			})
			if ctx.Err() != nil {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	return cmd
}

// afterAction prints the refetched list, or returns the action error with the
// view left untouched.
func afterAction(w io.Writer, view *ListView, err error, format string) error {
	if err != nil {
		return err
	}
	return RenderTickets(w, view.Snapshot().Tickets, format)
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid ticket ID %q", s)
	}
	return uint(id), nil
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	var answer string
	if _, err := fmt.Fscanln(in, &answer); err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
