package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"negromart_seller/internal/logger"
	"negromart_seller/internal/models"
	"negromart_seller/internal/notifications"
	"negromart_seller/internal/services/dto"

	"github.com/spf13/cobra"
)

const actionTimeout = 10 * time.Second

var errTimeout = errors.New("timed out waiting for the server")

func newNotificationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"n"},
		Short:   "Notification bell, list and detail",
	}
	cmd.AddCommand(
		newNotificationsListCommand(),
		newNotificationsShowCommand(),
		newNotificationsWatchCommand(),
		newNotificationsReadCommand(),
		newNotificationsReadAllCommand(),
		newNotificationsDeleteCommand(),
	)
	return cmd
}

func newNotificationsListCommand() *cobra.Command {
	var criteria dto.NotificationCriteria

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications over REST",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := appFrom(cmd).Services.NotificationService.List(cmd.Context(), criteria)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printNotifications(out, res.Results)
			fmt.Fprintf(out, "%d unread, %d total\n", res.UnreadCount, res.Count)
			return nil
		},
	}
	cmd.Flags().IntVar(&criteria.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&criteria.PageSize, "page-size", 0, "page size")
	cmd.Flags().BoolVar(&criteria.Unread, "unread", false, "only unread notifications")
	return cmd
}

func newNotificationsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one notification and mark it viewed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			detail, live, err := appFrom(cmd).OpenDetail(cmd.Context(), id)
			if err != nil {
				return err
			}
			defer live.Close()

			if detail.State() == notifications.DetailFailed {
				return detail.Err()
			}

			n := detail.Notification()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "#%d %s\n", n.ID, n.Title())
			fmt.Fprintln(out, detail.Message())
			if link := detail.Link(); link != "" {
				fmt.Fprintln(out, link)
			}
			fmt.Fprintln(out, formatTime(n.CreatedAt))

			// view_detail goes out on connect; stay until it has been written
			waitCtx, cancel := context.WithTimeout(cmd.Context(), actionTimeout)
			defer cancel()
			if err := live.Channel.AwaitOpen(waitCtx); err != nil {
				logger.CtxWarn(cmd.Context(), "notification not marked viewed", "id", id, "error", err.Error())
			}
			return nil
		},
	}
}

func newNotificationsWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow the bell and toast new notifications until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			bell, bellLive, err := a.OpenBell(ctx)
			if err != nil {
				return err
			}
			defer bellLive.Close()

			_, listLive, err := a.OpenList(ctx)
			if err != nil {
				return err
			}
			defer listLive.Close()

			var mu sync.Mutex
			last := -1
			report := func() {
				mu.Lock()
				defer mu.Unlock()
				if n := bell.UnreadCount(); n != last {
					last = n
					fmt.Fprintf(out, "Unread: %d\n", n)
				}
			}
			bell.OnChange(report)
			report()

			<-ctx.Done()
			return nil
		},
	}
}

func newNotificationsReadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark one notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withList(cmd, func(ctx context.Context, list *notifications.List) error {
				if err := list.MarkRead(id); err != nil {
					return err
				}
				return waitFor(ctx, list.OnChange, func() bool {
					n, ok := find(list.Notifications(), id)
					return !ok || n.IsRead
				})
			})
		},
	}
}

func newNotificationsReadAllCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withList(cmd, func(ctx context.Context, list *notifications.List) error {
				if !list.CanMarkAllRead() {
					return nil
				}
				if err := list.MarkAllRead(); err != nil {
					return err
				}
				return waitFor(ctx, list.OnChange, func() bool { return !list.CanMarkAllRead() })
			})
		},
	}
}

func newNotificationsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withList(cmd, func(ctx context.Context, list *notifications.List) error {
				if err := list.Delete(id); err != nil {
					return err
				}
				return waitFor(ctx, list.OnChange, func() bool {
					_, ok := find(list.Notifications(), id)
					return !ok
				})
			})
		},
	}
}

// withList opens the list channel, waits for the first snapshot, runs fn and
// prints the resulting list.
func withList(cmd *cobra.Command, fn func(ctx context.Context, list *notifications.List) error) error {
	ctx := cmd.Context()
	list, live, err := appFrom(cmd).OpenList(ctx)
	if err != nil {
		return err
	}
	defer live.Close()

	if err := waitFor(ctx, list.OnChange, list.Loaded); err != nil {
		return err
	}
	if err := fn(ctx, list); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printNotifications(out, list.Notifications())
	fmt.Fprintf(out, "%d unread\n", list.UnreadCount())
	return nil
}

// waitFor blocks until cond holds, re-checking after every view change.
func waitFor(ctx context.Context, onChange func(func()), cond func() bool) error {
	changed := make(chan struct{}, 1)
	onChange(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	timer := time.NewTimer(actionTimeout)
	defer timer.Stop()

	for !cond() {
		select {
		case <-changed:
		case <-timer.C:
			return errTimeout
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func find(list []models.Notification, id int64) (models.Notification, bool) {
	for _, n := range list {
		if n.ID == id {
			return n, true
		}
	}
	return models.Notification{}, false
}

func printNotifications(w io.Writer, list []models.Notification) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tSTATUS\tTITLE\tMESSAGE\tCREATED")
	for _, n := range list {
		status := "unread"
		if n.IsRead {
			status = "read"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", n.ID, status, n.Title(), n.Message(), formatTime(n.CreatedAt))
	}
	tw.Flush()
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
