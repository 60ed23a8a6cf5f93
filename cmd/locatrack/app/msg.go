package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"locatrack.io/locatrack/cmd/locatrack/app/options"
	"locatrack.io/locatrack/internal/backend"
	"locatrack.io/locatrack/internal/guard"
	"locatrack.io/locatrack/internal/messaging"
	"locatrack.io/locatrack/internal/render"
	"locatrack.io/locatrack/pkg/app"
)

func newMsgCmd(opts *options.CliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "msg",
		Short: "Read and send messages",
	}

	cmd.AddCommand(
		newMsgListCmd(opts),
		newMsgShowCmd(opts),
		newMsgSendCmd(opts),
		newMsgStartCmd(opts),
		newMsgUsersCmd(opts),
		newMsgUnreadCmd(opts),
		newMsgWatchCmd(opts),
	)

	return cmd
}

func newMsgListCmd(opts *options.CliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List conversations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := newRuntime(opts)
			user, err := env.requireScreen(cmd.Context(), guard.ScreenMessages)
			if err != nil {
				return err
			}

			conversations, err := env.client.Conversations(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s", backend.FormatError(err))
			}

			render.Conversations(cmd.OutOrStdout(), conversations, user.ID)
			return nil
		},
	}
}

func newMsgShowCmd(opts *options.CliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show CONVERSATION",
		Short: "Print a conversation thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := newRuntime(opts)
			user, err := env.requireScreen(cmd.Context(), guard.ScreenMessages)
			if err != nil {
				return err
			}

			messages, err := env.client.ConversationMessages(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s", backend.FormatError(err))
			}

			render.Messages(cmd.OutOrStdout(), messages, user.ID)
			return nil
		},
	}
}

func newMsgSendCmd(opts *options.CliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "send CONVERSATION TEXT",
		Short: "Send a message to a conversation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := newRuntime(opts)
			if _, err := env.requireScreen(cmd.Context(), guard.ScreenMessages); err != nil {
				return err
			}

			if _, err := env.client.SendMessage(cmd.Context(), args[0], args[1]); err != nil {
				return fmt.Errorf("%s", backend.FormatError(err))
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Sent")
			return nil
		},
	}
}

func newMsgStartCmd(opts *options.CliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "start USER",
		Short: "Open a conversation with another user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := newRuntime(opts)
			if _, err := env.requireScreen(cmd.Context(), guard.ScreenMessages); err != nil {
				return err
			}

			conv, err := env.client.CreateConversation(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s", backend.FormatError(err))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Conversation %s\n", conv.ID)
			return nil
		},
	}
}

func newMsgUsersCmd(opts *options.CliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List users you can message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := newRuntime(opts)
			if _, err := env.requireScreen(cmd.Context(), guard.ScreenMessages); err != nil {
				return err
			}

			users, err := env.client.ChatUsers(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s", backend.FormatError(err))
			}

			render.ChatUsers(cmd.OutOrStdout(), users)
			return nil
		},
	}
}

func newMsgUnreadCmd(opts *options.CliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "unread",
		Short: "Print the total number of unread messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := newRuntime(opts)
			if _, err := env.requireScreen(cmd.Context(), guard.ScreenMessages); err != nil {
				return err
			}

			total, err := env.client.UnreadCount(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s", backend.FormatError(err))
			}

			fmt.Fprintln(cmd.OutOrStdout(), total)
			return nil
		},
	}
}

func newMsgWatchCmd(opts *options.CliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch CONVERSATION",
		Short: "Follow a conversation, reprinting it on every refresh",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := newRuntime(opts)
			ctx := app.SetupSignalContext()

			user, err := env.requireScreen(ctx, guard.ScreenMessages)
			if err != nil {
				return err
			}

			interval := opts.PollOptions.MessageInterval
			inbox := messaging.NewInbox(env.client)
			if err := inbox.Open(ctx, args[0], interval); err != nil {
				return fmt.Errorf("%s", backend.FormatError(err))
			}
			defer inbox.Close()

			out := cmd.OutOrStdout()
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				render.Messages(out, inbox.Messages(), user.ID)

				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}
			}
		},
	}
}
