package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhubert/tripchat/internal/chat"
	"github.com/zhubert/tripchat/internal/dispatch"
	"github.com/zhubert/tripchat/internal/errors"
	"github.com/zhubert/tripchat/internal/logger"
)

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Send one message and print the reply",
	Long: `Sends a single message to the chat service and prints the reply.
Arguments are joined with spaces. On failure the reason is printed and the
command exits with a non-zero status.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Close()

	return ask(cmd.Context(), cmd.OutOrStdout(), newClient(cfg), strings.Join(args, " "))
}

// ask runs one dispatch through a throwaway chat and prints the reply
func ask(ctx context.Context, w io.Writer, s dispatch.Sender, text string) error {
	store := chat.NewStore()
	store.EnsureDefaultChat()
	d := dispatch.New(store, s)

	r, ok := d.Send(ctx, text)
	if !ok {
		return errors.E(errors.KindInvalid, "message is empty")
	}
	if !r.OK() {
		return errors.E(errors.GetKind(r.Err), r.Reason())
	}
	fmt.Fprintln(w, r.Reply)
	return nil
}
