// Package commands provides the CLI for the victorychat client.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VickGidi/Victory-furniture-bot/internal/client"
	"github.com/VickGidi/Victory-furniture-bot/internal/render"
	"github.com/VickGidi/Victory-furniture-bot/internal/tui"
)

var (
	serverFlag string
	plainFlag  bool

	// Version info (set at build time)
	Version = "0.1.0"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "victorychat [message]",
	Short: "Chat with the Victory Furniture assistant",
	Long: `victorychat talks to a Victory Furniture chat server. Without arguments it opens
an interactive chat panel; with a message argument or piped stdin it sends one
query and prints the reply.

Examples:
  victorychat                           Start the interactive chat panel
  victorychat "any dining sets?"        Send a single query
  echo "where are your shops?" | victorychat
  victorychat --server http://host:5000 --plain "sofas"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("victorychat %s\n", Version)
			return nil
		}

		c := client.New(serverFlag)

		// Check for stdin input
		stat, _ := os.Stdin.Stat()
		hasStdin := (stat.Mode() & os.ModeCharDevice) == 0

		if hasStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			return runQuery(c, string(data))
		}

		if len(args) > 0 {
			return runQuery(c, args[0])
		}

		return tui.Run(c, plainFlag)
	},
}

// runQuery sends one message and prints the reply. Empty input is a no-op, the same guard the
// chat panel applies.
func runQuery(c *client.Client, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}

	reply, err := c.Send(context.Background(), message)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	if plainFlag {
		fmt.Println(reply)
		return nil
	}
	fmt.Print(render.Terminal(reply, 80))
	return nil
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&serverFlag, "server", "s", "http://localhost:5000", "Chat server base URL")
	rootCmd.Flags().BoolVar(&plainFlag, "plain", false, "Print replies without markdown rendering")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")
}
