package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teemow/tasksync/internal/google"
)

func newAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with Google Calendar and store the OAuth token",
		Long: `Run the Google OAuth installed-app flow. Open the printed URL in a
browser, approve access to your calendar and paste the authorization code
back. The token is stored in the user cache directory and refreshed
automatically on later runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if google.HasToken() {
				fmt.Println("An OAuth token already exists; it will be replaced.")
			}

			url, err := google.GetAuthURL()
			if err != nil {
				return err
			}
			fmt.Printf("Open the following URL in your browser:\n\n  %s\n\nAuthorization code: ", url)

			reader := bufio.NewReader(os.Stdin)
			code, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read authorization code: %w", err)
			}
			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("no authorization code provided")
			}

			if err := google.SaveToken(ctx, code); err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}

			fmt.Println("Authentication successful.")
			return nil
		},
	}
}
