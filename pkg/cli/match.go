package cli

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/spf13/cobra"

	"github.com/getmockd/filemock/pkg/cli/internal/output"
	"github.com/getmockd/filemock/pkg/cli/internal/parse"
	"github.com/getmockd/filemock/pkg/engine"
)

// MatchOutput is the JSON form of the match command.
type MatchOutput struct {
	Matched bool              `json:"matched"`
	Status  int               `json:"status,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    string            `json:"body,omitempty"`
}

var matchHeaders []string

var matchCmd = &cobra.Command{
	Use:   "match METHOD URL",
	Short: "Show the mock response for a request without a proxy",
	Long: `Run the mock engine for one synthetic request and print the response it
would serve. Templates are rendered and @@url directives are fetched exactly
as the proxy would.`,
	Example: `  filemock match GET https://api.example.com/users -m './mocks/*.mock'
  filemock match POST http://svc.local/orders -H 'X-User: alice' --json`,
	Args: cobra.ExactArgs(2),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().StringArrayVarP(&matchHeaders, "header", "H", nil, "Request header 'Name: value' (repeatable)")
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	headers, err := parse.Headers(matchHeaders)
	if err != nil {
		return err
	}

	eng := newEngine(cfg, newLogger(cfg, cmd.ErrOrStderr()))
	resp, ok := eng.Handle(commandContext(cmd), engine.Request{Method: args[0], URL: args[1], Headers: headers})

	w := cmd.OutOrStdout()
	if jsonOutput {
		out := MatchOutput{Matched: ok}
		if ok {
			out.Status = resp.Status
			out.Headers = resp.Headers
			out.Body = string(resp.Body)
		}
		return output.JSON(w, out)
	}

	if !ok {
		fmt.Fprintln(w, "no match")
		return nil
	}

	fmt.Fprintf(w, "HTTP %d %s\n", resp.Status, http.StatusText(resp.Status))
	names := make([]string, 0, len(resp.Headers))
	for name := range resp.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s: %s\n", name, resp.Headers[name])
	}
	fmt.Fprintln(w)
	_, err = w.Write(resp.Body)
	return err
}
