package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"golang.org/x/term"

	"github.com/hmans/authors/internal/graph"
)

var (
	queryJSON       bool
	queryVariables  string
	queryOperation  string
	querySchemaOnly bool
	queryLocal      bool
)

var graphqlCmd = &cobra.Command{
	Use:     "graphql <query>",
	Aliases: []string{"query"},
	Short:   "Execute a GraphQL query or mutation",
	Long: `Execute a GraphQL query or mutation.

By default the query is sent to the running server (see --endpoint). With
--local it runs against a fresh in-process store built from the config, so
mutations only last for that one invocation.

Examples:
  # List all authors
  authors graphql '{ getAuthors { id info { name age gender } } }'

  # Get a specific author
  authors graphql '{ fetchAuthorById(id: "1") { info { name } } }'

  # Use variables
  authors graphql -v '{"id": "3", "age": 36}' 'mutation($id: ID!, $age: Int) { updateAuthor(id: $id, age: $age) { id } }'

  # Read from stdin
  echo '{ getFirstAuthor { id } }' | authors graphql

  # Print the schema
  authors graphql --schema`,
	Args: func(cmd *cobra.Command, args []string) error {
		if querySchemaOnly {
			return nil
		}
		if len(args) > 1 {
			return fmt.Errorf("accepts at most 1 argument (the GraphQL query)")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if querySchemaOnly {
			return printSchema(cmd.OutOrStdout())
		}

		var query string
		if len(args) == 1 {
			query = args[0]
		} else {
			stdinQuery, err := readFromStdin()
			if err != nil {
				return err
			}
			if stdinQuery == "" {
				return fmt.Errorf("no query provided (pass as argument or pipe to stdin)")
			}
			query = stdinQuery
		}

		var variables map[string]any
		if queryVariables != "" {
			if err := json.Unmarshal([]byte(queryVariables), &variables); err != nil {
				return fmt.Errorf("invalid variables JSON: %w", err)
			}
		}

		var (
			result []byte
			err    error
		)
		if queryLocal {
			result, err = executeLocal(cmd.Context(), query, variables, queryOperation)
		} else {
			result, err = executeRemote(cmd.Context(), query, variables, queryOperation)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if queryJSON {
			fmt.Fprintln(out, string(result))
		} else {
			prettyPrint(out, result, isTerminal(out))
		}
		return nil
	},
}

// readFromStdin reads the query from stdin if data is available.
func readFromStdin() (string, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return "", fmt.Errorf("checking stdin: %w", err)
	}

	// If stdin is a terminal (no pipe), return empty
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return "", nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

// executeLocal runs a GraphQL query against an in-process core.
// On success, it returns just the data portion of the response.
func executeLocal(ctx context.Context, query string, variables map[string]any, operationName string) ([]byte, error) {
	core, err := newCore()
	if err != nil {
		return nil, err
	}
	defer core.Close()

	schema, err := graph.NewSchema(graph.NewResolver(core))
	if err != nil {
		return nil, err
	}

	data, errs := graph.Execute(ctx, schema, query, variables, operationName)
	if errs != nil {
		return nil, formatGraphQLErrors(errs)
	}
	return data, nil
}

// executeRemote sends a GraphQL query to the configured server.
func executeRemote(ctx context.Context, query string, variables map[string]any, operationName string) ([]byte, error) {
	data, err := newClient().Do(ctx, query, variables, operationName)
	if err != nil {
		var list gqlerror.List
		if errors.As(err, &list) {
			return nil, formatGraphQLErrors(list)
		}
		return nil, err
	}
	return data, nil
}

// formatGraphQLErrors formats GraphQL errors into a single error.
func formatGraphQLErrors(errs gqlerror.List) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return fmt.Errorf("graphql: %s", errs[0].Message)
	}
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return fmt.Errorf("graphql errors:\n  %s", strings.Join(msgs, "\n  "))
}

// prettyPrint outputs the JSON with indentation, colored when color is set.
func prettyPrint(w io.Writer, data []byte, color bool) {
	out := pretty.Pretty(data)
	if color {
		out = pretty.Color(out, nil)
	}
	fmt.Fprint(w, string(out))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printSchema outputs the GraphQL schema.
func printSchema(w io.Writer) error {
	sdl, err := graph.FormatSchema()
	if err != nil {
		return err
	}
	fmt.Fprint(w, sdl)
	return nil
}

func init() {
	graphqlCmd.Flags().BoolVar(&queryJSON, "json", false, "Output raw JSON (no formatting)")
	graphqlCmd.Flags().StringVarP(&queryVariables, "variables", "v", "", "Query variables as JSON string")
	graphqlCmd.Flags().StringVarP(&queryOperation, "operation", "o", "", "Operation name (for multi-operation documents)")
	graphqlCmd.Flags().BoolVar(&querySchemaOnly, "schema", false, "Print the GraphQL schema and exit")
	graphqlCmd.Flags().BoolVar(&queryLocal, "local", false, "Run against a fresh in-process store instead of the server")
	rootCmd.AddCommand(graphqlCmd)
}
