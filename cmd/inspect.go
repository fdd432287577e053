package cmd

import (
	"database/sql"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/iksnae/termblog/internal"
	"github.com/spf13/cobra"
)

var (
	inspectKeys       string
	inspectSampleRows int
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [database-path]",
	Short: "Inspect the SQLite state database",
	Long: `Inspect the tables of the SQLite state database.

This command shows:
  • Each table with its row count and schema
  • Sample rows from each table
  • Stored keys matching a LIKE pattern (--keys)

Examples:
  termblog inspect                       # Inspect ~/.termblog/state.db
  termblog inspect --keys 'vfs:%'        # List stored pseudo files
  termblog inspect /tmp/state.db --sample 0`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var dbPath string
		if len(args) > 0 {
			dbPath = args[0]
		} else {
			paths, err := internal.DetectDataPaths(dataDir)
			if err != nil {
				return fmt.Errorf("failed to detect data paths: %w", err)
			}
			if !paths.StateDBExists() {
				return fmt.Errorf("no state database at %s (run 'termblog shell' first)", paths.StateDBPath())
			}
			dbPath = paths.StateDBPath()
		}

		db, err := internal.OpenDatabaseReadOnly(dbPath)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		out := cmd.OutOrStdout()
		if inspectKeys != "" {
			return printKeys(out, db, inspectKeys)
		}
		return inspectDatabase(out, db, dbPath)
	},
}

func printKeys(out io.Writer, db *sql.DB, pattern string) error {
	pairs, err := internal.QueryKV(db, pattern)
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		fmt.Fprintf(out, "No keys matching %q\n", pattern)
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "KEY\tSIZE\tVALUE")
	for _, p := range pairs {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\n", p.Key, len(p.Value), preview(p.Value))
	}
	return w.Flush()
}

func inspectDatabase(out io.Writer, db *sql.DB, dbPath string) error {
	tables, err := getTables(db)
	if err != nil {
		return fmt.Errorf("failed to get tables: %w", err)
	}
	if len(tables) == 0 {
		fmt.Fprintln(out, "⚠️  No tables found in database")
		return nil
	}

	fmt.Fprintf(out, "📋 Database: %s\n", dbPath)
	fmt.Fprintf(out, "📊 Found %d table(s)\n\n", len(tables))

	for _, tableName := range tables {
		if err := inspectTable(out, db, tableName); err != nil {
			fmt.Fprintf(out, "⚠️  Error inspecting table %s: %v\n", tableName, err)
			continue
		}
		fmt.Fprintln(out)
	}
	return nil
}

func getTables(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`
		SELECT name FROM sqlite_master
		WHERE type='table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			continue
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func inspectTable(out io.Writer, db *sql.DB, tableName string) error {
	fmt.Fprintf(out, "📦 Table: %s\n", tableName)

	var rowCount int
	if err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %q", tableName)).Scan(&rowCount); err != nil {
		return fmt.Errorf("failed to get row count: %w", err)
	}
	fmt.Fprintf(out, "📊 Rows: %d\n", rowCount)

	columns, err := getTableSchema(db, tableName)
	if err != nil {
		return fmt.Errorf("failed to get schema: %w", err)
	}
	fmt.Fprintln(out, "📐 Schema:")
	for _, col := range columns {
		suffix := ""
		if col.NotNull {
			suffix += " NOT NULL"
		}
		if col.PrimaryKey {
			suffix += " [PRIMARY KEY]"
		}
		fmt.Fprintf(out, "  • %s: %s%s\n", col.Name, col.Type, suffix)
	}

	if rowCount > 0 && inspectSampleRows > 0 {
		if err := showSampleData(out, db, tableName, columns, inspectSampleRows); err != nil {
			fmt.Fprintf(out, "⚠️  Error showing sample data: %v\n", err)
		}
	}
	return nil
}

type columnInfo struct {
	Name       string
	Type       string
	NotNull    bool
	PrimaryKey bool
}

func getTableSchema(db *sql.DB, tableName string) ([]columnInfo, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%q)", tableName))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var columns []columnInfo
	for rows.Next() {
		var col columnInfo
		var cid, notNull, pk int
		var defaultValue sql.NullString
		if err := rows.Scan(&cid, &col.Name, &col.Type, &notNull, &defaultValue, &pk); err != nil {
			continue
		}
		col.NotNull = notNull == 1
		col.PrimaryKey = pk > 0
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

func showSampleData(out io.Writer, db *sql.DB, tableName string, columns []columnInfo, limit int) error {
	if len(columns) == 0 {
		return nil
	}
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = fmt.Sprintf("%q", col.Name)
	}

	rows, err := db.Query(fmt.Sprintf("SELECT %s FROM %q LIMIT %d", strings.Join(names, ", "), tableName, limit))
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	fmt.Fprintf(out, "📄 Sample Data (first %d rows):\n", limit)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = strings.ToUpper(col.Name)
	}
	_, _ = fmt.Fprintln(w, "  "+strings.Join(header, "\t"))

	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}
		cells := make([]string, len(values))
		for i, v := range values {
			switch b := v.(type) {
			case nil:
				cells[i] = "<NULL>"
			case []byte:
				cells[i] = preview(string(b))
			default:
				cells[i] = preview(fmt.Sprint(b))
			}
		}
		_, _ = fmt.Fprintln(w, "  "+strings.Join(cells, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return rows.Err()
}

// preview shows the first line of v, truncated
func preview(v string) string {
	if i := strings.IndexByte(v, '\n'); i >= 0 {
		v = v[:i] + "..."
	}
	if len(v) > 60 {
		v = v[:57] + "..."
	}
	return v
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectKeys, "keys", "", "List stored keys matching a LIKE pattern")
	inspectCmd.Flags().IntVar(&inspectSampleRows, "sample", 3, "Number of sample rows to show")
}
