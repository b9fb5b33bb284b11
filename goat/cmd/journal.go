package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xkazm04/goat/board/hooking"
	"github.com/xkazm04/goat/datarecording"
)

var journalCmd = &cobra.Command{
	Use:   "journal [journal db file]",
	Short: "List the operations recorded in a journal database.",
	Long: "`journal board.sqlite3` prints the operations a previous replay " +
		"recorded, one JSON object per line in execution order. The listing " +
		"can be filtered by command tag and outcome, and paginated for " +
		"large journals.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runJournal(cmd, args[0]); err != nil {
			log.Fatalf("Error reading journal: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(journalCmd)

	journalCmd.Flags().String("command", "",
		"only list operations with this command tag")
	journalCmd.Flags().Bool("failed", false,
		"only list failed operations")
	journalCmd.Flags().Int("limit", 0,
		"maximum number of operations to print (0 prints all)")
	journalCmd.Flags().Int("offset", 0,
		"number of operations to skip")
}

func runJournal(cmd *cobra.Command, path string) error {
	command, _ := cmd.Flags().GetString("command")
	failedOnly, _ := cmd.Flags().GetBool("failed")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	reader := datarecording.NewReader(path)
	defer reader.Close()

	records, totalCount, err := queryOperations(
		reader, command, failedOnly, limit, offset)
	if err != nil {
		return err
	}

	for _, record := range records {
		encoded, err := json.Marshal(record)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	}

	fmt.Fprintf(cmd.ErrOrStderr(),
		"Listed %d of %d operations\n", len(records), totalCount)

	return nil
}

// queryOperations reads operation records from a journal reader in execution
// order, applying the optional command and outcome filters.
func queryOperations(
	reader datarecording.DataReader,
	command string,
	failedOnly bool,
	limit, offset int,
) ([]hooking.OpRecord, int, error) {
	reader.MapTable(datarecording.OperationTable, hooking.OpRecord{})

	var clauses []string
	var args []any

	if command != "" {
		clauses = append(clauses, "Command = ?")
		args = append(args, command)
	}

	if failedOnly {
		clauses = append(clauses, "Success = ?")
		args = append(args, false)
	}

	params := datarecording.QueryParams{
		Where:   strings.Join(clauses, " AND "),
		Args:    args,
		Limit:   limit,
		Offset:  offset,
		OrderBy: "CAST(ID AS INTEGER)",
	}

	results, totalCount, err := reader.Query(
		context.Background(), datarecording.OperationTable, params)
	if err != nil {
		return nil, 0, err
	}

	records := make([]hooking.OpRecord, 0, len(results))
	for _, result := range results {
		records = append(records, *result.(*hooking.OpRecord))
	}

	return records, totalCount, nil
}
