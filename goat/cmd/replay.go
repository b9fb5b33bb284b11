package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/xkazm04/goat/board"
	"github.com/xkazm04/goat/board/backlog"
	"github.com/xkazm04/goat/board/grid"
	"github.com/xkazm04/goat/board/hooking"
	"github.com/xkazm04/goat/board/notifying"
	"github.com/xkazm04/goat/board/orchestrating"
	"github.com/xkazm04/goat/board/rules"
	"github.com/xkazm04/goat/board/session"
	"github.com/xkazm04/goat/datarecording"
	"github.com/xkazm04/goat/monitoring"
)

// A script is a self-contained session description: the grid capacity, the
// backlog contents, and the commands to run.
type script struct {
	GridSize int                 `json:"grid_size"`
	Backlog  []board.BacklogItem `json:"backlog"`
	Commands []scriptCommand     `json:"commands"`
}

type scriptCommand struct {
	Command   string `json:"command"`
	ItemID    string `json:"item_id,omitempty"`
	Position  int    `json:"position,omitempty"`
	From      int    `json:"from,omitempty"`
	To        int    `json:"to,omitempty"`
	PositionA int    `json:"position_a,omitempty"`
	PositionB int    `json:"position_b,omitempty"`
}

var replayCmd = &cobra.Command{
	Use:   "replay [script file]",
	Short: "Replay a command script against a fresh board session.",
	Long: "`replay script.json` builds a session from the script's backlog " +
		"and grid size, executes its commands through the orchestrator, and " +
		"prints each result. Operations can be journaled to SQLite and the " +
		"session can be inspected live through the monitor.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runReplay(cmd, args[0]); err != nil {
			log.Fatalf("Error replaying script: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().String("journal", "",
		"SQLite journal path (defaults to $GOAT_JOURNAL_DB, empty disables)")
	replayCmd.Flags().String("load-session", "",
		"restore a saved session snapshot before running the script")
	replayCmd.Flags().String("save-session", "",
		"save the session snapshot to a file after running the script")
	replayCmd.Flags().Bool("monitor", false,
		"serve the session monitor and open it in a browser")
	replayCmd.Flags().Bool("verbose", false,
		"log every operation to stderr")
}

func runReplay(cmd *cobra.Command, scriptPath string) error {
	// Missing .env files are fine, the flags carry defaults.
	_ = godotenv.Load()

	s, err := readScript(scriptPath)
	if err != nil {
		return err
	}

	store := session.NewStore("Session")
	pool := backlog.MakeBuilder().WithItems(s.Backlog...).Build("Backlog")
	g := grid.MakeBuilder().
		WithCapacity(s.GridSize).
		WithSession(store).
		Build("Grid")

	notifier := notifying.NewLogNotifier(
		log.New(os.Stderr, "[Notifier] ", 0))

	orchestrator := orchestrating.MakeBuilder().
		WithGrid(g).
		WithBacklog(pool).
		WithAuthority(rules.NewEvaluator()).
		WithNotifier(notifier).
		Build("Orchestrator")

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		orchestrator.AcceptHook(hooking.NewOpLogger(
			log.New(os.Stderr, "[Orchestrator] ", 0)))
	}

	journal := attachJournal(cmd, orchestrator)
	if journal != nil {
		defer journal.Flush()
	}

	if file, _ := cmd.Flags().GetString("load-session"); file != "" {
		if err := restoreSession(file, pool, orchestrator); err != nil {
			return err
		}
	}

	for i, c := range s.Commands {
		result, err := execute(orchestrator, pool, c)
		if err != nil {
			return fmt.Errorf("command %d: %w", i, err)
		}

		printResult(result)
	}

	if monitor, _ := cmd.Flags().GetBool("monitor"); monitor {
		m := monitoring.NewMonitor()
		m.RegisterGrid(g)
		m.RegisterBacklog(pool)
		m.RegisterComponent(orchestrator)
		m.StartServer()
		m.OpenDashboard()

		select {}
	}

	if file, _ := cmd.Flags().GetString("save-session"); file != "" {
		return store.Save(file)
	}

	return nil
}

func readScript(path string) (script, error) {
	file, err := os.Open(path)
	if err != nil {
		return script{}, err
	}
	defer file.Close()

	var s script
	if err := json.NewDecoder(file).Decode(&s); err != nil {
		return script{}, err
	}

	if s.GridSize <= 0 {
		return script{}, fmt.Errorf("script grid_size must be positive")
	}

	return s, nil
}

func attachJournal(
	cmd *cobra.Command,
	orchestrator *orchestrating.Orchestrator,
) *hooking.OpJournal {
	path, _ := cmd.Flags().GetString("journal")
	if path == "" {
		path = os.Getenv("GOAT_JOURNAL_DB")
	}

	if path == "" {
		return nil
	}

	recorder := datarecording.NewRecorder(path)
	journal := hooking.NewOpJournal(datarecording.NewJournalBackend(recorder))
	orchestrator.AcceptHook(journal)

	return journal
}

// restoreSession replays a saved snapshot through the orchestrator with
// validation skipped, the trusted bulk-restore path. Slots whose items no
// longer exist in the backlog are skipped.
func restoreSession(
	file string,
	pool *backlog.Pool,
	orchestrator *orchestrating.Orchestrator,
) error {
	state, err := session.Load(file)
	if err != nil {
		return err
	}

	for _, slot := range state.Slots {
		if !slot.Occupied() || slot.Item.BacklogItemID == "" {
			continue
		}

		item, found := pool.ItemByID(slot.Item.BacklogItemID)
		if !found {
			continue
		}

		result := orchestrator.Assign(item, slot.Position, true)
		if !result.Success {
			return fmt.Errorf("restoring position %d: %s",
				slot.Position, result.Error.Message)
		}
	}

	return nil
}

func execute(
	orchestrator *orchestrating.Orchestrator,
	pool *backlog.Pool,
	c scriptCommand,
) (board.Result, error) {
	switch board.Command(c.Command) {
	case board.CommandAssign:
		item, found := pool.ItemByID(c.ItemID)
		if !found {
			return board.Result{},
				fmt.Errorf("backlog item %q does not exist", c.ItemID)
		}

		return orchestrator.Assign(item, c.Position, false), nil
	case board.CommandMove:
		return orchestrator.Move(c.From, c.To), nil
	case board.CommandSwap:
		return orchestrator.Swap(c.PositionA, c.PositionB), nil
	case board.CommandRemove:
		return orchestrator.Remove(c.Position), nil
	case board.CommandClear:
		return orchestrator.Clear(), nil
	default:
		return board.Result{}, fmt.Errorf("unknown command %q", c.Command)
	}
}

func printResult(result board.Result) {
	encoded, err := json.Marshal(result)
	if err != nil {
		log.Fatalf("Error encoding result: %v", err)
	}

	fmt.Println(string(encoded))
}
