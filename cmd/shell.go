package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/doubles-league/internal/model"
	"github.com/pable/doubles-league/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the league database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(cmd *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	cGreeting.Println("league shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	ctx := cmd.Context()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("league")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		name, args := tokens[0], tokens[1:]
		if name == "exit" || name == "quit" {
			return nil
		}
		if err := shellDispatch(ctx, db, loc, name, args, line); err != nil {
			cError.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
	return nil
}

func shellDispatch(ctx context.Context, db *storage.DB, loc *time.Location, name string, args []string, line string) error {
	out := os.Stdout
	switch name {
	case "help":
		shellHelp()
	case "list":
		return showPlayers(ctx, db, out)
	case "matches":
		return showMatches(ctx, db, out, strings.Join(args, " "))
	case "ratings":
		var asOf time.Time
		if len(args) > 0 {
			var err error
			if asOf, err = parseDay(args[0], loc); err != nil {
				return err
			}
		}
		return showRatings(ctx, db, out, asOf, "")
	case "player", "history", "streak":
		if len(args) == 0 {
			return fmt.Errorf("usage: %s <id|name>", name)
		}
		ref := strings.Join(args, " ")
		switch name {
		case "player":
			return showPlayer(ctx, db, out, ref)
		case "history":
			return showHistory(ctx, db, out, ref)
		default:
			return showStreak(ctx, db, out, ref)
		}
	case "pairs":
		minMatches := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("usage: pairs [min-matches]")
			}
			minMatches = n
		}
		return showPairs(ctx, db, out, minMatches, false)
	case "records":
		return showRecords(ctx, db, out)
	case "versus":
		if len(args) != 2 {
			return fmt.Errorf("usage: versus <id|name> <id|name>")
		}
		return showVersus(ctx, db, out, args[0], args[1])
	case "rivals":
		limit := 10
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("usage: rivals [limit]")
			}
			limit = n
		}
		return showRivals(ctx, db, out, limit)
	case "day":
		day := time.Now().In(loc)
		if len(args) > 0 {
			var err error
			if day, err = parseDay(args[0], loc); err != nil {
				return err
			}
		}
		return showDay(ctx, db, out, day, loc)
	case "predict":
		if len(args) < 4 {
			return fmt.Errorf("usage: predict <a1> <a2> <b1> <b2> [A-B] [to6|to4|to3]")
		}
		scoreA, scoreB, t := 6, 0, model.MatchTypeSix
		if len(args) > 4 {
			var err error
			if scoreA, scoreB, err = parseScore(args[4]); err != nil {
				return err
			}
		}
		if len(args) > 5 {
			var err error
			if t, err = model.ParseMatchType(args[5]); err != nil {
				return err
			}
		}
		return showPrediction(ctx, db, out, args[:4], scoreA, scoreB, t)
	case "cache":
		if len(args) != 1 || (args[0] != "rebuild" && args[0] != "show") {
			return fmt.Errorf("usage: cache rebuild|show")
		}
		store, closeStore, err := openSnapshotStore(db)
		if err != nil {
			return err
		}
		defer closeStore()
		if args[0] == "rebuild" {
			return rebuildCache(ctx, db, store, out)
		}
		return showCache(ctx, db, store, out)
	case "sql":
		query := strings.TrimSpace(strings.TrimPrefix(line, name))
		if query == "" {
			return fmt.Errorf("usage: sql <query>")
		}
		return printQuery(ctx, db, out, query)
	default:
		cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", name)
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list players"},
		{"matches [id|name]", "list matches, optionally for one player"},
		{"ratings [YYYY-MM-DD]", "league table over the 182-day window"},
		{"player <id|name>", "profile, partners and opponent strength"},
		{"history <id|name>", "rating after each match"},
		{"streak <id|name>", "longest and current streaks"},
		{"pairs [min-matches]", "rebuild and show pair ratings"},
		{"records", "league records"},
		{"versus <p1> <p2>", "head-to-head record"},
		{"rivals [limit]", "most frequent opposing pairings"},
		{"day [YYYY-MM-DD]", "rating changes for one day"},
		{"predict <a1> <a2> <b1> <b2> [A-B] [type]", "what-if match"},
		{"cache rebuild|show", "rebuild or list stats snapshots"},
		{"sql <query>", "run a raw SQL query"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-42s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}
