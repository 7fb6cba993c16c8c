package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	fodmapdb "github.com/jfranmatheu/EverydayFODMAP-sub001"
	"github.com/jfranmatheu/EverydayFODMAP-sub001/db"
	"github.com/jfranmatheu/EverydayFODMAP-sub001/ps"
)

const (
	PromptColor  = "\033[36m" // Cyan
	ErrorColor   = "\033[31m" // Red
	SuccessColor = "\033[32m" // Green
	ResetColor   = "\033[0m"
	BoldColor    = "\033[1m"
)

// Version is set at build time via -ldflags
var Version = "dev"

// CLI holds the REPL state
type CLI struct {
	diary       *db.DB
	line        *liner.State
	historyFile string
}

func main() {
	baseDir := pflag.String("dir", "", "Directory for the database file (memory store when empty)")
	useGit := pflag.Bool("git", false, "Commit every save to a git repository under --dir")
	name := pflag.String("name", "fodmapdb", "Author name for git commits")
	email := pflag.String("email", "cli@fodmapdb.local", "Author email for git commits")
	verbose := pflag.BoolP("verbose", "v", false, "Log persistence diagnostics")
	pflag.Parse()

	printBanner()

	var log *zap.Logger
	if *verbose {
		log, _ = zap.NewDevelopment()
	}

	blob, desc, err := buildBlobStore(*baseDir, *useGit, ps.Identity{Name: *name, Email: *email})
	if err != nil {
		fmt.Printf("%sError: %v%s\n", ErrorColor, err, ResetColor)
		os.Exit(1)
	}
	fmt.Printf("%sUsing %s%s\n", SuccessColor, desc, ResetColor)

	instance := fodmapdb.Open(blob, log)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	cli := &CLI{
		diary:       instance.DB(log),
		line:        line,
		historyFile: historyPath(),
	}
	cli.loadHistory()
	cli.run()
}

func buildBlobStore(baseDir string, useGit bool, identity ps.Identity) (ps.BlobStore, string, error) {
	if baseDir == "" {
		return ps.NewMemoryBlobStore(), "memory store (state lost on exit)", nil
	}
	if useGit {
		blob, err := ps.NewGitBlobStore(baseDir, identity)
		return blob, "git store: " + baseDir, err
	}
	blob, err := ps.NewFileBlobStore(baseDir)
	return blob, "file store: " + baseDir, err
}

func printBanner() {
	fmt.Println()
	fmt.Printf("%s%s╔═══════════════════════════════════════╗%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Printf("%s%s║        fodmapdb %-21s ║%s\n", BoldColor, PromptColor, "v"+Version, ResetColor)
	fmt.Printf("%s%s║   Diet-diary query emulation shell    ║%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Printf("%s%s╚═══════════════════════════════════════╝%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Println()
	fmt.Println("Type .help for commands, .quit to exit")
	fmt.Println("Bind parameters after | as a JSON array, e.g.")
	fmt.Println(`  SELECT * FROM meals WHERE date = ? | ["2024-01-01"]`)
	fmt.Println()
}

func (cli *CLI) run() {
	for {
		input, err := cli.line.Prompt(fmt.Sprintf("%sfodmapdb>%s ", PromptColor, ResetColor))
		if err != nil {
			fmt.Printf("\n%sGoodbye!%s\n", SuccessColor, ResetColor)
			cli.saveHistory()
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		cli.line.AppendHistory(input)

		if strings.HasPrefix(input, ".") {
			if cli.handleCommand(input) {
				continue
			}
			cli.saveHistory()
			return
		}

		cli.execute(input)
	}
}

// execute splits "statement | params" and routes reads through QueryAll,
// everything else through Run. Nothing here can error: degraded text
// shows up as zero rows or a zero-effect result, same as the app sees.
func (cli *CLI) execute(input string) {
	text, params, err := splitParams(input)
	if err != nil {
		fmt.Printf("%s✗ Bad parameter list: %v%s\n", ErrorColor, err, ResetColor)
		return
	}

	if isSelectText(text) {
		rows := cli.diary.QueryAll(text, params...)
		if len(rows) == 0 {
			fmt.Println("(no rows)")
			return
		}
		table := db.NewTable(os.Stdout)
		table.AddRecords(rows)
		table.Render()
		fmt.Printf("%d row(s)\n", len(rows))
		return
	}

	result := cli.diary.Run(text, params...)
	switch {
	case result.GeneratedID > 0:
		fmt.Printf("%s✓ id %d%s\n", SuccessColor, result.GeneratedID, ResetColor)
	default:
		fmt.Printf("%s✓ %d row(s) affected%s\n", SuccessColor, result.RowsAffected, ResetColor)
	}
}

func splitParams(input string) (string, []any, error) {
	text, rawParams, found := strings.Cut(input, "|")
	text = strings.TrimSpace(text)
	if !found {
		return text, nil, nil
	}

	var params []any
	if err := json.Unmarshal([]byte(strings.TrimSpace(rawParams)), &params); err != nil {
		return "", nil, err
	}
	return text, params, nil
}

func isSelectText(text string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(text)), "SELECT")
}

func (cli *CLI) handleCommand(input string) bool {
	parts := strings.Fields(strings.TrimSpace(input))
	if len(parts) == 0 {
		return true
	}

	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit", ".q":
		fmt.Printf("%sGoodbye!%s\n", SuccessColor, ResetColor)
		return false

	case ".help", ".h", ".?":
		cli.printHelp()

	case ".tables":
		names := cli.diary.TableNames()
		if len(names) == 0 {
			fmt.Println("(no tables)")
			return true
		}
		for _, name := range names {
			fmt.Println("  " + name)
		}

	case ".wipe":
		cli.diary.Wipe()
		fmt.Printf("%s✓ All data deleted%s\n", SuccessColor, ResetColor)

	case ".clear", ".cls":
		fmt.Print("\033[H\033[2J")

	case ".version":
		fmt.Printf("fodmapdb version %s\n", Version)

	default:
		fmt.Printf("%s✗ Unknown command: %s (type .help for commands)%s\n", ErrorColor, parts[0], ResetColor)
	}

	return true
}

func (cli *CLI) printHelp() {
	fmt.Println()
	fmt.Printf("%s%sSpecial Commands:%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Println("  .help, .h        Show this help message")
	fmt.Println("  .tables          List materialized tables")
	fmt.Println("  .wipe            Delete every table and the persisted blob")
	fmt.Println("  .clear           Clear the screen")
	fmt.Println("  .version         Show version info")
	fmt.Println("  .quit, .exit     Exit the shell")
	fmt.Println()
	fmt.Printf("%s%sSupported Statements:%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Println(`  INSERT INTO <table> (<cols>) VALUES (?, ...) | [params]`)
	fmt.Println(`  SELECT * FROM <table> [WHERE col = ? | col BETWEEN ? AND ?]`)
	fmt.Println(`  SELECT COUNT(*) / SUM(col) FROM <table>`)
	fmt.Println(`  SELECT ... GROUP BY date / ORDER BY col [DESC] / LIMIT n`)
	fmt.Println(`  UPDATE <table> SET c1=?, c2=? WHERE id = ? | [params]`)
	fmt.Println(`  DELETE FROM <table> [WHERE col = ?]`)
	fmt.Println()
	fmt.Println("Anything else degrades to a no-op; that mirrors the app's contract.")
	fmt.Println()
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fodmapdb_history")
}

func (cli *CLI) loadHistory() {
	if cli.historyFile == "" {
		return
	}
	f, err := os.Open(cli.historyFile)
	if err != nil {
		return
	}
	defer f.Close()
	cli.line.ReadHistory(f)
}

func (cli *CLI) saveHistory() {
	if cli.historyFile == "" {
		return
	}
	f, err := os.Create(cli.historyFile)
	if err != nil {
		return
	}
	defer f.Close()
	cli.line.WriteHistory(f)
}
