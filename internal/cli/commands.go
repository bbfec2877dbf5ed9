package cli

import (
	"fmt"
	"strings"

	"github.com/rkuprin/automaker/internal/config"
	"github.com/rkuprin/automaker/internal/memory"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the project's memory directory",
	Long: `Create .automaker/memory with its starter files (_index.md and
gotchas.md). Safe to run on an already-initialized project.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectRoot()
		if err != nil {
			return err
		}
		if err := engine.InitializeMemory(root); err != nil {
			return err
		}
		fmt.Printf("Memory initialized at %s\n", config.MemoryPath(root))
		return nil
	},
}

// ─── context ────────────────────────────────────────────────────────────────

var (
	contextDescription string
	contextMaxMemory   int
	contextNoMemory    bool
)

var contextCmd = &cobra.Command{
	Use:   "context [task title]",
	Short: "Print the context block for a task",
	Long: `Select the context and memory files relevant to a task and print
the assembled prompt block. Without a task title, memory files are
ranked by importance alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectRoot()
		if err != nil {
			return err
		}

		settings, err := config.LoadSettings(root)
		if err != nil {
			log.WithError(err).Warn("settings unreadable, using defaults")
		}

		opts := memory.DefaultLoadOptions(root)
		opts.MaxMemoryFiles = settings.MaxMemoryFiles
		opts.IncludeMemory = settings.IncludeMemory
		if len(args) > 0 {
			opts.Task = &memory.TaskContext{
				Title:       strings.Join(args, " "),
				Description: contextDescription,
			}
		}
		if cmd.Flags().Changed("max-memory") {
			opts.MaxMemoryFiles = contextMaxMemory
		}
		if contextNoMemory {
			opts.IncludeMemory = false
		}

		result, err := engine.LoadContextFiles(opts)
		if err != nil {
			return err
		}

		if result.FormattedPrompt == "" {
			fmt.Println("No context or memory files matched.")
			return nil
		}
		fmt.Println(result.FormattedPrompt)
		return nil
	},
}

// ─── memory ─────────────────────────────────────────────────────────────────

var memoryTask string

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "List memory files, optionally scored against a task",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectRoot()
		if err != nil {
			return err
		}

		var files []memory.MemoryFile
		if memoryTask != "" {
			files = engine.ScoreMemoryFiles(root, memory.TaskContext{Title: memoryTask})
		} else {
			files = engine.ListMemoryFiles(root)
		}

		if len(files) == 0 {
			fmt.Println("No memory files. Run 'automaker init' to create the starter set.")
			return nil
		}

		for _, m := range files {
			if memoryTask != "" {
				fmt.Printf("%-30s score %.2f  importance %.2g  tags %s\n",
					m.Name, m.Score, m.Meta.Importance, strings.Join(m.Meta.Tags, ","))
			} else {
				fmt.Printf("%-30s importance %.2g  tags %s\n",
					m.Name, m.Meta.Importance, strings.Join(m.Meta.Tags, ","))
			}
		}
		return nil
	},
}

// ─── learn ──────────────────────────────────────────────────────────────────

var (
	learnContext   string
	learnWhy       string
	learnRejected  string
	learnTradeoffs string
	learnBreaking  string
)

var learnCmd = &cobra.Command{
	Use:   "learn <type> <category> <content>",
	Short: "Record a learning in the project's memory",
	Long: `Append a structured entry to the category's memory file.

Types:
  decision   A choice made between alternatives
  gotcha     A surprise or trap future work should avoid
  pattern    A reusable approach that worked
  learning   Anything else worth remembering

Example:
  automaker learn decision auth "Use RS256 for signing" --why "key rotation without redeploy"`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectRoot()
		if err != nil {
			return err
		}

		learningType := memory.LearningType(args[0])
		switch learningType {
		case memory.LearningDecision, memory.LearningGotcha,
			memory.LearningPattern, memory.LearningLearning:
		default:
			return fmt.Errorf("unknown type %q (want decision, gotcha, pattern, or learning)", args[0])
		}

		err = engine.AppendLearning(root, memory.Learning{
			Category:  args[1],
			Type:      learningType,
			Content:   args[2],
			Context:   learnContext,
			Why:       learnWhy,
			Rejected:  learnRejected,
			Tradeoffs: learnTradeoffs,
			Breaking:  learnBreaking,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Recorded %s in %s\n", args[0], args[1])
		return nil
	},
}

// ─── stats ──────────────────────────────────────────────────────────────────

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show memory usage counters and journal totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectRoot()
		if err != nil {
			return err
		}

		files := engine.ListMemoryFiles(root)
		if len(files) == 0 {
			fmt.Println("No memory files yet.")
		} else {
			fmt.Printf("%d memory file(s):\n\n", len(files))
			for _, m := range files {
				s := m.Meta.UsageStats
				fmt.Printf("  %-30s loaded %d  referenced %d  successful %d\n",
					m.Name, s.Loaded, s.Referenced, s.SuccessfulFeatures)
			}
		}

		stats, err := journals.GetStats(root)
		if err != nil {
			log.WithError(err).Warn("journal unavailable")
			return nil
		}
		fmt.Printf("\nJournal: %d selection(s), %d learning(s), %d usage update(s)\n",
			stats.Selections, stats.Learnings, stats.UsageUpdates)
		if stats.LastSelection != "" {
			fmt.Printf("Last selection: %s\n", stats.LastSelection)
		}
		return nil
	},
}

func init() {
	contextCmd.Flags().StringVarP(&contextDescription, "description", "d", "", "Longer task description to score against")
	contextCmd.Flags().IntVar(&contextMaxMemory, "max-memory", 5, "Maximum memory files to include")
	contextCmd.Flags().BoolVar(&contextNoMemory, "no-memory", false, "Skip memory file selection")

	memoryCmd.Flags().StringVarP(&memoryTask, "task", "t", "", "Score files against this task title")

	learnCmd.Flags().StringVar(&learnContext, "context", "", "What prompted this entry")
	learnCmd.Flags().StringVar(&learnWhy, "why", "", "Why this choice was made")
	learnCmd.Flags().StringVar(&learnRejected, "rejected", "", "Alternatives considered and rejected")
	learnCmd.Flags().StringVar(&learnTradeoffs, "tradeoffs", "", "Trade-offs accepted")
	learnCmd.Flags().StringVar(&learnBreaking, "breaking", "", "Breaking changes introduced")

	rootCmd.AddCommand(initCmd, contextCmd, memoryCmd, learnCmd, statsCmd)
}
