package main

import (
	"fmt"
	rand "math/rand/v2"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/equity-cli/internal/deck"
	"github.com/lox/equity-cli/internal/equity"
	"github.com/lox/equity-cli/internal/evaluator"
	"github.com/lox/equity-cli/internal/progress"
	"github.com/lox/equity-cli/internal/randutil"
	"github.com/lox/equity-cli/internal/tui"
)

type CLI struct {
	Hands         []string `arg:"" help:"Two hands in format 'AcKd QhJs' (space separated)" required:"true"`
	Board         string   `short:"b" help:"Community board cards (e.g., 'Td7s8h')"`
	Iterations    int      `short:"i" help:"Number of Monte Carlo iterations" default:"100000"`
	Workers       int      `short:"w" help:"Worker goroutines (0 = one per CPU)"`
	Seed          *int64   `help:"Random seed for reproducible results"`
	Possibilities bool     `short:"p" help:"Show hand category probabilities"`
	Tui           bool     `help:"Show a live progress bar instead of log lines"`
	Verbose       bool     `short:"v" help:"Verbose logging"`
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	equityStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("13"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	percentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	logLevel := log.InfoLevel
	if cli.Verbose {
		logLevel = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: logLevel})

	seed := time.Now().UnixNano()
	if cli.Seed != nil {
		seed = *cli.Seed
	}

	req, err := buildRequest(cli)
	if err != nil {
		logger.Error("invalid input", "error", err)
		ctx.Exit(1)
	}

	startTime := time.Now()
	result, err := runSimulation(req, seed, cli.Tui, logger)
	if err != nil {
		logger.Error("simulation failed", "error", err)
		ctx.Exit(1)
	}
	duration := time.Since(startTime)

	displayResults(req, result, cli.Possibilities, duration)
}

func buildRequest(cli CLI) (equity.Request, error) {
	hands, err := parseHands(cli.Hands)
	if err != nil {
		return equity.Request{}, err
	}
	if len(hands) != 2 {
		return equity.Request{}, fmt.Errorf("exactly 2 hands required, got %d", len(hands))
	}

	var board []deck.Card
	if cli.Board != "" {
		board, err = deck.ParseCards(cli.Board)
		if err != nil {
			return equity.Request{}, fmt.Errorf("board: %w", err)
		}
	}

	return equity.Request{
		Hand1:           hands[0],
		Hand2:           hands[1],
		Board:           board,
		Iterations:      cli.Iterations,
		Workers:         cli.Workers,
		TrackCategories: cli.Possibilities,
	}, nil
}

func parseHands(handStrings []string) ([][]deck.Card, error) {
	var hands [][]deck.Card

	for i, handStr := range handStrings {
		hand, err := deck.ParseCards(strings.TrimSpace(handStr))
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", i+1, err)
		}
		if len(hand) != 2 {
			return nil, fmt.Errorf("hand %d: must contain exactly 2 cards, got %d", i+1, len(hand))
		}
		hands = append(hands, hand)
	}

	return hands, nil
}

func runSimulation(req equity.Request, seed int64, useTui bool, logger *log.Logger) (equity.Result, error) {
	rng := randutil.New(seed)

	if !useTui {
		reporter := progress.NewReporter(logger)
		req.Progress = reporter.Update
		return equity.Simulate(req, rng)
	}

	return runSimulationTUI(req, rng)
}

func runSimulationTUI(req equity.Request, rng *rand.Rand, opts ...tea.ProgramOption) (equity.Result, error) {
	program := tea.NewProgram(tui.New(req.Iterations), opts...)
	req.Progress = func(done, total int) {
		program.Send(tui.TrialMsg{Done: done, Total: total})
	}

	var result equity.Result
	var simErr error
	done := make(chan struct{})
	go func() {
		result, simErr = equity.Simulate(req, rng)
		close(done)
		// The final-trial hook already quit the program on success;
		// this send unblocks Run when the simulation fails partway.
		program.Send(tui.TrialMsg{Done: req.Iterations, Total: req.Iterations})
	}()

	if _, err := program.Run(); err != nil {
		return equity.Result{}, err
	}
	<-done
	return result, simErr
}

func displayResults(req equity.Request, result equity.Result, showPossibilities bool, duration time.Duration) {
	if len(req.Board) > 0 {
		fmt.Printf("%s\n", headerStyle.Render("board"))
		fmt.Printf("%s\n\n", formatCards(req.Board))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("win"),
		headerStyle.Render("tie"),
		headerStyle.Render("equity"))

	for i, hand := range [2][]deck.Card{req.Hand1, req.Hand2} {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			handStyle.Render(formatCards(hand)),
			winStyle.Render(fmt.Sprintf("%.1f%%", result.WinPercent(i))),
			tieStyle.Render(fmt.Sprintf("%.1f%%", result.TiePercent())),
			equityStyle.Render(fmt.Sprintf("%.1f%%", result.Equity(i))))
	}

	w.Flush()

	if showPossibilities {
		fmt.Printf("\n")
		displayPossibilities(req, result)
	}

	fmt.Printf("\n%d iterations in %v\n", result.Trials, duration.Truncate(time.Millisecond))
}

func displayPossibilities(req equity.Request, result equity.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\n",
		categoryStyle.Render("hand"),
		handStyle.Render(formatCards(req.Hand1)),
		handStyle.Render(formatCards(req.Hand2)))

	for cat := evaluator.StraightFlush; ; cat-- {
		if result.Categories[0][cat] > 0 || result.Categories[1][cat] > 0 {
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				categoryStyle.Render(cat.String()),
				formatCategoryPercent(result, 0, cat),
				formatCategoryPercent(result, 1, cat))
		}
		if cat == evaluator.HighCard {
			break
		}
	}

	w.Flush()
}

func formatCategoryPercent(result equity.Result, hand int, cat evaluator.Category) string {
	if result.Categories[hand][cat] == 0 {
		return percentStyle.Render(".")
	}
	return percentStyle.Render(fmt.Sprintf("%.1f%%", result.CategoryPercent(hand, cat)))
}

func formatCards(cards []deck.Card) string {
	var parts []string
	for _, card := range cards {
		parts = append(parts, card.String())
	}
	return strings.Join(parts, " ")
}
