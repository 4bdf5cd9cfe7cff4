// Package display renders simulation results and final game standings for
// the terminal.
package display

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/richup/internal/game"
	"github.com/lox/richup/internal/simulator"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	winnerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	bankruptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// Summary renders the outcome of a simulation run.
func Summary(results *simulator.Results) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Simulation Results"))
	b.WriteString("\n\n")

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, headerStyle.Render("PERSONALITY")+"\t"+headerStyle.Render("WINS")+"\t"+headerStyle.Render("WIN %"))
	for _, p := range results.Standings() {
		wins := results.WinsByPersonality[p]
		pct := 0.0
		if results.Finished > 0 {
			pct = float64(wins) / float64(results.Finished) * 100
		}
		fmt.Fprintf(w, "%s\t%d\t%.1f%%\n", string(p), wins, pct)
	}
	w.Flush()

	b.WriteString("\n")
	fmt.Fprintf(&b, "Games: %d  Finished: %d  Abandoned: %d\n",
		results.Games, results.Finished, results.Unfinished)
	if results.Finished > 0 {
		fmt.Fprintf(&b, "Average game length: %.1f turns\n", results.AverageTurns())
	}
	return b.String()
}

// Standings renders the final table for one game, richest player first.
func Standings(s *game.GameState) string {
	players := make([]game.Player, len(s.Players))
	copy(players, s.Players)
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].IsBankrupt != players[j].IsBankrupt {
			return !players[i].IsBankrupt
		}
		return players[i].Money > players[j].Money
	})

	var b strings.Builder
	b.WriteString(titleStyle.Render("Final Standings"))
	b.WriteString("\n\n")

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, headerStyle.Render("PLAYER")+"\t"+headerStyle.Render("CASH")+"\t"+headerStyle.Render("PROPERTIES")+"\t")
	for _, p := range players {
		name := p.Name
		note := ""
		switch {
		case s.WinnerID != nil && p.ID == *s.WinnerID:
			name = winnerStyle.Render(name)
			note = winnerStyle.Render("winner")
		case p.IsBankrupt:
			name = bankruptStyle.Render(name)
			note = bankruptStyle.Render("bankrupt")
		}
		fmt.Fprintf(w, "%s\t$%d\t%d\t%s\n", name, p.Money, ownedCount(s, p.ID), note)
	}
	w.Flush()

	fmt.Fprintf(&b, "\n%s\n", mutedStyle.Render(fmt.Sprintf("%d turns played", s.TurnCount)))
	return b.String()
}

func ownedCount(s *game.GameState, playerID int) int {
	n := 0
	for _, t := range s.Tiles {
		if t.OwnerID != nil && *t.OwnerID == playerID {
			n++
		}
	}
	return n
}
