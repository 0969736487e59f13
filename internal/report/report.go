// Package report turns raw selection counts into per-ticket-group odds and renders them.
package report

import (
	"sort"

	"github.com/ArowuTest/lottery-odds/internal/models"
)

type groupAcc struct {
	entrants    int
	mainPct     float64
	waitlistPct float64
}

// Summarize groups entrants by ticket count and averages their individual
// probabilities. Groups come out highest ticket count first.
//
// The group mean treats same-ticket entrants as exchangeable, which holds in
// expectation but not exactly over a finite number of iterations.
func Summarize(entrants []models.Entrant, mainCount, waitlistCount map[string]int, iterations int) models.Report {
	rep := models.Report{
		Groups:        []models.GroupSummary{},
		TotalEntrants: len(entrants),
	}

	groups := make(map[float64]*groupAcc)
	for _, e := range entrants {
		rep.TotalTickets += e.Tickets

		acc, ok := groups[e.Tickets]
		if !ok {
			acc = &groupAcc{}
			groups[e.Tickets] = acc
		}
		acc.entrants++
		acc.mainPct += percent(mainCount[e.Name], iterations)
		acc.waitlistPct += percent(waitlistCount[e.Name], iterations)
	}

	for tickets, acc := range groups {
		n := float64(acc.entrants)
		rep.Groups = append(rep.Groups, models.GroupSummary{
			Tickets:         tickets,
			EntrantCount:    acc.entrants,
			MainProbPct:     acc.mainPct / n,
			WaitlistProbPct: acc.waitlistPct / n,
			EitherProbPct:   (acc.mainPct + acc.waitlistPct) / n,
		})
	}
	sort.Slice(rep.Groups, func(i, j int) bool { return rep.Groups[i].Tickets > rep.Groups[j].Tickets })
	return rep
}

func percent(count, iterations int) float64 {
	if iterations <= 0 {
		return 0
	}
	return float64(count) / float64(iterations) * 100
}
