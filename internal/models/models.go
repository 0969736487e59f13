package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entrant is one lottery applicant. Tickets act as a real-valued draw weight.
type Entrant struct {
	Name    string  `json:"name"`
	Tickets float64 `json:"tickets"`
}

// Params are the per-run lottery settings.
type Params struct {
	Iterations    int `json:"iterations"`
	MainSpots     int `json:"main_spots"`
	WaitlistSpots int `json:"waitlist_spots"`
}

// TotalSpots is main plus waitlist.
func (p Params) TotalSpots() int {
	return p.MainSpots + p.WaitlistSpots
}

// GroupSummary reports the mean selection odds of all entrants holding the same ticket count.
// Percentages are in [0,100].
type GroupSummary struct {
	Tickets         float64 `json:"tickets"`
	EntrantCount    int     `json:"entrant_count"`
	MainProbPct     float64 `json:"main_pct"`
	WaitlistProbPct float64 `json:"waitlist_pct"`
	EitherProbPct   float64 `json:"either_pct"`
}

// Report is the summarized outcome of one simulation, groups ordered by descending tickets.
type Report struct {
	Groups        []GroupSummary `json:"groups"`
	TotalEntrants int            `json:"total_entrants"`
	TotalTickets  float64        `json:"total_tickets"`
}

// AdminUser may log in and run simulations through the API.
type AdminUser struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SimulationRun is one persisted simulation request and its summary.
type SimulationRun struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Label         string
	Iterations    int     `gorm:"not null"`
	MainSpots     int     `gorm:"not null"`
	WaitlistSpots int     `gorm:"not null"`
	Seed          *int64  // nil when the run drew from the CSPRNG
	TotalEntrants int     `gorm:"not null"`
	TotalTickets  float64 `gorm:"not null"`
	CreatedBy     string  // admin username from the JWT

	Groups    []GroupResult `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GroupResult is one ticket-group row of a SimulationRun.
type GroupResult struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	SimulationRunID uuid.UUID `gorm:"type:uuid;not null;index"`
	Tickets         float64   `gorm:"not null"`
	EntrantCount    int       `gorm:"not null"`
	MainPct         float64   `gorm:"not null"`
	WaitlistPct     float64   `gorm:"not null"`
	EitherPct       float64   `gorm:"not null"`
	CreatedAt       time.Time
}

// NewSimulationRun builds a run row (with fresh IDs) from a finished report.
func NewSimulationRun(label string, p Params, seed *int64, r Report, createdBy string) SimulationRun {
	run := SimulationRun{
		ID:            uuid.New(),
		Label:         label,
		Iterations:    p.Iterations,
		MainSpots:     p.MainSpots,
		WaitlistSpots: p.WaitlistSpots,
		Seed:          seed,
		TotalEntrants: r.TotalEntrants,
		TotalTickets:  r.TotalTickets,
		CreatedBy:     createdBy,
	}
	for _, g := range r.Groups {
		run.Groups = append(run.Groups, GroupResult{
			ID:              uuid.New(),
			SimulationRunID: run.ID,
			Tickets:         g.Tickets,
			EntrantCount:    g.EntrantCount,
			MainPct:         g.MainProbPct,
			WaitlistPct:     g.WaitlistProbPct,
			EitherPct:       g.EitherProbPct,
		})
	}
	return run
}

// Migrate will create/update your tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&AdminUser{},
		&SimulationRun{},
		&GroupResult{},
	)
}
