package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/ArowuTest/lottery-odds/internal/config"
	"github.com/ArowuTest/lottery-odds/internal/loader"
	"github.com/ArowuTest/lottery-odds/internal/models"
	"github.com/ArowuTest/lottery-odds/internal/rng"
	"github.com/ArowuTest/lottery-odds/internal/simulation"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// simulationRequest is the JSON payload for POST /api/v1/simulations.
type simulationRequest struct {
	Label         string           `json:"label"`
	Iterations    int              `json:"iterations"`
	MainSpots     int              `json:"main_spots"`
	WaitlistSpots int              `json:"waitlist_spots"`
	Seed          *int64           `json:"seed,omitempty"` // omit for a CSPRNG-backed run
	Entrants      []models.Entrant `json:"entrants"`
}

type simulationResponse struct {
	ID        uuid.UUID     `json:"id"`
	Label     string        `json:"label,omitempty"`
	Params    models.Params `json:"params"`
	Seed      *int64        `json:"seed,omitempty"`
	Report    models.Report `json:"report"`
	CreatedBy string        `json:"created_by,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

func toResponse(run models.SimulationRun) simulationResponse {
	resp := simulationResponse{
		ID:    run.ID,
		Label: run.Label,
		Params: models.Params{
			Iterations:    run.Iterations,
			MainSpots:     run.MainSpots,
			WaitlistSpots: run.WaitlistSpots,
		},
		Seed: run.Seed,
		Report: models.Report{
			Groups:        make([]models.GroupSummary, 0, len(run.Groups)),
			TotalEntrants: run.TotalEntrants,
			TotalTickets:  run.TotalTickets,
		},
		CreatedBy: run.CreatedBy,
		CreatedAt: run.CreatedAt,
	}
	for _, g := range run.Groups {
		resp.Report.Groups = append(resp.Report.Groups, models.GroupSummary{
			Tickets:         g.Tickets,
			EntrantCount:    g.EntrantCount,
			MainProbPct:     g.MainPct,
			WaitlistProbPct: g.WaitlistPct,
			EitherProbPct:   g.EitherPct,
		})
	}
	return resp
}

func maxIterations() int {
	if config.Cfg == nil || config.Cfg.MaxIterations <= 0 {
		return config.Defaults().MaxIterations
	}
	return config.Cfg.MaxIterations
}

// RunSimulation handles POST /api/v1/simulations
func RunSimulation(c *gin.Context) {
	var req simulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
		return
	}
	p := models.Params{Iterations: req.Iterations, MainSpots: req.MainSpots, WaitlistSpots: req.WaitlistSpots}
	runAndStore(c, req.Label, p, req.Seed, req.Entrants)
}

// UploadSimulation handles POST /api/v1/simulations/upload
// The multipart form carries an "entrants" CSV file plus iterations, main_spots,
// waitlist_spots and optional seed and label fields.
func UploadSimulation(c *gin.Context) {
	fh, err := c.FormFile("entrants")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing entrants file: " + err.Error()})
		return
	}

	var p models.Params
	for field, dst := range map[string]*int{
		"iterations":     &p.Iterations,
		"main_spots":     &p.MainSpots,
		"waitlist_spots": &p.WaitlistSpots,
	} {
		if *dst, err = strconv.Atoi(strings.TrimSpace(c.PostForm(field))); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + field})
			return
		}
	}
	var seed *int64
	if s := strings.TrimSpace(c.PostForm("seed")); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid seed"})
			return
		}
		seed = &v
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable entrants file"})
		return
	}
	defer f.Close()

	entrants, err := loader.Parse(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	runAndStore(c, c.PostForm("label"), p, seed, entrants)
}

func runAndStore(c *gin.Context, label string, p models.Params, seed *int64, entrants []models.Entrant) {
	if limit := maxIterations(); p.Iterations > limit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "iterations must be <= " + strconv.Itoa(limit)})
		return
	}

	src, err := rng.NewSource(seed)
	if err != nil {
		log.Error().Err(err).Msg("random source unavailable")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Random source unavailable"})
		return
	}

	start := time.Now()
	res, err := simulation.Run(entrants, p, src)
	if err != nil {
		if errors.Is(err, simulation.ErrInvalidConfiguration) || errors.Is(err, simulation.ErrInvalidEntrant) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error().Err(err).Msg("simulation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Simulation failed"})
		return
	}

	run := models.NewSimulationRun(label, p, seed, res.Report, c.GetString("username"))
	if err := config.DB.Create(&run).Error; err != nil {
		log.Error().Err(err).Msg("saving simulation run failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save simulation"})
		return
	}

	log.Info().
		Str("run_id", run.ID.String()).
		Int("entrants", len(entrants)).
		Int("iterations", p.Iterations).
		Bool("seeded", seed != nil).
		Dur("elapsed", time.Since(start)).
		Msg("simulation complete")
	c.JSON(http.StatusCreated, toResponse(run))
}

// ListSimulations handles GET /api/v1/simulations?limit=N (newest first)
func ListSimulations(c *gin.Context) {
	limit := defaultListLimit
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > maxListLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and " + strconv.Itoa(maxListLimit)})
			return
		}
		limit = n
	}

	var runs []models.SimulationRun
	if err := config.DB.
		Preload("Groups", orderGroups).
		Order("created_at desc").
		Limit(limit).
		Find(&runs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch simulations: " + err.Error()})
		return
	}

	resp := make([]simulationResponse, 0, len(runs))
	for _, run := range runs {
		resp = append(resp, toResponse(run))
	}
	c.JSON(http.StatusOK, resp)
}

// GetSimulation handles GET /api/v1/simulations/:id
func GetSimulation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid simulation ID"})
		return
	}

	var run models.SimulationRun
	if err := config.DB.Preload("Groups", orderGroups).First(&run, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Simulation not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error fetching simulation"})
		}
		return
	}
	c.JSON(http.StatusOK, toResponse(run))
}

func orderGroups(db *gorm.DB) *gorm.DB {
	return db.Order("tickets desc")
}

// DeleteSimulation handles DELETE /api/v1/simulations/:id
func DeleteSimulation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid simulation ID"})
		return
	}

	var found bool
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("simulation_run_id = ?", id).Delete(&models.GroupResult{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.SimulationRun{}, "id = ?", id)
		found = res.RowsAffected > 0
		return res.Error
	})
	if err != nil {
		log.Error().Err(err).Str("run_id", id.String()).Msg("deleting simulation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete simulation"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Simulation not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
