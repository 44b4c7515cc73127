package storage

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/wise-wildfire/firegrowth/internal/fireerrors"
	"github.com/wise-wildfire/firegrowth/internal/firegeom"
	"github.com/wise-wildfire/firegrowth/internal/scenario"
)

// FirePointDTO is the JSON-serializable projection of a firegeom.FirePoint
// retained in a checkpoint: position and the stats a replay consumer (a
// plotter, a report) would want without reconstructing a live FireFront
// arena. History back-references are dropped — a checkpoint is a snapshot
// of one step's geometry, not a replay of propagation.
type FirePointDTO struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Status    string  `json:"status"`
	VectorROS float64 `json:"vector_ros"`
}

// FrontDTO is one ring (exterior or hole) of a checkpointed fire.
type FrontDTO struct {
	Points []FirePointDTO `json:"points"`
}

// FireDTO is one ActiveFire's checkpointed state.
type FireDTO struct {
	FireID   uuid.UUID  `json:"fire_id"`
	State    string     `json:"state"`
	Exterior FrontDTO   `json:"exterior"`
	Holes    []FrontDTO `json:"holes,omitempty"`
}

// StepCheckpoint is one ScenarioTimeStep's published, persistable state:
// everything a replay or inspection tool needs after Scenario.Advance
// returns, matching the produced-output boundary spec.md §6.2 draws around
// the engine (this struct is built from, never by, the engine).
type StepCheckpoint struct {
	ScenarioID      string
	Step            uint64
	At              time.Time
	Outcome         string
	Area            float64
	PerimeterLength float64
	Fires           []FireDTO
}

// BuildStepCheckpoint projects a live Scenario's current state into a
// StepCheckpoint, the DTO conversion a host performs after every Advance
// call it chooses to persist.
func BuildStepCheckpoint(scenarioID string, s *scenario.Scenario, outcome scenario.Outcome) StepCheckpoint {
	cp := StepCheckpoint{
		ScenarioID: scenarioID,
		Step:       s.CurrentStep,
		At:         s.CurrentTime,
		Outcome:    outcome.String(),
	}
	for id, sf := range s.Fires {
		cp.Area += sf.Area()
		cp.PerimeterLength += sf.PerimeterLength()
		fire := FireDTO{
			FireID:   id,
			State:    string(sf.Fire.State),
			Exterior: frontToDTO(sf.Exterior),
		}
		for _, h := range sf.Holes {
			fire.Holes = append(fire.Holes, frontToDTO(h))
		}
		cp.Fires = append(cp.Fires, fire)
	}
	return cp
}

func frontToDTO(front *firegeom.FireFront) FrontDTO {
	dto := FrontDTO{Points: make([]FirePointDTO, 0, front.VertexCount())}
	front.Walk(func(idx int32, p *firegeom.FirePoint) bool {
		dto.Points = append(dto.Points, FirePointDTO{
			X: p.X, Y: p.Y,
			Status:    p.Status.String(),
			VectorROS: p.VectorROS,
		})
		return true
	})
	return dto
}

// CheckpointStore persists and retrieves StepCheckpoints, grounded on
// internal/lidar's AnalysisRunStore InsertRun/GetRun/ListRuns shape.
type CheckpointStore struct {
	db *sql.DB
}

// InsertStep persists one step checkpoint. Re-inserting the same
// (scenario_id, step) pair replaces the prior row.
func (s *CheckpointStore) InsertStep(cp StepCheckpoint) error {
	firesJSON, err := json.Marshal(cp.Fires)
	if err != nil {
		return wrapf("marshal checkpoint fires: %v", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO scenario_checkpoints
			(scenario_id, step, at_unix_nanos, outcome, area, perimeter_length, fires_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (scenario_id, step) DO UPDATE SET
			at_unix_nanos = excluded.at_unix_nanos,
			outcome = excluded.outcome,
			area = excluded.area,
			perimeter_length = excluded.perimeter_length,
			fires_json = excluded.fires_json
	`, cp.ScenarioID, cp.Step, cp.At.UnixNano(), cp.Outcome, cp.Area, cp.PerimeterLength, string(firesJSON))
	if err != nil {
		return wrapf("insert checkpoint: %v", err)
	}
	return nil
}

// GetStep retrieves one scenario's checkpoint at step.
func (s *CheckpointStore) GetStep(scenarioID string, step uint64) (*StepCheckpoint, error) {
	row := s.db.QueryRow(`
		SELECT scenario_id, step, at_unix_nanos, outcome, area, perimeter_length, fires_json
		FROM scenario_checkpoints WHERE scenario_id = ? AND step = ?
	`, scenarioID, step)
	return scanCheckpoint(row)
}

// ListSteps retrieves every checkpoint for scenarioID in step order,
// newest last.
func (s *CheckpointStore) ListSteps(scenarioID string) ([]*StepCheckpoint, error) {
	rows, err := s.db.Query(`
		SELECT scenario_id, step, at_unix_nanos, outcome, area, perimeter_length, fires_json
		FROM scenario_checkpoints WHERE scenario_id = ? ORDER BY step ASC
	`, scenarioID)
	if err != nil {
		return nil, wrapf("list checkpoints: %v", err)
	}
	defer rows.Close()

	var out []*StepCheckpoint
	for rows.Next() {
		cp, err := scanCheckpoint(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCheckpoint(row rowScanner) (*StepCheckpoint, error) {
	var cp StepCheckpoint
	var atNanos int64
	var firesJSON string
	if err := row.Scan(&cp.ScenarioID, &cp.Step, &atNanos, &cp.Outcome, &cp.Area, &cp.PerimeterLength, &firesJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, fireerrors.Wrap("storage", fireerrors.KindStorage, err)
		}
		return nil, wrapf("scan checkpoint: %v", err)
	}
	cp.At = time.Unix(0, atNanos).UTC()
	if err := json.Unmarshal([]byte(firesJSON), &cp.Fires); err != nil {
		return nil, wrapf("unmarshal checkpoint fires: %v", err)
	}
	return &cp, nil
}
