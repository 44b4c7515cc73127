package storage

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/wise-wildfire/firegrowth/internal/asset"
	"github.com/wise-wildfire/firegrowth/internal/fireerrors"
)

// PathPointDTO is the JSON-serializable projection of one asset.PathPoint.
type PathPointDTO struct {
	X    float64   `json:"x"`
	Y    float64   `json:"y"`
	Time time.Time `json:"time"`
}

// CriticalPathRecord is one asset geometry's persisted critical path,
// keyed the same way AssetTracker addresses a geometry: the asset's name
// plus its index within that asset's Geometries slice.
type CriticalPathRecord struct {
	ScenarioID    string
	AssetName     string
	GeometryIndex int
	ArrivalTime   time.Time
	Path          []PathPointDTO
}

// BuildCriticalPathRecord converts a tracker.BuildCriticalPath result into a
// persistable record.
func BuildCriticalPathRecord(scenarioID, assetName string, geometryIndex int, arrivalTime time.Time, path []asset.PathPoint) CriticalPathRecord {
	rec := CriticalPathRecord{
		ScenarioID:    scenarioID,
		AssetName:     assetName,
		GeometryIndex: geometryIndex,
		ArrivalTime:   arrivalTime,
		Path:          make([]PathPointDTO, len(path)),
	}
	for i, p := range path {
		rec.Path[i] = PathPointDTO{X: p.X, Y: p.Y, Time: p.Time}
	}
	return rec
}

// CriticalPathStore persists and retrieves CriticalPathRecords.
type CriticalPathStore struct {
	db *sql.DB
}

// Insert persists one critical path. Re-inserting the same
// (scenario_id, asset_name, geometry_index) triple replaces the prior row.
func (s *CriticalPathStore) Insert(rec CriticalPathRecord) error {
	pathJSON, err := json.Marshal(rec.Path)
	if err != nil {
		return wrapf("marshal critical path: %v", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO asset_critical_paths
			(scenario_id, asset_name, geometry_index, arrival_unix_nanos, path_json)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (scenario_id, asset_name, geometry_index) DO UPDATE SET
			arrival_unix_nanos = excluded.arrival_unix_nanos,
			path_json = excluded.path_json
	`, rec.ScenarioID, rec.AssetName, rec.GeometryIndex, rec.ArrivalTime.UnixNano(), string(pathJSON))
	if err != nil {
		return wrapf("insert critical path: %v", err)
	}
	return nil
}

// Get retrieves one persisted critical path.
func (s *CriticalPathStore) Get(scenarioID, assetName string, geometryIndex int) (*CriticalPathRecord, error) {
	var rec CriticalPathRecord
	var arrivalNanos int64
	var pathJSON string
	err := s.db.QueryRow(`
		SELECT scenario_id, asset_name, geometry_index, arrival_unix_nanos, path_json
		FROM asset_critical_paths WHERE scenario_id = ? AND asset_name = ? AND geometry_index = ?
	`, scenarioID, assetName, geometryIndex).Scan(
		&rec.ScenarioID, &rec.AssetName, &rec.GeometryIndex, &arrivalNanos, &pathJSON,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fireerrors.Wrap("storage", fireerrors.KindStorage, err)
		}
		return nil, wrapf("get critical path: %v", err)
	}
	rec.ArrivalTime = time.Unix(0, arrivalNanos).UTC()
	if err := json.Unmarshal([]byte(pathJSON), &rec.Path); err != nil {
		return nil, wrapf("unmarshal critical path: %v", err)
	}
	return &rec, nil
}
