package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/steersim/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Scenario   string             `json:"scenario"`
	Vehicle    string             `json:"vehicle"`
	Controller string             `json:"controller"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Metrics    map[string]float64 `json:"metrics"`
}

var tickHeader = []string{"time", "desired", "measured", "road", "speed", "steer"}

func (s *Store) Save(scenario, vehicle, controller string, dt, duration float64, seed int64, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Scenario:   scenario,
		Vehicle:    vehicle,
		Controller: controller,
		Timestamp:  time.Now(),
		Seed:       seed,
		Dt:         dt,
		Duration:   duration,
		Metrics:    result.Metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "ticks.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := writeTicks(w, result.Ticks); err != nil {
		return "", err
	}

	return runID, nil
}

func writeTicks(w *csv.Writer, ticks []sim.Tick) error {
	if err := w.Write(tickHeader); err != nil {
		return err
	}
	for _, tk := range ticks {
		row := []string{
			strconv.FormatFloat(tk.T, 'f', 6, 64),
			strconv.FormatFloat(tk.Desired, 'f', 6, 64),
			strconv.FormatFloat(tk.Measured, 'f', 6, 64),
			strconv.FormatFloat(tk.RoadLatAccel, 'f', 6, 64),
			strconv.FormatFloat(tk.Speed, 'f', 6, 64),
			strconv.FormatFloat(tk.Steer, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadTicks(runID string) ([]sim.Tick, error) {
	csvPath := filepath.Join(s.baseDir, runID, "ticks.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []sim.Tick{}, nil
	}

	ticks := make([]sim.Tick, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < len(tickHeader) {
			continue
		}

		vals := make([]float64, len(tickHeader))
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}

		ticks = append(ticks, sim.Tick{
			T:            vals[0],
			Desired:      vals[1],
			Measured:     vals[2],
			RoadLatAccel: vals[3],
			Speed:        vals[4],
			Steer:        vals[5],
		})
	}

	return ticks, nil
}
