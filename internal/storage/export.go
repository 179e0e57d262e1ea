package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/steersim/internal/sim"
)

type ExportData struct {
	ID         string             `json:"id"`
	Scenario   string             `json:"scenario"`
	Vehicle    string             `json:"vehicle"`
	Controller string             `json:"controller"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	Ticks      []sim.Tick         `json:"ticks"`
	Metrics    map[string]float64 `json:"metrics"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, ticks []sim.Tick) error {
	data := ExportData{
		ID:         meta.ID,
		Scenario:   meta.Scenario,
		Vehicle:    meta.Vehicle,
		Controller: meta.Controller,
		Dt:         meta.Dt,
		Duration:   meta.Duration,
		Steps:      len(ticks),
		Ticks:      ticks,
		Metrics:    meta.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSONStdout(meta *RunMetadata, ticks []sim.Tick) error {
	return ExportJSON(os.Stdout, meta, ticks)
}

func ExportCSV(w io.Writer, ticks []sim.Tick) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()
	return writeTicks(cw, ticks)
}
