// Package export writes finished runs to disk as CSV trajectories or JSON
// documents.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/matheuswhite/aule/internal/loop"
)

// Data is the JSON document written for a run: the scenario identification
// and the full trajectories.
type Data struct {
	Scenario   string             `json:"scenario"`
	Solver     string             `json:"solver"`
	Controller string             `json:"controller"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	Times      []float64          `json:"times"`
	Setpoints  []float64          `json:"setpoints"`
	Controls   []float64          `json:"controls"`
	Outputs    []float64          `json:"outputs"`
	Indices    map[string]float64 `json:"indices"`
}

// NewData assembles the document from a result.
func NewData(scenario, solver, controller string, dt, duration float64, result *loop.Result) Data {
	return Data{
		Scenario:   scenario,
		Solver:     solver,
		Controller: controller,
		Dt:         dt,
		Duration:   duration,
		Steps:      len(result.Times),
		Times:      result.Times,
		Setpoints:  result.Setpoints,
		Controls:   result.Controls,
		Outputs:    result.Outputs,
		Indices:    result.Indices,
	}
}

// JSON writes the document to path, indented.
func JSON(path string, data Data) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeJSON(file, data)
}

// JSONStdout writes the document to standard output.
func JSONStdout(data Data) error {
	return writeJSON(os.Stdout, data)
}

func writeJSON(w io.Writer, data Data) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// CSV writes the trajectories to path with a time,setpoint,control,output
// header.
func CSV(path string, result *loop.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteCSV(file, result)
}

// WriteCSV streams the trajectories to w.
func WriteCSV(w io.Writer, result *loop.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"time", "setpoint", "control", "output"}); err != nil {
		return err
	}
	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.Setpoints[i], 'f', 6, 64),
			strconv.FormatFloat(result.Controls[i], 'f', 6, 64),
			strconv.FormatFloat(result.Outputs[i], 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
