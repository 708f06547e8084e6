// Package features converts a user-submitted laptop specification into the
// fixed-order numeric vector the regression model expects. Categorical
// labels are translated through the trained encoders, booleans become 0/1,
// numerics pass through unchanged, and the result is reindexed against the
// model's feature schema.
package features

import (
	"fmt"

	"laptop-pricer/internal/artifacts"
)

// Feature column names as recorded in the trained schema.
const (
	ColCompany              = "Company"
	ColTypeName             = "TypeName"
	ColOS                   = "OS"
	ColScreen               = "Screen"
	ColCPUCompany           = "CPU_company"
	ColCPUModel             = "CPU_model"
	ColGPUCompany           = "GPU_company"
	ColGPUModel             = "GPU_model"
	ColPrimaryStorageType   = "PrimaryStorageType"
	ColSecondaryStorageType = "SecondaryStorageType"
	ColRam                  = "Ram"
	ColWeight               = "Weight"
	ColInches               = "Inches"
	ColScreenW              = "ScreenW"
	ColScreenH              = "ScreenH"
	ColCPUFreq              = "CPU_freq"
	ColPrimaryStorage       = "PrimaryStorage"
	ColSecondaryStorage     = "SecondaryStorage"
	ColTouchscreen          = "Touchscreen"
	ColRetinaDisplay        = "RetinaDisplay"
	ColIPSPanel             = "IPSpanel"
)

// CategoricalColumns lists the features that require an encoder, in form
// display order.
var CategoricalColumns = []string{
	ColCompany,
	ColTypeName,
	ColOS,
	ColScreen,
	ColCPUCompany,
	ColCPUModel,
	ColGPUCompany,
	ColGPUModel,
	ColPrimaryStorageType,
	ColSecondaryStorageType,
}

// LaptopSpec is one raw submission: categorical values as human-readable
// labels, numerics in native units, booleans as Go bools. The same struct
// backs both the HTML form and the JSON API.
type LaptopSpec struct {
	Company              string  `json:"company"`
	TypeName             string  `json:"type_name"`
	OS                   string  `json:"os"`
	Screen               string  `json:"screen"`
	CPUCompany           string  `json:"cpu_company"`
	CPUModel             string  `json:"cpu_model"`
	GPUCompany           string  `json:"gpu_company"`
	GPUModel             string  `json:"gpu_model"`
	PrimaryStorageType   string  `json:"primary_storage_type"`
	SecondaryStorageType string  `json:"secondary_storage_type"`
	RamGB                int     `json:"ram_gb"`
	WeightKG             float64 `json:"weight_kg"`
	Inches               float64 `json:"inches"`
	ScreenW              int     `json:"screen_w"`
	ScreenH              int     `json:"screen_h"`
	CPUFreqGHz           float64 `json:"cpu_freq_ghz"`
	PrimaryStorageGB     int     `json:"primary_storage_gb"`
	SecondaryStorageGB   int     `json:"secondary_storage_gb"`
	Touchscreen          bool    `json:"touchscreen"`
	RetinaDisplay        bool    `json:"retina_display"`
	IPSPanel             bool    `json:"ips_panel"`
}

// Record maps feature name to numeric value before schema reordering.
type Record map[string]float64

// Validate range-checks the numeric inputs before assembly. Limits match
// the form constraints; anything outside them never reaches the model.
func (s *LaptopSpec) Validate() error {
	if s.RamGB < 2 || s.RamGB > 64 {
		return fmt.Errorf("ram must be between 2 and 64 GB, got %d", s.RamGB)
	}
	if s.WeightKG < 0.5 || s.WeightKG > 5.0 {
		return fmt.Errorf("weight must be between 0.5 and 5.0 kg, got %.1f", s.WeightKG)
	}
	if s.Inches < 10.0 || s.Inches > 20.0 {
		return fmt.Errorf("screen size must be between 10.0 and 20.0 inches, got %.1f", s.Inches)
	}
	if s.ScreenW < 800 || s.ScreenW > 4000 {
		return fmt.Errorf("screen width must be between 800 and 4000 px, got %d", s.ScreenW)
	}
	if s.ScreenH < 600 || s.ScreenH > 4000 {
		return fmt.Errorf("screen height must be between 600 and 4000 px, got %d", s.ScreenH)
	}
	if s.CPUFreqGHz < 1.0 || s.CPUFreqGHz > 5.0 {
		return fmt.Errorf("cpu frequency must be between 1.0 and 5.0 GHz, got %.1f", s.CPUFreqGHz)
	}
	if s.PrimaryStorageGB < 0 || s.PrimaryStorageGB > 4096 {
		return fmt.Errorf("primary storage must be between 0 and 4096 GB, got %d", s.PrimaryStorageGB)
	}
	if s.SecondaryStorageGB < 0 || s.SecondaryStorageGB > 4096 {
		return fmt.Errorf("secondary storage must be between 0 and 4096 GB, got %d", s.SecondaryStorageGB)
	}
	return nil
}

// Assemble translates a spec into a Record keyed by feature name.
// An unrecognized categorical label fails the whole assembly; no partial
// record is returned and nothing is guessed.
func Assemble(spec *LaptopSpec, bundle *artifacts.Bundle) (Record, error) {
	labels := map[string]string{
		ColCompany:              spec.Company,
		ColTypeName:             spec.TypeName,
		ColOS:                   spec.OS,
		ColScreen:               spec.Screen,
		ColCPUCompany:           spec.CPUCompany,
		ColCPUModel:             spec.CPUModel,
		ColGPUCompany:           spec.GPUCompany,
		ColGPUModel:             spec.GPUModel,
		ColPrimaryStorageType:   spec.PrimaryStorageType,
		ColSecondaryStorageType: spec.SecondaryStorageType,
	}

	record := make(Record, len(labels)+11)

	for _, col := range CategoricalColumns {
		enc, ok := bundle.Encoder(col)
		if !ok {
			return nil, fmt.Errorf("no encoder for feature %s", col)
		}
		code, err := enc.Encode(labels[col])
		if err != nil {
			return nil, fmt.Errorf("feature %s: %w", col, err)
		}
		record[col] = float64(code)
	}

	record[ColTouchscreen] = boolToFloat(spec.Touchscreen)
	record[ColRetinaDisplay] = boolToFloat(spec.RetinaDisplay)
	record[ColIPSPanel] = boolToFloat(spec.IPSPanel)

	record[ColRam] = float64(spec.RamGB)
	record[ColWeight] = spec.WeightKG
	record[ColInches] = spec.Inches
	record[ColScreenW] = float64(spec.ScreenW)
	record[ColScreenH] = float64(spec.ScreenH)
	record[ColCPUFreq] = spec.CPUFreqGHz
	record[ColPrimaryStorage] = float64(spec.PrimaryStorageGB)
	record[ColSecondaryStorage] = float64(spec.SecondaryStorageGB)

	return record, nil
}

// Vectorize reindexes a record against the schema column order. Schema
// columns absent from the record default to zero; record entries outside
// the schema are dropped. The output always has exactly len(columns)
// entries in schema order.
func Vectorize(record Record, columns []string) []float64 {
	vector := make([]float64, len(columns))
	for i, col := range columns {
		vector[i] = record[col]
	}
	return vector
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
