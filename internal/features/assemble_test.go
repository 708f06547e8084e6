package features

import (
	"errors"
	"testing"
	"time"

	"laptop-pricer/internal/artifacts"
	"laptop-pricer/internal/ml"
)

var testVocab = map[string][]string{
	ColCompany:              {"Acer", "Apple", "Asus", "Dell", "HP", "Lenovo"},
	ColTypeName:             {"2 in 1 Convertible", "Gaming", "Notebook", "Ultrabook"},
	ColOS:                   {"Linux", "Mac", "No OS", "Windows"},
	ColScreen:               {"4K Ultra HD", "Full HD", "Quad HD+", "Standard"},
	ColCPUCompany:           {"AMD", "Intel"},
	ColCPUModel:             {"Core i3", "Core i5", "Core i7", "Ryzen 5"},
	ColGPUCompany:           {"AMD", "Intel", "Nvidia"},
	ColGPUModel:             {"GeForce GTX 1050", "HD Graphics", "Radeon Vega 8"},
	ColPrimaryStorageType:   {"Flash Storage", "HDD", "SSD"},
	ColSecondaryStorageType: {"HDD", "None", "SSD"},
}

func testBundle(t *testing.T) *artifacts.Bundle {
	t.Helper()

	encoders := make(map[string]*artifacts.LabelEncoder, len(testVocab))
	for feature, classes := range testVocab {
		enc, err := artifacts.NewLabelEncoder(classes)
		if err != nil {
			t.Fatalf("build encoder %s: %v", feature, err)
		}
		encoders[feature] = enc
	}

	nodes := []ml.TreeNode{{IsLeaf: true, Value: 850}}
	model, err := ml.NewRegressionTree(nodes, "test", time.Now(), 0)
	if err != nil {
		t.Fatalf("build model: %v", err)
	}

	return &artifacts.Bundle{
		Model:    model,
		Encoders: encoders,
		Columns:  schemaColumns(),
		LoadedAt: time.Now(),
	}
}

func schemaColumns() []string {
	return []string{
		ColCompany, ColTypeName, ColInches, ColRam, ColOS, ColWeight,
		ColScreen, ColScreenW, ColScreenH, ColTouchscreen, ColIPSPanel,
		ColRetinaDisplay, ColCPUCompany, ColCPUFreq, ColCPUModel,
		ColPrimaryStorage, ColSecondaryStorage, ColPrimaryStorageType,
		ColSecondaryStorageType, ColGPUCompany, ColGPUModel,
	}
}

func validSpec() *LaptopSpec {
	return &LaptopSpec{
		Company:              "Dell",
		TypeName:             "Notebook",
		OS:                   "Windows",
		Screen:               "Full HD",
		CPUCompany:           "Intel",
		CPUModel:             "Core i5",
		GPUCompany:           "Intel",
		GPUModel:             "HD Graphics",
		PrimaryStorageType:   "SSD",
		SecondaryStorageType: "None",
		RamGB:                8,
		WeightKG:             2.1,
		Inches:               15.6,
		ScreenW:              1920,
		ScreenH:              1080,
		CPUFreqGHz:           2.5,
		PrimaryStorageGB:     256,
		SecondaryStorageGB:   0,
	}
}

func TestAssembleScenario(t *testing.T) {
	bundle := testBundle(t)
	spec := validSpec()

	record, err := Assemble(spec, bundle)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	// Categorical fields carry the trained integer codes.
	if record[ColCompany] != 3 { // "Dell" is index 3
		t.Errorf("Company code = %v, want 3", record[ColCompany])
	}
	if record[ColTypeName] != 2 { // "Notebook" is index 2
		t.Errorf("TypeName code = %v, want 2", record[ColTypeName])
	}
	if record[ColOS] != 3 { // "Windows" is index 3
		t.Errorf("OS code = %v, want 3", record[ColOS])
	}
	if record[ColSecondaryStorageType] != 1 { // "None" is index 1
		t.Errorf("SecondaryStorageType code = %v, want 1", record[ColSecondaryStorageType])
	}

	// Booleans encode as 0/1.
	if record[ColTouchscreen] != 0 || record[ColRetinaDisplay] != 0 || record[ColIPSPanel] != 0 {
		t.Errorf("boolean features should all be 0, got %v %v %v",
			record[ColTouchscreen], record[ColRetinaDisplay], record[ColIPSPanel])
	}

	// Numerics pass through unchanged.
	if record[ColRam] != 8 {
		t.Errorf("Ram = %v, want 8", record[ColRam])
	}
	if record[ColWeight] != 2.1 {
		t.Errorf("Weight = %v, want 2.1", record[ColWeight])
	}
	if record[ColSecondaryStorage] != 0 {
		t.Errorf("SecondaryStorage = %v, want 0", record[ColSecondaryStorage])
	}

	vector := Vectorize(record, bundle.Columns)
	price, err := bundle.Model.Predict(vector)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if price < 0 {
		t.Errorf("predicted price should be >= 0, got %v", price)
	}
}

func TestAssembleBooleansSet(t *testing.T) {
	bundle := testBundle(t)
	spec := validSpec()
	spec.Touchscreen = true
	spec.IPSPanel = true

	record, err := Assemble(spec, bundle)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	if record[ColTouchscreen] != 1 {
		t.Errorf("Touchscreen = %v, want 1", record[ColTouchscreen])
	}
	if record[ColIPSPanel] != 1 {
		t.Errorf("IPSpanel = %v, want 1", record[ColIPSPanel])
	}
	if record[ColRetinaDisplay] != 0 {
		t.Errorf("RetinaDisplay = %v, want 0", record[ColRetinaDisplay])
	}
}

func TestAssembleUnknownLabel(t *testing.T) {
	bundle := testBundle(t)
	spec := validSpec()
	spec.Company = "Commodore"

	record, err := Assemble(spec, bundle)
	if err == nil {
		t.Fatal("expected error for unknown company label")
	}
	if !errors.Is(err, artifacts.ErrUnknownLabel) {
		t.Errorf("expected ErrUnknownLabel, got %v", err)
	}
	if record != nil {
		t.Error("no record should be produced on unknown label")
	}
}

func TestVectorizeSchemaOrder(t *testing.T) {
	bundle := testBundle(t)

	record, err := Assemble(validSpec(), bundle)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	vector := Vectorize(record, bundle.Columns)
	if len(vector) != len(bundle.Columns) {
		t.Fatalf("vector length = %d, want %d", len(vector), len(bundle.Columns))
	}

	for i, col := range bundle.Columns {
		if vector[i] != record[col] {
			t.Errorf("column %s at %d: vector has %v, record has %v", col, i, vector[i], record[col])
		}
	}
}

func TestVectorizeMissingAndExtra(t *testing.T) {
	record := Record{
		ColRam:      16,
		"Bogus":     99, // not in the schema, must be dropped
		ColCompany:  2,
	}
	columns := []string{ColCompany, ColRam, ColWeight}

	vector := Vectorize(record, columns)
	if len(vector) != 3 {
		t.Fatalf("vector length = %d, want 3", len(vector))
	}
	if vector[0] != 2 || vector[1] != 16 {
		t.Errorf("unexpected vector values: %v", vector)
	}
	if vector[2] != 0 { // Weight missing from record defaults to zero
		t.Errorf("missing column should default to 0, got %v", vector[2])
	}
}

func TestValidateBoundaries(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*LaptopSpec)
		valid  bool
	}{
		{"ram lower bound", func(s *LaptopSpec) { s.RamGB = 2 }, true},
		{"ram upper bound", func(s *LaptopSpec) { s.RamGB = 64 }, true},
		{"ram below range", func(s *LaptopSpec) { s.RamGB = 1 }, false},
		{"ram above range", func(s *LaptopSpec) { s.RamGB = 65 }, false},
		{"weight below range", func(s *LaptopSpec) { s.WeightKG = 0.4 }, false},
		{"weight above range", func(s *LaptopSpec) { s.WeightKG = 5.1 }, false},
		{"inches below range", func(s *LaptopSpec) { s.Inches = 9.9 }, false},
		{"screen width below range", func(s *LaptopSpec) { s.ScreenW = 799 }, false},
		{"screen height above range", func(s *LaptopSpec) { s.ScreenH = 4001 }, false},
		{"cpu freq above range", func(s *LaptopSpec) { s.CPUFreqGHz = 5.1 }, false},
		{"primary storage above range", func(s *LaptopSpec) { s.PrimaryStorageGB = 4097 }, false},
		{"secondary storage zero", func(s *LaptopSpec) { s.SecondaryStorageGB = 0 }, true},
		{"secondary storage negative", func(s *LaptopSpec) { s.SecondaryStorageGB = -1 }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := validSpec()
			tc.mutate(spec)
			err := spec.Validate()
			if tc.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tc.valid && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSecondaryStorageNoneTakesNormalPath(t *testing.T) {
	bundle := testBundle(t)
	spec := validSpec()
	spec.SecondaryStorageType = "None"
	spec.SecondaryStorageGB = 0

	if err := spec.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	record, err := Assemble(spec, bundle)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if record[ColSecondaryStorage] != 0 {
		t.Errorf("SecondaryStorage = %v, want 0", record[ColSecondaryStorage])
	}
	if record[ColSecondaryStorageType] != 1 {
		t.Errorf("SecondaryStorageType code = %v, want 1", record[ColSecondaryStorageType])
	}
}
