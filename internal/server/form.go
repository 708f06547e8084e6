package server

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"laptop-pricer/internal/features"
)

type formPage struct {
	Options      map[string][]string
	Spec         features.LaptopSpec
	Price        string
	Error        string
	ModelVersion string
}

// defaultSpec pre-fills the form with a typical mid-range configuration.
func defaultSpec() features.LaptopSpec {
	return features.LaptopSpec{
		RamGB:            8,
		WeightKG:         1.5,
		Inches:           15.6,
		ScreenW:          1920,
		ScreenH:          1080,
		CPUFreqGHz:       2.5,
		PrimaryStorageGB: 512,
	}
}

func (s *Server) formOptions() map[string][]string {
	options := make(map[string][]string, len(features.CategoricalColumns))
	for _, col := range features.CategoricalColumns {
		options[col] = s.bundle.Options(col)
	}
	return options
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	s.renderForm(w, formPage{
		Options:      s.formOptions(),
		Spec:         defaultSpec(),
		ModelVersion: s.predictor.ModelVersion(),
	})
}

// handleFormPredict runs the submitted form through the prediction path.
// The price line renders only on success; on any failure the form comes
// back editable with the submitted values and an error banner.
func (s *Server) handleFormPredict(w http.ResponseWriter, r *http.Request) {
	page := formPage{
		Options:      s.formOptions(),
		Spec:         defaultSpec(),
		ModelVersion: s.predictor.ModelVersion(),
	}

	spec, err := parseFormSpec(r)
	if err != nil {
		page.Error = err.Error()
		s.renderForm(w, page)
		return
	}
	page.Spec = *spec

	price, err := s.predict(spec)
	if err != nil {
		switch {
		case errors.Is(err, errInvalidInput), errors.Is(err, errUnknownCategory):
			page.Error = err.Error()
		default:
			log.Error().Err(err).Msg("prediction failed")
			page.Error = "an unexpected error occurred during prediction, please try again"
		}
		s.renderForm(w, page)
		return
	}

	page.Price = formatEUR(price)
	s.renderForm(w, page)
}

func (s *Server) renderForm(w http.ResponseWriter, page formPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := formTemplate.Execute(w, page); err != nil {
		log.Error().Err(err).Msg("template render failed")
	}
}

func parseFormSpec(r *http.Request) (*features.LaptopSpec, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: malformed form submission", errInvalidInput)
	}

	spec := &features.LaptopSpec{
		Company:              r.FormValue("company"),
		TypeName:             r.FormValue("type_name"),
		OS:                   r.FormValue("os"),
		Screen:               r.FormValue("screen"),
		CPUCompany:           r.FormValue("cpu_company"),
		CPUModel:             r.FormValue("cpu_model"),
		GPUCompany:           r.FormValue("gpu_company"),
		GPUModel:             r.FormValue("gpu_model"),
		PrimaryStorageType:   r.FormValue("primary_storage_type"),
		SecondaryStorageType: r.FormValue("secondary_storage_type"),
		Touchscreen:          r.FormValue("touchscreen") == "Yes",
		RetinaDisplay:        r.FormValue("retina_display") == "Yes",
		IPSPanel:             r.FormValue("ips_panel") == "Yes",
	}

	var err error
	if spec.RamGB, err = parseIntField(r, "ram_gb"); err != nil {
		return nil, err
	}
	if spec.ScreenW, err = parseIntField(r, "screen_w"); err != nil {
		return nil, err
	}
	if spec.ScreenH, err = parseIntField(r, "screen_h"); err != nil {
		return nil, err
	}
	if spec.PrimaryStorageGB, err = parseIntField(r, "primary_storage_gb"); err != nil {
		return nil, err
	}
	if spec.SecondaryStorageGB, err = parseIntField(r, "secondary_storage_gb"); err != nil {
		return nil, err
	}
	if spec.WeightKG, err = parseFloatField(r, "weight_kg"); err != nil {
		return nil, err
	}
	if spec.Inches, err = parseFloatField(r, "inches"); err != nil {
		return nil, err
	}
	if spec.CPUFreqGHz, err = parseFloatField(r, "cpu_freq_ghz"); err != nil {
		return nil, err
	}

	return spec, nil
}

func parseIntField(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(r.FormValue(name)))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number", errInvalidInput, name)
	}
	return v, nil
}

func parseFloatField(r *http.Request, name string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue(name)), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", errInvalidInput, name)
	}
	return v, nil
}

// formatEUR renders a price as a euro amount with thousands separators,
// e.g. €1,234.56.
func formatEUR(price float64) string {
	s := strconv.FormatFloat(price, 'f', 2, 64)

	parts := strings.SplitN(s, ".", 2)
	whole := parts[0]

	var grouped strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	return "€" + grouped.String() + "." + parts[1]
}

var formTemplate = template.Must(template.New("form").Parse(formHTML))
