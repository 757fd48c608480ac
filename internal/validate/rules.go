package validate

import (
	"log"

	"github.com/go-playground/validator/v10"

	"github.com/evcraddock/house-market/internal/preference"
	"github.com/evcraddock/house-market/internal/publication"
	"github.com/evcraddock/house-market/internal/visit"
)

// registerRules adds the marketplace-specific tags and struct rules.
func registerRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("registering validation tag %q: %v", tag, err)
		}
	}

	mustRegister("visit_status", validateVisitStatus)
	mustRegister("publication_state", validatePublicationState)

	v.RegisterStructValidation(validatePreferenceDraft, preference.Draft{})
}

func validateVisitStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return visit.Status(value).IsValid()
}

func validatePublicationState(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	for _, s := range publication.ValidStates {
		if publication.State(value) == s {
			return true
		}
	}
	return false
}

// validatePreferenceDraft enforces which optional fields each search mode needs.
func validatePreferenceDraft(sl validator.StructLevel) {
	d := sl.Current().Interface().(preference.Draft)
	mode := string(d.SearchMode)

	if d.SearchMode.UsesLocation() && isBlank(d.Region) && isBlank(d.District) {
		sl.ReportError(d.Region, "region", "Region", "required_for_mode", mode)
	}
	if d.SearchMode.UsesProximity() {
		if d.RadiusKm == nil {
			sl.ReportError(d.RadiusKm, "radioKm", "RadiusKm", "required_for_mode", mode)
		}
		if d.Latitude == nil {
			sl.ReportError(d.Latitude, "latitud", "Latitude", "required_for_mode", mode)
		}
		if d.Longitude == nil {
			sl.ReportError(d.Longitude, "longitud", "Longitude", "required_for_mode", mode)
		}
	}
}

func isBlank(s *string) bool {
	return s == nil || *s == ""
}
