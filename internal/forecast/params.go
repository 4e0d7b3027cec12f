package forecast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// vocabulary lists every parameter the HIRLAM download endpoint accepts.
var vocabulary = [...]string{
	"Pressure",
	"GeopHeight",
	"Temperature",
	"DewPoint",
	"Humidity",
	"WindUMS",
	"WindVMS",
	"PrecipitationAmount",
	"TotalCloudCover",
	"LowCloudCover",
	"MediumCloudCover",
	"HighCloudCover",
	"Precipitation1h",
	"MaximumWind",
	"WindGust",
	"RadiationGlobalAccumulation",
	"RadiationLWAccumulation",
	"RadiationNetSurfaceLWAccumulation",
	"RadiationNetSurfaceSWAccumulation",
	"VelocityPotential",
	"PseudoAdiabaticPotentialTemperature",
}

var defaultParameters = [...]string{"WindUMS", "WindVMS", "Pressure", "Temperature", "TotalCloudCover"}

var parameterTag = "min=1,dive,oneof=" + strings.Join(vocabulary[:], " ")

// Vocabulary returns the allowed parameter names, sorted.
func Vocabulary() []string {
	v := append([]string(nil), vocabulary[:]...)
	sort.Strings(v)
	return v
}

// DefaultParameters returns the parameter set used when the caller supplies none.
func DefaultParameters() []string {
	return append([]string(nil), defaultParameters[:]...)
}

// ValidateParameters rejects empty sets and any name outside the vocabulary.
func ValidateParameters(params []string) error {
	if err := validate.Var(params, parameterTag); err != nil {
		return fmt.Errorf("%w: allowed parameters: %s", ErrInvalidParameterSet, strings.Join(Vocabulary(), ", "))
	}
	return nil
}

// ParseParameters splits a comma separated list, dropping blanks.
func ParseParameters(s string) []string {
	var params []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			params = append(params, p)
		}
	}
	return params
}
