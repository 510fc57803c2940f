package converters

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// modelDoc mirrors the COBRA JSON/YAML layout.
type modelDoc struct {
	ID           string            `json:"id" yaml:"id" validate:"required"`
	Name         string            `json:"name,omitempty" yaml:"name,omitempty"`
	Compartments map[string]string `json:"compartments,omitempty" yaml:"compartments,omitempty"`
	Metabolites  []metaboliteDoc   `json:"metabolites" yaml:"metabolites" validate:"dive"`
	Reactions    []reactionDoc     `json:"reactions" yaml:"reactions" validate:"dive"`
	Genes        []geneDoc         `json:"genes" yaml:"genes" validate:"dive"`
	Version      string            `json:"version,omitempty" yaml:"version,omitempty"`
}

type metaboliteDoc struct {
	ID          string `json:"id" yaml:"id" validate:"required"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Compartment string `json:"compartment,omitempty" yaml:"compartment,omitempty"`
	Formula     string `json:"formula,omitempty" yaml:"formula,omitempty"`
	Charge      int    `json:"charge,omitempty" yaml:"charge,omitempty"`
}

type reactionDoc struct {
	ID                   string             `json:"id" yaml:"id" validate:"required"`
	Name                 string             `json:"name,omitempty" yaml:"name,omitempty"`
	Metabolites          map[string]float64 `json:"metabolites" yaml:"metabolites" validate:"dive,keys,required,endkeys,ne=0"`
	LowerBound           float64            `json:"lower_bound" yaml:"lower_bound" validate:"ltefield=UpperBound"`
	UpperBound           float64            `json:"upper_bound" yaml:"upper_bound"`
	GeneReactionRule     string             `json:"gene_reaction_rule" yaml:"gene_reaction_rule"`
	Subsystem            string             `json:"subsystem,omitempty" yaml:"subsystem,omitempty"`
	ObjectiveCoefficient float64            `json:"objective_coefficient,omitempty" yaml:"objective_coefficient,omitempty"`
}

type geneDoc struct {
	ID   string `json:"id" yaml:"id" validate:"required"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// check validates doc and returns the first failure as *ValidationError.
func check(doc *modelDoc) error {
	err := validate.Struct(doc)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return &ValidationError{Msg: err.Error(), Err: err}
	}
	fe := errs[0]
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	return &ValidationError{Field: field, Msg: describe(fe)}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "ltefield":
		return "lower bound exceeds upper bound"
	case "ne":
		return "stoichiometric coefficient must not be zero"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
