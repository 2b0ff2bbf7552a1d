package services

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"inspection-backend/apperrors"
	"inspection-backend/database"
	"inspection-backend/models"
)

const (
	categoryFoodBeverages = "food & beverages"
	categoryOther         = "other"
	subCommodityRice      = "rice"

	InspectionSingleDay = "single_day"
	InspectionMultiDay  = "multi_day"

	maxChemicalParametersLen = 5000
)

var (
	commodityCategories = []string{
		"food & beverages",
		"textiles & garments",
		"electronics & electrical",
		"pharmaceuticals",
		"chemicals",
		"automotive",
		"other",
	}

	// "other" is absent on purpose: its sub-commodity is free text.
	subCommodities = map[string][]string{
		"food & beverages":         {"rice", "wheat", "pulses", "spices", "tea&coffee", "oil and seeds"},
		"textiles & garments":      {"cotton", "silk", "wool", "synthetic"},
		"electronics & electrical": {"components", "devices", "home appliances"},
		"pharmaceuticals":          {"apis", "finished products", "medical devices"},
		"chemicals":                {"industrial", "organic", "specialty"},
		"automotive":               {"parts", "accessories"},
	}

	riceTypes = []string{
		"basmati rice", "jasmine rice", "brown rice", "white rice", "wild rice", "arborio rice",
		"black rice", "red rice", "sticky rice", "parboiled rice", "long grain rice",
		"medium grain rice", "short grain rice", "organic rice", "non-gmo rice", "broken rice",
		"rice bran", "rice flour",
	}

	inspectionTypes = []string{InspectionSingleDay, InspectionMultiDay}
)

// ParamLookup resolves parameter template ids. Implementations return an error
// satisfying database.IsNotFound when the id does not exist.
type ParamLookup interface {
	PhysicalParam(ctx context.Context, id uint) (*models.PhyInspectionParam, error)
	ChemicalParam(ctx context.Context, id uint) (*models.ChemInspectionParam, error)
}

// physicalValues are the rice parameters copied from a physical template.
type physicalValues struct {
	Broken             *float64
	Purity             *float64
	YellowKernel       *float64
	DamageKernel       *float64
	RedKernel          *float64
	PaddyKernel        *float64
	ChalkyRice         *float64
	LiveInsects        *float64
	MillingDegree      *float64
	AverageGrainLength *float64
}

type physicalField struct {
	key     string
	value   *float64
	percent bool
}

func (p *physicalValues) fields() []physicalField {
	return []physicalField{
		{"broken", p.Broken, true},
		{"purity", p.Purity, true},
		{"yellowKernel", p.YellowKernel, true},
		{"damageKernel", p.DamageKernel, true},
		{"redKernel", p.RedKernel, true},
		{"paddyKernel", p.PaddyKernel, true},
		{"chalkyRice", p.ChalkyRice, true},
		{"liveInsects", p.LiveInsects, false},
		{"millingDegree", p.MillingDegree, true},
		{"averageGrainLength", p.AverageGrainLength, false},
	}
}

// EnquiryDraft is the state the rules read and fill in, in order.
type EnquiryDraft struct {
	In *EnquiryInput

	category       string
	subCommodity   string
	riceType       string
	inspectionType string

	expectsPredefinedSub bool
	isOtherCategory      bool
	isRiceSubCommodity   bool
	isSpecificRiceType   bool

	physical           physicalValues
	chemicalParameters *string
}

func NewEnquiryDraft(in *EnquiryInput) *EnquiryDraft {
	d := &EnquiryDraft{
		In:             in,
		category:       strings.ToLower(in.CommodityCategory),
		subCommodity:   strings.ToLower(deref(in.SubCommodity)),
		riceType:       strings.ToLower(deref(in.RiceType)),
		inspectionType: strings.ToLower(in.InspectionType),
	}
	_, d.expectsPredefinedSub = subCommodities[d.category]
	d.isOtherCategory = d.category == categoryOther
	d.isRiceSubCommodity = d.category == categoryFoodBeverages && d.subCommodity == subCommodityRice
	d.isSpecificRiceType = d.isRiceSubCommodity && slices.Contains(riceTypes, d.riceType)
	return d
}

// validatesRicePhysical is true when the copied rice parameters are range-checked and persisted.
func (d *EnquiryDraft) validatesRicePhysical() bool {
	return d.In.PhysicalInspection && d.isSpecificRiceType
}

// EnquiryRule is one step of the enquiry pipeline. Rules run in order and the
// first error aborts the enquiry.
type EnquiryRule struct {
	Name  string
	Apply func(ctx context.Context, d *EnquiryDraft, lookup ParamLookup) error
}

var EnquiryRules = []EnquiryRule{
	{"commodityCategory", checkCommodityCategory},
	{"subCommodity", checkSubCommodity},
	{"riceType", checkRiceType},
	{"physicalParameters", resolvePhysicalParams},
	{"chemicalParameters", resolveChemicalParams},
	{"ricePhysicalRanges", checkRicePhysicalParams},
	{"chemicalText", checkChemicalParameters},
	{"inspectionDates", checkInspectionDates},
}

// EvaluateRules applies rules in sequence, short-circuiting on the first failure.
func EvaluateRules(ctx context.Context, rules []EnquiryRule, d *EnquiryDraft, lookup ParamLookup) error {
	for _, r := range rules {
		if err := r.Apply(ctx, d, lookup); err != nil {
			return err
		}
	}
	return nil
}

func checkCommodityCategory(_ context.Context, d *EnquiryDraft, _ ParamLookup) error {
	if !slices.Contains(commodityCategories, d.category) {
		return apperrors.Validation(fmt.Sprintf("Invalid commodity category. Allowed: %s.",
			strings.Join(commodityCategories, ", ")))
	}
	return nil
}

func checkSubCommodity(_ context.Context, d *EnquiryDraft, _ ParamLookup) error {
	sub := d.In.SubCommodity
	switch {
	case d.expectsPredefinedSub:
		if sub == nil || *sub == "" {
			return apperrors.Validation(fmt.Sprintf("Sub-commodity is required for %s.", d.In.CommodityCategory))
		}
		allowed := subCommodities[d.category]
		if !slices.Contains(allowed, d.subCommodity) {
			return apperrors.Validation(fmt.Sprintf("Invalid sub-commodity '%s'. Allowed for %s: %s.",
				*sub, d.In.CommodityCategory, strings.Join(allowed, ", ")))
		}
	case d.isOtherCategory:
		if sub == nil || strings.TrimSpace(*sub) == "" {
			return apperrors.Validation("Sub-commodity is required when 'Other' is selected as commodity category.")
		}
	default:
		if sub != nil && *sub != "" {
			return apperrors.Validation("Sub-commodity should only be provided for commodity categories that require it or when 'Other' is selected.")
		}
	}
	return nil
}

func checkRiceType(_ context.Context, d *EnquiryDraft, _ ParamLookup) error {
	rice := d.In.RiceType
	if d.isRiceSubCommodity {
		if rice == nil || *rice == "" {
			return apperrors.Validation("Rice Type is required when 'Rice' is selected as sub-commodity.")
		}
		if !d.isSpecificRiceType {
			return apperrors.Validation(fmt.Sprintf("Invalid Rice Type '%s'. Allowed for Rice sub-commodity: %s.",
				*rice, strings.Join(riceTypes, ", ")))
		}
		return nil
	}
	if rice != nil && *rice != "" {
		return apperrors.Validation("Rice Type should only be provided when 'Food & Beverages' -> 'Rice' is selected as sub-commodity.")
	}
	return nil
}

func resolvePhysicalParams(ctx context.Context, d *EnquiryDraft, lookup ParamLookup) error {
	if !d.In.PhysicalInspection {
		return nil
	}
	id := d.In.SelectedPhyParamId
	if id == nil || *id == 0 {
		return apperrors.Validation("Physical Inspection is selected but no Physical Parameter ID was provided.")
	}
	p, err := lookup.PhysicalParam(ctx, *id)
	if err != nil {
		if database.IsNotFound(err) {
			return apperrors.NotFound(fmt.Sprintf("Physical Inspection Parameter with ID %d not found.", *id))
		}
		return apperrors.Internal("failed to load physical inspection parameter", err)
	}

	// Rice parameters only travel with a specific rice type.
	if !d.isSpecificRiceType {
		return nil
	}
	milling := ParseLeadingFloat(p.MillingDegree)
	d.physical = physicalValues{
		Broken:             ptr(p.Broken),
		Purity:             ptr(p.Purity),
		YellowKernel:       ptr(p.YellowKernel),
		DamageKernel:       ptr(p.DamageKernel),
		RedKernel:          ptr(p.RedKernel),
		PaddyKernel:        ptr(p.PaddyKernel),
		ChalkyRice:         ptr(p.ChalkyRice),
		LiveInsects:        ptr(p.LiveInsects),
		MillingDegree:      &milling,
		AverageGrainLength: ptr(p.AverageGrainLength),
	}
	return nil
}

func resolveChemicalParams(ctx context.Context, d *EnquiryDraft, lookup ParamLookup) error {
	if !d.In.ChemicalTesting {
		return nil
	}
	id := d.In.SelectedChemParamId
	if id == nil || *id == 0 {
		return apperrors.Validation("Chemical Testing is selected but no Chemical Parameter ID was provided.")
	}
	p, err := lookup.ChemicalParam(ctx, *id)
	if err != nil {
		if database.IsNotFound(err) {
			return apperrors.NotFound(fmt.Sprintf("Chemical Inspection Parameter with ID %d not found.", *id))
		}
		return apperrors.Internal("failed to load chemical inspection parameter", err)
	}
	name := p.ParameterName
	d.chemicalParameters = &name
	return nil
}

func checkRicePhysicalParams(_ context.Context, d *EnquiryDraft, _ ParamLookup) error {
	if !d.In.PhysicalInspection {
		return nil
	}
	if d.validatesRicePhysical() {
		for _, f := range d.physical.fields() {
			readable := readableKey(f.key)
			if f.value == nil {
				return apperrors.Validation(fmt.Sprintf("%s is required for rice physical inspection when a specific rice type is selected, but was not found in the selected physical parameter record (%s).", readable, f.key))
			}
			v := *f.value
			if f.percent && (v < 0 || v > 100) {
				return apperrors.Validation(fmt.Sprintf("%s must be a number between 0 and 100%%.", readable))
			}
			if !f.percent && v < 0 {
				return apperrors.Validation(fmt.Sprintf("%s must be a non-negative number.", readable))
			}
		}
		return nil
	}
	for _, f := range d.physical.fields() {
		if f.value != nil {
			return apperrors.Validation("Rice-specific physical inspection parameters should only be provided when 'Food & Beverages' -> 'Rice' and a specific Rice Type are selected for physical inspection.")
		}
	}
	return nil
}

func checkChemicalParameters(_ context.Context, d *EnquiryDraft, _ ParamLookup) error {
	if !d.In.ChemicalTesting {
		d.chemicalParameters = nil
		return nil
	}
	if d.chemicalParameters == nil || strings.TrimSpace(*d.chemicalParameters) == "" {
		return apperrors.Validation("Chemical parameters (text format) are required if chemical testing is selected, but were not found in the selected chemical parameter record.")
	}
	if utf8.RuneCountInString(*d.chemicalParameters) > maxChemicalParametersLen {
		return apperrors.Validation("Chemical parameters cannot exceed 5000 characters.")
	}
	return nil
}

func checkInspectionDates(_ context.Context, d *EnquiryDraft, _ ParamLookup) error {
	if !slices.Contains(inspectionTypes, d.inspectionType) {
		return apperrors.Validation(fmt.Sprintf("Invalid inspection type. Allowed: %s.", strings.Join(inspectionTypes, ", ")))
	}
	in := d.In
	if d.inspectionType == InspectionSingleDay {
		if in.SingleDayInspectionDate == nil {
			return apperrors.Validation("Single day inspection date is required for 'Single Day' inspection type.")
		}
		if in.MultiDayInspectionStartDate != nil || in.MultiDayInspectionEndDate != nil {
			return apperrors.Validation("Multi-day inspection dates should not be provided for 'Single Day' inspection type.")
		}
		return nil
	}

	if in.MultiDayInspectionStartDate == nil || in.MultiDayInspectionEndDate == nil {
		return apperrors.Validation("Multi-day inspection start and end dates are required for 'Multi Day' inspection type.")
	}
	if in.SingleDayInspectionDate != nil {
		return apperrors.Validation("Single day inspection date should not be provided for 'Multi Day' inspection type.")
	}
	start, errStart := time.Parse(time.DateOnly, *in.MultiDayInspectionStartDate)
	end, errEnd := time.Parse(time.DateOnly, *in.MultiDayInspectionEndDate)
	if errStart != nil || errEnd != nil {
		return apperrors.Validation("Multi-day inspection dates must be in YYYY-MM-DD format.")
	}
	if start.After(end) {
		return apperrors.Validation("Multi-day inspection start date cannot be after end date.")
	}
	return nil
}

var leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseLeadingFloat reads the numeric prefix of s and returns 0 when there is none.
// Catalog milling degrees are labels such as "Well Milled", so they always become 0.
func ParseLeadingFloat(s string) float64 {
	m := leadingFloat.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

var upperRun = regexp.MustCompile(`([A-Z])`)

// readableKey turns "yellowKernel" into "yellow kernel".
func readableKey(key string) string {
	return strings.ToLower(upperRun.ReplaceAllString(key, " $1"))
}

func ptr[T any](v T) *T { return &v }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
