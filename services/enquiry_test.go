package services

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"inspection-backend/apperrors"
	"inspection-backend/database"
	"inspection-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeLookup struct {
	phy  map[uint]models.PhyInspectionParam
	chem map[uint]models.ChemInspectionParam
}

func (f fakeLookup) PhysicalParam(_ context.Context, id uint) (*models.PhyInspectionParam, error) {
	p, ok := f.phy[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (f fakeLookup) ChemicalParam(_ context.Context, id uint) (*models.ChemInspectionParam, error) {
	p, ok := f.chem[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func str(s string) *string { return &s }

func num(f float64) *float64 { return &f }

func id(n uint) *uint { return &n }

func validPhy() models.PhyInspectionParam {
	return models.PhyInspectionParam{
		Id: 1, Broken: 5, Purity: 95, YellowKernel: 1, DamageKernel: 1, RedKernel: 0.5,
		PaddyKernel: 0.2, ChalkyRice: 3, LiveInsects: 0, MillingDegree: "Well Milled", AverageGrainLength: 6.8,
	}
}

func testLookup() fakeLookup {
	return fakeLookup{
		phy:  map[uint]models.PhyInspectionParam{1: validPhy()},
		chem: map[uint]models.ChemInspectionParam{7: {Id: 7, ParameterName: "Moisture"}},
	}
}

func baseInput() *EnquiryInput {
	vol := 100.0
	return &EnquiryInput{
		InspectionLocation:      "Kakinada Port",
		Country:                 "India",
		CommodityCategory:       "Textiles & Garments",
		SubCommodity:            str("Cotton"),
		Volume:                  &vol,
		SiUnits:                 "ton",
		InspectionType:          "single_day",
		SingleDayInspectionDate: str("2026-11-02"),
		CompanyName:             "Acme Exports",
		ContactPersonName:       "R. Rao",
		EmailAddress:            "ops@acme.example",
		PhoneNumber:             "+919876543210",
	}
}

func riceInput() *EnquiryInput {
	in := baseInput()
	in.CommodityCategory = "Food & Beverages"
	in.SubCommodity = str("Rice")
	in.RiceType = str("Basmati Rice")
	in.PhysicalInspection = true
	in.SelectedPhyParamId = id(1)
	return in
}

func evaluate(t *testing.T, in *EnquiryInput, lookup ParamLookup) (*EnquiryDraft, error) {
	t.Helper()
	d := NewEnquiryDraft(in)
	return d, EvaluateRules(context.Background(), EnquiryRules, d, lookup)
}

func assertKind(t *testing.T, err error, kind apperrors.Kind, contains string) {
	t.Helper()
	require.Error(t, err)
	e, ok := apperrors.As(err)
	require.True(t, ok, "expected apperrors.Error, got %T", err)
	assert.Equal(t, kind, e.Kind)
	assert.Contains(t, e.Message, contains)
}

func TestCommodityCategory(t *testing.T) {
	in := baseInput()
	in.CommodityCategory = "Furniture"
	_, err := evaluate(t, in, testLookup())
	assertKind(t, err, apperrors.KindValidation, "Invalid commodity category")

	in = baseInput()
	in.CommodityCategory = "AUTOMOTIVE"
	in.SubCommodity = str("parts")
	_, err = evaluate(t, in, testLookup())
	assert.NoError(t, err)
}

func TestSubCommodity(t *testing.T) {
	cases := []struct {
		name     string
		category string
		sub      *string
		contains string
	}{
		{"missing for predefined", "Chemicals", nil, "Sub-commodity is required for Chemicals"},
		{"not in list", "Chemicals", str("Cotton"), "Invalid sub-commodity 'Cotton'"},
		{"other needs text", "Other", str("   "), "required when 'Other'"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := baseInput()
			in.CommodityCategory = tc.category
			in.SubCommodity = tc.sub
			_, err := evaluate(t, in, testLookup())
			assertKind(t, err, apperrors.KindValidation, tc.contains)
		})
	}

	in := baseInput()
	in.CommodityCategory = "Other"
	in.SubCommodity = str("Handicrafts")
	_, err := evaluate(t, in, testLookup())
	assert.NoError(t, err)
}

func TestRiceTypeRules(t *testing.T) {
	in := riceInput()
	in.RiceType = nil
	_, err := evaluate(t, in, testLookup())
	assertKind(t, err, apperrors.KindValidation, "Rice Type is required")

	in = riceInput()
	in.RiceType = str("Golden Rice")
	_, err = evaluate(t, in, testLookup())
	assertKind(t, err, apperrors.KindValidation, "Invalid Rice Type 'Golden Rice'")

	in = baseInput()
	in.RiceType = str("Basmati Rice")
	_, err = evaluate(t, in, testLookup())
	assertKind(t, err, apperrors.KindValidation, "Rice Type should only be provided")
}

func TestPhysicalParamResolution(t *testing.T) {
	in := riceInput()
	in.SelectedPhyParamId = nil
	_, err := evaluate(t, in, testLookup())
	assertKind(t, err, apperrors.KindValidation, "no Physical Parameter ID")

	in = riceInput()
	in.SelectedPhyParamId = id(42)
	_, err = evaluate(t, in, testLookup())
	assertKind(t, err, apperrors.KindNotFound, "Physical Inspection Parameter with ID 42 not found.")

	d, err := evaluate(t, riceInput(), testLookup())
	require.NoError(t, err)
	require.NotNil(t, d.physical.Purity)
	assert.Equal(t, 95.0, *d.physical.Purity)
	// "Well Milled" has no numeric prefix.
	assert.Equal(t, 0.0, *d.physical.MillingDegree)
}

func TestRicePhysicalRanges(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(p *models.PhyInspectionParam)
		contains string
	}{
		{"percentage above 100", func(p *models.PhyInspectionParam) { p.Broken = 120 }, "broken must be a number between 0 and 100%"},
		{"negative percentage", func(p *models.PhyInspectionParam) { p.YellowKernel = -1 }, "yellow kernel must be a number between 0 and 100%"},
		{"negative insects", func(p *models.PhyInspectionParam) { p.LiveInsects = -2 }, "live insects must be a non-negative number"},
		{"negative grain length", func(p *models.PhyInspectionParam) { p.AverageGrainLength = -0.1 }, "average grain length must be a non-negative number"},
		{"numeric milling above 100", func(p *models.PhyInspectionParam) { p.MillingDegree = "150" }, "milling degree must be a number between 0 and 100%"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPhy()
			tc.mutate(&p)
			lookup := fakeLookup{phy: map[uint]models.PhyInspectionParam{1: p}}
			_, err := evaluate(t, riceInput(), lookup)
			assertKind(t, err, apperrors.KindValidation, tc.contains)
		})
	}
}

func TestRiceFieldsRejectedWithoutRiceType(t *testing.T) {
	d := NewEnquiryDraft(baseInput())
	d.In.PhysicalInspection = true
	d.physical.Broken = num(1)
	err := checkRicePhysicalParams(context.Background(), d, nil)
	assertKind(t, err, apperrors.KindValidation, "Rice-specific physical inspection parameters")
}

func TestNonRicePhysicalInspectionStoresNoRiceFields(t *testing.T) {
	in := baseInput()
	in.PhysicalInspection = true
	in.SelectedPhyParamId = id(1)
	d, err := evaluate(t, in, testLookup())
	require.NoError(t, err)
	e := d.Build()
	assert.Nil(t, e.Broken)
	assert.Nil(t, e.MillingDegree)
	assert.Nil(t, e.RiceType)
}

func TestChemicalParams(t *testing.T) {
	in := baseInput()
	in.ChemicalTesting = true
	_, err := evaluate(t, in, testLookup())
	assertKind(t, err, apperrors.KindValidation, "no Chemical Parameter ID")

	in.SelectedChemParamId = id(9)
	_, err = evaluate(t, in, testLookup())
	assertKind(t, err, apperrors.KindNotFound, "Chemical Inspection Parameter with ID 9 not found.")

	long := fakeLookup{chem: map[uint]models.ChemInspectionParam{9: {Id: 9, ParameterName: strings.Repeat("x", 5001)}}}
	_, err = evaluate(t, in, long)
	assertKind(t, err, apperrors.KindValidation, "cannot exceed 5000 characters")

	in.SelectedChemParamId = id(7)
	d, err := evaluate(t, in, testLookup())
	require.NoError(t, err)
	e := d.Build()
	require.NotNil(t, e.ChemicalParameters)
	assert.Equal(t, "Moisture", *e.ChemicalParameters)
}

func TestInspectionDates(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(in *EnquiryInput)
		contains string
	}{
		{"unknown type", func(in *EnquiryInput) { in.InspectionType = "weekly" }, "Invalid inspection type"},
		{"single without date", func(in *EnquiryInput) { in.SingleDayInspectionDate = nil }, "Single day inspection date is required"},
		{"single with multi dates", func(in *EnquiryInput) { in.MultiDayInspectionEndDate = str("2026-11-05") }, "should not be provided for 'Single Day'"},
		{"multi missing end", func(in *EnquiryInput) {
			in.InspectionType = "MULTI_DAY"
			in.SingleDayInspectionDate = nil
			in.MultiDayInspectionStartDate = str("2026-11-02")
		}, "start and end dates are required"},
		{"multi with single date", func(in *EnquiryInput) {
			in.InspectionType = "multi_day"
			in.MultiDayInspectionStartDate = str("2026-11-02")
			in.MultiDayInspectionEndDate = str("2026-11-04")
		}, "should not be provided for 'Multi Day'"},
		{"multi reversed", func(in *EnquiryInput) {
			in.InspectionType = "multi_day"
			in.SingleDayInspectionDate = nil
			in.MultiDayInspectionStartDate = str("2026-11-09")
			in.MultiDayInspectionEndDate = str("2026-11-04")
		}, "start date cannot be after end date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := baseInput()
			tc.mutate(in)
			_, err := evaluate(t, in, testLookup())
			assertKind(t, err, apperrors.KindValidation, tc.contains)
		})
	}
}

func TestBuildNullsInapplicableFields(t *testing.T) {
	in := baseInput()
	in.InspectionType = "Multi_Day"
	in.SingleDayInspectionDate = nil
	in.MultiDayInspectionStartDate = str("2026-11-02")
	in.MultiDayInspectionEndDate = str("2026-11-02")

	d, err := evaluate(t, in, testLookup())
	require.NoError(t, err)
	e := d.Build()

	assert.Equal(t, InspectionMultiDay, e.InspectionType)
	assert.Equal(t, "Low", e.UrgencyLevel)
	assert.Nil(t, e.SingleDayInspectionDate)
	assert.Nil(t, e.ChemicalParameters)
	assert.Nil(t, e.Purity)
	assert.NotNil(t, e.Certificates)
	assert.Empty(t, e.Certificates)
}

func TestParseLeadingFloat(t *testing.T) {
	cases := map[string]float64{
		"12.5":         12.5,
		"  80% milled": 80,
		"Well Milled":  0,
		"":             0,
		"-3e2x":        -300,
		".5":           0.5,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLeadingFloat(in), in)
	}
}

func TestReadableKey(t *testing.T) {
	assert.Equal(t, "yellow kernel", readableKey("yellowKernel"))
	assert.Equal(t, "broken", readableKey("broken"))
}

func TestNormalizeBlankOptionals(t *testing.T) {
	in := baseInput()
	in.SubCommodity = str("  Cotton ")
	in.MultiDayInspectionStartDate = str("  ")
	in.Normalize()
	assert.Equal(t, "Cotton", *in.SubCommodity)
	assert.Nil(t, in.MultiDayInspectionStartDate)
}

func newServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestCreatePersistsRiceEnquiry(t *testing.T) {
	db := newServiceDB(t)
	phy := validPhy()
	phy.Id = 0
	require.NoError(t, db.Create(&phy).Error)

	in := riceInput()
	in.SelectedPhyParamId = id(phy.Id)
	in.Certificates = []string{"NABL", "ISO"}

	svc := NewEnquiryService(db)
	e, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.NotZero(t, e.Id)

	got, err := svc.Get(context.Background(), e.Id)
	require.NoError(t, err)
	require.NotNil(t, got.Broken)
	assert.Equal(t, 5.0, *got.Broken)
	assert.Equal(t, []string{"NABL", "ISO"}, []string(got.Certificates))
	assert.Equal(t, "Basmati Rice", *got.RiceType)

	list, err := svc.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreateMissingTemplateWritesNothing(t *testing.T) {
	db := newServiceDB(t)
	svc := NewEnquiryService(db)

	_, err := svc.Create(context.Background(), riceInput())
	assertKind(t, err, apperrors.KindNotFound, "Physical Inspection Parameter with ID 1 not found.")

	var n int64
	require.NoError(t, db.Model(&models.RaiseEnquiry{}).Count(&n).Error)
	assert.Zero(t, n)

	_, err = svc.Get(context.Background(), 99)
	assertKind(t, err, apperrors.KindNotFound, "Enquiry not found.")
}

func TestInputEnumsMatchModelLists(t *testing.T) {
	typ := reflect.TypeOf(EnquiryInput{})
	oneof := func(field string) string {
		f, ok := typ.FieldByName(field)
		require.True(t, ok, field)
		tag := f.Tag.Get("validate")
		i := strings.Index(tag, "oneof=")
		require.GreaterOrEqual(t, i, 0, field)
		return tag[i+len("oneof="):]
	}
	assert.Equal(t, strings.Join(models.UrgencyLevels, " "), oneof("UrgencyLevel"))
	assert.Equal(t, strings.Join(models.SIUnits, " "), oneof("SiUnits"))
	assert.Equal(t, strings.Join(models.Certificates, " "), oneof("Certificates"))
}
