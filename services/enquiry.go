// Package services holds the business workflows that span more than one table.
package services

import (
	"context"

	"inspection-backend/apperrors"
	"inspection-backend/database"
	"inspection-backend/models"
	"inspection-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EnquiryInput is the body of POST /raiseenquiry. Shape checks live in the tags;
// cross-field checks live in EnquiryRules.
type EnquiryInput struct {
	InspectionLocation string   `json:"inspectionLocation" validate:"required,notblank"`
	Country            string   `json:"country" validate:"required,notblank"`
	UrgencyLevel       string   `json:"urgencyLevel" validate:"omitempty,oneof=Low Medium High Critical"`
	CommodityCategory  string   `json:"commodityCategory" validate:"required"`
	SubCommodity       *string  `json:"subCommodity"`
	RiceType           *string  `json:"riceType"`
	Volume             *float64 `json:"volume" validate:"required,gte=0"`
	SiUnits            string   `json:"siUnits" validate:"required,oneof=kg ton liter gallon pieces other"`
	ExpectedBudgetUSD  *float64 `json:"expectedBudgetUSD" validate:"omitempty,gte=0"`

	InspectionType              string  `json:"inspectionType" validate:"required"`
	SingleDayInspectionDate     *string `json:"singleDayInspectionDate" validate:"omitempty,datetime=2006-01-02"`
	MultiDayInspectionStartDate *string `json:"multiDayInspectionStartDate" validate:"omitempty,datetime=2006-01-02"`
	MultiDayInspectionEndDate   *string `json:"multiDayInspectionEndDate" validate:"omitempty,datetime=2006-01-02"`

	PhysicalInspection  bool     `json:"physicalInspection"`
	ChemicalTesting     bool     `json:"chemicalTesting"`
	SelectedPhyParamId  *uint    `json:"selectedPhyParamId"`
	SelectedChemParamId *uint    `json:"selectedChemParamId"`
	Certificates        []string `json:"certificates" validate:"omitempty,dive,oneof=NABL NABCB COC FOFSE GAFTA ISO Other"`

	CompanyName         string  `json:"companyName" validate:"required,notblank"`
	ContactPersonName   string  `json:"contactPersonName" validate:"required,notblank"`
	EmailAddress        string  `json:"emailAddress" validate:"required,email"`
	PhoneNumber         string  `json:"phoneNumber" validate:"required,phone"`
	SpecialRequirements *string `json:"specialRequirements" validate:"omitempty,max=1000"`
}

// Normalize trims every string and turns blank optionals into nil, so that an
// empty date or sub-commodity counts as absent.
func (in *EnquiryInput) Normalize() {
	utils.NormalizeDTO(in)
	in.SubCommodity = utils.EmptyToNil(in.SubCommodity)
	in.RiceType = utils.EmptyToNil(in.RiceType)
	in.SingleDayInspectionDate = utils.EmptyToNil(in.SingleDayInspectionDate)
	in.MultiDayInspectionStartDate = utils.EmptyToNil(in.MultiDayInspectionStartDate)
	in.MultiDayInspectionEndDate = utils.EmptyToNil(in.MultiDayInspectionEndDate)
	in.SpecialRequirements = utils.EmptyToNil(in.SpecialRequirements)
}

type EnquiryService struct {
	DB    *gorm.DB
	Rules []EnquiryRule
}

func NewEnquiryService(db *gorm.DB) *EnquiryService {
	return &EnquiryService{DB: db, Rules: EnquiryRules}
}

// Create runs the rule pipeline against the parameter catalog and persists the
// enquiry. Template reads and the insert share one transaction.
func (s *EnquiryService) Create(ctx context.Context, in *EnquiryInput) (*models.RaiseEnquiry, error) {
	var enquiry *models.RaiseEnquiry
	err := database.WithTx(ctx, s.DB, func(tx *gorm.DB) error {
		draft := NewEnquiryDraft(in)
		if err := EvaluateRules(ctx, s.Rules, draft, GormParamLookup{DB: tx}); err != nil {
			return err
		}
		enquiry = draft.Build()
		if err := tx.Create(enquiry).Error; err != nil {
			return apperrors.Internal("failed to create enquiry", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return enquiry, nil
}

func (s *EnquiryService) List(ctx context.Context, limit, offset int) ([]models.RaiseEnquiry, error) {
	var out []models.RaiseEnquiry
	err := s.DB.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	if err != nil {
		return nil, apperrors.Internal("failed to list enquiries", err)
	}
	return out, nil
}

func (s *EnquiryService) Get(ctx context.Context, id uint) (*models.RaiseEnquiry, error) {
	var e models.RaiseEnquiry
	if err := s.DB.WithContext(ctx).First(&e, id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, apperrors.NotFound("Enquiry not found.")
		}
		return nil, apperrors.Internal("failed to load enquiry", err)
	}
	return &e, nil
}

// Build materializes the validated draft. Fields that do not apply to the
// chosen category and inspection options are stored as null.
func (d *EnquiryDraft) Build() *models.RaiseEnquiry {
	in := d.In
	e := &models.RaiseEnquiry{
		InspectionLocation:  in.InspectionLocation,
		Country:             in.Country,
		UrgencyLevel:        in.UrgencyLevel,
		CommodityCategory:   in.CommodityCategory,
		SiUnits:             in.SiUnits,
		ExpectedBudgetUSD:   in.ExpectedBudgetUSD,
		InspectionType:      d.inspectionType,
		PhysicalInspection:  in.PhysicalInspection,
		ChemicalTesting:     in.ChemicalTesting,
		Certificates:        datatypes.JSONSlice[string]{},
		CompanyName:         in.CompanyName,
		ContactPersonName:   in.ContactPersonName,
		EmailAddress:        in.EmailAddress,
		PhoneNumber:         in.PhoneNumber,
		SpecialRequirements: in.SpecialRequirements,
	}
	if e.UrgencyLevel == "" {
		e.UrgencyLevel = models.UrgencyLevels[0]
	}
	if in.Volume != nil {
		e.Volume = *in.Volume
	}
	if len(in.Certificates) > 0 {
		e.Certificates = datatypes.JSONSlice[string](in.Certificates)
	}
	if d.expectsPredefinedSub || d.isOtherCategory {
		e.SubCommodity = in.SubCommodity
	}
	if d.isRiceSubCommodity {
		e.RiceType = in.RiceType
	}

	switch d.inspectionType {
	case InspectionSingleDay:
		e.SingleDayInspectionDate = in.SingleDayInspectionDate
	case InspectionMultiDay:
		e.MultiDayInspectionStartDate = in.MultiDayInspectionStartDate
		e.MultiDayInspectionEndDate = in.MultiDayInspectionEndDate
	}

	if d.validatesRicePhysical() {
		p := d.physical
		e.Broken = p.Broken
		e.Purity = p.Purity
		e.YellowKernel = p.YellowKernel
		e.DamageKernel = p.DamageKernel
		e.RedKernel = p.RedKernel
		e.PaddyKernel = p.PaddyKernel
		e.ChalkyRice = p.ChalkyRice
		e.LiveInsects = p.LiveInsects
		e.MillingDegree = p.MillingDegree
		e.AverageGrainLength = p.AverageGrainLength
	}
	if in.ChemicalTesting {
		e.ChemicalParameters = d.chemicalParameters
	}
	return e
}

// GormParamLookup reads parameter templates through the given handle, which is
// the enquiry transaction during Create.
type GormParamLookup struct {
	DB *gorm.DB
}

func (l GormParamLookup) PhysicalParam(ctx context.Context, id uint) (*models.PhyInspectionParam, error) {
	var p models.PhyInspectionParam
	if err := l.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (l GormParamLookup) ChemicalParam(ctx context.Context, id uint) (*models.ChemInspectionParam, error) {
	var p models.ChemInspectionParam
	if err := l.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
