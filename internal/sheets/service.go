// Package sheets implements the study sheet and keyword API: persistence,
// search semantics and HTTP handlers.
package sheets

import (
	"context"

	"github.com/Aidin1998/studysheets/common/set"
	"github.com/Aidin1998/studysheets/internal/config"
	"github.com/Aidin1998/studysheets/pkg/errors"
	"github.com/Aidin1998/studysheets/pkg/metrics"
	"github.com/Aidin1998/studysheets/pkg/models"
	"go.uber.org/zap"
)

// Options selects the update and delete policies.
type Options struct {
	// UpdateMode is config.UpdateModeReplace or config.UpdateModeMerge.
	UpdateMode    string
	CascadeDelete bool
}

// SheetService defines the sheet and keyword operations.
type SheetService interface {
	Sheet(ctx context.Context, id uint) (*models.Sheet, error)
	Search(ctx context.Context, filter models.SheetFilter) ([]models.Sheet, error)
	CreateSheet(ctx context.Context, req *models.CreateSheetRequest) (*models.CreateSheetResponse, error)
	UpdateSheet(ctx context.Context, req *models.UpdateSheetRequest) (*models.UpdateSheetResponse, error)
	DeleteSheet(ctx context.Context, id uint) (bool, error)

	Attribute(ctx context.Context, id uint) (*models.Attribute, error)
	Attributes(ctx context.Context, filter models.AttributeFilter) ([]models.Attribute, error)
	CreateAttribute(ctx context.Context, req *models.CreateAttributeRequest) (*models.CreateAttributeResponse, error)
	UpdateAttribute(ctx context.Context, req *models.UpdateAttributeRequest) (*models.UpdateAttributeResponse, error)
	DeleteAttribute(ctx context.Context, id uint) (bool, error)
}

// Service implements SheetService
type Service struct {
	logger *zap.Logger
	store  Store
	opts   Options
}

var _ SheetService = (*Service)(nil)

// NewService creates a new SheetService
func NewService(logger *zap.Logger, store Store, opts Options) *Service {
	if opts.UpdateMode == "" {
		opts.UpdateMode = config.UpdateModeReplace
	}
	return &Service{
		logger: logger,
		store:  store,
		opts:   opts,
	}
}

func (s *Service) replace() bool {
	return s.opts.UpdateMode != config.UpdateModeMerge
}

// Sheet returns the sheet with the given id, or nil when there is none.
func (s *Service) Sheet(ctx context.Context, id uint) (*models.Sheet, error) {
	sheet, err := s.store.Sheet(ctx, id)
	if errors.Is(err, errors.NotFound) {
		return nil, nil
	}
	return sheet, err
}

// Search returns the sheets matching any column filter, followed by the sheets
// owning a keyword that contains filter.Keyword. Each sheet appears once.
func (s *Service) Search(ctx context.Context, filter models.SheetFilter) ([]models.Sheet, error) {
	var (
		sheets []models.Sheet
		err    error
	)

	// A keyword-only search starts empty; with no filters at all every sheet matches.
	if filter.HasFieldFilters() || filter.Keyword == "" {
		sheets, err = s.store.FindSheets(ctx, filter)
		if err != nil {
			return nil, err
		}
	}
	if sheets == nil {
		sheets = []models.Sheet{}
	}
	metrics.SearchResults.WithLabelValues("filter").Observe(float64(len(sheets)))

	if filter.Keyword == "" {
		return sheets, nil
	}

	seen := make(set.Set[uint], len(sheets))
	for _, sheet := range sheets {
		seen.Insert(sheet.ID)
	}

	attributes, err := s.store.AttributesWithSheet(ctx, filter.Keyword)
	if err != nil {
		return nil, err
	}

	joined := 0
	for _, attribute := range attributes {
		if attribute.Sheet == nil {
			s.logger.Debug("Keyword references a missing sheet",
				zap.Uint("keyword_id", attribute.ID),
				zap.Uint("sheet_id", attribute.SheetID))
			continue
		}
		if seen.Add(attribute.Sheet.ID) {
			sheets = append(sheets, *attribute.Sheet)
			joined++
		}
	}
	metrics.SearchResults.WithLabelValues("keyword").Observe(float64(joined))

	return sheets, nil
}

func (s *Service) CreateSheet(ctx context.Context, req *models.CreateSheetRequest) (*models.CreateSheetResponse, error) {
	if req.URL == nil || *req.URL == "" {
		return nil, errors.Invalid.Explain("Sheet url not found, but is required").WithField("required", "url", "")
	}

	fields := req.Fields()
	sheet, err := s.store.CreateSheet(ctx, fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Sheet created", zap.Uint("sheet_id", sheet.ID))

	return &models.CreateSheetResponse{Created: true, SheetFields: fields}, nil
}

// UpdateSheet records the prior value of every supplied field, then writes the
// request according to the update mode.
func (s *Service) UpdateSheet(ctx context.Context, req *models.UpdateSheetRequest) (*models.UpdateSheetResponse, error) {
	if req.ID == nil {
		return &models.UpdateSheetResponse{Found: false}, nil
	}

	sheet, err := s.Sheet(ctx, uint(*req.ID))
	if err != nil {
		return nil, err
	}
	if sheet == nil {
		return &models.UpdateSheetResponse{Found: false}, nil
	}

	// Supplied fields report their prior value, null included.
	in := req.SheetFields
	old := models.SheetFields{}
	if in.URL.Set {
		old.URL = models.Supplied(sheet.URL)
	}
	if in.Subject.Set {
		old.Subject = models.Supplied(sheet.Subject)
	}
	if in.Title.Set {
		old.Title = models.Supplied(sheet.Title)
	}
	if in.Author.Set {
		old.Author = models.Supplied(sheet.Author)
	}
	if in.Teacher.Set {
		old.Teacher = models.Supplied(sheet.Teacher)
	}

	if err := s.store.UpdateSheet(ctx, sheet.ID, in, s.replace()); err != nil {
		return nil, err
	}

	current := in
	if !s.replace() {
		current = mergeFields(models.FieldsOf(sheet), in)
	}

	return &models.UpdateSheetResponse{Found: true, Old: &old, SheetFields: current}, nil
}

// mergeFields overlays the supplied fields of patch on base.
func mergeFields(base, patch models.SheetFields) models.SheetFields {
	if patch.URL.Set {
		base.URL = patch.URL
	}
	if patch.Title.Set {
		base.Title = patch.Title
	}
	if patch.Author.Set {
		base.Author = patch.Author
	}
	if patch.Subject.Set {
		base.Subject = patch.Subject
	}
	if patch.Teacher.Set {
		base.Teacher = patch.Teacher
	}
	return base
}

// DeleteSheet reports whether exactly one sheet was removed.
func (s *Service) DeleteSheet(ctx context.Context, id uint) (bool, error) {
	n, err := s.store.DeleteSheet(ctx, id, s.opts.CascadeDelete)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Attribute returns the keyword with the given id, or nil when there is none.
func (s *Service) Attribute(ctx context.Context, id uint) (*models.Attribute, error) {
	attribute, err := s.store.Attribute(ctx, id)
	if errors.Is(err, errors.NotFound) {
		return nil, nil
	}
	return attribute, err
}

func (s *Service) Attributes(ctx context.Context, filter models.AttributeFilter) ([]models.Attribute, error) {
	attributes, err := s.store.FindAttributes(ctx, filter)
	if err != nil {
		return nil, err
	}
	if attributes == nil {
		attributes = []models.Attribute{}
	}
	return attributes, nil
}

func (s *Service) CreateAttribute(ctx context.Context, req *models.CreateAttributeRequest) (*models.CreateAttributeResponse, error) {
	if req.ID == nil {
		return nil, errors.Invalid.Explain("Sheet id not found, but is required").WithField("required", "id", "")
	}

	attribute, err := s.store.CreateAttribute(ctx, uint(*req.ID), req.Keyword)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Keyword created",
		zap.Uint("keyword_id", attribute.ID),
		zap.Uint("sheet_id", attribute.SheetID))

	return &models.CreateAttributeResponse{Created: true, Keyword: req.Keyword, ID: uint(*req.ID)}, nil
}

func (s *Service) UpdateAttribute(ctx context.Context, req *models.UpdateAttributeRequest) (*models.UpdateAttributeResponse, error) {
	if req.ID == nil {
		return nil, errors.Invalid.Explain("Need an attribute id to process request").WithField("required", "id", "")
	}

	attribute, err := s.Attribute(ctx, uint(*req.ID))
	if err != nil {
		return nil, err
	}
	if attribute == nil {
		return &models.UpdateAttributeResponse{Found: false}, nil
	}

	old := models.AttributeFields{}
	if req.Keyword.Set {
		old.Keyword = models.Supplied(attribute.Keyword)
	}

	if err := s.store.UpdateAttribute(ctx, attribute.ID, req.Keyword, s.replace()); err != nil {
		return nil, err
	}

	keyword := req.Keyword
	if !keyword.Set && !s.replace() {
		keyword = models.Supplied(attribute.Keyword)
	}

	return &models.UpdateAttributeResponse{Found: true, Old: &old, Keyword: keyword}, nil
}

// DeleteAttribute reports whether exactly one keyword was removed.
func (s *Service) DeleteAttribute(ctx context.Context, id uint) (bool, error) {
	n, err := s.store.DeleteAttribute(ctx, id)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
