package sheets

import (
	"context"
	"strings"

	"github.com/Aidin1998/studysheets/internal/database"
	"github.com/Aidin1998/studysheets/pkg/errors"
	"github.com/Aidin1998/studysheets/pkg/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store is the persistence boundary of the sheets API.
type Store interface {
	Sheet(ctx context.Context, id uint) (*models.Sheet, error)
	FindSheets(ctx context.Context, filter models.SheetFilter) ([]models.Sheet, error)
	AttributesWithSheet(ctx context.Context, keyword string) ([]models.Attribute, error)
	CreateSheet(ctx context.Context, in models.SheetFields) (*models.Sheet, error)
	UpdateSheet(ctx context.Context, id uint, in models.SheetFields, replace bool) error
	DeleteSheet(ctx context.Context, id uint, cascade bool) (int64, error)

	Attribute(ctx context.Context, id uint) (*models.Attribute, error)
	FindAttributes(ctx context.Context, filter models.AttributeFilter) ([]models.Attribute, error)
	CreateAttribute(ctx context.Context, sheetID uint, keyword *string) (*models.Attribute, error)
	UpdateAttribute(ctx context.Context, id uint, keyword models.NullString, replace bool) error
	DeleteAttribute(ctx context.Context, id uint) (int64, error)
}

type StoreImp struct {
	log *zap.Logger
	db  *gorm.DB
}

var _ Store = (*StoreImp)(nil)

func NewStore(log *zap.Logger, db *gorm.DB) *StoreImp {
	return &StoreImp{log, db}
}

func contains(value string) string {
	return "%" + value + "%"
}

func (s *StoreImp) Sheet(ctx context.Context, id uint) (*models.Sheet, error) {
	sheet, err := database.FindOne[models.Sheet](s.db.WithContext(ctx).Where("id = ?", id))
	if err != nil {
		if errors.Is(err, errors.NotFound) {
			return nil, errors.NotFound.Explain("sheet %d not found", id)
		}
		return nil, errors.New("failed to get sheet").Wrap(err)
	}

	return sheet, nil
}

// FindSheets returns the sheets matching any of the column filters. With no
// column filter set every sheet is returned; the keyword is not consulted here.
func (s *StoreImp) FindSheets(ctx context.Context, filter models.SheetFilter) ([]models.Sheet, error) {
	query := s.db.WithContext(ctx)

	var (
		conds []string
		args  []interface{}
	)
	for _, f := range []struct{ column, value string }{
		{"title", filter.Title},
		{"author", filter.Author},
		{"teacher", filter.Teacher},
		{"subject", filter.Subject},
	} {
		if f.value == "" {
			continue
		}
		conds = append(conds, f.column+" LIKE ?")
		args = append(args, contains(f.value))
	}
	if len(conds) > 0 {
		query = query.Where(strings.Join(conds, " OR "), args...)
	}

	var sheets []models.Sheet
	if err := query.Find(&sheets).Error; err != nil {
		return nil, errors.New("failed to search sheets").Wrap(database.WrapError(err))
	}

	return sheets, nil
}

// AttributesWithSheet returns the attributes whose keyword contains keyword,
// each with its owning sheet loaded.
func (s *StoreImp) AttributesWithSheet(ctx context.Context, keyword string) ([]models.Attribute, error) {
	var attributes []models.Attribute
	err := s.db.WithContext(ctx).
		Preload("Sheet").
		Where("keyword LIKE ?", contains(keyword)).
		Find(&attributes).Error
	if err != nil {
		return nil, errors.New("failed to search keywords").Wrap(database.WrapError(err))
	}

	return attributes, nil
}

func (s *StoreImp) CreateSheet(ctx context.Context, in models.SheetFields) (*models.Sheet, error) {
	sheet := &models.Sheet{
		URL:     in.URL.Value,
		Title:   in.Title.Value,
		Author:  in.Author.Value,
		Subject: in.Subject.Value,
		Teacher: in.Teacher.Value,
	}

	if err := s.db.WithContext(ctx).Create(sheet).Error; err != nil {
		return nil, errors.New("failed to create sheet").Wrap(database.WrapError(err))
	}

	return sheet, nil
}

// UpdateSheet writes the sheet columns. With replace every column is written and
// unset fields become NULL; otherwise only supplied fields are written.
func (s *StoreImp) UpdateSheet(ctx context.Context, id uint, in models.SheetFields, replace bool) error {
	updates := map[string]interface{}{}
	for column, field := range map[string]models.NullString{
		"url":     in.URL,
		"title":   in.Title,
		"author":  in.Author,
		"subject": in.Subject,
		"teacher": in.Teacher,
	} {
		if field.Set || replace {
			updates[column] = field.Value
		}
	}
	if len(updates) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Model(&models.Sheet{}).Where("id = ?", id).Updates(updates).Error
	if err != nil {
		return errors.New("failed to update sheet").Wrap(database.WrapError(err))
	}

	return nil
}

// DeleteSheet removes the sheet and reports the number of sheet rows deleted.
// With cascade the sheet's attributes are removed in the same transaction.
func (s *StoreImp) DeleteSheet(ctx context.Context, id uint, cascade bool) (int64, error) {
	if !cascade {
		result := s.db.WithContext(ctx).Delete(&models.Sheet{}, "id = ?", id)
		if result.Error != nil {
			return 0, errors.New("failed to delete sheet").Wrap(database.WrapError(result.Error))
		}
		return result.RowsAffected, nil
	}

	var deleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Sheet{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		if deleted == 0 {
			return nil
		}

		attrs := tx.Delete(&models.Attribute{}, "sheet_id = ?", id)
		if attrs.Error != nil {
			return attrs.Error
		}
		s.log.Debug("Cascaded sheet delete",
			zap.Uint("sheet_id", id),
			zap.Int64("attributes", attrs.RowsAffected))
		return nil
	})
	if err != nil {
		return 0, errors.New("failed to delete sheet").Wrap(database.WrapError(err))
	}

	return deleted, nil
}

func (s *StoreImp) Attribute(ctx context.Context, id uint) (*models.Attribute, error) {
	attribute, err := database.FindOne[models.Attribute](s.db.WithContext(ctx).Where("id = ?", id))
	if err != nil {
		if errors.Is(err, errors.NotFound) {
			return nil, errors.NotFound.Explain("keyword %d not found", id)
		}
		return nil, errors.New("failed to get keyword").Wrap(err)
	}

	return attribute, nil
}

// FindAttributes returns the attributes matching every supplied condition.
func (s *StoreImp) FindAttributes(ctx context.Context, filter models.AttributeFilter) ([]models.Attribute, error) {
	query := s.db.WithContext(ctx)

	if filter.SheetID != nil {
		query = query.Where("sheet_id = ?", *filter.SheetID)
	}
	if filter.Keyword != "" {
		query = query.Where("keyword LIKE ?", contains(filter.Keyword))
	}

	var attributes []models.Attribute
	if err := query.Find(&attributes).Error; err != nil {
		return nil, errors.New("failed to list keywords").Wrap(database.WrapError(err))
	}

	return attributes, nil
}

func (s *StoreImp) CreateAttribute(ctx context.Context, sheetID uint, keyword *string) (*models.Attribute, error) {
	attribute := &models.Attribute{
		SheetID: sheetID,
		Keyword: keyword,
	}

	if err := s.db.WithContext(ctx).Create(attribute).Error; err != nil {
		return nil, errors.New("failed to create keyword").Wrap(database.WrapError(err))
	}

	return attribute, nil
}

// UpdateAttribute writes the keyword. An unset keyword is written as NULL only with replace.
func (s *StoreImp) UpdateAttribute(ctx context.Context, id uint, keyword models.NullString, replace bool) error {
	if !keyword.Set && !replace {
		return nil
	}

	err := s.db.WithContext(ctx).
		Model(&models.Attribute{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"keyword": keyword.Value}).Error
	if err != nil {
		return errors.New("failed to update keyword").Wrap(database.WrapError(err))
	}

	return nil
}

func (s *StoreImp) DeleteAttribute(ctx context.Context, id uint) (int64, error) {
	result := s.db.WithContext(ctx).Delete(&models.Attribute{}, "id = ?", id)
	if result.Error != nil {
		return 0, errors.New("failed to delete keyword").Wrap(database.WrapError(result.Error))
	}

	return result.RowsAffected, nil
}
