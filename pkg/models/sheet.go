package models

import (
	"time"
)

// Sheet represents a study sheet document and its descriptive metadata
type Sheet struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	URL       *string   `json:"url"`
	Title     *string   `json:"title" gorm:"index"`
	Author    *string   `json:"author"`
	Subject   *string   `json:"subject"`
	Teacher   *string   `json:"teacher"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Sheet) TableName() string { return "sheets" }

// Attribute represents a keyword attached to exactly one sheet
type Attribute struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Keyword   *string   `json:"keyword" gorm:"index"`
	SheetID   uint      `json:"SheetId" gorm:"index"`
	Sheet     *Sheet    `json:"Sheet,omitempty" gorm:"foreignKey:SheetID"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Attribute) TableName() string { return "attributes" }

// SheetFields are the mutable sheet columns. Unset fields were not supplied.
type SheetFields struct {
	URL     NullString `json:"url,omitzero"`
	Title   NullString `json:"title,omitzero"`
	Author  NullString `json:"author,omitzero"`
	Subject NullString `json:"subject,omitzero"`
	Teacher NullString `json:"teacher,omitzero"`
}

// FieldsOf returns every mutable column of a stored sheet.
func FieldsOf(s *Sheet) SheetFields {
	return SheetFields{
		URL:     Supplied(s.URL),
		Title:   Supplied(s.Title),
		Author:  Supplied(s.Author),
		Subject: Supplied(s.Subject),
		Teacher: Supplied(s.Teacher),
	}
}

// SheetFilter holds the sheet search parameters. Empty strings are ignored.
type SheetFilter struct {
	Title   string
	Author  string
	Teacher string
	Subject string
	Keyword string
}

// HasFieldFilters reports whether any column filter (not keyword) is set.
func (f SheetFilter) HasFieldFilters() bool {
	return f.Title != "" || f.Author != "" || f.Teacher != "" || f.Subject != ""
}

// AttributeFilter holds the keyword lookup parameters. Both conditions must hold.
type AttributeFilter struct {
	SheetID *uint
	Keyword string
}

// CreateSheetRequest is the body of POST /sheets
type CreateSheetRequest struct {
	URL     *string `json:"url" validate:"required"`
	Title   *string `json:"title"`
	Author  *string `json:"author"`
	Subject *string `json:"subject"`
	Teacher *string `json:"teacher"`
}

// Fields returns the request as sheet columns. Absent and null fields are both unset.
func (r CreateSheetRequest) Fields() SheetFields {
	field := func(v *string) NullString {
		return NullString{Value: v, Set: v != nil}
	}
	return SheetFields{
		URL:     field(r.URL),
		Title:   field(r.Title),
		Author:  field(r.Author),
		Subject: field(r.Subject),
		Teacher: field(r.Teacher),
	}
}

// CreateSheetResponse echoes the created sheet
type CreateSheetResponse struct {
	Created bool `json:"created"`
	SheetFields
}

// UpdateSheetRequest is the body of PUT /sheets
type UpdateSheetRequest struct {
	ID *ID `json:"id"`
	SheetFields
}

// UpdateSheetResponse carries the prior values of the supplied fields and the new values
type UpdateSheetResponse struct {
	Found bool         `json:"found"`
	Old   *SheetFields `json:"old,omitempty"`
	SheetFields
}

// CreateAttributeRequest is the body of POST /sheets/keywords; ID is the owning sheet
type CreateAttributeRequest struct {
	ID      *ID     `json:"id" validate:"required"`
	Keyword *string `json:"keyword"`
}

// CreateAttributeResponse echoes the created keyword
type CreateAttributeResponse struct {
	Created bool    `json:"created"`
	Keyword *string `json:"keyword,omitempty"`
	ID      uint    `json:"id"`
}

// UpdateAttributeRequest is the body of PUT /sheets/keywords
type UpdateAttributeRequest struct {
	ID      *ID        `json:"id" validate:"required"`
	Keyword NullString `json:"keyword"`
}

// AttributeFields are the mutable attribute columns
type AttributeFields struct {
	Keyword NullString `json:"keyword,omitzero"`
}

// UpdateAttributeResponse carries the prior keyword (when replaced) and the new one
type UpdateAttributeResponse struct {
	Found   bool             `json:"found"`
	Old     *AttributeFields `json:"old,omitempty"`
	Keyword NullString       `json:"keyword,omitzero"`
}

// DeleteResponse reports whether exactly one row was removed
type DeleteResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}
