package models

// Subject represents a course taught in a given semester of a degree
type Subject struct {
	ID       int64  `json:"id" db:"id" csv:"id" gorm:"primaryKey" example:"1"`
	Name     string `json:"name" db:"name" csv:"name" example:"Software Engineering"`
	Semester int    `json:"semester" db:"semester" csv:"semester" example:"4"`
	Degree   Degree `json:"degree" db:"degree" csv:"degree" example:"Bachelor"`
}

func (Subject) TableName() string { return "subjects" }

func (s Subject) Identity() int64 { return s.ID }

func (s Subject) WithIdentity(id int64) Subject {
	s.ID = id
	return s
}

func (s Subject) Overlay(base Subject) Subject {
	if s.Name != "" {
		base.Name = s.Name
	}
	if s.Semester != 0 {
		base.Semester = s.Semester
	}
	if s.Degree != "" {
		base.Degree = s.Degree
	}
	return base
}

func (s Subject) Columns() map[string]any {
	return map[string]any{
		"name":     s.Name,
		"semester": int64(s.Semester),
		"degree":   string(s.Degree),
	}
}

// SubjectPatch carries the fields of a subject update; nil fields are kept
type SubjectPatch struct {
	Name     *string
	Semester *int
	Degree   *Degree
}
