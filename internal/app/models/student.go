package models

// Student defines the student model based on the 'students' table
type Student struct {
	ID       int64  `json:"id" db:"id" csv:"id" gorm:"primaryKey" example:"1"`
	Name     string `json:"name" db:"name" csv:"name" example:"John"`
	Surname  string `json:"surname" db:"surname" csv:"surname" example:"Daw"`
	Degree   Degree `json:"degree" db:"degree" csv:"degree" example:"Bachelor"`
	Semester int    `json:"semester" db:"semester" csv:"semester" example:"4"`
}

func (Student) TableName() string { return "students" }

func (s Student) Identity() int64 { return s.ID }

func (s Student) WithIdentity(id int64) Student {
	s.ID = id
	return s
}

func (s Student) Overlay(base Student) Student {
	if s.Name != "" {
		base.Name = s.Name
	}
	if s.Surname != "" {
		base.Surname = s.Surname
	}
	if s.Degree != "" {
		base.Degree = s.Degree
	}
	if s.Semester != 0 {
		base.Semester = s.Semester
	}
	return base
}

func (s Student) Columns() map[string]any {
	return map[string]any{
		"name":     s.Name,
		"surname":  s.Surname,
		"degree":   string(s.Degree),
		"semester": int64(s.Semester),
	}
}

// StudentPatch carries the fields of a student update; nil fields are kept
type StudentPatch struct {
	Name     *string
	Surname  *string
	Degree   *Degree
	Semester *int
}
