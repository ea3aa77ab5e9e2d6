package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	appModels "github.com/teilnahme/teilnahme/internal/app/models"
	appServices "github.com/teilnahme/teilnahme/internal/app/services"
)

var defaultSubjects = []appModels.Subject{
	{Name: "Programming Fundamentals", Semester: 1, Degree: appModels.DegreeBachelor},
	{Name: "Databases", Semester: 3, Degree: appModels.DegreeBachelor},
	{Name: "Distributed Systems", Semester: 2, Degree: appModels.DegreeMaster},
}

var defaultStudents = []appModels.Student{
	{Name: "Anna", Surname: "Schmidt", Degree: appModels.DegreeBachelor, Semester: 1},
	{Name: "Jonas", Surname: "Weber", Degree: appModels.DegreeBachelor, Semester: 3},
	{Name: "Lea", Surname: "Fischer", Degree: appModels.DegreeBachelor, Semester: 3},
	{Name: "Mehmet", Surname: "Yilmaz", Degree: appModels.DegreeMaster, Semester: 2},
}

// CreateDefaultData creates demo subjects, students and one classroom per
// subject holding the students of the same degree and semester. Nothing is
// created when subjects already exist.
func CreateDefaultData(
	ctx context.Context,
	subjects appServices.SubjectService,
	students appServices.StudentService,
	classrooms appServices.ClassroomService,
	lgr zerolog.Logger,
) error {
	existing, err := subjects.GetAllSubjects(ctx)
	if err != nil {
		return fmt.Errorf("checking existing subjects: %w", err)
	}
	if len(existing) > 0 {
		lgr.Info().Int("subjects", len(existing)).Msg("Default data skipped, subjects already exist")
		return nil
	}

	lgr.Info().Msg("Creating default data (Subjects/Students/Classrooms)...")
	var finalErr error // collects errors without stopping the process

	var createdStudents []appModels.Student
	for _, s := range defaultStudents {
		created, err := students.CreateStudent(ctx, s)
		if err != nil {
			lgr.Error().Err(err).Str("name", s.Name).Msg("Error creating default student")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		createdStudents = append(createdStudents, created)
	}

	for _, subj := range defaultSubjects {
		created, err := subjects.CreateSubject(ctx, subj)
		if err != nil {
			lgr.Error().Err(err).Str("name", subj.Name).Msg("Error creating default subject")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		classroom := appModels.Classroom{SubjectID: created.ID, StudentIDs: appModels.IDList{}}
		for _, st := range createdStudents {
			if st.Degree == created.Degree && st.Semester == created.Semester {
				classroom.StudentIDs = append(classroom.StudentIDs, st.ID)
			}
		}
		if _, err := classrooms.CreateClassroom(ctx, classroom); err != nil {
			lgr.Error().Err(err).Int64("subject_id", created.ID).Msg("Error creating default classroom")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data created.")
	}
	return finalErr
}
