package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teilnahme/teilnahme/internal/app/controllers"
	"github.com/teilnahme/teilnahme/internal/app/models/dto"
)

// Controllers groups the HTTP handlers mounted under /api/v1
type Controllers struct {
	Student    *controllers.StudentController
	Subject    *controllers.SubjectController
	Classroom  *controllers.ClassroomController
	Attendance *controllers.AttendanceController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, storageKind string) {
	router.GET("/ping", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// API version group
	v1 := router.Group("/api/v1")

	// @Summary Liveness check
	// @Tags health
	// @Produce json
	// @Success 200 {object} dto.APIResponse{data=dto.HealthResponse}
	// @Router /health [get]
	v1.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.HealthResponse{
			Status:  "ok",
			Storage: storageKind,
		}))
	})

	students := v1.Group("/students")
	{
		students.GET("", c.Student.GetStudents)
		students.GET("/:id", c.Student.GetStudentByID)
		students.POST("", c.Student.CreateStudent)
		students.PUT("/:id", c.Student.UpdateStudent)
		students.DELETE("/:id", c.Student.DeleteStudent)
	}

	subjects := v1.Group("/subjects")
	{
		subjects.GET("", c.Subject.GetSubjects)
		subjects.GET("/:id", c.Subject.GetSubjectByID)
		subjects.POST("", c.Subject.CreateSubject)
		subjects.PUT("/:id", c.Subject.UpdateSubject)
		subjects.DELETE("/:id", c.Subject.DeleteSubject)
	}

	classrooms := v1.Group("/classrooms")
	{
		classrooms.GET("", c.Classroom.GetClassrooms)
		classrooms.GET("/:id", c.Classroom.GetClassroomByID)
		classrooms.POST("", c.Classroom.CreateClassroom)
		classrooms.PUT("/:id", c.Classroom.UpdateClassroom)
		classrooms.DELETE("/:id", c.Classroom.DeleteClassroom)

		// Roster
		classrooms.POST("/:id/students", c.Classroom.AddStudents)
		classrooms.POST("/:id/students/:studentId", c.Classroom.AddStudent)
		classrooms.DELETE("/:id/students/:studentId", c.Classroom.RemoveStudent)
	}

	attendance := v1.Group("/attendance")
	{
		attendance.GET("", c.Attendance.GetRecords)
		attendance.GET("/:id", c.Attendance.GetRecordByID)
		attendance.POST("", c.Attendance.CreateRecord)
		attendance.DELETE("/:id", c.Attendance.DeleteRecord)
	}
}
