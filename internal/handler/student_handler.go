package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/roster/internal/model"
	"github.com/stemsi/roster/internal/response"
	"github.com/stemsi/roster/internal/service"
	"github.com/stemsi/roster/internal/validator"
)

// StudentHandler is the HTTP form over the roster: add, delete, search, reset.
type StudentHandler struct {
	studentService *service.StudentService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService *service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// ListStudents godoc
// GET /api/v1/students?q=keyword
// Returns the roster filtered by keyword; an empty keyword returns everything.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	var q model.SearchQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	res := h.studentService.Search(q.Keyword)
	body := gin.H{"students": res.Students, "search": res.Status}
	if res.Status == service.SearchNoMatch {
		body["message"] = response.MsgNoMatch
	}
	response.Success(c, http.StatusOK, body)
}

// CreateStudent godoc
// POST /api/v1/students
// Adds a student from raw form text.
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req model.AddStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload, fields)
		return
	}

	student, err := h.studentService.Add(req.ID, req.Name, req.Age, req.ClassName)
	if err != nil {
		failRoster(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"student":  student,
		"students": h.studentService.List(),
		"message":  response.MsgStudentAdded,
	})
}

// DeleteStudent godoc
// DELETE /api/v1/students/:id?confirm=true
// Deletes a student by ID once the caller has confirmed.
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	if !confirmed(c.Query("confirm")) {
		response.Fail(c, http.StatusPreconditionRequired, response.ErrConfirmationRequired)
		return
	}

	students, err := h.studentService.DeleteByID(c.Param("id"))
	if err != nil {
		failRoster(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"students": students, "message": response.MsgStudentDeleted})
}

// DeleteSelected godoc
// POST /api/v1/students/delete
// Deletes the row selected in the table the client is displaying.
func (h *StudentHandler) DeleteSelected(c *gin.Context) {
	var req model.DeleteStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	position := -1
	if req.Position != nil {
		position = *req.Position
	}
	if position < 0 {
		failRoster(c, service.ErrNoSelection)
		return
	}
	if !req.Confirm {
		response.Fail(c, http.StatusPreconditionRequired, response.ErrConfirmationRequired)
		return
	}

	var view []model.Student
	if len(req.View) > 0 {
		view = make([]model.Student, len(req.View))
		for i, id := range req.View {
			view[i] = model.Student{ID: id}
		}
	}

	students, err := h.studentService.DeleteAt(view, position)
	if err != nil {
		failRoster(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"students": students, "message": response.MsgStudentDeleted})
}

// ResetStudents godoc
// POST /api/v1/students/reset
// Clears the roster once the caller has confirmed.
func (h *StudentHandler) ResetStudents(c *gin.Context) {
	var req model.ResetRosterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	if !*req.Confirm {
		response.Fail(c, http.StatusPreconditionRequired, response.ErrConfirmationRequired)
		return
	}

	students := h.studentService.Reset()
	response.Success(c, http.StatusOK, gin.H{"students": students, "message": response.MsgRosterReset})
}

// failRoster maps a roster error onto the response envelope.
func failRoster(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMissingField):
		response.Fail(c, http.StatusBadRequest, response.ErrMissingField)
	case errors.Is(err, service.ErrInvalidNumber):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidNumber)
	case errors.Is(err, service.ErrInvalidAge):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidAge)
	case errors.Is(err, service.ErrDuplicateID):
		response.Fail(c, http.StatusConflict, response.ErrDuplicateID)
	case errors.Is(err, service.ErrNoSelection):
		response.Fail(c, http.StatusBadRequest, response.ErrNoSelection)
	case errors.Is(err, service.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	default:
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

func confirmed(raw string) bool {
	ok, err := strconv.ParseBool(raw)
	return err == nil && ok
}
