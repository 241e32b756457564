package model

// Student is one row of the roster table.
type Student struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Age       int    `json:"age"`
	ClassName string `json:"class_name"`
}

// AddStudentRequest is the raw form payload for adding a student.
// Every field is forwarded as typed text; trimming and validation happen in the
// service so that the HTTP and terminal forms behave identically.
type AddStudentRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Age       string `json:"age"`
	ClassName string `json:"class_name"`
}

// DeleteStudentRequest deletes the row at Position of the table the client is
// currently displaying. View lists the ids of that table in display order; an
// empty View means the full roster. Position -1 means nothing is selected.
type DeleteStudentRequest struct {
	Position *int     `json:"position" binding:"omitempty,min=-1"`
	View     []string `json:"view" binding:"omitempty,dive,required"`
	Confirm  bool     `json:"confirm"`
}

// ResetRosterRequest clears the roster once the user has confirmed.
type ResetRosterRequest struct {
	Confirm *bool `json:"confirm" binding:"required"`
}

// SearchQuery carries the keyword typed into the search field.
type SearchQuery struct {
	Keyword string `form:"q" binding:"max=256"`
}
