package shell

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/roster/internal/metrics"
	"github.com/stemsi/roster/internal/model"
	"github.com/stemsi/roster/internal/repository"
	"github.com/stemsi/roster/internal/service"
)

func seededService(t *testing.T) *service.StudentService {
	t.Helper()
	svc := service.NewStudentService(repository.NewStudentRepository(), metrics.NewRecorder(), zerolog.Nop())
	svc.Seed()
	return svc
}

func run(t *testing.T, svc *service.StudentService, script string, opts ...Option) string {
	t.Helper()
	var out bytes.Buffer
	sh := New(svc, strings.NewReader(script), &out, opts...)
	require.NoError(t, sh.Run())
	return out.String()
}

func TestRenderTableGolden(t *testing.T) {
	tests := []struct {
		name     string
		students []model.Student
	}{
		{"seeded_table", service.SampleStudents},
		{"empty_table", nil},
		{"blank_class_table", []model.Student{{ID: "N9", Name: "Zhao Liu", Age: 22}}},
	}

	g := goldie.New(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RenderTable(&buf, tt.students))
			g.Assert(t, tt.name, buf.Bytes())
		})
	}
}

func TestRunShowsTableAndStopsAtEOF(t *testing.T) {
	out := run(t, seededService(t), "")
	assert.Contains(t, out, "Zhang San")
	assert.Contains(t, out, "Total: 3")
}

func TestQuit(t *testing.T) {
	svc := seededService(t)
	out := run(t, svc, "quit\nreset\ny\n")
	assert.Len(t, svc.List(), 3)
	assert.NotContains(t, out, "Are you sure")
}

func TestSearch(t *testing.T) {
	out := run(t, seededService(t), "search Li\n")
	last := out[strings.LastIndex(out, "ID "):]
	assert.Contains(t, last, "Li Si")
	assert.NotContains(t, last, "Zhang San")
	assert.Contains(t, last, "Total: 1")
}

func TestSearchNoMatch(t *testing.T) {
	out := run(t, seededService(t), "search nobody\n")
	assert.Contains(t, out, "Total: 0")
	assert.Contains(t, out, "No matching students found\n")
}

func TestAddInline(t *testing.T) {
	svc := seededService(t)
	out := run(t, svc, "add N9 | Zhao Liu | 22 | 23 CS Class 2\n")

	assert.Contains(t, out, "Student added successfully\n")
	assert.Contains(t, out, "Total: 4")
	list := svc.List()
	require.Len(t, list, 4)
	assert.Equal(t, model.Student{ID: "N9", Name: "Zhao Liu", Age: 22, ClassName: "23 CS Class 2"}, list[3])
}

func TestAddPrompted(t *testing.T) {
	svc := seededService(t)
	var out bytes.Buffer
	sh := New(svc, strings.NewReader("add\nN9\nZhao Liu\n22\n\n"), &out, Interactive(true))
	require.NoError(t, sh.Run())

	assert.Contains(t, out.String(), "ID: Name: Age: Class: ")
	require.Len(t, svc.List(), 4)
	assert.Equal(t, "", svc.List()[3].ClassName)
}

func TestAddErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"missing", "add N9 |  | 22 | C", "ID, name, and age cannot be empty"},
		{"number", "add N9 | Zhao Liu | abc | C", "Age must be a number"},
		{"age", "add N9 | Zhao Liu | 0 | C", "Age must be a positive integer"},
		{"duplicate", "add N221833001 | X | 19 | C", "ID already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := seededService(t)
			out := run(t, svc, tt.line+"\n")
			assert.Contains(t, out, "Input Error: "+tt.want+"\n")
			assert.Len(t, svc.List(), 3)
		})
	}
}

func TestDeleteConfirmed(t *testing.T) {
	svc := seededService(t)
	out := run(t, svc, "delete 2\ny\n")

	assert.Contains(t, out, "Are you sure to delete the selected student? [y/N]: ")
	list := svc.List()
	require.Len(t, list, 2)
	assert.Equal(t, "N221833001", list[0].ID)
	assert.Equal(t, "N221833003", list[1].ID)
}

func TestDeleteCancelled(t *testing.T) {
	svc := seededService(t)
	out := run(t, svc, "delete 1\nn\n")
	assert.Contains(t, out, "Cancelled\n")
	assert.Len(t, svc.List(), 3)
}

func TestDeleteNoSelection(t *testing.T) {
	for _, arg := range []string{"", "0", "4", "x"} {
		t.Run(arg, func(t *testing.T) {
			svc := seededService(t)
			asked := false
			confirm := ConfirmFunc(func(string) (bool, error) {
				asked = true
				return true, nil
			})

			out := run(t, svc, "delete "+arg+"\n", WithConfirmer(confirm))
			assert.Contains(t, out, "Please select a student to delete\n")
			assert.False(t, asked)
			assert.Len(t, svc.List(), 3)
		})
	}
}

func TestDeleteUsesDisplayedView(t *testing.T) {
	svc := seededService(t)
	yes := ConfirmFunc(func(string) (bool, error) { return true, nil })

	run(t, svc, "search Wang\ndelete 1\n", WithConfirmer(yes))

	list := svc.List()
	require.Len(t, list, 2)
	for _, s := range list {
		assert.NotEqual(t, "N221833003", s.ID)
	}
}

func TestDeleteStaleView(t *testing.T) {
	svc := seededService(t)
	yes := ConfirmFunc(func(string) (bool, error) { return true, nil })

	var out bytes.Buffer
	sh := New(svc, strings.NewReader(""), &out, WithConfirmer(yes))
	require.NoError(t, sh.Run())

	_, err := svc.DeleteByID("N221833001")
	require.NoError(t, err)

	_, err = sh.Exec("delete 1")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Student not found\n")
	assert.Len(t, svc.List(), 2)
}

func TestConfirmerError(t *testing.T) {
	boom := errors.New("boom")
	fail := ConfirmFunc(func(string) (bool, error) { return false, boom })

	var out bytes.Buffer
	sh := New(seededService(t), strings.NewReader("reset\n"), &out, WithConfirmer(fail))
	assert.ErrorIs(t, sh.Run(), boom)
}

func TestReset(t *testing.T) {
	svc := seededService(t)
	out := run(t, svc, "reset\nyes\n")

	assert.Contains(t, out, "Are you sure to reset all student data? [y/N]: ")
	assert.True(t, strings.HasSuffix(out, "Total: 0\n"))
	assert.Empty(t, svc.List())
}

func TestResetCancelled(t *testing.T) {
	svc := seededService(t)
	out := run(t, svc, "reset\n\n")
	assert.Contains(t, out, "Cancelled\n")
	assert.Len(t, svc.List(), 3)
}

func TestHelpAndUnknown(t *testing.T) {
	out := run(t, seededService(t), "help\nfrobnicate\n")
	assert.Contains(t, out, "Commands:")
	assert.Contains(t, out, "Unknown command \"frobnicate\"")
}

func TestInteractivePrompt(t *testing.T) {
	out := run(t, seededService(t), "list\n", Interactive(true))
	assert.Equal(t, 2, strings.Count(out, "> "))
}
