package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
	appErrors "github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/errors"
)

type mockStudentRepo struct {
	students    map[string]models.StudentDetail
	deactivated []string
	lastScope   models.AccessScope
	lastFilter  models.StudentFilter
}

func (m *mockStudentRepo) List(ctx context.Context, filter models.StudentFilter, scope models.AccessScope) ([]models.StudentDetail, int, error) {
	m.lastFilter = filter
	m.lastScope = scope
	details := make([]models.StudentDetail, 0, len(m.students))
	for _, s := range m.students {
		details = append(details, s)
	}
	return details, len(details), nil
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id string) (*models.StudentDetail, error) {
	if s, ok := m.students[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) error {
	if m.students == nil {
		m.students = make(map[string]models.StudentDetail)
	}
	if student.ID == "" {
		student.ID = "generated"
	}
	m.students[student.ID] = models.StudentDetail{Student: *student}
	return nil
}

func (m *mockStudentRepo) Update(ctx context.Context, student *models.Student) error {
	detail := m.students[student.ID]
	detail.Student = *student
	m.students[student.ID] = detail
	return nil
}

func (m *mockStudentRepo) Deactivate(ctx context.Context, id string) error {
	m.deactivated = append(m.deactivated, id)
	detail := m.students[id]
	detail.Active = false
	m.students[id] = detail
	return nil
}

type mockGroupLookup struct {
	groups map[string]models.GroupDetail
}

func (m *mockGroupLookup) FindByID(ctx context.Context, id string) (*models.GroupDetail, error) {
	if g, ok := m.groups[id]; ok {
		return &g, nil
	}
	return nil, sql.ErrNoRows
}

const validGroupID = "5f7f9a3e-8f43-4a6b-9b54-0d6f3b1c2a10"

func newStudentFixture() (*StudentService, *mockStudentRepo) {
	repo := &mockStudentRepo{}
	groups := &mockGroupLookup{groups: map[string]models.GroupDetail{
		validGroupID: {Group: models.Group{ID: validGroupID, Name: "Maternal A", CampusID: "c1"}},
	}}
	return NewStudentService(repo, groups, nil, nil), repo
}

func TestStudentServiceCreate(t *testing.T) {
	svc, repo := newStudentFixture()

	student, err := svc.Create(context.Background(), CreateStudentRequest{
		FullName:  "Valentina Ruiz",
		BirthDate: "2022-05-14",
		GroupID:   validGroupID,
		Allergies: "peanuts",
	})
	require.NoError(t, err)
	assert.Equal(t, "Valentina Ruiz", student.FullName)
	assert.True(t, student.Active)
	assert.Len(t, repo.students, 1)
}

func TestStudentServiceCreateUnknownGroup(t *testing.T) {
	svc, _ := newStudentFixture()

	_, err := svc.Create(context.Background(), CreateStudentRequest{
		FullName:  "Valentina Ruiz",
		BirthDate: "2022-05-14",
		GroupID:   "9b1de9a2-08c5-4f28-9c16-2f6dfd0a9f33",
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", appErrors.FromError(err).Code)
}

func TestStudentServiceCreateValidation(t *testing.T) {
	svc, _ := newStudentFixture()

	_, err := svc.Create(context.Background(), CreateStudentRequest{
		FullName:  "V",
		BirthDate: "14/05/2022",
		GroupID:   validGroupID,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", appErrors.FromError(err).Code)
}

func TestStudentServiceUpdatePartial(t *testing.T) {
	svc, repo := newStudentFixture()
	created, err := svc.Create(context.Background(), CreateStudentRequest{
		FullName:  "Valentina Ruiz",
		BirthDate: "2022-05-14",
		GroupID:   validGroupID,
		Allergies: "peanuts",
	})
	require.NoError(t, err)

	name := "Valentina Ruiz Ortega"
	updated, err := svc.Update(context.Background(), created.ID, UpdateStudentRequest{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.FullName)
	assert.Equal(t, "peanuts", repo.students[created.ID].Allergies)
}

func TestStudentServiceGetScope(t *testing.T) {
	svc, repo := newStudentFixture()
	repo.students = map[string]models.StudentDetail{
		"s1": {Student: models.Student{ID: "s1", GroupID: "g1", Active: true}, CampusID: "c1"},
	}

	_, err := svc.Get(context.Background(), models.AccessScope{GroupID: "g1"}, "s1")
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), models.AccessScope{GroupID: "g2"}, "s1")
	require.Error(t, err)
	assert.Equal(t, "OUT_OF_SCOPE", appErrors.FromError(err).Code)
}

func TestStudentServiceDeactivate(t *testing.T) {
	svc, repo := newStudentFixture()
	repo.students = map[string]models.StudentDetail{
		"s1": {Student: models.Student{ID: "s1", Active: true}},
	}

	require.NoError(t, svc.Deactivate(context.Background(), "s1"))
	assert.Equal(t, []string{"s1"}, repo.deactivated)

	err := svc.Deactivate(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", appErrors.FromError(err).Code)
}

func TestStudentServiceListPassesScope(t *testing.T) {
	svc, repo := newStudentFixture()

	_, pagination, err := svc.List(context.Background(), models.AccessScope{CampusID: "c1"}, models.StudentFilter{Page: 0, PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, "c1", repo.lastScope.CampusID)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)
}
