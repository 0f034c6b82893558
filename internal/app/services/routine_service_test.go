package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rahuldey/uniroutine/internal/app/models"
	"github.com/rahuldey/uniroutine/internal/app/models/dto"
	"github.com/rahuldey/uniroutine/internal/app/repositories"
	"github.com/rahuldey/uniroutine/internal/pkg/apperrors"
)

// In-memory stores mirroring the repository contracts: lookups return
// (nil, nil) when absent, the conflict query ORs the four axes, and results
// come back in insertion order.

type stubCourseStore struct{ courses []*models.Course }

func (s *stubCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	for _, c := range s.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (s *stubCourseStore) GetByName(_ context.Context, name string) (*models.Course, error) {
	for _, c := range s.courses {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

type stubDepartmentStore struct{ departments []*models.Department }

func (s *stubDepartmentStore) GetByID(_ context.Context, id int64) (*models.Department, error) {
	for _, d := range s.departments {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (s *stubDepartmentStore) GetByCode(_ context.Context, code string) (*models.Department, error) {
	for _, d := range s.departments {
		if d.Code == code {
			return d, nil
		}
	}
	return nil, nil
}

type stubFacultyStore struct{ faculties []*models.Faculty }

func (s *stubFacultyStore) GetByID(_ context.Context, id int64) (*models.Faculty, error) {
	for _, f := range s.faculties {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, nil
}

func (s *stubFacultyStore) GetByName(_ context.Context, name string) (*models.Faculty, error) {
	for _, f := range s.faculties {
		if f.Name == name {
			return f, nil
		}
	}
	return nil, nil
}

type stubRoomStore struct{ rooms []*models.Room }

func (s *stubRoomStore) GetByID(_ context.Context, id int64) (*models.Room, error) {
	for _, r := range s.rooms {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (s *stubRoomStore) GetByName(_ context.Context, name string) (*models.Room, error) {
	for _, r := range s.rooms {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, nil
}

type stubRoutineStore struct {
	routines  []*models.Routine
	nextID    int64
	createErr error
}

func (s *stubRoutineStore) Create(_ context.Context, routine *models.Routine) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.nextID++
	routine.ID = s.nextID
	s.routines = append(s.routines, routine)
	return nil
}

func (s *stubRoutineStore) FindConflict(_ context.Context, day, time string, courseID, departmentID, facultyID, roomID int64) (*models.Routine, error) {
	for _, r := range s.routines {
		if r.Day != day || r.Time != time {
			continue
		}
		if r.CourseID == courseID || r.DepartmentID == departmentID ||
			r.FacultyID == facultyID || r.RoomID == roomID {
			return r, nil
		}
	}
	return nil, nil
}

func (s *stubRoutineStore) FindDuplicate(_ context.Context, routine *models.Routine) (*models.Routine, error) {
	for _, r := range s.routines {
		if r.CourseID == routine.CourseID && r.DepartmentID == routine.DepartmentID &&
			r.Semester == routine.Semester && r.Subject == routine.Subject &&
			r.FacultyID == routine.FacultyID && r.RoomID == routine.RoomID &&
			r.Day == routine.Day && r.Time == routine.Time {
			return r, nil
		}
	}
	return nil, nil
}

func (s *stubRoutineStore) GetByID(_ context.Context, id int64) (*models.Routine, error) {
	for _, r := range s.routines {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (s *stubRoutineStore) GetAll(_ context.Context) ([]*models.Routine, error) {
	return s.routines, nil
}

func (s *stubRoutineStore) Delete(_ context.Context, id int64) error {
	for i, r := range s.routines {
		if r.ID == id {
			s.routines = append(s.routines[:i], s.routines[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type recordedEvent struct {
	event   string
	routine *models.Routine
}

type stubPublisher struct{ events []recordedEvent }

func (p *stubPublisher) Publish(event string, routine *models.Routine) {
	p.events = append(p.events, recordedEvent{event: event, routine: routine})
}

type routineFixture struct {
	service  *RoutineService
	routines *stubRoutineStore
	events   *stubPublisher
}

func newRoutineFixture() *routineFixture {
	courses := &stubCourseStore{courses: []*models.Course{
		{ID: 1, Name: "Data Structures", DepartmentID: 1},
		{ID: 2, Name: "Thermodynamics", DepartmentID: 2},
	}}
	departments := &stubDepartmentStore{departments: []*models.Department{
		{ID: 1, Code: "CSE", Name: "Computer Science"},
		{ID: 2, Code: "ME", Name: "Mechanical Engineering"},
	}}
	faculties := &stubFacultyStore{faculties: []*models.Faculty{
		{ID: 1, Name: "Dr. Rahman", Email: "rahman@univ.edu", DepartmentID: 1},
		{ID: 2, Name: "Dr. Sen", Email: "sen@univ.edu", DepartmentID: 2},
	}}
	rooms := &stubRoomStore{rooms: []*models.Room{
		{ID: 1, Name: "301", Capacity: 60, Type: models.RoomClassroom, DepartmentID: 1},
		{ID: 2, Name: "Lab-2", Capacity: 30, Type: models.RoomLab, DepartmentID: 1},
	}}
	routines := &stubRoutineStore{}
	events := &stubPublisher{}

	service := NewRoutineService(courses, departments, faculties, rooms, routines, events, zerolog.Nop())
	return &routineFixture{service: service, routines: routines, events: events}
}

func validAdmitRequest() *dto.AdmitRoutineRequest {
	return &dto.AdmitRoutineRequest{
		Course:     "Data Structures",
		Department: "CSE",
		Semester:   "3rd",
		Subject:    "Trees and Graphs",
		Faculty:    "Dr. Rahman",
		Room:       "301",
		Day:        "Monday",
		Time:       "09:00-10:00",
	}
}

func TestAdmitCreatesRoutineWithExpandedReferences(t *testing.T) {
	f := newRoutineFixture()

	routine, err := f.service.Admit(context.Background(), validAdmitRequest())
	if err != nil {
		t.Fatalf("Admit returned error: %v", err)
	}
	if routine.ID == 0 {
		t.Error("expected routine to be assigned an id")
	}
	if routine.Course == nil || routine.Course.Name != "Data Structures" {
		t.Errorf("course not populated: %+v", routine.Course)
	}
	if routine.Department == nil || routine.Department.Code != "CSE" {
		t.Errorf("department not populated: %+v", routine.Department)
	}
	if routine.Faculty == nil || routine.Faculty.Name != "Dr. Rahman" {
		t.Errorf("faculty not populated: %+v", routine.Faculty)
	}
	if routine.Room == nil || routine.Room.Name != "301" {
		t.Errorf("room not populated: %+v", routine.Room)
	}
	if len(f.routines.routines) != 1 {
		t.Errorf("expected 1 stored routine, got %d", len(f.routines.routines))
	}
	if len(f.events.events) != 1 || f.events.events[0].event != EventRoutineCreated {
		t.Errorf("expected %s event, got %+v", EventRoutineCreated, f.events.events)
	}
}

func TestAdmitResolvesReferencesByID(t *testing.T) {
	f := newRoutineFixture()

	req := validAdmitRequest()
	req.Course = "1"
	req.Department = "1"
	req.Faculty = "1"
	req.Room = "2"

	routine, err := f.service.Admit(context.Background(), req)
	if err != nil {
		t.Fatalf("Admit returned error: %v", err)
	}
	if routine.Room.Name != "Lab-2" {
		t.Errorf("expected room resolved by id, got %q", routine.Room.Name)
	}
}

func TestAdmitResolvesNumericNameWhenIDLookupMisses(t *testing.T) {
	f := newRoutineFixture()

	// No room carries id 301, so "301" must fall back to the name lookup.
	req := validAdmitRequest()
	req.Room = "301"

	routine, err := f.service.Admit(context.Background(), req)
	if err != nil {
		t.Fatalf("Admit returned error: %v", err)
	}
	if routine.Room.ID != 1 || routine.Room.Name != "301" {
		t.Errorf("expected room 301 resolved by name, got %+v", routine.Room)
	}
}

func TestAdmitPrefersIDOverNumericName(t *testing.T) {
	f := newRoutineFixture()
	f.service.rooms.(*stubRoomStore).rooms = []*models.Room{
		{ID: 2, Name: "Lab-2", Capacity: 30, Type: models.RoomLab, DepartmentID: 1},
		{ID: 3, Name: "2", Capacity: 40, Type: models.RoomClassroom, DepartmentID: 1},
	}

	req := validAdmitRequest()
	req.Room = "2"

	routine, err := f.service.Admit(context.Background(), req)
	if err != nil {
		t.Fatalf("Admit returned error: %v", err)
	}
	if routine.Room.ID != 2 {
		t.Errorf("expected id lookup to win for %q, got room %+v", req.Room, routine.Room)
	}
}

func TestAdmitDepartmentCodeIsCaseInsensitive(t *testing.T) {
	f := newRoutineFixture()

	req := validAdmitRequest()
	req.Department = "cse"

	routine, err := f.service.Admit(context.Background(), req)
	if err != nil {
		t.Fatalf("Admit returned error: %v", err)
	}
	if routine.Department.ID != 1 {
		t.Errorf("expected department 1, got %d", routine.Department.ID)
	}
}

func TestAdmitRejectsMissingFields(t *testing.T) {
	f := newRoutineFixture()

	req := validAdmitRequest()
	req.Subject = "   "

	_, err := f.service.Admit(context.Background(), req)
	assertRejection(t, err, apperrors.ErrValidation, MsgAllFieldsRequired)
	if len(f.routines.routines) != 0 {
		t.Error("rejected request must not be stored")
	}
}

func TestAdmitRejectsInvalidDay(t *testing.T) {
	f := newRoutineFixture()

	req := validAdmitRequest()
	req.Day = "Sunday"

	_, err := f.service.Admit(context.Background(), req)
	assertRejection(t, err, apperrors.ErrValidation, MsgInvalidDay)
}

func TestAdmitRejectsUnknownReference(t *testing.T) {
	f := newRoutineFixture()

	cases := map[string]func(*dto.AdmitRoutineRequest){
		"course":     func(r *dto.AdmitRoutineRequest) { r.Course = "Quantum Computing" },
		"department": func(r *dto.AdmitRoutineRequest) { r.Department = "EEE" },
		"faculty":    func(r *dto.AdmitRoutineRequest) { r.Faculty = "Dr. Nobody" },
		"room":       func(r *dto.AdmitRoutineRequest) { r.Room = "999" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validAdmitRequest()
			mutate(req)

			_, err := f.service.Admit(context.Background(), req)
			assertRejection(t, err, apperrors.ErrValidation, MsgInvalidReference)
		})
	}
}

func TestAdmitNameLookupIsCaseSensitive(t *testing.T) {
	f := newRoutineFixture()

	req := validAdmitRequest()
	req.Faculty = "dr. rahman"

	_, err := f.service.Admit(context.Background(), req)
	assertRejection(t, err, apperrors.ErrValidation, MsgInvalidReference)
}

func TestAdmitDetectsFacultyConflict(t *testing.T) {
	f := newRoutineFixture()

	if _, err := f.service.Admit(context.Background(), validAdmitRequest()); err != nil {
		t.Fatalf("seed Admit returned error: %v", err)
	}

	// Same faculty, same slot, everything else different.
	req := validAdmitRequest()
	req.Course = "Thermodynamics"
	req.Department = "ME"
	req.Room = "Lab-2"
	req.Subject = "Heat Engines"

	_, err := f.service.Admit(context.Background(), req)
	assertRejection(t, err, apperrors.ErrConflict, MsgFacultyConflict)
	if len(f.routines.routines) != 1 {
		t.Errorf("conflicting request must not be stored, have %d routines", len(f.routines.routines))
	}
}

func TestAdmitDetectsRoomConflict(t *testing.T) {
	f := newRoutineFixture()

	if _, err := f.service.Admit(context.Background(), validAdmitRequest()); err != nil {
		t.Fatalf("seed Admit returned error: %v", err)
	}

	req := validAdmitRequest()
	req.Course = "Thermodynamics"
	req.Department = "ME"
	req.Faculty = "Dr. Sen"
	req.Subject = "Heat Engines"

	_, err := f.service.Admit(context.Background(), req)
	assertRejection(t, err, apperrors.ErrConflict, MsgRoomConflict)
}

func TestAdmitDetectsCourseAndDepartmentConflicts(t *testing.T) {
	f := newRoutineFixture()

	if _, err := f.service.Admit(context.Background(), validAdmitRequest()); err != nil {
		t.Fatalf("seed Admit returned error: %v", err)
	}

	t.Run("course", func(t *testing.T) {
		req := validAdmitRequest()
		req.Department = "ME"
		req.Faculty = "Dr. Sen"
		req.Room = "Lab-2"

		_, err := f.service.Admit(context.Background(), req)
		assertRejection(t, err, apperrors.ErrConflict, MsgCourseConflict)
	})

	t.Run("department", func(t *testing.T) {
		req := validAdmitRequest()
		req.Course = "Thermodynamics"
		req.Faculty = "Dr. Sen"
		req.Room = "Lab-2"

		_, err := f.service.Admit(context.Background(), req)
		assertRejection(t, err, apperrors.ErrConflict, MsgDepartmentConflict)
	})
}

func TestAdmitConflictReasonPriority(t *testing.T) {
	f := newRoutineFixture()

	if _, err := f.service.Admit(context.Background(), validAdmitRequest()); err != nil {
		t.Fatalf("seed Admit returned error: %v", err)
	}

	// Faculty and room both collide; faculty is reported.
	req := validAdmitRequest()
	req.Course = "Thermodynamics"
	req.Department = "ME"
	req.Subject = "Heat Engines"

	_, err := f.service.Admit(context.Background(), req)
	assertRejection(t, err, apperrors.ErrConflict, MsgFacultyConflict)
}

func TestAdmitSameFacultyDifferentSlotSucceeds(t *testing.T) {
	f := newRoutineFixture()

	if _, err := f.service.Admit(context.Background(), validAdmitRequest()); err != nil {
		t.Fatalf("seed Admit returned error: %v", err)
	}

	req := validAdmitRequest()
	req.Time = "10:00-11:00"

	if _, err := f.service.Admit(context.Background(), req); err != nil {
		t.Fatalf("different slot should be admitted: %v", err)
	}
	if len(f.routines.routines) != 2 {
		t.Errorf("expected 2 routines, got %d", len(f.routines.routines))
	}
}

func TestAdmitReportsDuplicateWhenConflictQueryMisses(t *testing.T) {
	f := newRoutineFixture()

	// A store whose conflict query misses but whose duplicate query matches,
	// so the duplicate path is exercised in isolation.
	seeded := &models.Routine{
		ID: 99, CourseID: 1, DepartmentID: 1, Semester: "3rd", Subject: "Trees and Graphs",
		FacultyID: 1, RoomID: 1, Day: "Monday", Time: "09:00-10:00",
	}
	dup := &duplicateOnlyStore{stubRoutineStore: f.routines, duplicate: seeded}
	service := NewRoutineService(
		&stubCourseStore{courses: []*models.Course{{ID: 1, Name: "Data Structures", DepartmentID: 1}}},
		&stubDepartmentStore{departments: []*models.Department{{ID: 1, Code: "CSE", Name: "Computer Science"}}},
		&stubFacultyStore{faculties: []*models.Faculty{{ID: 1, Name: "Dr. Rahman", Email: "rahman@univ.edu", DepartmentID: 1}}},
		&stubRoomStore{rooms: []*models.Room{{ID: 1, Name: "301", Capacity: 60, Type: models.RoomClassroom, DepartmentID: 1}}},
		dup, nil, zerolog.Nop())

	_, err := service.Admit(context.Background(), validAdmitRequest())
	assertRejection(t, err, apperrors.ErrConflict, MsgDuplicateRoutine)
}

// duplicateOnlyStore suppresses the conflict query so the duplicate check is
// reachable on its own.
type duplicateOnlyStore struct {
	*stubRoutineStore
	duplicate *models.Routine
}

func (s *duplicateOnlyStore) FindConflict(context.Context, string, string, int64, int64, int64, int64) (*models.Routine, error) {
	return nil, nil
}

func (s *duplicateOnlyStore) FindDuplicate(_ context.Context, _ *models.Routine) (*models.Routine, error) {
	return s.duplicate, nil
}

func TestAdmitMapsSlotTakenToGenericConflict(t *testing.T) {
	f := newRoutineFixture()
	f.routines.createErr = repositories.ErrSlotTaken

	_, err := f.service.Admit(context.Background(), validAdmitRequest())
	assertRejection(t, err, apperrors.ErrConflict, MsgGenericConflict)
	if len(f.events.events) != 0 {
		t.Error("no event must be published for a rejected admission")
	}
}

func TestDeleteRoutine(t *testing.T) {
	f := newRoutineFixture()

	routine, err := f.service.Admit(context.Background(), validAdmitRequest())
	if err != nil {
		t.Fatalf("Admit returned error: %v", err)
	}

	if err := f.service.Delete(context.Background(), routine.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(f.routines.routines) != 0 {
		t.Errorf("expected empty store, got %d routines", len(f.routines.routines))
	}
	last := f.events.events[len(f.events.events)-1]
	if last.event != EventRoutineDeleted {
		t.Errorf("expected %s event, got %s", EventRoutineDeleted, last.event)
	}
}

func TestDeleteRoutineNotFound(t *testing.T) {
	f := newRoutineFixture()

	err := f.service.Delete(context.Background(), 42)
	assertRejection(t, err, apperrors.ErrNotFound, MsgRoutineNotFound)
}

func TestParseRef(t *testing.T) {
	ref := ParseRef("12")
	if id, ok := ref.ByID(); !ok || id != 12 {
		t.Errorf("expected id ref 12, got %d ok=%v", id, ok)
	}
	if ref.Key() != "12" {
		t.Errorf("numeric ref must keep its key form, got %q", ref.Key())
	}
	if _, ok := ParseRef("Data Structures").ByID(); ok {
		t.Error("name must not parse as id")
	}
	if _, ok := ParseRef("-3").ByID(); ok {
		t.Error("negative value must not parse as id")
	}
	if key := ParseRef("CSE").Key(); key != "CSE" {
		t.Errorf("expected key CSE, got %q", key)
	}
}

func assertRejection(t *testing.T, err, sentinel error, message string) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, sentinel) {
		t.Errorf("expected %v, got %v", sentinel, err)
	}
	if err.Error() != message {
		t.Errorf("expected message %q, got %q", message, err.Error())
	}
}
