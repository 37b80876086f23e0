package booking

import (
	"context"
	"errors"
	"sort"
	"sync"

	"campuspilot/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeRoomRepo is an in-memory hall catalogue.
type fakeRoomRepo struct {
	rooms []models.Room
}

func (f *fakeRoomRepo) List(ctx context.Context) ([]models.Room, error) {
	out := make([]models.Room, len(f.rooms))
	copy(out, f.rooms)
	return out, nil
}

func (f *fakeRoomRepo) GetByName(ctx context.Context, name string) (*models.Room, error) {
	for i := range f.rooms {
		if f.rooms[i].Name == name {
			room := f.rooms[i]
			return &room, nil
		}
	}
	return nil, nil
}

// fakeBookingRepo is an in-memory calendar store. failListCalls makes the
// next N list calls fail, exercising the retry path.
type fakeBookingRepo struct {
	mu            sync.Mutex
	bookings      map[string]models.Booking
	failListCalls int
}

var errStoreDown = errors.New("store down")

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]models.Booking)}
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking models.Booking) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	f.bookings[booking.ID] = booking
	return booking.ID, nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	if v, ok := fields["room_name"].(string); ok {
		b.RoomName = v
	}
	if v, ok := fields["date"].(string); ok {
		b.Date = v
	}
	if v, ok := fields["start"].(int); ok {
		b.Start = v
	}
	if v, ok := fields["end"].(int); ok {
		b.End = v
	}
	if v, ok := fields["module_code"].(string); ok {
		b.ModuleCode = v
	}
	f.bookings[id] = b
	return &b, nil
}

func (f *fakeBookingRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bookings[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookingRepo) ListByRoomAndDate(ctx context.Context, roomName, date string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failListCalls > 0 {
		f.failListCalls--
		return nil, errStoreDown
	}
	var out []models.Booking
	for _, b := range f.bookings {
		if b.RoomName == roomName && b.Date == date {
			out = append(out, b)
		}
	}
	sortBookings(out)
	return out, nil
}

func (f *fakeBookingRepo) ListByRoom(ctx context.Context, roomName string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.RoomName == roomName {
			out = append(out, b)
		}
	}
	sortBookings(out)
	return out, nil
}

func (f *fakeBookingRepo) ListByModuleCode(ctx context.Context, moduleCode string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ModuleCode == moduleCode {
			out = append(out, b)
		}
	}
	sortBookings(out)
	return out, nil
}

func (f *fakeBookingRepo) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Date == date {
			out = append(out, b)
		}
	}
	sortBookings(out)
	return out, nil
}

func sortBookings(bs []models.Booking) {
	sort.Slice(bs, func(i, j int) bool {
		if bs[i].Date != bs[j].Date {
			return bs[i].Date < bs[j].Date
		}
		return bs[i].Start < bs[j].Start
	})
}

func testPolicy() Policy {
	return Policy{
		RecommendationCap: 3,
		ShiftStepMinutes:  30,
		ShiftHorizonMins:  180,
		AlternativeScore:  0.7,
		ProactiveScore:    0.4,
		FreeDayScanDays:   14,
		DayStartMinute:    8 * 60,
		DayEndMinute:      22 * 60,
	}
}

func newTestService(rooms []models.Room) (*DefaultBookingService, *fakeBookingRepo) {
	repo := newFakeBookingRepo()
	svc := &DefaultBookingService{
		RoomRepo:    &fakeRoomRepo{rooms: rooms},
		BookingRepo: repo,
		Policy:      testPolicy(),
	}
	return svc, repo
}

func intPtr(v int) *int { return &v }
