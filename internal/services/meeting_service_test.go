package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/condomaster/api/internal/logger"
	"github.com/condomaster/api/internal/models"
)

func newMeetingService(meetings *MockMeetingRepository, houses *MockHouseRepository, fees *MockFeeRepository) MeetingService {
	return NewMeetingService(meetings, houses, fees, logger.New("test"))
}

func TestCreateMeeting_Success(t *testing.T) {
	mockMeetings := new(MockMeetingRepository)
	mockHouses := new(MockHouseRepository)
	mockFees := new(MockFeeRepository)
	service := newMeetingService(mockMeetings, mockHouses, mockFees)

	ctx := context.Background()
	mockMeetings.On("Create", ctx, mock.AnythingOfType("*models.Meeting")).Return(nil)

	created, err := service.CreateMeeting(ctx, &models.Meeting{
		Name: "Asamblea Ordinaria Abril",
		Date: "2024-04-15",
	}, "admin@condominio.cl")

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "admin@condominio.cl", created.CreatedBy)
	assert.NotNil(t, created.Attendance, "attendance map should be initialized")
	assert.False(t, created.CreatedAt.IsZero())
	mockMeetings.AssertExpectations(t)
}

func TestCreateMeeting_MissingFields(t *testing.T) {
	mockMeetings := new(MockMeetingRepository)
	mockHouses := new(MockHouseRepository)
	mockFees := new(MockFeeRepository)
	service := newMeetingService(mockMeetings, mockHouses, mockFees)

	_, err := service.CreateMeeting(context.Background(), &models.Meeting{Date: "2024-04-15"}, "admin")
	assert.ErrorIs(t, err, ErrInvalidMeeting)

	_, err = service.CreateMeeting(context.Background(), &models.Meeting{Name: "Asamblea"}, "admin")
	assert.ErrorIs(t, err, ErrInvalidMeeting)

	mockMeetings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMeetingStats(t *testing.T) {
	mockMeetings := new(MockMeetingRepository)
	mockHouses := new(MockHouseRepository)
	mockFees := new(MockFeeRepository)
	service := newMeetingService(mockMeetings, mockHouses, mockFees)

	ctx := context.Background()
	meeting := &models.Meeting{
		ID:   "m1",
		Name: "Asamblea",
		Date: "2024-04-15",
		Attendance: map[models.EntityID]string{
			"1": models.AttendancePresent,
			"2": models.AttendanceJustified,
			"3": models.AttendanceAbsent,
			// house 4 has no entry at all
		},
	}
	houses := []models.House{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}}

	mockMeetings.On("GetByID", ctx, models.EntityID("m1")).Return(meeting, nil)
	mockHouses.On("List", ctx).Return(houses, nil)

	stats, err := service.MeetingStats(ctx, "m1")

	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Present)
	assert.Equal(t, 1, stats.Justified)
	// Explicitly absent and missing from the map both count as absent.
	assert.Equal(t, 2, stats.Absent)
	assert.InDelta(t, 25.0, stats.Percent, 0.001)
}

func TestGenerateFines_Success(t *testing.T) {
	mockMeetings := new(MockMeetingRepository)
	mockHouses := new(MockHouseRepository)
	mockFees := new(MockFeeRepository)
	service := newMeetingService(mockMeetings, mockHouses, mockFees)

	ctx := context.Background()
	meeting := &models.Meeting{
		ID:   "m1",
		Name: "Asamblea Abril",
		Date: "2024-04-15",
		Attendance: map[models.EntityID]string{
			"1": models.AttendancePresent,
			"2": models.AttendanceJustified,
		},
	}
	houses := []models.House{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}}

	mockMeetings.On("GetByID", ctx, models.EntityID("m1")).Return(meeting, nil)
	mockFees.On("GetByName", ctx, "Multa: Asamblea Abril").Return(nil, nil)
	mockHouses.On("List", ctx).Return(houses, nil)
	mockFees.On("Create", ctx, mock.AnythingOfType("*models.FeeConfig")).Return(nil)

	result, err := service.GenerateFines(ctx, "m1", 10000)

	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, 2, result.AbsentHouses)

	fee := result.Fee
	assert.Equal(t, "Multa: Asamblea Abril", fee.Name)
	assert.Equal(t, models.FeeCategoryFine, fee.Category)
	assert.Equal(t, 10000, fee.DefaultAmount)
	// April is month index 3 and the fine is confined to it.
	assert.Equal(t, 2024, fee.StartYear)
	assert.Equal(t, 3, fee.StartMonth)
	require.True(t, fee.Closed())
	assert.Equal(t, 3, *fee.EndMonth)
	assert.Equal(t, []int{3}, fee.ApplicableMonths)
	assert.Equal(t, []models.EntityID{"3", "4"}, fee.TargetHouseIDs)
	mockFees.AssertExpectations(t)
}

func TestGenerateFines_Idempotent(t *testing.T) {
	mockMeetings := new(MockMeetingRepository)
	mockHouses := new(MockHouseRepository)
	mockFees := new(MockFeeRepository)
	service := newMeetingService(mockMeetings, mockHouses, mockFees)

	ctx := context.Background()
	meeting := &models.Meeting{ID: "m1", Name: "Asamblea Abril", Date: "2024-04-15"}
	existing := &models.FeeConfig{
		ID:             "f1",
		Name:           "Multa: Asamblea Abril",
		Category:       models.FeeCategoryFine,
		TargetHouseIDs: []models.EntityID{"3", "4"},
	}

	mockMeetings.On("GetByID", ctx, models.EntityID("m1")).Return(meeting, nil)
	mockFees.On("GetByName", ctx, "Multa: Asamblea Abril").Return(existing, nil)

	result, err := service.GenerateFines(ctx, "m1", 10000)

	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, existing, result.Fee)
	assert.Equal(t, 2, result.AbsentHouses)
	mockFees.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerateFines_FullAttendance(t *testing.T) {
	// Nobody absent still produces the fine record, targeting an empty
	// list so it charges no house.
	mockMeetings := new(MockMeetingRepository)
	mockHouses := new(MockHouseRepository)
	mockFees := new(MockFeeRepository)
	service := newMeetingService(mockMeetings, mockHouses, mockFees)

	ctx := context.Background()
	meeting := &models.Meeting{
		ID:   "m1",
		Name: "Asamblea",
		Date: "2024-04-15",
		Attendance: map[models.EntityID]string{
			"1": models.AttendancePresent,
			"2": models.AttendancePresent,
		},
	}
	houses := []models.House{{ID: "1"}, {ID: "2"}}

	mockMeetings.On("GetByID", ctx, models.EntityID("m1")).Return(meeting, nil)
	mockFees.On("GetByName", ctx, "Multa: Asamblea").Return(nil, nil)
	mockHouses.On("List", ctx).Return(houses, nil)
	mockFees.On("Create", ctx, mock.AnythingOfType("*models.FeeConfig")).Return(nil)

	result, err := service.GenerateFines(ctx, "m1", 5000)

	require.NoError(t, err)
	assert.Equal(t, 0, result.AbsentHouses)
	require.NotNil(t, result.Fee.TargetHouseIDs, "target list must be present even when empty")
	assert.Empty(t, result.Fee.TargetHouseIDs)
}

func TestGenerateFines_InvalidInput(t *testing.T) {
	mockMeetings := new(MockMeetingRepository)
	mockHouses := new(MockHouseRepository)
	mockFees := new(MockFeeRepository)
	service := newMeetingService(mockMeetings, mockHouses, mockFees)

	ctx := context.Background()

	_, err := service.GenerateFines(ctx, "m1", 0)
	assert.ErrorIs(t, err, ErrInvalidFee)

	badDate := &models.Meeting{ID: "m2", Name: "Asamblea", Date: "15/04/2024"}
	mockMeetings.On("GetByID", ctx, models.EntityID("m2")).Return(badDate, nil)

	_, err = service.GenerateFines(ctx, "m2", 5000)
	assert.ErrorIs(t, err, ErrInvalidMeeting)
}

func TestMeetingFine(t *testing.T) {
	mockMeetings := new(MockMeetingRepository)
	mockHouses := new(MockHouseRepository)
	mockFees := new(MockFeeRepository)
	service := newMeetingService(mockMeetings, mockHouses, mockFees)

	ctx := context.Background()
	meeting := &models.Meeting{ID: "m1", Name: "Asamblea Abril", Date: "2024-04-15"}
	fine := &models.FeeConfig{ID: "f1", Name: "Multa: Asamblea Abril", Category: models.FeeCategoryFine}

	mockMeetings.On("GetByID", ctx, models.EntityID("m1")).Return(meeting, nil)
	mockFees.On("GetByName", ctx, "Multa: Asamblea Abril").Return(fine, nil)

	found, err := service.MeetingFine(ctx, "m1")

	require.NoError(t, err)
	assert.Equal(t, fine, found)
}

func TestMeetingFine_NotGeneratedYet(t *testing.T) {
	mockMeetings := new(MockMeetingRepository)
	mockHouses := new(MockHouseRepository)
	mockFees := new(MockFeeRepository)
	service := newMeetingService(mockMeetings, mockHouses, mockFees)

	ctx := context.Background()
	meeting := &models.Meeting{ID: "m1", Name: "Asamblea Abril", Date: "2024-04-15"}

	mockMeetings.On("GetByID", ctx, models.EntityID("m1")).Return(meeting, nil)
	mockFees.On("GetByName", ctx, "Multa: Asamblea Abril").Return(nil, nil)

	found, err := service.MeetingFine(ctx, "m1")

	assert.Nil(t, found)
	assert.ErrorIs(t, err, ErrFeeNotFound)
}

func TestDeleteMeeting_NotFound(t *testing.T) {
	mockMeetings := new(MockMeetingRepository)
	mockHouses := new(MockHouseRepository)
	mockFees := new(MockFeeRepository)
	service := newMeetingService(mockMeetings, mockHouses, mockFees)

	ctx := context.Background()
	mockMeetings.On("GetByID", ctx, models.EntityID("missing")).Return(nil, nil)

	err := service.DeleteMeeting(ctx, "missing")

	assert.ErrorIs(t, err, ErrMeetingNotFound)
	mockMeetings.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
