package service_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"

	"taskboard-backend/internal/database/models"
	apperrors "taskboard-backend/internal/errors"
	"taskboard-backend/internal/mocks"
	"taskboard-backend/internal/service"
)

func newUserService(t *testing.T) (*service.UserService, *mocks.MockUserRepositoryInterface) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepositoryInterface(ctrl)
	return service.NewUserService(users, validator.New()), users
}

func TestGetProfile(t *testing.T) {
	svc, users := newUserService(t)

	users.EXPECT().GetByID(uint(2)).Return(&models.User{
		BaseModel:      models.BaseModel{ID: 2},
		Email:          "user@acme.test",
		FullName:       "Uma User",
		Role:           models.UserRoleMember,
		IsActive:       true,
		OrganizationID: 1,
	}, nil)

	resp, err := svc.GetProfile(2)
	require.NoError(t, err)
	assert.Equal(t, "user@acme.test", resp.Email)
	assert.Equal(t, "Uma User", resp.FullName)
	assert.Equal(t, models.UserRoleMember, resp.Role)
}

func TestGetProfileNotFound(t *testing.T) {
	svc, users := newUserService(t)

	users.EXPECT().GetByID(uint(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetProfile(99)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	svc, users := newUserService(t)

	users.EXPECT().GetByID(uint(2)).Return(&models.User{
		BaseModel: models.BaseModel{ID: 2},
		FullName:  "Uma User",
	}, nil)
	users.EXPECT().Update(gomock.Any()).DoAndReturn(func(user *models.User) error {
		assert.Equal(t, "Uma Renamed", user.FullName)
		return nil
	})

	resp, err := svc.UpdateProfile(2, &service.UpdateProfileRequest{FullName: "Uma Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Uma Renamed", resp.FullName)
}

func TestUpdateProfileValidation(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.UpdateProfile(2, &service.UpdateProfileRequest{FullName: ""})
	assert.True(t, apperrors.IsValidation(err))
}

func TestUpdateProfileNotFound(t *testing.T) {
	svc, users := newUserService(t)

	users.EXPECT().GetByID(uint(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.UpdateProfile(99, &service.UpdateProfileRequest{FullName: "Anyone"})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestListByOrganization(t *testing.T) {
	svc, users := newUserService(t)

	users.EXPECT().GetByOrganizationID(uint(1), 10, 10).
		Return([]models.User{{BaseModel: models.BaseModel{ID: 11}}}, int64(12), nil)

	resp, total, err := svc.ListByOrganization(1, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, resp, 1)
	assert.Equal(t, uint(11), resp[0].ID)
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		perPage     int
		wantPage    int
		wantPerPage int
	}{
		{name: "in range", page: 2, perPage: 20, wantPage: 2, wantPerPage: 20},
		{name: "zero page", page: 0, perPage: 20, wantPage: 1, wantPerPage: 20},
		{name: "negative page", page: -3, perPage: 20, wantPage: 1, wantPerPage: 20},
		{name: "zero per page", page: 1, perPage: 0, wantPage: 1, wantPerPage: 10},
		{name: "over cap", page: 1, perPage: 500, wantPage: 1, wantPerPage: 10},
		{name: "at cap", page: 1, perPage: 100, wantPage: 1, wantPerPage: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, perPage := service.NormalizePage(tt.page, tt.perPage)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPerPage, perPage)
		})
	}
}
