package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bjustcoin/internal/model"
)

func TestAuditService_List(t *testing.T) {
	mockLogRepo := new(MockLogRepository)

	target := uint(8)
	entries := []model.LogEntry{
		{ID: 1, UserID: 2, Text: "blocked a user", TargetID: &target},
		{ID: 2, UserID: 8, Text: "submitted an application for the purchase of tokens"},
	}
	mockLogRepo.On("List", mock.Anything, 20, 0).Return(entries, nil)
	mockLogRepo.On("ExistsAtOffset", mock.Anything, (*uint)(nil), 20).Return(false, nil)
	mockLogRepo.On("FindSmallUsers", mock.Anything, []uint{2, 8}).Return(map[uint]model.SmallUser{
		2: {ID: 2, FirstName: "Super", LastName: "User", Email: "root@example.com"},
		8: {ID: 8, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
	}, nil)

	service := NewAuditService(mockLogRepo)
	page, err := service.List(context.Background(), 1, nil)

	assert.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, 0, page.Next)

	first := page.Data[0]
	assert.Equal(t, "blocked a user", first.Text)
	assert.Equal(t, "root@example.com", first.User.Email)
	assert.NotNil(t, first.Target)
	assert.Equal(t, "ada@example.com", first.Target.Email)

	second := page.Data[1]
	assert.Nil(t, second.Target)
	assert.Equal(t, "ada@example.com", second.User.Email)

	mockLogRepo.AssertExpectations(t)
}

func TestAuditService_ListForUser(t *testing.T) {
	mockLogRepo := new(MockLogRepository)

	userID := uint(8)
	mockLogRepo.On("ListForUser", mock.Anything, userID, 20, 0).Return([]model.LogEntry{
		{ID: 2, UserID: 8, Text: "submitted an application for the purchase of tokens"},
	}, nil)
	mockLogRepo.On("ExistsAtOffset", mock.Anything, &userID, 20).Return(true, nil)
	mockLogRepo.On("FindSmallUsers", mock.Anything, []uint{8}).Return(map[uint]model.SmallUser{
		8: {ID: 8, Email: "ada@example.com"},
	}, nil)

	service := NewAuditService(mockLogRepo)
	page, err := service.ListForUser(context.Background(), userID, 1, nil)

	assert.NoError(t, err)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, 2, page.Next)
	mockLogRepo.AssertExpectations(t)
}

func TestAuditService_Append(t *testing.T) {
	mockLogRepo := new(MockLogRepository)
	target := uint(10)

	mockLogRepo.On("Append", mock.Anything, mock.MatchedBy(func(e *model.LogEntry) bool {
		return e.UserID == 2 && e.Text == "blocked a user" && e.TargetID != nil && *e.TargetID == 10
	})).Return(nil)

	service := NewAuditService(mockLogRepo)
	err := service.Append(context.Background(), 2, "blocked a user", &target)

	assert.NoError(t, err)
	mockLogRepo.AssertExpectations(t)
}
