package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hobbyhub/internal/services"
)

func TestDashboardService_Summary(t *testing.T) {
	mockRepo := new(MockGroupRepository)
	service := services.NewDashboardService(mockRepo)

	mockRepo.On("CountAll", mock.Anything).Return(int64(10), nil).Once()
	mockRepo.On("CountByCreator", mock.Anything, "alice@example.com").Return(int64(3), nil).Once()
	mockRepo.On("CountByStatus", mock.Anything, "pending").Return(int64(4), nil).Once()

	summary, err := service.Summary(context.Background(), "Alice@Example.com")
	assert.NoError(t, err)
	assert.Equal(t, int64(10), summary.TotalGroups)
	assert.Equal(t, int64(3), summary.MyGroups)
	assert.Equal(t, int64(4), summary.PendingGroups)
	mockRepo.AssertExpectations(t)
}

func TestDashboardService_Summary_MissingEmail(t *testing.T) {
	mockRepo := new(MockGroupRepository)
	service := services.NewDashboardService(mockRepo)

	summary, err := service.Summary(context.Background(), "")
	assert.Nil(t, summary)

	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)
	mockRepo.AssertNotCalled(t, "CountAll", mock.Anything)
}
