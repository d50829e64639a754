// Package mocks provides testify mocks for the storage, messaging and event
// bus interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/josh9381/estatepulse/pkg/models"
	"github.com/josh9381/estatepulse/pkg/persistence"
	"github.com/stretchr/testify/mock"
)

// MockWorkflowRepository is a mock implementation of persistence.WorkflowRepository.
type MockWorkflowRepository struct {
	mock.Mock
}

func (m *MockWorkflowRepository) GetAll(ctx context.Context) ([]*models.Workflow, error) {
	args := m.Called(ctx)

	workflows, _ := args.Get(0).([]*models.Workflow)

	return workflows, args.Error(1)
}

func (m *MockWorkflowRepository) GetByID(ctx context.Context, id string) (*models.Workflow, error) {
	args := m.Called(ctx, id)

	workflow, _ := args.Get(0).(*models.Workflow)

	return workflow, args.Error(1)
}

func (m *MockWorkflowRepository) Save(ctx context.Context, workflow *models.Workflow) error {
	args := m.Called(ctx, workflow)

	return args.Error(0)
}

func (m *MockWorkflowRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockWorkflowRepository) ActiveByTriggerType(ctx context.Context, triggerType models.TriggerType) ([]*models.Workflow, error) {
	args := m.Called(ctx, triggerType)

	workflows, _ := args.Get(0).([]*models.Workflow)

	return workflows, args.Error(1)
}

func (m *MockWorkflowRepository) RecordRun(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)

	return args.Error(0)
}

func (m *MockWorkflowRepository) DueTimeBased(ctx context.Context, now time.Time) ([]*models.Workflow, error) {
	args := m.Called(ctx, now)

	workflows, _ := args.Get(0).([]*models.Workflow)

	return workflows, args.Error(1)
}

func (m *MockWorkflowRepository) UpdateNextRunAt(ctx context.Context, id string, next *time.Time) error {
	args := m.Called(ctx, id, next)

	return args.Error(0)
}

// MockExecutionRepository is a mock implementation of persistence.ExecutionRepository.
type MockExecutionRepository struct {
	mock.Mock
}

func (m *MockExecutionRepository) Create(ctx context.Context, execution *models.WorkflowExecution) error {
	args := m.Called(ctx, execution)

	return args.Error(0)
}

func (m *MockExecutionRepository) MarkSuccess(ctx context.Context, id string, completedAt time.Time) error {
	args := m.Called(ctx, id, completedAt)

	return args.Error(0)
}

func (m *MockExecutionRepository) MarkFailed(ctx context.Context, id string, message string, completedAt time.Time) error {
	args := m.Called(ctx, id, message, completedAt)

	return args.Error(0)
}

func (m *MockExecutionRepository) GetByWorkflow(ctx context.Context, workflowID string, limit int) ([]*models.WorkflowExecution, error) {
	args := m.Called(ctx, workflowID, limit)

	executions, _ := args.Get(0).([]*models.WorkflowExecution)

	return executions, args.Error(1)
}

// MockCampaignRepository is a mock implementation of persistence.CampaignRepository.
type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	args := m.Called(ctx, id)

	campaign, _ := args.Get(0).(*models.Campaign)

	return campaign, args.Error(1)
}

func (m *MockCampaignRepository) Save(ctx context.Context, campaign *models.Campaign) error {
	args := m.Called(ctx, campaign)

	return args.Error(0)
}

func (m *MockCampaignRepository) DueOneTime(ctx context.Context, now time.Time) ([]*models.Campaign, error) {
	args := m.Called(ctx, now)

	campaigns, _ := args.Get(0).([]*models.Campaign)

	return campaigns, args.Error(1)
}

func (m *MockCampaignRepository) DueRecurring(ctx context.Context, now time.Time) ([]*models.Campaign, error) {
	args := m.Called(ctx, now)

	campaigns, _ := args.Get(0).([]*models.Campaign)

	return campaigns, args.Error(1)
}

func (m *MockCampaignRepository) Claim(ctx context.Context, id string, from, to models.CampaignStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)

	return args.Bool(0), args.Error(1)
}

func (m *MockCampaignRepository) IncrementSent(ctx context.Context, id string, count int) error {
	args := m.Called(ctx, id, count)

	return args.Error(0)
}

func (m *MockCampaignRepository) Stats(ctx context.Context, now time.Time) (*models.CampaignStats, error) {
	args := m.Called(ctx, now)

	stats, _ := args.Get(0).(*models.CampaignStats)

	return stats, args.Error(1)
}

// MockLeadRepository is a mock implementation of persistence.LeadRepository.
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	args := m.Called(ctx, id)

	lead, _ := args.Get(0).(*models.Lead)

	return lead, args.Error(1)
}

func (m *MockLeadRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Lead, error) {
	args := m.Called(ctx, ids)

	leads, _ := args.Get(0).([]*models.Lead)

	return leads, args.Error(1)
}

func (m *MockLeadRepository) Filter(ctx context.Context, filter models.LeadFilter) ([]*models.Lead, error) {
	args := m.Called(ctx, filter)

	leads, _ := args.Get(0).([]*models.Lead)

	return leads, args.Error(1)
}

func (m *MockLeadRepository) Save(ctx context.Context, lead *models.Lead) error {
	args := m.Called(ctx, lead)

	return args.Error(0)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id string, status models.LeadStatus) error {
	args := m.Called(ctx, id, status)

	return args.Error(0)
}

// MockTaskRepository is a mock implementation of persistence.TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *models.Task) error {
	args := m.Called(ctx, task)

	return args.Error(0)
}

// MockTagRepository is a mock implementation of persistence.TagRepository.
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	args := m.Called(ctx, id)

	tag, _ := args.Get(0).(*models.Tag)

	return tag, args.Error(1)
}

func (m *MockTagRepository) Save(ctx context.Context, tag *models.Tag) error {
	args := m.Called(ctx, tag)

	return args.Error(0)
}

func (m *MockTagRepository) AttachToLead(ctx context.Context, tagID, leadID string) error {
	args := m.Called(ctx, tagID, leadID)

	return args.Error(0)
}

// MockActivityRepository is a mock implementation of persistence.ActivityRepository.
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	args := m.Called(ctx, activity)

	return args.Error(0)
}

// MockPersistence is a mock implementation of persistence.Persistence.
type MockPersistence struct {
	mock.Mock

	workflowRepo  *MockWorkflowRepository
	executionRepo *MockExecutionRepository
	campaignRepo  *MockCampaignRepository
	leadRepo      *MockLeadRepository
	taskRepo      *MockTaskRepository
	tagRepo       *MockTagRepository
	activityRepo  *MockActivityRepository
}

// NewMockPersistence creates a MockPersistence with all mock repositories wired.
func NewMockPersistence() *MockPersistence {
	return &MockPersistence{
		workflowRepo:  &MockWorkflowRepository{},
		executionRepo: &MockExecutionRepository{},
		campaignRepo:  &MockCampaignRepository{},
		leadRepo:      &MockLeadRepository{},
		taskRepo:      &MockTaskRepository{},
		tagRepo:       &MockTagRepository{},
		activityRepo:  &MockActivityRepository{},
	}
}

// GetMockWorkflowRepository returns the underlying mock for setting up expectations.
func (m *MockPersistence) GetMockWorkflowRepository() *MockWorkflowRepository {
	return m.workflowRepo
}

func (m *MockPersistence) GetMockExecutionRepository() *MockExecutionRepository {
	return m.executionRepo
}

func (m *MockPersistence) GetMockCampaignRepository() *MockCampaignRepository {
	return m.campaignRepo
}

func (m *MockPersistence) GetMockLeadRepository() *MockLeadRepository {
	return m.leadRepo
}

func (m *MockPersistence) GetMockTaskRepository() *MockTaskRepository {
	return m.taskRepo
}

func (m *MockPersistence) GetMockTagRepository() *MockTagRepository {
	return m.tagRepo
}

func (m *MockPersistence) GetMockActivityRepository() *MockActivityRepository {
	return m.activityRepo
}

func (m *MockPersistence) Workflows() persistence.WorkflowRepository {
	return m.workflowRepo
}

func (m *MockPersistence) Executions() persistence.ExecutionRepository {
	return m.executionRepo
}

func (m *MockPersistence) Campaigns() persistence.CampaignRepository {
	return m.campaignRepo
}

func (m *MockPersistence) Leads() persistence.LeadRepository {
	return m.leadRepo
}

func (m *MockPersistence) Tasks() persistence.TaskRepository {
	return m.taskRepo
}

func (m *MockPersistence) Tags() persistence.TagRepository {
	return m.tagRepo
}

func (m *MockPersistence) Activities() persistence.ActivityRepository {
	return m.activityRepo
}

func (m *MockPersistence) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

func (m *MockPersistence) Close(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}
