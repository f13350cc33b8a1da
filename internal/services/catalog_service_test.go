package services_test

import (
	"testing"

	"gavel/internal/aucterrors"
	"gavel/internal/models"
	"gavel/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCategoryRepository is a mock implementation of repositories.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(id string) (*models.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(name string) (*models.Category, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) List() ([]models.Category, error) {
	args := m.Called()
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestCatalogService_CreateItem(t *testing.T) {
	mockCategoryRepo := new(MockCategoryRepository)
	mockItemRepo := new(MockItemRepository)
	service := services.NewCatalogService(mockCategoryRepo, mockItemRepo, nil)

	mockCategoryRepo.On("GetByID", "cat-1").Return(&models.Category{ID: "cat-1", Name: "Collectibles"}, nil).Once()
	mockItemRepo.On("Create", mock.AnythingOfType("*models.Item"), mock.AnythingOfType("[]models.ItemImage")).Return(nil).Once()

	item, err := service.CreateItem("seller-1", "cat-1", "Old clock", "A clock.", 100, []string{"file-1", "file-2"})
	require.NoError(t, err)
	assert.True(t, item.IsOpen)
	assert.True(t, item.IsNew)
	assert.Len(t, item.Images, 2)

	mockCategoryRepo.AssertExpectations(t)
	mockItemRepo.AssertExpectations(t)
}

func TestCatalogService_CreateItem_Validation(t *testing.T) {
	mockCategoryRepo := new(MockCategoryRepository)
	mockItemRepo := new(MockItemRepository)
	service := services.NewCatalogService(mockCategoryRepo, mockItemRepo, nil)

	_, err := service.CreateItem("", "cat-1", "Old clock", "", 100, nil)
	assert.ErrorIs(t, err, aucterrors.ErrInvalidInput)

	_, err = service.CreateItem("seller-1", "cat-1", "", "", 100, nil)
	assert.ErrorIs(t, err, aucterrors.ErrInvalidInput)

	_, err = service.CreateItem("seller-1", "cat-1", "Old clock", "", 0, nil)
	assert.ErrorIs(t, err, aucterrors.ErrInvalidInput)

	mockCategoryRepo.On("GetByID", "cat-1").Return(&models.Category{ID: "cat-1"}, nil)
	_, err = service.CreateItem("seller-1", "cat-1", "Old clock", "", 100, []string{"file-1", ""})
	assert.ErrorIs(t, err, aucterrors.ErrInvalidInput)

	mockItemRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogService_CreateItem_MissingCategory(t *testing.T) {
	mockCategoryRepo := new(MockCategoryRepository)
	mockItemRepo := new(MockItemRepository)
	service := services.NewCatalogService(mockCategoryRepo, mockItemRepo, nil)

	mockCategoryRepo.On("GetByID", "ghost").Return(nil, aucterrors.ErrCategoryNotFound).Once()

	_, err := service.CreateItem("seller-1", "ghost", "Old clock", "", 100, nil)
	assert.ErrorIs(t, err, aucterrors.ErrCategoryNotFound)
}

func TestCatalogService_ReorderImages(t *testing.T) {
	mockItemRepo := new(MockItemRepository)
	service := services.NewCatalogService(new(MockCategoryRepository), mockItemRepo, nil)

	err := service.ReorderImages("item-1", []services.ImagePlacement{{FileRef: "", Position: 0}})
	assert.ErrorIs(t, err, aucterrors.ErrInvalidInput)

	err = service.ReorderImages("item-1", []services.ImagePlacement{{FileRef: "file-1", Position: -1}})
	assert.ErrorIs(t, err, aucterrors.ErrInvalidInput)

	mockItemRepo.AssertNotCalled(t, "ReplaceImages", mock.Anything, mock.Anything)

	mockItemRepo.On("ReplaceImages", "item-1", []models.ItemImage{
		{FileRef: "file-2", Position: 0},
		{FileRef: "file-1", Position: 1},
	}).Return(nil).Once()

	err = service.ReorderImages("item-1", []services.ImagePlacement{
		{FileRef: "file-2", Position: 0},
		{FileRef: "file-1", Position: 1},
	})
	assert.NoError(t, err)
	mockItemRepo.AssertExpectations(t)
}

func TestCatalogService_DeleteItem_AdminOnly(t *testing.T) {
	mockItemRepo := new(MockItemRepository)
	publisher := &capturePublisher{}
	service := services.NewCatalogService(new(MockCategoryRepository), mockItemRepo, publisher)

	err := service.DeleteItem("item-1", false)
	assert.ErrorIs(t, err, aucterrors.ErrUnauthorized)
	mockItemRepo.AssertNotCalled(t, "Delete", "item-1")

	item := openItem("item-1", 100)
	mockItemRepo.On("GetByID", "item-1").Return(&item, nil).Once()
	mockItemRepo.On("Delete", "item-1").Return(nil).Once()

	require.NoError(t, service.DeleteItem("item-1", true))
	assert.Len(t, publisher.byKey("item.deleted"), 1)
	mockItemRepo.AssertExpectations(t)
}

func TestCatalogService_CreateCategory(t *testing.T) {
	mockCategoryRepo := new(MockCategoryRepository)
	service := services.NewCatalogService(mockCategoryRepo, new(MockItemRepository), nil)

	_, err := service.CreateCategory("Collectibles", false)
	assert.ErrorIs(t, err, aucterrors.ErrUnauthorized)

	_, err = service.CreateCategory("", true)
	assert.ErrorIs(t, err, aucterrors.ErrInvalidInput)

	mockCategoryRepo.On("Create", mock.AnythingOfType("*models.Category")).Return(nil).Once()
	category, err := service.CreateCategory("Collectibles", true)
	require.NoError(t, err)
	assert.Equal(t, "Collectibles", category.Name)
	mockCategoryRepo.AssertExpectations(t)
}

func TestCatalogService_DeleteCategory(t *testing.T) {
	mockCategoryRepo := new(MockCategoryRepository)
	publisher := &capturePublisher{}
	service := services.NewCatalogService(mockCategoryRepo, new(MockItemRepository), publisher)

	err := service.DeleteCategory("cat-1", false)
	assert.ErrorIs(t, err, aucterrors.ErrUnauthorized)

	mockCategoryRepo.On("Delete", "cat-1").Return(nil).Once()
	require.NoError(t, service.DeleteCategory("cat-1", true))
	assert.Len(t, publisher.byKey("category.deleted"), 1)

	mockCategoryRepo.On("Delete", "ghost").Return(aucterrors.ErrCategoryNotFound).Once()
	assert.ErrorIs(t, service.DeleteCategory("ghost", true), aucterrors.ErrCategoryNotFound)
	mockCategoryRepo.AssertExpectations(t)
}

func TestCatalogService_ListItemsByCategory(t *testing.T) {
	mockCategoryRepo := new(MockCategoryRepository)
	mockItemRepo := new(MockItemRepository)
	service := services.NewCatalogService(mockCategoryRepo, mockItemRepo, nil)

	mockCategoryRepo.On("GetByID", "ghost").Return(nil, aucterrors.ErrCategoryNotFound).Once()
	_, err := service.ListItemsByCategory("ghost")
	assert.ErrorIs(t, err, aucterrors.ErrCategoryNotFound)
	mockItemRepo.AssertNotCalled(t, "ListByCategory", mock.Anything)

	mockCategoryRepo.On("GetByID", "cat-1").Return(&models.Category{ID: "cat-1"}, nil).Once()
	mockItemRepo.On("ListByCategory", "cat-1").Return([]models.Item{openItem("item-1", 100)}, nil).Once()
	items, err := service.ListItemsByCategory("cat-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
