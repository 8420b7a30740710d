package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	orgDomain "github.com/allisson/fleet/internal/org/domain"
)

// mockOrganizationRepository is a mock implementation of OrganizationRepository.
type mockOrganizationRepository struct {
	mock.Mock
}

func (m *mockOrganizationRepository) Create(ctx context.Context, organization *orgDomain.Organization) error {
	args := m.Called(ctx, organization)
	return args.Error(0)
}

func (m *mockOrganizationRepository) Get(
	ctx context.Context,
	organizationID uuid.UUID,
) (*orgDomain.Organization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orgDomain.Organization), args.Error(1)
}

func (m *mockOrganizationRepository) GetBySlug(
	ctx context.Context,
	slug string,
) (*orgDomain.Organization, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orgDomain.Organization), args.Error(1)
}

func (m *mockOrganizationRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*orgDomain.Organization, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*orgDomain.Organization), args.Error(1)
}

func TestOrganizationUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_NormalizesSlug", func(t *testing.T) {
		organizationRepo := &mockOrganizationRepository{}
		useCase := NewOrganizationUseCase(organizationRepo)

		organizationRepo.On("GetBySlug", ctx, "acme-logistics").
			Return(nil, orgDomain.ErrOrganizationNotFound)
		organizationRepo.On("Create", ctx, mock.AnythingOfType("*domain.Organization")).Return(nil)

		organization, err := useCase.Create(ctx, &CreateOrganizationInput{
			Slug: " ACME-Logistics ",
			Name: "  Acme Logistics ",
		})
		require.NoError(t, err)
		assert.Equal(t, "acme-logistics", organization.Slug)
		assert.Equal(t, "Acme Logistics", organization.Name)
		assert.NotEqual(t, uuid.Nil, organization.ID)
	})

	t.Run("Error_DuplicateSlug", func(t *testing.T) {
		organizationRepo := &mockOrganizationRepository{}
		useCase := NewOrganizationUseCase(organizationRepo)

		organizationRepo.On("GetBySlug", ctx, "acme-logistics").
			Return(&orgDomain.Organization{Slug: "acme-logistics"}, nil)

		organization, err := useCase.Create(ctx, &CreateOrganizationInput{
			Slug: "acme-logistics",
			Name: "Acme Logistics",
		})
		assert.Nil(t, organization)
		assert.ErrorIs(t, err, orgDomain.ErrOrganizationAlreadyExists)
		organizationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_SlugLookupFails", func(t *testing.T) {
		organizationRepo := &mockOrganizationRepository{}
		useCase := NewOrganizationUseCase(organizationRepo)

		organizationRepo.On("GetBySlug", ctx, "acme-logistics").Return(nil, assert.AnError)

		organization, err := useCase.Create(ctx, &CreateOrganizationInput{
			Slug: "acme-logistics",
			Name: "Acme Logistics",
		})
		assert.Nil(t, organization)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestOrganizationUseCase_Get(t *testing.T) {
	ctx := context.Background()
	organizationID := uuid.Must(uuid.NewV7())

	organizationRepo := &mockOrganizationRepository{}
	useCase := NewOrganizationUseCase(organizationRepo)

	expected := &orgDomain.Organization{ID: organizationID, Slug: "acme-logistics"}
	organizationRepo.On("Get", ctx, organizationID).Return(expected, nil)

	organization, err := useCase.Get(ctx, organizationID)
	require.NoError(t, err)
	assert.Equal(t, expected, organization)
}

func TestOrganizationUseCase_GetBySlug(t *testing.T) {
	ctx := context.Background()

	organizationRepo := &mockOrganizationRepository{}
	useCase := NewOrganizationUseCase(organizationRepo)

	organizationRepo.On("GetBySlug", ctx, "missing").
		Return(nil, orgDomain.ErrOrganizationNotFound)

	organization, err := useCase.GetBySlug(ctx, "missing")
	assert.Nil(t, organization)
	assert.ErrorIs(t, err, orgDomain.ErrOrganizationNotFound)
}

func TestOrganizationUseCase_List(t *testing.T) {
	ctx := context.Background()

	organizationRepo := &mockOrganizationRepository{}
	useCase := NewOrganizationUseCase(organizationRepo)

	organizations := []*orgDomain.Organization{{ID: uuid.Must(uuid.NewV7())}}
	organizationRepo.On("List", ctx, 10, 25).Return(organizations, nil)

	result, err := useCase.List(ctx, 10, 25)
	require.NoError(t, err)
	assert.Equal(t, organizations, result)
}
