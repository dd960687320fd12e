package usecase

import (
	"context"
	"testing"
	"time"

	"hospital-duty-scheduler/internal/delivery/dto"
	"hospital-duty-scheduler/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// newTestDB returns a gorm handle over a mock connection. The stub
// repositories below never touch it; it only backs WithContext.
func newTestDB(t *testing.T) *gorm.DB {
	db, _, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB
}

type qualificationRepoStub struct {
	byID   map[int]*entity.Qualification
	byCode map[string]*entity.Qualification
	saved  *entity.Qualification
}

func (s *qualificationRepoStub) Save(db *gorm.DB, qualification *entity.Qualification) error {
	s.saved = qualification
	return nil
}

func (s *qualificationRepoStub) FindByID(db *gorm.DB, id int) (*entity.Qualification, error) {
	return s.byID[id], nil
}

func (s *qualificationRepoStub) FindByCode(db *gorm.DB, code string) (*entity.Qualification, error) {
	return s.byCode[code], nil
}

func (s *qualificationRepoStub) FindAll(db *gorm.DB) ([]entity.Qualification, error) {
	return nil, nil
}

func (s *qualificationRepoStub) Deactivate(db *gorm.DB, id int) (int64, error) {
	return 0, nil
}

type staffQualRepoStub struct {
	active  *entity.StaffQualification
	created *entity.StaffQualification
}

func (s *staffQualRepoStub) Create(db *gorm.DB, record *entity.StaffQualification) error {
	record.ID = 1
	s.created = record
	return nil
}

func (s *staffQualRepoStub) FindActive(db *gorm.DB, staffID uuid.UUID, qualificationID int) (*entity.StaffQualification, error) {
	return s.active, nil
}

func (s *staffQualRepoStub) FindByStaffID(db *gorm.DB, staffID uuid.UUID) ([]entity.StaffQualification, error) {
	return nil, nil
}

func (s *staffQualRepoStub) FindAll(db *gorm.DB) ([]entity.StaffQualification, error) {
	return nil, nil
}

func (s *staffQualRepoStub) ExpireLapsed(db *gorm.DB, asOf time.Time) (int64, error) {
	return 0, nil
}

type staffRepoStub struct {
	staff     *entity.Staff
	allActive []entity.Staff
}

func (s *staffRepoStub) Create(db *gorm.DB, staff *entity.Staff) error {
	return nil
}

func (s *staffRepoStub) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Staff, error) {
	if s.staff != nil && s.staff.ID == id {
		return s.staff, nil
	}
	return nil, nil
}

func (s *staffRepoStub) FindByEmployeeNumber(db *gorm.DB, employeeNumber string) (*entity.Staff, error) {
	return nil, nil
}

func (s *staffRepoStub) FindAllActive(db *gorm.DB) ([]entity.Staff, error) {
	return s.allActive, nil
}

type roomRepoStub struct {
	rooms []entity.OperatingRoom
}

func (s *roomRepoStub) Create(db *gorm.DB, room *entity.OperatingRoom) error {
	return nil
}

func (s *roomRepoStub) FindByID(db *gorm.DB, id int) (*entity.OperatingRoom, error) {
	return nil, nil
}

func (s *roomRepoStub) FindByIDs(db *gorm.DB, ids []int) ([]entity.OperatingRoom, error) {
	return s.rooms, nil
}

func (s *roomRepoStub) FindAllActive(db *gorm.DB) ([]entity.OperatingRoom, error) {
	return s.rooms, nil
}

func TestQualificationUsecase_SaveUpdateKeepsStoredFields(t *testing.T) {
	isActive := false
	createdAt := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	stored := &entity.Qualification{
		ID:        42,
		Code:      "ACLS",
		Name:      "Advanced Cardiac Life Support",
		Category:  entity.QualificationCategoryCertification,
		IsActive:  &isActive,
		CreatedAt: createdAt,
	}

	qualRepo := &qualificationRepoStub{
		byID:   map[int]*entity.Qualification{42: stored},
		byCode: map[string]*entity.Qualification{"ACLS": stored},
	}
	usecase := NewQualificationUsecase(newTestDB(t), testLogger(), qualRepo, &staffQualRepoStub{}, &staffRepoStub{}, &roomRepoStub{})

	_, err := usecase.Save(context.Background(), &dto.SaveQualificationRequest{
		ID:       42,
		Code:     "ACLS",
		Name:     "Advanced Cardiac Life Support II",
		Category: "certification",
	})

	require.NoError(t, err)
	require.NotNil(t, qualRepo.saved)
	assert.Equal(t, "Advanced Cardiac Life Support II", qualRepo.saved.Name)
	// An edit must not resurrect a retired qualification or rewrite its
	// creation timestamp.
	require.NotNil(t, qualRepo.saved.IsActive)
	assert.False(t, *qualRepo.saved.IsActive)
	assert.Equal(t, createdAt, qualRepo.saved.CreatedAt)
}

func TestQualificationUsecase_SaveUpdateUnknownID(t *testing.T) {
	qualRepo := &qualificationRepoStub{
		byID:   map[int]*entity.Qualification{},
		byCode: map[string]*entity.Qualification{},
	}
	usecase := NewQualificationUsecase(newTestDB(t), testLogger(), qualRepo, &staffQualRepoStub{}, &staffRepoStub{}, &roomRepoStub{})

	_, err := usecase.Save(context.Background(), &dto.SaveQualificationRequest{
		ID:       9,
		Code:     "BLS",
		Name:     "Basic Life Support",
		Category: "certification",
	})

	assert.ErrorIs(t, err, ErrQualificationNotFound)
	assert.Nil(t, qualRepo.saved)
}

func TestQualificationUsecase_AssignToStaff(t *testing.T) {
	staffID := uuid.New()
	active := true

	newQualification := func(isActive bool) *entity.Qualification {
		return &entity.Qualification{
			ID:       3,
			Code:     "NEURO",
			Name:     "Neurosurgery Assistance",
			Category: entity.QualificationCategoryTraining,
			IsActive: &isActive,
		}
	}

	testCases := []struct {
		name          string
		qualification *entity.Qualification
		heldRecord    *entity.StaffQualification
		request       *dto.AssignStaffQualificationRequest
		expectedErr   error
	}{
		{
			name:          "grant recorded",
			qualification: newQualification(true),
			request: &dto.AssignStaffQualificationRequest{
				QualificationID: 3,
				ObtainedDate:    "2025-03-01",
				ExpiryDate:      "2027-03-01",
			},
		},
		{
			name:          "second active record rejected",
			qualification: newQualification(true),
			heldRecord: &entity.StaffQualification{
				ID:              11,
				StaffID:         staffID,
				QualificationID: 3,
				Status:          entity.StaffQualificationStatusActive,
			},
			request: &dto.AssignStaffQualificationRequest{
				QualificationID: 3,
				ObtainedDate:    "2025-03-01",
			},
			expectedErr: ErrQualificationHeld,
		},
		{
			name:          "expiry must fall after obtained date",
			qualification: newQualification(true),
			request: &dto.AssignStaffQualificationRequest{
				QualificationID: 3,
				ObtainedDate:    "2025-03-01",
				ExpiryDate:      "2025-03-01",
			},
			expectedErr: ErrInvalidExpiry,
		},
		{
			name:          "deactivated qualification cannot be granted",
			qualification: newQualification(false),
			request: &dto.AssignStaffQualificationRequest{
				QualificationID: 3,
				ObtainedDate:    "2025-03-01",
			},
			expectedErr: ErrQualificationInactive,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			qualRepo := &qualificationRepoStub{
				byID:   map[int]*entity.Qualification{3: tc.qualification},
				byCode: map[string]*entity.Qualification{},
			}
			staffQualRepo := &staffQualRepoStub{active: tc.heldRecord}
			staffRepo := &staffRepoStub{staff: &entity.Staff{ID: staffID, IsActive: &active}}
			usecase := NewQualificationUsecase(newTestDB(t), testLogger(), qualRepo, staffQualRepo, staffRepo, &roomRepoStub{})

			response, err := usecase.AssignToStaff(context.Background(), staffID, tc.request)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, staffQualRepo.created)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, staffQualRepo.created)
			assert.Equal(t, entity.StaffQualificationStatusActive, staffQualRepo.created.Status)
			assert.Equal(t, staffID.String(), response.StaffID)
			assert.Equal(t, 3, response.QualificationID)
			assert.Equal(t, "NEURO", response.Code)
		})
	}
}
