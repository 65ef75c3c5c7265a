package services

import (
	"testing"

	"github.com/devmarket/marketplace-api/internal/models"
	"github.com/devmarket/marketplace-api/internal/notify"
	"github.com/devmarket/marketplace-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type AccountServiceTestSuite struct {
	suite.Suite
	db         *gorm.DB
	sender     *recordingSender
	dispatcher *notify.Dispatcher
	service    *AccountService
	admin      *models.User
}

func (suite *AccountServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	err = suite.db.AutoMigrate(&models.User{}, &models.DeveloperProfile{}, &models.ActivityLog{})
	suite.Require().NoError(err)

	logger := zap.NewNop()
	suite.sender = &recordingSender{}
	suite.dispatcher = notify.NewDispatcher(suite.sender, logger, 1)

	userRepo := repository.NewUserRepository(suite.db)
	audit := NewAuditService(repository.NewActivityRepository(suite.db), logger)
	suite.service = NewAccountService(userRepo, suite.dispatcher, audit, logger)

	suite.admin = &models.User{
		Email:         "admin@example.com",
		Name:          "Admin",
		PasswordHash:  "hashedpassword",
		Role:          models.RoleAdmin,
		AccountStatus: models.AccountActive,
	}
	suite.Require().NoError(suite.db.Create(suite.admin).Error)
}

func (suite *AccountServiceTestSuite) TearDownTest() {
	suite.dispatcher.Close()

	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *AccountServiceTestSuite) createDeveloper(email string, status models.AccountStatus) *models.User {
	user := &models.User{
		Email:         email,
		Name:          email,
		PasswordHash:  "hashedpassword",
		Role:          models.RoleDeveloper,
		AccountStatus: status,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *AccountServiceTestSuite) reloadUser(id uint64) *models.User {
	var user models.User
	suite.Require().NoError(suite.db.First(&user, id).Error)
	return &user
}

func (suite *AccountServiceTestSuite) TestApprove_ActivatesAndNotifiesOnce() {
	dev := suite.createDeveloper("dev@example.com", models.AccountPendingApproval)

	suite.Require().NoError(suite.service.Approve(dev.ID, suite.admin))

	assert.Equal(suite.T(), models.AccountActive, suite.reloadUser(dev.ID).AccountStatus)

	suite.dispatcher.Drain()
	assert.Equal(suite.T(), 1, suite.sender.sentTo(dev.Email))

	var count int64
	suite.db.Model(&models.ActivityLog{}).Where("action = ?", ActionAccountApproved).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *AccountServiceTestSuite) TestApprove_SecondCallFailsWithoutSecondEmail() {
	dev := suite.createDeveloper("dev@example.com", models.AccountPendingApproval)

	suite.Require().NoError(suite.service.Approve(dev.ID, suite.admin))

	err := suite.service.Approve(dev.ID, suite.admin)
	assert.ErrorIs(suite.T(), err, ErrAccountNotPending)

	suite.dispatcher.Drain()
	assert.Equal(suite.T(), 1, suite.sender.sentTo(dev.Email))
	assert.Equal(suite.T(), models.AccountActive, suite.reloadUser(dev.ID).AccountStatus)
}

func (suite *AccountServiceTestSuite) TestApprove_MissingUser() {
	err := suite.service.Approve(999, suite.admin)
	assert.ErrorIs(suite.T(), err, ErrUserNotFound)
}

func (suite *AccountServiceTestSuite) TestReject_DeclinesAndNotifies() {
	dev := suite.createDeveloper("dev@example.com", models.AccountPendingApproval)

	suite.Require().NoError(suite.service.Reject(dev.ID, suite.admin))

	assert.Equal(suite.T(), models.AccountRejected, suite.reloadUser(dev.ID).AccountStatus)

	suite.dispatcher.Drain()
	assert.Equal(suite.T(), 1, suite.sender.sentTo(dev.Email))
}

func (suite *AccountServiceTestSuite) TestReject_ActiveAccountFails() {
	dev := suite.createDeveloper("dev@example.com", models.AccountActive)

	err := suite.service.Reject(dev.ID, suite.admin)
	assert.ErrorIs(suite.T(), err, ErrAccountNotPending)
	assert.Equal(suite.T(), models.AccountActive, suite.reloadUser(dev.ID).AccountStatus)
}

func (suite *AccountServiceTestSuite) TestSetFlagged_OrthogonalToStatus() {
	dev := suite.createDeveloper("dev@example.com", models.AccountActive)

	suite.Require().NoError(suite.service.SetFlagged(dev.ID, true, suite.admin))
	reloaded := suite.reloadUser(dev.ID)
	assert.True(suite.T(), reloaded.IsFlagged)
	assert.Equal(suite.T(), models.AccountActive, reloaded.AccountStatus)

	suite.Require().NoError(suite.service.SetFlagged(dev.ID, false, suite.admin))
	assert.False(suite.T(), suite.reloadUser(dev.ID).IsFlagged)

	// Flagging is silent
	suite.dispatcher.Drain()
	assert.Equal(suite.T(), 0, suite.sender.count())
}

func (suite *AccountServiceTestSuite) TestListPendingDevelopers_FiltersRoleAndStatus() {
	pending := suite.createDeveloper("pending@example.com", models.AccountPendingApproval)
	suite.createDeveloper("active@example.com", models.AccountActive)

	pendingClient := &models.User{
		Email:         "client@example.com",
		Name:          "Client",
		PasswordHash:  "hashedpassword",
		Role:          models.RoleClient,
		AccountStatus: models.AccountPendingApproval,
	}
	suite.Require().NoError(suite.db.Create(pendingClient).Error)

	users, err := suite.service.ListPendingDevelopers()
	suite.Require().NoError(err)
	suite.Require().Len(users, 1)
	assert.Equal(suite.T(), pending.ID, users[0].ID)
}

func (suite *AccountServiceTestSuite) TestEligibleDeveloper() {
	active := suite.createDeveloper("active@example.com", models.AccountActive)

	user, err := suite.service.EligibleDeveloper(active.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), active.ID, user.ID)

	pending := suite.createDeveloper("pending@example.com", models.AccountPendingApproval)
	_, err = suite.service.EligibleDeveloper(pending.ID)
	assert.ErrorIs(suite.T(), err, ErrDeveloperNotEligible)

	_, err = suite.service.EligibleDeveloper(suite.admin.ID)
	assert.ErrorIs(suite.T(), err, ErrDeveloperNotEligible)

	_, err = suite.service.EligibleDeveloper(999)
	assert.ErrorIs(suite.T(), err, ErrUserNotFound)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
